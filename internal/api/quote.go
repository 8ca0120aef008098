package api

import (
	"context"
	"fmt"
	"math"
	"net/url"

	"github.com/HouseYeung/Stock-Time/internal/model"
)

// quoteWire is the /quote response.
type quoteWire struct {
	Current       float64 `json:"c"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// GetQuote fetches the current quote for a symbol and derives the change
// against the previous close, rounded to 2 decimals.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	query := url.Values{}
	query.Set("symbol", symbol)

	var resp quoteWire
	if err := c.get(ctx, "/quote", query, &resp); err != nil {
		return nil, fmt.Errorf("get quote %s: %w", symbol, err)
	}

	q := &model.Quote{
		Symbol:        symbol,
		Current:       resp.Current,
		PreviousClose: resp.PreviousClose,
		Change:        round2(resp.Current - resp.PreviousClose),
	}

	// Percent change is undefined against a zero previous close (new
	// listings); report 0 rather than dividing.
	if resp.PreviousClose != 0 {
		q.PercentChange = round2((resp.Current - resp.PreviousClose) / resp.PreviousClose * 100)
	}

	return q, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
