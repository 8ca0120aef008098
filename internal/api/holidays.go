package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/HouseYeung/Stock-Time/internal/model"
)

// holidayWire is one entry of the /stock/market-holiday response.
type holidayWire struct {
	EventName   string `json:"eventName"`
	AtDate      string `json:"atDate"`
	TradingHour string `json:"tradingHour"`
}

// holidayResponse is the /stock/market-holiday response envelope.
type holidayResponse struct {
	Data     []holidayWire `json:"data"`
	Exchange string        `json:"exchange"`
	Timezone string        `json:"timezone"`
}

// GetMarketHolidays fetches the holiday calendar for an exchange.
func (c *Client) GetMarketHolidays(ctx context.Context, exchange string) ([]model.HolidayEvent, error) {
	query := url.Values{}
	query.Set("exchange", exchange)

	var resp holidayResponse
	if err := c.get(ctx, "/stock/market-holiday", query, &resp); err != nil {
		return nil, fmt.Errorf("get market holidays: %w", err)
	}

	events := make([]model.HolidayEvent, 0, len(resp.Data))
	for _, h := range resp.Data {
		if h.AtDate == "" {
			continue
		}
		events = append(events, model.HolidayEvent{
			EventName:   h.EventName,
			Date:        h.AtDate,
			TradingHour: h.TradingHour,
		})
	}

	return events, nil
}
