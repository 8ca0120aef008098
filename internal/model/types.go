package model

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for holiday map keys.
const DateLayout = "2006-01-02"

// HolidayEvent describes one entry of the exchange holiday calendar.
// A holiday with an empty TradingHour is a full-day closure; a non-empty
// TradingHour describes a shortened session and is not parsed further.
type HolidayEvent struct {
	EventName   string // Display name (e.g., "Christmas Day")
	Date        string // Calendar date, market-local, "YYYY-MM-DD"
	TradingHour string // Shortened session hours, empty for full closure
}

// FullDayClosure reports whether the market is closed for the whole day.
func (e HolidayEvent) FullDayClosure() bool {
	return strings.TrimSpace(e.TradingHour) == ""
}

// TradeRecord is the latest observed trade for one symbol.
// A new record for the same symbol fully replaces the old one.
type TradeRecord struct {
	Symbol     string    // Exchange-assigned identifier (e.g., "AAPL")
	Price      float64   // Last trade price
	Volume     float64   // Trade volume
	EventTime  time.Time // Exchange event time
	ReceivedAt time.Time // Local time the tick was read off the feed
}

// Quote is a point-in-time REST quote for one symbol.
type Quote struct {
	Symbol        string
	Current       float64
	PreviousClose float64
	Change        float64
	PercentChange float64
}
