// Package model defines shared data types used across the service.
//
// Conventions:
//   - Calendar dates: "YYYY-MM-DD" strings in the market's local zone
//   - Prices: float64 as delivered by the upstream Finnhub feed
//   - Event times: time.Time converted from upstream millisecond epochs
package model
