// Package holiday implements the exchange holiday calendar cache.
//
// The Calendar:
//   - Maps calendar dates to holiday descriptors
//   - Rebuilds atomically on refresh; readers never see a partial map
//   - Keeps the previous mapping when a refresh fails
//   - Answers full-day-closure and next-trading-day queries
//
// A Refresher task refreshes once at start and then on a fixed schedule.
// Freshness is advisory: absence from the map means "not a holiday".
package holiday
