// Package session computes the current US equities trading session.
//
// The session day (market-local, half-open windows):
//   - Overnight: Sun >= 20:00, and weekday mornings before 03:50
//   - Closed micro-gap: [03:50, 04:00)
//   - PreMarket: [04:00, 09:30)
//   - RegularMarket: [09:30, 16:00)
//   - AfterMarket: [16:00, 20:00)
//   - Closed: weekends, full-day holidays, and weekday evenings >= 20:00
//
// Compute is a pure function of the instant and the holiday calendar;
// nothing here is persisted or cached.
package session
