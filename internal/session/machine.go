package session

import (
	"fmt"
	"time"
)

// Calendar answers holiday questions for the session computation.
type Calendar interface {
	// IsFullDayClosure reports whether the market is closed all day on
	// the calendar date of t.
	IsFullDayClosure(t time.Time) bool

	// NextTradingDay returns the first date after t that is neither a
	// weekend day nor a full-day closure.
	NextTradingDay(t time.Time) (time.Time, error)
}

// Status is the result of a session computation.
type Status struct {
	Current       State
	Next          State
	SecondsToNext float64 // Non-negative seconds until the next transition
}

// Session boundaries as minute-of-day in the market's local zone.
const (
	overnightEnd   = 3*60 + 50 // 03:50
	preMarketOpen  = 4 * 60    // 04:00
	regularOpen    = 9*60 + 30 // 09:30
	regularClose   = 16 * 60   // 16:00
	afterMarketEnd = 20 * 60   // 20:00
)

// Compute returns the session state at now, the state it transitions to
// next, and the exact seconds until that transition. now must already be
// in the market's local zone.
func Compute(now time.Time, cal Calendar) (Status, error) {
	minute := now.Hour()*60 + now.Minute()
	wd := now.Weekday()

	// Overnight straddles midnight and the week boundary (Sunday evening
	// into weekday mornings), so it is resolved before the day windows.
	// A full-day closure still wins: a holiday morning is Closed, and the
	// Sunday-evening target skips a holiday Monday.
	if wd == time.Sunday && minute >= afterMarketEnd {
		day, err := cal.NextTradingDay(now)
		if err != nil {
			return Status{}, fmt.Errorf("next trading day: %w", err)
		}
		return newStatus(Overnight, PreMarket, timeAt(day, 3, 50), now), nil
	}
	if wd >= time.Monday && wd <= time.Friday && minute < overnightEnd && !cal.IsFullDayClosure(now) {
		return newStatus(Overnight, PreMarket, timeAt(now, 3, 50), now), nil
	}

	if wd == time.Saturday || wd == time.Sunday || cal.IsFullDayClosure(now) {
		return closedUntilNextOpen(now, cal)
	}

	switch {
	case minute >= preMarketOpen && minute < regularOpen:
		return newStatus(PreMarket, RegularMarket, timeAt(now, 9, 30), now), nil
	case minute >= regularOpen && minute < regularClose:
		return newStatus(RegularMarket, AfterMarket, timeAt(now, 16, 0), now), nil
	case minute >= regularClose && minute < afterMarketEnd:
		return newStatus(AfterMarket, Overnight, timeAt(now, 20, 0), now), nil
	case minute >= overnightEnd && minute < preMarketOpen:
		return newStatus(Closed, PreMarket, timeAt(now, 4, 0), now), nil
	default:
		// Mon-Fri evenings at or after 20:00.
		return closedUntilNextOpen(now, cal)
	}
}

// closedUntilNextOpen is the weekend/holiday branch: the market is closed
// and reopens at 09:30 on the next trading day.
func closedUntilNextOpen(now time.Time, cal Calendar) (Status, error) {
	day, err := cal.NextTradingDay(now)
	if err != nil {
		return Status{}, fmt.Errorf("next trading day: %w", err)
	}
	return newStatus(Closed, PreMarket, timeAt(day, 9, 30), now), nil
}

func timeAt(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func newStatus(current, next State, nextAt, now time.Time) Status {
	secs := nextAt.Sub(now).Seconds()
	if secs < 0 {
		secs = 0
	}
	return Status{Current: current, Next: next, SecondsToNext: secs}
}
