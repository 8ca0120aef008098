package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/HouseYeung/Stock-Time/internal/model"
)

// ErrNoTradingDay is returned when no open day exists within the scan
// horizon, which only happens with a degenerate calendar.
var ErrNoTradingDay = errors.New("no trading day found within scan horizon")

// maxScanDays bounds the forward scan in NextTradingDay.
const maxScanDays = 30

// Source fetches the full holiday list from the external calendar API.
type Source interface {
	MarketHolidays(ctx context.Context) ([]model.HolidayEvent, error)
}

// SourceFunc is a function adapter for Source.
type SourceFunc func(ctx context.Context) ([]model.HolidayEvent, error)

func (f SourceFunc) MarketHolidays(ctx context.Context) ([]model.HolidayEvent, error) {
	return f(ctx)
}

// Calendar caches the exchange holiday calendar. Refresh is the only
// mutation; all queries take the read lock and never block on a fetch.
type Calendar struct {
	source Source
	logger *slog.Logger

	mu            sync.RWMutex
	events        map[string]model.HolidayEvent // date -> event, one entry per date
	lastRefreshed time.Time
}

// NewCalendar creates an empty Calendar backed by source.
func NewCalendar(source Source, logger *slog.Logger) *Calendar {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calendar{
		source: source,
		logger: logger,
		events: make(map[string]model.HolidayEvent),
	}
}

// Refresh fetches the holiday list and swaps in a freshly built mapping.
// On failure the existing mapping is left untouched.
func (c *Calendar) Refresh(ctx context.Context) error {
	events, err := c.source.MarketHolidays(ctx)
	if err != nil {
		return fmt.Errorf("fetch holidays: %w", err)
	}

	rebuilt := make(map[string]model.HolidayEvent, len(events))
	for _, e := range events {
		rebuilt[e.Date] = e
	}

	c.mu.Lock()
	c.events = rebuilt
	c.lastRefreshed = time.Now()
	c.mu.Unlock()

	c.logger.Info("holiday calendar refreshed", "entries", len(rebuilt))
	return nil
}

// IsFullDayClosure reports whether the calendar date of t is a holiday
// with no trading session at all.
func (c *Calendar) IsFullDayClosure(t time.Time) bool {
	c.mu.RLock()
	e, ok := c.events[t.Format(model.DateLayout)]
	c.mu.RUnlock()

	return ok && e.FullDayClosure()
}

// NextTradingDay scans forward from the day after t, skipping weekends
// and full-day closures. The scan is capped at maxScanDays to terminate
// on a degenerate calendar.
func (c *Calendar) NextTradingDay(t time.Time) (time.Time, error) {
	day := t
	for i := 0; i < maxScanDays; i++ {
		day = day.AddDate(0, 0, 1)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if c.IsFullDayClosure(day) {
			continue
		}
		return day, nil
	}
	return time.Time{}, ErrNoTradingDay
}

// Upcoming returns the earliest holiday on or after the calendar date of
// now, or nil if the calendar has none.
func (c *Calendar) Upcoming(now time.Time) *model.HolidayEvent {
	today := now.Format(model.DateLayout)

	c.mu.RLock()
	var upcoming []model.HolidayEvent
	for date, e := range c.events {
		if date >= today {
			upcoming = append(upcoming, e)
		}
	}
	c.mu.RUnlock()

	if len(upcoming) == 0 {
		return nil
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date < upcoming[j].Date
	})

	return &upcoming[0]
}

// LastRefreshed returns the time of the last successful refresh, zero if
// none has succeeded yet.
func (c *Calendar) LastRefreshed() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefreshed
}

// Len returns the number of cached holiday entries.
func (c *Calendar) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}
