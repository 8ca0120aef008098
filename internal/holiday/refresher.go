package holiday

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RefresherConfig holds refresh scheduling settings.
type RefresherConfig struct {
	Interval time.Duration // Time between refreshes
	Timeout  time.Duration // Per-fetch timeout
}

// DefaultRefresherConfig returns sensible defaults.
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		Interval: 12 * time.Hour,
		Timeout:  30 * time.Second,
	}
}

// Refresher periodically refreshes a Calendar. A failed refresh is logged
// and retried on the next tick; it never fails the process.
type Refresher struct {
	cfg      RefresherConfig
	calendar *Calendar
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefresher creates a new Refresher.
func NewRefresher(cfg RefresherConfig, calendar *Calendar, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		cfg:      cfg,
		calendar: calendar,
		logger:   logger,
	}
}

// Start begins the refresh loop. The first refresh runs immediately.
func (r *Refresher) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("holiday refresher started", "interval", r.cfg.Interval)
	return nil
}

// Stop gracefully shuts down the refresh loop.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("holiday refresher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the refresh loop.
func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	// Refresh immediately on start.
	r.refresh()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

// refresh performs one fetch with the configured timeout.
func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(r.ctx, r.cfg.Timeout)
	defer cancel()

	if err := r.calendar.Refresh(ctx); err != nil {
		r.logger.Warn("holiday refresh failed, keeping previous calendar", "err", err)
	}
}
