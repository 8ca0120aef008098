package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HouseYeung/Stock-Time/internal/model"
)

// Ingestor owns the feed connection lifecycle. It decodes trade frames,
// applies them to the cache, and reconnects with exponential backoff
// when the connection drops.
type Ingestor struct {
	cfg    IngestorConfig
	cache  *Cache
	sink   chan<- model.TradeRecord
	logger *slog.Logger

	newClient func(ClientConfig, *slog.Logger) Client

	connected atomic.Bool

	framesReceived atomic.Int64
	tradesApplied  atomic.Int64
	parseErrors    atomic.Int64
	reconnects     atomic.Int64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewIngestor creates an ingestor writing into cache. sink may be nil;
// when set, every applied trade is also offered to it (non-blocking).
func NewIngestor(cfg IngestorConfig, cache *Cache, sink chan<- model.TradeRecord, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Ingestor{
		cfg:       cfg,
		cache:     cache,
		sink:      sink,
		logger:    logger,
		newClient: NewClient,
	}
}

// Start launches the connection loop. Returns immediately; the first
// connection attempt happens in the background.
func (i *Ingestor) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	i.cancel = cancel

	i.wg.Add(1)
	go i.run(runCtx)

	i.logger.Info("feed ingestor started", "url", i.cfg.WSURL)

	return nil
}

// Stop shuts down the connection loop.
func (i *Ingestor) Stop(ctx context.Context) error {
	if i.cancel != nil {
		i.cancel()
	}

	done := make(chan struct{})
	go func() {
		i.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		i.logger.Info("feed ingestor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Connected reports whether the feed currently holds a live connection.
func (i *Ingestor) Connected() bool {
	return i.connected.Load()
}

// Stats returns counters since process start.
func (i *Ingestor) Stats() Stats {
	return Stats{
		FramesReceived: i.framesReceived.Load(),
		TradesApplied:  i.tradesApplied.Load(),
		ParseErrors:    i.parseErrors.Load(),
		Reconnects:     i.reconnects.Load(),
	}
}

// run connects and consumes messages until ctx is cancelled,
// reconnecting on failure.
func (i *Ingestor) run(ctx context.Context) {
	defer i.wg.Done()

	backoff := i.cfg.ReconnectBaseDelay

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		client := i.newClient(ClientConfig{
			URL:          i.feedURL(),
			PingTimeout:  i.cfg.PingTimeout,
			WriteTimeout: i.cfg.WriteTimeout,
			BufferSize:   i.cfg.BufferSize,
		}, i.logger)

		err := client.Connect(ctx)
		if err != nil {
			i.logger.Warn("feed connect failed",
				"error", err,
				"retry_in", backoff,
			)
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, i.cfg.ReconnectMaxDelay)
			i.reconnects.Add(1)
			continue
		}

		i.connected.Store(true)
		backoff = i.cfg.ReconnectBaseDelay

		err = i.consume(ctx, client)
		i.connected.Store(false)
		client.Close()

		if ctx.Err() != nil {
			return
		}

		i.logger.Warn("feed connection lost",
			"error", err,
			"retry_in", backoff,
		)
		if !sleepCtx(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff, i.cfg.ReconnectMaxDelay)
		i.reconnects.Add(1)
	}
}

// consume drains client channels until the connection errors or ctx is
// cancelled.
func (i *Ingestor) consume(ctx context.Context, client Client) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-client.Errors():
			return err
		case msg := <-client.Messages():
			i.framesReceived.Add(1)
			i.handleMessage(msg)
		}
	}
}

// handleMessage decodes one frame and applies its trades.
func (i *Ingestor) handleMessage(msg TimestampedMessage) {
	var frame tradeFrame
	if err := json.Unmarshal(msg.Data, &frame); err != nil {
		i.parseErrors.Add(1)
		i.logger.Debug("dropping undecodable frame", "error", err)
		return
	}

	switch frame.Type {
	case frameTypeTrade:
	case frameTypePing:
		return
	default:
		i.logger.Debug("ignoring frame", "type", frame.Type)
		return
	}

	for _, tick := range frame.Data {
		if tick.Symbol == "" || tick.Price <= 0 {
			i.parseErrors.Add(1)
			continue
		}

		rec := model.TradeRecord{
			Symbol:     tick.Symbol,
			Price:      tick.Price,
			Volume:     tick.Volume,
			EventTime:  time.UnixMilli(tick.Timestamp),
			ReceivedAt: msg.ReceivedAt,
		}
		i.cache.Put(rec)
		i.tradesApplied.Add(1)

		if i.sink != nil {
			select {
			case i.sink <- rec:
			default:
			}
		}
	}
}

// feedURL builds the connection URL with the token query parameter.
func (i *Ingestor) feedURL() string {
	return fmt.Sprintf("%s?token=%s", i.cfg.WSURL, url.QueryEscape(i.cfg.Token))
}

// nextBackoff doubles the delay up to max.
func nextBackoff(cur, max time.Duration) time.Duration {
	next := cur * 2
	if next > max {
		next = max
	}
	return next
}

// sleepCtx waits d or until ctx is done. Reports whether the full wait
// elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
