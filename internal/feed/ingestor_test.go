package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/HouseYeung/Stock-Time/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestIngestor(sink chan<- model.TradeRecord) (*Ingestor, *Cache) {
	cache := NewCache()
	ing := NewIngestor(DefaultIngestorConfig(), cache, sink, quietLogger())
	return ing, cache
}

func TestHandleMessage_TradeFrame(t *testing.T) {
	ing, cache := newTestIngestor(nil)

	raw := `{"type":"trade","data":[
		{"s":"AAPL","p":189.5,"t":1700000000000,"v":100},
		{"s":"TSLA","p":242.1,"t":1700000000500,"v":50}
	]}`
	receivedAt := time.Now()
	ing.handleMessage(TimestampedMessage{Data: []byte(raw), ReceivedAt: receivedAt})

	rec, ok := cache.Get("AAPL")
	if !ok {
		t.Fatal("AAPL not cached")
	}
	if rec.Price != 189.5 {
		t.Errorf("Price = %v, want 189.5", rec.Price)
	}
	if rec.Volume != 100 {
		t.Errorf("Volume = %v, want 100", rec.Volume)
	}
	if !rec.EventTime.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("EventTime = %v, want %v", rec.EventTime, time.UnixMilli(1700000000000))
	}
	if !rec.ReceivedAt.Equal(receivedAt) {
		t.Errorf("ReceivedAt = %v, want %v", rec.ReceivedAt, receivedAt)
	}

	if _, ok := cache.Get("TSLA"); !ok {
		t.Error("TSLA not cached")
	}

	stats := ing.Stats()
	if stats.TradesApplied != 2 {
		t.Errorf("TradesApplied = %d, want 2", stats.TradesApplied)
	}
	if stats.ParseErrors != 0 {
		t.Errorf("ParseErrors = %d, want 0", stats.ParseErrors)
	}
}

func TestHandleMessage_LastWriteWins(t *testing.T) {
	ing, cache := newTestIngestor(nil)

	ing.handleMessage(TimestampedMessage{Data: []byte(`{"type":"trade","data":[{"s":"AAPL","p":100,"t":1,"v":1}]}`)})
	ing.handleMessage(TimestampedMessage{Data: []byte(`{"type":"trade","data":[{"s":"AAPL","p":101,"t":2,"v":1}]}`)})

	rec, _ := cache.Get("AAPL")
	if rec.Price != 101 {
		t.Errorf("Price = %v, want 101 (latest frame)", rec.Price)
	}
}

func TestHandleMessage_MalformedDropped(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"missing symbol", `{"type":"trade","data":[{"p":10,"t":1,"v":1}]}`},
		{"zero price", `{"type":"trade","data":[{"s":"AAPL","p":0,"t":1,"v":1}]}`},
		{"negative price", `{"type":"trade","data":[{"s":"AAPL","p":-3,"t":1,"v":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing, cache := newTestIngestor(nil)
			ing.handleMessage(TimestampedMessage{Data: []byte(tt.raw)})

			if cache.Len() != 0 {
				t.Errorf("Len() = %d after malformed frame, want 0", cache.Len())
			}
			if ing.Stats().ParseErrors != 1 {
				t.Errorf("ParseErrors = %d, want 1", ing.Stats().ParseErrors)
			}
		})
	}
}

func TestHandleMessage_PartialFrameAppliesValidTicks(t *testing.T) {
	ing, cache := newTestIngestor(nil)

	// One bad tick must not block the good one in the same frame.
	raw := `{"type":"trade","data":[
		{"s":"","p":10,"t":1,"v":1},
		{"s":"MSFT","p":410.2,"t":2,"v":5}
	]}`
	ing.handleMessage(TimestampedMessage{Data: []byte(raw)})

	if _, ok := cache.Get("MSFT"); !ok {
		t.Error("valid tick was not applied")
	}
	stats := ing.Stats()
	if stats.TradesApplied != 1 || stats.ParseErrors != 1 {
		t.Errorf("applied/errors = %d/%d, want 1/1", stats.TradesApplied, stats.ParseErrors)
	}
}

func TestHandleMessage_PingIgnored(t *testing.T) {
	ing, cache := newTestIngestor(nil)

	ing.handleMessage(TimestampedMessage{Data: []byte(`{"type":"ping"}`)})

	if cache.Len() != 0 {
		t.Errorf("Len() = %d after ping, want 0", cache.Len())
	}
	if ing.Stats().ParseErrors != 0 {
		t.Errorf("ParseErrors = %d for ping frame, want 0", ing.Stats().ParseErrors)
	}
}

func TestHandleMessage_SinkReceivesTrades(t *testing.T) {
	sink := make(chan model.TradeRecord, 4)
	ing, _ := newTestIngestor(sink)

	ing.handleMessage(TimestampedMessage{Data: []byte(`{"type":"trade","data":[{"s":"AAPL","p":100,"t":1,"v":1}]}`)})

	select {
	case rec := <-sink:
		if rec.Symbol != "AAPL" {
			t.Errorf("sink Symbol = %q, want AAPL", rec.Symbol)
		}
	default:
		t.Error("sink did not receive the trade")
	}
}

func TestHandleMessage_FullSinkDoesNotBlock(t *testing.T) {
	sink := make(chan model.TradeRecord) // unbuffered, no reader
	ing, cache := newTestIngestor(sink)

	done := make(chan struct{})
	go func() {
		ing.handleMessage(TimestampedMessage{Data: []byte(`{"type":"trade","data":[{"s":"AAPL","p":100,"t":1,"v":1}]}`)})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handleMessage blocked on a full sink")
	}

	if _, ok := cache.Get("AAPL"); !ok {
		t.Error("cache not updated when sink was full")
	}
}

// fakeClient scripts connection behavior for the reconnect loop.
type fakeClient struct {
	connectErr error
	messages   chan TimestampedMessage
	errors     chan error
}

func newFakeClient(connectErr error) *fakeClient {
	return &fakeClient{
		connectErr: connectErr,
		messages:   make(chan TimestampedMessage, 8),
		errors:     make(chan error, 1),
	}
}

func (f *fakeClient) Connect(ctx context.Context) error { return f.connectErr }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Messages() <-chan TimestampedMessage { return f.messages }

func (f *fakeClient) Errors() <-chan error { return f.errors }

func (f *fakeClient) IsConnected() bool { return f.connectErr == nil }

func TestIngestor_ReconnectsAfterConnectionLoss(t *testing.T) {
	cache := NewCache()
	cfg := DefaultIngestorConfig()
	cfg.ReconnectBaseDelay = 5 * time.Millisecond
	cfg.ReconnectMaxDelay = 10 * time.Millisecond

	ing := NewIngestor(cfg, cache, nil, quietLogger())

	clients := make(chan *fakeClient, 8)
	ing.newClient = func(ClientConfig, *slog.Logger) Client {
		fc := newFakeClient(nil)
		clients <- fc
		return fc
	}

	if err := ing.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// First connection delivers a trade, then dies.
	first := <-clients
	first.messages <- TimestampedMessage{Data: []byte(`{"type":"trade","data":[{"s":"AAPL","p":100,"t":1,"v":1}]}`)}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := cache.Get("AAPL"); ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	first.errors <- errors.New("connection reset")

	// The loop must dial again.
	select {
	case <-clients:
	case <-time.After(2 * time.Second):
		t.Fatal("no reconnect attempt after connection loss")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := ing.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if _, ok := cache.Get("AAPL"); !ok {
		t.Error("trade from first connection not cached")
	}
	if ing.Stats().Reconnects == 0 {
		t.Error("Reconnects = 0, want at least 1")
	}
}

func TestIngestor_StopWhileBackingOff(t *testing.T) {
	cfg := DefaultIngestorConfig()
	cfg.ReconnectBaseDelay = time.Hour
	cfg.ReconnectMaxDelay = time.Hour

	ing := NewIngestor(cfg, NewCache(), nil, quietLogger())
	ing.newClient = func(ClientConfig, *slog.Logger) Client {
		return newFakeClient(errors.New("dial refused"))
	}

	if err := ing.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if ing.Connected() {
		t.Error("Connected() = true while dialing fails")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := ing.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestNextBackoff(t *testing.T) {
	tests := []struct {
		cur, max, want time.Duration
	}{
		{time.Second, time.Minute, 2 * time.Second},
		{40 * time.Second, time.Minute, time.Minute},
		{time.Minute, time.Minute, time.Minute},
	}
	for _, tt := range tests {
		if got := nextBackoff(tt.cur, tt.max); got != tt.want {
			t.Errorf("nextBackoff(%v, %v) = %v, want %v", tt.cur, tt.max, got, tt.want)
		}
	}
}
