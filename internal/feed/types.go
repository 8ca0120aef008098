package feed

import (
	"errors"
	"time"
)

// Errors
var (
	ErrStaleConnection = errors.New("connection stale (no ping)")
	ErrAlreadyClosed   = errors.New("already closed")
)

// TimestampedMessage wraps raw message data with receive timestamp.
type TimestampedMessage struct {
	Data       []byte    // Raw message bytes from WebSocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// ClientConfig configures a WebSocket client.
type ClientConfig struct {
	URL          string        // Full WebSocket URL including the token query
	PingTimeout  time.Duration // Max time without ping before considering connection stale
	WriteTimeout time.Duration // Write deadline for control frames
	BufferSize   int           // Message channel buffer size
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		PingTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Second,
		BufferSize:   1000,
	}
}

// IngestorConfig configures the feed ingestor.
type IngestorConfig struct {
	WSURL              string        // WebSocket base URL (e.g., wss://ws.finnhub.io)
	Token              string        // API token appended as a query parameter
	ReconnectBaseDelay time.Duration // Base wait time for reconnection
	ReconnectMaxDelay  time.Duration // Max wait time for reconnection
	PingTimeout        time.Duration // Passed through to the client
	WriteTimeout       time.Duration // Passed through to the client
	BufferSize         int           // Client message buffer size
}

// DefaultIngestorConfig returns sensible defaults.
func DefaultIngestorConfig() IngestorConfig {
	return IngestorConfig{
		ReconnectBaseDelay: 1 * time.Second,
		ReconnectMaxDelay:  60 * time.Second,
		PingTimeout:        60 * time.Second,
		WriteTimeout:       5 * time.Second,
		BufferSize:         1000,
	}
}

// Stats counts ingestor activity since process start.
type Stats struct {
	FramesReceived int64
	TradesApplied  int64
	ParseErrors    int64
	Reconnects     int64
}

// Frame kinds delivered by the upstream feed.
const (
	frameTypeTrade = "trade"
	frameTypePing  = "ping"
)

// tradeFrame is the wire envelope for a batch of trade ticks.
type tradeFrame struct {
	Type string     `json:"type"`
	Data []tickWire `json:"data"`
}

// tickWire is one trade tick on the wire. Event times are millisecond
// epochs.
type tickWire struct {
	Symbol    string  `json:"s"`
	Price     float64 `json:"p"`
	Timestamp int64   `json:"t"`
	Volume    float64 `json:"v"`
}
