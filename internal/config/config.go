package config

import "time"

// ServiceConfig is the root configuration for a stocktime instance.
type ServiceConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Finnhub  FinnhubConfig  `yaml:"finnhub"`
	Market   MarketConfig   `yaml:"market"`
	Holidays HolidaysConfig `yaml:"holidays"`
	Feed     FeedConfig     `yaml:"feed"`
	Archive  ArchiveConfig  `yaml:"archive"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string        `yaml:"addr"`       // Listen address (e.g., ":8000")
	StaticDir string        `yaml:"static_dir"` // Directory served at "/", empty disables
	Timeout   time.Duration `yaml:"timeout"`    // Read/write timeout
}

// FinnhubConfig holds Finnhub API settings.
type FinnhubConfig struct {
	RestURL    string        `yaml:"rest_url"`
	WSURL      string        `yaml:"ws_url"`
	Token      string        `yaml:"token"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// MarketConfig identifies the exchange and its time zones.
type MarketConfig struct {
	Exchange        string `yaml:"exchange"`         // Holiday calendar exchange code
	Timezone        string `yaml:"timezone"`         // Market-local zone for session math
	DisplayTimezone string `yaml:"display_timezone"` // Secondary zone shown alongside
}

// HolidaysConfig holds holiday calendar refresh settings.
type HolidaysConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
}

// FeedConfig holds streaming trade feed settings.
type FeedConfig struct {
	ReconnectBaseDelay time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay  time.Duration `yaml:"reconnect_max_delay"`
	PingTimeout        time.Duration `yaml:"ping_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	BufferSize         int           `yaml:"buffer_size"`
}

// ArchiveConfig holds the optional trade tick archive settings.
// When disabled the service is purely in-memory.
type ArchiveConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Database      DBConfig      `yaml:"database"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}

// DBConfig holds a single PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}
