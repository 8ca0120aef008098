package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAddr               = ":8000"
	DefaultServerTimeout      = 15 * time.Second
	DefaultRestURL            = "https://finnhub.io/api/v1"
	DefaultWSURL              = "wss://ws.finnhub.io"
	DefaultAPITimeout         = 30 * time.Second
	DefaultMaxRetries         = 3
	DefaultExchange           = "US"
	DefaultTimezone           = "America/New_York"
	DefaultDisplayTimezone    = "Asia/Shanghai"
	DefaultRefreshInterval    = 12 * time.Hour
	DefaultFetchTimeout       = 30 * time.Second
	DefaultReconnectBaseDelay = 1 * time.Second
	DefaultReconnectMaxDelay  = 60 * time.Second
	DefaultPingTimeout        = 60 * time.Second
	DefaultWriteTimeout       = 5 * time.Second
	DefaultFeedBufferSize     = 1000
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultBatchSize          = 500
	DefaultFlushInterval      = 1 * time.Second
	DefaultArchiveBufferSize  = 10000
)

func (c *ServiceConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = DefaultServerTimeout
	}

	if c.Finnhub.RestURL == "" {
		c.Finnhub.RestURL = DefaultRestURL
	}
	if c.Finnhub.WSURL == "" {
		c.Finnhub.WSURL = DefaultWSURL
	}
	if c.Finnhub.Timeout == 0 {
		c.Finnhub.Timeout = DefaultAPITimeout
	}
	if c.Finnhub.MaxRetries == 0 {
		c.Finnhub.MaxRetries = DefaultMaxRetries
	}

	if c.Market.Exchange == "" {
		c.Market.Exchange = DefaultExchange
	}
	if c.Market.Timezone == "" {
		c.Market.Timezone = DefaultTimezone
	}
	if c.Market.DisplayTimezone == "" {
		c.Market.DisplayTimezone = DefaultDisplayTimezone
	}

	if c.Holidays.RefreshInterval == 0 {
		c.Holidays.RefreshInterval = DefaultRefreshInterval
	}
	if c.Holidays.FetchTimeout == 0 {
		c.Holidays.FetchTimeout = DefaultFetchTimeout
	}

	if c.Feed.ReconnectBaseDelay == 0 {
		c.Feed.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.Feed.ReconnectMaxDelay == 0 {
		c.Feed.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}
	if c.Feed.PingTimeout == 0 {
		c.Feed.PingTimeout = DefaultPingTimeout
	}
	if c.Feed.WriteTimeout == 0 {
		c.Feed.WriteTimeout = DefaultWriteTimeout
	}
	if c.Feed.BufferSize == 0 {
		c.Feed.BufferSize = DefaultFeedBufferSize
	}

	if c.Archive.Enabled {
		applyDBDefaults(&c.Archive.Database)
		if c.Archive.BatchSize == 0 {
			c.Archive.BatchSize = DefaultBatchSize
		}
		if c.Archive.FlushInterval == 0 {
			c.Archive.FlushInterval = DefaultFlushInterval
		}
		if c.Archive.BufferSize == 0 {
			c.Archive.BufferSize = DefaultArchiveBufferSize
		}
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
