package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
server:
  addr: ":9000"
  static_dir: web
finnhub:
  token: test-token
market:
  exchange: US
  timezone: America/New_York
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9000")
	}
	if cfg.Server.StaticDir != "web" {
		t.Errorf("Server.StaticDir = %q, want %q", cfg.Server.StaticDir, "web")
	}
	if cfg.Finnhub.Token != "test-token" {
		t.Errorf("Finnhub.Token = %q, want %q", cfg.Finnhub.Token, "test-token")
	}
	if cfg.Market.Timezone != "America/New_York" {
		t.Errorf("Market.Timezone = %q, want %q", cfg.Market.Timezone, "America/New_York")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_FINNHUB_TOKEN", "secret123")

	yaml := `
finnhub:
  token: ${TEST_FINNHUB_TOKEN}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Finnhub.Token != "secret123" {
		t.Errorf("Finnhub.Token = %q, want %q", cfg.Finnhub.Token, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
finnhub:
  token: test-token
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Finnhub.RestURL != DefaultRestURL {
		t.Errorf("Finnhub.RestURL = %q, want default %q", cfg.Finnhub.RestURL, DefaultRestURL)
	}
	if cfg.Finnhub.WSURL != DefaultWSURL {
		t.Errorf("Finnhub.WSURL = %q, want default %q", cfg.Finnhub.WSURL, DefaultWSURL)
	}
	if cfg.Market.Timezone != DefaultTimezone {
		t.Errorf("Market.Timezone = %q, want default %q", cfg.Market.Timezone, DefaultTimezone)
	}
	if cfg.Holidays.RefreshInterval != DefaultRefreshInterval {
		t.Errorf("Holidays.RefreshInterval = %v, want default %v", cfg.Holidays.RefreshInterval, DefaultRefreshInterval)
	}
	if cfg.Feed.ReconnectMaxDelay != DefaultReconnectMaxDelay {
		t.Errorf("Feed.ReconnectMaxDelay = %v, want default %v", cfg.Feed.ReconnectMaxDelay, DefaultReconnectMaxDelay)
	}
}

func TestLoadWithDefaults_ArchiveDisabled(t *testing.T) {
	yaml := `
finnhub:
  token: test-token
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Archive defaults are only applied when the archive is enabled.
	if cfg.Archive.Enabled {
		t.Error("Archive.Enabled = true, want false")
	}
	if cfg.Archive.BatchSize != 0 {
		t.Errorf("Archive.BatchSize = %d, want 0 when disabled", cfg.Archive.BatchSize)
	}
}

func TestValidate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{}
		cfg.Finnhub.Token = "tok"
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr string
	}{
		{
			name:    "missing token",
			mutate:  func(c *ServiceConfig) { c.Finnhub.Token = "" },
			wantErr: "finnhub.token is required",
		},
		{
			name:    "refresh interval too small",
			mutate:  func(c *ServiceConfig) { c.Holidays.RefreshInterval = time.Second },
			wantErr: "holidays.refresh_interval must be >= 1m",
		},
		{
			name: "reconnect base exceeds max",
			mutate: func(c *ServiceConfig) {
				c.Feed.ReconnectBaseDelay = 2 * time.Minute
				c.Feed.ReconnectMaxDelay = time.Minute
			},
			wantErr: "feed.reconnect_base_delay (2m0s) cannot exceed reconnect_max_delay (1m0s)",
		},
		{
			name: "archive enabled without host",
			mutate: func(c *ServiceConfig) {
				c.Archive.Enabled = true
				c.Archive.BatchSize = 100
				c.Archive.BufferSize = 100
			},
			wantErr: "archive.database.host is required",
		},
		{
			name:    "valid config",
			mutate:  func(c *ServiceConfig) {},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
