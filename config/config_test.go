package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfigYaml = `
api:
  address: "127.0.0.1"
  port: 8080
database:
  path: "elkvart.db"
  backup_retention_days: 7
price:
  area: "SE3"
  fetch_timeout_sec: 10
  cache_ttl_min: 5
  refresh_at: "@every 1m"
announce:
  host: "mqtt.local"
  port: 1883
  username: "elkvart"
  password: "secret"
logging:
  db_level: "WARN"
  db_attrs_format: "TEXT"
  console_level: "DEBUG"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYaml), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Api", func(t *testing.T) {
		if config.Api.Address != "127.0.0.1" {
			t.Errorf("got address %s", config.Api.Address)
		}
		if config.Api.Port != 8080 {
			t.Errorf("got port %d", config.Api.Port)
		}
		if config.Api.WwwDir != nil {
			t.Error("www_dir should be unset")
		}
	})

	t.Run("Database", func(t *testing.T) {
		if config.Database.Path != "elkvart.db" {
			t.Errorf("got path %s", config.Database.Path)
		}
		if config.Database.GetBackupRetentionDays() != 7 {
			t.Errorf("got retention %d", config.Database.GetBackupRetentionDays())
		}
	})

	t.Run("Price", func(t *testing.T) {
		if config.Price.Area != "SE3" {
			t.Errorf("got area %s", config.Price.Area)
		}
		if config.Price.GetFetchTimeout() != 10*time.Second {
			t.Errorf("got fetch timeout %s", config.Price.GetFetchTimeout())
		}
		if config.Price.GetCacheTtl() != 5*time.Minute {
			t.Errorf("got cache ttl %s", config.Price.GetCacheTtl())
		}
		if config.Price.GetRefreshAt() != "@every 1m" {
			t.Errorf("got refresh spec %s", config.Price.GetRefreshAt())
		}
	})

	t.Run("Announce", func(t *testing.T) {
		if !config.Announce.Enabled() {
			t.Error("announce should be enabled when host is set")
		}
		if config.Announce.GetTopic() != "elkvart/current" {
			t.Errorf("got topic %s", config.Announce.GetTopic())
		}
	})

	t.Run("Logging", func(t *testing.T) {
		if config.Logging.GetDbLevel() != slog.LevelWarn {
			t.Errorf("got db level %s", config.Logging.GetDbLevel())
		}
		if config.Logging.GetConsoleLevel() != slog.LevelDebug {
			t.Errorf("got console level %s", config.Logging.GetConsoleLevel())
		}
		if config.Logging.GetDbMaxEntries() != 10000 {
			t.Errorf("got max entries %d", config.Logging.GetDbMaxEntries())
		}
	})
}

func TestDefaults(t *testing.T) {
	var c AppConfig

	if c.Price.GetFetchTimeout() != 25*time.Second {
		t.Errorf("got fetch timeout %s", c.Price.GetFetchTimeout())
	}
	if c.Price.GetCacheTtl() != 15*time.Minute {
		t.Errorf("got cache ttl %s", c.Price.GetCacheTtl())
	}
	if c.Price.GetRefreshAt() != "@every 5m" {
		t.Errorf("got refresh spec %s", c.Price.GetRefreshAt())
	}
	if c.Database.GetBackupRetentionDays() != 30 {
		t.Errorf("got retention %d", c.Database.GetBackupRetentionDays())
	}
	if c.Announce.Enabled() {
		t.Error("announce should be disabled without a host")
	}
	if c.Logging.GetDbLevel() != slog.LevelInfo {
		t.Errorf("got db level %s", c.Logging.GetDbLevel())
	}
}
