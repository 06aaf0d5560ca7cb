package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angas/elkvart-go/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
	// Secret for the selection session cookie. If empty a random secret is
	// generated at startup, which resets selections on restart.
	SessionSecret *string `mapstructure:"session_secret"`
}

type AppConfigDatabase struct {
	Path string
	// How many days daily backup files should be stored before they get deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 30
	}
	return *d.BackupRetentionDays
}

type AppConfigPrice struct {
	Area string `mapstructure:"area"` // "SE1", "SE2", "SE3", "SE4"
	// Upstream fetch timeout in seconds, default: 25
	FetchTimeoutSec *int `mapstructure:"fetch_timeout_sec"`
	// How long a fetched day is memoized in minutes, default: 15
	CacheTtlMin *int `mapstructure:"cache_ttl_min"`
	// Cron spec for the background refresh task, default: "@every 5m"
	RefreshAt *string `mapstructure:"refresh_at"`
}

func (p AppConfigPrice) GetFetchTimeout() time.Duration {
	if p.FetchTimeoutSec == nil {
		return 25 * time.Second
	}
	return time.Duration(*p.FetchTimeoutSec) * time.Second
}

func (p AppConfigPrice) GetCacheTtl() time.Duration {
	if p.CacheTtlMin == nil {
		return 15 * time.Minute
	}
	return time.Duration(*p.CacheTtlMin) * time.Minute
}

func (p AppConfigPrice) GetRefreshAt() string {
	if p.RefreshAt == nil {
		return "@every 5m"
	}
	return *p.RefreshAt
}

type AppConfigAnnounce struct {
	Host     string // MQTT broker, announcements disabled when empty
	Port     int16
	Username string
	Password string
	Topic    *string
}

func (a AppConfigAnnounce) Enabled() bool {
	return a.Host != ""
}

func (a AppConfigAnnounce) GetTopic() string {
	if a.Topic == nil {
		return "elkvart/current"
	}
	return *a.Topic
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api      AppConfigApi
	Database AppConfigDatabase
	Price    AppConfigPrice
	Announce AppConfigAnnounce
	Logging  AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
