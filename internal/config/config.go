package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const (
	EnvPrefix = "DASHBOARD_"

	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

var ConfigFileSearchPaths = []string{"config.yaml", "./config/config.yaml", "/etc/visit-dashboard/config.yaml"}

var (
	ErrMissingBaseURL  = errors.New("statistics.http.base_url is required for the http source")
	ErrMissingDSN      = errors.New("statistics.postgres.dsn is required for the postgres source")
	ErrInvalidTimezone = errors.New("statistics.postgres.timezone is not a known location")
)

type Configuration struct {
	App        AppConfiguration        `mapstructure:"app"        validate:"required"`
	Statistics StatisticsConfiguration `mapstructure:"statistics" validate:"required"`
	Cache      CacheConfiguration      `mapstructure:"cache"`
}

type AppConfiguration struct {
	Port                   int    `mapstructure:"port"                     validate:"gte=1,lte=65535"`
	LogLevel               string `mapstructure:"log_level"                validate:"oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=300"`
	LoadTimeoutSeconds     int    `mapstructure:"load_timeout_seconds"     validate:"gte=0,lte=300"`
}

type StatisticsConfiguration struct {
	Source   string               `mapstructure:"source"   validate:"oneof=http postgres"`
	HTTP     HTTPSourceConfig     `mapstructure:"http"`
	Postgres PostgresSourceConfig `mapstructure:"postgres"`
}

type HTTPSourceConfig struct {
	BaseURL        string `mapstructure:"base_url"        validate:"omitempty,url"`
	Path           string `mapstructure:"path"`
	Envelope       string `mapstructure:"envelope"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=120"`
}

type PostgresSourceConfig struct {
	DSN          string `mapstructure:"dsn"`
	EventName    string `mapstructure:"event_name"     validate:"required"`
	Timezone     string `mapstructure:"timezone"       validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

type CacheConfiguration struct {
	Redis RedisConfiguration `mapstructure:"redis"`
}

// RedisConfiguration leaves the cache off when Addr is empty.
type RedisConfiguration struct {
	Addr       string `mapstructure:"addr"        validate:"omitempty,hostname_port"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"          validate:"gte=0"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=1"`
	Key        string `mapstructure:"key"         validate:"required"`
}

func (c AppConfiguration) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func (c AppConfiguration) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutSeconds) * time.Second
}

func (c HTTPSourceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c RedisConfiguration) Enabled() bool {
	return c.Addr != ""
}

func (c RedisConfiguration) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c PostgresSourceConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}
	return loc, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]interface{}{
		"app.port":                     8080,
		"app.log_level":                "info",
		"app.shutdown_timeout_seconds": 5,
		"app.load_timeout_seconds":     15,

		"statistics.source":               SourceHTTP,
		"statistics.http.path":            "/statistic",
		"statistics.http.timeout_seconds": 10,

		"statistics.postgres.event_name":     "page_view",
		"statistics.postgres.timezone":       "UTC",
		"statistics.postgres.max_open_conns": 20,
		"statistics.postgres.max_idle_conns": 10,

		"cache.redis.db":          0,
		"cache.redis.ttl_seconds": 30,
		"cache.redis.key":         "dashboard:statistics",
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

func readFileConfig(k *koanf.Koanf) error {
	filePath := os.Getenv("CONFIG_FILE_PATH")
	if filePath == "" {
		for _, path := range ConfigFileSearchPaths {
			if _, err := os.Stat(path); err == nil {
				filePath = path
				break
			}
		}
	}

	if filePath == "" {
		zap.L().Debug("No configuration file found, using defaults and environment")
		return nil
	}

	if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
		return fmt.Errorf("load config file %s: %w", filePath, err)
	}
	zap.L().Info("Read configuration from file", zap.String("path", filePath))
	return nil
}

// readEnvVars maps DASHBOARD_CACHE__REDIS__ADDR to cache.redis.addr.
func readEnvVars(k *koanf.Koanf) error {
	return k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Join(strings.Split(s, "__"), ".")
	}), nil)
}

func validate(cfg Configuration) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch cfg.Statistics.Source {
	case SourceHTTP:
		if cfg.Statistics.HTTP.BaseURL == "" {
			return ErrMissingBaseURL
		}
	case SourcePostgres:
		if cfg.Statistics.Postgres.DSN == "" {
			return ErrMissingDSN
		}
		if _, err := cfg.Statistics.Postgres.Location(); err != nil {
			return err
		}
	}
	return nil
}

// Read layers defaults, the optional YAML file and DASHBOARD_ environment
// variables, in that order, then validates the result.
func Read() (Configuration, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return Configuration{}, fmt.Errorf("load defaults: %w", err)
	}
	if err := readFileConfig(k); err != nil {
		return Configuration{}, err
	}
	if err := readEnvVars(k); err != nil {
		return Configuration{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Configuration
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "mapstructure"}); err != nil {
		return Configuration{}, fmt.Errorf("decode configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}
