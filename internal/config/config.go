// Package config loads labdashd settings with viper. Values come from
// configs/config.yml (or an explicit file) and may be overridden by
// LABDASH_* environment variables, e.g. LABDASH_AUTH_SIGNING_KEY.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"lab_dashboard/internal/models"
)

const envPrefix = "LABDASH"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Port     string
	LogLevel string
	DBPath   string
	Auth     AuthConfig
	Refresh  time.Duration
	Source   SourceConfig
	HTTP     HTTPConfig
	Labs     []models.Lab
}

type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

type SourceConfig struct {
	MinLatency     time.Duration
	MaxLatency     time.Duration
	MaintenanceMax int
	Seed           int64
}

type HTTPConfig struct {
	RateLimitPerSec float64
	RateBurst       int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "lab_dashboard.db")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("refresh.interval", 30*time.Second)
	v.SetDefault("source.min_latency", 800*time.Millisecond)
	v.SetDefault("source.max_latency", 800*time.Millisecond)
	v.SetDefault("source.maintenance_max", 2)
	v.SetDefault("source.seed", 0)
	v.SetDefault("http.rate_limit_per_sec", 10.0)
	v.SetDefault("http.rate_burst", 20)
}

// Load reads the config file at path, or configs/config.yml when path is
// empty. A missing default file is not an error; an explicit one is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		DBPath:   v.GetString("db.path"),
		Auth: AuthConfig{
			SigningKey: v.GetString("auth.signing_key"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
		},
		Refresh: v.GetDuration("refresh.interval"),
		Source: SourceConfig{
			MinLatency:     v.GetDuration("source.min_latency"),
			MaxLatency:     v.GetDuration("source.max_latency"),
			MaintenanceMax: v.GetInt("source.maintenance_max"),
			Seed:           v.GetInt64("source.seed"),
		},
		HTTP: HTTPConfig{
			RateLimitPerSec: v.GetFloat64("http.rate_limit_per_sec"),
			RateBurst:       v.GetInt("http.rate_burst"),
		},
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.UnmarshalKey("labs", &cfg.Labs, hook); err != nil {
		return nil, fmt.Errorf("decode labs: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the rest of the program relies on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return fmt.Errorf("%w: auth.signing_key is required", ErrInvalid)
	}
	if c.Refresh <= 0 {
		return fmt.Errorf("%w: refresh.interval must be positive", ErrInvalid)
	}
	if c.Source.MinLatency < 0 || c.Source.MaxLatency < c.Source.MinLatency {
		return fmt.Errorf("%w: source latency range [%s, %s]", ErrInvalid, c.Source.MinLatency, c.Source.MaxLatency)
	}
	if c.Source.MaintenanceMax < 0 {
		return fmt.Errorf("%w: source.maintenance_max must not be negative", ErrInvalid)
	}

	seen := make(map[string]struct{}, len(c.Labs))
	for i, lab := range c.Labs {
		if strings.TrimSpace(lab.ID) == "" {
			return fmt.Errorf("%w: labs[%d] has no id", ErrInvalid, i)
		}
		if _, dup := seen[lab.ID]; dup {
			return fmt.Errorf("%w: duplicate lab id %q", ErrInvalid, lab.ID)
		}
		seen[lab.ID] = struct{}{}
		if lab.TotalComputers <= 0 {
			return fmt.Errorf("%w: lab %q total_computers must be positive", ErrInvalid, lab.ID)
		}
	}
	return nil
}
