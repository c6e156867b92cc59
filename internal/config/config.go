// Package config loads the service configuration from the environment.
//
// Variables use the PITCHFUND_ prefix and a double underscore for nesting,
// e.g. PITCHFUND_DATABASE__HOST -> database.host -> Config.Database.Host.
// A `.env` file in the working directory is loaded first when present.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// EnvPrefix is stripped from every environment key before mapping.
	EnvPrefix = "PITCHFUND_"

	// ServiceName tags logs, traces and APM data.
	ServiceName = "pitchfund"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Media         MediaConfig          `koanf:"media"`
	Invest        InvestConfig         `koanf:"invest"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details. Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// MediaConfig describes where stored media paths live and how they are exposed.
type MediaConfig struct {
	// URL is the public prefix prepended to stored paths, e.g. "/media/".
	URL string `koanf:"url"`

	// Root is the directory the stored paths are relative to.
	Root string `koanf:"root"`

	// BaseURL overrides the request scheme+host when building absolute URLs.
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
}

// InvestConfig tunes the investment endpoint.
type InvestConfig struct {
	IdempotencyTTL time.Duration `koanf:"idempotency_ttl"`

	// IdempotencyPendingTTL bounds how long a claimed key blocks retries when
	// its result is never stored. Defaults to twice the server write timeout.
	IdempotencyPendingTTL time.Duration `koanf:"idempotency_pending_ttl"`

	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
	RateBurst int     `koanf:"rate_burst" validate:"gte=0"`
}

// IntegrationConfig stores third party credentials and notification targets.
type IntegrationConfig struct {
	ResendAPIKey           string   `koanf:"resend_api_key"`
	NotificationFrom       string   `koanf:"notification_from"`
	NotificationRecipients []string `koanf:"notification_recipients" validate:"dive,email"`
}

// NotificationsEnabled reports whether goal-reached emails can be sent.
func (c IntegrationConfig) NotificationsEnabled() bool {
	return c.ResendAPIKey != "" && len(c.NotificationRecipients) > 0
}

// LoadConfig reads, validates and defaults the configuration.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		logger.Error().Err(err).Msg("could not load initial env variables")
		return nil, errors.Wrap(err, "loading env")
	}

	mainConfig := &Config{}

	if err = k.Unmarshal("", mainConfig); err != nil {
		logger.Error().Err(err).Msg("could not unmarshal main config")
		return nil, errors.Wrap(err, "unmarshalling config")
	}

	mainConfig.applyDefaults()

	validate := validator.New()
	if err = validate.Struct(mainConfig); err != nil {
		logger.Error().Err(err).Msg("config validation failed")
		return nil, errors.Wrap(err, "validating config")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid observability config")
		return nil, errors.Wrap(err, "validating observability config")
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Media.URL == "" {
		c.Media.URL = "/media/"
	}
	if !strings.HasSuffix(c.Media.URL, "/") {
		c.Media.URL += "/"
	}
	if c.Media.Root == "" {
		c.Media.Root = "media"
	}

	if c.Invest.IdempotencyTTL <= 0 {
		c.Invest.IdempotencyTTL = 24 * time.Hour
	}
	if c.Invest.IdempotencyPendingTTL <= 0 {
		c.Invest.IdempotencyPendingTTL = 2 * time.Duration(c.Server.WriteTimeout) * time.Second
		if c.Invest.IdempotencyPendingTTL <= 0 {
			c.Invest.IdempotencyPendingTTL = time.Minute
		}
	}
	if c.Invest.RateLimit > 0 && c.Invest.RateBurst == 0 {
		c.Invest.RateBurst = int(c.Invest.RateLimit) * 2
	}

	if c.Integration.NotificationFrom == "" {
		c.Integration.NotificationFrom = "Pitchfund <onboarding@resend.dev>"
	}
}
