package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/geojsonprofil/profil/internal/pkg/geospatial"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Profile   ProfileConfig   `mapstructure:"profile"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	ReadTimeout    int `mapstructure:"read_timeout"`
	WriteTimeout   int `mapstructure:"write_timeout"`
	RequestTimeout int `mapstructure:"request_timeout"`
	BodyLimitMB    int `mapstructure:"body_limit_mb"`
	RateLimit      int `mapstructure:"rate_limit"` // requests per minute per IP, 0 disables
}

// BodyLimit returns the maximum upload size in bytes.
func (s ServerConfig) BodyLimit() int {
	return s.BodyLimitMB * 1024 * 1024
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ProfileConfig struct {
	DistanceModel string  `mapstructure:"distance_model"`
	LabelOffset   float64 `mapstructure:"label_offset"`
	TextHeight    float64 `mapstructure:"text_height"`
	MaxGridlines  int     `mapstructure:"max_gridlines"`
	Filename      string  `mapstructure:"filename"`
}

type NATSConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.request_timeout", 15)
	v.SetDefault("server.body_limit_mb", 10)
	v.SetDefault("server.rate_limit", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("profile.distance_model", geospatial.ModelWGS84)
	v.SetDefault("profile.label_offset", 2.0)
	v.SetDefault("profile.text_height", 0.25)
	v.SetDefault("profile.max_gridlines", 10000)
	v.SetDefault("profile.filename", "profil.dxf")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.subject", "profil.conversions")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: PROFIL_SERVER_PORT → server.port
	v.SetEnvPrefix("PROFIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if c.Server.BodyLimitMB <= 0 {
		errs = append(errs, "server.body_limit_mb must be positive")
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, "server.rate_limit must not be negative")
	}
	if _, err := geospatial.ParseModel(c.Profile.DistanceModel); err != nil {
		errs = append(errs, fmt.Sprintf("profile.distance_model: %v", err))
	}
	if c.Profile.TextHeight <= 0 {
		errs = append(errs, "profile.text_height must be positive")
	}
	if c.Profile.MaxGridlines < 0 {
		errs = append(errs, "profile.max_gridlines must not be negative")
	}
	if c.Profile.Filename == "" {
		errs = append(errs, "profile.filename is required")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		errs = append(errs, "nats.url is required when nats is enabled")
	}
	if c.NATS.Enabled && c.NATS.Subject == "" {
		errs = append(errs, "nats.subject is required when nats is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
