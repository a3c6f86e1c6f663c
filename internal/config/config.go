// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Sessions      SessionsConfig      `yaml:"sessions"`
	Limits        LimitsConfig        `yaml:"limits"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"          validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
}

// SessionsConfig controls the in-memory session workspaces that hold a
// reference dataset between analyses.
type SessionsConfig struct {
	Capacity      int           `yaml:"capacity"       validate:"min=1"`
	IdleTTL       time.Duration `yaml:"idle_ttl"       validate:"gt=0"`
	SweepInterval time.Duration `yaml:"sweep_interval" validate:"gt=0"`
}

// LimitsConfig bounds request sizes and rates.
type LimitsConfig struct {
	MaxUploadBytes int64           `yaml:"max_upload_bytes" validate:"min=1"`
	MaxRows        int             `yaml:"max_rows"         validate:"min=1"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines API request rate limiting. A zero PerSecond
// disables the limiter.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second" validate:"min=0"`
	Burst     int     `yaml:"burst"      validate:"min=1"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled     bool   `yaml:"enabled"`
	WebhookURL  string `yaml:"webhook_url"  validate:"required_if=Enabled true,omitempty,url"`
	NotifyClean bool   `yaml:"notify_clean"` // also post runs with zero findings
}

// TelemetryConfig defines OpenTelemetry trace export.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"     validate:"required_if=Enabled true"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio" validate:"min=0,max=1"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"  validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applySessionsDefaults(&cfg.Sessions)
	applyLimitsDefaults(&cfg.Limits)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applySessionsDefaults(s *SessionsConfig) {
	if s.Capacity == 0 {
		s.Capacity = 256
	}
	if s.IdleTTL == 0 {
		s.IdleTTL = 2 * time.Hour
	}
	if s.SweepInterval == 0 {
		s.SweepInterval = 5 * time.Minute
	}
}

func applyLimitsDefaults(l *LimitsConfig) {
	if l.MaxUploadBytes == 0 {
		l.MaxUploadBytes = 32 << 20
	}
	if l.MaxRows == 0 {
		l.MaxRows = 200_000
	}
	if l.RateLimit.Burst == 0 {
		l.RateLimit.Burst = 20
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "network-link-manager"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validateConfig(cfg *Config) error {
	var errs []error

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, e := range verrs {
			errs = append(errs, formatFieldError(e))
		}
	}

	if cfg.Sessions.SweepInterval > cfg.Sessions.IdleTTL {
		errs = append(errs, fmt.Errorf(
			"sessions.sweep_interval (%s) must not exceed sessions.idle_ttl (%s)",
			cfg.Sessions.SweepInterval, cfg.Sessions.IdleTTL,
		))
	}

	return errors.Join(errs...)
}

func formatFieldError(e validator.FieldError) error {
	// Namespace is "Config.section.field"; drop the root type.
	_, field, _ := strings.Cut(e.Namespace(), ".")

	switch e.Tag() {
	case "required_if":
		return fmt.Errorf("%s is required when enabled", field)
	case "min":
		return fmt.Errorf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Errorf("%s must not exceed %s", field, e.Param())
	case "gt":
		return fmt.Errorf("%s must be greater than %s", field, e.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s (got %q)", field, e.Param(), e.Value())
	case "url":
		return fmt.Errorf("%s must be a valid URL", field)
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}
