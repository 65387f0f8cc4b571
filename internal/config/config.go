package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
)

const devJWTSecret = "dev-secret-change-in-production"

var (
	// ErrInsecureJWTSecret is returned when production would sign tokens with the development secret.
	ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set in production environment")
	// ErrInvalidLengthWindow is returned unless 1 <= MIN_LENGTH <= DEFAULT_LENGTH <= MAX_LENGTH.
	ErrInvalidLengthWindow = errors.New("invalid password length settings")
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DefaultLength int
	MinLength     int
	MaxLength     int

	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int

	MetricsEnabled   bool
	MetricsNamespace string

	AuthEnabled bool
	JWTSecret   string
	JWTExpiry   time.Duration

	ShutdownTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port:     strconv.Itoa(env.GetInt("PORT", 8080)),
		Env:      env.GetString("ENV", "development"),
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		DefaultLength: env.GetInt("DEFAULT_LENGTH", 12),
		MinLength:     env.GetInt("MIN_LENGTH", 8),
		MaxLength:     env.GetInt("MAX_LENGTH", 32),

		RateLimitEnabled: env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRPS:     env.GetFloat64("RATE_LIMIT_RPS", 5),
		RateLimitBurst:   env.GetInt("RATE_LIMIT_BURST", 10),

		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "passgen"),

		AuthEnabled: env.GetBool("AUTH_ENABLED", false),
		JWTSecret:   env.GetString("JWT_SECRET", devJWTSecret),
		JWTExpiry:   env.GetDuration("JWT_EXPIRY_HOURS", 24, time.Hour),

		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),
	}
	return cfg
}

// Validate checks the settings the API server depends on.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.MinLength, validation.Required, validation.Min(1)),
		validation.Field(&c.DefaultLength, validation.Required, validation.Min(c.MinLength), validation.Max(c.MaxLength)),
		validation.Field(&c.MaxLength, validation.Required, validation.Min(c.MinLength)),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLengthWindow, err.Error())
	}
	if c.AuthEnabled {
		return c.CheckJWTSecret()
	}
	return nil
}

// CheckJWTSecret rejects the development secret in production.
func (c Config) CheckJWTSecret() error {
	if c.IsProduction() && c.JWTSecret == devJWTSecret {
		return ErrInsecureJWTSecret
	}
	return nil
}

// IsProduction reports whether ENV is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// SlogLevel maps LOG_LEVEL onto a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger: JSON in production, text elsewhere.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
