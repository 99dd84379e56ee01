package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // Scratch images ship without a zoneinfo database
	"unicode"

	"github.com/spf13/viper"
)

// devSessionSecret signs session cookies when SESSION_SECRET is unset outside production.
const devSessionSecret = "dev-only-session-secret"

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	WhatsApp      WhatsAppConfig
	Booking       BookingConfig
	Session       SessionConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Auth          AuthConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

// WhatsAppConfig is the fixed destination of every booking request.
type WhatsAppConfig struct {
	BaseURL       string
	Destination   string // international digits, no plus sign
	DisplayNumber string // shown in the manual fallback
}

type BookingConfig struct {
	Timezone        string
	Location        *time.Location
	CopiedIndicator time.Duration
}

type SessionConfig struct {
	Secret       string
	Issuer       string
	TTLMinutes   int
	CookieDomain string
	CookieSecure bool
}

// AuthConfig guards operational endpoints. No tokens leaves them open.
type AuthConfig struct {
	MetricsTokens []string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("WHATSAPP_BASE_URL", "https://wa.me")
	v.SetDefault("WHATSAPP_DESTINATION", "923043537785")
	v.SetDefault("WHATSAPP_DISPLAY_NUMBER", "0304-3537785")
	v.SetDefault("BUSINESS_TIMEZONE", "Asia/Karachi")
	v.SetDefault("COPIED_INDICATOR_MS", 2000)
	v.SetDefault("SESSION_ISSUER", "homeservices-site")
	v.SetDefault("SESSION_TTL_MINUTES", 60)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("METRICS_AUTH_TOKENS", "")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "homeservices-site")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "homeservices")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "homeservices-site")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,inuse_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:       strings.TrimRight(v.GetString("WHATSAPP_BASE_URL"), "/"),
			Destination:   v.GetString("WHATSAPP_DESTINATION"),
			DisplayNumber: v.GetString("WHATSAPP_DISPLAY_NUMBER"),
		},
		Booking: BookingConfig{
			Timezone:        v.GetString("BUSINESS_TIMEZONE"),
			CopiedIndicator: time.Duration(v.GetInt("COPIED_INDICATOR_MS")) * time.Millisecond,
		},
		Session: SessionConfig{
			Secret:       v.GetString("SESSION_SECRET"),
			Issuer:       v.GetString("SESSION_ISSUER"),
			TTLMinutes:   v.GetInt("SESSION_TTL_MINUTES"),
			CookieDomain: v.GetString("COOKIE_DOMAIN"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Auth: AuthConfig{
			MetricsTokens: splitList(v.GetString("METRICS_AUTH_TOKENS")),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	if cfg.Session.Secret == "" && !cfg.IsProduction() {
		cfg.Session.Secret = devSessionSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required values and resolves the business time zone
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}

	if c.WhatsApp.BaseURL == "" {
		return fmt.Errorf("WHATSAPP_BASE_URL is required")
	}
	if !isDigits(c.WhatsApp.Destination) {
		return fmt.Errorf("WHATSAPP_DESTINATION must be an international number without '+' or separators")
	}
	if c.WhatsApp.DisplayNumber == "" {
		c.WhatsApp.DisplayNumber = c.WhatsApp.Destination
	}

	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return fmt.Errorf("BUSINESS_TIMEZONE %q is invalid: %w", c.Booking.Timezone, err)
	}
	c.Booking.Location = loc

	if c.Booking.CopiedIndicator <= 0 {
		return fmt.Errorf("COPIED_INDICATOR_MS must be positive")
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.IsProduction() && c.Session.Secret == devSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set explicitly in production")
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// SessionTTL returns the idle lifetime of a visitor session
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
