package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	DB        DBConfig
	Redis     RedisConfig
	Chat      ChatConfig
	Booking   BookingConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// BackendConfig points at the external booking backend (edge functions).
type BackendConfig struct {
	BaseURL string
	AnonKey string
	Timeout time.Duration
}

type DBConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ChatConfig struct {
	CacheTTL        time.Duration
	SessionTTL      time.Duration
	HandoffDelay    time.Duration
	HandoffFallback string
}

type BookingConfig struct {
	DefaultDuration  int
	PhoneCountryCode string
	MaxDaysAhead     int
	TimeZone         string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional; plain environment variables are enough.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("AUDIT_ENABLED", true)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("BOOKING_DEFAULT_DURATION", 30)
	viper.SetDefault("BOOKING_PHONE_COUNTRY_CODE", "54")
	viper.SetDefault("BOOKING_MAX_DAYS_AHEAD", 90)
	viper.SetDefault("BOOKING_TIMEZONE", "America/Argentina/Buenos_Aires")
	viper.SetDefault("RATE_LIMIT_RPS", 2.0)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("CHAT_HANDOFF_FALLBACK", "Hola, me gustaría hacer una consulta")

	config := &Config{
		App: AppConfig{
			Port:           viper.GetString("APP_PORT"),
			Env:            viper.GetString("APP_ENV"),
			LogLevel:       viper.GetString("APP_LOG_LEVEL"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("GEMA_API_URL"),
			AnonKey: viper.GetString("GEMA_ANON_KEY"),
			Timeout: parseDuration("GEMA_TIMEOUT", 15*time.Second),
		},
		DB: DBConfig{
			Enabled:  viper.GetBool("AUDIT_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Chat: ChatConfig{
			CacheTTL:        parseDuration("CHAT_CACHE_TTL", 5*time.Minute),
			SessionTTL:      parseDuration("CHAT_SESSION_TTL", 24*time.Hour),
			HandoffDelay:    parseDuration("CHAT_HANDOFF_DELAY", 1500*time.Millisecond),
			HandoffFallback: viper.GetString("CHAT_HANDOFF_FALLBACK"),
		},
		Booking: BookingConfig{
			DefaultDuration:  viper.GetInt("BOOKING_DEFAULT_DURATION"),
			PhoneCountryCode: viper.GetString("BOOKING_PHONE_COUNTRY_CODE"),
			MaxDaysAhead:     viper.GetInt("BOOKING_MAX_DAYS_AHEAD"),
			TimeZone:         viper.GetString("BOOKING_TIMEZONE"),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if config.Backend.BaseURL == "" {
		return nil, errors.New("GEMA_API_URL is required")
	}

	return config, nil
}

// Location resolves the booking time zone, falling back to UTC.
func (c BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil || c.TimeZone == "" {
		return time.UTC
	}
	return loc
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
