package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL is returned when DATABASE_URL is not configured.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not defined in environment variables")

// Config holds every setting read once at startup.
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	AllowedOrigins []string

	Database DatabaseConfig
	Mail     MailConfig
	Logging  LoggingConfig

	RabbitMQURL string
}

// DatabaseConfig holds connection pool sizing.
type DatabaseConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// MailConfig holds the notification addresses and SMTP transport settings.
type MailConfig struct {
	AppName            string
	AdminAddress       string
	FromAddress        string
	DefaultPhoneRegion string

	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPUseTLS         bool
	SMTPTimeoutSeconds int
}

// LoggingConfig controls the slog handler and optional rotating file output.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

var defaultOrigins = []string{
	"http://localhost:8080",
	"http://localhost:8081",
	"https://mango-admi.vercel.app",
}

// New returns a viper instance with defaults set and environment binding enabled.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "5000")
	v.SetDefault("ALLOWED_ORIGINS", strings.Join(defaultOrigins, ","))
	v.SetDefault("APP_NAME", "Mango Admi")
	v.SetDefault("FROM_EMAIL", "noreply@mangoadmi.in")
	v.SetDefault("PHONE_DEFAULT_REGION", "IN")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USE_TLS", false)
	v.SetDefault("SMTP_TIMEOUT_SECONDS", 30)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.AutomaticEnv()
	return v
}

// Load reads configuration from the environment and, when path is set or a
// .env file exists in the working directory, from that file.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".env")
		v.SetConfigType("env")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		DatabaseURL:    strings.TrimSpace(v.GetString("DATABASE_URL")),
		AllowedOrigins: allowedOrigins(v.GetString("ALLOWED_ORIGINS"), v.GetString("FRONTEND_URL")),
		Database: DatabaseConfig{
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Mail: MailConfig{
			AppName:            v.GetString("APP_NAME"),
			AdminAddress:       adminAddress(v),
			FromAddress:        v.GetString("FROM_EMAIL"),
			DefaultPhoneRegion: strings.ToUpper(v.GetString("PHONE_DEFAULT_REGION")),
			SMTPHost:           v.GetString("SMTP_HOST"),
			SMTPPort:           v.GetInt("SMTP_PORT"),
			SMTPUsername:       v.GetString("SMTP_USERNAME"),
			SMTPPassword:       v.GetString("SMTP_PASSWORD"),
			SMTPUseTLS:         v.GetBool("SMTP_USE_TLS"),
			SMTPTimeoutSeconds: v.GetInt("SMTP_TIMEOUT_SECONDS"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			File:   v.GetString("LOG_FILE"),
		},
		RabbitMQURL: strings.TrimSpace(v.GetString("RABBITMQ_URL")),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if !strings.HasPrefix(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}
	return cfg, nil
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func adminAddress(v *viper.Viper) string {
	for _, key := range []string{"ADMIN_EMAIL", "OWNER_EMAIL"} {
		if addr := strings.TrimSpace(v.GetString(key)); addr != "" {
			return addr
		}
	}
	return "admin@mangoadmi.in"
}

func allowedOrigins(list, frontendURL string) []string {
	seen := make(map[string]bool)
	var origins []string
	for _, o := range append(strings.Split(list, ","), frontendURL) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}
