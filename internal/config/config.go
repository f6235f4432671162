package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendHTTP     Backend = "http"
	BackendMemory   Backend = "memory"
)

type Config struct {
	Env       string // dev|prod
	LogLevel  string
	HTTPAddr  string
	Location  *time.Location
	SentryDSN string
	Release   string

	Backend          Backend
	DatabaseURL      string
	RecordServiceURL string
	RecordProjectID  string
	RecordPublicKey  string
	RecordTimeout    time.Duration
	// ServeRecords публикует хранилище по /records для других экземпляров.
	ServeRecords bool

	CORSOrigins []string

	BotToken       string
	NotifyChatIDs  []int64
	DigestInterval time.Duration
	DueSoonDays    int
	SeedDemo       bool
}

func defaults(v *viper.Viper) {
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("TZ", "UTC")
	v.SetDefault("RECORD_BACKEND", string(BackendPostgres))
	v.SetDefault("RECORD_TIMEOUT", 5*time.Second)
	v.SetDefault("SERVE_RECORDS", false)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DIGEST_INTERVAL", time.Hour)
	v.SetDefault("DUE_SOON_DAYS", 3)
	v.SetDefault("SEED_DEMO", false)
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf(".env: %w", err)
		}
	}
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

func FromViper(v *viper.Viper) (*Config, error) {
	defaults(v)

	loc, err := time.LoadLocation(v.GetString("TZ"))
	if err != nil {
		return nil, fmt.Errorf("TZ: %w", err)
	}
	chatIDs, err := parseIDs(v.GetString("NOTIFY_CHAT_ID"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFY_CHAT_ID: %w", err)
	}

	cfg := &Config{
		Env:              strings.ToLower(v.GetString("ENV")),
		LogLevel:         v.GetString("LOG_LEVEL"),
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		Location:         loc,
		SentryDSN:        v.GetString("SENTRY_DSN"),
		Release:          v.GetString("RELEASE"),
		Backend:          Backend(strings.ToLower(v.GetString("RECORD_BACKEND"))),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RecordServiceURL: v.GetString("RECORD_SERVICE_URL"),
		RecordProjectID:  v.GetString("RECORD_PROJECT_ID"),
		RecordPublicKey:  v.GetString("RECORD_PUBLIC_KEY"),
		RecordTimeout:    v.GetDuration("RECORD_TIMEOUT"),
		ServeRecords:     v.GetBool("SERVE_RECORDS"),
		CORSOrigins:      splitList(v.GetString("CORS_ORIGINS")),
		BotToken:         v.GetString("BOT_TOKEN"),
		NotifyChatIDs:    chatIDs,
		DigestInterval:   v.GetDuration("DIGEST_INTERVAL"),
		DueSoonDays:      v.GetInt("DUE_SOON_DAYS"),
		SeedDemo:         v.GetBool("SEED_DEMO"),
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	var errs []error
	switch c.Backend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("required env DATABASE_URL is empty"))
		}
	case BackendHTTP:
		if c.RecordServiceURL == "" {
			errs = append(errs, errors.New("required env RECORD_SERVICE_URL is empty"))
		}
		if c.RecordProjectID == "" {
			errs = append(errs, errors.New("required env RECORD_PROJECT_ID is empty"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("RECORD_BACKEND: unknown backend %q", c.Backend))
	}
	if c.RecordTimeout <= 0 {
		errs = append(errs, errors.New("RECORD_TIMEOUT must be positive"))
	}
	if c.DueSoonDays < 0 {
		errs = append(errs, errors.New("DUE_SOON_DAYS must not be negative"))
	}
	if c.BotToken != "" && len(c.NotifyChatIDs) == 0 {
		errs = append(errs, errors.New("NOTIFY_CHAT_ID is required when BOT_TOKEN is set"))
	}
	if c.ServeRecords && c.RecordPublicKey == "" {
		errs = append(errs, errors.New("RECORD_PUBLIC_KEY is required when SERVE_RECORDS is set"))
	}
	return errors.Join(errs...)
}

// DigestEnabled — рассылка в Telegram настроена.
func (c *Config) DigestEnabled() bool {
	return c.BotToken != "" && len(c.NotifyChatIDs) > 0 && c.DigestInterval > 0
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

func parseIDs(s string) ([]int64, error) {
	parts := splitList(strings.TrimSpace(s))
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
