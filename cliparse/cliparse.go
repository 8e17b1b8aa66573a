package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Notifier backends
const (
	NotifierLog   = "log"
	NotifierRedis = "redis"
	NotifierNone  = "none"
)

const (
	defaultPort          = 3318
	defaultSQLiteURL     = "diddle.sqlite3"
	defaultNotifyChannel = "diddle:notifications"
	defaultNotifyDelay   = 100 * time.Millisecond
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	BaseURL       string
	LogLevel      string
	Notifier      string
	RedisURL      string
	NotifyChannel string
	NotifyDelay   time.Duration
	SecureCookies bool
}

// LoadDotEnv reads KEY=value pairs from the given files (".env" if none)
// into the environment. Variables already set win. Missing files are
// ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var secureCookies bool

	fs := flag.NewFlagSet("diddle", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in share and manage links")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Notifications
	fs.StringVar(&cfg.Notifier, "notifier", "", "Notification backend (log, redis or none)")
	fs.StringVar(&cfg.RedisURL, "redis-url", "", "Redis URL for the redis notifier")
	fs.BoolVar(&secureCookies, "secure-cookies", false, "Mark capability cookies Secure")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	flagSet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { flagSet[f.Name] = true })

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "postgresql":
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLiteURL
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
		if cfg.LogLevel == "" {
			cfg.LogLevel = "info"
		}
	}

	if cfg.Notifier == "" {
		cfg.Notifier = os.Getenv("NOTIFIER")
		if cfg.Notifier == "" {
			cfg.Notifier = NotifierLog
		}
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}
	switch cfg.Notifier {
	case NotifierLog, NotifierNone:
	case NotifierRedis:
		if cfg.RedisURL == "" {
			return Config{}, errors.New("redis URL required for the redis notifier (use -redis-url or REDIS_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown notifier %q", cfg.Notifier)
	}

	cfg.NotifyChannel = os.Getenv("NOTIFY_CHANNEL")
	if cfg.NotifyChannel == "" {
		cfg.NotifyChannel = defaultNotifyChannel
	}

	cfg.NotifyDelay = defaultNotifyDelay
	if delayStr := os.Getenv("NOTIFY_DELAY"); delayStr != "" {
		delay, err := time.ParseDuration(delayStr)
		if err != nil || delay < 0 {
			return Config{}, errors.New("invalid NOTIFY_DELAY env variable")
		}
		cfg.NotifyDelay = delay
	}

	cfg.SecureCookies = secureCookies
	if !flagSet["secure-cookies"] {
		if v := os.Getenv("SECURE_COOKIES"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid SECURE_COOKIES env variable")
			}
			cfg.SecureCookies = b
		}
	}

	return cfg, nil
}
