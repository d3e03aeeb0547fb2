package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
	TimeZone string
}

type RedisConfig struct {
	Addr     string
	User     string
	Password string
	DB       int
}

type Config struct {
	Env      string
	Port     string
	LogLevel string
	DB       DBConfig
	Redis    RedisConfig

	ReconcileCron          string
	ReconcileWorkers       int
	StayNoticeCron         string
	StayNoticeThreshold    float64
	CriticalCheckoutWindow time.Duration
	RoomCacheTTL           time.Duration
	CORSOrigins            []string
	// AutoMigrate lets gorm create missing tables at startup. Off by default
	// outside dev and test, where the schema is managed externally.
	AutoMigrate bool
}

// LoadEnv reads .env into the process environment when the file exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded, using process environment: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load builds the Config from the environment. Call LoadEnv first to pick up .env.
func Load() (*Config, error) {
	cfg := &Config{
		Env:            getEnvDefault("ENV", "dev"),
		Port:           getEnvDefault("PORT", "8083"),
		LogLevel:       getEnvDefault("LOG_LEVEL", "info"),
		ReconcileCron:  getEnvDefault("RECONCILE_CRON", "*/15 * * * *"),
		StayNoticeCron: getEnvDefault("STAY_NOTICE_CRON", "0 * * * *"),
		CORSOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Redis: RedisConfig{
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			User:     os.Getenv("REDIS_USER"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	db, err := getDBConfigByEnv(cfg.Env)
	if err != nil {
		return nil, err
	}
	cfg.DB = db

	if cfg.Redis.DB, err = atoiDefault("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.ReconcileWorkers, err = atoiDefault("RECONCILE_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.StayNoticeThreshold, err = floatDefault("STAY_NOTICE_THRESHOLD", 0.75); err != nil {
		return nil, err
	}
	if cfg.StayNoticeThreshold <= 0 || cfg.StayNoticeThreshold > 1 {
		return nil, fmt.Errorf("STAY_NOTICE_THRESHOLD must be in (0, 1], got %v", cfg.StayNoticeThreshold)
	}
	if cfg.CriticalCheckoutWindow, err = durationDefault("CRITICAL_CHECKOUT_WINDOW", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RoomCacheTTL, err = durationDefault("ROOM_CACHE_TTL", 60*time.Minute); err != nil {
		return nil, err
	}
	autoDefault := cfg.Env == "dev" || cfg.Env == "test"
	if cfg.AutoMigrate, err = boolDefault("AUTO_MIGRATE", autoDefault); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getDBConfigByEnv(env string) (DBConfig, error) {
	var prefix string
	switch env {
	case "dev":
		prefix = "DEV_DB_"
	case "qc":
		prefix = "QC_DB_"
	case "prod":
		prefix = "PROD_DB_"
	case "test":
		prefix = "TEST_DB_"
	default:
		return DBConfig{}, fmt.Errorf("unknown environment: %q", env)
	}

	sslMode := "require"
	if env == "dev" || env == "test" {
		sslMode = "disable"
	}
	return DBConfig{
		User:     os.Getenv(prefix + "USER"),
		Password: os.Getenv(prefix + "PASSWORD"),
		Host:     getEnvDefault(prefix+"HOST", "localhost"),
		Port:     getEnvDefault(prefix+"PORT", "5432"),
		Name:     os.Getenv(prefix + "NAME"),
		SSLMode:  getEnvDefault(prefix+"SSLMODE", sslMode),
		TimeZone: getEnvDefault("DB_TIMEZONE", "Asia/Ho_Chi_Minh"),
	}, nil
}

// DSN renders the libpq connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func floatDefault(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func boolDefault(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
