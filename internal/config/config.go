package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/movietalk/feed-client/domain"
)

const (
	defaultAPIBaseURL     = "http://localhost:3000"
	defaultAddress        = ":9090"
	defaultTimeout        = 30
	defaultHTTPTimeout    = 15
	defaultRateBurst      = 5
	defaultConcurrency    = 8
	defaultNoticeBuffer   = 256
	defaultCacheDB        = 0
	defaultSessionBackend = SessionMemory
)

const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
	SessionMySQL  = "mysql"
)

type Config struct {
	APIBaseURL       string
	ServerAddress    string
	ContextTimeout   time.Duration
	HTTPTimeout      time.Duration
	APIRateLimit     float64 // requests per second, 0 means unlimited
	APIRateBurst     int
	CountConcurrency int
	Scope            domain.Scope
	NoticeBuffer     int

	SessionBackend string
	SessionTTL     time.Duration

	CacheHost string
	CachePort string
	CachePass string
	CacheDB   int

	DatabaseHost string
	DatabasePort string
	DatabaseUser string
	DatabasePass string
	DatabaseName string

	LogLevel  logrus.Level
	LogFormat string
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using process environment")
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		APIBaseURL:       getEnv("API_BASE_URL", defaultAPIBaseURL),
		ServerAddress:    getEnv("SERVER_ADDRESS", defaultAddress),
		ContextTimeout:   time.Duration(getInt("CONTEXT_TIMEOUT", defaultTimeout)) * time.Second,
		HTTPTimeout:      time.Duration(getInt("HTTP_TIMEOUT", defaultHTTPTimeout)) * time.Second,
		APIRateLimit:     getFloat("API_RATE_LIMIT", 0),
		APIRateBurst:     getInt("API_RATE_BURST", defaultRateBurst),
		CountConcurrency: getInt("COUNT_CONCURRENCY", defaultConcurrency),
		NoticeBuffer:     getInt("NOTICE_BUFFER", defaultNoticeBuffer),
		SessionBackend:   strings.ToLower(getEnv("SESSION_BACKEND", defaultSessionBackend)),
		SessionTTL:       time.Duration(getInt("SESSION_TTL_HOURS", 0)) * time.Hour,
		CacheHost:        getEnv("CACHE_HOST", "localhost"),
		CachePort:        getEnv("CACHE_PORT", "6379"),
		CachePass:        os.Getenv("CACHE_PASS"),
		CacheDB:          getInt("CACHE_DB", defaultCacheDB),
		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnv("DATABASE_PORT", "3306"),
		DatabaseUser:     os.Getenv("DATABASE_USER"),
		DatabasePass:     os.Getenv("DATABASE_PASS"),
		DatabaseName:     os.Getenv("DATABASE_NAME"),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		logrus.Warnf("invalid LOG_LEVEL, using info: %v", err)
		level = logrus.InfoLevel
	}
	cfg.LogLevel = level

	switch strings.ToLower(getEnv("FEED_SCOPE", "feed")) {
	case "feed":
		cfg.Scope = domain.ScopeFeed
	case "mine":
		cfg.Scope = domain.ScopeMine
	default:
		return Config{}, fmt.Errorf("FEED_SCOPE must be feed or mine: %w", domain.ErrBadParamInput)
	}

	switch cfg.SessionBackend {
	case SessionMemory, SessionRedis, SessionMySQL:
	default:
		return Config{}, fmt.Errorf("SESSION_BACKEND %q is not supported: %w", cfg.SessionBackend, domain.ErrBadParamInput)
	}
	return cfg, nil
}

// ConfigureLogging applies the level and formatter to the standard logrus logger.
func (c Config) ConfigureLogging() {
	logrus.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %d", key, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %v", key, fallback)
		return fallback
	}
	return f
}
