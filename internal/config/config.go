package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	DataDir  string
	// Sources
	Provider           string
	BCVURL             string
	ExchangeRateAPIURL string
	DolarTodayURL      string
	UserAgent          string
	RequestTimeout     time.Duration
	HTTPRetries        int
	// History mirror
	HistoryMirror string
	DatabaseURL   string
	// Run guard
	RunGuard      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RunGuardTTL   time.Duration
	// API
	Port string
	// Icons
	IconsDir   string
	IconSource string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:                getEnv("ENV", "local"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DataDir:            getEnv("DATA_DIR", "data"),
		Provider:           getEnv("PROVIDER", "live"),
		BCVURL:             getEnv("BCV_URL", "https://www.bcv.org.ve/"),
		ExchangeRateAPIURL: getEnv("EXCHANGERATE_API_URL", "https://api.exchangerate-api.com/v4/latest/USD"),
		DolarTodayURL:      getEnv("DOLARTODAY_URL", "https://s3.amazonaws.com/dolartoday/data.json"),
		UserAgent:          getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		RequestTimeout:     time.Duration(atoiDef(getEnv("REQUEST_TIMEOUT_MS", "10000"), 10000)) * time.Millisecond,
		HTTPRetries:        atoiDef(getEnv("HTTP_RETRIES", "0"), 0),
		HistoryMirror:      getEnv("HISTORY_MIRROR", "none"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RunGuard:           getEnv("RUN_GUARD", "none"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            atoiDef(getEnv("REDIS_DB", "0"), 0),
		RunGuardTTL:        time.Duration(atoiDef(getEnv("RUN_GUARD_TTL_MS", "120000"), 120000)) * time.Millisecond,
		Port:               getEnv("PORT", "8080"),
		IconsDir:           getEnv("ICONS_DIR", "icons"),
		IconSource:         getEnv("ICON_SOURCE", "icon-512.svg"),
	}
}
