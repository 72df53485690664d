package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Market data
	Yahoo YahooConfig

	// Scan
	Scan ScanConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// YahooConfig holds Yahoo Finance endpoint configuration
type YahooConfig struct {
	ChartBaseURL      string
	QuoteBaseURL      string
	RequestsPerSecond int
}

// ScanConfig holds watchlist scan configuration
type ScanConfig struct {
	// Benchmark index for the market regime filter
	BenchmarkSymbol string

	// Ticker pools
	ConservativePool []string
	MomentumPool     []string

	// Score thresholds per pool
	ConservativeMinScore int
	MomentumMinScore     int

	// Per-ticker result cache TTL
	CacheTTL time.Duration

	// Parallel scan workers
	Workers int
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// Market data
		Yahoo: YahooConfig{
			ChartBaseURL:      getEnv("YAHOO_CHART_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
			QuoteBaseURL:      getEnv("YAHOO_QUOTE_BASE_URL", "https://query1.finance.yahoo.com/v10/finance/quoteSummary"),
			RequestsPerSecond: getEnvAsInt("YAHOO_REQUESTS_PER_SECOND", 4),
		},

		// Scan
		Scan: ScanConfig{
			BenchmarkSymbol:      getEnv("BENCHMARK_SYMBOL", "^GSPC"),
			ConservativePool:     getEnvAsList("CONSERVATIVE_POOL", defaultConservativePool),
			MomentumPool:         getEnvAsList("MOMENTUM_POOL", defaultMomentumPool),
			ConservativeMinScore: getEnvAsInt("CONSERVATIVE_MIN_SCORE", 70),
			MomentumMinScore:     getEnvAsInt("MOMENTUM_MIN_SCORE", 80),
			CacheTTL:             getEnvAsDuration("SCAN_CACHE_TTL", "10m"),
			Workers:              getEnvAsInt("SCAN_WORKERS", 5),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Default ticker pools, overridable via env
var (
	defaultConservativePool = []string{
		"AAPL", "MSFT", "GOOGL", "AMZN", "META", "TSLA", "NVDA", "AMD",
		"COST", "BRK-B", "JPM", "UNH", "LLY", "AVGO", "V",
	}
	defaultMomentumPool = []string{
		"PLTR", "SOFI", "MARA", "COIN", "GME", "PATH", "UPST", "AI",
		"DKNG", "RBLX", "AFRM", "CVNA", "RIOT", "MSTR",
	}
)

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if len(c.Scan.ConservativePool) == 0 && len(c.Scan.MomentumPool) == 0 {
		return fmt.Errorf("at least one ticker pool must be configured")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			list = append(list, p)
		}
	}

	if len(list) == 0 {
		return defaultValue
	}
	return list
}
