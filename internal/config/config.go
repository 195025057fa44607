package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string
	DataPath              string
	DataSheet             string
	DataTable             string
	Questions             []string
	Profile               string
	ProfileFile           string
	RedisAddr             string
	CacheTTL              time.Duration
	GRPCPort              int
	GRPCReflectionEnabled bool
	GRPCRateLimit         float64
	MetricsAddr           string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	port, err := strconv.Atoi(getEnv("GRPC_PORT", "50051"))
	if err != nil {
		port = 50051
	}

	reflection, err := strconv.ParseBool(getEnv("GRPC_REFLECTION_ENABLED", "false"))
	if err != nil {
		reflection = false
	}

	rateLimit, err := strconv.ParseFloat(getEnv("GRPC_RATE_LIMIT", "0"), 64)
	if err != nil || rateLimit < 0 {
		rateLimit = 0
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil || ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		DataPath:              getEnv("DATA_PATH", "./data/data_kuesioner.xlsx"),
		DataSheet:             os.Getenv("DATA_SHEET"),
		DataTable:             getEnv("DATA_TABLE", "responses"),
		Questions:             SplitList(os.Getenv("QUESTIONS")),
		Profile:               getEnv("PROFILE", "answer"),
		ProfileFile:           os.Getenv("PROFILE_FILE"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		CacheTTL:              ttl,
		GRPCPort:              port,
		GRPCReflectionEnabled: reflection,
		GRPCRateLimit:         rateLimit,
		MetricsAddr:           os.Getenv("METRICS_ADDR"),
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
