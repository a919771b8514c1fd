package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	FergusAPIBaseURL   string
	FergusAPIToken     string
	FergusWebBaseURL   string
	FergusRateLimitRPS int
	FergusTimeoutMs    int

	SalesAccountID int
	QuoteDueDays   int
	QtyTolerance   float64

	ProblemPreviewLimit int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		FergusAPIBaseURL:   getEnv("FERGUS_API_BASE_URL", "https://api.fergus.com"),
		FergusAPIToken:     getEnv("FERGUS_API_TOKEN", ""),
		FergusWebBaseURL:   getEnv("FERGUS_WEB_BASE_URL", "https://app.fergus.com"),
		FergusRateLimitRPS: getEnvInt("FERGUS_RATE_LIMIT_RPS", 5),
		FergusTimeoutMs:    getEnvInt("FERGUS_TIMEOUT_MS", 30000),

		SalesAccountID: getEnvInt("SALES_ACCOUNT_ID", 128381),
		QuoteDueDays:   getEnvInt("QUOTE_DUE_DAYS", 180),
		QtyTolerance:   getEnvFloat("QTY_TOLERANCE", 0.01),

		ProblemPreviewLimit: getEnvInt("PROBLEM_PREVIEW_LIMIT", 20),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
