/*
Package config loads service configuration from the environment.

PURPOSE:
  Reads a .env file when present (godotenv) and falls back to process
  environment variables, with flag overrides applied in main. Exactly one
  data source must be configured: DATA_FILE (local CSV) or DATA_URL
  (remote CSV, optionally with DATA_TOKEN as a bearer credential).

VARIABLES:
  PORT            HTTP port (default 8080)
  DB_PATH         Run-archive SQLite path; empty disables the archive
  DATA_FILE       Local CSV schedule file
  DATA_URL        Remote CSV schedule URL
  DATA_TOKEN      Bearer token for DATA_URL
  MIN_GAP_DAYS    Minimum spacing between leave periods (default 30)
  CRITICAL_DAYS   Critical severity band upper bound (default 15)
  WARNING_DAYS    Warning severity band upper bound (default 30)
  LOG_LEVEL       logrus level (default "info")
*/
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Pedreb/cronogramadefolgas/schedule"
)

type Config struct {
	Port      int
	DBPath    string
	DataFile  string
	DataURL   string
	DataToken string
	LogLevel  string
	Policy    schedule.GapPolicy
}

// Load reads configuration from .env (if present) and the environment.
func Load() *Config {
	// Missing .env is fine; deployments set real environment variables.
	_ = godotenv.Load()

	return &Config{
		Port:      getEnvAsInt("PORT", 8080),
		DBPath:    getEnv("DB_PATH", "cronograma.db"),
		DataFile:  getEnv("DATA_FILE", ""),
		DataURL:   getEnv("DATA_URL", ""),
		DataToken: getEnv("DATA_TOKEN", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		Policy: schedule.GapPolicy{
			MinGapDays:        getEnvAsInt("MIN_GAP_DAYS", 30),
			CriticalBelowDays: getEnvAsInt("CRITICAL_DAYS", 15),
			WarningBelowDays:  getEnvAsInt("WARNING_DAYS", 30),
		},
	}
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	if val, err := strconv.Atoi(getEnv(name, "")); err == nil {
		return val
	}
	return defaultVal
}
