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

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	ProgressWorkerCount  int
	ProgressQueueSize    int
	SessionIdleTTL       time.Duration
	SessionSweepInterval time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:flashstudy.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		ProgressWorkerCount:  envIntOr("PROGRESS_WORKER_COUNT", 2),
		ProgressQueueSize:    envIntOr("PROGRESS_QUEUE_SIZE", 256),
		SessionIdleTTL:       envDurationOr("SESSION_IDLE_TTL", 2*time.Hour),
		SessionSweepInterval: envDurationOr("SESSION_SWEEP_INTERVAL", 10*time.Minute),
	}
}

// Validate checks that the configuration can start a server.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.ProgressWorkerCount <= 0 {
		problems = append(problems, "PROGRESS_WORKER_COUNT must be positive")
	}
	if c.ProgressQueueSize <= 0 {
		problems = append(problems, "PROGRESS_QUEUE_SIZE must be positive")
	}
	if c.SessionIdleTTL <= 0 {
		problems = append(problems, "SESSION_IDLE_TTL must be positive")
	}
	if c.SessionSweepInterval <= 0 {
		problems = append(problems, "SESSION_SWEEP_INTERVAL must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
