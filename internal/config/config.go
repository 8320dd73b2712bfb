package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	Env             string
	SessionSecret   string
	IdentitySecret  string
	AdminList       string
	SyncWorkerCount int
	SyncQueueSize   int
	RushDuration    int // seconds
	RushBatchSize   int // puzzles fetched at game start
	RushTopUpSize   int // puzzles fetched when the queue runs low
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		DBPath:          envOr("DB_PATH", "file:idiomoji.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		Env:             envOr("ENV", "development"),
		SessionSecret:   envOr("SESSION_SECRET", ""),
		IdentitySecret:  envOr("IDENTITY_SECRET", ""),
		AdminList:       envOr("ADMIN_LIST", ""),
		SyncWorkerCount: envIntOr("SYNC_WORKER_COUNT", 2),
		SyncQueueSize:   envIntOr("SYNC_QUEUE_SIZE", 64),
		RushDuration:    envIntOr("RUSH_DURATION_SECONDS", 120),
		RushBatchSize:   envIntOr("RUSH_BATCH_SIZE", 15),
		RushTopUpSize:   envIntOr("RUSH_TOPUP_SIZE", 10),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET must be set")
	}
	if c.SyncWorkerCount <= 0 {
		return fmt.Errorf("SYNC_WORKER_COUNT must be positive")
	}
	if c.RushDuration <= 0 {
		return fmt.Errorf("RUSH_DURATION_SECONDS must be positive")
	}
	return nil
}

// Production reports whether the server runs in production mode.
// Session cookies are marked Secure only in production.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// AdminUIDs parses the comma-separated admin allow-list.
func (c Config) AdminUIDs() []string {
	var uids []string
	for _, id := range strings.Split(c.AdminList, ",") {
		if id = strings.TrimSpace(id); id != "" {
			uids = append(uids, id)
		}
	}
	return uids
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
