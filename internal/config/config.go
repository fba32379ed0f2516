package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Engine daemon.
	EngineAddr   string
	SnapshotDB   string
	StatsBaseURL string
	TickInterval time.Duration
	DNDInterval  time.Duration
	PollInterval time.Duration

	// Stats service.
	StatsAddr   string
	StatsDB     string
	PostgresDSN string // non-empty selects the postgres repository

	// All calendar days are computed in this zone, never the machine's.
	ServiceTimezone string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	return &Config{
		EngineAddr:      getEnv("ENGINE_ADDR", ":8080"),
		SnapshotDB:      getEnv("SNAPSHOT_DB", "sitclock.db"),
		StatsBaseURL:    getEnv("STATS_BASE_URL", "http://localhost:3000"),
		TickInterval:    getEnvDuration("TICK_INTERVAL", time.Second),
		DNDInterval:     getEnvDuration("DND_INTERVAL", 10*time.Second),
		PollInterval:    getEnvDuration("POLL_INTERVAL", 30*time.Second),
		StatsAddr:       getEnv("STATS_ADDR", ":3000"),
		StatsDB:         getEnv("STATS_DB", "statsd.db"),
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		ServiceTimezone: getEnv("SERVICE_TZ", "Asia/Shanghai"),
	}
}

// Location resolves the service timezone, falling back to UTC so a bad
// config never shifts day keys silently between runs.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ServiceTimezone)
	if err != nil {
		log.Printf("invalid SERVICE_TZ %q, falling back to UTC", c.ServiceTimezone)
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}
