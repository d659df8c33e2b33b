package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port              string
	DBPath            string
	DataFile          string
	SyncIntervalHours int
	SeedOnBoot        bool
	ReferenceYear     int
	MaxHorizon        int
	SyncToken         string
}

// SyncInterval is zero when scheduled syncs are disabled.
func (c AppConfig) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalHours) * time.Hour
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	return FromEnv()
}

// FromEnv reads the process environment only.
func FromEnv() AppConfig {
	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		v := get(k, "")
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Printf("[cfg] ignoring %s=%q, using %d", k, v, def)
			return def
		}
		return n
	}
	cfg := AppConfig{
		Port:              get("PORT", "8080"),
		DBPath:            get("DB_PATH", "agristat.db"),
		DataFile:          get("DATA_FILE", ""),
		SyncIntervalHours: getInt("SYNC_INTERVAL_HOURS", 24),
		SeedOnBoot:        get("SEED_ON_BOOT", "true") == "true",
		ReferenceYear:     getInt("REFERENCE_YEAR", 0),
		MaxHorizon:        getInt("MAX_HORIZON", 10),
		SyncToken:         get("SYNC_TOKEN", ""),
	}
	if cfg.MaxHorizon == 0 {
		cfg.MaxHorizon = 10
	}
	shown := cfg
	if shown.SyncToken != "" {
		shown.SyncToken = "***"
	}
	log.Printf("[cfg] %+v", shown)
	return cfg
}
