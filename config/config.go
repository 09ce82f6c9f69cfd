package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the env-driven application configuration. DBURL selects the
// Postgres-backed blob store; when empty, blobs live as files under DataDir.
type Config struct {
	Port    string
	DBURL   string
	DataDir string

	RecommenderURL     string
	RecommenderTimeout time.Duration

	CORSOrigins []string
}

func Load() Config {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		DBURL:              os.Getenv("DB_URL"),
		DataDir:            getEnv("DATA_DIR", "data"),
		RecommenderURL:     os.Getenv("RECOMMENDER_URL"),
		RecommenderTimeout: 5 * time.Second,
		CORSOrigins:        []string{"http://localhost:3000"},
	}

	if raw := os.Getenv("RECOMMENDER_TIMEOUT_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			cfg.RecommenderTimeout = time.Duration(seconds) * time.Second
		}
	}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		cfg.CORSOrigins = nil
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
