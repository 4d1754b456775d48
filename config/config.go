package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	DBPath      string
	StaticDir   string
	ModelBundle string
	DatasetPath string
	SessionTTLH int
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			var n int
			if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
				return n
			}
		}
		return def
	}
	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		DBPath:      get("DB_PATH", "fertiq.db"),
		StaticDir:   get("STATIC_DIR", "static"),
		ModelBundle: get("MODEL_BUNDLE", "fq_models.gob"),
		DatasetPath: get("DATASET_PATH", "dataset_FQ.csv"),
		SessionTTLH: getInt("SESSION_TTL_HOURS", 24*7),
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
