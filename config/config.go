// Package config loads runtime configuration from the environment, reading a
// .env file first when one exists.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DataSourceMemory   = "memory"
	DataSourceMongo    = "mongo"
	DataSourcePostgres = "postgres"
)

type Config struct {
	Port       string
	DataSource string
	SeedFile   string

	MongoURI           string
	MongoDatabase      string
	CountersCollection string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string

	// JWTSecret enables the per-user favorites strategy when set.
	JWTSecret string

	FavoritesLocalKey   string
	FavoritesSessionTTL time.Duration
}

// Load reads the environment. Missing connection settings for the selected
// data source are an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv without touching the process
// environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:               get("PORT", "8080"),
		DataSource:         get("DATA_SOURCE", DataSourceMemory),
		SeedFile:           get("SEED_FILE", "data/properties.json"),
		MongoURI:           getenv("MONGODB_URI"),
		MongoDatabase:      get("MONGODB_DATABASE", "estateview"),
		CountersCollection: get("MONGODB_COLLECTION_COUNTERS", "counters"),
		DatabaseURL:        getenv("DATABASE_URL"),
		RedisAddr:          getenv("REDIS_ADDR"),
		RedisPassword:      getenv("REDIS_PASSWORD"),
		JWTSecret:          getenv("JWT_SECRET"),
		FavoritesLocalKey:  get("FAVORITES_LOCAL_KEY", "estateview-favorites"),
	}

	minutes, err := strconv.Atoi(get("FAVORITES_SESSION_TTL_MINUTES", "30"))
	if err != nil || minutes <= 0 {
		minutes = 30
	}
	cfg.FavoritesSessionTTL = time.Duration(minutes) * time.Minute

	switch cfg.DataSource {
	case DataSourceMemory:
	case DataSourceMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required for DATA_SOURCE=%s", cfg.DataSource)
		}
	case DataSourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for DATA_SOURCE=%s", cfg.DataSource)
		}
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.DataSource)
	}

	return cfg, nil
}

// Authenticated reports whether an identity provider is configured.
func (c *Config) Authenticated() bool { return c.JWTSecret != "" }
