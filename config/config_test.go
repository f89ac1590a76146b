package config

import (
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "8080" || cfg.DataSource != DataSourceMemory || cfg.SeedFile != "data/properties.json" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.FavoritesLocalKey != "estateview-favorites" || cfg.FavoritesSessionTTL != 30*time.Minute {
		t.Errorf("favorites settings = %q, %v", cfg.FavoritesLocalKey, cfg.FavoritesSessionTTL)
	}
	if cfg.Authenticated() {
		t.Error("no JWT_SECRET should mean unauthenticated")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":                          "9000",
		"DATA_SOURCE":                   "postgres",
		"DATABASE_URL":                  "postgres://localhost/estateview",
		"JWT_SECRET":                    "k",
		"FAVORITES_SESSION_TTL_MINUTES": "5",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "9000" || cfg.DataSource != DataSourcePostgres || !cfg.Authenticated() {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.FavoritesSessionTTL != 5*time.Minute {
		t.Errorf("ttl = %v", cfg.FavoritesSessionTTL)
	}
}

func TestFromEnv_BadTTLFallsBack(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"FAVORITES_SESSION_TTL_MINUTES": "soon"}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.FavoritesSessionTTL != 30*time.Minute {
		t.Errorf("ttl = %v", cfg.FavoritesSessionTTL)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	cases := []map[string]string{
		{"DATA_SOURCE": "mongo"},
		{"DATA_SOURCE": "postgres"},
		{"DATA_SOURCE": "sqlite"},
	}
	for _, env := range cases {
		if _, err := FromEnv(envOf(env)); err == nil {
			t.Errorf("FromEnv(%v) should fail", env)
		}
	}
}
