// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolate points CONFIG_PATH at a missing file and moves into an empty
// directory so that no stray config.yaml is picked up.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Chdir(dir)
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Catalog.Source != SourceCSV || cfg.Catalog.Path != "USvideos.csv" {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Recommend.DefaultAlpha != 0.3 || cfg.Recommend.DefaultTopN != 10 {
		t.Errorf("Recommend defaults = %v/%d", cfg.Recommend.DefaultAlpha, cfg.Recommend.DefaultTopN)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_PATH", "/data/trending.csv")
	t.Setenv("CATALOG_RELOAD_SCHEDULE", "0 */6 * * *")
	t.Setenv("RECOMMEND_DEFAULT_ALPHA", "0.5")
	t.Setenv("RECOMMEND_DISLIKE_POLICY", "exclude")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Catalog.Path != "/data/trending.csv" || cfg.Catalog.ReloadSchedule != "0 */6 * * *" {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Recommend.DefaultAlpha != 0.5 || cfg.Recommend.DislikePolicy != "exclude" {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("Cache.TTL = %v, want 90s", cfg.Cache.TTL)
	}
	if cfg.Cache.Redis.Addr != "redis:6380" {
		t.Errorf("Redis.Addr = %q", cfg.Cache.Redis.Addr)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "vidrec.yaml")
	yamlContent := `
server:
  port: 9000
catalog:
  source: sqlite
  dsn: /data/catalog.db
  filter: 'views >= 1000'
recommend:
  default_top_n: 25
cache:
  backend: lru
  capacity: 500
security:
  cors_origins:
    - https://app.example.com
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	// Environment still wins over the file.
	t.Setenv("HTTP_PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want env value 9100", cfg.Server.Port)
	}
	if cfg.Catalog.Source != SourceSQLite || cfg.Catalog.DSN != "/data/catalog.db" {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Catalog.Filter != "views >= 1000" {
		t.Errorf("Catalog.Filter = %q", cfg.Catalog.Filter)
	}
	if cfg.Catalog.Query == "" {
		t.Error("default Catalog.Query lost when file sets other catalog fields")
	}
	if cfg.Recommend.DefaultTopN != 25 {
		t.Errorf("DefaultTopN = %d, want 25", cfg.Recommend.DefaultTopN)
	}
	if cfg.Cache.Backend != "lru" || cfg.Cache.Capacity != 500 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://app.example.com"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "failed to load config file") {
		t.Errorf("Load() error = %v, want config file error", err)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	isolate(t)
	t.Setenv("RECOMMEND_DEFAULT_ALPHA", "1.5")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "default_alpha") {
		t.Errorf("Load() error = %v, want default_alpha validation error", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"log_level", "logging.level"},
		{"CATALOG_FILTER", "catalog.filter"},
		{"REDIS_BREAKER_TIMEOUT", "cache.redis.breaker_timeout"},
		{"BADGER_PATH", "cache.badger.path"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestEnvMappings_TargetsExist(t *testing.T) {
	t.Parallel()

	// Every mapped path must name a koanf tag in Config.
	known := make(map[string]bool)
	var walk func(prefix string, typ reflect.Type)
	walk = func(prefix string, typ reflect.Type) {
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			name := prefix + f.Tag.Get("koanf")
			if f.Type.Kind() == reflect.Struct && f.Type != reflect.TypeOf(time.Duration(0)) {
				walk(name+".", f.Type)
				continue
			}
			known[name] = true
		}
	}
	walk("", reflect.TypeOf(Config{}))

	for env, path := range envMappings {
		if !known[path] {
			t.Errorf("env %s maps to unknown path %s", env, path)
		}
	}
}
