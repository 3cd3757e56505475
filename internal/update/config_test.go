package update

import (
	"strings"
	"testing"
	"time"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.Backend != "firestore" || cfg.Collection != "todos" {
		t.Fatalf("unexpected store defaults: %+v", cfg)
	}
	if cfg.FetchLimit != 100 || cfg.SessionBuffer != 8 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected request timeout: %s", cfg.RequestTimeout)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TODOCAL_BACKEND", "SQLite")
	t.Setenv("TODOCAL_PROJECT_ID", "demo-project")
	t.Setenv("TODOCAL_API_KEY", "key")
	t.Setenv("TODOCAL_COLLECTION", "my_todos")
	t.Setenv("TODOCAL_FETCH_LIMIT", "25")
	t.Setenv("TODOCAL_SQLITE_PATH", "data/custom.db")
	t.Setenv("TODOCAL_CREDENTIALS_PATH", "data/creds.json")
	t.Setenv("TODOCAL_LOG_FILE", "data/app.log")
	t.Setenv("TODOCAL_LOG_LEVEL", "debug")
	t.Setenv("TODOCAL_REQUEST_TIMEOUT", "3s")
	t.Setenv("TODOCAL_METRICS_ADDR", ":9100")
	t.Setenv("TODOCAL_SESSION_BUFFER", "16")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.Backend != "sqlite" || cfg.ProjectID != "demo-project" || cfg.APIKey != "key" {
		t.Fatalf("unexpected backend config: %+v", cfg)
	}
	if cfg.Collection != "my_todos" || cfg.FetchLimit != 25 {
		t.Fatalf("unexpected store overrides: %+v", cfg)
	}
	if cfg.SQLitePath != "data/custom.db" || cfg.CredentialsPath != "data/creds.json" || cfg.LogFile != "data/app.log" {
		t.Fatalf("unexpected path overrides: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected log/timeout overrides: %+v", cfg)
	}
	if cfg.MetricsAddr != ":9100" || cfg.SessionBuffer != 16 {
		t.Fatalf("unexpected metrics/session overrides: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("TODOCAL_FETCH_LIMIT", "lots")
	t.Setenv("TODOCAL_REQUEST_TIMEOUT", "soon")
	t.Setenv("TODOCAL_SESSION_BUFFER", "-1")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	def := DefaultRuntimeConfig()
	if cfg.FetchLimit != def.FetchLimit || cfg.RequestTimeout != def.RequestTimeout || cfg.SessionBuffer != def.SessionBuffer {
		t.Fatalf("expected defaults to survive invalid env, got %+v", cfg)
	}
}

func TestRuntimeConfigValidate(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "TODOCAL_PROJECT_ID") {
		t.Fatalf("expected missing project id error, got %v", err)
	}

	cfg.ProjectID = "demo"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "TODOCAL_API_KEY") {
		t.Fatalf("expected missing api key error, got %v", err)
	}

	cfg.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid firestore config, got %v", err)
	}

	cfg = DefaultRuntimeConfig()
	cfg.Backend = "sqlite"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid sqlite config, got %v", err)
	}

	cfg.Backend = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown backend error")
	}
}
