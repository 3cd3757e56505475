package update

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/todocal/internal/storage"
)

type RuntimeConfig struct {
	Backend         string
	ProjectID       string
	APIKey          string
	Collection      string
	FetchLimit      int
	SQLitePath      string
	CredentialsPath string
	LogFile         string
	LogLevel        string
	RequestTimeout  time.Duration
	MetricsAddr     string
	SessionBuffer   int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Backend:         storage.BackendFirestore,
		Collection:      storage.DefaultCollection,
		FetchLimit:      storage.DefaultListLimit,
		SQLitePath:      ".todocal/todocal.db",
		CredentialsPath: ".todocal/credentials.json",
		LogFile:         ".todocal/todocal.log",
		LogLevel:        "info",
		RequestTimeout:  10 * time.Second,
		SessionBuffer:   8,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODOCAL_BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODOCAL_PROJECT_ID"); ok {
		cfg.ProjectID = v
	}
	if v, ok := getEnvString("TODOCAL_API_KEY"); ok {
		cfg.APIKey = v
	}
	if v, ok := getEnvString("TODOCAL_COLLECTION"); ok {
		cfg.Collection = v
	}
	if v, ok := getEnvInt("TODOCAL_FETCH_LIMIT"); ok && v > 0 {
		cfg.FetchLimit = v
	}
	if v, ok := getEnvString("TODOCAL_SQLITE_PATH"); ok {
		cfg.SQLitePath = v
	}
	if v, ok := getEnvString("TODOCAL_CREDENTIALS_PATH"); ok {
		cfg.CredentialsPath = v
	}
	if v, ok := getEnvString("TODOCAL_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TODOCAL_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvDuration("TODOCAL_REQUEST_TIMEOUT"); ok && v > 0 {
		cfg.RequestTimeout = v
	}
	if v, ok := getEnvString("TODOCAL_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := getEnvInt("TODOCAL_SESSION_BUFFER"); ok && v > 0 {
		cfg.SessionBuffer = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	switch c.Backend {
	case storage.BackendFirestore:
		if strings.TrimSpace(c.ProjectID) == "" {
			return errors.New("config: firestore backend requires TODOCAL_PROJECT_ID (or use --backend sqlite)")
		}
		if strings.TrimSpace(c.APIKey) == "" {
			return errors.New("config: firestore backend requires TODOCAL_API_KEY (or use --backend sqlite)")
		}
	case storage.BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("config: sqlite backend requires a database path")
		}
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.FetchLimit <= 0 {
		return fmt.Errorf("config: fetch limit must be positive, got %d", c.FetchLimit)
	}
	if c.SessionBuffer <= 0 {
		return fmt.Errorf("config: session buffer must be positive, got %d", c.SessionBuffer)
	}
	return nil
}

func (c RuntimeConfig) OpenerConfig() storage.OpenerConfig {
	return storage.OpenerConfig{
		Backend:    c.Backend,
		ProjectID:  c.ProjectID,
		Collection: c.Collection,
		SQLitePath: c.SQLitePath,
	}
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
