package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDataDir      = "./data"
	defaultAddr         = "0.0.0.0:8000"
	defaultLogLevel     = "info"
	defaultQueryTimeout = 10 * time.Second
	defaultMaxOpenConns = 8
)

// Config holds everything main needs to wire the service.
type Config struct {
	DataDir      string
	DBPath       string
	Addr         string
	LogLevel     string
	QueryTimeout time.Duration
	MaxOpenConns int

	// DotenvLoaded is false when no .env file was found.
	DotenvLoaded bool
}

// Load reads the optional .env files and then the VOGDB_* environment.
// Values already present in the environment win over the .env file.
func Load(envFiles ...string) (*Config, error) {

	cfg := &Config{
		DataDir:      defaultDataDir,
		Addr:         defaultAddr,
		LogLevel:     defaultLogLevel,
		QueryTimeout: defaultQueryTimeout,
		MaxOpenConns: defaultMaxOpenConns,
	}

	cfg.DotenvLoaded = godotenv.Load(envFiles...) == nil

	if v := os.Getenv("VOGDB_DATA"); v != "" {
		cfg.DataDir = v
	}

	cfg.DBPath = path.Join(cfg.DataDir, "db", "vogdb.sqlite")
	if v := os.Getenv("VOGDB_DB"); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv("VOGDB_ADDR"); v != "" {
		cfg.Addr = v
	}

	if v := os.Getenv("VOGDB_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("VOGDB_QUERY_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("VOGDB_QUERY_TIMEOUT: %w", err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("VOGDB_QUERY_TIMEOUT must be positive, got %s", v)
		}
		cfg.QueryTimeout = timeout
	}

	if v := os.Getenv("VOGDB_MAX_OPEN_CONNS"); v != "" {
		conns, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("VOGDB_MAX_OPEN_CONNS: %w", err)
		}
		if conns <= 0 {
			return nil, fmt.Errorf("VOGDB_MAX_OPEN_CONNS must be positive, got %d", conns)
		}
		cfg.MaxOpenConns = conns
	}

	return cfg, nil
}
