package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string
	Port        int
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// prometheus metrics server
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML config file for the given environment and then applies
// env var overrides:
//
//	GYMTRACKER_PORT          - service listen port
//	GYMTRACKER_POSTGRES_HOST - postgres host
//	GYMTRACKER_POSTGRES_PORT - postgres port
//	GYMTRACKER_POSTGRES_DB   - postgres database name
func Load(env, path string) (*Config, error) {
	var tomlCfg Toml
	if _, err := toml.DecodeFile(path, &tomlCfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := tomlCfg.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s missing in %s", env, path)
	}

	cfg.Environment = env

	if port := os.Getenv("GYMTRACKER_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid GYMTRACKER_PORT %q: %w", port, err)
		}
		cfg.Port = portNum
	}
	if pgHost := os.Getenv("GYMTRACKER_POSTGRES_HOST"); pgHost != "" {
		cfg.PostgresHost = pgHost
	}
	if pgPort := os.Getenv("GYMTRACKER_POSTGRES_PORT"); pgPort != "" {
		cfg.PostgresPort = pgPort
	}
	if pgDBName := os.Getenv("GYMTRACKER_POSTGRES_DB"); pgDBName != "" {
		cfg.PostgresDBName = pgDBName
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 5000
	}
	if c.PostgresHost == "" {
		c.PostgresHost = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "gymtracker"
	}
}
