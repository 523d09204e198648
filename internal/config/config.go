package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Search backend drivers.
const (
	DriverTypesense = "typesense"
	DriverRedis     = "redis"
)

// Config holds the store catalog configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Search  SearchConfig  `yaml:"search"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
	Seed    SeedConfig    `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. An empty list disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SearchConfig selects and configures the search backend.
type SearchConfig struct {
	Driver              string          `yaml:"driver"` // typesense, redis (default: typesense)
	Typesense           TypesenseConfig `yaml:"typesense"`
	Redis               RedisConfig     `yaml:"redis"`
	ReadinessTimeoutSec int             `yaml:"readiness_timeout_sec"`
	ReadinessIntervalMs int             `yaml:"readiness_interval_ms"`
}

// TypesenseConfig holds the Typesense node connection settings.
type TypesenseConfig struct {
	APIKey               string `yaml:"api_key"`
	Host                 string `yaml:"host"`
	Port                 int    `yaml:"port"`
	Protocol             string `yaml:"protocol"` // http, https (default: http)
	ConnectionTimeoutSec int    `yaml:"connection_timeout_sec"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addrs    []string `yaml:"addrs"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
}

// SeedConfig holds the location of the NDJSON seed files.
type SeedConfig struct {
	Dir string `yaml:"dir"`
}

// ReadinessTimeout returns the startup readiness deadline.
func (s SearchConfig) ReadinessTimeout() time.Duration {
	return time.Duration(s.ReadinessTimeoutSec) * time.Second
}

// ReadinessInterval returns the readiness poll interval.
func (s SearchConfig) ReadinessInterval() time.Duration {
	return time.Duration(s.ReadinessIntervalMs) * time.Millisecond
}

// Load reads configuration from a YAML file by environment name (local, docker, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references first.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.Driver == "" {
		c.Search.Driver = DriverTypesense
	}
	if c.Search.Typesense.Protocol == "" {
		c.Search.Typesense.Protocol = "http"
	}
	if c.Search.Typesense.Port <= 0 {
		c.Search.Typesense.Port = 8108
	}
	if c.Search.Typesense.ConnectionTimeoutSec <= 0 {
		c.Search.Typesense.ConnectionTimeoutSec = 10
	}
	if c.Search.ReadinessTimeoutSec <= 0 {
		c.Search.ReadinessTimeoutSec = 10
	}
	if c.Search.ReadinessIntervalMs <= 0 {
		c.Search.ReadinessIntervalMs = 500
	}
	if c.Seed.Dir == "" {
		c.Seed.Dir = "data/seed"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Search.Driver {
	case DriverTypesense:
		ts := c.Search.Typesense
		if ts.APIKey == "" {
			return errors.New("search.typesense.api_key is required")
		}
		if ts.Host == "" {
			return errors.New("search.typesense.host is required")
		}
		if ts.Port > 65535 {
			return fmt.Errorf("search.typesense.port must be between 1 and 65535, got %d", ts.Port)
		}
		if ts.Protocol != "http" && ts.Protocol != "https" {
			return fmt.Errorf("search.typesense.protocol must be \"http\" or \"https\", got %q", ts.Protocol)
		}
	case DriverRedis:
		if len(c.Search.Redis.Addrs) == 0 {
			return errors.New("search.redis.addrs is required")
		}
	default:
		return fmt.Errorf("search.driver must be %q or %q, got %q", DriverTypesense, DriverRedis, c.Search.Driver)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
