package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/yukikurage/category-task-api/internal/constants"
	"gopkg.in/yaml.v3"
)

// DefaultTokenSecret is the signing secret used when TOKEN_SECRET is unset.
// It is rejected in release mode.
const DefaultTokenSecret = "default-secret-key-change-me"

type Config struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`

	DBDriver   string `yaml:"db_driver"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBPath     string `yaml:"db_path"`
	DBLogLevel string `yaml:"db_log_level"`

	TokenSecret string        `yaml:"token_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`

	RequestTimeout    time.Duration `yaml:"request_timeout"`
	AuthRatePerMinute int           `yaml:"auth_rate_per_minute"`
	AuthRateBurst     int           `yaml:"auth_rate_burst"`

	SweepSchedule string `yaml:"sweep_schedule"`
	LogLevel      string `yaml:"log_level"`
	OpenAIAPIKey  string `yaml:"openai_api_key"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Port:              "8080",
		GinMode:           "debug",
		DBDriver:          "sqlite",
		DBHost:            "localhost",
		DBPort:            "3306",
		DBUser:            "taskuser",
		DBPassword:        "taskpassword",
		DBName:            "task_management",
		DBPath:            "tasks.db",
		DBLogLevel:        "warn",
		TokenSecret:       DefaultTokenSecret,
		TokenTTL:          constants.DefaultTokenTTL,
		RequestTimeout:    constants.DefaultRequestTimeout,
		AuthRatePerMinute: 20,
		AuthRateBurst:     10,
		SweepSchedule:     "@every 1h",
		LogLevel:          "info",
	}
}

// Load builds the configuration from an optional YAML file (CONFIG_FILE)
// and then applies environment overrides on top of it.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_FILE"))
}

// LoadFrom is Load with an explicit YAML file path. An empty path skips the file.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UsesDefaultSecret reports whether tokens would be signed with the
// well-known default secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.TokenSecret == DefaultTokenSecret
}

// Validate rejects settings that are unsafe to serve with. Release mode
// requires a non-default TOKEN_SECRET.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("token secret must not be empty")
	}
	if c.GinMode == "release" && c.UsesDefaultSecret() {
		return fmt.Errorf("TOKEN_SECRET must be set when GIN_MODE=release")
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.DBLogLevel = getEnv("DB_LOG_LEVEL", c.DBLogLevel)
	c.TokenSecret = getEnv("TOKEN_SECRET", c.TokenSecret)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)

	// An explicitly empty SWEEP_SCHEDULE disables the sweep.
	if v, ok := os.LookupEnv("SWEEP_SCHEDULE"); ok {
		c.SweepSchedule = v
	}

	var err error
	if c.TokenTTL, err = getDurationEnv("TOKEN_TTL", c.TokenTTL); err != nil {
		return err
	}
	if c.RequestTimeout, err = getDurationEnv("REQUEST_TIMEOUT", c.RequestTimeout); err != nil {
		return err
	}
	if c.AuthRatePerMinute, err = getIntEnv("AUTH_RATE_PER_MINUTE", c.AuthRatePerMinute); err != nil {
		return err
	}
	if c.AuthRateBurst, err = getIntEnv("AUTH_RATE_BURST", c.AuthRateBurst); err != nil {
		return err
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
