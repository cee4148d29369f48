package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	CodecPlain = "plain"
	CodecJWT   = "jwt"
)

type Config struct {
	Issuer         string `yaml:"issuer"`          // TOTP issuer label and token issuer (default: Storefront)
	DatabaseDriver string `yaml:"database_driver"` // sqlite or postgres (default: sqlite)
	DatabaseFile   string `yaml:"database_file"`   // SQLite database file (default: ./storefront.db)
	DatabaseURL    string `yaml:"database_url"`    // Postgres DSN, required for the postgres driver
	PepperFile     string `yaml:"pepper_file"`     // Password pepper, created on first start (default: ./pepper)
	SessionCodec   string `yaml:"session_codec"`   // plain or jwt (default: plain)
	SessionKeyFile string `yaml:"session_key_file"`
	TOTPWindow     int    `yaml:"totp_window"` // Accepted steps either side of now (default: 1)

	Env                 string        `yaml:"env"`        // dev, staging, prod (default: dev)
	LogLevel            string        `yaml:"log_level"`  // debug, info, warn, error (default: info)
	LogFormat           string        `yaml:"log_format"` // json, text (default: json)
	Port                int           `yaml:"port"`       // HTTP port (default: 8080)
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period"`
}

func defaultConfig() Config {
	return Config{
		Issuer:              "Storefront",
		DatabaseDriver:      DriverSQLite,
		DatabaseFile:        "storefront.db",
		PepperFile:          "pepper",
		SessionCodec:        CodecPlain,
		SessionKeyFile:      "session.key",
		TOTPWindow:          1,
		Env:                 "dev",
		LogLevel:            "info",
		LogFormat:           "json",
		Port:                8080,
		ShutdownGracePeriod: 10 * time.Second,
	}
}

// LoadConfig builds the configuration from defaults, then the optional YAML
// file named by STOREFRONT_CONFIG_FILE, then environment variables.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if file := os.Getenv("STOREFRONT_CONFIG_FILE"); file != "" {
		if err := loadFile(file, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Issuer = getEnvOrDefault("STOREFRONT_ISSUER", cfg.Issuer)
	cfg.DatabaseDriver = getEnvOrDefault("STOREFRONT_DATABASE_DRIVER", cfg.DatabaseDriver)
	cfg.DatabaseFile = getEnvOrDefault("STOREFRONT_DATABASE_FILE", cfg.DatabaseFile)
	cfg.DatabaseURL = getEnvOrDefault("STOREFRONT_DATABASE_URL", cfg.DatabaseURL)
	cfg.PepperFile = getEnvOrDefault("STOREFRONT_PEPPER_FILE", cfg.PepperFile)
	cfg.SessionCodec = getEnvOrDefault("STOREFRONT_SESSION_CODEC", cfg.SessionCodec)
	cfg.SessionKeyFile = getEnvOrDefault("STOREFRONT_SESSION_KEY_FILE", cfg.SessionKeyFile)
	cfg.TOTPWindow = getEnvIntOrDefault("STOREFRONT_TOTP_WINDOW", cfg.TOTPWindow)
	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate rejects combinations the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("database_file is required for sqlite"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("database_url is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.DatabaseDriver))
	}

	switch c.SessionCodec {
	case CodecPlain:
	case CodecJWT:
		if c.SessionKeyFile == "" {
			errs = append(errs, errors.New("session_key_file is required for the jwt codec"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session codec %q", c.SessionCodec))
	}

	if c.TOTPWindow < 0 {
		errs = append(errs, errors.New("totp_window must not be negative"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}

	return errors.Join(errs...)
}

// SecureCookies reports whether cookies must only travel over TLS.
func (c Config) SecureCookies() bool {
	return c.Env == "prod"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
