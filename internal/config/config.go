// Package config reads the configuration from the environment. A .env
// file in the working directory is loaded first if it exists. Variables
// that are already set take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Server
	Port   string
	APIURL *url.URL

	// Database
	DataDir string

	// Logging
	LogFormat string // "human" or "json", empty selects by GIN_MODE
	LogLevel  zerolog.Level
	GinMode   string

	CORSAllowOrigins []string
	EnablePprof      bool

	// Events. Without AMQP_URL, events are only dispatched in process.
	AMQPURL          string
	AMQPExchange     string
	AMQPConnectTries int
	BusConcurrency   int
}

// Load loads the .env file, if any, and reads the configuration.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	return FromEnv()
}

// FromEnv reads the configuration from environment variables and
// validates it.
func FromEnv() (*Config, error) {
	var errs []error

	apiURL, err := url.Parse(getEnv("API_URL", "http://localhost:8080"))
	if err != nil {
		errs = append(errs, fmt.Errorf("API_URL: %w", err))
	}

	level, err := zerolog.ParseLevel(strings.ToLower(getEnv("LOG_LEVEL", "info")))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	tries, err := getEnvInt("AMQP_CONNECT_TRIES", 5)
	if err != nil {
		errs = append(errs, err)
	}

	concurrency, err := getEnvInt("EVENT_BUS_CONCURRENCY", 8)
	if err != nil {
		errs = append(errs, err)
	}

	c := &Config{
		Port:             getEnv("PORT", "8080"),
		APIURL:           apiURL,
		DataDir:          getEnv("DATA_DIR", "data"),
		LogFormat:        getEnv("LOG_FORMAT", ""),
		LogLevel:         level,
		GinMode:          getEnv("GIN_MODE", "release"),
		CORSAllowOrigins: strings.Fields(getEnv("CORS_ALLOW_ORIGINS", "")),
		EnablePprof:      getEnvBool("ENABLE_PPROF", false),
		AMQPURL:          getEnv("AMQP_URL", ""),
		AMQPExchange:     getEnv("AMQP_EXCHANGE", "budget.events"),
		AMQPConnectTries: tries,
		BusConcurrency:   concurrency,
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the configuration and returns all problems found.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	} else if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port))
	}

	if c.APIURL == nil || c.APIURL.Scheme == "" || c.APIURL.Host == "" {
		errs = append(errs, errors.New("API_URL must be an absolute URL"))
	}

	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR must not be empty"))
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be \"human\" or \"json\", got %q", c.LogFormat))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE must be one of debug, release or test, got %q", c.GinMode))
	}

	if c.AMQPURL != "" && c.AMQPExchange == "" {
		errs = append(errs, errors.New("AMQP_EXCHANGE must be set when AMQP_URL is set"))
	}

	if c.AMQPConnectTries < 1 {
		errs = append(errs, errors.New("AMQP_CONNECT_TRIES must be at least 1"))
	}

	if c.BusConcurrency < 0 {
		errs = append(errs, errors.New("EVENT_BUS_CONCURRENCY must not be negative"))
	}

	return errors.Join(errs...)
}

// DatabasePath is the path of the sqlite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "expense-tracker.db")
}

// HumanLogs reports if logs are written for humans instead of as JSON.
// Without an explicit LOG_FORMAT, debug mode logs for humans.
func (c *Config) HumanLogs() bool {
	if c.LogFormat == "" {
		return c.GinMode == "debug"
	}
	return c.LogFormat == "human"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Str("variable", key).Str("value", value).Bool("default", defaultValue).Msg("invalid boolean, using default")
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return i, nil
}
