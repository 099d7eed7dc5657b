package rewrite

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config contains the configuration options for the rewrite engine.
type Config struct {
	// CacheMaxSize is the maximum number of rewriters to cache. 0 disables caching.
	CacheMaxSize int
	// CacheTTL is the time-to-live for cached rewriters. 0 means no expiration.
	CacheTTL time.Duration
	// LogLevel controls the verbosity of logging (debug, info, warn, error).
	LogLevel string
	// StrictMode makes unresolved references and evaluation failures abort
	// rendering instead of degrading to literal text.
	StrictMode bool
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CacheMaxSize: 100,
		CacheTTL:     0,
		LogLevel:     "info",
		StrictMode:   false,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("REWRITE_CACHE_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.CacheMaxSize = size
		}
	}

	if val := os.Getenv("REWRITE_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.CacheTTL = duration
		}
	}

	if val := os.Getenv("REWRITE_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	if val := os.Getenv("REWRITE_STRICT_MODE"); val != "" {
		config.StrictMode = parseBool(val)
	}

	return config
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.CacheMaxSize < 0 {
		return errors.New("cache max size cannot be negative")
	}

	if c.CacheTTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	return nil
}

// GetGlobalConfig returns a copy of the global configuration.
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration.
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger outside the lock to avoid deadlock.
	UpdateLoggerFromConfig()
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
