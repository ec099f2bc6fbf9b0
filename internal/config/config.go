// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Current configuration singleton
var (
	currentConfig *Config
	configMutex   sync.RWMutex
)

// Config stores the application configuration
type Config struct {
	Port        string
	DataDir     string
	LogDir      string
	DebugMode   bool
	SkeletonTTL time.Duration
}

// Load reads configuration from the environment. A .env file is honored
// when present. DataDir may point at an external rule catalog; when empty
// or missing, the embedded catalog defaults are used.
func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		Port:        getEnv("PORT", "8080"),
		DataDir:     getEnv("DATA_DIR", ""),
		LogDir:      getEnvPath("LOG_DIR", "logs"),
		DebugMode:   getEnvBool("DEBUG_MODE", false),
		SkeletonTTL: getEnvDuration("SKELETON_TTL", 30*time.Minute),
	}

	configMutex.Lock()
	currentConfig = config
	configMutex.Unlock()

	return config, nil
}

// GetCurrentConfig returns the loaded configuration, loading it on first use.
func GetCurrentConfig() *Config {
	configMutex.RLock()
	cfg := currentConfig
	configMutex.RUnlock()

	if cfg != nil {
		return cfg
	}

	cfg, _ = Load()
	return cfg
}

// getEnv returns an environment variable or the default
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvPath returns a path from the environment, creating the directory
func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			fmt.Printf("warning: failed to create directory %s: %v\n", path, err)
		}
	}

	return path
}

// getEnvBool returns a boolean environment variable
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}

// getEnvDuration returns a duration environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
