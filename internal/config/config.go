package config

import (
	"os"
	"runtime"
	"strconv"
)

// EngineConfig holds ambient engine defaults that are not part of the
// per-solve statistical configuration.
type EngineConfig struct {
	// Workers bounds the parallelism of per-gridpoint pattern computation.
	Workers int
}

// LoadEngine reads engine defaults from the environment
func LoadEngine() *EngineConfig {
	return &EngineConfig{
		Workers: getEnvIntOrDefault("MCA_WORKERS", runtime.NumCPU()),
	}
}

// Helper functions for environment variable parsing
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}
