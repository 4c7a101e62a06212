package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// Almanac LRU settings
	PhaseLRUSize       int
	TideLRUSize        int
	AlmanacTTLMinutes  int
	EnableAlmanacCache bool

	// HTTP response cache settings
	ResponseLRUSize       int
	ResponseLRUTTLMinutes int
	EnableResponseCache   bool
}

const (
	// Default values
	defaultPhaseLRUSize          = 240
	defaultTideLRUSize           = 1000
	defaultAlmanacTTLMinutes     = 24 * 60
	defaultResponseLRUSize       = 5000
	defaultResponseLRUTTLMinutes = 60
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		PhaseLRUSize:          getEnvInt("CACHE_PHASE_LRU_SIZE", defaultPhaseLRUSize),
		TideLRUSize:           getEnvInt("CACHE_TIDE_LRU_SIZE", defaultTideLRUSize),
		AlmanacTTLMinutes:     getEnvInt("CACHE_ALMANAC_TTL_MINUTES", defaultAlmanacTTLMinutes),
		EnableAlmanacCache:    getEnvBool("CACHE_ENABLE_ALMANAC", true),
		ResponseLRUSize:       getEnvInt("CACHE_RESPONSE_LRU_SIZE", defaultResponseLRUSize),
		ResponseLRUTTLMinutes: getEnvInt("CACHE_RESPONSE_TTL_MINUTES", defaultResponseLRUTTLMinutes),
		EnableResponseCache:   getEnvBool("CACHE_ENABLE_RESPONSE", true),
	}

	log.Debug().
		Int("PhaseLRUSize", config.PhaseLRUSize).
		Int("TideLRUSize", config.TideLRUSize).
		Int("AlmanacTTLMinutes", config.AlmanacTTLMinutes).
		Bool("EnableAlmanacCache", config.EnableAlmanacCache).
		Int("ResponseLRUSize", config.ResponseLRUSize).
		Int("ResponseLRUTTLMinutes", config.ResponseLRUTTLMinutes).
		Bool("EnableResponseCache", config.EnableResponseCache).
		Msg("Cache configuration loaded")

	return config
}

// DefaultCacheConfig returns the defaults without consulting the environment
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		PhaseLRUSize:          defaultPhaseLRUSize,
		TideLRUSize:           defaultTideLRUSize,
		AlmanacTTLMinutes:     defaultAlmanacTTLMinutes,
		EnableAlmanacCache:    true,
		ResponseLRUSize:       defaultResponseLRUSize,
		ResponseLRUTTLMinutes: defaultResponseLRUTTLMinutes,
		EnableResponseCache:   true,
	}
}

func (c *CacheConfig) GetAlmanacTTL() time.Duration {
	return time.Duration(c.AlmanacTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetResponseLRUTTL() time.Duration {
	return time.Duration(c.ResponseLRUTTLMinutes) * time.Minute
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
