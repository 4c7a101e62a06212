package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Store backends accepted by STORE_BACKEND
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreDynamoDB = "dynamodb"
	StoreS3       = "s3"
	StorePostgres = "postgres"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level

	// Location preference storage
	StoreBackend  string
	StoreFilePath string
	DynamoTable   string
	S3Bucket      string
	DatabaseDSN   string
	Profile       string
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithStoreBackend selects where location preferences are persisted
func WithStoreBackend(backend string) Option {
	return func(c *Config) {
		c.StoreBackend = strings.ToLower(backend)
	}
}

func WithStoreFilePath(path string) Option {
	return func(c *Config) {
		c.StoreFilePath = path
	}
}

func WithDynamoTable(table string) Option {
	return func(c *Config) {
		c.DynamoTable = table
	}
}

func WithS3Bucket(bucket string) Option {
	return func(c *Config) {
		c.S3Bucket = bucket
	}
}

func WithDatabaseDSN(dsn string) Option {
	return func(c *Config) {
		c.DatabaseDSN = dsn
	}
}

// WithProfile sets the key the preference record is stored under
func WithProfile(profile string) Option {
	return func(c *Config) {
		c.Profile = profile
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:   "production",
		LogLevel:      zerolog.InfoLevel,
		StoreBackend:  StoreMemory,
		StoreFilePath: defaultStoreFilePath(),
		DynamoTable:   "lunartide-preferences",
		Profile:       "default",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithStoreBackend(getEnvOrDefault("STORE_BACKEND", StoreMemory)),
		WithStoreFilePath(getEnvOrDefault("STORE_FILE_PATH", defaultStoreFilePath())),
		WithDynamoTable(getEnvOrDefault("DYNAMODB_TABLE", "lunartide-preferences")),
		WithS3Bucket(getEnvOrDefault("S3_BUCKET", "")),
		WithDatabaseDSN(getEnvOrDefault("DATABASE_DSN", "")),
		WithProfile(getEnvOrDefault("PROFILE", "default")),
	)
}

func defaultStoreFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lunartide-locations.json"
	}
	return home + string(os.PathSeparator) + ".lunartide-locations.json"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
