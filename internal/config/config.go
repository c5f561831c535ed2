// Package config provides configuration management for synthgen.
//
// Configuration is loaded from multiple sources in this order:
// 1. A .env file, if present (local development convenience)
// 2. A YAML config file (optional)
// 3. Environment variables (take precedence over the file)
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	BlobStorage BlobStorageConfig `mapstructure:"blob_storage"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Generation  GenerationConfig  `mapstructure:"generation"`
}

// ServerConfig contains HTTP and WebSocket server configuration.
type ServerConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Environment        string        `mapstructure:"environment"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	CORSAllowedMethods []string      `mapstructure:"cors_allowed_methods"`
	CORSAllowedHeaders []string      `mapstructure:"cors_allowed_headers"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	MaxRequestSize     int64         `mapstructure:"max_request_size"`
}

// Validate validates server configuration.
func (sc *ServerConfig) Validate() error {
	if sc.Port <= 0 || sc.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", sc.Port)
	}
	if sc.Host == "" {
		return errors.New("host cannot be empty")
	}
	if sc.ReadTimeout < 0 {
		return errors.New("read_timeout cannot be negative")
	}
	if sc.WriteTimeout < 0 {
		return errors.New("write_timeout cannot be negative")
	}
	if sc.MaxRequestSize <= 0 {
		return errors.New("max_request_size must be positive")
	}
	return nil
}

// DatabaseConfig contains run-history storage configuration. synthgen
// persists run metadata to a local SQLite file, not a network database.
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Validate validates database configuration.
func (dc *DatabaseConfig) Validate() error {
	if dc.Path == "" {
		return errors.New("database.path cannot be empty")
	}
	if dc.MaxOpenConns < 0 {
		return errors.New("max_open_conns cannot be negative")
	}
	if dc.MaxIdleConns < 0 {
		return errors.New("max_idle_conns cannot be negative")
	}
	return nil
}

// RedisConfig contains dataset-cache configuration. A blank URL/Host
// disables caching rather than failing the run.
type RedisConfig struct {
	URL         string        `mapstructure:"url"`
	Host        string        `mapstructure:"host"`
	Password    string        `mapstructure:"password"`
	Port        int           `mapstructure:"port"`
	Database    int           `mapstructure:"database"`
	PoolSize    int           `mapstructure:"pool_size"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	TTL         time.Duration `mapstructure:"ttl"`
}

// Validate validates Redis configuration.
func (rc *RedisConfig) Validate() error {
	if rc.URL != "" {
		if rc.PoolSize < 0 {
			return errors.New("pool_size cannot be negative")
		}
		return nil
	}
	if rc.Host == "" {
		return nil // caching disabled
	}
	if rc.Port <= 0 || rc.Port > 65535 {
		return fmt.Errorf("invalid redis port: %d (must be 1-65535)", rc.Port)
	}
	if rc.Database < 0 || rc.Database > 15 {
		return fmt.Errorf("invalid redis database number: %d (must be 0-15)", rc.Database)
	}
	if rc.PoolSize < 0 {
		return errors.New("pool_size cannot be negative")
	}
	return nil
}

// BlobStorageConfig contains S3-compatible archive upload configuration
// for completed run outputs. A blank Provider disables archiving.
type BlobStorageConfig struct {
	Provider        string `mapstructure:"provider"` // "s3", "minio", ""  (disabled)
	BucketName      string `mapstructure:"bucket_name"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"` // e.g. MinIO: "http://localhost:9000"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"` // true for MinIO
}

// Validate validates blob storage configuration.
func (bc *BlobStorageConfig) Validate() error {
	if bc.Provider == "" {
		return nil // archiving disabled
	}
	if bc.BucketName == "" {
		return errors.New("blob_storage.bucket_name is required when a provider is set")
	}
	return nil
}

// LoggingConfig contains structured-logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text (tint), json
}

// Validate validates logging configuration.
func (lc *LoggingConfig) Validate() error {
	validLevels := []string{"debug", "info", "warn", "error"}
	valid := false
	for _, level := range validLevels {
		if lc.Level == level {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log level: %s (must be one of %v)", lc.Level, validLevels)
	}
	if lc.Format != "text" && lc.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be text or json)", lc.Format)
	}
	return nil
}

// GenerationConfig bounds how large a single run is allowed to be, and
// sets the domain-template cache size and the default output directory.
type GenerationConfig struct {
	MaxRows           int64  `mapstructure:"max_rows"`
	MaxColumns        int    `mapstructure:"max_columns"`
	TemplateCacheSize int    `mapstructure:"template_cache_size"`
	DefaultOutputDir  string `mapstructure:"default_output_dir"`
}

// Validate validates generation bounds.
func (gc *GenerationConfig) Validate() error {
	if gc.MaxRows <= 0 {
		return errors.New("generation.max_rows must be positive")
	}
	if gc.MaxColumns <= 0 {
		return errors.New("generation.max_columns must be positive")
	}
	if gc.TemplateCacheSize <= 0 {
		return errors.New("generation.template_cache_size must be positive")
	}
	return nil
}

// Validate validates the full configuration tree.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}
	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis config validation failed: %w", err)
	}
	if err := c.BlobStorage.Validate(); err != nil {
		return fmt.Errorf("blob storage config validation failed: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}
	if err := c.Generation.Validate(); err != nil {
		return fmt.Errorf("generation config validation failed: %w", err)
	}
	return nil
}

// Load reads configuration from (in order of increasing precedence) a
// config.yaml file, then environment variables, applying defaults for
// anything left unset.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/synthgen")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	//nolint:errcheck // BindEnv only errors with invalid args, safe with string literals
	viper.BindEnv("server.port", "PORT")
	//nolint:errcheck
	viper.BindEnv("server.environment", "ENV")
	//nolint:errcheck
	viper.BindEnv("logging.level", "LOG_LEVEL")
	//nolint:errcheck
	viper.BindEnv("logging.format", "LOG_FORMAT")
	//nolint:errcheck
	viper.BindEnv("database.path", "DATABASE_PATH")
	//nolint:errcheck
	viper.BindEnv("redis.url", "REDIS_URL")
	//nolint:errcheck
	viper.BindEnv("blob_storage.provider", "BLOB_STORAGE_PROVIDER")
	//nolint:errcheck
	viper.BindEnv("blob_storage.bucket_name", "BLOB_STORAGE_BUCKET_NAME")
	//nolint:errcheck
	viper.BindEnv("blob_storage.access_key_id", "BLOB_STORAGE_ACCESS_KEY_ID")
	//nolint:errcheck
	viper.BindEnv("blob_storage.secret_access_key", "BLOB_STORAGE_SECRET_ACCESS_KEY")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.shutdown_timeout", "30s")
	viper.SetDefault("server.max_request_size", 32<<20) // 32MB
	viper.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000"})
	viper.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("server.cors_allowed_headers", []string{"Content-Type", "Authorization"})

	viper.SetDefault("database.path", "./synthgen.db")
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "1h")

	viper.SetDefault("redis.host", "")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.database", 0)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.idle_timeout", "5m")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.ttl", "1h")

	viper.SetDefault("blob_storage.provider", "")
	viper.SetDefault("blob_storage.use_path_style", false)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	viper.SetDefault("generation.max_rows", 10_000_000)
	viper.SetDefault("generation.max_columns", 2000)
	viper.SetDefault("generation.template_cache_size", 32)
	viper.SetDefault("generation.default_output_dir", "./output")
}
