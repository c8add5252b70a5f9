package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"carrental-portal/internal/storage"
)

const (
	defaultPollSchedule = "@every 3s"
	defaultQuotaBytes   = 5 << 20
	defaultImage        = "/images/cars/default.jpg"
	defaultStoreDir     = "./data"
)

// Config represents the application configuration
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Sync      SyncConfig      `yaml:"sync"`
	Log       LogConfig       `yaml:"log"`
	Email     EmailConfig     `yaml:"email"`
	Inventory InventoryConfig `yaml:"inventory"`
}

// StorageConfig selects and configures the shared key-value backend
type StorageConfig struct {
	Type       string         `yaml:"type"` // "memory", "file", "redis" or "postgres"
	Dir        string         `yaml:"dir"`  // For file storage
	QuotaBytes int            `yaml:"quota_bytes"`
	Redis      RedisConfig    `yaml:"redis"`
	Postgres   DatabaseConfig `yaml:"postgres"`
}

// RedisConfig contains redis connection settings
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SyncConfig contains polling synchronizer settings
type SyncConfig struct {
	PollSchedule string `yaml:"poll_schedule"` // cron spec, seconds precision
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// EmailConfig contains decision email settings. An empty API key disables sending.
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
}

// InventoryConfig contains fleet defaults
type InventoryConfig struct {
	DefaultImage string `yaml:"default_image"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration, applies environment overrides and validates it
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Storage
	if val := os.Getenv("STORE_TYPE"); val != "" {
		c.Storage.Type = val
	}
	if val := os.Getenv("STORE_DIR"); val != "" {
		c.Storage.Dir = val
	}
	if val := os.Getenv("STORE_QUOTA_BYTES"); val != "" {
		fmt.Sscanf(val, "%d", &c.Storage.QuotaBytes)
	}
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Storage.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Storage.Redis.Password = val
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Storage.Postgres.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Storage.Postgres.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Storage.Postgres.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Storage.Postgres.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Storage.Postgres.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Storage.Postgres.SSLMode = val
	}

	// Sync
	if val := os.Getenv("SYNC_POLL_SCHEDULE"); val != "" {
		c.Sync.PollSchedule = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	if c.Storage.Type == "" {
		c.Storage.Type = storage.TypeFile
	}
	switch c.Storage.Type {
	case storage.TypeMemory:
	case storage.TypeFile:
		if c.Storage.Dir == "" {
			c.Storage.Dir = defaultStoreDir
		}
	case storage.TypeRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("redis address is required")
		}
	case storage.TypePostgres:
		if c.Storage.Postgres.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Storage.Postgres.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Storage.Postgres.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Storage.Postgres.Port == 0 {
			c.Storage.Postgres.Port = 5432
		}
		if c.Storage.Postgres.SSLMode == "" {
			c.Storage.Postgres.SSLMode = "disable"
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("invalid storage quota: %d", c.Storage.QuotaBytes)
	}
	if c.Storage.QuotaBytes == 0 {
		c.Storage.QuotaBytes = defaultQuotaBytes
	}

	if c.Sync.PollSchedule == "" {
		c.Sync.PollSchedule = defaultPollSchedule
	}

	if c.Email.SendGridAPIKey != "" && c.Email.FromEmail == "" {
		return fmt.Errorf("email from address is required when sendgrid is enabled")
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Car Rental Portal"
	}

	if c.Inventory.DefaultImage == "" {
		c.Inventory.DefaultImage = defaultImage
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Storage.Postgres.User,
		c.Storage.Postgres.Password,
		c.Storage.Postgres.Host,
		c.Storage.Postgres.Port,
		c.Storage.Postgres.Database,
		c.Storage.Postgres.SSLMode,
	)
}

// StorageOptions maps the storage section onto the storage package settings
func (c *Config) StorageOptions() storage.Config {
	opts := storage.Config{
		Type:           c.Storage.Type,
		Dir:            c.Storage.Dir,
		QuotaBytes:     c.Storage.QuotaBytes,
		RedisAddr:      c.Storage.Redis.Addr,
		RedisPassword:  c.Storage.Redis.Password,
		RedisDB:        c.Storage.Redis.DB,
		RedisKeyPrefix: c.Storage.Redis.KeyPrefix,
		DialTimeout:    5 * time.Second,
	}
	if c.Storage.Type == storage.TypePostgres {
		opts.PostgresDSN = c.GetDatabaseConnectionString()
	}
	return opts
}
