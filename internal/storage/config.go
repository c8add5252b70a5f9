package storage

import "time"

// Backend types
const (
	TypeMemory   = "memory"
	TypeFile     = "file"
	TypeRedis    = "redis"
	TypePostgres = "postgres"
)

// Config holds storage configuration
type Config struct {
	Type           string // "memory", "file", "redis" or "postgres"
	Dir            string // Directory for file storage
	QuotaBytes     int    // Largest accepted serialized value, 0 for unlimited
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
	PostgresDSN    string
	DialTimeout    time.Duration
}
