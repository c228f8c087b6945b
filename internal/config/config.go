package config

import (
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション設定を表す
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Worker   WorkerConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig はデータベース設定
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig はRedis設定
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// WorkerConfig はバックグラウンドワーカーの設定
type WorkerConfig struct {
	CleanupInterval      time.Duration
	RequestStaleDuration time.Duration
}

// Load は環境変数から設定を読み込む
// DATABASE_URL / REDIS_URL が設定されている場合はそちらを優先する
func Load() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "gig_booking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Worker: WorkerConfig{
			CleanupInterval:      getDurationEnv("WORKER_CLEANUP_INTERVAL", 10*time.Minute),
			RequestStaleDuration: getDurationEnv("REQUEST_STALE_DURATION", 30*24*time.Hour),
		},
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		applyDatabaseURL(&cfg.Database, dbURL)
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		applyRedisURL(&cfg.Redis, redisURL)
	}

	return cfg
}

func applyDatabaseURL(c *DatabaseConfig, rawURL string) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return
	}
	c.Host = u.Hostname()
	if port := u.Port(); port != "" {
		c.Port = port
	}
	if u.User != nil {
		c.User = u.User.Username()
		if password, ok := u.User.Password(); ok {
			c.Password = password
		}
	}
	if len(u.Path) > 1 {
		c.DBName = u.Path[1:]
	}
	if sslmode := u.Query().Get("sslmode"); sslmode != "" {
		c.SSLMode = sslmode
	} else {
		c.SSLMode = "require"
	}
}

func applyRedisURL(c *RedisConfig, rawURL string) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return
	}
	c.Host = u.Hostname()
	if port := u.Port(); port != "" {
		c.Port = port
	}
	if u.User != nil {
		if password, ok := u.User.Password(); ok {
			c.Password = password
		}
	}
}

// DSN はPostgreSQL接続文字列を返す
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
