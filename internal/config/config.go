package config

import (
	"os"
	"strconv"
)

// Store driver names accepted in STORE_DRIVER.
const (
	StoreDriverFile  = "file"
	StoreDriverRedis = "redis"
	StoreDriverMySQL = "mysql"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	StoreDriver string
	StorePath   string
	StoreKey    string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	AdminEmail  string
	AdminPass   string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		StoreDriver: getEnv("STORE_DRIVER", StoreDriverFile),
		StorePath:   getEnv("STORE_PATH", "members.json"),
		StoreKey:    getEnv("STORE_KEY", "trapo_dummy_users"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		AdminEmail:  getEnv("ADMIN_EMAIL", "admin@trapo.com"),
		AdminPass:   getEnv("ADMIN_PASSWORD", "Admin123"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
