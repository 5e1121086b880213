package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	StaticDir          string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

type CacheConfig struct {
	RedisURL  string
	ListTTL   time.Duration
	SearchTTL time.Duration
	TagsTTL   time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			StaticDir:          getEnv("STATIC_DIR", "./web"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "default_secret"),
			TokenExpiry: getEnvAsDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		},
		Cache: CacheConfig{
			RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379"),
			ListTTL:   getEnvAsSeconds("CACHE_LIST_TTL_SECONDS", 300),
			SearchTTL: getEnvAsSeconds("CACHE_SEARCH_TTL_SECONDS", 300),
			TagsTTL:   getEnvAsSeconds("CACHE_TAGS_TTL_SECONDS", 600),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsSeconds(key string, fallback int) time.Duration {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(value) * time.Second
	}
	return time.Duration(fallback) * time.Second
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
