package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mytodo/mytodo-api/internal/utils"
)

type Config struct {
	Port          string
	DatabaseURL   string
	DBPath        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
}

func Load() *Config {
	// Load .env if present; absence is not an error
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "5002"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBPath:        getEnv("DB_PATH", "todo.db"),
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		GinMode:       getEnv("GIN_MODE", "debug"),
	}

	if cfg.SessionSecret == "" {
		secret, err := utils.GenerateSecret()
		if err != nil {
			log.Fatalf("Failed to generate session secret: %v", err)
		}
		cfg.SessionSecret = secret
		log.Println("SESSION_SECRET not set, generated a random secret (sessions will not survive restarts)")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
