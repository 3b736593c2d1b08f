package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	JWTTTL          time.Duration
	GinMode         string
	SweepInterval   time.Duration
	RetentionWindow time.Duration
}

func Load() *Config {
	// Missing .env is fine; variables may come from the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "taskuser"),
		DBPassword:      getEnv("DB_PASSWORD", "taskpassword"),
		DBName:          getEnv("DB_NAME", "project_tasks"),
		JWTSecret:       getEnv("JWT_SECRET", "default-secret-key-change-me"),
		JWTTTL:          getDurationEnv("JWT_TTL", 24*time.Hour),
		GinMode:         getEnv("GIN_MODE", "debug"),
		SweepInterval:   getDurationEnv("SWEEP_INTERVAL", time.Minute),
		RetentionWindow: getDurationEnv("RETENTION_WINDOW", 24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
