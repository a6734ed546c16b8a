package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServerPort      int
	SecretKey       string
	SessionTTLHours int
	Database        DatabaseConfig
	Redis           RedisConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		ServerPort:      cast.ToInt(getOrReturnDefault("SERVER_PORT", 8080)),
		SecretKey:       cast.ToString(getOrReturnDefault("SECRET_KEY", "")),
		SessionTTLHours: cast.ToInt(getOrReturnDefault("SESSION_TTL_HOURS", 24)),
		Database: DatabaseConfig{
			Host:     cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
			Port:     cast.ToInt(getOrReturnDefault("DB_PORT", 5432)),
			User:     cast.ToString(getOrReturnDefault("DB_USER", "zinal")),
			Password: cast.ToString(getOrReturnDefault("DB_PASSWORD", "password")),
			DBName:   cast.ToString(getOrReturnDefault("DB_NAME", "zinal_db")),
			UseSSL:   cast.ToBool(getOrReturnDefault("DB_SSL", false)),
		},
		Redis: RedisConfig{
			Addr:     cast.ToString(getOrReturnDefault("REDIS_ADDR", "localhost:6379")),
			Password: cast.ToString(getOrReturnDefault("REDIS_PASSWORD", "")),
			DB:       cast.ToInt(getOrReturnDefault("REDIS_DB", 0)),
		},
	}
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
