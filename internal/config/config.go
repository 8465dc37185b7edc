package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string
	GinMode     string

	AppPort int

	DatabaseURL string

	JWTSecret      string
	JWTExpireHours int
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "car-parts-marketplace"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.GinMode = cast.ToString(getOrReturnDefault("GIN_MODE", "debug"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("PORT", 8080))

	cfg.DatabaseURL = cast.ToString(getOrReturnDefault("DATABASE_URL",
		"host=localhost user=postgres password=postgres dbname=carparts port=5432 sslmode=disable"))

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", "secret_key_change_me"))
	cfg.JWTExpireHours = cast.ToInt(getOrReturnDefault("JWT_EXPIRE_HOURS", 24*7))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
