package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const AVATAR_SIZE = 256

type Config struct {
	Port        string
	DBUser      string
	DBPass      string
	DBHost      string
	DBName      string
	GinMode     string
	FEOrigins   []string
	MediaBucket string
}

// Load reads the process configuration, layering a .env file under the real
// environment when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		return nil, fmt.Errorf("$PORT must be set")
	}

	config := &Config{
		Port:        port,
		DBUser:      os.Getenv("DB_USER"),
		DBPass:      os.Getenv("DB_PASS"),
		DBHost:      os.Getenv("DB_HOST"),
		DBName:      getEnvDefault("DB_NAME", "brandlink"),
		GinMode:     os.Getenv("GIN_MODE"),
		FEOrigins:   strings.Split(getEnvDefault("FE_ORIGINS", "http://localhost:3000"), ";"),
		MediaBucket: os.Getenv("MEDIA_BUCKET"),
	}
	if config.DBHost == "" {
		return nil, fmt.Errorf("$DB_HOST must be set")
	}
	return config, nil
}

func getEnvDefault(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
