package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config aggregates application configuration from environment variables.
type Config struct {
	ServerAddr  string
	DatabaseDSN string
	KafkaBroker string // empty disables event publishing
	LogLevel    string
	LogFormat   string // text|json
	CORSOrigin  string
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		ServerAddr:  valueOrDefault("SERVER_ADDR", ":8080"),
		DatabaseDSN: buildDSN(),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		LogLevel:    valueOrDefault("LOG_LEVEL", "info"),
		LogFormat:   valueOrDefault("LOG_FORMAT", "text"),
		CORSOrigin:  valueOrDefault("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func buildDSN() string {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		valueOrDefault("DB_HOST", "localhost"),
		valueOrDefault("DB_PORT", "5432"),
		valueOrDefault("DB_USER", "postgres"),
		valueOrDefault("DB_PASSWORD", "postgres"),
		valueOrDefault("DB_NAME", "international_payments"),
		valueOrDefault("DB_SSLMODE", "disable"),
	)
}

// InitDB opens the Postgres connection.
func InitDB(cfg Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return db
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
