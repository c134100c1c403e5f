package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv  string
	AppPort string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// DraftDBPath is the on-disk location of the scoped key-value store
	// holding correction drafts and payment handoff entries.
	DraftDBPath string

	// PlatformFeeRate is the fraction of a corrected total charged as the
	// platform fee, e.g. "0.05".
	PlatformFeeRate decimal.Decimal
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      os.Getenv("APP_ENV"),
		AppPort:     os.Getenv("APP_PORT"),
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      os.Getenv("DB_PORT"),
		DraftDBPath: os.Getenv("DRAFT_DB_PATH"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.DraftDBPath == "" {
		cfg.DraftDBPath = "data/drafts"
	}

	rate := os.Getenv("PLATFORM_FEE_RATE")
	if rate == "" {
		rate = "0.05"
	}
	parsed, err := decimal.NewFromString(rate)
	if err != nil {
		log.Fatalf("Invalid PLATFORM_FEE_RATE %q: %v", rate, err)
	}
	cfg.PlatformFeeRate = parsed

	return cfg
}
