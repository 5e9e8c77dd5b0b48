package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server configuration
type Config struct {
	listenAddr       string
	databaseDriver   string
	databaseURL      string
	jwtSecret        string
	tokenTTL         time.Duration
	adminUser        string
	adminPassword    string
	env              string
	logRetentionDays int
}

func NewConfig() *Config {
	_ = godotenv.Load()

	listenAddr := os.Getenv("LISTEN_ADDRESS")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = "statustrack.db"
	}

	ttlHours, _ := strconv.Atoi(os.Getenv("TOKEN_TTL_HOURS"))
	if ttlHours <= 0 {
		ttlHours = 24
	}

	retention, _ := strconv.Atoi(os.Getenv("LOG_RETENTION_DAYS"))
	if retention <= 0 {
		retention = 14
	}

	return &Config{
		listenAddr:       listenAddr,
		databaseDriver:   os.Getenv("DATABASE_DRIVER"),
		databaseURL:      databaseURL,
		jwtSecret:        os.Getenv("JWT_SECRET"),
		tokenTTL:         time.Duration(ttlHours) * time.Hour,
		adminUser:        os.Getenv("ADMIN_USER"),
		adminPassword:    os.Getenv("ADMIN_PASSWORD"),
		env:              os.Getenv("APP_ENV"),
		logRetentionDays: retention,
	}
}

func (c *Config) isDev() bool {
	return c.env == "" || c.env == "development"
}
