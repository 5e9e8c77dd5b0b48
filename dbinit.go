package main

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"statustrack/store"
)

// dbInit migrates the schema and seeds the bootstrap admin so admin-only
// endpoints are reachable on a fresh database.
func dbInit(db *gorm.DB, logger zerolog.Logger, config *Config) error {
	if err := store.Migrate(db); err != nil {
		logger.Error().Err(err).Msg("Failed to migrate schema")
		return err
	}

	if config.adminUser == "" || config.adminPassword == "" {
		logger.Warn().Msg("ADMIN_USER/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing store.User
	err := db.Where("username = ?", config.adminUser).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(config.adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := store.User{
		ID:        uuid.New(),
		Username:  config.adminUser,
		Password:  string(hashedPassword),
		Role:      store.RoleAdmin,
		CreatedAt: time.Now(),
	}

	if err := db.Create(&admin).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to insert admin user")
		return err
	}

	logger.Info().Msgf("Seeded admin user %s", config.adminUser)
	return nil
}
