package main

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"statustrack/store"
)

// App wires the HTTP layer to the stores
type App struct {
	config *Config
	logger *zerolog.Logger
	store  *store.Store
	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(config *Config, db *gorm.DB, logger zerolog.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		config: config,
		logger: &logger,
		store:  store.New(&logger, db),
		ctx:    ctx,
		cancel: cancel,
	}

	// Start the log retention sweeper
	go a.logRetention()

	return a
}

// Stop cancels background work and triggers server shutdown.
func (a *App) Stop() {
	a.cancel()
}
