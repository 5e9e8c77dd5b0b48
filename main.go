package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"statustrack/store"
)

func main() {
	config := NewConfig()

	db, err := store.Open(config.databaseDriver, config.databaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to unwrap database handle: %v", err)
	}

	// Console-only logger until the log_entries table exists.
	bootLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}).
		With().Timestamp().Logger()

	if err := dbInit(db, bootLog, config); err != nil {
		bootLog.Fatal().Err(err).Msg("Failed to initialize database")
	}

	logger := setupLogger(sqlDB)
	app := NewApp(config, db, logger)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info().Msg("Shutting down")
		app.Stop()
	}()

	if err := app.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}
