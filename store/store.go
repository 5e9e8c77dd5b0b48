package store

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	MethodStrHelper = "method"
	RequestID       = "request_id"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store groups the per-entity stores behind their interfaces.
type Store struct {
	Users  UserInterface
	Status StatusInterface
	Logs   LogsInterface
}

func New(logger *zerolog.Logger, db *gorm.DB) *Store {
	return &Store{
		Users:  NewUserStore(logger, db),
		Status: NewStatusStore(logger, db),
		Logs:   NewLogStore(logger, db),
	}
}

// Open connects gorm to the configured backend. SQLite is the default;
// postgres is selectable for deployments that outgrow a single file.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite, "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{})
}

// Migrate creates or updates the schema for every model. The altitude
// range lives as a CHECK constraint so bad writes fail at the storage
// level too, not only at request validation.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &StatusEntry{}, &LogEntry{})
}
