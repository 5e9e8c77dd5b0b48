package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User is an account holder. Password carries the bcrypt hash and is never
// serialized into responses.
type User struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Password  string     `gorm:"not null" json:"-"`
	Role      string     `gorm:"not null;default:viewer" json:"role"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// StatusEntry is one hydration/altitude record. Rows are immutable once
// written; an update appends a new row carrying the merged fields forward.
type StatusEntry struct {
	ID              uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	UserID          uuid.UUID `gorm:"not null;index" json:"userId"`
	LastWaterIntake time.Time `gorm:"not null" json:"lastWaterIntake"`
	Altitude        int       `gorm:"not null;check:altitude >= 1 AND altitude <= 10" json:"altitude"`
	LastUpdated     time.Time `gorm:"not null" json:"lastUpdated"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
}

// StatusStats aggregates a user's status history.
type StatusStats struct {
	TotalEntries     int64      `json:"totalEntries"`
	AverageAltitude  float64    `json:"averageAltitude"`
	LastActivityDate *time.Time `json:"lastActivityDate"`
}

type LogEntry struct {
	ID        int64           `gorm:"primaryKey;type:integer" json:"id"`
	Level     string          `json:"level"`
	Timestamp int64           `json:"timestamp"`
	Caller    string          `json:"caller"`
	Message   string          `json:"message"`
	Fields    json.RawMessage `gorm:"type:json" json:"fields"`
}

// PaginatedResult holds the paginated query results
type PaginatedResult[T any] struct {
	Result     T     `json:"result"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}
