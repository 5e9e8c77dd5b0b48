package main

import (
	"errors"
	"net/http"
	"strings"
)

// Stable machine-readable error codes returned in the error envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeDatabase     = "DATABASE_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError carries an HTTP status, a stable code and a client-facing
// message. Err keeps the underlying cause for logging and dev responses.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: CodeValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func NewDatabaseError(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: CodeDatabase, Message: "Database operation failed", Err: err}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message, Err: err}
}

// remapConstraintError turns storage-level constraint violations into 400s.
// SQLite and the pgx driver only surface these through the error text, so
// they are matched by substring before falling back to DatabaseError.
func remapConstraintError(err error) *AppError {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key"):
		return NewValidationError("Username already exists")
	case strings.Contains(msg, "CHECK constraint failed") || strings.Contains(msg, "check constraint"):
		return NewValidationError("Altitude must be an integer between 1 and 10")
	}

	return NewDatabaseError(err)
}

// writeError writes the error envelope. Non-AppError values and 5xx
// messages are suppressed outside development mode.
func (a *App) writeError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError("Internal server error", err)
	}

	body := map[string]any{
		"success": false,
		"error":   appErr.Message,
		"code":    appErr.Code,
	}

	if appErr.Status >= http.StatusInternalServerError && !a.config.isDev() {
		body["error"] = "Internal server error"
	}

	if a.config.isDev() && appErr.Err != nil {
		body["stack"] = appErr.Err.Error()
	}

	writeBody(w, appErr.Status, body)
}
