package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// writeBody writes any JSON body with the given status.
func writeBody(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeData wraps data in the success envelope.
func (a *App) writeData(w http.ResponseWriter, status int, data any) {
	writeBody(w, status, map[string]any{"success": true, "data": data})
}

// decodeJSON decodes the request body, mapping malformed or mistyped input
// (a fractional altitude, for instance) to a ValidationError.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return NewValidationError("Invalid request body")
	}
	return nil
}

// resolveUserID reads the optional userId query param, falling back to the
// authenticated caller's own id.
func resolveUserID(r *http.Request, fallback uuid.UUID) (uuid.UUID, error) {
	raw := r.URL.Query().Get("userId")
	if raw == "" {
		return fallback, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, NewValidationError("userId must be a valid id")
	}

	return id, nil
}

func parsePagination(query url.Values) (page, pageSize int) {
	pageSize, err := strconv.Atoi(query.Get("page_size"))
	if err != nil || pageSize <= 0 {
		pageSize = 10 // default
	}

	page, err = strconv.Atoi(query.Get("page"))
	if err != nil || page <= 0 {
		page = 1 // default
	}

	return page, pageSize
}
