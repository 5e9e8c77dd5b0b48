package main

import (
	"net/http"

	"github.com/google/uuid"
)

// handleGetLogs serves the structured log sink back to admins.
func (a *App) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	if _, err := a.requireAdmin(ctx, requestID, r); err != nil {
		a.writeError(w, err)
		return
	}

	query := r.URL.Query()
	page, pageSize := parsePagination(query)
	level := query.Get("level")

	result, err := a.store.Logs.GetPaginatedLogs(ctx, requestID, page, pageSize, level)
	if err != nil {
		a.writeError(w, NewDatabaseError(err))
		return
	}

	a.writeData(w, http.StatusOK, result)
}
