package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"statustrack/store"
)

type statusCreateRequest struct {
	LastWaterIntake time.Time `json:"lastWaterIntake" validate:"required"`
	Altitude        int       `json:"altitude" validate:"required,min=1,max=10"`
}

type statusUpdateRequest struct {
	LastWaterIntake *time.Time `json:"lastWaterIntake"`
	Altitude        *int       `json:"altitude" validate:"omitempty,min=1,max=10"`
}

// handleGetStatus returns the caller's (or ?userId='s) latest entry, or
// null when there is no history.
func (a *App) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	user, err := a.authenticate(ctx, requestID, r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	userID, err := resolveUserID(r, user.ID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	latest, err := a.store.Status.GetLatest(ctx, requestID, userID)
	if err != nil {
		a.writeError(w, NewDatabaseError(err))
		return
	}

	a.writeData(w, http.StatusOK, latest)
}

// handleCreateStatus inserts a new status entry (admin-only)
func (a *App) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	admin, err := a.requireAdmin(ctx, requestID, r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	userID, err := resolveUserID(r, admin.ID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	var req statusCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to decode create status request")
		a.writeError(w, err)
		return
	}

	if err := validateStruct(req); err != nil {
		a.writeError(w, err)
		return
	}

	now := time.Now()
	entry := store.StatusEntry{
		ID:              uuid.New(),
		UserID:          userID,
		LastWaterIntake: req.LastWaterIntake,
		Altitude:        req.Altitude,
		LastUpdated:     now,
		CreatedAt:       now,
	}

	created, err := a.store.Status.Create(ctx, requestID, entry)
	if err != nil {
		a.writeError(w, remapConstraintError(err))
		return
	}

	a.logger.Info().Msgf("Status entry created for user %s", userID)
	a.writeData(w, http.StatusCreated, created)
}

// handleUpdateStatus merges the partial payload onto the latest entry and
// appends the result as a new row. Two concurrent updates can both read the
// same prior row before either insert lands; last insert wins.
func (a *App) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	admin, err := a.requireAdmin(ctx, requestID, r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	userID, err := resolveUserID(r, admin.ID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to decode update status request")
		a.writeError(w, err)
		return
	}

	if err := validateStruct(req); err != nil {
		a.writeError(w, err)
		return
	}

	if req.LastWaterIntake == nil && req.Altitude == nil {
		a.writeError(w, NewValidationError("At least one of lastWaterIntake or altitude must be provided"))
		return
	}

	latest, err := a.store.Status.GetLatest(ctx, requestID, userID)
	if err != nil {
		a.writeError(w, NewDatabaseError(err))
		return
	}
	if latest == nil {
		a.writeError(w, NewNotFoundError("No status entry found for user"))
		return
	}

	now := time.Now()
	next := *latest
	next.ID = uuid.New()
	next.LastUpdated = now
	next.CreatedAt = now

	if req.LastWaterIntake != nil {
		next.LastWaterIntake = *req.LastWaterIntake
	}
	if req.Altitude != nil {
		next.Altitude = *req.Altitude
	}

	created, err := a.store.Status.Create(ctx, requestID, next)
	if err != nil {
		a.writeError(w, remapConstraintError(err))
		return
	}

	a.logger.Info().Msgf("Status entry updated for user %s", userID)
	a.writeData(w, http.StatusOK, created)
}

// handleDeleteStatus removes the user's entire history (admin-only)
func (a *App) handleDeleteStatus(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	admin, err := a.requireAdmin(ctx, requestID, r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	userID, err := resolveUserID(r, admin.ID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	affected, err := a.store.Status.DeleteAll(ctx, requestID, userID)
	if err != nil {
		a.writeError(w, NewDatabaseError(err))
		return
	}
	if affected == 0 {
		a.writeError(w, NewNotFoundError("No status entries found for user"))
		return
	}

	a.logger.Info().Msgf("Deleted %d status entries for user %s", affected, userID)
	a.writeData(w, http.StatusOK, map[string]int64{"deleted": affected})
}

func (a *App) handleStatusHistory(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	user, err := a.authenticate(ctx, requestID, r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	userID, err := resolveUserID(r, user.ID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			a.writeError(w, NewValidationError("limit must be an integer between 1 and 100"))
			return
		}
	}

	entries, err := a.store.Status.GetHistory(ctx, requestID, userID, limit)
	if err != nil {
		a.writeError(w, NewDatabaseError(err))
		return
	}

	a.writeData(w, http.StatusOK, entries)
}

func (a *App) handleStatusStats(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	user, err := a.authenticate(ctx, requestID, r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	userID, err := resolveUserID(r, user.ID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	stats, err := a.store.Status.GetStats(ctx, requestID, userID)
	if err != nil {
		a.writeError(w, NewDatabaseError(err))
		return
	}

	a.writeData(w, http.StatusOK, stats)
}
