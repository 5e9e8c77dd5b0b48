package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"statustrack/store"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type adminRegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin viewer"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// createUser hashes the password and inserts the account, remapping a
// duplicate username to a 400.
func (a *App) createUser(ctx context.Context, requestID uuid.UUID, username, password, role string) (*store.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternalError("Failed to hash password", err)
	}

	u := store.User{
		ID:        uuid.New(),
		Username:  username,
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: time.Now(),
	}

	created, err := a.store.Users.Create(ctx, requestID, u)
	if err != nil {
		return nil, remapConstraintError(err)
	}

	return created, nil
}

// handleRegister creates a viewer account (open endpoint)
func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to decode register request")
		a.writeError(w, err)
		return
	}

	if err := validateStruct(req); err != nil {
		a.writeError(w, err)
		return
	}

	user, err := a.createUser(ctx, requestID, req.Username, req.Password, store.RoleViewer)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.logger.Info().Msgf("User %s registered", user.Username)
	a.writeData(w, http.StatusCreated, user)
}

// handleAdminRegister creates a user with an explicit role (admin-only)
func (a *App) handleAdminRegister(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	admin, err := a.requireAdmin(ctx, requestID, r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	var req adminRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to decode admin register request")
		a.writeError(w, err)
		return
	}

	if err := validateStruct(req); err != nil {
		a.writeError(w, err)
		return
	}

	user, err := a.createUser(ctx, requestID, req.Username, req.Password, req.Role)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.logger.Info().Msgf("User %s created with role %s by %s", user.Username, user.Role, admin.Username)
	a.writeData(w, http.StatusCreated, user)
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to decode login request")
		a.writeError(w, err)
		return
	}

	if err := validateStruct(req); err != nil {
		a.writeError(w, err)
		return
	}

	// Verify credentials. Lookup misses and hash mismatches share one
	// message so usernames cannot be enumerated.
	fetched, err := a.store.Users.GetByUsername(ctx, requestID, req.Username)
	if err != nil {
		a.logger.Warn().Msgf("Login failed for %s", req.Username)
		a.writeError(w, NewUnauthorizedError("Invalid credentials"))
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(fetched.Password), []byte(req.Password)); err != nil {
		a.logger.Warn().Msgf("Invalid password for %s", req.Username)
		a.writeError(w, NewUnauthorizedError("Invalid credentials"))
		return
	}

	token, err := a.issueToken(fetched)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to generate token")
		a.writeError(w, NewInternalError("Failed to generate token", err))
		return
	}

	now := time.Now()
	if err := a.store.Users.UpdateLastLogin(ctx, requestID, fetched.ID, now); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to record last login")
	}
	fetched.LastLogin = &now

	a.logger.Info().Msgf("User %s logged in with role %s", fetched.Username, fetched.Role)
	a.writeData(w, http.StatusOK, map[string]any{"token": token, "user": fetched})
}

// handleLogout exists for client symmetry; tokens are stateless and the
// client just discards its copy.
func (a *App) handleLogout(w http.ResponseWriter, _ *http.Request) {
	a.writeData(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (a *App) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	user, err := a.authenticate(ctx, requestID, r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, user)
}

// handleListUsers lists every account (admin-only)
func (a *App) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	if _, err := a.requireAdmin(ctx, requestID, r); err != nil {
		a.writeError(w, err)
		return
	}

	users, err := a.store.Users.GetAll(ctx, requestID)
	if err != nil {
		a.writeError(w, NewDatabaseError(err))
		return
	}

	a.writeData(w, http.StatusOK, users)
}

// handleListAdmins lists admin accounts (any authenticated role)
func (a *App) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	if _, err := a.authenticate(ctx, requestID, r); err != nil {
		a.writeError(w, err)
		return
	}

	admins, err := a.store.Users.GetAdmins(ctx, requestID)
	if err != nil {
		a.writeError(w, NewDatabaseError(err))
		return
	}

	a.writeData(w, http.StatusOK, admins)
}

func (a *App) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, requestID := r.Context(), uuid.New()

	admin, err := a.requireAdmin(ctx, requestID, r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	targetID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, NewValidationError("id must be a valid user id"))
		return
	}

	if targetID == admin.ID {
		a.writeError(w, NewValidationError("Cannot delete your own account"))
		return
	}

	affected, err := a.store.Users.Delete(ctx, requestID, targetID)
	if err != nil {
		a.writeError(w, NewDatabaseError(err))
		return
	}
	if affected == 0 {
		a.writeError(w, NewNotFoundError("User not found"))
		return
	}

	a.logger.Info().Msgf("User %s deleted by %s", targetID, admin.Username)
	a.writeData(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
