package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Router builds the REST routing table
func (a *App) Router() *mux.Router {
	r := mux.NewRouter()

	// Liveness
	r.HandleFunc("/health", a.handleHealth).Methods("GET")

	// Auth
	r.HandleFunc("/api/auth/register", a.handleRegister).Methods("POST")
	r.HandleFunc("/api/auth/login", a.handleLogin).Methods("POST")
	r.HandleFunc("/api/auth/logout", a.handleLogout).Methods("POST")
	r.HandleFunc("/api/auth/me", a.handleMe).Methods("GET")
	r.HandleFunc("/api/auth/admin/register", a.handleAdminRegister).Methods("POST")
	r.HandleFunc("/api/auth/users", a.handleListUsers).Methods("GET")
	r.HandleFunc("/api/auth/admins", a.handleListAdmins).Methods("GET")
	r.HandleFunc("/api/auth/users/{id}", a.handleDeleteUser).Methods("DELETE")

	// Status
	r.HandleFunc("/api/status/history", a.handleStatusHistory).Methods("GET")
	r.HandleFunc("/api/status/stats", a.handleStatusStats).Methods("GET")
	r.HandleFunc("/api/status", a.handleGetStatus).Methods("GET")
	r.HandleFunc("/api/status", a.handleCreateStatus).Methods("POST")
	r.HandleFunc("/api/status", a.handleUpdateStatus).Methods("PUT")
	r.HandleFunc("/api/status", a.handleDeleteStatus).Methods("DELETE")

	// Logs
	r.HandleFunc("/api/logs", a.handleGetLogs).Methods("GET")

	return r
}

// Start runs the HTTP server until Stop is called or the listener fails.
func (a *App) Start() error {
	srv := &http.Server{
		Addr:              a.config.listenAddr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	a.logger.Info().Msgf("HTTP server listening on %s", a.config.listenAddr)

	select {
	case err := <-errCh:
		return err
	case <-a.ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (a *App) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeBody(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
