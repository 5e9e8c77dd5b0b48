package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"statustrack/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	db, err := store.Open(store.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	logger := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &App{
		config: &Config{
			listenAddr:       ":0",
			jwtSecret:        "test-secret",
			tokenTTL:         time.Hour,
			env:              "development",
			logRetentionDays: 14,
		},
		logger: &logger,
		store:  store.New(&logger, db),
		ctx:    ctx,
		cancel: cancel,
	}
}

func seedUser(t *testing.T, a *App, username, password, role string) *store.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	created, err := a.store.Users.Create(context.Background(), uuid.New(), store.User{
		ID:        uuid.New(),
		Username:  username,
		Password:  string(hash),
		Role:      role,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}

	return created
}

func tokenFor(t *testing.T, a *App, user *store.User) string {
	t.Helper()

	token, err := a.issueToken(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	return token
}

func doRequest(t *testing.T, a *App, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	a.Router().ServeHTTP(rr, req)

	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}

	return env
}
