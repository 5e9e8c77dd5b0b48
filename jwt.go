package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"statustrack/store"
)

// issueToken signs an HS256 token carrying the user's identity and role.
func (a *App) issueToken(user *store.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(a.config.tokenTTL).Unix(),
	})

	return token.SignedString([]byte(a.config.jwtSecret))
}

// validateJWT validates the JWT and returns the matching user
func (a *App) validateJWT(ctx context.Context, requestID uuid.UUID, tokenString string) (*store.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.config.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	username, _ := claims["username"].(string)
	roleStr, _ := claims["role"].(string)

	// The account must still exist and hold the role the token was issued
	// for; a deleted user or changed role invalidates outstanding tokens.
	user, err := a.store.Users.GetByUsername(ctx, requestID, username)
	if err != nil {
		return nil, fmt.Errorf("user %s not found: %w", username, err)
	}

	if user.Role != roleStr {
		return nil, fmt.Errorf("role mismatch for %s", username)
	}

	return user, nil
}

// authenticate validates the JWT from the Authorization header
func (a *App) authenticate(ctx context.Context, requestID uuid.UUID, r *http.Request) (*store.User, error) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, NewUnauthorizedError("Invalid or missing token")
	}

	user, err := a.validateJWT(ctx, requestID, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		a.logger.Warn().Err(err).Msg("Token validation failed")
		return nil, NewUnauthorizedError("Invalid or missing token")
	}

	return user, nil
}

// requireAdmin authenticates and rejects non-admin callers.
func (a *App) requireAdmin(ctx context.Context, requestID uuid.UUID, r *http.Request) (*store.User, error) {
	user, err := a.authenticate(ctx, requestID, r)
	if err != nil {
		return nil, err
	}

	if user.Role != store.RoleAdmin {
		a.logger.Warn().Msgf("User %s with role %s attempted an admin route", user.Username, user.Role)
		return nil, NewForbiddenError("Admin access required")
	}

	return user, nil
}
