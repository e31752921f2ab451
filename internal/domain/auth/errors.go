package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or missing token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")

	// ErrUnauthenticated is returned by mutations that require an acting
	// user for audit attribution when no identity is present in context.
	ErrUnauthenticated = errors.New("no authenticated user in context")
)
