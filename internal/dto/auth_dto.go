package dto

import "time"

// LoginRequest carries the shared admin secret.
type LoginRequest struct {
	Secret string `json:"secret" validate:"required,min=4,max=128"`
}

// LoginResponse returns the bearer token for the admin session.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse reports the authenticated flag for the active session.
type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}
