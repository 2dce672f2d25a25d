package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/academia-crecer/academia-api/internal/dto"
	"github.com/academia-crecer/academia-api/internal/handler"
	"github.com/academia-crecer/academia-api/internal/service"
)

type mockAuthService struct {
	loginErr      error
	loggedOut     []string
	authenticated bool
}

func (m *mockAuthService) Login(_ context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if m.loginErr != nil {
		return dto.LoginResponse{}, m.loginErr
	}
	return dto.LoginResponse{Token: "token-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *mockAuthService) Logout(_ context.Context, sessionID string) error {
	m.loggedOut = append(m.loggedOut, sessionID)
	return nil
}

func (m *mockAuthService) Session(_ context.Context, sessionID string) (dto.SessionResponse, error) {
	return dto.SessionResponse{Authenticated: m.authenticated}, nil
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	svc := &mockAuthService{}
	app := fiber.New()
	h := handler.NewAuthHandler(svc, zerolog.New(io.Discard))
	h.RegisterPublic(app.Group("/api/v1/auth"))

	resp := postJSON(t, app, "/api/v1/auth/login", dto.LoginRequest{Secret: "admin123"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.Equal(t, "token-1", envelope.Data.Token)
}

func TestAuthHandlerLoginRejected(t *testing.T) {
	svc := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	app := fiber.New()
	h := handler.NewAuthHandler(svc, zerolog.New(io.Discard))
	h.RegisterPublic(app.Group("/api/v1/auth"))

	resp := postJSON(t, app, "/api/v1/auth/login", dto.LoginRequest{Secret: "wrong"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerLogoutUsesBoundSession(t *testing.T) {
	svc := &mockAuthService{}
	app := fiber.New()
	group := app.Group("/api/admin/auth", func(c *fiber.Ctx) error {
		c.Locals("session_id", "session-7")
		return c.Next()
	})
	h := handler.NewAuthHandler(svc, zerolog.New(io.Discard))
	h.RegisterProtected(group)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"session-7"}, svc.loggedOut)
}

func TestAuthHandlerSessionStatus(t *testing.T) {
	svc := &mockAuthService{authenticated: true}
	app := fiber.New()
	h := handler.NewAuthHandler(svc, zerolog.New(io.Discard))
	h.RegisterProtected(app.Group("/api/admin/auth"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/auth/session", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data dto.SessionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Data.Authenticated)
}
