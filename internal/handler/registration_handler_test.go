package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/academia-crecer/academia-api/internal/catalog"
	"github.com/academia-crecer/academia-api/internal/dto"
	"github.com/academia-crecer/academia-api/internal/handler"
	"github.com/academia-crecer/academia-api/internal/service"
)

type mockRegistrationService struct {
	lastOrigin service.Origin
	response   dto.RegistrationResponse
	err        error
}

func (m *mockRegistrationService) Register(_ context.Context, req dto.RegistrationRequest, origin service.Origin) (dto.RegistrationResponse, error) {
	m.lastOrigin = origin
	if m.err != nil {
		return dto.RegistrationResponse{}, m.err
	}
	return m.response, nil
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegistrationHandlerPublicSuccess(t *testing.T) {
	svc := &mockRegistrationService{response: dto.RegistrationResponse{
		Student:      dto.StudentResponse{ID: "id-1", Code: "ACD-7K2MQ", AmountPaid: 50, Balance: 130},
		WhatsAppLink: "https://wa.me/51911222333?text=hola",
	}}
	app := fiber.New()
	h := handler.NewRegistrationHandler(svc, zerolog.New(io.Discard))
	h.RegisterPublic(app.Group("/api/v1/register"))

	resp := postJSON(t, app, "/api/v1/register", dto.RegistrationRequest{
		FirstName:  "Ana",
		LastName:   "Ruiz",
		ScheduleID: "baby-futbol",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, service.OriginPublic, svc.lastOrigin)

	var envelope struct {
		Success bool                     `json:"success"`
		Data    dto.RegistrationResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.Equal(t, "ACD-7K2MQ", envelope.Data.Student.Code)
	require.NotEmpty(t, envelope.Data.WhatsAppLink)
}

func TestRegistrationHandlerAdminOrigin(t *testing.T) {
	svc := &mockRegistrationService{}
	app := fiber.New()
	h := handler.NewRegistrationHandler(svc, zerolog.New(io.Discard))
	h.RegisterAdmin(app.Group("/api/admin/students"))

	resp := postJSON(t, app, "/api/admin/students", dto.RegistrationRequest{
		FirstName:  "Ana",
		LastName:   "Ruiz",
		ScheduleID: "baby-futbol",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, service.OriginAdmin, svc.lastOrigin)
}

func TestRegistrationHandlerUnknownSchedule(t *testing.T) {
	svc := &mockRegistrationService{err: catalog.ErrScheduleNotFound}
	app := fiber.New()
	h := handler.NewRegistrationHandler(svc, zerolog.New(io.Discard))
	h.RegisterPublic(app.Group("/api/v1/register"))

	resp := postJSON(t, app, "/api/v1/register", dto.RegistrationRequest{
		FirstName:  "Ana",
		LastName:   "Ruiz",
		ScheduleID: "natacion",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRegistrationHandlerInvalidBody(t *testing.T) {
	svc := &mockRegistrationService{}
	app := fiber.New()
	h := handler.NewRegistrationHandler(svc, zerolog.New(io.Discard))
	h.RegisterPublic(app.Group("/api/v1/register"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader([]byte("{not-json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
