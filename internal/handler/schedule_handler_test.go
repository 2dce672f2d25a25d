package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/academia-crecer/academia-api/internal/catalog"
	"github.com/academia-crecer/academia-api/internal/handler"
)

func scheduleApp() *fiber.App {
	app := fiber.New()
	handler.NewScheduleHandler().Register(app.Group("/api/v1/schedules"))
	return app
}

func TestScheduleHandlerList(t *testing.T) {
	app := scheduleApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []catalog.ClassSchedule `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, len(catalog.All()))
}

func TestScheduleHandlerGet(t *testing.T) {
	app := scheduleApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules/baby-futbol", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data catalog.ClassSchedule `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, "baby-futbol", envelope.Data.ID)
	require.Equal(t, 180, envelope.Data.MonthlyPrice)
}

func TestScheduleHandlerGetUnknown(t *testing.T) {
	app := scheduleApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules/natacion", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
