package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/academia-crecer/academia-api/internal/middleware"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, sessionID string, secret string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"session_id": sessionID,
		"role":       "admin",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func perform(t *testing.T, app *fiber.App, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func protectedApp(handler fiber.Handler, middlewares ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append(append([]fiber.Handler{}, middlewares...), handler)
	app.Get("/", chain...)
	return app
}

func TestJWTProtectedValidToken(t *testing.T) {
	app := protectedApp(func(c *fiber.Ctx) error {
		require.Equal(t, "session-1", middleware.SessionID(c))
		return c.SendStatus(fiber.StatusNoContent)
	}, middleware.JWTProtected(testSecret))

	resp := perform(t, app, map[string]string{
		"Authorization": "Bearer " + signToken(t, "session-1", testSecret),
	})
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestJWTProtectedMissingHeader(t *testing.T) {
	app := protectedApp(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	}, middleware.JWTProtected(testSecret))

	resp := perform(t, app, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedWrongSignature(t *testing.T) {
	app := protectedApp(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	}, middleware.JWTProtected(testSecret))

	resp := perform(t, app, map[string]string{
		"Authorization": "Bearer " + signToken(t, "session-1", "other-secret"),
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionRequiredChecksServerSideFlag(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	app := protectedApp(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	}, middleware.JWTProtected(testSecret), middleware.SessionRequired(redisClient))

	headers := map[string]string{
		"Authorization": "Bearer " + signToken(t, "session-9", testSecret),
	}

	// Token alone is not enough; the server-side session flag must exist.
	resp := perform(t, app, headers)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	require.NoError(t, redisClient.Set(t.Context(), "admin_session:session-9", "1", time.Hour).Err())

	resp = perform(t, app, headers)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
