package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whopu/challenge/pkg/middleware"
)

func newCORSApp(origins []string, credentials bool) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewCORSGlobalMiddleware(origins, []string{"GET", "POST"}, credentials, nil, "600").Middleware())
	app.Post("/api/rsvp", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/rsvp", nil)
	req.Header.Set("Origin", "https://challenge.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := newCORSApp([]string{"*"}, false).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", resp.Header.Get("Access-Control-Max-Age"))
}

func TestCORS_CredentialsEchoOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/rsvp", nil)
	req.Header.Set("Origin", "https://challenge.example.com")

	resp, err := newCORSApp([]string{"https://challenge.example.com"}, true).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://challenge.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORS_UnknownOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/rsvp", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	resp, err := newCORSApp([]string{"https://challenge.example.com"}, false).Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
