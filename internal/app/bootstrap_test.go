package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"next-hire/internal/config"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr(" 8080 ")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9090")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr("  ")
	assert.Error(t, err)
}

func preflight(t *testing.T, allowed []string, origin string) *http.Response {
	t.Helper()
	app := fiber.New()
	app.Use(corsMiddleware(config.CORSConfig{AllowedOrigins: allowed}))
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCORS(t *testing.T) {
	resp := preflight(t, []string{"http://localhost:3000"}, "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	resp = preflight(t, []string{"http://localhost:3000"}, "http://evil.example")
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))

	resp = preflight(t, nil, "http://anything.example")
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
