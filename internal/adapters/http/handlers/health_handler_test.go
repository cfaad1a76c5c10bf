package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name     string
		check    func() error
		status   int
		database string
	}{
		{"healthy", func() error { return nil }, http.StatusOK, "healthy"},
		{"database down", func() error { return errors.New("dial tcp: refused") }, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", NewHealthHandler("dev", tt.check).HealthCheck)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.status, resp.StatusCode)

			var body struct {
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.database, body.Checks["database"])
		})
	}
}

func TestParseID(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return c.SendStatus(http.StatusBadRequest)
		}
		return c.JSON(fiber.Map{"id": id})
	})

	for path, status := range map[string]int{
		"/12":  http.StatusOK,
		"/0":   http.StatusBadRequest,
		"/-1":  http.StatusBadRequest,
		"/abc": http.StatusBadRequest,
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, status, resp.StatusCode, path)
	}
}
