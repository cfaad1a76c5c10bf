package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"eduhub-records/internal/core/services"
	applog "eduhub-records/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(applog.RequestIDFromCtx(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "req-42", resp.Header.Get(HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Len(t, resp.Header.Get(HeaderRequestID), 36)
}

func TestOperator(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Use(Operator())
	app.Get("/", func(c *fiber.Ctx) error {
		if id := services.OperatorFromCtx(c.UserContext()); id != nil {
			return c.SendString(strconv.FormatUint(uint64(*id), 10))
		}
		return c.SendString("anonymous")
	})

	read := func(header string) (int, string) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(HeaderOperatorID, header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	status, body := read("12")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "12", body)

	status, body = read("")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "anonymous", body)

	for _, bad := range []string{"0", "-3", "admin"} {
		status, _ = read(bad)
		require.Equal(t, http.StatusBadRequest, status, bad)
	}
}

func TestCacheControl(t *testing.T) {
	app := fiber.New()
	app.Use(CacheControl(10 * time.Minute))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNotFound) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "public, max-age=600", resp.Header.Get(fiber.HeaderCacheControl))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Empty(t, resp.Header.Get(fiber.HeaderCacheControl))
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(http.StatusTeapot, "short and stout") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusTeapot, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, false, body["success"])
	require.Equal(t, "short and stout", body["error"])
}
