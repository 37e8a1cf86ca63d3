package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookbook/internal/logger"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFrom(c))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, ridHeader, string(body))
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, existingID, string(body))
	})
}

func TestRequestIDWith(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDWith(func() string { return "fixed" }))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "fixed", resp.Header.Get(RequestIDHeader))
}

func TestAnnounce(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(Announce(logger.New(&buf, "debug", time.UTC)))
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
	assert.Contains(t, buf.String(), "Middleware triggered!")

	t.Run("quiet above debug", func(t *testing.T) {
		var quiet bytes.Buffer
		app := fiber.New()
		app.Use(Announce(logger.New(&quiet, "info", time.UTC)))
		app.Get("/test", func(c *fiber.Ctx) error { return c.SendString("ok") })

		_, err := app.Test(httptest.NewRequest("GET", "/test", nil))
		require.NoError(t, err)
		assert.Empty(t, quiet.String())
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	// request_id comes from RequestID
	app.Use(RequestID())
	app.Use(Logger(logger.New(&buf, "info", time.UTC)))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
	assert.Equal(t, "info", logData["level"])

	buf.Reset()
	_, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	logData = map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, float64(fiber.StatusInternalServerError), logData["status"])
	assert.Equal(t, "error", logData["level"])
}

func TestLoggerNop(t *testing.T) {
	app := fiber.New()
	app.Use(Logger(zerolog.Nop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("hi") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(2, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get(MetricsPath, func(c *fiber.Ctx) error { return c.SendString("metrics") })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), RateLimitMessage))

	// metrics scraping is never limited
	resp, err = app.Test(httptest.NewRequest("GET", MetricsPath, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLoggerWrappedFiberError(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(Logger(logger.New(&buf, "info", time.UTC)))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fmt.Errorf("lookup user: %w", fiber.ErrNotFound)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, float64(fiber.StatusNotFound), logData["status"])
	assert.Equal(t, "info", logData["level"])
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, fiber.StatusTooManyRequests, statusOf(fiber.ErrTooManyRequests))
	assert.Equal(t, fiber.StatusBadRequest, statusOf(fmt.Errorf("decode: %w", fiber.ErrBadRequest)))
	assert.Equal(t, fiber.StatusInternalServerError, statusOf(errors.New("boom")))
}
