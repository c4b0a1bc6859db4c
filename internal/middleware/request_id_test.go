package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Run("generates request ID when not present", func(t *testing.T) {
		app := fiber.New()

		app.Use(RequestID())
		app.Get("/test", func(c *fiber.Ctx) error {
			return c.SendStatus(200)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
		require.NoError(t, err)

		requestID := resp.Header.Get(HeaderRequestID)
		_, err = uuid.Parse(requestID)
		assert.NoError(t, err)
	})

	t.Run("preserves existing request ID from header", func(t *testing.T) {
		app := fiber.New()

		app.Use(RequestID())
		app.Get("/test", func(c *fiber.Ctx) error {
			return c.SendStatus(200)
		})

		existingID := "existing-request-id-12345"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(HeaderRequestID, existingID)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, existingID, resp.Header.Get(HeaderRequestID))
	})

	t.Run("stores request ID in locals", func(t *testing.T) {
		app := fiber.New()

		var localRequestID string
		app.Use(RequestID())
		app.Get("/test", func(c *fiber.Ctx) error {
			localRequestID = GetRequestID(c)
			return c.SendStatus(200)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
		require.NoError(t, err)
		assert.Equal(t, resp.Header.Get(HeaderRequestID), localRequestID)
	})

	t.Run("uses custom generator", func(t *testing.T) {
		app := fiber.New()

		app.Use(RequestID(RequestIDConfig{
			Header:    "X-Trace",
			Generator: func() string { return "fixed" },
		}))
		app.Get("/test", func(c *fiber.Ctx) error {
			return c.SendStatus(200)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
		require.NoError(t, err)
		assert.Equal(t, "fixed", resp.Header.Get("X-Trace"))
	})
}

func TestGetRequestID_Missing(t *testing.T) {
	app := fiber.New()

	var got string
	app.Get("/test", func(c *fiber.Ctx) error {
		got = GetRequestID(c)
		return c.SendStatus(200)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}
