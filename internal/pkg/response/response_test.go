package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"bookloan/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, h fiber.Handler) (int, string, Response) {
	t.Helper()

	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, resp.Header.Get("X-Total-Count"), body
}

func TestErrorEnvelope(t *testing.T) {
	status, _, body := call(t, func(c *fiber.Ctx) error {
		return Conflict(c, "Email already registered")
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.False(t, body.Success)
	assert.Equal(t, "Email already registered", body.Message)
	assert.Nil(t, body.Data)
}

func TestErrorDefaultMessage(t *testing.T) {
	status, _, body := call(t, func(c *fiber.Ctx) error {
		return Error(c, fiber.StatusTooManyRequests, "")
	})
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "Too Many Requests", body.Message)
}

func TestPageSetsTotalHeader(t *testing.T) {
	status, total, body := call(t, func(c *fiber.Ctx) error {
		params := pagination.New(1, 2)
		return Page(c, "ok", pagination.NewResponse([]string{"a", "b"}, params, 5))
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "5", total)
	assert.True(t, body.Success)
}
