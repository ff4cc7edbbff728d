// file: internals/helpers/json_response_test.go
package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, handler fiber.Handler) (*fiber.App, int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return app, resp.StatusCode, body
}

func TestJsonErrorEnvelope(t *testing.T) {
	_, status, body := perform(t, func(c *fiber.Ctx) error {
		return JsonError(c, fiber.StatusNotFound, "Schedule not found")
	})

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Schedule not found", body["message"])
	assert.Equal(t, "NOT_FOUND", body["error_code"])
}

func TestJsonValidationErrorEnvelope(t *testing.T) {
	_, status, body := perform(t, func(c *fiber.Ctx) error {
		return JsonValidationError(c, map[string][]string{
			"schedule.monday[0]": {"IDs list cannot be empty."},
		})
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "schedule.monday[0]")
}

func TestJsonOKEnvelope(t *testing.T) {
	_, status, body := perform(t, func(c *fiber.Ctx) error {
		return JsonOK(c, "ok", fiber.Map{"answer": 42})
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 42, data["answer"])
}

func TestJsonDeletedIsNoContent(t *testing.T) {
	_, status, body := perform(t, func(c *fiber.Ctx) error {
		return JsonDeleted(c)
	})

	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Nil(t, body)
}
