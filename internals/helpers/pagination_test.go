// file: internals/helpers/pagination_test.go
package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveVia(t *testing.T, target string) Paging {
	t.Helper()
	var got Paging
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePaging(t *testing.T) {
	got := resolveVia(t, "/x")
	assert.Equal(t, Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}, got)

	got = resolveVia(t, "/x?page=3&per_page=10")
	assert.Equal(t, Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}, got)

	// limit is an alias for per_page
	got = resolveVia(t, "/x?limit=5")
	assert.Equal(t, 5, got.PerPage)

	// junk falls back, per_page capped at the max
	got = resolveVia(t, "/x?page=-2&per_page=9999")
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 100, got.PerPage)
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, int64(45), p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = BuildPaginationFromPage(0, 1, 20)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)

	p = BuildPaginationFromPage(40, 2, 20)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNext)
}
