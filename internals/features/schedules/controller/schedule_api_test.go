// file: internals/features/schedules/controller/schedule_api_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"scheduleku_backend/internals/configs"
	database "scheduleku_backend/internals/databases"
	repo "scheduleku_backend/internals/features/schedules/repository"
	routes "scheduleku_backend/internals/route"
)

/* =========================
   Harness
   ========================= */

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping DB-backed tests")
	}

	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app, db
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, payload any) (int, envelope) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	}
	return resp.StatusCode, env
}

// registerAndLogin provisions a fresh user and returns its access token.
func registerAndLogin(t *testing.T, app *fiber.App) (token, username string) {
	t.Helper()
	username = "user_" + uuid.NewString()[:8]

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "supersecret",
		"password_confirm": "supersecret",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": username,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, status)

	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(t, tokens.Access)
	return tokens.Access, username
}

type detailBody struct {
	ID       uuid.UUID                    `json:"id"`
	Name     string                       `json:"name"`
	Owner    string                       `json:"owner"`
	Schedule map[string][]map[string]any  `json:"schedule"`
}

func createSchedule(t *testing.T, app *fiber.App, token, name string, week fiber.Map) detailBody {
	t.Helper()
	status, env := doJSON(t, app, http.MethodPost, "/api/schedules", token, fiber.Map{
		"name":     name,
		"schedule": week,
	})
	require.Equal(t, http.StatusCreated, status, "message: %s", env.Message)

	var detail detailBody
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	return detail
}

var sampleWeek = fiber.Map{
	"monday": []fiber.Map{
		{"start": "09:00", "stop": "10:30", "ids": []int{1, 2}},
	},
	"tuesday": []fiber.Map{
		{"start": "14:00", "stop": "15:00", "ids": []int{3}},
	},
}

/* =========================
   CRUD flow
   ========================= */

func TestScheduleLifecycle(t *testing.T) {
	app, _ := setupApp(t)
	token, username := registerAndLogin(t, app)

	detail := createSchedule(t, app, token, "Work week", sampleWeek)
	assert.Equal(t, username, detail.Owner)
	require.Len(t, detail.Schedule, 7, "every day key must be present")
	require.Len(t, detail.Schedule["monday"], 1)
	assert.Equal(t, "09:00", detail.Schedule["monday"][0]["start"])
	assert.Equal(t, "10:30", detail.Schedule["monday"][0]["stop"])
	assert.Empty(t, detail.Schedule["sunday"])

	// list includes it with a slot count
	status, env := doJSON(t, app, http.MethodGet, "/api/schedules", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []struct {
		ID             uuid.UUID `json:"id"`
		TimeSlotsCount int       `json:"time_slots_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, detail.ID, list[0].ID)
	assert.Equal(t, 2, list[0].TimeSlotsCount)

	// detail fetch
	status, env = doJSON(t, app, http.MethodGet, "/api/schedules/"+detail.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, status)

	// PATCH name only: the week stays untouched
	status, env = doJSON(t, app, http.MethodPatch, "/api/schedules/"+detail.ID.String(), token, fiber.Map{
		"name": "Renamed week",
	})
	require.Equal(t, http.StatusOK, status)
	var patched detailBody
	require.NoError(t, json.Unmarshal(env.Data, &patched))
	assert.Equal(t, "Renamed week", patched.Name)
	require.Len(t, patched.Schedule["monday"], 1)
	require.Len(t, patched.Schedule["tuesday"], 1)

	// PUT with a new week: slots are replaced wholesale
	status, env = doJSON(t, app, http.MethodPut, "/api/schedules/"+detail.ID.String(), token, fiber.Map{
		"name": "Friday only",
		"schedule": fiber.Map{
			"friday": []fiber.Map{{"start": "08:00", "stop": "09:00", "ids": []int{9}}},
		},
	})
	require.Equal(t, http.StatusOK, status)
	var replaced detailBody
	require.NoError(t, json.Unmarshal(env.Data, &replaced))
	assert.Empty(t, replaced.Schedule["monday"])
	assert.Empty(t, replaced.Schedule["tuesday"])
	require.Len(t, replaced.Schedule["friday"], 1)

	// soft delete
	status, _ = doJSON(t, app, http.MethodDelete, "/api/schedules/"+detail.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/schedules/"+detail.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = doJSON(t, app, http.MethodGet, "/api/schedules", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestSoftDeletedScheduleStaysInAllView(t *testing.T) {
	app, db := setupApp(t)
	token, username := registerAndLogin(t, app)

	detail := createSchedule(t, app, token, "Disappearing", sampleWeek)
	status, _ := doJSON(t, app, http.MethodDelete, "/api/schedules/"+detail.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, status)

	var ownerID uuid.UUID
	require.NoError(t, db.Table("users").Select("id").
		Where("user_name = ?", username).Scan(&ownerID).Error)

	all, err := repo.ListAll(db, ownerID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, detail.ID, all[0].ID)
	assert.False(t, all[0].IsActive)
	require.Len(t, all[0].TimeSlots, 2)

	// flag a slot inactive: the all-records view still surfaces it
	require.NoError(t, db.Table("time_slots").
		Where("schedule_id = ?", detail.ID).
		Update("is_active", false).Error)

	all, err = repo.ListAll(db, ownerID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].TimeSlots, 2)
}

/* =========================
   Validation
   ========================= */

func TestCreateScheduleValidation(t *testing.T) {
	app, _ := setupApp(t)
	token, _ := registerAndLogin(t, app)

	tests := []struct {
		name    string
		week    fiber.Map
		errKey  string
	}{
		{
			name:   "unknown day",
			week:   fiber.Map{"funday": []fiber.Map{{"start": "09:00", "stop": "10:00", "ids": []int{1}}}},
			errKey: "schedule",
		},
		{
			name:   "start after stop",
			week:   fiber.Map{"monday": []fiber.Map{{"start": "12:00", "stop": "11:00", "ids": []int{1}}}},
			errKey: "schedule.monday[0]",
		},
		{
			name:   "empty ids",
			week:   fiber.Map{"monday": []fiber.Map{{"start": "09:00", "stop": "10:00", "ids": []int{}}}},
			errKey: "schedule.monday[0]",
		},
		{
			name:   "negative id",
			week:   fiber.Map{"monday": []fiber.Map{{"start": "09:00", "stop": "10:00", "ids": []int{-1}}}},
			errKey: "schedule.monday[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doJSON(t, app, http.MethodPost, "/api/schedules", token, fiber.Map{
				"name":     "Broken",
				"schedule": tt.week,
			})
			require.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, env.Errors, tt.errKey)
		})
	}

	// nothing was persisted
	status, env := doJSON(t, app, http.MethodGet, "/api/schedules", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestCreateScheduleRejectsDuplicateSlot(t *testing.T) {
	app, _ := setupApp(t)
	token, _ := registerAndLogin(t, app)

	// same (day, start, stop) twice trips the unique index; ids don't matter
	status, env := doJSON(t, app, http.MethodPost, "/api/schedules", token, fiber.Map{
		"name": "Clashing",
		"schedule": fiber.Map{
			"monday": []fiber.Map{
				{"start": "09:00", "stop": "10:00", "ids": []int{1}},
				{"start": "09:00", "stop": "10:00", "ids": []int{2}},
			},
		},
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "schedule")

	// the transaction rolled back, nothing persisted
	status, env = doJSON(t, app, http.MethodGet, "/api/schedules", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

/* =========================
   Owner isolation
   ========================= */

func TestOwnerIsolationReturnsNotFound(t *testing.T) {
	app, _ := setupApp(t)
	aliceToken, _ := registerAndLogin(t, app)
	bobToken, _ := registerAndLogin(t, app)

	detail := createSchedule(t, app, aliceToken, "Alice's week", sampleWeek)
	target := "/api/schedules/" + detail.ID.String()

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		var payload any
		if method == http.MethodPut || method == http.MethodPatch {
			payload = fiber.Map{"name": "hijacked"}
		}
		status, _ := doJSON(t, app, method, target, bobToken, payload)
		assert.Equal(t, http.StatusNotFound, status, "%s must look like a missing record", method)
	}

	// bob never sees it in a list either
	status, env := doJSON(t, app, http.MethodGet, "/api/schedules", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)

	// and alice still owns an untouched schedule
	status, env = doJSON(t, app, http.MethodGet, target, aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	var mine detailBody
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Equal(t, "Alice's week", mine.Name)
}

/* =========================
   Statistics & protected
   ========================= */

func TestStatistics(t *testing.T) {
	app, _ := setupApp(t)
	token, username := registerAndLogin(t, app)

	createSchedule(t, app, token, "One", sampleWeek)
	createSchedule(t, app, token, "Two", fiber.Map{
		"monday": []fiber.Map{{"start": "18:00", "stop": "19:00", "ids": []int{7}}},
	})

	status, env := doJSON(t, app, http.MethodGet, "/api/schedules/statistics", token, nil)
	require.Equal(t, http.StatusOK, status)

	var stats struct {
		TotalSchedules int64            `json:"total_schedules"`
		TotalTimeSlots int64            `json:"total_time_slots"`
		SchedulesByDay map[string]int64 `json:"schedules_by_day"`
		User           string           `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))

	assert.Equal(t, int64(2), stats.TotalSchedules)
	assert.Equal(t, int64(3), stats.TotalTimeSlots)
	assert.Equal(t, int64(2), stats.SchedulesByDay["monday"])
	assert.Equal(t, int64(1), stats.SchedulesByDay["tuesday"])
	assert.Equal(t, int64(0), stats.SchedulesByDay["sunday"])
	assert.Equal(t, username, stats.User)
}

func TestProtectedGreeting(t *testing.T) {
	app, _ := setupApp(t)
	token, username := registerAndLogin(t, app)
	createSchedule(t, app, token, "Only one", sampleWeek)

	status, env := doJSON(t, app, http.MethodGet, "/api/schedules/protected", token, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Message        string `json:"message"`
		User           string `json:"user"`
		SchedulesCount int64  `json:"schedules_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, username, data.User)
	assert.Equal(t, int64(1), data.SchedulesCount)
	assert.Equal(t, fmt.Sprintf("Hello %s! This is a protected endpoint.", username), data.Message)
}
