// file: internals/features/schedules/controller/schedule_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"scheduleku_backend/internals/constants"
	d "scheduleku_backend/internals/features/schedules/dto"
	m "scheduleku_backend/internals/features/schedules/model"
	repo "scheduleku_backend/internals/features/schedules/repository"
	"scheduleku_backend/internals/features/schedules/service"
	helpers "scheduleku_backend/internals/helpers"
)

/* =========================
   Controller & Constructor
   ========================= */

type ScheduleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db, Validate: validator.New()}
}

func (ctl *ScheduleController) ownerID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return uuid.Nil, errors.New("unauthorized")
	}
	return uuid.Parse(userIDStr)
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params("id")))
}

func structFieldErrors(err error) map[string][]string {
	out := make(map[string][]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["non_field_errors"] = []string{"Invalid payload."}
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "This field is required."
		case "max":
			msg = fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		default:
			msg = "This field is invalid."
		}
		out[field] = append(out[field], msg)
	}
	return out
}

func (ctl *ScheduleController) detailResponse(s *m.ScheduleModel) d.ScheduleDetailResponse {
	return d.ScheduleDetailResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Owner:       s.Owner.UserName,
		Schedule:    service.ToWeek(s.TimeSlots),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

/* =========================
   List
   ========================= */

// GET /api/schedules
func (ctl *ScheduleController) List(c *fiber.Ctx) error {
	owner, err := ctl.ownerID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helpers.ResolvePaging(c, 20, 100)
	rows, total, err := repo.ListActive(ctl.DB, owner, paging.Offset, paging.Limit)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to list schedules")
	}

	out := make([]d.ScheduleListResponse, 0, len(rows))
	for i := range rows {
		out = append(out, d.NewScheduleListResponse(&rows[i]))
	}
	pagination := helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helpers.JsonList(c, "ok", out, pagination)
}

/* =========================
   Create
   ========================= */

// POST /api/schedules
func (ctl *ScheduleController) Create(c *fiber.Ctx) error {
	owner, err := ctl.ownerID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req d.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, structFieldErrors(err))
	}
	if fieldErrs := service.ValidateWeek(req.Schedule); fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}

	schedule := m.ScheduleModel{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     owner,
		IsActive:    true,
	}
	slots, err := service.BuildSlots(schedule.ID, req.Schedule)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := repo.CreateWithSlots(ctl.DB, &schedule, slots); err != nil {
		if helpers.IsUniqueViolation(err) {
			return helpers.JsonValidationError(c, map[string][]string{
				"schedule": {"Duplicate time slot (same day, start and end)."},
			})
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create schedule")
	}

	// reload for the owner username
	full, err := repo.FindActiveByIDAndOwner(ctl.DB, schedule.ID, owner)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load schedule")
	}
	return helpers.JsonCreated(c, "Schedule created", ctl.detailResponse(full))
}

/* =========================
   Detail
   ========================= */

// GET /api/schedules/:id
func (ctl *ScheduleController) GetByID(c *fiber.Ctx) error {
	owner, err := ctl.ownerID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Schedule not found")
	}

	row, err := repo.FindActiveByIDAndOwner(ctl.DB, id, owner)
	if err != nil {
		// someone else's schedule looks exactly like a missing one
		return helpers.JsonError(c, fiber.StatusNotFound, "Schedule not found")
	}
	return helpers.JsonOK(c, "ok", ctl.detailResponse(row))
}

/* =========================
   Update (PUT & PATCH)
   ========================= */

// PUT/PATCH /api/schedules/:id
func (ctl *ScheduleController) Update(c *fiber.Ctx) error {
	owner, err := ctl.ownerID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Schedule not found")
	}

	row, err := repo.FindActiveByIDAndOwner(ctl.DB, id, owner)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Schedule not found")
	}

	var req d.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, structFieldErrors(err))
	}

	// validate and build the replacement set before touching anything
	var newSlots []m.TimeSlotModel
	if req.Schedule != nil {
		if fieldErrs := service.ValidateWeek(req.Schedule); fieldErrs != nil {
			return helpers.JsonValidationError(c, fieldErrs)
		}
		newSlots, err = service.BuildSlots(row.ID, req.Schedule)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		if newSlots == nil {
			newSlots = []m.TimeSlotModel{}
		}
	}

	if req.Name != nil {
		row.Name = *req.Name
	}
	if req.Description != nil {
		row.Description = *req.Description
	}

	if err := repo.UpdateWithSlots(ctl.DB, row, newSlots); err != nil {
		if helpers.IsUniqueViolation(err) {
			return helpers.JsonValidationError(c, map[string][]string{
				"schedule": {"Duplicate time slot (same day, start and end)."},
			})
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update schedule")
	}

	full, err := repo.FindActiveByIDAndOwner(ctl.DB, row.ID, owner)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load schedule")
	}
	return helpers.JsonUpdated(c, "Schedule updated", ctl.detailResponse(full))
}

/* =========================
   Delete (soft)
   ========================= */

// DELETE /api/schedules/:id
func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
	owner, err := ctl.ownerID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Schedule not found")
	}

	affected, err := repo.SoftDelete(ctl.DB, id, owner)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete schedule")
	}
	if affected == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "Schedule not found")
	}
	return helpers.JsonDeleted(c)
}

/* =========================
   Statistics & protected
   ========================= */

// GET /api/schedules/statistics
func (ctl *ScheduleController) Statistics(c *fiber.Ctx) error {
	owner, err := ctl.ownerID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	totalSchedules, err := repo.CountActiveSchedules(ctl.DB, owner)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to compute statistics")
	}
	totalSlots, err := repo.CountActiveSlots(ctl.DB, owner, "")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to compute statistics")
	}

	byDay := make(map[string]int64, len(constants.DaysOfWeek))
	for _, day := range constants.DaysOfWeek {
		n, err := repo.CountActiveSlots(ctl.DB, owner, day)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to compute statistics")
		}
		byDay[day] = n
	}

	return helpers.JsonOK(c, "ok", d.StatisticsResponse{
		TotalSchedules: totalSchedules,
		TotalTimeSlots: totalSlots,
		SchedulesByDay: byDay,
		User:           ctl.currentUsername(c),
	})
}

// GET /api/schedules/protected
func (ctl *ScheduleController) Protected(c *fiber.Ctx) error {
	owner, err := ctl.ownerID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	count, err := repo.CountActiveSchedules(ctl.DB, owner)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to count schedules")
	}
	username := ctl.currentUsername(c)
	return helpers.JsonOK(c, "ok", fiber.Map{
		"message":         fmt.Sprintf("Hello %s! This is a protected endpoint.", username),
		"user":            username,
		"schedules_count": count,
	})
}

// currentUsername reads the username the auth middleware lifted off the
// access-token claims; no extra query.
func (ctl *ScheduleController) currentUsername(c *fiber.Ctx) string {
	if v, ok := c.Locals("username").(string); ok {
		return v
	}
	return ""
}
