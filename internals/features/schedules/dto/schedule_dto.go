// file: internals/features/schedules/dto/schedule_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "scheduleku_backend/internals/features/schedules/model"
)

/* =======================================================
   Week payload types
   ======================================================= */

// SlotEntry is one time slot inside a day list: {"start","stop","ids"}.
// Times are zero-padded 24-hour "HH:MM" strings.
type SlotEntry struct {
	Start string  `json:"start"`
	Stop  string  `json:"stop"`
	IDs   []int64 `json:"ids"`
}

// WeekMap is the nested representation: day-of-week key → ordered slot list.
// A serialized WeekMap always carries all seven day keys.
type WeekMap map[string][]SlotEntry

/* =======================================================
   Requests
   ======================================================= */

type CreateScheduleRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	Schedule    WeekMap `json:"schedule" validate:"required"`
}

// UpdateScheduleRequest serves both PUT and PATCH: only non-nil fields are
// applied, and slots are replaced only when a schedule block is present.
type UpdateScheduleRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Schedule    WeekMap `json:"schedule,omitempty"`
}

/* =======================================================
   Responses
   ======================================================= */

type ScheduleListResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Owner          string    `json:"owner"`
	TimeSlotsCount int       `json:"time_slots_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ScheduleDetailResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Schedule    WeekMap   `json:"schedule"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type StatisticsResponse struct {
	TotalSchedules int64            `json:"total_schedules"`
	TotalTimeSlots int64            `json:"total_time_slots"`
	SchedulesByDay map[string]int64 `json:"schedules_by_day"`
	User           string           `json:"user"`
}

func NewScheduleListResponse(s *m.ScheduleModel) ScheduleListResponse {
	return ScheduleListResponse{
		ID:             s.ID,
		Name:           s.Name,
		Description:    s.Description,
		Owner:          s.Owner.UserName,
		TimeSlotsCount: len(s.TimeSlots),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
