// file: internals/features/schedules/model/time_slot_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"scheduleku_backend/internals/helpers/dbtime"
)

/* =======================================================
   TimeSlotModel — maps the time_slots table
   ======================================================= */

// A slot lives on exactly one schedule. No two active slots on the same
// schedule may share (day, start, end).
type TimeSlotModel struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ScheduleID uuid.UUID `json:"schedule_id" gorm:"type:uuid;not null;index;uniqueIndex:uq_time_slots_slot"`

	DayOfWeek string           `json:"day_of_week" gorm:"size:10;not null;uniqueIndex:uq_time_slots_slot"`
	StartTime dbtime.TimeOfDay `json:"start" gorm:"type:time;not null;uniqueIndex:uq_time_slots_slot"`
	EndTime   dbtime.TimeOfDay `json:"stop" gorm:"type:time;not null;uniqueIndex:uq_time_slots_slot"`

	// opaque positive-integer identifiers carried by the slot, stored as JSONB
	IDs datatypes.JSONSlice[int64] `json:"ids" gorm:"type:jsonb;not null"`

	IsActive bool `json:"is_active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TimeSlotModel) TableName() string {
	return "time_slots"
}
