// file: internals/features/schedules/model/schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	userModel "scheduleku_backend/internals/features/users/user/model"
)

/* =======================================================
   ScheduleModel — maps the schedules table
   ======================================================= */

type ScheduleModel struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`

	// Owner scope: every read/update/delete is filtered by owner_id.
	OwnerID uuid.UUID           `json:"owner_id" gorm:"type:uuid;not null;index"`
	Owner   userModel.UserModel `json:"-" gorm:"foreignKey:OwnerID"`

	IsActive bool `json:"is_active" gorm:"not null;default:true"`

	TimeSlots []TimeSlotModel `json:"-" gorm:"foreignKey:ScheduleID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ScheduleModel) TableName() string {
	return "schedules"
}
