// file: internals/features/schedules/repository/schedule_repository.go
package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "scheduleku_backend/internals/features/schedules/model"
)

/* =======================================================
   Dual views over the same table: the default ("active")
   view filters is_active=true while the all-records view
   bypasses the filter. Nothing is physically deleted on
   the default path.
   ======================================================= */

func scopeActive(db *gorm.DB) *gorm.DB {
	return db.Where("schedules.is_active = ?", true)
}

func preloadSlots(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("TimeSlots", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_active = ?", true).Order("start_time ASC")
		})
}

/* ====================== READ ====================== */

// ListActive returns the owner's active schedules, newest first.
func ListActive(db *gorm.DB, ownerID uuid.UUID, offset, limit int) ([]m.ScheduleModel, int64, error) {
	base := scopeActive(db.Model(&m.ScheduleModel{})).Where("owner_id = ?", ownerID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []m.ScheduleModel
	if err := preloadSlots(base.Session(&gorm.Session{})).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListAll returns every schedule row for the owner, active or not, with
// every slot row regardless of its own flag. Admin tooling only; the
// default path never uses it.
func ListAll(db *gorm.DB, ownerID uuid.UUID) ([]m.ScheduleModel, error) {
	var rows []m.ScheduleModel
	if err := db.Model(&m.ScheduleModel{}).
		Preload("Owner").
		Preload("TimeSlots", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("start_time ASC")
		}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindActiveByIDAndOwner fetches one active schedule scoped to its owner.
// A schedule owned by someone else behaves exactly like a missing id.
func FindActiveByIDAndOwner(db *gorm.DB, id, ownerID uuid.UUID) (*m.ScheduleModel, error) {
	var row m.ScheduleModel
	if err := preloadSlots(scopeActive(db)).
		Where("schedules.id = ? AND owner_id = ?", id, ownerID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

/* ====================== WRITE ====================== */

// CreateWithSlots inserts a schedule plus its slot rows in one transaction.
func CreateWithSlots(db *gorm.DB, schedule *m.ScheduleModel, slots []m.TimeSlotModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(schedule).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].ScheduleID = schedule.ID
		}
		if len(slots) > 0 {
			if err := tx.CreateInBatches(slots, 100).Error; err != nil {
				return err
			}
		}
		schedule.TimeSlots = slots
		return nil
	})
}

// UpdateWithSlots applies scalar field changes and, when newSlots is
// non-nil, replaces the schedule's entire slot set wholesale. A failure
// anywhere rolls back so the prior slot set stays intact.
func UpdateWithSlots(db *gorm.DB, schedule *m.ScheduleModel, newSlots []m.TimeSlotModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(schedule).
			Select("name", "description", "updated_at").
			Updates(map[string]any{
				"name":        schedule.Name,
				"description": schedule.Description,
				"updated_at":  time.Now().UTC(),
			}).Error; err != nil {
			return err
		}
		if newSlots == nil {
			return nil
		}
		if err := tx.Where("schedule_id = ?", schedule.ID).
			Delete(&m.TimeSlotModel{}).Error; err != nil {
			return err
		}
		if len(newSlots) > 0 {
			if err := tx.CreateInBatches(newSlots, 100).Error; err != nil {
				return err
			}
		}
		schedule.TimeSlots = newSlots
		return nil
	})
}

// SoftDelete flips the active flag; the row persists for the all-records view.
func SoftDelete(db *gorm.DB, id, ownerID uuid.UUID) (int64, error) {
	res := db.Model(&m.ScheduleModel{}).
		Where("id = ? AND owner_id = ? AND is_active = ?", id, ownerID, true).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

/* ====================== STATISTICS ====================== */

// CountActiveSchedules counts the owner's active schedules.
func CountActiveSchedules(db *gorm.DB, ownerID uuid.UUID) (int64, error) {
	var n int64
	err := scopeActive(db.Model(&m.ScheduleModel{})).
		Where("owner_id = ?", ownerID).
		Count(&n).Error
	return n, err
}

// CountActiveSlots counts active slots across the owner's active schedules,
// optionally restricted to one day of the week.
func CountActiveSlots(db *gorm.DB, ownerID uuid.UUID, day string) (int64, error) {
	q := db.Model(&m.TimeSlotModel{}).
		Joins("JOIN schedules ON schedules.id = time_slots.schedule_id").
		Where("schedules.owner_id = ? AND schedules.is_active = ? AND time_slots.is_active = ?",
			ownerID, true, true)
	if day != "" {
		q = q.Where("time_slots.day_of_week = ?", day)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
