// file: internals/features/schedules/service/week_service.go
package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"scheduleku_backend/internals/constants"
	d "scheduleku_backend/internals/features/schedules/dto"
	m "scheduleku_backend/internals/features/schedules/model"
	"scheduleku_backend/internals/helpers/dbtime"
)

/* =======================================================
   Flat rows ⇄ nested week mapping.
   Pure functions, no storage involved.
   ======================================================= */

// ToWeek converts flat time-slot rows into the nested day mapping. Every
// day key is always present, even with zero slots. Slots are ordered by
// day-of-week then start time.
func ToWeek(slots []m.TimeSlotModel) d.WeekMap {
	week := make(d.WeekMap, len(constants.DaysOfWeek))
	for _, day := range constants.DaysOfWeek {
		week[day] = []d.SlotEntry{}
	}

	ordered := make([]m.TimeSlotModel, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		di, dj := constants.DayIndex(ordered[i].DayOfWeek), constants.DayIndex(ordered[j].DayOfWeek)
		if di != dj {
			return di < dj
		}
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	for _, slot := range ordered {
		week[slot.DayOfWeek] = append(week[slot.DayOfWeek], d.SlotEntry{
			Start: slot.StartTime.HHMM(),
			Stop:  slot.EndTime.HHMM(),
			IDs:   slot.IDs,
		})
	}
	return week
}

// BuildSlots converts a validated nested week mapping into flat rows for
// the given schedule. Call ValidateWeek first.
func BuildSlots(scheduleID uuid.UUID, week d.WeekMap) ([]m.TimeSlotModel, error) {
	var rows []m.TimeSlotModel
	for _, day := range constants.DaysOfWeek {
		for _, entry := range week[day] {
			start, err := dbtime.Parse(entry.Start)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid start time %q", day, entry.Start)
			}
			stop, err := dbtime.Parse(entry.Stop)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid stop time %q", day, entry.Stop)
			}
			rows = append(rows, m.TimeSlotModel{
				ScheduleID: scheduleID,
				DayOfWeek:  day,
				StartTime:  start,
				EndTime:    stop,
				IDs:        datatypes.JSONSlice[int64](entry.IDs),
				IsActive:   true,
			})
		}
	}
	return rows, nil
}

// ValidateWeek checks a submitted week mapping and returns field-scoped
// errors, or nil when the payload is valid. All violations are collected
// so the caller can report them at once; any error rejects the whole
// payload and nothing is written.
func ValidateWeek(week d.WeekMap) map[string][]string {
	errs := map[string][]string{}

	for day := range week {
		if !constants.IsValidDay(day) {
			errs["schedule"] = append(errs["schedule"], fmt.Sprintf("Invalid day: %s", day))
		}
	}

	for _, day := range constants.DaysOfWeek {
		for i, entry := range week[day] {
			field := fmt.Sprintf("schedule.%s[%d]", day, i)

			start, startErr := dbtime.Parse(entry.Start)
			if startErr != nil {
				errs[field] = append(errs[field], fmt.Sprintf("Invalid start time: %q", entry.Start))
			}
			stop, stopErr := dbtime.Parse(entry.Stop)
			if stopErr != nil {
				errs[field] = append(errs[field], fmt.Sprintf("Invalid stop time: %q", entry.Stop))
			}
			if startErr == nil && stopErr == nil && !start.Before(stop) {
				errs[field] = append(errs[field], "Start time must be before end time.")
			}

			if len(entry.IDs) == 0 {
				errs[field] = append(errs[field], "IDs list cannot be empty.")
				continue
			}
			for _, id := range entry.IDs {
				if id <= 0 {
					errs[field] = append(errs[field], "All IDs must be positive integers.")
					break
				}
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
