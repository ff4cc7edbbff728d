// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay maps a Postgres TIME column and renders as "HH:MM" in JSON.
type TimeOfDay struct{ time.Time }

// From builds a TimeOfDay from a time.Time (keeps HH:mm:ss, drops date & zone).
func From(t time.Time) TimeOfDay {
	return TimeOfDay{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// Parse builds a TimeOfDay from "HH:mm[:ss]".
func Parse(s string) (TimeOfDay, error) {
	var tt TimeOfDay
	return tt, tt.parse(s)
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Time.Before(other.Time)
}

// HHMM formats as zero-padded 24-hour "HH:MM".
func (t TimeOfDay) HHMM() string {
	return t.Format("15:04")
}

// Scan accepts time.Time or string ("HH:MM[:SS]").
func (t *TimeOfDay) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = From(x)
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("dbtime: unsupported Scan type %T", v)
	}
}

func (t *TimeOfDay) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return err
	}
	t.Time = tt
	return nil
}

// Value sends "HH:MM:SS" so Postgres TIME understands it.
func (t TimeOfDay) Value() (driver.Value, error) {
	if t.Time.IsZero() {
		return "00:00:00", nil
	}
	return t.Format("15:04:05"), nil
}

// GormDataType tells GORM the column type for migrations.
func (TimeOfDay) GormDataType() string {
	return "time"
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.HHMM())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
