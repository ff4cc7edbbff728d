package constants

// Days of the week recognized in schedule payloads, in canonical order.
var DaysOfWeek = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

var dayIndex = func() map[string]int {
	m := make(map[string]int, len(DaysOfWeek))
	for i, d := range DaysOfWeek {
		m[d] = i
	}
	return m
}()

// IsValidDay reports whether day is one of the seven recognized keys.
func IsValidDay(day string) bool {
	_, ok := dayIndex[day]
	return ok
}

// DayIndex returns the canonical position of day (monday=0 .. sunday=6),
// or -1 for an unknown key.
func DayIndex(day string) int {
	if i, ok := dayIndex[day]; ok {
		return i
	}
	return -1
}
