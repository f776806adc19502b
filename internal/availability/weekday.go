package availability

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as midnight UTC. Parsing in the host
// timezone would shift the weekday near midnight, which is exactly the bug
// class this package exists to avoid.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// DayOfWeek maps a date to the Monday-first weekday index used by
// WeeklyAvailability rows: Monday=0 .. Sunday=6. Go's time.Weekday counts
// Sunday=0, so Sunday remaps to 6 and every other day shifts down by one.
func DayOfWeek(t time.Time) int {
	wd := int(t.UTC().Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// parseClock turns an "HH:MM" wall-clock string into an absolute UTC instant
// on the given date.
func parseClock(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC), nil
}
