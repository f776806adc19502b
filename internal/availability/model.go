// Package availability computes bookable appointment slots for a provider
// from a weekly recurring template and the day's existing bookings. All
// calendar math is pinned to UTC so the weekday of a date never depends on
// the host timezone.
package availability

import "time"

// WeeklyAvailability is one provider's recurring working window for a single
// weekday. At most one row exists per (ProviderID, DayOfWeek) pair.
type WeeklyAvailability struct {
	ProviderID  string    `json:"providerId"`
	DayOfWeek   int       `json:"dayOfWeek"` // Monday=0 .. Sunday=6
	StartTime   string    `json:"startTime"` // "HH:MM", UTC wall clock
	EndTime     string    `json:"endTime"`   // "HH:MM", UTC wall clock
	IsAvailable bool      `json:"isAvailable"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// DayAppointment is the subset of an appointment the slot generator and the
// slots endpoint need: when it occupies the calendar and whose it is.
type DayAppointment struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId"`
	Time      string `json:"time"` // "HH:MM"
	Status    string `json:"status"`
}

// SlotsResult is the computed answer for one provider/date query.
type SlotsResult struct {
	Slots        []time.Time      `json:"-"`
	Appointments []DayAppointment `json:"appointments"`
}
