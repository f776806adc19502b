package availability

import "time"

// DefaultSlotDuration is the clinic-wide appointment granularity. The
// generator takes the duration as a parameter so policy changes and tests
// don't touch the loop.
const DefaultSlotDuration = 30 * time.Minute

// GenerateSlots enumerates the free instants for one provider on one date.
//
// A nil template or IsAvailable=false means the provider does not work that
// day; the result is empty and that is not an error. Otherwise instants are
// emitted from StartTime every slotDuration, strictly before EndTime (a
// trailing partial slot is dropped), skipping any instant an existing
// appointment occupies. Occupancy is exact-instant equality: appointments
// are slot-aligned and consume exactly one slot. The output is ordered and
// the function is pure, so identical inputs always produce identical output.
func GenerateSlots(date time.Time, tmpl *WeeklyAvailability, booked []DayAppointment, slotDuration time.Duration) ([]time.Time, error) {
	if tmpl == nil || !tmpl.IsAvailable {
		return []time.Time{}, nil
	}
	if slotDuration <= 0 {
		slotDuration = DefaultSlotDuration
	}

	start, err := parseClock(date, tmpl.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(date, tmpl.EndTime)
	if err != nil {
		return nil, err
	}

	occupied := make(map[time.Time]struct{}, len(booked))
	for _, appt := range booked {
		at, err := parseClock(date, appt.Time)
		if err != nil {
			// A malformed stored time cannot collide with any generated
			// slot, so it never blocks one either.
			continue
		}
		occupied[at] = struct{}{}
	}

	slots := []time.Time{}
	for at := start; at.Before(end); at = at.Add(slotDuration) {
		if _, taken := occupied[at]; taken {
			continue
		}
		slots = append(slots, at)
	}
	return slots, nil
}
