package schedules

import (
	"math"
	"time"
)

const (
	DefaultDurationHours = 1
	MinDurationHours     = 1
	MaxDurationHours     = 24
)

// NextQuarterHour returns the first instant at or after now whose minute is a
// multiple of 15, with seconds dropped. Minute overflow carries into the hour.
func NextQuarterHour(now time.Time) time.Time {
	t := now.Truncate(time.Minute)
	if rem := t.Minute() % 15; rem != 0 {
		t = t.Add(time.Duration(15-rem) * time.Minute)
	}
	return t
}

// ProposedDurationHours derives the form's duration field from an existing
// interval: whole hours, rounded, never below one.
func ProposedDurationHours(iv Interval) int {
	hours := int(math.Round(iv.Duration().Hours()))
	if hours < MinDurationHours {
		return MinDurationHours
	}
	return hours
}

// FormDefaults pre-fills the schedule form in the SPA.
type FormDefaults struct {
	PetID         string
	StartsAt      time.Time
	DurationHours int
}

// NewFormDefaults proposes a starting slot for a brand new schedule.
func NewFormDefaults(now time.Time) FormDefaults {
	return FormDefaults{
		StartsAt:      NextQuarterHour(now),
		DurationHours: DefaultDurationHours,
	}
}

// EditFormDefaults proposes form values for editing an existing schedule: the
// stored start verbatim, the stored span rounded to whole hours.
func EditFormDefaults(s Schedule) FormDefaults {
	return FormDefaults{
		PetID:         s.PetID,
		StartsAt:      s.StartsAt,
		DurationHours: ProposedDurationHours(s.Interval()),
	}
}
