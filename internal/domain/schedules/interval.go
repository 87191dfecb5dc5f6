package schedules

import "time"

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval rejects empty and negative spans so overlap checks never see a
// degenerate interval.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether the two half-open intervals share any instant.
// Touching endpoints do not count, so back-to-back bookings are allowed.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

func (s Schedule) Interval() Interval {
	return Interval{Start: s.StartsAt, End: s.EndsAt}
}

// HasConflict reports whether candidate overlaps any existing schedule for
// petID. excludeID skips the record being edited so an in-place update does
// not conflict with itself. Schedules of other pets never conflict.
func HasConflict(petID string, candidate Interval, existing []Schedule, excludeID string) bool {
	for _, item := range existing {
		if item.PetID != petID {
			continue
		}
		if excludeID != "" && item.ID == excludeID {
			continue
		}
		if candidate.Overlaps(item.Interval()) {
			return true
		}
	}
	return false
}
