// Package domain holds the scheduling core's value objects and the
// provider contracts they depend on.
package domain

import (
	"errors"
	"time"
)

// ErrInvalidTimeRange is returned when a range does not start strictly
// before it ends.
var ErrInvalidTimeRange = errors.New("time range start must be before end")

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange creates a validated time range.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Duration returns the length of the interval.
func (t TimeRange) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Overlaps reports whether the intervals strictly overlap. Shared
// boundaries do not overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

// Intersect returns the overlapping portion. Only meaningful when
// Overlaps is true.
func (t TimeRange) Intersect(other TimeRange) TimeRange {
	result := t
	if other.Start.After(result.Start) {
		result.Start = other.Start
	}
	if other.End.Before(result.End) {
		result.End = other.End
	}
	return result
}

// Touches reports whether the intervals share exactly one boundary.
func (t TimeRange) Touches(other TimeRange) bool {
	return t.End.Equal(other.Start) || other.End.Equal(t.Start)
}

// GapTo returns the separation between two disjoint intervals, zero when
// they touch or overlap.
func (t TimeRange) GapTo(other TimeRange) time.Duration {
	if t.End.Before(other.Start) {
		return other.Start.Sub(t.End)
	}
	if other.End.Before(t.Start) {
		return t.Start.Sub(other.End)
	}
	return 0
}
