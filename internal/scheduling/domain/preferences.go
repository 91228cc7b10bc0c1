package domain

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrWindowInvalidHours   = errors.New("preferred window start hour must be before end hour")
	ErrWindowOutOfRange     = errors.New("preferred window hours must be within 0-24")
	ErrWindowsOverlap       = errors.New("preferred windows must not overlap")
	ErrNegativeBuffer       = errors.New("buffer minutes cannot be negative")
	ErrNegativeMaxConflicts = errors.New("max conflicts cannot be negative")
)

// PreferredWindow is an hour-of-day range in which candidates are
// preferentially generated.
type PreferredWindow struct {
	StartHour int
	EndHour   int
}

// Contains reports whether the instant's time of day falls inside the window.
func (w PreferredWindow) Contains(t time.Time) bool {
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= w.StartHour*60 && minutes < w.EndHour*60
}

// Preferences is the scheduling-preference policy applied to a search.
type Preferences struct {
	Windows               []PreferredWindow
	BufferMinutes         int
	AllowWeekends         bool
	AllowAfterHours       bool
	MaxConflicts          int
	MinAvailableAttendees int
}

// DefaultPreferences returns the standard working-hours policy.
func DefaultPreferences() Preferences {
	return Preferences{
		Windows:               []PreferredWindow{{StartHour: 9, EndHour: 17}},
		BufferMinutes:         0,
		AllowWeekends:         false,
		AllowAfterHours:       false,
		MaxConflicts:          0,
		MinAvailableAttendees: 0,
	}
}

// Validate checks the structural invariants of the policy.
func (p Preferences) Validate() error {
	for _, w := range p.Windows {
		if w.StartHour < 0 || w.EndHour > 24 {
			return ErrWindowOutOfRange
		}
		if w.StartHour >= w.EndHour {
			return ErrWindowInvalidHours
		}
	}

	windows := make([]PreferredWindow, len(p.Windows))
	copy(windows, p.Windows)
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].StartHour < windows[j].StartHour
	})
	for i := 1; i < len(windows); i++ {
		if windows[i].StartHour < windows[i-1].EndHour {
			return ErrWindowsOverlap
		}
	}

	if p.BufferMinutes < 0 {
		return ErrNegativeBuffer
	}
	if p.MaxConflicts < 0 {
		return ErrNegativeMaxConflicts
	}
	return nil
}

// InPreferredWindow reports whether the instant falls inside any window.
func (p Preferences) InPreferredWindow(t time.Time) bool {
	for _, w := range p.Windows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}

// IsWeekend reports whether the instant falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkingHours reports whether the instant is Mon-Fri, 09:00-17:00.
func IsWorkingHours(t time.Time) bool {
	if IsWeekend(t) {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= 9*60 && minutes < 17*60
}
