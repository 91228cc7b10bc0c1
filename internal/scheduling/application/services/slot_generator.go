package services

import (
	"time"

	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

const (
	// slotGranularity is the spacing between emitted candidate starts.
	slotGranularity = 30 * time.Minute

	// afterHoursStart and afterHoursEnd bound the fixed evening band
	// emitted when the policy allows after-hours candidates.
	afterHoursStartHour = 18
	afterHoursEndHour   = 20
)

// SlotGenerator produces candidate meeting intervals from a horizon and a
// preference policy.
type SlotGenerator struct{}

// NewSlotGenerator creates a slot generator.
func NewSlotGenerator() *SlotGenerator {
	return &SlotGenerator{}
}

// Generate returns candidate intervals of the requested duration across
// [horizonStart, horizonStart + horizonDays], chronological within each
// day, preferred windows in configured order, after-hours band last.
// Candidates starting before horizonStart are not emitted.
func (g *SlotGenerator) Generate(
	horizonStart time.Time,
	horizonDays int,
	duration time.Duration,
	prefs domain.Preferences,
) []domain.TimeRange {
	candidates := make([]domain.TimeRange, 0)

	for dayOffset := 0; dayOffset <= horizonDays; dayOffset++ {
		day := horizonStart.AddDate(0, 0, dayOffset)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

		if domain.IsWeekend(dayStart) && !prefs.AllowWeekends {
			continue
		}

		for _, window := range prefs.Windows {
			candidates = append(candidates, g.emitWindow(dayStart, window, duration, prefs.BufferMinutes, horizonStart)...)
		}

		if prefs.AllowAfterHours {
			band := domain.PreferredWindow{StartHour: afterHoursStartHour, EndHour: afterHoursEndHour}
			candidates = append(candidates, g.emitWindow(dayStart, band, duration, prefs.BufferMinutes, horizonStart)...)
		}
	}

	return candidates
}

// emitWindow walks one window of one day at the fixed granularity. Each
// raw start must fit the duration inside the window; the emitted start is
// then shifted earlier by the buffer to reserve transition time. A shifted
// start never crosses backward over the day boundary.
func (g *SlotGenerator) emitWindow(
	dayStart time.Time,
	window domain.PreferredWindow,
	duration time.Duration,
	bufferMinutes int,
	horizonStart time.Time,
) []domain.TimeRange {
	windowStart := dayStart.Add(time.Duration(window.StartHour) * time.Hour)
	windowEnd := dayStart.Add(time.Duration(window.EndHour) * time.Hour)
	buffer := time.Duration(bufferMinutes) * time.Minute

	slots := make([]domain.TimeRange, 0)
	for raw := windowStart; !raw.Add(duration).After(windowEnd); raw = raw.Add(slotGranularity) {
		start := raw.Add(-buffer)
		if start.Before(dayStart) {
			continue
		}
		if start.Before(horizonStart) {
			continue
		}
		slots = append(slots, domain.TimeRange{Start: start, End: start.Add(duration)})
	}
	return slots
}
