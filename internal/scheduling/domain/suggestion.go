package domain

import "github.com/google/uuid"

// AvailabilityRecord is one attendee's availability for an interval.
type AvailabilityRecord struct {
	AttendeeID uuid.UUID
	Available  bool
	Reason     string
}

// CandidateSlot is a generated interval together with its evaluation.
// Candidates are per-search scratch values, discarded when they fail a
// hard filter.
type CandidateSlot struct {
	Time         TimeRange
	Conflicts    []ConflictRecord
	Availability []AvailabilityRecord
}

// ConflictCount returns the number of distinct overlap-conflicting meetings.
func (c CandidateSlot) ConflictCount() int {
	return CountConflictingMeetings(c.Conflicts)
}

// AvailableCount returns the number of attendees reporting available.
func (c CandidateSlot) AvailableCount() int {
	n := 0
	for _, a := range c.Availability {
		if a.Available {
			n++
		}
	}
	return n
}

// Suggestion is a ranked, externally visible search result. Immutable
// once produced.
type Suggestion struct {
	Time               TimeRange
	Score              int
	ConflictCount      int
	AvailableAttendees int
	TotalAttendees     int
	Reason             string
	WithinWorkingHours bool
}
