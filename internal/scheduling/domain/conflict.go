package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConflictSeverity classifies how a candidate interval relates to an
// existing booking.
type ConflictSeverity string

const (
	// SeverityOverlap indicates the intervals strictly overlap.
	SeverityOverlap ConflictSeverity = "overlap"
	// SeverityAdjacent indicates a gap of at most AdjacencyThreshold
	// between the intervals.
	SeverityAdjacent ConflictSeverity = "adjacent"
	// SeverityBackToBack indicates the intervals share a boundary.
	SeverityBackToBack ConflictSeverity = "back_to_back"
)

// AdjacencyThreshold is the largest gap still classified as adjacent.
const AdjacencyThreshold = 15 * time.Minute

// IsValid checks if the severity is a known classification.
func (s ConflictSeverity) IsValid() bool {
	switch s {
	case SeverityOverlap, SeverityAdjacent, SeverityBackToBack:
		return true
	default:
		return false
	}
}

// ConflictRecord describes a single attendee's clash between a candidate
// interval and an existing meeting.
type ConflictRecord struct {
	MeetingID  uuid.UUID
	AttendeeID uuid.UUID
	Overlap    TimeRange
	Severity   ConflictSeverity
}

// ClassifyConflict relates a candidate interval to a booked interval.
// Strict overlap wins; a shared boundary is back-to-back; a gap within
// the adjacency threshold is adjacent. The returned range is the
// overlapping portion, the touch point, or the gap respectively.
func ClassifyConflict(candidate, booked TimeRange) (ConflictSeverity, TimeRange, bool) {
	if candidate.Overlaps(booked) {
		return SeverityOverlap, candidate.Intersect(booked), true
	}
	if candidate.Touches(booked) {
		touch := candidate.Start
		if candidate.End.Equal(booked.Start) {
			touch = candidate.End
		}
		return SeverityBackToBack, TimeRange{Start: touch, End: touch}, true
	}
	if gap := candidate.GapTo(booked); gap > 0 && gap <= AdjacencyThreshold {
		if candidate.End.Before(booked.Start) {
			return SeverityAdjacent, TimeRange{Start: candidate.End, End: booked.Start}, true
		}
		return SeverityAdjacent, TimeRange{Start: booked.End, End: candidate.Start}, true
	}
	return "", TimeRange{}, false
}

// CountConflictingMeetings returns the number of distinct meetings with
// overlap-severity conflicts. Adjacent and back-to-back records are
// advisory and do not count toward conflict totals.
func CountConflictingMeetings(conflicts []ConflictRecord) int {
	seen := make(map[uuid.UUID]struct{})
	for _, c := range conflicts {
		if c.Severity == SeverityOverlap {
			seen[c.MeetingID] = struct{}{}
		}
	}
	return len(seen)
}
