package services

import (
	"github.com/google/uuid"

	meetingsDomain "github.com/slotwise/slotwise/internal/meetings/domain"
	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

// ConflictDetector checks a candidate interval against existing meetings.
// It is pure and synchronous; reschedule validation calls it directly with
// a single fixed candidate.
type ConflictDetector struct{}

// NewConflictDetector creates a conflict detector.
func NewConflictDetector() *ConflictDetector {
	return &ConflictDetector{}
}

// Detect returns one record per (meeting, shared attendee) pair whose
// interval overlaps, touches, or sits within the adjacency threshold of
// the candidate. Cancelled meetings and the excluded meeting are skipped.
// Output order is deterministic: input meeting order, then attendee order.
func (d *ConflictDetector) Detect(
	candidate domain.TimeRange,
	attendeeIDs []uuid.UUID,
	meetings []meetingsDomain.MeetingSnapshot,
	excludeMeetingID *uuid.UUID,
) []domain.ConflictRecord {
	records := make([]domain.ConflictRecord, 0)

	for _, meeting := range meetings {
		if excludeMeetingID != nil && meeting.ID == *excludeMeetingID {
			continue
		}
		if !meeting.CountsForConflicts() {
			continue
		}

		severity, overlap, related := domain.ClassifyConflict(candidate, meeting.Time)
		if !related {
			continue
		}

		for _, attendee := range attendeeIDs {
			if !meeting.HasAttendee(attendee) {
				continue
			}
			records = append(records, domain.ConflictRecord{
				MeetingID:  meeting.ID,
				AttendeeID: attendee,
				Overlap:    overlap,
				Severity:   severity,
			})
		}
	}

	return records
}
