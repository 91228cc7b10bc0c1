package domain

import (
	"github.com/google/uuid"

	schedulingDomain "github.com/slotwise/slotwise/internal/scheduling/domain"
)

// MeetingStatus represents the lifecycle state of a scheduled meeting.
type MeetingStatus string

const (
	StatusConfirmed MeetingStatus = "confirmed"
	StatusTentative MeetingStatus = "tentative"
	StatusCancelled MeetingStatus = "cancelled"
)

// IsValid checks if the status is supported.
func (s MeetingStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusTentative, StatusCancelled:
		return true
	default:
		return false
	}
}

// MeetingSnapshot is a read-only view of a scheduled meeting as supplied
// by the meeting store. The scheduling core never mutates or persists it.
type MeetingSnapshot struct {
	ID          uuid.UUID
	Time        schedulingDomain.TimeRange
	Status      MeetingStatus
	AttendeeIDs []uuid.UUID
}

// CountsForConflicts reports whether the meeting participates in conflict
// detection. Cancelled meetings do not.
func (m MeetingSnapshot) CountsForConflicts() bool {
	return m.Status != StatusCancelled
}

// HasAttendee reports whether the attendee is on the meeting.
func (m MeetingSnapshot) HasAttendee(id uuid.UUID) bool {
	for _, a := range m.AttendeeIDs {
		if a == id {
			return true
		}
	}
	return false
}
