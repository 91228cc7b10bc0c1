package domain

import (
	"context"
	"time"
)

// Repository defines the read surface the scheduling search consumes.
type Repository interface {
	// GetMeetingsInRange returns all meetings intersecting [start, end),
	// including cancelled ones; conflict detection filters by status.
	GetMeetingsInRange(ctx context.Context, start, end time.Time) ([]MeetingSnapshot, error)
}
