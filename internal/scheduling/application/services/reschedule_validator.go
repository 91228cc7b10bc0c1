package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	meetingsDomain "github.com/slotwise/slotwise/internal/meetings/domain"
	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

// RescheduleValidator checks a single proposed interval for an existing
// meeting, bypassing generation, scoring, and ranking. The meeting's own
// booking is excluded so moving it within its current slot is clean.
type RescheduleValidator struct {
	meetings meetingsDomain.Repository
	detector *ConflictDetector
}

// NewRescheduleValidator creates a reschedule validator.
func NewRescheduleValidator(meetings meetingsDomain.Repository) *RescheduleValidator {
	return &RescheduleValidator{
		meetings: meetings,
		detector: NewConflictDetector(),
	}
}

// Validate returns the conflict records for the proposed interval. An
// empty result means the move is clean.
func (v *RescheduleValidator) Validate(
	ctx context.Context,
	meetingID uuid.UUID,
	proposed domain.TimeRange,
	attendeeIDs []uuid.UUID,
) ([]domain.ConflictRecord, error) {
	if _, err := domain.NewTimeRange(proposed.Start, proposed.End); err != nil {
		return nil, err
	}

	// Widen the fetch window so adjacency classification sees neighbors.
	start := proposed.Start.Add(-domain.AdjacencyThreshold)
	end := proposed.End.Add(domain.AdjacencyThreshold)

	meetings, err := v.meetings.GetMeetingsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMeetingSnapshotFetch, err)
	}

	return v.detector.Detect(proposed, attendeeIDs, meetings, &meetingID), nil
}

// ValidateAt is a convenience for callers holding a start and duration.
func (v *RescheduleValidator) ValidateAt(
	ctx context.Context,
	meetingID uuid.UUID,
	start time.Time,
	duration time.Duration,
	attendeeIDs []uuid.UUID,
) ([]domain.ConflictRecord, error) {
	return v.Validate(ctx, meetingID, domain.TimeRange{Start: start, End: start.Add(duration)}, attendeeIDs)
}
