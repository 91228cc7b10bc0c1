package domain

import (
	"context"

	"github.com/google/uuid"
)

// AvailabilityProvider resolves per-attendee availability for an interval.
// This is an external directory/calendar capability; implementations live
// outside the scheduling core so tests can fake it.
type AvailabilityProvider interface {
	Resolve(ctx context.Context, attendeeIDs []uuid.UUID, interval TimeRange) ([]AvailabilityRecord, error)
}
