// Package directory provides AvailabilityProvider implementations and
// decorators for the scheduling core.
package directory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

// StaticProvider answers availability from an in-memory busy list. It is
// the local-mode provider; a real directory/calendar backend plugs in
// behind the same interface.
type StaticProvider struct {
	mu   sync.RWMutex
	busy map[uuid.UUID][]domain.TimeRange
}

// NewStaticProvider creates a provider with everyone available.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{busy: make(map[uuid.UUID][]domain.TimeRange)}
}

// MarkBusy records a busy interval for an attendee.
func (p *StaticProvider) MarkBusy(attendeeID uuid.UUID, interval domain.TimeRange) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy[attendeeID] = append(p.busy[attendeeID], interval)
}

// Resolve reports each attendee available unless a recorded busy interval
// overlaps the requested one.
func (p *StaticProvider) Resolve(ctx context.Context, attendeeIDs []uuid.UUID, interval domain.TimeRange) ([]domain.AvailabilityRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	records := make([]domain.AvailabilityRecord, 0, len(attendeeIDs))
	for _, id := range attendeeIDs {
		record := domain.AvailabilityRecord{AttendeeID: id, Available: true}
		for _, b := range p.busy[id] {
			if interval.Overlaps(b) {
				record.Available = false
				record.Reason = "busy"
				break
			}
		}
		records = append(records, record)
	}
	return records, nil
}
