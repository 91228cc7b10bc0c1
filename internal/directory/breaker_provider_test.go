package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Resolve(_ context.Context, ids []uuid.UUID, _ domain.TimeRange) ([]domain.AvailabilityRecord, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	records := make([]domain.AvailabilityRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, domain.AvailabilityRecord{AttendeeID: id, Available: true})
	}
	return records, nil
}

func TestBreakerProvider_PassesThroughWhenHealthy(t *testing.T) {
	inner := &countingProvider{}
	p := NewBreakerProvider(inner, DefaultBreakerConfig(), nil)
	ids := []uuid.UUID{uuid.New()}

	records, err := p.Resolve(context.Background(), ids, interval(time.Now(), time.Hour))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, inner.calls)
}

func TestBreakerProvider_TripsAfterConsecutiveFailures(t *testing.T) {
	inner := &countingProvider{err: errors.New("directory unreachable")}
	config := DefaultBreakerConfig()
	config.FailureThreshold = 2
	p := NewBreakerProvider(inner, config, nil)
	ids := []uuid.UUID{uuid.New()}
	slot := interval(time.Now(), time.Hour)

	_, err := p.Resolve(context.Background(), ids, slot)
	assert.EqualError(t, err, "directory unreachable")
	_, err = p.Resolve(context.Background(), ids, slot)
	assert.EqualError(t, err, "directory unreachable")

	// Open: the inner provider is no longer called.
	_, err = p.Resolve(context.Background(), ids, slot)
	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
	assert.Equal(t, 2, inner.calls)
}
