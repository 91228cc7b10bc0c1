package directory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

// ErrDirectoryUnavailable is returned while the circuit is open. Callers
// treat it like any other per-candidate lookup failure.
var ErrDirectoryUnavailable = errors.New("directory temporarily unavailable")

// BreakerConfig configures the availability circuit breaker.
type BreakerConfig struct {
	// MaxRequests is the number of probe requests allowed half-open.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state.
	Interval time.Duration

	// Timeout is the period of the open state.
	Timeout time.Duration

	// FailureThreshold trips the breaker after this many consecutive
	// failures.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns a sensible default configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      3,
		Interval:         10 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerProvider wraps an AvailabilityProvider in a circuit breaker so a
// flapping directory backend trips open instead of eating the lookup
// timeout on every candidate of a wide fan-out.
type BreakerProvider struct {
	inner   domain.AvailabilityProvider
	breaker *gobreaker.CircuitBreaker[[]domain.AvailabilityRecord]
}

// NewBreakerProvider creates a breaker-wrapped provider.
func NewBreakerProvider(inner domain.AvailabilityProvider, config BreakerConfig, logger *slog.Logger) *BreakerProvider {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "availability",
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerProvider{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[[]domain.AvailabilityRecord](settings),
	}
}

// Resolve delegates to the wrapped provider under breaker protection.
func (p *BreakerProvider) Resolve(ctx context.Context, attendeeIDs []uuid.UUID, interval domain.TimeRange) ([]domain.AvailabilityRecord, error) {
	records, err := p.breaker.Execute(func() ([]domain.AvailabilityRecord, error) {
		return p.inner.Resolve(ctx, attendeeIDs, interval)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrDirectoryUnavailable
		}
		return nil, err
	}
	return records, nil
}
