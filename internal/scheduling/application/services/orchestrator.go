package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	meetingsDomain "github.com/slotwise/slotwise/internal/meetings/domain"
	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

var (
	ErrInvalidDuration      = errors.New("duration must be positive")
	ErrNoAttendees          = errors.New("at least one attendee is required")
	ErrMinAvailableTooHigh  = errors.New("min available attendees exceeds attendee count")
	ErrNoFeasibleSlots      = errors.New("availability lookup failed for every candidate")
	ErrSearchCancelled      = errors.New("search cancelled")
	ErrSearchSuperseded     = errors.New("search superseded by a newer request")
	ErrMeetingSnapshotFetch = errors.New("failed to load existing meetings")
)

// SearchState is the lifecycle state of the orchestrator's current search.
type SearchState string

const (
	StateIdle      SearchState = "idle"
	StateSearching SearchState = "searching"
	StateCompleted SearchState = "completed"
	StateCancelled SearchState = "cancelled"
	StateFailed    SearchState = "failed"
)

// SuggestionRequest carries the inputs of one search invocation.
type SuggestionRequest struct {
	AttendeeIDs        []uuid.UUID
	DurationMinutes    int
	PreferredStartTime *time.Time // horizon start; defaults to now
	SearchRangeDays    int
	ExcludeMeetingID   *uuid.UUID // for reschedule flows
	Preferences        domain.Preferences
	MaxSuggestions     int
}

// OrchestratorConfig tunes the concurrent evaluation.
type OrchestratorConfig struct {
	// MaxConcurrent bounds the availability fan-out so a wide horizon
	// does not overwhelm the directory backend.
	MaxConcurrent int

	// LookupTimeout bounds each per-candidate availability call. A call
	// exceeding it is a per-candidate failure, not a global abort.
	LookupTimeout time.Duration
}

// DefaultOrchestratorConfig returns sensible defaults.
func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		MaxConcurrent: 8,
		LookupTimeout: 3 * time.Second,
	}
}

// Orchestrator coordinates candidate generation, concurrent evaluation,
// and ranking. A new invocation supersedes a search still in flight.
type Orchestrator struct {
	meetings     meetingsDomain.Repository
	availability domain.AvailabilityProvider
	generator    *SlotGenerator
	detector     *ConflictDetector
	config       OrchestratorConfig
	logger       *slog.Logger

	mu         sync.Mutex
	state      SearchState
	generation uint64
	cancel     context.CancelFunc
}

// NewOrchestrator creates a scheduling orchestrator.
func NewOrchestrator(
	meetings meetingsDomain.Repository,
	availability domain.AvailabilityProvider,
	config OrchestratorConfig,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = DefaultOrchestratorConfig().MaxConcurrent
	}
	if config.LookupTimeout <= 0 {
		config.LookupTimeout = DefaultOrchestratorConfig().LookupTimeout
	}
	return &Orchestrator{
		meetings:     meetings,
		availability: availability,
		generator:    NewSlotGenerator(),
		detector:     NewConflictDetector(),
		config:       config,
		logger:       logger,
		state:        StateIdle,
	}
}

// State returns the lifecycle state of the most recent search.
func (o *Orchestrator) State() SearchState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Cancel aborts the in-flight search, if any.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

// FindSuggestions runs a full search: validate, generate candidates,
// evaluate them concurrently, rank, truncate. Validation errors surface
// synchronously before any concurrent work; per-candidate availability
// failures are absorbed unless every candidate fails.
func (o *Orchestrator) FindSuggestions(ctx context.Context, req SuggestionRequest) ([]domain.Suggestion, error) {
	if err := o.validate(req); err != nil {
		o.setState(StateFailed)
		return nil, err
	}

	searchCtx, generation := o.begin(ctx)
	defer o.release(generation)

	horizonStart := time.Now()
	if req.PreferredStartTime != nil {
		horizonStart = *req.PreferredStartTime
	}
	duration := time.Duration(req.DurationMinutes) * time.Minute

	candidates := o.generator.Generate(horizonStart, req.SearchRangeDays, duration, req.Preferences)
	if len(candidates) == 0 {
		// A valid outcome: the caller is expected to widen the search.
		return o.finish(generation, nil, nil)
	}

	horizonEnd := horizonStart.AddDate(0, 0, req.SearchRangeDays+1)
	meetings, err := o.meetings.GetMeetingsInRange(searchCtx, horizonStart.Add(-domain.AdjacencyThreshold), horizonEnd)
	if err != nil {
		o.setState(StateFailed)
		return nil, fmt.Errorf("%w: %v", ErrMeetingSnapshotFetch, err)
	}

	evaluated, failures := o.evaluate(searchCtx, candidates, meetings, req)

	if searchCtx.Err() != nil {
		return o.finish(generation, nil, ErrSearchCancelled)
	}
	if failures == len(candidates) {
		return o.finish(generation, nil, ErrNoFeasibleSlots)
	}

	suggestions := RankCandidates(evaluated, len(req.AttendeeIDs), req.Preferences, req.MaxSuggestions)

	o.logger.Debug("search evaluated",
		"candidates", len(candidates),
		"dropped", failures,
		"suggestions", len(suggestions),
	)

	return o.finish(generation, suggestions, nil)
}

// evaluate fans out one bounded unit of work per candidate: synchronous
// conflict detection plus an availability lookup under the per-candidate
// timeout. Results keep candidate order so repeated searches over the same
// snapshot are deterministic.
func (o *Orchestrator) evaluate(
	ctx context.Context,
	candidates []domain.TimeRange,
	meetings []meetingsDomain.MeetingSnapshot,
	req SuggestionRequest,
) ([]domain.CandidateSlot, int) {
	results := make([]*domain.CandidateSlot, len(candidates))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.config.MaxConcurrent)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}

			conflicts := o.detector.Detect(candidate, req.AttendeeIDs, meetings, req.ExcludeMeetingID)

			lookupCtx, cancel := context.WithTimeout(groupCtx, o.config.LookupTimeout)
			defer cancel()

			availability, err := o.availability.Resolve(lookupCtx, req.AttendeeIDs, candidate)
			if err != nil {
				// Conservative skip: the candidate is dropped, siblings
				// are not interrupted.
				o.logger.Debug("availability lookup failed, dropping candidate",
					"start", candidate.Start,
					"error", err,
				)
				return nil
			}
			if !coversAllAttendees(availability, req.AttendeeIDs) {
				// No data for an attendee: drop, do not guess.
				return nil
			}

			results[i] = &domain.CandidateSlot{
				Time:         candidate,
				Conflicts:    conflicts,
				Availability: availability,
			}
			return nil
		})
	}

	_ = g.Wait()

	evaluated := make([]domain.CandidateSlot, 0, len(candidates))
	failures := 0
	for _, r := range results {
		if r == nil {
			failures++
			continue
		}
		evaluated = append(evaluated, *r)
	}
	return evaluated, failures
}

func (o *Orchestrator) validate(req SuggestionRequest) error {
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: got %d minutes", ErrInvalidDuration, req.DurationMinutes)
	}
	if len(req.AttendeeIDs) == 0 {
		return ErrNoAttendees
	}
	if req.Preferences.MinAvailableAttendees > len(req.AttendeeIDs) {
		return fmt.Errorf("%w: need %d of %d", ErrMinAvailableTooHigh,
			req.Preferences.MinAvailableAttendees, len(req.AttendeeIDs))
	}
	if err := req.Preferences.Validate(); err != nil {
		return err
	}
	return nil
}

// begin supersedes any in-flight search and claims a new generation.
func (o *Orchestrator) begin(ctx context.Context) (context.Context, uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}

	o.generation++
	searchCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.state = StateSearching
	return searchCtx, o.generation
}

// finish transitions the state machine at completion time. A stale
// generation means a newer search superseded this one; its results are
// discarded and never reach the caller.
func (o *Orchestrator) finish(generation uint64, suggestions []domain.Suggestion, searchErr error) ([]domain.Suggestion, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if generation != o.generation {
		return nil, ErrSearchSuperseded
	}
	if searchErr != nil {
		if errors.Is(searchErr, ErrSearchCancelled) {
			o.state = StateCancelled
		} else {
			// All-candidates-failed is still a completed search; the
			// caller distinguishes it by the sentinel error.
			o.state = StateCompleted
		}
		return nil, searchErr
	}

	o.state = StateCompleted
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}
	return suggestions, nil
}

// release clears the cancel func once the generation that owns it ends.
func (o *Orchestrator) release(generation uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if generation == o.generation && o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

func (o *Orchestrator) setState(state SearchState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = state
}

func coversAllAttendees(records []domain.AvailabilityRecord, attendees []uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(records))
	for _, r := range records {
		seen[r.AttendeeID] = struct{}{}
	}
	for _, a := range attendees {
		if _, ok := seen[a]; !ok {
			return false
		}
	}
	return true
}
