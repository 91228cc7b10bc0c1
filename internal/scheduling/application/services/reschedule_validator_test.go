package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	meetingsDomain "github.com/slotwise/slotwise/internal/meetings/domain"
	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

func TestRescheduleValidate_ExcludesOwnBooking(t *testing.T) {
	alice := uuid.New()
	ownID := uuid.New()
	current := monday.Add(10 * time.Hour)
	repo := &mockMeetingRepo{meetings: []meetingsDomain.MeetingSnapshot{
		{
			ID:          ownID,
			Time:        domain.TimeRange{Start: current, End: current.Add(time.Hour)},
			Status:      meetingsDomain.StatusConfirmed,
			AttendeeIDs: []uuid.UUID{alice},
		},
	}}
	v := NewRescheduleValidator(repo)

	// Shifting the meeting within its own slot must be clean.
	conflicts, err := v.ValidateAt(context.Background(), ownID, current.Add(15*time.Minute), time.Hour, []uuid.UUID{alice})

	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestRescheduleValidate_ReportsOtherMeetings(t *testing.T) {
	alice := uuid.New()
	ownID := uuid.New()
	otherID := uuid.New()
	current := monday.Add(10 * time.Hour)
	repo := &mockMeetingRepo{meetings: []meetingsDomain.MeetingSnapshot{
		{
			ID:          ownID,
			Time:        domain.TimeRange{Start: current, End: current.Add(30 * time.Minute)},
			Status:      meetingsDomain.StatusConfirmed,
			AttendeeIDs: []uuid.UUID{alice},
		},
		{
			ID:          otherID,
			Time:        domain.TimeRange{Start: current.Add(time.Hour), End: current.Add(90 * time.Minute)},
			Status:      meetingsDomain.StatusConfirmed,
			AttendeeIDs: []uuid.UUID{alice},
		},
	}}
	v := NewRescheduleValidator(repo)

	conflicts, err := v.ValidateAt(context.Background(), ownID, current.Add(time.Hour), 30*time.Minute, []uuid.UUID{alice})

	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, otherID, conflicts[0].MeetingID)
	assert.Equal(t, domain.SeverityOverlap, conflicts[0].Severity)
}

func TestRescheduleValidate_InvalidRange(t *testing.T) {
	v := NewRescheduleValidator(&mockMeetingRepo{})

	_, err := v.Validate(context.Background(), uuid.New(),
		domain.TimeRange{Start: monday.Add(time.Hour), End: monday}, []uuid.UUID{uuid.New()})

	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestRescheduleValidate_RepoFailure(t *testing.T) {
	repo := &mockMeetingRepo{err: errors.New("connection refused")}
	v := NewRescheduleValidator(repo)

	_, err := v.ValidateAt(context.Background(), uuid.New(), monday.Add(10*time.Hour), time.Hour, []uuid.UUID{uuid.New()})

	assert.ErrorIs(t, err, ErrMeetingSnapshotFetch)
}
