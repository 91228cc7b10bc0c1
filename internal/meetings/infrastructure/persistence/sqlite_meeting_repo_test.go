package persistence

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/slotwise/slotwise/internal/meetings/domain"
	schedulingDomain "github.com/slotwise/slotwise/internal/scheduling/domain"
)

func setupSQLiteRepo(t *testing.T) *SQLiteMeetingRepository {
	t.Helper()

	// A named shared-cache in-memory database keeps every pooled
	// connection pointed at the same schema; a bare ":memory:" gives each
	// new connection its own empty database.
	dbConn, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { dbConn.Close() })

	repo := NewSQLiteMeetingRepository(dbConn)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestSQLiteMeetingRepository_RoundTrip(t *testing.T) {
	repo := setupSQLiteRepo(t)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	snapshot := domain.MeetingSnapshot{
		ID:          uuid.New(),
		Time:        schedulingDomain.TimeRange{Start: start, End: start.Add(time.Hour)},
		Status:      domain.StatusConfirmed,
		AttendeeIDs: []uuid.UUID{alice, bob},
	}
	require.NoError(t, repo.InsertSnapshot(ctx, snapshot))

	got, err := repo.GetMeetingsInRange(ctx, start.Add(-time.Hour), start.Add(2*time.Hour))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, snapshot.ID, got[0].ID)
	assert.Equal(t, snapshot.Time, got[0].Time)
	assert.Equal(t, domain.StatusConfirmed, got[0].Status)

	wantAttendees := []string{alice.String(), bob.String()}
	sort.Strings(wantAttendees)
	gotAttendees := make([]string, len(got[0].AttendeeIDs))
	for i, id := range got[0].AttendeeIDs {
		gotAttendees[i] = id.String()
	}
	assert.Equal(t, wantAttendees, gotAttendees)
}

func TestSQLiteMeetingRepository_RangeSemantics(t *testing.T) {
	repo := setupSQLiteRepo(t)
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	insert := func(start time.Time, d time.Duration) uuid.UUID {
		id := uuid.New()
		require.NoError(t, repo.InsertSnapshot(ctx, domain.MeetingSnapshot{
			ID:     id,
			Time:   schedulingDomain.TimeRange{Start: start, End: start.Add(d)},
			Status: domain.StatusConfirmed,
		}))
		return id
	}

	// One meeting ends exactly at the range start and one starts exactly
	// at the range end; half-open semantics exclude both.
	before := insert(day.Add(8*time.Hour), time.Hour)
	inside := insert(day.Add(10*time.Hour), time.Hour)
	straddle := insert(day.Add(11*time.Hour), 2*time.Hour)
	_ = insert(day.Add(14*time.Hour), time.Hour)

	got, err := repo.GetMeetingsInRange(ctx, day.Add(9*time.Hour), day.Add(12*time.Hour))

	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered by start time.
	assert.Equal(t, inside, got[0].ID)
	assert.Equal(t, straddle, got[1].ID)
	for _, m := range got {
		assert.NotEqual(t, before, m.ID)
	}
}

func TestSQLiteMeetingRepository_EmptyRange(t *testing.T) {
	repo := setupSQLiteRepo(t)

	got, err := repo.GetMeetingsInRange(context.Background(),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
