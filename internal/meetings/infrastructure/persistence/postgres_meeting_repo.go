package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotwise/slotwise/internal/meetings/domain"
	schedulingDomain "github.com/slotwise/slotwise/internal/scheduling/domain"
)

// PostgresMeetingRepository implements domain.Repository using PostgreSQL.
type PostgresMeetingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMeetingRepository creates a new PostgreSQL meeting repository.
func NewPostgresMeetingRepository(pool *pgxpool.Pool) *PostgresMeetingRepository {
	return &PostgresMeetingRepository{pool: pool}
}

type meetingRow struct {
	ID        uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// GetMeetingsInRange returns all meetings intersecting [start, end).
func (r *PostgresMeetingRepository) GetMeetingsInRange(ctx context.Context, start, end time.Time) ([]domain.MeetingSnapshot, error) {
	query := `
		SELECT id, start_time, end_time, status
		FROM meetings
		WHERE start_time < $2 AND end_time > $1
		ORDER BY start_time, id
	`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]domain.MeetingSnapshot, 0)
	for rows.Next() {
		var row meetingRow
		if err := rows.Scan(&row.ID, &row.StartTime, &row.EndTime, &row.Status); err != nil {
			return nil, err
		}

		attendees, err := r.attendeesFor(ctx, row.ID)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, domain.MeetingSnapshot{
			ID:          row.ID,
			Time:        schedulingDomain.TimeRange{Start: row.StartTime, End: row.EndTime},
			Status:      domain.MeetingStatus(row.Status),
			AttendeeIDs: attendees,
		})
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return snapshots, nil
}

func (r *PostgresMeetingRepository) attendeesFor(ctx context.Context, meetingID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT attendee_id
		FROM meeting_attendees
		WHERE meeting_id = $1
		ORDER BY attendee_id
	`

	rows, err := r.pool.Query(ctx, query, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		attendees = append(attendees, id)
	}
	return attendees, rows.Err()
}
