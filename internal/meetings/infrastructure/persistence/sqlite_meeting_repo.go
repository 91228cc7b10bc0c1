package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/slotwise/slotwise/internal/meetings/domain"
	schedulingDomain "github.com/slotwise/slotwise/internal/scheduling/domain"
)

// SQLiteMeetingRepository implements domain.Repository using SQLite.
// Timestamps are stored as RFC3339 text.
type SQLiteMeetingRepository struct {
	dbConn *sql.DB
}

// NewSQLiteMeetingRepository creates a new SQLite meeting repository.
func NewSQLiteMeetingRepository(dbConn *sql.DB) *SQLiteMeetingRepository {
	return &SQLiteMeetingRepository{dbConn: dbConn}
}

// EnsureSchema creates the meeting tables if they do not exist. Local mode
// runs against a single-file database, so the binary owns its schema.
func (r *SQLiteMeetingRepository) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS meetings (
			id TEXT PRIMARY KEY,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			status TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meeting_attendees (
			meeting_id TEXT NOT NULL REFERENCES meetings(id),
			attendee_id TEXT NOT NULL,
			PRIMARY KEY (meeting_id, attendee_id)
		);
		CREATE INDEX IF NOT EXISTS idx_meetings_start ON meetings(start_time);
	`
	_, err := r.dbConn.ExecContext(ctx, schema)
	return err
}

// GetMeetingsInRange returns all meetings intersecting [start, end).
func (r *SQLiteMeetingRepository) GetMeetingsInRange(ctx context.Context, start, end time.Time) ([]domain.MeetingSnapshot, error) {
	query := `
		SELECT id, start_time, end_time, status
		FROM meetings
		WHERE start_time < ? AND end_time > ?
		ORDER BY start_time, id
	`

	rows, err := r.dbConn.QueryContext(ctx, query,
		end.UTC().Format(time.RFC3339),
		start.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]domain.MeetingSnapshot, 0)
	for rows.Next() {
		var (
			idStr     string
			startStr  string
			endStr    string
			statusStr string
		)
		if err := rows.Scan(&idStr, &startStr, &endStr, &statusStr); err != nil {
			return nil, err
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		startTime, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return nil, err
		}
		endTime, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return nil, err
		}

		attendees, err := r.attendeesFor(ctx, id)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, domain.MeetingSnapshot{
			ID:          id,
			Time:        schedulingDomain.TimeRange{Start: startTime, End: endTime},
			Status:      domain.MeetingStatus(statusStr),
			AttendeeIDs: attendees,
		})
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return snapshots, nil
}

// InsertSnapshot stores a meeting row. The scheduling core itself never
// writes; this exists for local-mode seeding and tests.
func (r *SQLiteMeetingRepository) InsertSnapshot(ctx context.Context, snapshot domain.MeetingSnapshot) error {
	_, err := r.dbConn.ExecContext(ctx,
		`INSERT INTO meetings (id, start_time, end_time, status) VALUES (?, ?, ?, ?)`,
		snapshot.ID.String(),
		snapshot.Time.Start.UTC().Format(time.RFC3339),
		snapshot.Time.End.UTC().Format(time.RFC3339),
		string(snapshot.Status),
	)
	if err != nil {
		return err
	}

	for _, attendee := range snapshot.AttendeeIDs {
		_, err := r.dbConn.ExecContext(ctx,
			`INSERT INTO meeting_attendees (meeting_id, attendee_id) VALUES (?, ?)`,
			snapshot.ID.String(), attendee.String(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteMeetingRepository) attendeesFor(ctx context.Context, meetingID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.dbConn.QueryContext(ctx,
		`SELECT attendee_id FROM meeting_attendees WHERE meeting_id = ? ORDER BY attendee_id`,
		meetingID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]uuid.UUID, 0)
	for rows.Next() {
		var idStr string
		if err := rows.Scan(&idStr); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, id)
	}
	return attendees, rows.Err()
}
