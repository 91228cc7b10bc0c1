package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClassifyConflict_StrictOverlap(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	candidate := TimeRange{Start: base, End: base.Add(30 * time.Minute)}
	booked := TimeRange{Start: base.Add(15 * time.Minute), End: base.Add(45 * time.Minute)}

	severity, overlap, related := ClassifyConflict(candidate, booked)

	assert.True(t, related)
	assert.Equal(t, SeverityOverlap, severity)
	assert.Equal(t, base.Add(15*time.Minute), overlap.Start)
	assert.Equal(t, base.Add(30*time.Minute), overlap.End)
}

// Boundary-touching intervals never satisfy the strict overlap test, so
// back-to-back is classified from the non-overlapping side. This pins the
// zero-width overlap interval at the shared boundary.
func TestClassifyConflict_BackToBackTouchingBoundary(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	candidate := TimeRange{Start: base, End: base.Add(30 * time.Minute)}
	booked := TimeRange{Start: base.Add(30 * time.Minute), End: base.Add(time.Hour)}

	severity, overlap, related := ClassifyConflict(candidate, booked)

	assert.True(t, related)
	assert.Equal(t, SeverityBackToBack, severity)
	assert.Equal(t, candidate.End, overlap.Start)
	assert.Equal(t, candidate.End, overlap.End)

	// Symmetric: booked ends where the candidate begins.
	severity, _, related = ClassifyConflict(candidate, TimeRange{Start: base.Add(-time.Hour), End: base})
	assert.True(t, related)
	assert.Equal(t, SeverityBackToBack, severity)
}

func TestClassifyConflict_AdjacentGap(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	candidate := TimeRange{Start: base, End: base.Add(30 * time.Minute)}

	// 10 minute gap after the candidate.
	booked := TimeRange{Start: base.Add(40 * time.Minute), End: base.Add(70 * time.Minute)}
	severity, gap, related := ClassifyConflict(candidate, booked)
	assert.True(t, related)
	assert.Equal(t, SeverityAdjacent, severity)
	assert.Equal(t, candidate.End, gap.Start)
	assert.Equal(t, booked.Start, gap.End)

	// Exactly at the 15 minute threshold.
	booked = TimeRange{Start: base.Add(45 * time.Minute), End: base.Add(75 * time.Minute)}
	severity, _, related = ClassifyConflict(candidate, booked)
	assert.True(t, related)
	assert.Equal(t, SeverityAdjacent, severity)

	// Beyond the threshold: unrelated.
	booked = TimeRange{Start: base.Add(46 * time.Minute), End: base.Add(76 * time.Minute)}
	_, _, related = ClassifyConflict(candidate, booked)
	assert.False(t, related)
}

func TestCountConflictingMeetings_OnlyOverlapSeverityCounts(t *testing.T) {
	m1 := uuid.New()
	m2 := uuid.New()

	conflicts := []ConflictRecord{
		{MeetingID: m1, AttendeeID: uuid.New(), Severity: SeverityOverlap},
		{MeetingID: m1, AttendeeID: uuid.New(), Severity: SeverityOverlap},
		{MeetingID: m2, AttendeeID: uuid.New(), Severity: SeverityBackToBack},
		{MeetingID: uuid.New(), AttendeeID: uuid.New(), Severity: SeverityAdjacent},
	}

	// Two records for m1 collapse to one meeting; advisory severities
	// never count.
	assert.Equal(t, 1, CountConflictingMeetings(conflicts))
}

func TestConflictSeverity_IsValid(t *testing.T) {
	assert.True(t, SeverityOverlap.IsValid())
	assert.True(t, SeverityAdjacent.IsValid())
	assert.True(t, SeverityBackToBack.IsValid())
	assert.False(t, ConflictSeverity("near_miss").IsValid())
}
