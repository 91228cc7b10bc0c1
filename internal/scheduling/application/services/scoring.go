package services

import (
	"fmt"

	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

const (
	scoreBase            = 100
	conflictPenalty      = 20
	availabilityWeight   = 30
	workingHoursBonus    = 20
	preferredWindowBonus = 15
	weekendPenalty       = 30

	excellentThreshold = 80
	goodThreshold      = 60
)

// ScoreCandidate turns an evaluated candidate into a 0-100 score, a
// human-readable reason, and the working-hours flag.
func ScoreCandidate(
	candidate domain.TimeRange,
	conflicts []domain.ConflictRecord,
	availability []domain.AvailabilityRecord,
	totalAttendees int,
	prefs domain.Preferences,
) (score int, reason string, workingHours bool) {
	conflictCount := domain.CountConflictingMeetings(conflicts)
	available := 0
	for _, a := range availability {
		if a.Available {
			available++
		}
	}

	workingHours = domain.IsWorkingHours(candidate.Start)

	score = scoreBase
	score -= conflictPenalty * conflictCount
	if totalAttendees > 0 {
		score += availabilityWeight * available / totalAttendees
	}
	if workingHours {
		score += workingHoursBonus
	}
	if prefs.InPreferredWindow(candidate.Start) {
		score += preferredWindowBonus
	}
	if domain.IsWeekend(candidate.Start) && !prefs.AllowWeekends {
		score -= weekendPenalty
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	reason = chooseReason(score, conflictCount, available, totalAttendees, workingHours)
	return score, reason, workingHours
}

// chooseReason picks exactly one reason by priority.
func chooseReason(score, conflictCount, available, total int, workingHours bool) string {
	switch {
	case score >= excellentThreshold:
		return "excellent availability"
	case score >= goodThreshold:
		return "good, most attendees available"
	case conflictCount > 0:
		return fmt.Sprintf("%d conflict(s) but manageable", conflictCount)
	case available < total:
		return fmt.Sprintf("%d attendee(s) unavailable", total-available)
	case !workingHours:
		return "outside standard working hours"
	default:
		return "alternative time slot"
	}
}
