package services

import (
	"sort"

	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

// DefaultSuggestionLimit caps the ranked result list when the caller does
// not supply a limit.
const DefaultSuggestionLimit = 10

// RankCandidates applies the hard filters, scores the survivors, sorts by
// score descending with earlier starts breaking ties, and truncates to the
// limit. Hard-filtered candidates are excluded outright, never merely
// penalized.
func RankCandidates(
	candidates []domain.CandidateSlot,
	totalAttendees int,
	prefs domain.Preferences,
	limit int,
) []domain.Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	suggestions := make([]domain.Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		conflictCount := candidate.ConflictCount()
		available := candidate.AvailableCount()

		if conflictCount > prefs.MaxConflicts {
			continue
		}
		if available < prefs.MinAvailableAttendees {
			continue
		}

		score, reason, workingHours := ScoreCandidate(
			candidate.Time, candidate.Conflicts, candidate.Availability, totalAttendees, prefs,
		)

		suggestions = append(suggestions, domain.Suggestion{
			Time:               candidate.Time,
			Score:              score,
			ConflictCount:      conflictCount,
			AvailableAttendees: available,
			TotalAttendees:     totalAttendees,
			Reason:             reason,
			WithinWorkingHours: workingHours,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Time.Start.Before(suggestions[j].Time.Start)
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
