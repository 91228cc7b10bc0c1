package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/slotwise/slotwise/internal/scheduling/application/services"
	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

var (
	suggestAttendees    string
	suggestDuration     int
	suggestStart        string
	suggestDays         int
	suggestMax          int
	suggestBuffer       int
	suggestMaxConflicts int
	suggestMinAvailable int
	suggestWeekends     bool
	suggestAfterHours   bool
	suggestExclude      string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Find and rank feasible meeting time slots",
	Long: `Search the horizon for candidate slots, evaluate conflicts and
attendee availability, and print the ranked suggestions.

Examples:
  slotwise suggest --attendees 8f14...,c2a9... --duration 30 --days 7
  slotwise suggest --attendees 8f14... --duration 60 --after-hours --max 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "The suggest command requires a database connection.")
			return nil
		}

		attendeeIDs, err := parseAttendees(suggestAttendees)
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("days") && app.Config != nil {
			suggestDays = app.Config.DefaultSearchDays
		}
		if !cmd.Flags().Changed("max") && app.Config != nil {
			suggestMax = app.Config.DefaultMaxSuggestions
		}

		prefs := domain.DefaultPreferences()
		prefs.BufferMinutes = suggestBuffer
		prefs.AllowWeekends = suggestWeekends
		prefs.AllowAfterHours = suggestAfterHours
		prefs.MaxConflicts = suggestMaxConflicts
		prefs.MinAvailableAttendees = suggestMinAvailable

		req := services.SuggestionRequest{
			AttendeeIDs:     attendeeIDs,
			DurationMinutes: suggestDuration,
			SearchRangeDays: suggestDays,
			Preferences:     prefs,
			MaxSuggestions:  suggestMax,
		}

		if suggestStart != "" {
			start, err := time.Parse(time.RFC3339, suggestStart)
			if err != nil {
				return fmt.Errorf("invalid --start, want RFC3339: %w", err)
			}
			req.PreferredStartTime = &start
		}
		if suggestExclude != "" {
			id, err := uuid.Parse(suggestExclude)
			if err != nil {
				return fmt.Errorf("invalid --exclude meeting id: %w", err)
			}
			req.ExcludeMeetingID = &id
		}

		suggestions, err := app.Orchestrator.FindSuggestions(cmd.Context(), req)
		if err != nil {
			if errors.Is(err, services.ErrNoFeasibleSlots) {
				fmt.Fprintln(cmd.OutOrStdout(), "Availability lookups failed for every candidate; try again later.")
				return nil
			}
			return err
		}

		if len(suggestions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No slots matched the constraints. Try a wider horizon or relaxed preferences.")
			return nil
		}

		for i, s := range suggestions {
			marker := " "
			if s.WithinWorkingHours {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s - %s  score=%3d%s  available=%d/%d  conflicts=%d  (%s)\n",
				i+1,
				s.Time.Start.Format("Mon Jan 2 15:04"),
				s.Time.End.Format("15:04"),
				s.Score,
				marker,
				s.AvailableAttendees,
				s.TotalAttendees,
				s.ConflictCount,
				s.Reason,
			)
		}
		return nil
	},
}

func parseAttendees(csv string) ([]uuid.UUID, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, services.ErrNoAttendees
	}
	parts := strings.Split(csv, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid attendee id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func init() {
	suggestCmd.Flags().StringVar(&suggestAttendees, "attendees", "", "comma-separated attendee ids (required)")
	suggestCmd.Flags().IntVar(&suggestDuration, "duration", 30, "meeting duration in minutes")
	suggestCmd.Flags().StringVar(&suggestStart, "start", "", "horizon start (RFC3339, default now)")
	suggestCmd.Flags().IntVar(&suggestDays, "days", 7, "search range in days (3, 7, 14, 30)")
	suggestCmd.Flags().IntVar(&suggestMax, "max", 10, "maximum suggestions to return")
	suggestCmd.Flags().IntVar(&suggestBuffer, "buffer", 0, "transition buffer in minutes before each slot")
	suggestCmd.Flags().IntVar(&suggestMaxConflicts, "max-conflicts", 0, "maximum tolerated conflicting meetings per slot")
	suggestCmd.Flags().IntVar(&suggestMinAvailable, "min-available", 0, "minimum attendees that must be available")
	suggestCmd.Flags().BoolVar(&suggestWeekends, "weekends", false, "allow weekend slots")
	suggestCmd.Flags().BoolVar(&suggestAfterHours, "after-hours", false, "also consider the 18:00-20:00 band")
	suggestCmd.Flags().StringVar(&suggestExclude, "exclude", "", "meeting id to exclude (reschedule flows)")
	_ = suggestCmd.MarkFlagRequired("attendees")

	AddCommand(suggestCmd)
}
