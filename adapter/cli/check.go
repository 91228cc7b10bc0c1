package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	checkMeetingID string
	checkStart     string
	checkDuration  int
	checkAttendees string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a proposed reschedule time for an existing meeting",
	Long: `Check a single proposed interval for conflicts, excluding the
meeting's own current booking.

Example:
  slotwise check --meeting 4be1... --start 2026-09-02T10:00:00Z --duration 30 --attendees 8f14...,c2a9...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "The check command requires a database connection.")
			return nil
		}

		meetingID, err := uuid.Parse(checkMeetingID)
		if err != nil {
			return fmt.Errorf("invalid --meeting id: %w", err)
		}
		start, err := time.Parse(time.RFC3339, checkStart)
		if err != nil {
			return fmt.Errorf("invalid --start, want RFC3339: %w", err)
		}
		attendeeIDs, err := parseAttendees(checkAttendees)
		if err != nil {
			return err
		}

		conflicts, err := app.RescheduleValidator.ValidateAt(
			cmd.Context(), meetingID, start, time.Duration(checkDuration)*time.Minute, attendeeIDs,
		)
		if err != nil {
			return err
		}

		if len(conflicts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No conflicts; the proposed time is clean.")
			return nil
		}

		for _, c := range conflicts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: attendee %s vs meeting %s (%s - %s)\n",
				c.Severity,
				c.AttendeeID,
				c.MeetingID,
				c.Overlap.Start.Format("15:04"),
				c.Overlap.End.Format("15:04"),
			)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkMeetingID, "meeting", "", "meeting id being rescheduled (required)")
	checkCmd.Flags().StringVar(&checkStart, "start", "", "proposed start time (RFC3339, required)")
	checkCmd.Flags().IntVar(&checkDuration, "duration", 30, "meeting duration in minutes")
	checkCmd.Flags().StringVar(&checkAttendees, "attendees", "", "comma-separated attendee ids (required)")
	_ = checkCmd.MarkFlagRequired("meeting")
	_ = checkCmd.MarkFlagRequired("start")
	_ = checkCmd.MarkFlagRequired("attendees")

	AddCommand(checkCmd)
}
