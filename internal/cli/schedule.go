package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phawaaz/vmsync/internal/visit"
	"github.com/phawaaz/vmsync/internal/visitsync"
)

func newScheduleCmd() *cobra.Command {
	var (
		notes    string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "schedule <company> <date> <time> <purpose>",
		Short: "Schedule a new visit",
		Long: `Schedule a new visit and print the check-in QR token.

Date format: YYYY-MM-DD
Time format: HH:MM (24-hour)

Examples:
  vmsync schedule "Acme Corp" 2026-10-01 09:30 "Quarterly review"
  vmsync schedule "Acme Corp" 2026-10-01 09:30 "Interview" --duration 45 --notes "ask for badge at gate"`,
		Args: cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := visitsync.VisitRequest{
				Company:          args[0],
				Date:             args[1],
				Time:             args[2],
				Purpose:          strings.Join(args[3:], " "),
				Notes:            notes,
				ExpectedDuration: duration,
			}
			return runSchedule(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "optional notes for the host")
	cmd.Flags().IntVar(&duration, "duration", 60, "expected duration in minutes")

	return cmd
}

func runSchedule(ctx context.Context, req visitsync.VisitRequest) error {
	svc, store, err := newService()
	if err != nil {
		return err
	}
	defer closeStore(store)

	ok, err := svc.AddVisit(ctx, req)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("visit was not scheduled")
	}

	created := findScheduledVisit(svc.VisitSummary(), req)

	if isJSON() {
		out := struct {
			Scheduled bool          `json:"scheduled"`
			Visit     *visit.Record `json:"visit,omitempty"`
		}{Scheduled: true, Visit: created}
		return printJSON(out)
	}

	for _, n := range svc.Notifications() {
		if strings.Contains(n.Message, "Visit scheduled") {
			fmt.Println(n.Message)
			break
		}
	}

	// The QR token only exists once the server has assigned it; the chained
	// refresh inside AddVisit makes it available here on success.
	if created != nil && created.QRCode != "" {
		fmt.Printf("Check-in code: %s\n", created.QRCode)
	} else if created != nil {
		fmt.Printf("Visit #%s recorded; check-in code not issued yet.\n", created.ID)
	}

	return nil
}

// findScheduledVisit locates the freshly created visit in the resynchronized
// summary by company and scheduled instant.
func findScheduledVisit(records []visit.Record, req visitsync.VisitRequest) *visit.Record {
	instant, err := visit.CombineDateTime(req.Date, req.Time)
	if err != nil {
		return nil
	}
	for i := range records {
		if records[i].Company == req.Company && records[i].Date.Equal(instant) {
			return &records[i]
		}
	}
	return nil
}
