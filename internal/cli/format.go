package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/phawaaz/vmsync/internal/visit"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printVisitTable prints visits as a formatted table.
func printVisitTable(visits []visit.Record) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "DATE\tTIME\tCOMPANY\tPURPOSE\tSTATUS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "----\t----\t-------\t-------\t------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, v := range visits {
		date := visit.FormatDateForDisplay(v.RawDate)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			date, v.Time, truncate(v.Company, 30), truncate(v.Purpose, 40), v.Status.Label()); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d visits\n", len(visits))
	return nil
}

// printVisitDetails prints a single visit in text format.
func printVisitDetails(v visit.Record) {
	fmt.Printf("%s at %s — %s\n", visit.FormatDateForDisplay(v.RawDate), visit.FormatTimeForDisplay(v.Time), v.Company)
	fmt.Printf("  Purpose: %s\n", v.Purpose)
	fmt.Printf("  Status:  %s\n", v.Status.Label())
	if v.CheckInTime != nil {
		fmt.Printf("  Checked in:  %s\n", v.CheckInTime.Format("2006-01-02 15:04"))
	}
	if v.CheckOutTime != nil {
		fmt.Printf("  Checked out: %s\n", v.CheckOutTime.Format("2006-01-02 15:04"))
	}
	if v.QRCode != "" {
		fmt.Printf("  Check-in code: %s\n", v.QRCode)
	}
	fmt.Println()
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
