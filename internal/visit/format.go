package visit

import (
	"errors"
	"time"
)

// instantLayouts are the timestamp shapes the VMS API has been observed to
// send. RFC 3339 with or without sub-second precision, a zoneless variant,
// and a bare date.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var errUnparseable = errors.New("unparseable timestamp")

// parseInstant parses a timestamp in any of the accepted layouts.
func parseInstant(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errUnparseable
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnparseable
}

// formatClock renders the 24-hour wall-clock portion of an instant, the
// format used for a Record's derived Time field.
func formatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatDateForDisplay renders a date as e.g. "January 15, 2030".
// Unparseable input is returned unchanged; display code has no fallback path
// so this must never fail.
func FormatDateForDisplay(s string) string {
	if s == "" {
		return ""
	}
	t, err := parseInstant(s)
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006")
}

// FormatTimeForDisplay renders a time of day as e.g. "9:30 AM". Accepts a
// bare HH:MM clock value or a full timestamp. Unparseable input is returned
// unchanged.
func FormatTimeForDisplay(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("3:04 PM")
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("3:04 PM")
	}
	t, err := parseInstant(s)
	if err != nil {
		return s
	}
	return t.Format("3:04 PM")
}

// CombineDateTime joins a YYYY-MM-DD date and an HH:MM time into a single
// UTC instant, the visitDate sent to the API.
func CombineDateTime(date, clock string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04", date+"T"+clock)
}
