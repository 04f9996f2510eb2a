// Package visit provides the visit domain model and normalization of the
// raw records returned by the VMS API.
package visit

import (
	"sort"
	"time"
)

// Status represents where a visit is in its lifecycle.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPending   Status = "pending"
	StatusCheckedIn Status = "checked-in"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"

	// StatusUnknown is the catch-all for server values outside the known
	// vocabulary. The raw string is kept on the record for display.
	StatusUnknown Status = "unknown"
)

// KnownStatuses is the set of status values the server is known to send.
var KnownStatuses = []Status{
	StatusScheduled, StatusPending, StatusCheckedIn, StatusCompleted, StatusCancelled,
}

// ParseStatus maps a server status string onto the known vocabulary.
// Unrecognized values map to StatusUnknown rather than failing.
func ParseStatus(s string) Status {
	for _, known := range KnownStatuses {
		if Status(s) == known {
			return known
		}
	}
	return StatusUnknown
}

// Terminal reports whether the status is a final state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Label returns a human-readable label for the status.
func (s Status) Label() string {
	switch s {
	case StatusScheduled:
		return "Scheduled"
	case StatusPending:
		return "Pending"
	case StatusCheckedIn:
		return "Checked In"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// UserSnapshot is the denormalized copy of the requester's identity embedded
// in each visit at submission time. It is not a live reference.
type UserSnapshot struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	Photo     string `json:"photo,omitempty"`
}

// RawVisit is the wire shape of a visit as returned by the VMS API.
type RawVisit struct {
	ID           string       `json:"_id"`
	Company      string       `json:"company"`
	Purpose      string       `json:"purpose"`
	VisitDate    string       `json:"visitDate"`
	Status       string       `json:"status"`
	CheckInTime  string       `json:"checkInTime,omitempty"`
	CheckOutTime string       `json:"checkOutTime,omitempty"`
	QRCode       string       `json:"qrCode,omitempty"`
	User         UserSnapshot `json:"user"`
}

// Record is a normalized visit. Date is the sole scheduling authority; Time
// is always recomputed from it and never stored independently.
type Record struct {
	ID           string       `json:"id"`
	Company      string       `json:"company"`
	Date         time.Time    `json:"-"`
	RawDate      string       `json:"date"`
	Time         string       `json:"time"`
	Purpose      string       `json:"purpose"`
	Status       Status       `json:"status"`
	RawStatus    string       `json:"rawStatus,omitempty"`
	CheckInTime  *time.Time   `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time   `json:"checkOutTime,omitempty"`
	QRCode       string       `json:"qrCode,omitempty"`
	User         UserSnapshot `json:"user"`
}

// Normalize maps a raw API visit into a Record. An unparseable visitDate
// yields a zero Date and the literal Time "Invalid Date"; the mapping itself
// never fails so one bad record cannot poison a whole summary.
func Normalize(raw RawVisit) Record {
	rec := Record{
		ID:        raw.ID,
		Company:   raw.Company,
		RawDate:   raw.VisitDate,
		Purpose:   raw.Purpose,
		Status:    ParseStatus(raw.Status),
		RawStatus: raw.Status,
		QRCode:    raw.QRCode,
		User:      raw.User,
	}

	if t, err := parseInstant(raw.VisitDate); err == nil {
		rec.Date = t
		rec.Time = formatClock(t)
	} else {
		rec.Time = "Invalid Date"
	}

	if t, err := parseInstant(raw.CheckInTime); err == nil {
		rec.CheckInTime = &t
	}
	if t, err := parseInstant(raw.CheckOutTime); err == nil {
		rec.CheckOutTime = &t
	}

	return rec
}

// NormalizeAll maps a slice of raw visits into Records.
func NormalizeAll(raw []RawVisit) []Record {
	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, Normalize(r))
	}
	return records
}

// Upcoming filters records down to those scheduled after now and still in a
// non-terminal requested state (scheduled or pending).
func Upcoming(records []Record, now time.Time) []Record {
	var upcoming []Record
	for _, r := range records {
		if r.Date.After(now) && (r.Status == StatusScheduled || r.Status == StatusPending) {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming
}

// TopUpcoming returns up to limit records sorted ascending by date. The
// input slice is never mutated; sorting happens on a defensive copy.
func TopUpcoming(records []Record, limit int) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
