// Package visitsync implements the visit synchronization service: it pulls
// the authenticated user's visit records from the VMS API, normalizes them
// into the upcoming and full-history views, creates new visit requests, and
// maintains the session notification feed.
package visitsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phawaaz/vmsync/internal/client"
	"github.com/phawaaz/vmsync/internal/notify"
	"github.com/phawaaz/vmsync/internal/session"
	"github.com/phawaaz/vmsync/internal/visit"
)

// Service owns the in-memory visit collections and the notification feed.
// It is the sole writer of both; consumers mutate only through its methods.
type Service struct {
	api   *client.Client
	store *session.Store
	feed  *notify.Feed
	now   func() time.Time

	// submitMu serializes AddVisit calls so overlapping submissions cannot
	// race their follow-up refreshes against each other.
	submitMu sync.Mutex

	mu         sync.Mutex
	upcoming   []visit.Record
	summary    []visit.Record
	loading    bool
	generation uint64
}

// New creates a synchronization service over the API client and session store.
func New(api *client.Client, store *session.Store) *Service {
	return &Service{
		api:   api,
		store: store,
		feed:  notify.NewFeed(),
		now:   time.Now,
	}
}

// SetClock replaces the service's time source. Test hook.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Refresh fetches the visit summary and atomically replaces both derived
// collections. With no stored token it is a silent no-op. On failure both
// collections reset to empty and an error notification is surfaced; the
// failure is not retried. A refresh superseded by a newer one discards its
// result so stale data never overwrites fresh data.
func (s *Service) Refresh(ctx context.Context) error {
	token, err := s.store.Token()
	if err != nil {
		return fmt.Errorf("reading session token: %w", err)
	}
	if token == "" {
		slog.Debug("no session token, skipping visit fetch")
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.loading = true
	s.generation++
	gen := s.generation
	now := s.now()
	s.mu.Unlock()

	summary, err := s.api.FetchSummary(ctx, token)
	if err != nil {
		slog.Error("fetching visit summary failed", "error", err)
		s.mu.Lock()
		if gen == s.generation {
			s.upcoming = nil
			s.summary = nil
			s.loading = false
		}
		s.mu.Unlock()
		s.feed.Add(fmt.Sprintf("Could not load visits: %s", err))
		return err
	}

	records := visit.NormalizeAll(summary.VisitSummary)

	// The server's upcoming list wins when present; otherwise derive it
	// from the full summary.
	var upcoming []visit.Record
	if len(summary.UpcomingVisitsList) > 0 {
		upcoming = visit.NormalizeAll(summary.UpcomingVisitsList)
	} else {
		upcoming = visit.Upcoming(records, now)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		slog.Debug("discarding stale visit summary", "generation", gen)
		return nil
	}
	s.summary = records
	s.upcoming = upcoming
	s.loading = false
	slog.Info("visit summary refreshed", "visits", len(records), "upcoming", len(upcoming))
	return nil
}

// VisitRequest is the input to AddVisit.
type VisitRequest struct {
	Company          string
	Date             string // YYYY-MM-DD
	Time             string // HH:MM
	Purpose          string
	Notes            string
	ExpectedDuration int // minutes, defaults to 60
}

// AddVisit submits a new visit request with a snapshot of the caller's
// identity, appends a notification describing it, and then awaits a chained
// Refresh so local state picks up the server-assigned fields. Returns true
// on success even if that follow-up refresh fails; the visit exists either
// way. With no token or cached profile it fails fast without a network call.
func (s *Service) AddVisit(ctx context.Context, req VisitRequest) (bool, error) {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	token, err := s.store.Token()
	if err != nil {
		return false, fmt.Errorf("reading session token: %w", err)
	}
	profile, perr := s.store.Profile()
	if token == "" || perr != nil || profile.ID == "" {
		s.feed.Add("Authentication required to schedule a visit.")
		return false, session.ErrAuthMissing
	}

	instant, err := visit.CombineDateTime(req.Date, req.Time)
	if err != nil {
		s.feed.Add(fmt.Sprintf("Could not schedule visit: invalid date or time %q %q.", req.Date, req.Time))
		return false, fmt.Errorf("combining %q %q: %w", req.Date, req.Time, err)
	}

	duration := req.ExpectedDuration
	if duration <= 0 {
		duration = 60
	}
	photo := profile.AvatarURL
	if photo == "" {
		photo = "default-avatar.png"
	}
	now := s.now().UTC().Format(time.RFC3339)

	payload := client.CreateVisitRequest{
		User: client.VisitRequester{
			ID:        profile.ID,
			FirstName: profile.First(),
			LastName:  profile.Last(),
			Email:     profile.Email,
			Role:      profile.Role,
			Phone:     profile.Phone,
			Photo:     photo,
			IsActive:  true,
			LastLogin: now,
			CreatedAt: profile.CreatedAt,
			UpdatedAt: now,
		},
		Purpose:          req.Purpose,
		VisitDate:        instant.UTC().Format(time.RFC3339),
		ExpectedDuration: duration,
		Company:          req.Company,
		Notes:            req.Notes,
		Status:           string(visit.StatusScheduled),
	}

	if err := s.api.CreateVisit(ctx, token, payload); err != nil {
		slog.Error("scheduling visit failed", "company", req.Company, "error", err)
		s.feed.Add(fmt.Sprintf("Failed to schedule visit: %s", err))
		return false, err
	}

	s.feed.Add(fmt.Sprintf("Visit scheduled with %s on %s at %s.",
		req.Company, visit.FormatDateForDisplay(req.Date), visit.FormatTimeForDisplay(req.Time)))
	slog.Info("visit scheduled", "company", req.Company, "visitDate", payload.VisitDate)

	// Chained, awaited resynchronization. The original UI deferred this
	// behind a timer, which let two submissions race; here the refresh
	// completes (or fails) before AddVisit returns.
	if err := s.Refresh(ctx); err != nil {
		slog.Warn("post-create refresh failed", "error", err)
	}

	return true, nil
}

// UpcomingVisits returns a snapshot copy of the upcoming visit collection.
func (s *Service) UpcomingVisits() []visit.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRecords(s.upcoming)
}

// VisitSummary returns a snapshot copy of the full visit collection.
func (s *Service) VisitSummary() []visit.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRecords(s.summary)
}

// Loading reports whether a refresh is in flight.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// TopUpcoming returns up to limit upcoming visits sorted soonest first.
// A non-positive limit means the default of 3.
func (s *Service) TopUpcoming(limit int) []visit.Record {
	if limit <= 0 {
		limit = 3
	}
	return visit.TopUpcoming(s.UpcomingVisits(), limit)
}

// Notifications returns a snapshot of the notification feed, newest first.
func (s *Service) Notifications() []notify.Entry {
	return s.feed.Entries()
}

// UnreadNotificationCount returns the number of unread notifications.
func (s *Service) UnreadNotificationCount() int {
	return s.feed.UnreadCount()
}

// ToggleReadStatus flips the read flag on one notification.
func (s *Service) ToggleReadStatus(id string) {
	s.feed.ToggleRead(id)
}

// MarkAllAsRead marks every notification read.
func (s *Service) MarkAllAsRead() {
	s.feed.MarkAllRead()
}

// Snapshot is an atomic view of the service's state.
type Snapshot struct {
	UpcomingVisits []visit.Record `json:"upcomingVisits"`
	VisitSummary   []visit.Record `json:"visitSummary"`
	Notifications  []notify.Entry `json:"notifications"`
	UnreadCount    int            `json:"unreadNotifications"`
	Loading        bool           `json:"loading"`
}

// Snapshot returns a consistent copy of the collections and feed.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		UpcomingVisits: copyRecords(s.upcoming),
		VisitSummary:   copyRecords(s.summary),
		Loading:        s.loading,
	}
	s.mu.Unlock()
	snap.Notifications = s.feed.Entries()
	snap.UnreadCount = s.feed.UnreadCount()
	return snap
}

func copyRecords(records []visit.Record) []visit.Record {
	out := make([]visit.Record, len(records))
	copy(out, records)
	return out
}
