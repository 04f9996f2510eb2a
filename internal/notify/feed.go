// Package notify provides the in-memory, session-scoped notification feed.
// Entries are never persisted; they exist for the lifetime of the owning
// service.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is a single notification shown to the user.
type Entry struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	Timestamp time.Time `json:"timestamp"`
}

// Feed is a mutex-guarded notification list, newest first. The unread count
// is always derived by counting, never stored, so it cannot drift.
type Feed struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{now: time.Now}
}

// SetClock replaces the feed's time source. Test hook.
func (f *Feed) SetClock(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// Add prepends a new unread entry and returns it.
func (f *Feed) Add(message string) Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry := Entry{
		ID:        uuid.NewString(),
		Message:   message,
		Timestamp: f.now(),
	}
	f.entries = append([]Entry{entry}, f.entries...)
	return entry
}

// ToggleRead flips the read flag on one entry. Unknown IDs are ignored.
func (f *Feed) ToggleRead(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].IsRead = !f.entries[i].IsRead
			return
		}
	}
}

// MarkAllRead marks every entry read.
func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		f.entries[i].IsRead = true
	}
}

// UnreadCount returns the number of unread entries.
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, e := range f.entries {
		if !e.IsRead {
			count++
		}
	}
	return count
}

// Entries returns a snapshot copy of the feed, newest first.
func (f *Feed) Entries() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := make([]Entry, len(f.entries))
	copy(snapshot, f.entries)
	return snapshot
}
