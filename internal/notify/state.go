// Package notify holds the process-local cache of the user's
// notifications. The server is the source of truth: every successful
// poll replaces the whole list, and local mutations (mark-read) are
// optimistic until the next replace confirms or overwrites them.
package notify

import (
	"sync"

	"github.com/ndtran/police-portal/internal/model"
)

// Snapshot is an immutable view of the container at one point in time.
type Snapshot struct {
	// Notifications preserves the server's delivery order; the client
	// never re-sorts it.
	Notifications []model.Notification

	// UnreadCount always equals the number of records with Read=false
	// in Notifications.
	UnreadCount int

	// Loading is true only during the initial fetch of a session.
	Loading bool

	// LastError holds the most recent non-fatal sync failure, or "".
	LastError string
}

// Store is the observable notification state container. All operations
// are total over the current state: they never fail, they either apply
// or no-op.
type Store struct {
	mu        sync.RWMutex
	items     []model.Notification
	unread    int
	loading   bool
	lastError string

	listeners map[int]chan Snapshot
	nextID    int
}

// NewStore returns an empty container.
func NewStore() *Store {
	return &Store{listeners: make(map[int]chan Snapshot)}
}

// ReplaceAll swaps in the authoritative list from the server and
// recomputes the unread count from it. It also ends any loading phase
// and clears the last error.
func (s *Store) ReplaceAll(list []model.Notification) {
	s.mu.Lock()
	s.items = append([]model.Notification(nil), list...)
	s.unread = 0
	for _, n := range s.items {
		if !n.Read {
			s.unread++
		}
	}
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()

	s.broadcast()
}

// InsertIfAbsent prepends the record unless its ID is already present.
func (s *Store) InsertIfAbsent(n model.Notification) {
	s.mu.Lock()
	for _, existing := range s.items {
		if existing.ID == n.ID {
			s.mu.Unlock()
			return
		}
	}
	s.items = append([]model.Notification{n}, s.items...)
	if !n.Read {
		s.unread++
	}
	s.mu.Unlock()

	s.broadcast()
}

// SetReadStatus flips the read flag of the identified record and adjusts
// the unread count. Absent IDs and unchanged statuses are no-ops.
func (s *Store) SetReadStatus(id string, read bool) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID != id || s.items[i].Read == read {
			continue
		}
		s.items[i].Read = read
		if read {
			if s.unread > 0 {
				s.unread--
			}
		} else {
			s.unread++
		}
		changed = true
		break
	}
	s.mu.Unlock()

	if changed {
		s.broadcast()
	}
}

// MarkAllRead sets every record's read flag and zeroes the unread count.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	for i := range s.items {
		s.items[i].Read = true
	}
	s.unread = 0
	s.mu.Unlock()

	s.broadcast()
}

// SetLoading toggles the loading flag for the initial fetch.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()

	s.broadcast()
}

// SetError records a non-fatal sync failure. The notification list is
// left untouched; the next successful poll clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.loading = false
	s.mu.Unlock()

	s.broadcast()
}

// Clear empties the container. Called on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.unread = 0
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()

	s.broadcast()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Contains reports whether a record with the given ID is present.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.items {
		if n.ID == id {
			return true
		}
	}
	return false
}

// UnreadCount returns the current unread count.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

// Watch subscribes to state changes. Each mutation delivers a snapshot
// on the returned channel; if the consumer lags, intermediate snapshots
// are dropped in favor of newer ones. The returned func unsubscribes
// and must be called on consumer teardown.
func (s *Store) Watch() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = ch
	s.mu.Unlock()

	unsubscribe := func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
	return ch, unsubscribe
}

// broadcast delivers the current snapshot to all listeners without
// blocking. A full listener channel is drained of its stale snapshot
// first so the newest state wins.
func (s *Store) broadcast() {
	s.mu.RLock()
	snap := s.snapshotLocked()
	for _, ch := range s.listeners {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	s.mu.RUnlock()
}

// snapshotLocked builds a Snapshot; callers must hold at least a read lock.
func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Notifications: append([]model.Notification(nil), s.items...),
		UnreadCount:   s.unread,
		Loading:       s.loading,
		LastError:     s.lastError,
	}
}
