package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndtran/police-portal/internal/model"
)

func n(id string, read bool) model.Notification {
	return model.Notification{
		ID:        id,
		Sender:    model.Actor{ID: 2, Name: "Officer Reyes", Role: model.RoleOfficer},
		Receiver:  model.Actor{ID: 1, Name: "Dana", Role: model.RoleCitizen},
		Message:   "message " + id,
		Read:      read,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestReplaceAllRecomputesUnread(t *testing.T) {
	tests := []struct {
		name       string
		list       []model.Notification
		wantUnread int
	}{
		{"empty", nil, 0},
		{"all unread", []model.Notification{n("a", false), n("b", false)}, 2},
		{"mixed", []model.Notification{n("a", false), n("b", true), n("c", false)}, 2},
		{"all read", []model.Notification{n("a", true), n("b", true)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.ReplaceAll(tt.list)

			snap := s.Snapshot()
			assert.Equal(t, tt.wantUnread, snap.UnreadCount)
			assert.Len(t, snap.Notifications, len(tt.list))
			assert.False(t, snap.Loading)
		})
	}
}

func TestReplaceAllPreservesServerOrder(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]model.Notification{n("c", false), n("a", false), n("b", false)})

	snap := s.Snapshot()
	require.Len(t, snap.Notifications, 3)
	assert.Equal(t, "c", snap.Notifications[0].ID)
	assert.Equal(t, "a", snap.Notifications[1].ID)
	assert.Equal(t, "b", snap.Notifications[2].ID)
}

func TestReplaceAllOverwritesLocalEdits(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]model.Notification{n("a", false)})
	s.SetReadStatus("a", true)
	require.Equal(t, 0, s.UnreadCount())

	// Server has not seen the mark-read yet; its list wins.
	s.ReplaceAll([]model.Notification{n("a", false)})
	assert.Equal(t, 1, s.UnreadCount())
}

func TestInsertIfAbsentIsIdempotent(t *testing.T) {
	s := NewStore()
	s.InsertIfAbsent(n("a", false))
	s.InsertIfAbsent(n("a", false))

	snap := s.Snapshot()
	assert.Len(t, snap.Notifications, 1)
	assert.Equal(t, 1, snap.UnreadCount)
}

func TestInsertIfAbsentPrepends(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]model.Notification{n("old", true)})
	s.InsertIfAbsent(n("new", false))

	snap := s.Snapshot()
	require.Len(t, snap.Notifications, 2)
	assert.Equal(t, "new", snap.Notifications[0].ID)
	assert.Equal(t, 1, snap.UnreadCount)
}

func TestSetReadStatus(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]model.Notification{n("a", false), n("b", true)})

	s.SetReadStatus("a", true)
	assert.Equal(t, 0, s.UnreadCount())

	// Already-read record is a no-op.
	before := s.Snapshot()
	s.SetReadStatus("a", true)
	assert.Equal(t, before, s.Snapshot())

	// Absent ID is a no-op.
	s.SetReadStatus("missing", true)
	assert.Equal(t, before, s.Snapshot())

	// Flipping back to unread adjusts the count upward.
	s.SetReadStatus("b", false)
	assert.Equal(t, 1, s.UnreadCount())
}

func TestMarkAllRead(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]model.Notification{n("a", false), n("b", false), n("c", true)})

	s.MarkAllRead()

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.UnreadCount)
	for _, record := range snap.Notifications {
		assert.True(t, record.Read)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]model.Notification{n("a", false)})
	s.SetError("boom")

	s.Clear()

	snap := s.Snapshot()
	assert.Empty(t, snap.Notifications)
	assert.Equal(t, 0, snap.UnreadCount)
	assert.Empty(t, snap.LastError)
}

func TestSetErrorKeepsList(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]model.Notification{n("a", false)})

	s.SetError("server unreachable")

	snap := s.Snapshot()
	assert.Len(t, snap.Notifications, 1)
	assert.Equal(t, "server unreachable", snap.LastError)
	assert.False(t, snap.Loading)
}

func TestContains(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]model.Notification{n("a", false)})

	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("b"))
}

func TestWatchDeliversSnapshots(t *testing.T) {
	s := NewStore()
	ch, unsubscribe := s.Watch()
	defer unsubscribe()

	s.ReplaceAll([]model.Notification{n("a", false)})

	select {
	case snap := <-ch:
		assert.Equal(t, 1, snap.UnreadCount)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestWatchDropsStaleSnapshotsForNewest(t *testing.T) {
	s := NewStore()
	ch, unsubscribe := s.Watch()
	defer unsubscribe()

	// Two mutations without a read in between: the consumer must see
	// the newest state, not the intermediate one.
	s.ReplaceAll([]model.Notification{n("a", false)})
	s.ReplaceAll([]model.Notification{n("a", false), n("b", false)})

	select {
	case snap := <-ch:
		assert.Equal(t, 2, snap.UnreadCount)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := NewStore()
	ch, unsubscribe := s.Watch()
	unsubscribe()

	s.ReplaceAll([]model.Notification{n("a", false)})

	select {
	case <-ch:
		t.Fatal("snapshot delivered after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}
