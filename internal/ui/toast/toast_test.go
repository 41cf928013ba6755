package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowMakesAlertVisible(t *testing.T) {
	m := New(time.Second)
	require.False(t, m.Visible())

	cmd := m.Show("Officer Reyes", "your complaint was updated")
	require.NotNil(t, cmd, "Show must schedule the dismiss timer")
	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "Officer Reyes")
	assert.Contains(t, m.View(), "your complaint was updated")
}

func TestExpireDismissesCurrentAlert(t *testing.T) {
	m := New(time.Second)
	m.Show("Officer Reyes", "hello")

	m, _ = m.Update(expireMsg{generation: m.generation})
	assert.False(t, m.Visible())
}

func TestStaleTimerDoesNotCutShortNewerAlert(t *testing.T) {
	m := New(time.Second)
	m.Show("first", "one")
	firstGen := m.generation

	m.Show("second", "two")

	// The first alert's timer fires after it was superseded.
	m, _ = m.Update(expireMsg{generation: firstGen})
	assert.True(t, m.Visible(), "a superseded alert's timer must not dismiss its replacement")
	assert.Contains(t, m.View(), "second")

	m, _ = m.Update(expireMsg{generation: m.generation})
	assert.False(t, m.Visible())
}

func TestDismissHidesImmediately(t *testing.T) {
	m := New(time.Second)
	m.Show("sender", "message")

	m.Dismiss()
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestZeroDurationFallsBackToDefault(t *testing.T) {
	m := New(0)
	assert.Equal(t, DefaultDuration, m.duration)
}
