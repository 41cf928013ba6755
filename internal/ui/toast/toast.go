// Package toast renders the single-slot transient alert surface. At most
// one alert is visible at a time; a newer alert replaces the current one
// and restarts the dismiss timer. Nothing guarantees the replaced alert
// was seen.
package toast

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndtran/police-portal/internal/theme"
)

// DefaultDuration is how long an alert stays on screen without user
// dismissal.
const DefaultDuration = 6 * time.Second

// expireMsg dismisses the alert of a given generation. Stale generations
// are ignored so a superseding alert is not cut short by the previous
// alert's timer.
type expireMsg struct {
	generation int
}

// Model is the toast slot.
type Model struct {
	sender     string
	message    string
	visible    bool
	generation int
	duration   time.Duration
}

// New creates an empty toast slot. A zero duration uses DefaultDuration.
func New(duration time.Duration) Model {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return Model{duration: duration}
}

// Show replaces the slot with a new alert and returns the command that
// schedules its auto-dismissal.
func (m *Model) Show(sender, message string) tea.Cmd {
	m.sender = sender
	m.message = message
	m.visible = true
	m.generation++

	gen := m.generation
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return expireMsg{generation: gen}
	})
}

// Dismiss hides the current alert immediately.
func (m *Model) Dismiss() {
	m.visible = false
}

// Visible reports whether an alert is currently displayed.
func (m Model) Visible() bool {
	return m.visible
}

// Update handles the dismiss timer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if exp, ok := msg.(expireMsg); ok {
		if exp.generation == m.generation {
			m.visible = false
		}
	}
	return m, nil
}

// View renders the alert box, or "" when the slot is empty.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	return theme.ToastStyle.Render(
		fmt.Sprintf("✉ %s: %s", m.sender, m.message),
	)
}
