package notifications

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/police-portal/internal/api"
	"github.com/ndtran/police-portal/internal/keys"
	"github.com/ndtran/police-portal/internal/notify"
	"github.com/ndtran/police-portal/internal/theme"
)

// MarkReadMsg reports the outcome of a server-side mark-read call. The
// local container was already updated optimistically; a failure is
// corrected by the next poll's authoritative replace.
type MarkReadMsg struct {
	ID  string
	Err error
}

// MarkAllReadMsg reports the outcome of a server-side mark-all call.
type MarkAllReadMsg struct {
	Err error
}

// Model is the notification center view. It renders the state
// container's current snapshot; the sync engine owns the data.
type Model struct {
	client  *api.Client
	state   *notify.Store
	keys    *keys.KeyMap
	snap    notify.Snapshot
	cursor  int
	spinner spinner.Model
	width   int
	height  int
}

// New creates the notification center bound to the API client and the
// shared state container.
func New(client *api.Client, state *notify.Store, keyMap *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		client:  client,
		state:   state,
		keys:    keyMap,
		snap:    state.Snapshot(),
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Refresh re-reads the state container. The root model calls this after
// every sync event so the view always shows the latest snapshot.
func (m *Model) Refresh() {
	m.snap = m.state.Snapshot()
	if m.cursor >= len(m.snap.Notifications) {
		m.cursor = len(m.snap.Notifications) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles messages for the notification center.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.snap.Notifications)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.MarkRead), key.Matches(msg, m.keys.Select):
			return m, m.markSelectedRead()
		case key.Matches(msg, m.keys.MarkAllRead):
			return m, m.markAllRead()
		}
	}

	return m, nil
}

// markSelectedRead optimistically marks the record under the cursor as
// read locally, then confirms with the server. The next poll overwrites
// either way; server truth wins.
func (m *Model) markSelectedRead() tea.Cmd {
	if m.cursor >= len(m.snap.Notifications) {
		return nil
	}
	n := m.snap.Notifications[m.cursor]
	if n.Read {
		return nil
	}

	m.state.SetReadStatus(n.ID, true)
	m.Refresh()

	client := m.client
	return func() tea.Msg {
		err := client.MarkNotificationRead(context.Background(), n.ID)
		return MarkReadMsg{ID: n.ID, Err: err}
	}
}

// markAllRead optimistically clears the unread count locally, then
// confirms with the server.
func (m *Model) markAllRead() tea.Cmd {
	if m.snap.UnreadCount == 0 {
		return nil
	}

	m.state.MarkAllRead()
	m.Refresh()

	client := m.client
	return func() tea.Msg {
		err := client.MarkAllNotificationsRead(context.Background())
		return MarkAllReadMsg{Err: err}
	}
}

// View renders the notification list.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := fmt.Sprintf("Notifications (%d unread)", m.snap.UnreadCount)

	var lines []string
	lines = append(lines, titleStyle.Render(title))

	switch {
	case m.snap.Loading:
		lines = append(lines, m.spinner.View()+" loading...")
	case len(m.snap.Notifications) == 0:
		lines = append(lines, theme.HelpStyle.Render("no notifications"))
	default:
		visible := m.height - 6
		if visible < 1 {
			visible = 1
		}
		start := 0
		if m.cursor >= visible {
			start = m.cursor - visible + 1
		}
		end := start + visible
		if end > len(m.snap.Notifications) {
			end = len(m.snap.Notifications)
		}

		for i := start; i < end; i++ {
			n := m.snap.Notifications[i]
			line := fmt.Sprintf(
				"%s  %s — %s",
				n.CreatedAt.Format("Jan 02 15:04"),
				n.Sender.Name,
				n.Message,
			)
			if !n.Read {
				line = theme.UnreadStyle.Render("● ") + line
			} else {
				line = "  " + line
			}

			if i == m.cursor {
				lines = append(lines, theme.SelectedItemStyle.Render(line))
			} else {
				lines = append(lines, theme.ListItemStyle.Render(line))
			}
		}
	}

	if m.snap.LastError != "" {
		lines = append(lines, theme.ErrorStyle.Render(
			"sync degraded: "+m.snap.LastError,
		))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
