package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/99designs/keyring"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndtran/police-portal/internal/api"
	"github.com/ndtran/police-portal/internal/notify"
	"github.com/ndtran/police-portal/internal/session"
	appsync "github.com/ndtran/police-portal/internal/sync"
)

func newTestApp(t *testing.T) Model {
	t.Helper()

	client := api.NewClient("http://127.0.0.1:1", time.Second, nil)
	sess, err := session.Open(
		filepath.Join(t.TempDir(), "session.db"),
		keyring.NewArrayKeyring(nil),
		nil,
	)
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })

	state := notify.NewStore()
	engine := appsync.New(client, api.IsAuthError, sess, state, time.Hour, nil)
	t.Cleanup(engine.Stop)

	return New(client, sess, state, engine, time.Second)
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGlobalKeysRouteViews(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want ViewState
	}{
		{"notifications", runeMsg('n'), ViewNotifications},
		{"records", runeMsg('c'), ViewRecords},
		{"assistant", runeMsg('a'), ViewAssistant},
		{"dashboard", runeMsg('d'), ViewDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestApp(t)
			m.currentView = ViewDashboard

			_, handled := m.handleGlobalKey(tt.msg)
			assert.True(t, handled)
			assert.Equal(t, tt.want, m.currentView)
		})
	}
}

func TestEscReturnsToDashboard(t *testing.T) {
	m := newTestApp(t)
	m.currentView = ViewNotifications

	_, handled := m.handleGlobalKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, handled)
	assert.Equal(t, ViewDashboard, m.currentView)
}

func TestLoginViewOwnsTypedInput(t *testing.T) {
	m := newTestApp(t)
	m.currentView = ViewLogin

	// Letters are form input, not navigation.
	for _, r := range []rune{'n', 'c', 'a', 'd', 'q', 'L'} {
		_, handled := m.handleGlobalKey(runeMsg(r))
		assert.False(t, handled, "%q must reach the form", r)
	}

	cmd, handled := m.handleGlobalKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, handled)
	assert.NotNil(t, cmd)
}

func TestAssistantViewOwnsTypedInput(t *testing.T) {
	m := newTestApp(t)
	m.currentView = ViewAssistant

	_, handled := m.handleGlobalKey(runeMsg('q'))
	assert.False(t, handled, "q is chat text, not quit")

	_, handled = m.handleGlobalKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, handled)
	assert.Equal(t, ViewDashboard, m.currentView)
}

func TestLogoutKeyTearsDownSession(t *testing.T) {
	m := newTestApp(t)
	m.currentView = ViewDashboard

	_, handled := m.handleGlobalKey(runeMsg('L'))
	assert.True(t, handled)
	assert.Equal(t, ViewLogin, m.currentView)
	assert.False(t, m.session.Authenticated())
	assert.Empty(t, m.client.Token())
}

func TestHelpOverlayToggle(t *testing.T) {
	m := newTestApp(t)
	m.currentView = ViewDashboard

	_, handled := m.handleGlobalKey(runeMsg('?'))
	assert.True(t, handled)
	assert.True(t, m.showHelp)
	assert.Contains(t, m.renderHelpOverlay(), "mark all read")

	// esc closes the overlay without leaving the view.
	_, handled = m.handleGlobalKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, handled)
	assert.False(t, m.showHelp)
	assert.Equal(t, ViewDashboard, m.currentView)
}

func TestKeyHintsComeFromBindings(t *testing.T) {
	m := newTestApp(t)

	m.currentView = ViewNotifications
	hints := m.keyHints()
	assert.Contains(t, hints, "mark read")
	assert.Contains(t, hints, "refresh")

	m.currentView = ViewRecords
	hints = m.keyHints()
	assert.Contains(t, hints, "switch list")

	m.currentView = ViewLogin
	hints = m.keyHints()
	assert.Contains(t, hints, "ctrl+c")
}
