// Package app wires the portal client together: view routing, the
// session lifecycle, and the bridge between the sync engine's events
// and the Bubble Tea runtime.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndtran/police-portal/internal/api"
	"github.com/ndtran/police-portal/internal/keys"
	"github.com/ndtran/police-portal/internal/notify"
	"github.com/ndtran/police-portal/internal/session"
	appsync "github.com/ndtran/police-portal/internal/sync"
	"github.com/ndtran/police-portal/internal/ui"
	"github.com/ndtran/police-portal/internal/ui/assistant"
	"github.com/ndtran/police-portal/internal/ui/dashboard"
	"github.com/ndtran/police-portal/internal/ui/login"
	"github.com/ndtran/police-portal/internal/ui/notifications"
	"github.com/ndtran/police-portal/internal/ui/records"
	"github.com/ndtran/police-portal/internal/ui/toast"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewNotifications
	ViewRecords
	ViewAssistant
)

// Model is the root Bubble Tea model.
type Model struct {
	currentView ViewState
	chrome      ui.Chrome
	keys        *keys.KeyMap
	help        help.Model

	client  *api.Client
	session *session.Store
	state   *notify.Store
	engine  *appsync.Engine

	loginView     login.Model
	dashView      dashboard.Model
	notifView     notifications.Model
	recordsView   records.Model
	assistantView assistant.Model
	toastView     toast.Model

	ready    bool
	showHelp bool
}

// New creates the root model. The session store has already been
// rehydrated synchronously by the time this runs; a surviving session
// skips the login screen.
func New(
	client *api.Client,
	sess *session.Store,
	state *notify.Store,
	engine *appsync.Engine,
	toastDuration time.Duration,
) Model {
	keyMap := keys.DefaultKeyMap()

	m := Model{
		currentView:   ViewLogin,
		keys:          keyMap,
		help:          help.New(),
		client:        client,
		session:       sess,
		state:         state,
		engine:        engine,
		loginView:     login.New(client, 80, 24),
		dashView:      dashboard.New(client, 80, 24),
		notifView:     notifications.New(client, state, keyMap, 80, 24),
		recordsView:   records.New(client, keyMap, 80, 24),
		assistantView: assistant.New(client, keyMap, 80, 24),
		toastView:     toast.New(toastDuration),
	}

	if sess.Authenticated() {
		p := sess.Current()
		m.currentView = ViewDashboard
		m.dashView.SetPrincipal(p)
		m.recordsView.SetPrincipal(p)
	}

	return m
}

// Init starts polling when a rehydrated session exists, otherwise just
// initializes the login form.
func (m Model) Init() tea.Cmd {
	if m.session.Authenticated() {
		m.engine.Start()
		return tea.Batch(
			m.loginView.Init(),
			m.dashView.Init(),
			m.notifView.Init(),
			m.engine.WaitForEvent(),
		)
	}
	return m.loginView.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.chrome = ui.NewChrome(msg.Width, msg.Height)
		m.ready = true
		m.help.Width = msg.Width
		w := m.chrome.ContentWidth()
		h := m.chrome.ContentHeight()
		m.loginView.SetSize(w, h)
		m.dashView.SetSize(w, h)
		m.notifView.SetSize(w, h)
		m.recordsView.SetSize(w, h)
		m.assistantView.SetSize(w, h)
		return m.updateActiveView(msg)

	case login.LoggedInMsg:
		if err := m.session.Login(msg.Principal); err != nil {
			m.loginView.SetError(err.Error())
			return m, nil
		}
		m.currentView = ViewDashboard
		m.dashView.SetPrincipal(msg.Principal)
		m.recordsView.SetPrincipal(msg.Principal)
		m.engine.Start()
		return m, tea.Batch(
			m.dashView.Init(),
			m.notifView.Init(),
			m.engine.WaitForEvent(),
		)

	case login.LoginFailedMsg:
		m.loginView.SetError(msg.Err.Error())
		return m, nil

	case appsync.AlertMsg:
		m.notifView.Refresh()
		showCmd := m.toastView.Show(msg.Sender, msg.Message)
		return m, tea.Batch(showCmd, m.engine.WaitForEvent())

	case appsync.SyncedMsg, appsync.SyncErrorMsg:
		m.notifView.Refresh()
		return m, m.engine.WaitForEvent()

	case appsync.SessionExpiredMsg:
		// The engine already ended the session through the store;
		// clear derived state and fall back to the login surface.
		return m, m.teardownSession(false)

	case notifications.MarkReadMsg, notifications.MarkAllReadMsg:
		// Optimistic local edits were already applied; the next poll's
		// authoritative replace corrects any server-side failure.
		m.notifView.Refresh()
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	var toastCmd tea.Cmd
	m.toastView, toastCmd = m.toastView.Update(msg)

	model, cmd := m.updateActiveView(msg)
	return model, tea.Batch(cmd, toastCmd)
}

// handleGlobalKey processes keys that work regardless of the active
// view. It reports whether the key was consumed.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// The login form owns all input until a session exists.
	if m.currentView == ViewLogin {
		if key.Matches(msg, m.keys.ForceQuit) {
			return tea.Quit, true
		}
		return nil, false
	}
	// Typed input goes to the chat; only ctrl+c and esc are global there.
	if m.currentView == ViewAssistant {
		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			m.engine.Stop()
			return tea.Quit, true
		case key.Matches(msg, m.keys.Back):
			m.currentView = ViewDashboard
			return nil, true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Stop()
		return tea.Quit, true

	case key.Matches(msg, m.keys.Dashboard):
		m.currentView = ViewDashboard
		return m.dashView.Init(), true

	case key.Matches(msg, m.keys.Notifications):
		m.currentView = ViewNotifications
		m.notifView.Refresh()
		return nil, true

	case key.Matches(msg, m.keys.Records):
		m.currentView = ViewRecords
		return m.recordsView.Init(), true

	case key.Matches(msg, m.keys.Assistant):
		m.currentView = ViewAssistant
		return m.assistantView.Focus(), true

	case key.Matches(msg, m.keys.Refresh):
		m.engine.Refresh()
		return nil, true

	case key.Matches(msg, m.keys.Logout):
		return m.teardownSession(true), true

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil, true

	case key.Matches(msg, m.keys.Back):
		if m.showHelp {
			m.showHelp = false
			return nil, true
		}
		if m.toastView.Visible() {
			m.toastView.Dismiss()
			return nil, true
		}
		m.currentView = ViewDashboard
		return nil, true
	}

	return nil, false
}

// teardownSession ends the session and routes to the login screen.
// explicit is true for a user-initiated logout, false when the engine
// detected an expired or rejected credential (the store is already
// logged out in that case).
func (m *Model) teardownSession(explicit bool) tea.Cmd {
	if explicit {
		m.engine.Stop()
		if err := m.session.Logout(); err != nil {
			// The in-memory session is gone either way; persistence
			// failures only affect the next restart.
			m.loginView.SetError(err.Error())
		}
	}

	m.state.Clear()
	m.client.SetToken("")
	m.toastView.Dismiss()
	m.assistantView.Reset()
	m.currentView = ViewLogin
	return m.loginView.Reset()
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case ViewNotifications:
		m.notifView, cmd = m.notifView.Update(msg)
	case ViewRecords:
		m.recordsView, cmd = m.recordsView.Update(msg)
	case ViewAssistant:
		m.assistantView, cmd = m.assistantView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	content := m.renderContent()
	if m.showHelp {
		content = m.renderHelpOverlay()
	}
	if m.toastView.Visible() {
		content = m.toastView.View() + "\n" + content
	}

	return m.chrome.Render(
		m.state.UnreadCount(),
		m.syncStatus(),
		content,
		m.keyHints(),
	)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewDashboard:
		return m.dashView.View()
	case ViewNotifications:
		return m.notifView.View()
	case ViewRecords:
		return m.recordsView.View()
	case ViewAssistant:
		return m.assistantView.View()
	default:
		return ""
	}
}

// renderHelpOverlay renders every binding grouped in columns in place
// of the active view.
func (m Model) renderHelpOverlay() string {
	h := m.help
	h.ShowAll = true
	return h.View(m.keys)
}

// syncStatus returns a short string describing the sync engine state.
func (m Model) syncStatus() string {
	if m.currentView == ViewLogin {
		return "signed out"
	}
	snap := m.state.Snapshot()
	switch {
	case snap.Loading:
		return "syncing"
	case snap.LastError != "":
		return "⚠ offline"
	default:
		return "live"
	}
}

// keyHints renders the status bar hints from the active view's bindings.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewLogin:
		return m.help.View(m.keys.LoginHelp())
	case ViewNotifications:
		return m.help.View(m.keys.NotificationsHelp())
	case ViewRecords:
		return m.help.View(m.keys.RecordsHelp())
	case ViewAssistant:
		return m.help.View(m.keys.AssistantHelp())
	default:
		return m.help.View(m.keys.DashboardHelp())
	}
}
