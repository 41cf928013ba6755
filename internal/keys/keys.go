package keys

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select  key.Binding
	NextTab key.Binding

	// Back / Quit. ForceQuit is the only quit binding honored inside
	// text-input views, where plain letters are typed content.
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	// Views
	Dashboard     key.Binding
	Notifications key.Binding
	Records       key.Binding
	Assistant     key.Binding

	// Notification actions
	MarkRead    key.Binding
	MarkAllRead key.Binding
	Refresh     key.Binding

	// Session
	Logout key.Binding

	// Help overlay
	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch list"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dashboard"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notifications"),
		),
		Records: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "records"),
		),
		Assistant: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "legal assistant"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark read"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "mark all read"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp returns the bindings shown in the collapsed help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dashboard, k.Notifications, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped in columns, rendered by the
// help overlay.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.NextTab, k.Back},
		{k.Dashboard, k.Notifications, k.Records, k.Assistant},
		{k.MarkRead, k.MarkAllRead, k.Refresh, k.Logout, k.Help, k.Quit},
	}
}

// bindingSet adapts a flat binding list to the help.KeyMap interface so
// the status bar can render per-view hints straight from the bindings.
type bindingSet []key.Binding

func (b bindingSet) ShortHelp() []key.Binding  { return b }
func (b bindingSet) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

// LoginHelp returns the hints for the login form.
func (k *KeyMap) LoginHelp() help.KeyMap {
	return bindingSet{k.Select, k.ForceQuit}
}

// DashboardHelp returns the hints for the dashboard.
func (k *KeyMap) DashboardHelp() help.KeyMap {
	return bindingSet{k.Notifications, k.Records, k.Assistant, k.Refresh, k.Logout, k.Help, k.Quit}
}

// NotificationsHelp returns the hints for the notification center.
func (k *KeyMap) NotificationsHelp() help.KeyMap {
	return bindingSet{k.MarkRead, k.MarkAllRead, k.Refresh, k.Dashboard, k.Logout, k.Quit}
}

// RecordsHelp returns the hints for the record browser.
func (k *KeyMap) RecordsHelp() help.KeyMap {
	return bindingSet{k.NextTab, k.Dashboard, k.Logout, k.Quit}
}

// AssistantHelp returns the hints for the chat view.
func (k *KeyMap) AssistantHelp() help.KeyMap {
	return bindingSet{k.Select, k.Back, k.ForceQuit}
}
