package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDefaultBindingsMatch(t *testing.T) {
	k := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"down j", runeMsg('j'), k.Down},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, k.Down},
		{"up k", runeMsg('k'), k.Up},
		{"select enter", tea.KeyMsg{Type: tea.KeyEnter}, k.Select},
		{"next tab", tea.KeyMsg{Type: tea.KeyTab}, k.NextTab},
		{"back esc", tea.KeyMsg{Type: tea.KeyEsc}, k.Back},
		{"quit q", runeMsg('q'), k.Quit},
		{"quit ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, k.Quit},
		{"force quit ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, k.ForceQuit},
		{"dashboard", runeMsg('d'), k.Dashboard},
		{"notifications", runeMsg('n'), k.Notifications},
		{"records", runeMsg('c'), k.Records},
		{"assistant", runeMsg('a'), k.Assistant},
		{"mark read", runeMsg('m'), k.MarkRead},
		{"mark all read", runeMsg('M'), k.MarkAllRead},
		{"refresh", runeMsg('r'), k.Refresh},
		{"logout", runeMsg('L'), k.Logout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestForceQuitIgnoresPlainQ(t *testing.T) {
	k := DefaultKeyMap()

	// Inside text-input views plain q is typed content, so only ctrl+c
	// may match the force-quit binding.
	assert.False(t, key.Matches(runeMsg('q'), k.ForceQuit))
}

func TestHelpSetsCarryHelpText(t *testing.T) {
	k := DefaultKeyMap()

	sets := map[string][]key.Binding{
		"login":         k.LoginHelp().ShortHelp(),
		"dashboard":     k.DashboardHelp().ShortHelp(),
		"notifications": k.NotificationsHelp().ShortHelp(),
		"records":       k.RecordsHelp().ShortHelp(),
		"assistant":     k.AssistantHelp().ShortHelp(),
		"global short":  k.ShortHelp(),
	}

	for name, bindings := range sets {
		assert.NotEmpty(t, bindings, name)
		for _, b := range bindings {
			assert.NotEmpty(t, b.Help().Key, name)
			assert.NotEmpty(t, b.Help().Desc, name)
		}
	}
}
