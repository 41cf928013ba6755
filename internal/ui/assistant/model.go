package assistant

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/police-portal/internal/api"
	"github.com/ndtran/police-portal/internal/keys"
	"github.com/ndtran/police-portal/internal/model"
	"github.com/ndtran/police-portal/internal/theme"
)

// ReplyMsg carries the assistant's answer to the last question.
type ReplyMsg struct {
	Reply model.ChatMessage
	Err   error
}

// Model is the legal-assistant chat view. It only relays the transcript
// to the backend proxy; the backend owns the AI provider.
type Model struct {
	client  *api.Client
	keys    *keys.KeyMap
	input   textinput.Model
	history []model.ChatMessage
	waiting bool
	errText string
	width   int
	height  int
}

// New creates the chat view bound to the API client.
func New(client *api.Client, keyMap *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "ask a legal question..."
	ti.Prompt = "> "
	ti.Width = width - 6

	return Model{
		client: client,
		keys:   keyMap,
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Focus gives keyboard focus to the input line.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Reset clears the transcript.
func (m *Model) Reset() {
	m.history = nil
	m.errText = ""
	m.waiting = false
	m.input.Reset()
}

// Update handles messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReplyMsg:
		m.waiting = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.history = append(m.history, msg.Reply)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Select) && !m.waiting {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.history = append(m.history, model.ChatMessage{
				Role:    "user",
				Content: question,
			})
			m.waiting = true
			return m, m.ask()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask sends the transcript to the backend proxy.
func (m Model) ask() tea.Cmd {
	client := m.client
	history := append([]model.ChatMessage(nil), m.history...)
	return func() tea.Msg {
		reply, err := client.LegalAssistant(context.Background(), history)
		return ReplyMsg{Reply: reply, Err: err}
	}
}

// View renders the transcript and input line.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var lines []string
	lines = append(lines, titleStyle.Render("Legal Assistant"))

	for _, msg := range m.history {
		prefix := "You: "
		style := theme.ListItemStyle
		if msg.Role == "assistant" {
			prefix = "Assistant: "
			style = theme.ListItemStyle.Foreground(theme.ColorGreen)
		}
		lines = append(lines, style.Render(prefix+msg.Content))
	}

	if m.waiting {
		lines = append(lines, theme.HelpStyle.Render("thinking..."))
	}
	if m.errText != "" {
		lines = append(lines, theme.ErrorStyle.Render(m.errText))
	}

	lines = append(lines, "", m.input.View())

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the chat view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}
