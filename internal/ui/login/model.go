package login

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/police-portal/internal/api"
	"github.com/ndtran/police-portal/internal/model"
	"github.com/ndtran/police-portal/internal/theme"
)

// LoggedInMsg is dispatched when the backend accepts the credentials.
type LoggedInMsg struct {
	Principal model.Principal
}

// LoginFailedMsg is dispatched when the login attempt is rejected.
type LoginFailedMsg struct {
	Err error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
	role     string
}

// Model is the Bubble Tea model for the login screen.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	client  *api.Client
	errText string
	busy    bool
	width   int
	height  int
}

// New creates a login screen bound to the API client.
func New(client *api.Client, width, height int) Model {
	m := Model{
		fb:     &formBindings{role: string(model.RoleCitizen)},
		client: client,
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// buildForm constructs the credential form.
func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Citizen", string(model.RoleCitizen)),
					huh.NewOption("Officer", string(model.RoleOfficer)),
					huh.NewOption("Admin", string(model.RoleAdmin)),
				).
				Value(&m.fb.role),
		),
	)
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears the form for a fresh login attempt.
func (m *Model) Reset() tea.Cmd {
	m.fb.password = ""
	m.errText = ""
	m.busy = false
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError shows a failure line under the form.
func (m *Model) SetError(msg string) {
	m.errText = msg
	m.busy = false
}

// Update handles messages for the login screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		m.errText = ""
		return m, m.submit()
	}

	return m, cmd
}

// submit returns a command that performs the login call.
func (m Model) submit() tea.Cmd {
	client := m.client
	req := api.LoginRequest{
		Email:    m.fb.email,
		Password: m.fb.password,
		Role:     model.Role(m.fb.role),
	}
	return func() tea.Msg {
		principal, err := client.Login(context.Background(), req)
		if err != nil {
			return LoginFailedMsg{Err: err}
		}
		return LoggedInMsg{Principal: principal}
	}
}

// View renders the login screen.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Police Assistance Portal — Sign In")

	parts := []string{title, m.form.View()}
	if m.busy {
		parts = append(parts, theme.HelpStyle.Render("signing in..."))
	}
	if m.errText != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errText))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the login screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
