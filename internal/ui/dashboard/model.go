package dashboard

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/police-portal/internal/api"
	"github.com/ndtran/police-portal/internal/model"
	"github.com/ndtran/police-portal/internal/theme"
)

// Stats holds the counts shown on the role-scoped stat cards.
type Stats struct {
	Complaints int
	Fines      int
	Reports    int
	Suspects   int
}

// StatsLoadedMsg carries the fetched dashboard stats.
type StatsLoadedMsg struct {
	Stats Stats
	Err   error
}

// Model is the role-scoped dashboard view. It is purely presentational:
// a handful of stat cards backed by the thin record endpoints.
type Model struct {
	client    *api.Client
	principal model.Principal
	stats     Stats
	errText   string
	width     int
	height    int
}

// New creates the dashboard bound to the API client.
func New(client *api.Client, width, height int) Model {
	return Model{client: client, width: width, height: height}
}

// SetPrincipal sets the logged-in user whose role scopes the cards.
func (m *Model) SetPrincipal(p model.Principal) {
	m.principal = p
}

// Init loads the stats for the current role.
func (m Model) Init() tea.Cmd {
	return m.loadStats()
}

// loadStats fetches the record counts relevant to the current role.
func (m Model) loadStats() tea.Cmd {
	client := m.client
	role := m.principal.Role
	return func() tea.Msg {
		ctx := context.Background()
		var stats Stats

		switch role {
		case model.RoleCitizen:
			complaints, err := client.MyComplaints(ctx)
			if err != nil {
				return StatsLoadedMsg{Err: err}
			}
			fines, err := client.MyFines(ctx)
			if err != nil {
				return StatsLoadedMsg{Err: err}
			}
			stats.Complaints = len(complaints)
			stats.Fines = len(fines)

		case model.RoleOfficer, model.RoleAdmin:
			reports, err := client.Reports(ctx)
			if err != nil {
				return StatsLoadedMsg{Err: err}
			}
			suspects, err := client.Suspects(ctx)
			if err != nil {
				return StatsLoadedMsg{Err: err}
			}
			stats.Reports = len(reports)
			stats.Suspects = len(suspects)
		}

		return StatsLoadedMsg{Stats: stats}
	}
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatsLoadedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.stats = msg.Stats
	}
	return m, nil
}

// View renders the stat cards for the current role.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	roleTag := theme.RoleStyle(string(m.principal.Role)).
		Render(string(m.principal.Role))
	title := titleStyle.Render(
		fmt.Sprintf("Welcome, %s", m.principal.Name),
	)

	var cards []string
	switch m.principal.Role {
	case model.RoleCitizen:
		cards = append(cards,
			card("My Complaints", m.stats.Complaints),
			card("My Fines", m.stats.Fines),
		)
	case model.RoleOfficer, model.RoleAdmin:
		cards = append(cards,
			card("Case Reports", m.stats.Reports),
			card("Suspects", m.stats.Suspects),
		)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Center, title, " ", roleTag),
		row,
	}
	if m.errText != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errText))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// card renders one stat card.
func card(label string, count int) string {
	countStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue)

	return theme.CardStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Center,
			countStyle.Render(fmt.Sprintf("%d", count)),
			label,
		),
	)
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
