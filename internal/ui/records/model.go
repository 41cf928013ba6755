package records

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/police-portal/internal/api"
	"github.com/ndtran/police-portal/internal/keys"
	"github.com/ndtran/police-portal/internal/model"
	"github.com/ndtran/police-portal/internal/theme"
)

// Tab identifies which record collection is displayed.
type Tab int

const (
	TabComplaints Tab = iota
	TabFines
	TabReports
	TabSuspects
)

// loadedMsg carries one fetched record collection.
type loadedMsg struct {
	tab       Tab
	complaints []model.Complaint
	fines      []model.Fine
	reports    []model.CaseReport
	suspects   []model.Suspect
	err        error
}

// Model is the thin record browser: tabbed read-only lists over the
// backend's CRUD endpoints.
type Model struct {
	client    *api.Client
	keys      *keys.KeyMap
	principal model.Principal
	tab       Tab

	complaints []model.Complaint
	fines      []model.Fine
	reports    []model.CaseReport
	suspects   []model.Suspect
	errText    string

	width  int
	height int
}

// New creates the record browser bound to the API client.
func New(client *api.Client, keyMap *keys.KeyMap, width, height int) Model {
	return Model{client: client, keys: keyMap, width: width, height: height}
}

// SetPrincipal sets the logged-in user; citizens start on complaints,
// officers and admins on reports.
func (m *Model) SetPrincipal(p model.Principal) {
	m.principal = p
	if p.Role == model.RoleCitizen {
		m.tab = TabComplaints
	} else {
		m.tab = TabReports
	}
}

// Init loads the active tab.
func (m Model) Init() tea.Cmd {
	return m.loadTab(m.tab)
}

// tabs returns the tabs available to the current role.
func (m Model) tabs() []Tab {
	if m.principal.Role == model.RoleCitizen {
		return []Tab{TabComplaints, TabFines}
	}
	return []Tab{TabReports, TabSuspects}
}

// loadTab fetches the collection behind the given tab.
func (m Model) loadTab(tab Tab) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		switch tab {
		case TabComplaints:
			list, err := client.MyComplaints(ctx)
			return loadedMsg{tab: tab, complaints: list, err: err}
		case TabFines:
			list, err := client.MyFines(ctx)
			return loadedMsg{tab: tab, fines: list, err: err}
		case TabReports:
			list, err := client.Reports(ctx)
			return loadedMsg{tab: tab, reports: list, err: err}
		case TabSuspects:
			list, err := client.Suspects(ctx)
			return loadedMsg{tab: tab, suspects: list, err: err}
		}
		return nil
	}
}

// Update handles messages for the record browser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		switch msg.tab {
		case TabComplaints:
			m.complaints = msg.complaints
		case TabFines:
			m.fines = msg.fines
		case TabReports:
			m.reports = msg.reports
		case TabSuspects:
			m.suspects = msg.suspects
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.NextTab) {
			tabs := m.tabs()
			for i, t := range tabs {
				if t == m.tab {
					m.tab = tabs[(i+1)%len(tabs)]
					break
				}
			}
			return m, m.loadTab(m.tab)
		}
	}

	return m, nil
}

// View renders the active tab.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var lines []string
	lines = append(lines, titleStyle.Render(m.tabTitle()))

	switch m.tab {
	case TabComplaints:
		for _, c := range m.complaints {
			lines = append(lines, theme.ListItemStyle.Render(fmt.Sprintf(
				"%s  [%s] %s", c.CreatedAt.Format("2006-01-02"), c.Status, c.Subject,
			)))
		}
	case TabFines:
		for _, f := range m.fines {
			status := "unpaid"
			if f.Paid {
				status = "paid"
			}
			lines = append(lines, theme.ListItemStyle.Render(fmt.Sprintf(
				"%s  %.2f  %s  %s",
				f.IssuedAt.Format("2006-01-02"), f.Amount,
				theme.FineStatusStyle(f.Paid).Render(status), f.Reason,
			)))
		}
	case TabReports:
		for _, r := range m.reports {
			lines = append(lines, theme.ListItemStyle.Render(fmt.Sprintf(
				"%s  case %s — %s", r.CreatedAt.Format("2006-01-02"), r.CaseID, r.Title,
			)))
		}
	case TabSuspects:
		for _, s := range m.suspects {
			lines = append(lines, theme.ListItemStyle.Render(fmt.Sprintf(
				"[%s] %s — %s", s.Status, s.Name, s.Description,
			)))
		}
	}

	if len(lines) == 1 {
		lines = append(lines, theme.HelpStyle.Render("no records"))
	}
	if m.errText != "" {
		lines = append(lines, theme.ErrorStyle.Render(m.errText))
	}
	hint := m.keys.NextTab.Help()
	lines = append(lines, theme.HelpStyle.Render(hint.Key+": "+hint.Desc))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// tabTitle returns the heading for the active tab.
func (m Model) tabTitle() string {
	switch m.tab {
	case TabComplaints:
		return "My Complaints"
	case TabFines:
		return "My Fines"
	case TabReports:
		return "Case Reports"
	case TabSuspects:
		return "Suspects"
	default:
		return ""
	}
}

// SetSize updates the record browser dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
