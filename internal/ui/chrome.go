package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/police-portal/internal/theme"
)

// portalTitle is the fixed header title.
const portalTitle = "Police Assistance Portal"

// Chrome composes the portal's fixed frame around the active view: the
// header row carrying the unread badge and sync status, and the status
// bar carrying key hints. Header and status bar are one row each.
type Chrome struct {
	Width  int
	Height int
}

// NewChrome creates the frame for the given terminal dimensions.
func NewChrome(width, height int) Chrome {
	return Chrome{Width: width, Height: height}
}

// ContentWidth returns the full available width.
func (c Chrome) ContentWidth() int {
	return c.Width
}

// ContentHeight returns the rows available to the active view.
func (c Chrome) ContentHeight() int {
	return c.Height - 2
}

// Render draws the complete frame: title bar with the unread badge and
// right-aligned sync status, the view content, and the hint bar.
func (c Chrome) Render(unread int, syncStatus, content, hints string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		c.header(unread, syncStatus),
		content,
		c.statusBar(hints),
	)
}

// header renders the title row. The unread badge appears only when
// unread notifications exist.
func (c Chrome) header(unread int, syncStatus string) string {
	title := portalTitle
	if unread > 0 {
		title = fmt.Sprintf("%s  [%d unread]", portalTitle, unread)
	}

	left := theme.HeaderStyle.Render(title)
	right := theme.HeaderStyle.Align(lipgloss.Right).Render(syncStatus)

	return c.padded(theme.HeaderStyle, left, right)
}

// statusBar renders the bottom hint row.
func (c Chrome) statusBar(hints string) string {
	return c.padded(theme.StatusBarStyle, theme.StatusBarStyle.Render(hints), "")
}

// padded joins left and right with a background-colored filler so the
// row spans the full terminal width.
func (c Chrome) padded(style lipgloss.Style, left, right string) string {
	gap := c.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	filler := style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}
