package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderShowsUnreadBadge(t *testing.T) {
	c := NewChrome(120, 40)

	withUnread := c.header(3, "live")
	assert.Contains(t, withUnread, "Police Assistance Portal")
	assert.Contains(t, withUnread, "[3 unread]")
	assert.Contains(t, withUnread, "live")

	noUnread := c.header(0, "live")
	assert.NotContains(t, noUnread, "unread")
}

func TestRenderComposesFullFrame(t *testing.T) {
	c := NewChrome(120, 40)

	out := c.Render(1, "syncing", "the active view", "n notifications")
	assert.Contains(t, out, "[1 unread]")
	assert.Contains(t, out, "syncing")
	assert.Contains(t, out, "the active view")
	assert.Contains(t, out, "n notifications")
}

func TestContentHeightReservesChromeRows(t *testing.T) {
	c := NewChrome(80, 24)
	assert.Equal(t, 22, c.ContentHeight())
	assert.Equal(t, 80, c.ContentWidth())
}
