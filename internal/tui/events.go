package tui

import (
	"github.com/schedulist/schedulist/internal/ordering"
)

// keyOrder fixes the help line layout.
var keyOrder = []rune{'K', 'J', 'h', 'c', 'd', 'x', 'n', 'r', 'q'}

func (c *Controller) initEvents() {
	c.events = map[rune]KeyEvent{
		'K': {Description: "move up", Action: c.moveAction(ordering.Up)},
		'J': {Description: "move down", Action: c.moveAction(ordering.Down)},
		'h': {Description: "hide/show", Action: c.toggleHidden},
		'c': {Description: "copy link", Action: c.copyLink},
		'd': {Description: "duplicate", Action: c.duplicate},
		'x': {Description: "delete", Action: c.requestDelete},
		'n': {Description: "new", Action: func() { c.openCreateForm(nil) }},
		'r': {Description: "refresh", Action: func() { c.editor.Refresh() }},
		'q': {Description: "quit", Action: c.app.Stop},
	}
}

// moveAction swaps the selected item with its neighbor. The editor treats
// first-up and last-down as no-ops, so the affordance check here is only
// about keeping the cursor glued to the moved row.
func (c *Controller) moveAction(dir ordering.Direction) func() {
	return func() {
		_, _, ref, ok := c.selected()
		if !ok {
			return
		}
		c.editor.MoveEventType(ref.groupIdx, ref.itemIdx, dir)

		row, _ := c.table.GetSelection()
		c.table.Select(row+int(dir), 0)
		c.rebuild()
	}
}

func (c *Controller) toggleHidden() {
	_, it, _, ok := c.selected()
	if !ok {
		return
	}
	c.editor.ToggleHidden(it.ID, it.Hidden)
}

func (c *Controller) copyLink() {
	g, it, _, ok := c.selected()
	if !ok {
		return
	}
	c.editor.CopyLink(c.clip, c.baseURL, g, it)
}

func (c *Controller) requestDelete() {
	g, it, _, ok := c.selected()
	if !ok || g.ReadOnly {
		return
	}
	c.editor.OpenDeleteDialog(it.ID)
	c.syncDeleteDialog()
}
