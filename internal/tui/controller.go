// Package tui renders the event type collection in the terminal and feeds
// user actions into the editor. It mediates between the cache (model) and
// tview (view); all mutation semantics live in the editor.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/schedulist/schedulist/internal/cache"
	"github.com/schedulist/schedulist/internal/editor"
	"github.com/schedulist/schedulist/internal/models"
	"github.com/schedulist/schedulist/internal/rpc"
)

const (
	pageList   = "list"
	pageEmpty  = "empty"
	pageDelete = "delete"
	pageForm   = "form"
)

// rowRef maps a table row back to its group/item indices. Heading and
// spacer rows carry itemIdx -1.
type rowRef struct {
	groupIdx int
	itemIdx  int
}

// Controller mediates between the cached collection and the view.
type Controller struct {
	app     *tview.Application
	editor  *editor.Editor
	coll    *cache.Collection
	client  *rpc.Client
	baseURL string

	pages  *tview.Pages
	table  *tview.Table
	status *tview.TextView

	clip editor.Clipboard

	rows       []rowRef
	events     map[rune]KeyEvent
	multiGroup bool
}

// KeyEvent defines an action associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func()
}

// NewController creates a controller over the given editor and cache. The
// editor may be nil at construction: the controller doubles as the editor's
// Notifier, so callers build the controller first, then the editor, then
// wire them with SetEditor.
func NewController(client *rpc.Client, coll *cache.Collection, ed *editor.Editor, publicBaseURL string) *Controller {
	c := &Controller{
		app:     tview.NewApplication(),
		editor:  ed,
		coll:    coll,
		client:  client,
		baseURL: publicBaseURL,
		clip:    OSC52Clipboard{},
	}

	c.table = tview.NewTable().SetSelectable(true, false)
	c.status = tview.NewTextView().SetDynamicColors(true)
	c.status.SetScrollable(false)

	c.initEvents()
	c.table.SetInputCapture(c.keyboard)

	grid := tview.NewGrid().
		SetRows(0, 1, 1).
		AddItem(c.table, 0, 0, 1, 1, 0, 0, true).
		AddItem(c.status, 1, 0, 1, 1, 0, 0, false).
		AddItem(c.helpLine(), 2, 0, 1, 1, 0, 0, false)

	c.pages = tview.NewPages().
		AddPage(pageList, grid, true, true).
		AddPage(pageEmpty, c.emptyView(), true, false)

	// Snapshot changes settle on mutation goroutines; hop off them before
	// queueing the redraw so a change applied from the UI goroutine itself
	// cannot deadlock the event loop.
	c.coll.Subscribe(func() {
		go c.app.QueueUpdateDraw(c.rebuild)
	})

	return c
}

// SetEditor wires the editor once it exists.
func (c *Controller) SetEditor(ed *editor.Editor) {
	c.editor = ed
}

// Run starts the terminal application and blocks until exit.
func (c *Controller) Run() error {
	c.rebuild()
	c.editor.Refresh()
	return c.app.SetRoot(c.pages, true).SetFocus(c.pages).Run()
}

func (c *Controller) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if k, ok := c.events[evt.Rune()]; ok {
		k.Action()
		return nil
	}
	return evt
}

// selected returns the group and item under the cursor.
func (c *Controller) selected() (models.Group, models.EventType, rowRef, bool) {
	row, _ := c.table.GetSelection()
	if row < 0 || row >= len(c.rows) || c.rows[row].itemIdx < 0 {
		return models.Group{}, models.EventType{}, rowRef{}, false
	}
	ref := c.rows[row]

	groups, ok := c.coll.Get()
	if !ok || ref.groupIdx >= len(groups) || ref.itemIdx >= len(groups[ref.groupIdx].Items) {
		return models.Group{}, models.EventType{}, rowRef{}, false
	}
	return groups[ref.groupIdx], groups[ref.groupIdx].Items[ref.itemIdx], ref, true
}

// rebuild redraws the table from the current snapshot. It runs on the UI
// goroutine only.
func (c *Controller) rebuild() {
	groups, loaded := c.coll.Get()
	if !loaded {
		return
	}

	if len(groups) == 0 {
		c.pages.SwitchToPage(pageEmpty)
		return
	}
	if name, _ := c.pages.GetFrontPage(); name == pageEmpty {
		c.pages.SwitchToPage(pageList)
	}

	c.multiGroup = len(groups) > 1
	c.table.Clear()
	c.rows = c.rows[:0]

	row := 0
	for gi, g := range groups {
		// The group heading is shown only when several groups exist.
		if c.multiGroup {
			c.table.SetCell(row, 0, headingCell(g))
			c.rows = append(c.rows, rowRef{groupIdx: gi, itemIdx: -1})
			row++
		}
		for ii, it := range g.Items {
			for col, cell := range itemCells(g, it) {
				c.table.SetCell(row, col, cell)
			}
			c.rows = append(c.rows, rowRef{groupIdx: gi, itemIdx: ii})
			row++
		}
	}

	c.syncDeleteDialog()
}

func (c *Controller) helpLine() *tview.TextView {
	parts := make([]string, 0, len(keyOrder))
	for _, r := range keyOrder {
		parts = append(parts, fmt.Sprintf("[yellow]%c[white] %s", r, c.events[r].Description))
	}
	view := tview.NewTextView().SetDynamicColors(true)
	view.SetText(strings.Join(parts, "  "))
	return view
}

func (c *Controller) emptyView() tview.Primitive {
	text := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	text.SetText("\n\n[yellow]No event types yet.\n\n[white]Create your first event type to start taking bookings.\n\nPress [yellow]n[white] to create one.")
	text.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		if evt.Rune() == 'n' {
			c.openCreateForm(nil)
			return nil
		}
		if evt.Rune() == 'q' {
			c.app.Stop()
			return nil
		}
		return evt
	})
	return text
}
