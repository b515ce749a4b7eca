package tui

import "github.com/schedulist/schedulist/internal/editor"

// The controller is the editor's Notifier: toasts land in the status bar.
var _ editor.Notifier = (*Controller)(nil)

// Success shows a green toast in the status bar.
func (c *Controller) Success(msg string) {
	c.setStatus("[green]" + msg)
}

// Error shows a red toast in the status bar and re-syncs the delete modal,
// since delete failures decide whether the dialog stays open.
func (c *Controller) Error(msg string) {
	c.setStatus("[red]" + msg)
}

func (c *Controller) setStatus(text string) {
	go c.app.QueueUpdateDraw(func() {
		c.status.SetText(text)
		c.syncDeleteDialog()
	})
}
