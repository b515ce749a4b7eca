package tui

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/rivo/tview"

	"github.com/schedulist/schedulist/internal/editor"
	"github.com/schedulist/schedulist/internal/models"
	"github.com/schedulist/schedulist/internal/rpc"
)

// syncDeleteDialog keeps the modal in step with the editor's dialog state
// machine. The editor owns the state; the modal is just its projection, so a
// transport failure that leaves the dialog open re-shows the modal for
// retry-in-place.
func (c *Controller) syncDeleteDialog() {
	dialog := c.editor.Dialog()
	showing := c.pages.HasPage(pageDelete)

	switch dialog.State {
	case editor.DialogClosed:
		if showing {
			c.pages.RemovePage(pageDelete)
		}
	case editor.DialogConfirming:
		// Keep the modal up; it shows a loading hint until settle.
	case editor.DialogOpen:
		if showing {
			return
		}
		modal := tview.NewModal().
			SetText("Delete this event type?\nAnyone with its link can no longer book it.").
			AddButtons([]string{"Delete", "Cancel"}).
			SetDoneFunc(func(_ int, label string) {
				if label == "Delete" {
					c.editor.ConfirmDelete()
				} else {
					c.editor.CancelDeleteDialog()
				}
				c.syncDeleteDialog()
			})
		c.pages.AddPage(pageDelete, modal, true, true)
	}
}

// duplicate opens the creation form pre-populated from the selected item.
// The handoff goes through the query-parameter contract rather than passing
// the struct, so the form works identically when launched from a URL.
func (c *Controller) duplicate() {
	g, it, _, ok := c.selected()
	if !ok {
		return
	}
	params := editor.DuplicateParams(g, it)
	c.openCreateForm(params)
}

// openCreateForm shows the event type creation form, optionally
// pre-populated from duplicate-flow query parameters.
func (c *Controller) openCreateForm(params url.Values) {
	var (
		title, slug, desc string
		length            = 30
		scheduling        string
		pageSlug          string
	)
	if params != nil {
		title = params.Get("title") + " (copy)"
		slug = params.Get("slug") + "-copy"
		desc = params.Get("description")
		scheduling = params.Get("schedulingType")
		pageSlug = params.Get("pageSlug")
		if n, err := strconv.Atoi(params.Get("length")); err == nil {
			length = n
		}
	}

	form := tview.NewForm().
		AddInputField("Title", title, 40, nil, func(v string) { title = v }).
		AddInputField("Slug", slug, 40, nil, func(v string) { slug = v }).
		AddInputField("Description", desc, 40, nil, func(v string) { desc = v }).
		AddInputField("Length (minutes)", strconv.Itoa(length), 6, nil, func(v string) {
			if n, err := strconv.Atoi(v); err == nil {
				length = n
			}
		})

	form.AddButton("Create", func() {
		c.pages.RemovePage(pageForm)
		c.create(pageSlug, &rpc.CreateRequest{
			Title:          title,
			Slug:           slug,
			Description:    desc,
			Length:         length,
			SchedulingType: models.SchedulingType(scheduling),
		})
	})
	form.AddButton("Cancel", func() {
		c.pages.RemovePage(pageForm)
	})
	form.SetBorder(true).SetTitle("New event type")

	c.pages.AddPage(pageForm, form, true, true)
}

// create resolves the target group and sends the create request. An empty
// pageSlug targets the first writable group.
func (c *Controller) create(pageSlug string, req *rpc.CreateRequest) {
	groups, ok := c.coll.Get()
	if !ok {
		return
	}
	for _, g := range groups {
		if g.ReadOnly {
			continue
		}
		if pageSlug == "" || g.Slug == pageSlug {
			req.ProfileID = g.ProfileID
			break
		}
	}
	if req.ProfileID == 0 {
		c.Error("No writable group to create in")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := c.client.Create(ctx, req); err != nil {
			c.Error(rpc.UserMessage(err))
			return
		}
		c.Success("Event type created")
		c.editor.Refresh()
	}()
}
