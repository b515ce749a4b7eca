package editor

import (
	"context"
	"log/slog"

	"github.com/schedulist/schedulist/internal/rpc"
)

// DialogState is the delete confirmation dialog's position in its lifecycle.
type DialogState int

const (
	// DialogClosed: no deletion in progress.
	DialogClosed DialogState = iota
	// DialogOpen: waiting for the user to confirm or cancel.
	DialogOpen
	// DialogConfirming: delete request in flight; the dialog shows a
	// loading state and ignores further confirms.
	DialogConfirming
)

// DeleteDialog holds the confirmation dialog state. TargetID is cleared on
// every close so a stale identifier can never be acted on at the next open.
type DeleteDialog struct {
	State    DialogState
	TargetID int64
}

// Dialog returns the current dialog state.
func (e *Editor) Dialog() DeleteDialog {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dialog
}

// OpenDeleteDialog opens the confirmation dialog for the item. A dialog
// already past Closed keeps its target; double-opens are ignored.
func (e *Editor) OpenDeleteDialog(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dialog.State != DialogClosed {
		return
	}
	e.dialog = DeleteDialog{State: DialogOpen, TargetID: id}
}

// CancelDeleteDialog closes the dialog without deleting.
func (e *Editor) CancelDeleteDialog() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dialog.State != DialogOpen {
		return
	}
	e.dialog = DeleteDialog{}
}

// ConfirmDelete sends the delete request for the dialog's target.
//
// On success the collection is refetched, a confirmation toast is shown, and
// the dialog closes. A structured server error closes the dialog and shows
// "{code}: {message}". A transport error leaves the dialog open with loading
// reset so the user can retry or cancel. Loading is reset on every failure
// path.
func (e *Editor) ConfirmDelete() {
	e.mu.Lock()
	if e.dialog.State != DialogOpen {
		e.mu.Unlock()
		return
	}
	id := e.dialog.TargetID
	e.dialog.State = DialogConfirming
	e.mu.Unlock()

	e.dispatch(func(ctx context.Context) {
		err := e.channel.Delete(ctx, id)
		if e.closedNow() {
			return
		}

		if err == nil {
			e.refetch(ctx)
			e.closeDialog()
			e.notify.Success("Event type deleted")
			return
		}

		slog.Warn("delete failed", "id", id, "error", err)
		if _, structured := rpc.Structured(err); structured {
			e.closeDialog()
		} else {
			e.reopenDialog(id)
		}
		e.notify.Error(rpc.UserMessage(err))
	})
}

func (e *Editor) closeDialog() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dialog = DeleteDialog{}
}

func (e *Editor) reopenDialog(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dialog.State == DialogConfirming && e.dialog.TargetID == id {
		e.dialog.State = DialogOpen
	}
}
