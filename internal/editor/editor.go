// Package editor implements the ordered collection editor: optimistic
// reordering, visibility toggles, and confirmed deletion of event types,
// reconciled against the server by invalidate-and-refetch.
//
// Mutations are fire-and-forget from the caller's perspective: each runs in
// its own goroutine and the UI never blocks on the network. Overlapping
// requests are not serialized; the last refetch to settle determines the
// final state.
package editor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/schedulist/schedulist/internal/cache"
	"github.com/schedulist/schedulist/internal/models"
	"github.com/schedulist/schedulist/internal/ordering"
	"github.com/schedulist/schedulist/internal/rpc"
)

// Channel is the mutation channel the editor dispatches into. rpc.Client
// satisfies it; tests substitute fakes.
type Channel interface {
	Reorder(ctx context.Context, profileID int64, ids []int64) error
	SetHidden(ctx context.Context, id int64, hidden bool) error
	Delete(ctx context.Context, id int64) error
}

// Notifier surfaces toast feedback. Reorder and hide failures never reach
// it; deletion and clipboard results always do.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Editor drives one view's collection. It owns the delete confirmation
// dialog state and a liveness context; after Close, late continuations
// become no-ops.
type Editor struct {
	channel Channel
	cache   *cache.Collection
	notify  Notifier

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	dialog DeleteDialog
	cron   *cron.Cron
}

// New creates an editor over the given cache and mutation channel.
func New(channel Channel, coll *cache.Collection, notify Notifier) *Editor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Editor{
		channel: channel,
		cache:   coll,
		notify:  notify,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// MoveEventType swaps the item at itemIdx with its neighbor and propagates
// the new order. Out-of-bounds moves are silent no-ops: nothing is swapped
// and no request is sent. The swap is applied optimistically before the
// reorder request settles; settle always triggers a refetch, success or not,
// so the optimistic order can never outlive reconciliation.
func (e *Editor) MoveEventType(groupIdx, itemIdx int, dir ordering.Direction) {
	if e.closedNow() {
		return
	}
	groups, ok := e.cache.Get()
	if !ok || groupIdx < 0 || groupIdx >= len(groups) {
		return
	}
	group := groups[groupIdx]
	if group.ReadOnly {
		return
	}

	swapped, ok := ordering.Swap(group.Items, itemIdx, dir)
	if !ok {
		return
	}

	next := make([]models.Group, len(groups))
	copy(next, groups)
	next[groupIdx].Items = swapped
	e.cache.SetOptimistic(next)

	ids := ordering.IDs(swapped)
	e.dispatch(func(ctx context.Context) {
		if err := e.channel.Reorder(ctx, group.ProfileID, ids); err != nil {
			// Low-stakes and self-healing: log, refetch, no toast.
			slog.Warn("reorder failed", "profile_id", group.ProfileID, "error", err)
		}
		e.refetch(ctx)
	})
}

// ToggleHidden requests hidden = !currentHidden for the item. The list is
// not optimistically mutated; the authoritative flag arrives with the
// refetch. Two rapid toggles race last-write-wins, which is accepted.
func (e *Editor) ToggleHidden(id int64, currentHidden bool) {
	e.dispatch(func(ctx context.Context) {
		if err := e.channel.SetHidden(ctx, id, !currentHidden); err != nil {
			slog.Warn("toggle hidden failed", "id", id, "error", err)
		}
		e.refetch(ctx)
	})
}

// Refresh reloads server truth immediately.
func (e *Editor) Refresh() {
	e.dispatch(e.refetch)
}

// StartAutoRefresh schedules periodic refetches with a cron spec
// (e.g. "*/5 * * * *"). Stops on Close.
func (e *Editor) StartAutoRefresh(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, e.Refresh); err != nil {
		return err
	}

	e.mu.Lock()
	e.cron = c
	e.mu.Unlock()

	c.Start()
	return nil
}

// Wait blocks until all in-flight mutations have settled.
func (e *Editor) Wait() {
	e.wg.Wait()
}

// Close tears the editor down. In-flight requests may still settle, but
// their continuations no longer touch shared state.
func (e *Editor) Close() {
	e.mu.Lock()
	if e.cron != nil {
		e.cron.Stop()
		e.cron = nil
	}
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
}

func (e *Editor) closedNow() bool {
	return e.ctx.Err() != nil
}

// dispatch runs fn on the mutation channel without blocking the caller.
func (e *Editor) dispatch(fn func(ctx context.Context)) {
	if e.closedNow() {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		fn(e.ctx)
	}()
}

func (e *Editor) refetch(ctx context.Context) {
	if e.closedNow() {
		return
	}
	// Refetch errors keep the previous snapshot; already logged by the cache.
	_ = e.cache.InvalidateAndRefetch(ctx)
}

// Ensure the RPC client satisfies the mutation channel.
var _ Channel = (*rpc.Client)(nil)
