package editor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedulist/schedulist/internal/cache"
	"github.com/schedulist/schedulist/internal/models"
	"github.com/schedulist/schedulist/internal/ordering"
)

// fakeBackend plays both the mutation channel and the fetch side of one
// in-memory collection, so settles observe realistic server state.
type fakeBackend struct {
	mu    sync.Mutex
	items []models.EventType

	reorders   [][]int64
	hiddenSets []struct {
		ID     int64
		Hidden bool
	}
	deletes []int64

	reorderErr error
	hiddenErr  error
	deleteErr  error
}

func newBackend(ids ...int64) *fakeBackend {
	b := &fakeBackend{}
	for i, id := range ids {
		b.items = append(b.items, models.EventType{
			ID: id, Title: "evt", Slug: "evt", Length: 30, Position: i,
		})
	}
	return b
}

func (b *fakeBackend) fetch(context.Context) ([]models.Group, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]models.EventType, len(b.items))
	copy(items, b.items)
	return []models.Group{{ProfileID: 1, Slug: "alice", Name: "Alice", Items: items}}, nil
}

func (b *fakeBackend) Reorder(_ context.Context, _ int64, ids []int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reorders = append(b.reorders, ids)
	if b.reorderErr != nil {
		return b.reorderErr
	}
	byID := make(map[int64]models.EventType, len(b.items))
	for _, it := range b.items {
		byID[it.ID] = it
	}
	next := make([]models.EventType, 0, len(ids))
	for i, id := range ids {
		it := byID[id]
		it.Position = i
		next = append(next, it)
	}
	b.items = next
	return nil
}

func (b *fakeBackend) SetHidden(_ context.Context, id int64, hidden bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hiddenSets = append(b.hiddenSets, struct {
		ID     int64
		Hidden bool
	}{id, hidden})
	if b.hiddenErr != nil {
		return b.hiddenErr
	}
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Hidden = hidden
		}
	}
	return nil
}

func (b *fakeBackend) Delete(_ context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deletes = append(b.deletes, id)
	if b.deleteErr != nil {
		return b.deleteErr
	}
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			break
		}
	}
	return nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func setup(t *testing.T, backend *fakeBackend) (*Editor, *cache.Collection, *fakeNotifier) {
	t.Helper()

	coll := cache.NewCollection(backend.fetch)
	require.NoError(t, coll.InvalidateAndRefetch(context.Background()))

	notify := &fakeNotifier{}
	ed := New(backend, coll, notify)
	t.Cleanup(ed.Close)

	return ed, coll, notify
}

func cachedIDs(t *testing.T, coll *cache.Collection) []int64 {
	t.Helper()
	groups, ok := coll.Get()
	require.True(t, ok)
	return ordering.IDs(groups[0].Items)
}

func TestMoveEventTypeSwapsAndSendsFullOrder(t *testing.T) {
	backend := newBackend(1, 2, 3)
	ed, coll, _ := setup(t, backend)

	ed.MoveEventType(0, 1, ordering.Up)
	ed.Wait()

	require.Len(t, backend.reorders, 1)
	assert.Equal(t, []int64{2, 1, 3}, backend.reorders[0])
	assert.Equal(t, []int64{2, 1, 3}, cachedIDs(t, coll))
}

func TestMoveOutOfBoundsSendsNothing(t *testing.T) {
	backend := newBackend(1, 2, 3)
	ed, coll, _ := setup(t, backend)

	ed.MoveEventType(0, 0, ordering.Up)   // first element upward
	ed.MoveEventType(0, 2, ordering.Down) // last element downward
	ed.MoveEventType(0, 7, ordering.Up)   // index out of range
	ed.MoveEventType(5, 0, ordering.Down) // group out of range
	ed.Wait()

	assert.Empty(t, backend.reorders)
	assert.Equal(t, []int64{1, 2, 3}, cachedIDs(t, coll))
}

func TestMoveSingleElementIsNoOp(t *testing.T) {
	backend := newBackend(1)
	ed, coll, _ := setup(t, backend)

	ed.MoveEventType(0, 0, ordering.Up)
	ed.Wait()

	assert.Empty(t, backend.reorders)
	assert.Equal(t, []int64{1}, cachedIDs(t, coll))
}

func TestMoveAppliesOptimisticallyBeforeSettle(t *testing.T) {
	backend := newBackend(1, 2, 3)
	ed, coll, _ := setup(t, backend)

	ed.MoveEventType(0, 1, ordering.Down)

	// Visible immediately, without waiting for the reorder to settle.
	assert.Equal(t, []int64{1, 3, 2}, cachedIDs(t, coll))
	ed.Wait()
}

func TestMoveFailureRestoresServerOrderWithoutToast(t *testing.T) {
	backend := newBackend(1, 2, 3)
	backend.reorderErr = errors.New("boom")
	ed, coll, notify := setup(t, backend)

	ed.MoveEventType(0, 1, ordering.Up)
	ed.Wait()

	// The optimistic projection is discarded by the settle refetch.
	assert.Equal(t, []int64{1, 2, 3}, cachedIDs(t, coll))
	assert.Empty(t, notify.errors)
	assert.Empty(t, notify.successes)
}

func TestMoveOnReadOnlyGroupIsIgnored(t *testing.T) {
	backend := newBackend(1, 2)
	ed, coll, _ := setup(t, backend)

	groups, _ := coll.Get()
	groups[0].ReadOnly = true
	coll.SetOptimistic(groups)

	ed.MoveEventType(0, 1, ordering.Up)
	ed.Wait()

	assert.Empty(t, backend.reorders)
}

func TestToggleHiddenSendsNegatedFlagAndRefetches(t *testing.T) {
	backend := newBackend(1, 2)
	ed, coll, notify := setup(t, backend)

	ed.ToggleHidden(2, false)
	ed.Wait()

	require.Len(t, backend.hiddenSets, 1)
	assert.Equal(t, int64(2), backend.hiddenSets[0].ID)
	assert.True(t, backend.hiddenSets[0].Hidden)

	groups, _ := coll.Get()
	assert.True(t, groups[0].Items[1].Hidden)
	assert.Empty(t, notify.errors)
}

func TestToggleHiddenFailureIsSilent(t *testing.T) {
	backend := newBackend(1)
	backend.hiddenErr = errors.New("boom")
	ed, _, notify := setup(t, backend)

	ed.ToggleHidden(1, false)
	ed.Wait()

	assert.Empty(t, notify.errors)
}

func TestDeleteHappyPath(t *testing.T) {
	backend := newBackend(1, 2, 3)
	ed, coll, notify := setup(t, backend)

	ed.OpenDeleteDialog(2)
	assert.Equal(t, DeleteDialog{State: DialogOpen, TargetID: 2}, ed.Dialog())

	ed.ConfirmDelete()
	ed.Wait()

	assert.Equal(t, []int64{1, 3}, cachedIDs(t, coll))
	assert.Equal(t, DeleteDialog{}, ed.Dialog())
	assert.Equal(t, []string{"Event type deleted"}, notify.successes)
}

func TestDeleteStructuredErrorClosesDialog(t *testing.T) {
	backend := newBackend(1, 2)
	backend.deleteErr = connect.NewError(connect.CodeNotFound, errors.New("Not Found"))
	ed, _, notify := setup(t, backend)

	ed.OpenDeleteDialog(2)
	ed.ConfirmDelete()
	ed.Wait()

	assert.Equal(t, DeleteDialog{}, ed.Dialog())
	require.Len(t, notify.errors, 1)
	assert.Equal(t, "not_found: Not Found", notify.errors[0])
}

func TestDeleteTransportErrorKeepsDialogOpen(t *testing.T) {
	backend := newBackend(1, 2)
	backend.deleteErr = errors.New("connection reset")
	ed, _, notify := setup(t, backend)

	ed.OpenDeleteDialog(2)
	ed.ConfirmDelete()
	ed.Wait()

	// Loading is reset and the user can retry or cancel in place.
	assert.Equal(t, DeleteDialog{State: DialogOpen, TargetID: 2}, ed.Dialog())
	require.Len(t, notify.errors, 1)
	assert.Equal(t, "connection reset", notify.errors[0])
}

func TestCancelClearsTarget(t *testing.T) {
	backend := newBackend(1)
	ed, _, _ := setup(t, backend)

	ed.OpenDeleteDialog(1)
	ed.CancelDeleteDialog()

	assert.Equal(t, DeleteDialog{}, ed.Dialog())

	// Confirming a closed dialog must not send anything.
	ed.ConfirmDelete()
	ed.Wait()
	assert.Empty(t, backend.deletes)
}

func TestDoubleConfirmSendsOneRequest(t *testing.T) {
	backend := newBackend(1)
	ed, _, _ := setup(t, backend)

	ed.OpenDeleteDialog(1)
	ed.ConfirmDelete()
	ed.ConfirmDelete()
	ed.Wait()

	assert.Len(t, backend.deletes, 1)
}

func TestClosedEditorDispatchesNothing(t *testing.T) {
	backend := newBackend(1, 2)
	coll := cache.NewCollection(backend.fetch)
	require.NoError(t, coll.InvalidateAndRefetch(context.Background()))
	ed := New(backend, coll, &fakeNotifier{})

	ed.Close()
	ed.MoveEventType(0, 1, ordering.Up)
	ed.ToggleHidden(1, false)
	ed.Wait()

	assert.Empty(t, backend.reorders)
	assert.Empty(t, backend.hiddenSets)
}
