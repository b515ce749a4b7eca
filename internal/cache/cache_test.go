package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedulist/schedulist/internal/models"
)

func group(ids ...int64) []models.Group {
	items := make([]models.EventType, len(ids))
	for i, id := range ids {
		items[i] = models.EventType{ID: id, Title: "evt", Slug: "evt", Length: 30}
	}
	return []models.Group{{ProfileID: 1, Slug: "alice", Name: "Alice", Items: items}}
}

func TestGetBeforeLoad(t *testing.T) {
	c := NewCollection(func(context.Context) ([]models.Group, error) {
		return group(1), nil
	})

	_, ok := c.Get()
	assert.False(t, ok)
}

func TestRefetchLoadsServerTruth(t *testing.T) {
	c := NewCollection(func(context.Context) ([]models.Group, error) {
		return group(1, 2), nil
	})

	require.NoError(t, c.InvalidateAndRefetch(context.Background()))

	groups, ok := c.Get()
	require.True(t, ok)
	assert.Len(t, groups[0].Items, 2)
}

func TestOptimisticThenRefetchReconciles(t *testing.T) {
	server := group(1, 2, 3)
	c := NewCollection(func(context.Context) ([]models.Group, error) {
		return server, nil
	})
	require.NoError(t, c.InvalidateAndRefetch(context.Background()))

	// Optimistic projection differs from server truth.
	c.SetOptimistic(group(3, 2, 1))
	groups, _ := c.Get()
	assert.Equal(t, int64(3), groups[0].Items[0].ID)

	// Settle: refetch restores the authoritative order.
	require.NoError(t, c.InvalidateAndRefetch(context.Background()))
	groups, _ = c.Get()
	assert.Equal(t, int64(1), groups[0].Items[0].ID)
}

func TestRefetchFailureKeepsSnapshot(t *testing.T) {
	calls := 0
	c := NewCollection(func(context.Context) ([]models.Group, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("server down")
		}
		return group(1), nil
	})
	require.NoError(t, c.InvalidateAndRefetch(context.Background()))

	err := c.InvalidateAndRefetch(context.Background())
	assert.Error(t, err)

	groups, ok := c.Get()
	require.True(t, ok)
	assert.Len(t, groups[0].Items, 1)
}

func TestSubscribersNotifiedOnEveryChange(t *testing.T) {
	c := NewCollection(func(context.Context) ([]models.Group, error) {
		return group(1), nil
	})

	notified := 0
	c.Subscribe(func() { notified++ })

	require.NoError(t, c.InvalidateAndRefetch(context.Background()))
	c.SetOptimistic(group(2))
	assert.Equal(t, 2, notified)
}

func TestCloseMakesLateSettlesNoOps(t *testing.T) {
	c := NewCollection(func(context.Context) ([]models.Group, error) {
		return group(1), nil
	})

	notified := 0
	c.Subscribe(func() { notified++ })
	c.Close()

	// A settle racing with teardown must not resurrect the view's state.
	require.NoError(t, c.InvalidateAndRefetch(context.Background()))
	c.SetOptimistic(group(9))

	_, ok := c.Get()
	assert.False(t, ok)
	assert.Zero(t, notified)
}
