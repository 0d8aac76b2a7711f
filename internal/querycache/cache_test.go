package querycache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowlnow/crm/internal/querycache"
)

type record struct {
	ID     string
	Status string
}

func newCache(items ...record) *querycache.Cache[record] {
	c := querycache.New(func(r record) string { return r.ID })
	c.Replace(items)

	return c
}

func TestCache_Mutate_OptimisticThenPersisted(t *testing.T) {
	c := newCache(
		record{ID: "a", Status: "prospect"},
		record{ID: "b", Status: "prospect"},
	)

	var observed [][]record

	cancel := c.Subscribe(func(state []record) {
		observed = append(observed, state)
	})
	defer cancel()

	persisted, err := c.Mutate(context.Background(), "a",
		func(r record) record {
			r.Status = "active"
			return r
		},
		func(_ context.Context, r record) (record, error) {
			// The store echoes back the authoritative row.
			return r, nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "active", persisted.Status)

	// Subscribers saw the optimistic state before persistence finished.
	require.NotEmpty(t, observed)
	assert.Equal(t, "active", observed[0][0].Status)

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "active", got.Status)
}

func TestCache_Mutate_RollsBackOnPersistFailure(t *testing.T) {
	before := []record{
		{ID: "a", Status: "prospect"},
		{ID: "b", Status: "active"},
		{ID: "c", Status: "past_due"},
	}

	c := newCache(before...)

	_, err := c.Mutate(context.Background(), "b",
		func(r record) record {
			r.Status = "canceled"
			return r
		},
		func(_ context.Context, _ record) (record, error) {
			return record{}, errors.New("store unavailable")
		},
	)
	require.Error(t, err)

	assert.Equal(t, before, c.Items(), "failed mutation must leave the collection untouched")
}

func TestCache_Mutate_UnknownKey(t *testing.T) {
	c := newCache(record{ID: "a"})

	_, err := c.Mutate(context.Background(), "missing",
		func(r record) record { return r },
		func(_ context.Context, r record) (record, error) { return r, nil },
	)

	assert.ErrorIs(t, err, querycache.ErrNotCached)
}

func TestCache_Replace_KeepsOrder(t *testing.T) {
	c := newCache(record{ID: "z"}, record{ID: "a"}, record{ID: "m"})

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "z", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "m", items[2].ID)
}

func TestCache_Subscribe_CancelStopsNotifications(t *testing.T) {
	c := newCache(record{ID: "a"})

	var calls int

	cancel := c.Subscribe(func(_ []record) { calls++ })

	c.Replace([]record{{ID: "a", Status: "active"}})
	require.Equal(t, 1, calls)

	cancel()

	c.Replace([]record{{ID: "a", Status: "canceled"}})
	assert.Equal(t, 1, calls)
}
