package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/catalog"
	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

func TestAddRemove(t *testing.T) {
	c := New(catalog.StaticMenu())

	require.NoError(t, c.Add(1))
	require.NoError(t, c.Add(1))
	require.NoError(t, c.Add(5))
	assert.Equal(t, 2, c.Quantity(1))
	assert.Equal(t, 3, c.Count())
	assert.Equal(t, int64(2*250+100), c.Total())

	require.NoError(t, c.Remove(1))
	assert.Equal(t, 1, c.Quantity(1))
	require.NoError(t, c.Remove(1))
	assert.Equal(t, 0, c.Quantity(1))

	// floored at zero
	require.NoError(t, c.Remove(1))
	assert.Equal(t, 0, c.Quantity(1))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(5), lines[0].Item.ID)
	assert.Equal(t, int64(100), lines[0].Subtotal)
}

func TestUnknownItem(t *testing.T) {
	c := New(catalog.StaticMenu())
	assert.ErrorIs(t, c.Add(99), ErrUnknownItem)
	assert.ErrorIs(t, c.Remove(99), ErrUnknownItem)
	assert.Zero(t, c.Count())
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := New(catalog.StaticMenu())
	for _, id := range []int64{4, 2, 6, 2} {
		require.NoError(t, c.Add(id))
	}
	var ids []int64
	for _, l := range c.Lines() {
		ids = append(ids, l.Item.ID)
	}
	assert.Equal(t, []int64{4, 2, 6}, ids)
}

func TestClear(t *testing.T) {
	c := New(catalog.StaticMenu())
	require.NoError(t, c.Add(3))
	c.Clear()
	c.Clear()
	assert.Empty(t, c.Lines())
	assert.Zero(t, c.Total())
}

func TestFilter(t *testing.T) {
	menu := catalog.StaticMenu()
	assert.Len(t, Filter(menu, model.CategoryAll), 6)
	assert.Len(t, Filter(menu, model.CategoryPopcorn), 2)
	for _, it := range Filter(menu, model.CategoryDrinks) {
		assert.Equal(t, model.CategoryDrinks, it.Category)
	}
	assert.Empty(t, Filter(menu, "desserts"))
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := New(catalog.StaticMenu())
	require.NoError(t, c.Add(2))
	require.NoError(t, c.Add(6))
	require.NoError(t, c.Add(2))

	raw, err := json.Marshal(c.Snapshot())
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))

	restored, err := FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, c.Lines(), restored.Lines())
	assert.Equal(t, c.Total(), restored.Total())
}

func TestFromSnapshotRejectsBadItems(t *testing.T) {
	menu := catalog.StaticMenu()
	_, err := FromSnapshot(Snapshot{Menu: menu, Items: []Item{{ID: 42, Quantity: 1}}})
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = FromSnapshot(Snapshot{Menu: menu, Items: []Item{{ID: 1, Quantity: 0}}})
	assert.Error(t, err)
}
