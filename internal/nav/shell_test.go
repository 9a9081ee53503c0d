package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialState(t *testing.T) {
	s := NewShell()
	assert.Equal(t, "dashboard", s.Active())
	assert.True(t, s.Expanded("access"))
	assert.True(t, s.Expanded("products"))
	assert.False(t, s.Overlay())
}

func TestSelectParentTogglesWithoutChangingActive(t *testing.T) {
	s := NewShell()
	require.NoError(t, s.Select("roles"))

	require.NoError(t, s.Select("products"))
	assert.False(t, s.Expanded("products"))
	assert.Equal(t, "roles", s.Active())

	require.NoError(t, s.Select("products"))
	assert.True(t, s.Expanded("products"))
	assert.Equal(t, "roles", s.Active())
}

func TestSelectLeafActivatesAndClosesOverlay(t *testing.T) {
	s := NewShell()
	s.ToggleOverlay()
	require.True(t, s.Overlay())

	require.NoError(t, s.Select("categories"))
	assert.Equal(t, "categories", s.Active())
	assert.False(t, s.Overlay())
}

func TestSelectUnknown(t *testing.T) {
	s := NewShell()
	require.ErrorIs(t, s.Select("kitchen"), ErrUnknownItem)
	assert.Equal(t, "dashboard", s.Active())
}

func TestReset(t *testing.T) {
	s := NewShell()
	require.NoError(t, s.Select("tables"))
	require.NoError(t, s.Select("access"))
	s.ToggleOverlay()

	s.Reset()
	assert.Equal(t, "dashboard", s.Active())
	assert.True(t, s.Expanded("access"))
	assert.False(t, s.Overlay())
}

func TestExactlyOneActiveLeaf(t *testing.T) {
	s := NewShell()
	for _, id := range []string{"users", "products-list", "tables", "dashboard", "permissions"} {
		require.NoError(t, s.Select(id))
		v := s.View()
		active := 0
		for _, e := range v.Entries {
			if !e.Parent && e.Active {
				active++
			}
			for _, c := range e.Children {
				if c.Active {
					active++
				}
			}
		}
		assert.Equal(t, 1, active, id)
		assert.Equal(t, id, v.Active)
	}
}

func TestViewMarksParentOfActiveLeaf(t *testing.T) {
	s := NewShell()
	require.NoError(t, s.Select("products-list"))
	v := s.View()
	require.Len(t, v.Entries, 4)
	products := v.Entries[3]
	assert.True(t, products.Parent)
	assert.True(t, products.Active)
	assert.True(t, products.Expanded)
	assert.Equal(t, "Products", v.Title())
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/", Path("dashboard"))
	assert.Equal(t, "/products", Path("products-list"))
	assert.Equal(t, "", Path("products"))
	assert.Equal(t, "", Path("nope"))
}
