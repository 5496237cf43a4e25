package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 4x3 map of 32px tiles:
//
//	. . . .
//	. 2 . .
//	1 1 1 3
func newTestMap(t *testing.T) *Tilemap {
	t.Helper()
	m, err := New(4, 3, 32, 32, "Tile Layer", []int{
		0, 0, 0, 0,
		0, 2, 0, 0,
		1, 1, 1, 3,
	}, []Tileset{{
		Name:      "terrain",
		FirstGID:  1,
		TileCount: 3,
		Properties: map[int]map[string]string{
			0: {"type": "ground"},
			1: {"type": "decoration"},
			2: {"type": "ground"},
		},
	}})
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m := newTestMap(t)
		assert.Equal(t, 128, m.PixelWidth())
		assert.Equal(t, 96, m.PixelHeight())
		assert.Equal(t, "Tile Layer", m.Layer)
	})

	t.Run("size mismatch", func(t *testing.T) {
		_, err := New(2, 2, 32, 32, "layer", []int{1, 2, 3}, nil)
		assert.ErrorIs(t, err, ErrSizeMismatch)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := New(0, 2, 32, 32, "layer", nil, nil)
		assert.Error(t, err)
	})
}

func TestGIDAt(t *testing.T) {
	m := newTestMap(t)

	assert.Equal(t, 2, m.GIDAt(1, 1))
	assert.Equal(t, 3, m.GIDAt(3, 2))
	assert.Equal(t, 0, m.GIDAt(-1, 0))
	assert.Equal(t, 0, m.GIDAt(4, 0))
}

func TestTileProperty(t *testing.T) {
	m := newTestMap(t)

	v, ok := m.TileProperty(2, "type")
	assert.True(t, ok)
	assert.Equal(t, "decoration", v)

	_, ok = m.TileProperty(2, "missing")
	assert.False(t, ok)

	_, ok = m.TileProperty(99, "type")
	assert.False(t, ok)
}

func TestTilesetOf(t *testing.T) {
	m := newTestMap(t)

	ts, ok := m.TilesetOf(3)
	require.True(t, ok)
	assert.Equal(t, "terrain", ts.Name)

	_, ok = m.TilesetOf(0)
	assert.False(t, ok)
}

func TestSetCollisionByProperty(t *testing.T) {
	m := newTestMap(t)

	assert.False(t, m.IsSolidTile(0, 2), "nothing collides before collision is set")

	marked := m.SetCollisionByProperty("type", "ground")
	assert.Equal(t, 2, marked)

	assert.True(t, m.IsSolidTile(0, 2))
	assert.True(t, m.IsSolidTile(3, 2))
	assert.False(t, m.IsSolidTile(1, 1), "decoration does not collide")
	assert.False(t, m.IsSolidTile(0, 0), "empty tile does not collide")
	assert.Len(t, m.SolidTiles(), 4)
}

func TestSetCollision(t *testing.T) {
	m := newTestMap(t)
	m.SetCollision(2, 0)

	assert.True(t, m.IsSolidTile(1, 1))
	assert.False(t, m.IsSolidTile(0, 0))
}

func TestIsSolidAtAndRect(t *testing.T) {
	m := newTestMap(t)
	m.SetCollisionByProperty("type", "ground")

	tests := []struct {
		name       string
		x, y, w, h int
		want       bool
	}{
		{"above ground", 0, 32, 32, 32, false},
		{"touching ground by one pixel", 0, 33, 32, 32, true},
		{"inside ground", 40, 70, 4, 4, true},
		{"outside the map left", -64, 64, 32, 32, false},
		{"straddling map edge", -16, 64, 32, 32, true},
		{"below the map", 0, 200, 32, 32, false},
		{"empty rect", 0, 64, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.IsSolidRect(tt.x, tt.y, tt.w, tt.h))
		})
	}

	assert.True(t, m.IsSolidAt(0, 64))
	assert.False(t, m.IsSolidAt(0, 63))
	assert.False(t, m.IsSolidAt(-1, 64))
}
