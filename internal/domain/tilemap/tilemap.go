// Package tilemap holds the level geometry bodies collide with.
package tilemap

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned when layer data does not cover the map.
var ErrSizeMismatch = errors.New("layer data does not match map size")

// Tileset maps a range of global tile IDs to per-tile properties.
type Tileset struct {
	Name       string
	FirstGID   int
	TileCount  int
	Properties map[int]map[string]string // local tile ID -> name -> value
}

// Contains reports whether gid belongs to this tileset.
func (ts Tileset) Contains(gid int) bool {
	return gid >= ts.FirstGID && gid < ts.FirstGID+ts.TileCount
}

// Tilemap is a single collision layer of a tile grid.
type Tilemap struct {
	Width, Height         int // tiles
	TileWidth, TileHeight int // pixels
	Layer                 string

	data      []int // GIDs, row-major, 0 = empty
	tilesets  []Tileset
	colliding map[int]bool
}

// New creates a tilemap from a row-major GID layer.
func New(width, height, tileWidth, tileHeight int, layer string, data []int, tilesets []Tileset) (*Tilemap, error) {
	if width <= 0 || height <= 0 || tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d (tile %dx%d)", width, height, tileWidth, tileHeight)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("layer %q has %d tiles, want %d: %w", layer, len(data), width*height, ErrSizeMismatch)
	}

	cells := make([]int, len(data))
	copy(cells, data)

	return &Tilemap{
		Width:      width,
		Height:     height,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Layer:      layer,
		data:       cells,
		tilesets:   tilesets,
		colliding:  make(map[int]bool),
	}, nil
}

// PixelWidth returns the map width in pixels.
func (m *Tilemap) PixelWidth() int { return m.Width * m.TileWidth }

// PixelHeight returns the map height in pixels.
func (m *Tilemap) PixelHeight() int { return m.Height * m.TileHeight }

// GIDAt returns the global tile ID at tile coordinates (0 outside the map).
func (m *Tilemap) GIDAt(tx, ty int) int {
	if tx < 0 || tx >= m.Width || ty < 0 || ty >= m.Height {
		return 0
	}
	return m.data[ty*m.Width+tx]
}

// TilesetOf returns the tileset gid belongs to.
func (m *Tilemap) TilesetOf(gid int) (Tileset, bool) {
	for _, ts := range m.tilesets {
		if ts.Contains(gid) {
			return ts, true
		}
	}
	return Tileset{}, false
}

// TileProperty looks up a custom property of a tile.
func (m *Tilemap) TileProperty(gid int, name string) (string, bool) {
	for _, ts := range m.tilesets {
		if !ts.Contains(gid) {
			continue
		}
		props, ok := ts.Properties[gid-ts.FirstGID]
		if !ok {
			return "", false
		}
		v, ok := props[name]
		return v, ok
	}
	return "", false
}

// SetCollision marks the given GIDs as solid.
func (m *Tilemap) SetCollision(gids ...int) {
	for _, gid := range gids {
		if gid > 0 {
			m.colliding[gid] = true
		}
	}
}

// SetCollisionByProperty marks every tile whose property name has one of
// values as solid. It returns the number of tile types marked.
func (m *Tilemap) SetCollisionByProperty(name string, values ...string) int {
	want := make(map[string]bool, len(values))
	for _, v := range values {
		want[v] = true
	}

	marked := 0
	for _, ts := range m.tilesets {
		for local, props := range ts.Properties {
			if v, ok := props[name]; ok && want[v] {
				m.colliding[ts.FirstGID+local] = true
				marked++
			}
		}
	}
	return marked
}

// IsSolidTile checks the tile at tile coordinates.
func (m *Tilemap) IsSolidTile(tx, ty int) bool {
	gid := m.GIDAt(tx, ty)
	return gid != 0 && m.colliding[gid]
}

// IsSolidAt checks if the pixel position is solid
func (m *Tilemap) IsSolidAt(px, py int) bool {
	if px < 0 || py < 0 {
		return false
	}
	return m.IsSolidTile(px/m.TileWidth, py/m.TileHeight)
}

// IsSolidRect checks whether any tile under the pixel rectangle is solid.
func (m *Tilemap) IsSolidRect(x, y, w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	x0, y0 := floorDiv(x, m.TileWidth), floorDiv(y, m.TileHeight)
	x1, y1 := floorDiv(x+w-1, m.TileWidth), floorDiv(y+h-1, m.TileHeight)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if m.IsSolidTile(tx, ty) {
				return true
			}
		}
	}
	return false
}

// SolidTiles returns the tile coordinates of every solid tile, row by row.
func (m *Tilemap) SolidTiles() [][2]int {
	var out [][2]int
	for ty := 0; ty < m.Height; ty++ {
		for tx := 0; tx < m.Width; tx++ {
			if m.IsSolidTile(tx, ty) {
				out = append(out, [2]int{tx, ty})
			}
		}
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
