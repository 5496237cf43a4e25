package config

import (
	"errors"
	"fmt"
)

// ErrLayerNotFound is returned when a Tiled map has no layer of the requested name.
var ErrLayerNotFound = errors.New("layer not found")

// TiledMap is the subset of the Tiled JSON map format the game reads.
type TiledMap struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	TileWidth  int            `json:"tilewidth"`
	TileHeight int            `json:"tileheight"`
	Layers     []TiledLayer   `json:"layers"`
	Tilesets   []TiledTileset `json:"tilesets"`
}

type TiledLayer struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []int  `json:"data"`
}

type TiledTileset struct {
	FirstGID  int         `json:"firstgid"`
	Name      string      `json:"name"`
	TileCount int         `json:"tilecount"`
	Tiles     []TiledTile `json:"tiles"`
}

type TiledTile struct {
	ID         int             `json:"id"`
	Properties []TiledProperty `json:"properties"`
}

type TiledProperty struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Layer returns the tile layer with the given name.
func (m *TiledMap) Layer(name string) (*TiledLayer, error) {
	for i := range m.Layers {
		if m.Layers[i].Name == name {
			return &m.Layers[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrLayerNotFound)
}

// PropertyMap flattens tile properties to strings, keyed by local tile ID.
func (ts TiledTileset) PropertyMap() map[int]map[string]string {
	out := make(map[int]map[string]string, len(ts.Tiles))
	for _, tile := range ts.Tiles {
		if len(tile.Properties) == 0 {
			continue
		}
		props := make(map[string]string, len(tile.Properties))
		for _, p := range tile.Properties {
			props[p.Name] = fmt.Sprint(p.Value)
		}
		out[tile.ID] = props
	}
	return out
}
