package system

import (
	"fmt"
	"log"
	"math"

	"github.com/younwookim/pixelrun/internal/domain/anim"
	"github.com/younwookim/pixelrun/internal/domain/tilemap"
	"github.com/younwookim/pixelrun/internal/ecs"
	"github.com/younwookim/pixelrun/internal/infrastructure/config"
)

// LoadLevel converts a Tiled map into a collision tilemap. Tiles whose
// CollideProperty matches one of CollideValues are solid.
func LoadLevel(m *config.TiledMap, lv config.LevelConfig) (*tilemap.Tilemap, error) {
	layer, err := m.Layer(lv.Layer)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", lv.Map, err)
	}

	tilesets := make([]tilemap.Tileset, 0, len(m.Tilesets))
	for _, ts := range m.Tilesets {
		tilesets = append(tilesets, tilemap.Tileset{
			Name:       ts.Name,
			FirstGID:   ts.FirstGID,
			TileCount:  ts.TileCount,
			Properties: ts.PropertyMap(),
		})
	}

	tm, err := tilemap.New(m.Width, m.Height, m.TileWidth, m.TileHeight, layer.Name, layer.Data, tilesets)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", lv.Map, err)
	}

	if lv.CollideProperty != "" {
		n := tm.SetCollisionByProperty(lv.CollideProperty, lv.CollideValues...)
		if n == 0 {
			log.Printf("[Level] %s: no tile has %s in %v", lv.Map, lv.CollideProperty, lv.CollideValues)
		}
	}
	return tm, nil
}

// Textures maps texture keys to the size of one frame.
type Textures map[string]ecs.SpriteSpec

// NewTextures builds sprite specs from the texture table.
func NewTextures(cfg map[string]config.TextureConfig) Textures {
	t := make(Textures, len(cfg))
	for key, tex := range cfg {
		t[key] = ecs.SpriteSpec{Texture: key, Width: tex.Width, Height: tex.Height}
	}
	return t
}

// Spec returns the sprite spec for key scaled by scale (0 means 1).
func (t Textures) Spec(key string, scale float64) (ecs.SpriteSpec, error) {
	spec, ok := t[key]
	if !ok {
		return ecs.SpriteSpec{}, fmt.Errorf("texture %q is not loaded", key)
	}
	if scale > 0 {
		spec.ScalePct = int(math.Round(scale * 100))
	}
	return spec, nil
}

// RegisterAnim creates the animation key from its texture's frame count.
func RegisterAnim(reg *anim.Registry, key string, a config.AnimConfig, textures map[string]config.TextureConfig) error {
	tex, ok := textures[a.Texture]
	if !ok {
		return fmt.Errorf("animation %s: texture %q is not loaded", key, a.Texture)
	}
	frames := tex.Frames
	if frames <= 0 {
		frames = 1
	}
	if _, err := reg.Create(key, a.Texture, frames, a.FrameRate, a.Repeat); err != nil {
		return fmt.Errorf("animation %s: %w", key, err)
	}
	return nil
}
