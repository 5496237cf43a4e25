package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadGame(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Display.ScreenWidth)
	assert.Equal(t, 160, cfg.Display.PanelHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 10, cfg.Physics.Substeps)
	assert.Equal(t, 300.0, cfg.Physics.Gravity)

	lv := cfg.Level
	assert.Equal(t, "levels/level1.json", lv.Map)
	assert.Equal(t, "Tile Layer", lv.Layer)
	assert.Equal(t, []string{"ground"}, lv.CollideValues)
	assert.Equal(t, 100, lv.Player.X)
	assert.Equal(t, 450, lv.Player.Y)
	assert.Equal(t, 14, lv.Stars.Repeat)
	assert.Equal(t, 90, lv.Stars.StepX)
	assert.Equal(t, 100.0, lv.Health.Initial)
	assert.Len(t, lv.Enemies, 2)
	assert.Equal(t, 20, lv.Bullets.Pool)
	assert.Equal(t, "F", lv.Bullets.FireKey)
	assert.Equal(t, 60.0, lv.Chaser.Speed)
	assert.Len(t, lv.Apples, 2)
	assert.Equal(t, 15000, lv.Immunity.DurationMs)
	assert.Equal(t, 1500, lv.Goal.X)
	assert.Equal(t, []string{"Fire", "Jump"}, lv.Controls.Buttons)

	star, ok := cfg.Textures["star"]
	require.True(t, ok)
	assert.Equal(t, 24, star.Width)
}

func TestLoader_LoadLevel(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	m, err := loader.LoadLevel("levels/level1.json")
	require.NoError(t, err)

	assert.Equal(t, 50, m.Width)
	assert.Equal(t, 19, m.Height)
	assert.Equal(t, 32, m.TileWidth)

	layer, err := m.Layer("Tile Layer")
	require.NoError(t, err)
	assert.Len(t, layer.Data, m.Width*m.Height)

	require.Len(t, m.Tilesets, 1)
	props := m.Tilesets[0].PropertyMap()
	assert.Equal(t, "ground", props[0]["type"])
}

func TestLoader_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"game.yaml":       {Data: []byte("display: [unclosed")},
		"levels/bad.json": {Data: []byte("{not json")},
	}
	loader := NewFSLoader(fsys, ".")

	_, err := loader.LoadGame()
	assert.Error(t, err)

	_, err = loader.LoadLevel("levels/missing.json")
	assert.Error(t, err)

	_, err = loader.LoadLevel("levels/bad.json")
	assert.Error(t, err)
}

func TestLoader_MissingGameFile(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{}, ".")

	_, err := loader.LoadGame()
	assert.Error(t, err)
}

func validConfig() GameConfig {
	return GameConfig{
		Display: DisplayConfig{ScreenWidth: 800, Framerate: 60},
		Physics: PhysicsSettings{Substeps: 10},
		Textures: map[string]TextureConfig{
			"star": {Width: 24, Height: 22, Frames: 1},
		},
		Level: LevelConfig{
			Map:   "levels/level1.json",
			Stars: StarsConfig{Key: "star", BounceMin: 0.1, BounceMax: 0.3},
		},
	}
}

func TestGameConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *GameConfig)
	}{
		{"no screen width", func(c *GameConfig) { c.Display.ScreenWidth = 0 }},
		{"no framerate", func(c *GameConfig) { c.Display.Framerate = 0 }},
		{"no substeps", func(c *GameConfig) { c.Physics.Substeps = 0 }},
		{"no map", func(c *GameConfig) { c.Level.Map = "" }},
		{"negative pool", func(c *GameConfig) { c.Level.Bullets.Pool = -1 }},
		{"inverted bounce range", func(c *GameConfig) { c.Level.Stars.BounceMin = 0.5 }},
		{"texture without size", func(c *GameConfig) { c.Textures["star"] = TextureConfig{} }},
		{"undefined texture", func(c *GameConfig) { c.Level.Goal.Key = "flag" }},
	}

	base := validConfig()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDifficultyMultiplier(t *testing.T) {
	d := DifficultyConfig{DamageMultipliers: []float64{0.5, 1, 2, 1}}

	assert.Equal(t, 0.5, d.Multiplier(0))
	assert.Equal(t, 2.0, d.Multiplier(2))
	assert.Equal(t, 1.0, d.Multiplier(3))
	assert.Equal(t, 1.0, d.Multiplier(-1))
	assert.Equal(t, 1.0, d.Multiplier(9))
	assert.Equal(t, 1.0, DifficultyConfig{}.Multiplier(0))
}

func TestTiledMap_Layer(t *testing.T) {
	m := &TiledMap{Layers: []TiledLayer{{Name: "Background"}, {Name: "Tile Layer"}}}

	layer, err := m.Layer("Tile Layer")
	require.NoError(t, err)
	assert.Equal(t, "Tile Layer", layer.Name)

	_, err = m.Layer("Objects")
	assert.ErrorIs(t, err, ErrLayerNotFound)
}

func TestTiledTileset_PropertyMap(t *testing.T) {
	ts := TiledTileset{Tiles: []TiledTile{
		{ID: 0, Properties: []TiledProperty{{Name: "type", Type: "string", Value: "ground"}}},
		{ID: 3, Properties: []TiledProperty{{Name: "solid", Type: "bool", Value: true}}},
		{ID: 4},
	}}

	props := ts.PropertyMap()
	assert.Equal(t, "ground", props[0]["type"])
	assert.Equal(t, "true", props[3]["solid"])
	_, ok := props[4]
	assert.False(t, ok)
}
