package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig is the root config for game.yaml
type GameConfig struct {
	Display    DisplayConfig            `yaml:"display"`
	Physics    PhysicsSettings          `yaml:"physics"`
	Difficulty DifficultyConfig         `yaml:"difficulty"`
	Textures   map[string]TextureConfig `yaml:"textures"`
	Level      LevelConfig              `yaml:"level"`
}

type DisplayConfig struct {
	Title          string `yaml:"title"`
	ScreenWidth    int    `yaml:"screenWidth"`
	PanelHeight    int    `yaml:"panelHeight"`
	Framerate      int    `yaml:"framerate"`
	UpdateInterval int    `yaml:"updateIntervalMs"` // 0 = every tick
	Background     string `yaml:"background"`
}

type PhysicsSettings struct {
	Substeps     int     `yaml:"substeps"`
	Gravity      float64 `yaml:"gravity"`      // px/s², negative pulls up
	MaxFallSpeed float64 `yaml:"maxFallSpeed"` // px/s
	RestSpeed    float64 `yaml:"restSpeed"`    // px/s
}

// DifficultyConfig scales touch damage by the preferred difficulty
// (0 easy, 1 medium, 2 hard, 3 default).
type DifficultyConfig struct {
	DamageMultipliers []float64 `yaml:"damageMultipliers"`
}

// Multiplier returns the damage multiplier for a difficulty level.
// Unknown levels use 1.
func (d DifficultyConfig) Multiplier(level int) float64 {
	if level < 0 || level >= len(d.DamageMultipliers) {
		return 1
	}
	return d.DamageMultipliers[level]
}

// TextureConfig describes a sprite sheet. Sprites are drawn as coloured
// rectangles of one frame's size.
type TextureConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Frames int    `yaml:"frames"`
	Color  string `yaml:"color"`
}

// LevelConfig places everything in the demo level.
type LevelConfig struct {
	Map             string   `yaml:"map"`
	Layer           string   `yaml:"layer"`
	CollideProperty string   `yaml:"collideProperty"`
	CollideValues   []string `yaml:"collideValues"`
	CameraExtra     int      `yaml:"cameraExtraWidth"`
	Seed            int64    `yaml:"seed"` // 0 = random

	Player    PlayerConfig   `yaml:"player"`
	Stars     StarsConfig    `yaml:"stars"`
	Health    HealthConfig   `yaml:"health"`
	Enemies   []SpawnConfig  `yaml:"enemies"`
	EnemyIdle AnimConfig     `yaml:"enemyIdle"`
	Bullets   BulletsConfig  `yaml:"bullets"`
	Chaser    ChaserConfig   `yaml:"chaser"`
	Apples    []SpawnConfig  `yaml:"apples"`
	Immunity  ImmunityConfig `yaml:"immunity"`
	Goal      SpawnConfig    `yaml:"goal"`
	HUD       HUDConfig      `yaml:"hud"`
	Controls  ControlsConfig `yaml:"controls"`
}

type PositionConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type SpawnConfig struct {
	X     int     `yaml:"x"`
	Y     int     `yaml:"y"`
	Key   string  `yaml:"key"`
	Scale float64 `yaml:"scale"`
}

type AnimConfig struct {
	Texture   string  `yaml:"texture"`
	FrameRate float64 `yaml:"frameRate"`
	Repeat    int     `yaml:"repeat"`
}

type PlayerConfig struct {
	X         int        `yaml:"x"`
	Y         int        `yaml:"y"`
	Speed     float64    `yaml:"speed"`     // px/s
	JumpForce float64    `yaml:"jumpForce"` // px/s
	Run       AnimConfig `yaml:"run"`
	Idle      AnimConfig `yaml:"idle"`
}

type StarsConfig struct {
	Key       string  `yaml:"key"`
	Repeat    int     `yaml:"repeat"`
	X         int     `yaml:"x"`
	Y         int     `yaml:"y"`
	StepX     int     `yaml:"stepX"`
	BounceMin float64 `yaml:"bounceMin"`
	BounceMax float64 `yaml:"bounceMax"`
	Points    float64 `yaml:"points"`
}

type HealthConfig struct {
	Initial float64 `yaml:"initial"`
	Damage  float64 `yaml:"damage"`
}

type BulletsConfig struct {
	Key     string  `yaml:"key"`
	Pool    int     `yaml:"pool"`
	Speed   float64 `yaml:"speed"` // px/s
	FireKey string  `yaml:"fireKey"`
	Offset  int     `yaml:"offset"`
	Points  float64 `yaml:"points"`
}

type ChaserConfig struct {
	X           int        `yaml:"x"`
	Y           int        `yaml:"y"`
	Speed       float64    `yaml:"speed"`     // px/s
	JumpForce   float64    `yaml:"jumpForce"` // px/s
	DetectRange int        `yaml:"detectRange"`
	StopRange   int        `yaml:"stopRange"`
	Bounce      float64    `yaml:"bounce"`
	Idle        AnimConfig `yaml:"idle"`
	Run         AnimConfig `yaml:"run"`
}

type ImmunityConfig struct {
	DurationMs int        `yaml:"durationMs"`
	Tint       string     `yaml:"tint"`
	Anim       AnimConfig `yaml:"anim"`
}

type HUDConfig struct {
	FontSize   int            `yaml:"fontSize"`
	Fill       string         `yaml:"fill"`
	Score      PositionConfig `yaml:"score"`
	Health     PositionConfig `yaml:"health"`
	Immunity   PositionConfig `yaml:"immunity"`
	BannerFill string         `yaml:"bannerFill"`
}

type ControlsConfig struct {
	JoystickX      int      `yaml:"joystickX"`
	JoystickRadius int      `yaml:"joystickRadius"`
	ForceMin       int      `yaml:"forceMin"`
	ButtonInset    int      `yaml:"buttonInset"`
	Buttons        []string `yaml:"buttons"`
}

// Validate checks the values the game cannot run without.
func (c *GameConfig) Validate() error {
	if c.Display.ScreenWidth <= 0 {
		return fmt.Errorf("display.screenWidth must be positive: %w", ErrInvalidConfig)
	}
	if c.Display.Framerate <= 0 {
		return fmt.Errorf("display.framerate must be positive: %w", ErrInvalidConfig)
	}
	if c.Physics.Substeps <= 0 {
		return fmt.Errorf("physics.substeps must be positive: %w", ErrInvalidConfig)
	}
	if c.Level.Map == "" {
		return fmt.Errorf("level.map is required: %w", ErrInvalidConfig)
	}
	if c.Level.Bullets.Pool < 0 {
		return fmt.Errorf("level.bullets.pool must not be negative: %w", ErrInvalidConfig)
	}
	if c.Level.Stars.BounceMin > c.Level.Stars.BounceMax {
		return fmt.Errorf("level.stars bounce range invalid: min(%.2f) > max(%.2f): %w",
			c.Level.Stars.BounceMin, c.Level.Stars.BounceMax, ErrInvalidConfig)
	}
	for name, tex := range c.Textures {
		if tex.Width <= 0 || tex.Height <= 0 {
			return fmt.Errorf("texture %q has no size: %w", name, ErrInvalidConfig)
		}
	}
	for _, key := range c.requiredTextures() {
		if _, ok := c.Textures[key]; !ok {
			return fmt.Errorf("texture %q is not defined: %w", key, ErrInvalidConfig)
		}
	}
	return nil
}

func (c *GameConfig) requiredTextures() []string {
	lv := c.Level
	keys := []string{
		lv.Player.Run.Texture, lv.Player.Idle.Texture,
		lv.Stars.Key, lv.Bullets.Key,
		lv.Chaser.Idle.Texture, lv.Chaser.Run.Texture,
		lv.Immunity.Anim.Texture, lv.EnemyIdle.Texture, lv.Goal.Key,
	}
	for _, e := range lv.Enemies {
		keys = append(keys, e.Key)
	}
	for _, a := range lv.Apples {
		keys = append(keys, a.Key)
	}

	out := keys[:0]
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
