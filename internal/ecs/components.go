package ecs

import "image/color"

// PositionScale is the internal position scale factor.
// 1 pixel = 256 internal units for sub-pixel precision.
// Using 256 (2^8) allows bit-shift optimization for pixel conversion.
const PositionScale = 256

// PositionShift is the bit shift amount for pixel conversion (log2(256) = 8)
const PositionShift = 8

// Kind identifies which gameplay group an entity belongs to.
type Kind int

const (
	KindNone Kind = iota
	KindPlayer
	KindEnemy
	KindChaser
	KindBullet
	KindCollectible
	KindApple
	KindGoal
)

// String returns the group name used for overlap tags and logs.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindChaser:
		return "chaser"
	case KindBullet:
		return "bullet"
	case KindCollectible:
		return "collectible"
	case KindApple:
		return "apple"
	case KindGoal:
		return "goal"
	default:
		return "none"
	}
}

// Position is the top-left corner of the body (256x scaled)
type Position struct {
	X, Y int
}

// PixelX returns the pixel X coordinate
func (p Position) PixelX() int { return p.X >> PositionShift }

// PixelY returns the pixel Y coordinate
func (p Position) PixelY() int { return p.Y >> PositionShift }

// Velocity represents movement speed in internal units per substep.
// All values are integers for deterministic simulation.
type Velocity struct {
	X, Y int // IU per substep
}

// Blocked records which sides of a body touched solid geometry this frame.
type Blocked struct {
	Up, Down, Left, Right bool
}

// Any reports whether any side is blocked.
func (b Blocked) Any() bool {
	return b.Up || b.Down || b.Left || b.Right
}

// Body is the arcade physics body of an entity.
type Body struct {
	Width, Height int // pixels

	BouncePct          int  // 0-100, share of vertical speed kept on landing
	AllowGravity       bool // false for static groups and bullets
	Immovable          bool // never moved by the physics step
	CollideTiles       bool // collides with the tilemap layer
	CollideWorldBounds bool
	DisableOnBounds    bool // disable (and hide) when touching world bounds or tiles

	Enabled bool
	Blocked Blocked
}

// Sprite is the visual state of an entity.
type Sprite struct {
	Texture    string
	Anim       string
	Frame      int
	FrameTimer float64 // ms accumulated toward the next frame
	Loop       int     // completed passes of the current animation
	FlipX      bool
	FlipY      bool
	Tint       color.RGBA
	Tinted     bool
	Visible    bool
	ScalePct   int // 100 = native size
}

// SetTint colours the sprite.
func (s *Sprite) SetTint(c color.RGBA) {
	s.Tint = c
	s.Tinted = true
}

// ClearTint restores the sprite's own colours.
func (s *Sprite) ClearTint() {
	s.Tint = color.RGBA{}
	s.Tinted = false
}

// Facing represents which direction entity faces
type Facing struct {
	Right bool
}

// Chase holds chasing enemy behaviour.
type Chase struct {
	Target      EntityID
	Speed       int // IU per substep
	DetectRange int // pixels
	StopRange   int // pixels
	JumpForce   int // IU per substep
	IdleAnim    string
	RunAnim     string
}

// Player represents player-specific data
type Player struct {
	Immune   bool
	IdleAnim string
	RunAnim  string
}
