package system

import (
	"github.com/younwookim/pixelrun/internal/ecs"
)

// Direction is the horizontal facing of an entity.
type Direction int

const (
	DirLeft  Direction = -1
	DirRight Direction = 1
)

// String returns "left" or "right".
func (d Direction) String() string {
	if d == DirLeft {
		return "left"
	}
	return "right"
}

// PlayerController moves the player from cursor keys and a jump key.
type PlayerController struct {
	world     *ecs.World
	id        ecs.EntityID
	speed     int // IU per substep
	jumpForce int // IU per substep
}

// NewPlayerController creates a controller for the player entity.
// speed and jumpForce are in px/s.
func NewPlayerController(w *ecs.World, id ecs.EntityID, speed, jumpForce float64) *PlayerController {
	return &PlayerController{
		world:     w,
		id:        id,
		speed:     ecs.ToIUPerSubstep(speed),
		jumpForce: ecs.ToIUPerSubstep(jumpForce),
	}
}

// ID returns the controlled entity.
func (c *PlayerController) ID() ecs.EntityID { return c.id }

// Update applies one frame of input. Left wins when both directions are held.
func (c *PlayerController) Update(left, right, jump bool) {
	if !c.world.Exists(c.id) {
		return
	}

	sprite := c.world.Sprite[c.id]
	data := c.world.PlayerData[c.id]
	facing := c.world.Facing[c.id]

	switch {
	case left:
		c.world.SetVelocityX(c.id, -c.speed)
		sprite.Play(data.RunAnim)
		sprite.FlipX = true
		facing.Right = false
	case right:
		c.world.SetVelocityX(c.id, c.speed)
		sprite.Play(data.RunAnim)
		sprite.FlipX = false
		facing.Right = true
	default:
		c.world.SetVelocityX(c.id, 0)
		sprite.Play(data.IdleAnim)
	}

	c.world.Sprite[c.id] = sprite
	c.world.Facing[c.id] = facing

	if jump {
		c.Jump()
	}
}

// Jump launches the player if it stands on something.
func (c *PlayerController) Jump() bool {
	if !c.world.Body[c.id].Blocked.Down {
		return false
	}
	c.world.SetVelocityY(c.id, -c.jumpForce)
	return true
}

// Facing returns the direction the player looks at.
func (c *PlayerController) Facing() Direction {
	if c.world.Facing[c.id].Right {
		return DirRight
	}
	return DirLeft
}

// Immune reports whether the player ignores enemy damage.
func (c *PlayerController) Immune() bool {
	return c.world.PlayerData[c.id].Immune
}
