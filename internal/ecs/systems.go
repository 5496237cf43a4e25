package ecs

import "math"

// Tilemap is the collision geometry bodies move through.
type Tilemap interface {
	IsSolidRect(x, y, w, h int) bool
	PixelWidth() int
	PixelHeight() int
}

// ToIUPerSubstep converts pixels/sec to IU/substep.
// Formula: pixels_per_sec * PositionScale / 60 / 10
// = pixels_per_sec * 256 / 600, rounded to the nearest IU
func ToIUPerSubstep(pixelsPerSec float64) int {
	return int(math.Round(pixelsPerSec * float64(PositionScale) / 600.0))
}

// ToIUAccelPerFrame converts pixels/sec² to IU velocity change per frame.
// Acceleration: velocity changes by (accel / 60) pixels/sec per frame.
// Convert to IU/substep: * 256 / 600
// Combined: pixels_per_sec_sq * 256 / 36000, rounded to the nearest IU
func ToIUAccelPerFrame(pixelsPerSecSq float64) int {
	return int(math.Round(pixelsPerSecSq * float64(PositionScale) / 36000.0))
}

// PctToInt converts a 0.0-1.0+ float to 0-100+ percentage int.
func PctToInt(f float64) int {
	return int(math.Round(f * 100))
}

// PhysicsConfig holds physics configuration.
// All velocity/acceleration values are in IU (internal units) per substep.
type PhysicsConfig struct {
	Gravity      int // IU/substep velocity change per frame, negative pulls up
	MaxFallSpeed int // IU/substep
	RestSpeed    int // IU/substep, bounces slower than this come to rest
	Substeps     int
}

// BeginFrame clears contact flags and applies gravity (call once per frame)
func BeginFrame(w *World, cfg PhysicsConfig) {
	for id, body := range w.Body {
		if !body.Enabled {
			continue
		}
		body.Blocked = Blocked{}
		w.Body[id] = body

		if !body.AllowGravity || body.Immovable {
			continue
		}

		vel := w.Velocity[id]
		vel.Y += cfg.Gravity
		if cfg.Gravity >= 0 && vel.Y > cfg.MaxFallSpeed {
			vel.Y = cfg.MaxFallSpeed
		} else if cfg.Gravity < 0 && vel.Y < -cfg.MaxFallSpeed {
			vel.Y = -cfg.MaxFallSpeed
		}
		w.Velocity[id] = vel
	}
}

// MoveBodies moves every enabled body for one substep.
// Call Substeps times per frame for normal speed.
func MoveBodies(w *World, tm Tilemap, cfg PhysicsConfig) {
	for id, body := range w.Body {
		if !body.Enabled || body.Immovable {
			continue
		}

		pos := w.Position[id]
		vel := w.Velocity[id]

		hitX := moveBodyX(tm, &pos, &vel, &body)
		hitY := moveBodyY(tm, &pos, &vel, &body, cfg.RestSpeed)

		w.Position[id] = pos
		w.Velocity[id] = vel
		w.Body[id] = body

		if body.DisableOnBounds && (hitX || hitY) {
			w.DisableBody(id, true)
		}
	}
}

// UpdateContacts flags bodies resting against geometry in the gravity direction.
// Bodies that did not move vertically in the last substep would otherwise
// report no contact.
func UpdateContacts(w *World, tm Tilemap, cfg PhysicsConfig) {
	for id, body := range w.Body {
		if !body.Enabled || !body.AllowGravity || body.Immovable {
			continue
		}

		pos := w.Position[id]
		px, py := pos.PixelX(), pos.PixelY()
		if cfg.Gravity >= 0 && !body.Blocked.Down && blockedAt(tm, &body, px, py+1) {
			body.Blocked.Down = true
		}
		if cfg.Gravity < 0 && !body.Blocked.Up && blockedAt(tm, &body, px, py-1) {
			body.Blocked.Up = true
		}
		w.Body[id] = body
	}
}

func moveBodyX(tm Tilemap, pos *Position, vel *Velocity, body *Body) bool {
	dx := vel.X
	if dx == 0 {
		return false
	}

	step := sign(dx)
	for i := 0; i < abs(dx); i++ {
		next := pos.X + step
		nextPixelX := next >> PositionShift
		if nextPixelX != pos.PixelX() && blockedAt(tm, body, nextPixelX, pos.PixelY()) {
			vel.X = 0
			if step > 0 {
				body.Blocked.Right = true
			} else {
				body.Blocked.Left = true
			}
			return true
		}
		pos.X = next // 1 IU per step
	}
	return false
}

func moveBodyY(tm Tilemap, pos *Position, vel *Velocity, body *Body, restSpeed int) bool {
	dy := vel.Y
	if dy == 0 {
		return false
	}

	step := sign(dy)
	for i := 0; i < abs(dy); i++ {
		next := pos.Y + step
		nextPixelY := next >> PositionShift
		if nextPixelY != pos.PixelY() && blockedAt(tm, body, pos.PixelX(), nextPixelY) {
			if step > 0 {
				body.Blocked.Down = true
			} else {
				body.Blocked.Up = true
			}

			bounced := -vel.Y * body.BouncePct / 100
			if abs(bounced) > restSpeed {
				vel.Y = bounced
			} else {
				vel.Y = 0
			}
			return true
		}
		pos.Y = next
	}
	return false
}

// blockedAt reports whether the body would touch solid tiles or leave the
// world bounds with its top-left corner at pixel (px, py).
func blockedAt(tm Tilemap, body *Body, px, py int) bool {
	if body.CollideWorldBounds {
		if px < 0 || py < 0 || px+body.Width > tm.PixelWidth() || py+body.Height > tm.PixelHeight() {
			return true
		}
	}
	if body.CollideTiles {
		return tm.IsSolidRect(px, py, body.Width, body.Height)
	}
	return false
}

// UpdateChasers steers every enabled chaser toward its target (call once per frame).
// gravity is the signed world gravity; chasers jump against it when blocked sideways.
func UpdateChasers(w *World, gravity int) {
	for _, id := range w.ByKind(KindChaser) {
		if !w.IsEnabled(id) {
			continue
		}
		chase := w.Chase[id]
		if !w.Exists(chase.Target) {
			continue
		}

		vel := w.Velocity[id]
		sprite := w.Sprite[id]
		body := w.Body[id]

		diffX := w.CenterX(chase.Target) - w.CenterX(id)

		// Target too far away: stand still
		if abs(diffX) > chase.DetectRange {
			vel.X = 0
			sprite.Play(chase.IdleAnim)
			w.Velocity[id] = vel
			w.Sprite[id] = sprite
			continue
		}

		if abs(diffX) < chase.StopRange {
			vel.X = 0
			sprite.Play(chase.IdleAnim)
		} else {
			if diffX < 0 {
				vel.X = -chase.Speed
			} else {
				vel.X = chase.Speed
			}
			sprite.Play(chase.RunAnim)
		}

		// Sprites face right by default
		sprite.FlipX = diffX < 0
		sprite.FlipY = gravity < 0

		if body.Blocked.Left || body.Blocked.Right {
			if gravity > 0 {
				vel.Y = -chase.JumpForce
			} else {
				vel.Y = chase.JumpForce
			}
		}

		w.Velocity[id] = vel
		w.Sprite[id] = sprite
	}
}

// Play switches the sprite to the named animation.
// Playing the animation that is already running keeps its current frame.
func (s *Sprite) Play(key string) {
	if s.Anim == key {
		return
	}
	s.Anim = key
	s.Frame = 0
	s.FrameTimer = 0
	s.Loop = 0
}

// Helper functions
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
