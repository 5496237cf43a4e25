package ecs

import (
	"image/color"
	"slices"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Kind       map[EntityID]Kind
	Position   map[EntityID]Position
	Velocity   map[EntityID]Velocity
	Body       map[EntityID]Body
	Sprite     map[EntityID]Sprite
	Facing     map[EntityID]Facing
	Chase      map[EntityID]Chase
	PlayerData map[EntityID]Player

	// Singleton references
	PlayerID EntityID
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:     1, // 0 is "nil"
		Kind:       make(map[EntityID]Kind),
		Position:   make(map[EntityID]Position),
		Velocity:   make(map[EntityID]Velocity),
		Body:       make(map[EntityID]Body),
		Sprite:     make(map[EntityID]Sprite),
		Facing:     make(map[EntityID]Facing),
		Chase:      make(map[EntityID]Chase),
		PlayerData: make(map[EntityID]Player),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Kind, id)
	delete(w.Position, id)
	delete(w.Velocity, id)
	delete(w.Body, id)
	delete(w.Sprite, id)
	delete(w.Facing, id)
	delete(w.Chase, id)
	delete(w.PlayerData, id)
	if w.PlayerID == id {
		w.PlayerID = 0
	}
}

// Exists checks if an entity has Position component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Position[id]
	return ok
}

// ByKind returns every entity of the given kind in ID order.
func (w *World) ByKind(kind Kind) []EntityID {
	ids := make([]EntityID, 0, 8)
	for id, k := range w.Kind {
		if k == kind {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// CountEnabled returns the number of enabled bodies of the given kind.
func (w *World) CountEnabled(kind Kind) int {
	n := 0
	for id, k := range w.Kind {
		if k == kind && w.Body[id].Enabled {
			n++
		}
	}
	return n
}

// IsEnabled reports whether the entity has an enabled body.
func (w *World) IsEnabled(id EntityID) bool {
	body, ok := w.Body[id]
	return ok && body.Enabled
}

// SpriteSpec describes the texture and physical size of a new entity.
type SpriteSpec struct {
	Texture  string
	Width    int // pixels, before scale
	Height   int // pixels, before scale
	ScalePct int // 0 means 100
}

func (s SpriteSpec) scaled() (int, int, int) {
	scale := s.ScalePct
	if scale <= 0 {
		scale = 100
	}
	return s.Width * scale / 100, s.Height * scale / 100, scale
}

// spawn creates an entity centred on (cx, cy), like a sprite with origin 0.5.
func (w *World) spawn(kind Kind, cx, cy int, spec SpriteSpec, body Body) EntityID {
	id := w.NewEntity()
	width, height, scale := spec.scaled()
	body.Width = width
	body.Height = height

	w.Kind[id] = kind
	w.Position[id] = Position{X: (cx - width/2) * PositionScale, Y: (cy - height/2) * PositionScale}
	w.Velocity[id] = Velocity{}
	w.Body[id] = body
	w.Sprite[id] = Sprite{
		Texture:  spec.Texture,
		Visible:  body.Enabled,
		ScalePct: scale,
	}
	w.Facing[id] = Facing{Right: true}
	return id
}

// CreatePlayer creates the player entity
func (w *World) CreatePlayer(cx, cy int, spec SpriteSpec, idleAnim, runAnim string) EntityID {
	id := w.spawn(KindPlayer, cx, cy, spec, Body{
		AllowGravity:       true,
		CollideTiles:       true,
		CollideWorldBounds: true,
		Enabled:            true,
	})
	w.PlayerData[id] = Player{IdleAnim: idleAnim, RunAnim: runAnim}
	w.PlayerID = id
	return id
}

// CreateChaser creates an enemy that follows chase.Target horizontally.
func (w *World) CreateChaser(cx, cy int, spec SpriteSpec, chase Chase, bouncePct int) EntityID {
	id := w.spawn(KindChaser, cx, cy, spec, Body{
		BouncePct:          bouncePct,
		AllowGravity:       true,
		CollideTiles:       true,
		CollideWorldBounds: true,
		Enabled:            true,
	})
	w.Chase[id] = chase
	return id
}

// CreateEnemy creates a static, immovable enemy.
func (w *World) CreateEnemy(cx, cy int, spec SpriteSpec) EntityID {
	return w.spawn(KindEnemy, cx, cy, spec, Body{
		Immovable:    true,
		CollideTiles: true,
		Enabled:      true,
	})
}

// CreateCollectible creates a falling pickup that bounces on the ground.
func (w *World) CreateCollectible(cx, cy int, spec SpriteSpec, bouncePct int) EntityID {
	return w.spawn(KindCollectible, cx, cy, spec, Body{
		BouncePct:          bouncePct,
		AllowGravity:       true,
		CollideTiles:       true,
		CollideWorldBounds: true,
		Enabled:            true,
	})
}

// CreateApple creates a static power-up pickup.
func (w *World) CreateApple(cx, cy int, spec SpriteSpec) EntityID {
	return w.spawn(KindApple, cx, cy, spec, Body{
		Immovable: true,
		Enabled:   true,
	})
}

// CreateGoal creates the static level goal.
func (w *World) CreateGoal(cx, cy int, spec SpriteSpec) EntityID {
	return w.spawn(KindGoal, cx, cy, spec, Body{
		Immovable:    true,
		CollideTiles: true,
		Enabled:      true,
	})
}

// CreateBullet creates a pooled bullet. Bullets start disabled and hidden.
func (w *World) CreateBullet(spec SpriteSpec) EntityID {
	return w.spawn(KindBullet, 0, 0, spec, Body{
		CollideTiles:       true,
		CollideWorldBounds: true,
		DisableOnBounds:    true,
		Enabled:            false,
	})
}

// DisableBody stops simulating the entity. With hide it is no longer drawn.
func (w *World) DisableBody(id EntityID, hide bool) {
	body, ok := w.Body[id]
	if !ok {
		return
	}
	body.Enabled = false
	body.Blocked = Blocked{}
	w.Body[id] = body
	w.Velocity[id] = Velocity{}

	if hide {
		sprite := w.Sprite[id]
		sprite.Visible = false
		w.Sprite[id] = sprite
	}
}

// EnableBody re-activates the entity centred on (cx, cy) and shows it.
func (w *World) EnableBody(id EntityID, cx, cy int) {
	body, ok := w.Body[id]
	if !ok {
		return
	}
	body.Enabled = true
	body.Blocked = Blocked{}
	w.Body[id] = body
	w.Position[id] = Position{
		X: (cx - body.Width/2) * PositionScale,
		Y: (cy - body.Height/2) * PositionScale,
	}
	w.Velocity[id] = Velocity{}

	sprite := w.Sprite[id]
	sprite.Visible = true
	w.Sprite[id] = sprite
}

// CenterX returns the pixel X of the body centre.
func (w *World) CenterX(id EntityID) int {
	return w.Position[id].PixelX() + w.Body[id].Width/2
}

// CenterY returns the pixel Y of the body centre.
func (w *World) CenterY(id EntityID) int {
	return w.Position[id].PixelY() + w.Body[id].Height/2
}

// SetVelocityX sets the horizontal velocity (IU/substep).
func (w *World) SetVelocityX(id EntityID, vx int) {
	vel := w.Velocity[id]
	vel.X = vx
	w.Velocity[id] = vel
}

// SetVelocityY sets the vertical velocity (IU/substep).
func (w *World) SetVelocityY(id EntityID, vy int) {
	vel := w.Velocity[id]
	vel.Y = vy
	w.Velocity[id] = vel
}

// SetTint colours the entity's sprite.
func (w *World) SetTint(id EntityID, c color.RGBA) {
	sprite := w.Sprite[id]
	sprite.SetTint(c)
	w.Sprite[id] = sprite
}

// ClearTint removes the entity's tint.
func (w *World) ClearTint(id EntityID) {
	sprite := w.Sprite[id]
	sprite.ClearTint()
	w.Sprite[id] = sprite
}
