package system

import (
	"github.com/younwookim/pixelrun/internal/ecs"
)

// BulletPool is a fixed set of bullets that are enabled when fired and
// disabled when they hit something. Nothing is allocated per shot.
type BulletPool struct {
	world *ecs.World
	ids   []ecs.EntityID
	speed int // IU per substep
}

// NewBulletPool creates size disabled, hidden bullets.
func NewBulletPool(w *ecs.World, size int, spec ecs.SpriteSpec, speed float64) *BulletPool {
	p := &BulletPool{
		world: w,
		ids:   make([]ecs.EntityID, 0, size),
		speed: ecs.ToIUPerSubstep(speed),
	}
	for i := 0; i < size; i++ {
		p.ids = append(p.ids, w.CreateBullet(spec))
	}
	return p
}

// Fire enables the first dead bullet centred on (x, y) moving in dir.
// It returns false when every bullet is in flight.
func (p *BulletPool) Fire(x, y int, dir Direction) bool {
	id, ok := p.firstDead()
	if !ok {
		return false
	}
	p.world.EnableBody(id, x, y)
	p.world.SetVelocityX(id, int(dir)*p.speed)
	return true
}

func (p *BulletPool) firstDead() (ecs.EntityID, bool) {
	for _, id := range p.ids {
		if !p.world.IsEnabled(id) {
			return id, true
		}
	}
	return 0, false
}

// IDs returns the pooled bullet entities.
func (p *BulletPool) IDs() []ecs.EntityID { return p.ids }

// Size returns the pool size.
func (p *BulletPool) Size() int { return len(p.ids) }

// Active returns the number of bullets in flight.
func (p *BulletPool) Active() int {
	n := 0
	for _, id := range p.ids {
		if p.world.IsEnabled(id) {
			n++
		}
	}
	return n
}

// Shooter fires bullets from the player's side on a key press.
type Shooter struct {
	world  *ecs.World
	player *PlayerController
	pool   *BulletPool
	offset int // px beyond the player
	sound  func()
}

// NewShooter creates a shooter. offset is the gap between player and bullet.
func NewShooter(w *ecs.World, player *PlayerController, pool *BulletPool, offset int) *Shooter {
	return &Shooter{world: w, player: player, pool: pool, offset: offset}
}

// OnFire sets a callback run after every successful shot.
func (s *Shooter) OnFire(fn func()) { s.sound = fn }

// Update fires on the key's just-pressed edge.
func (s *Shooter) Update(firePressed bool) bool {
	if !firePressed {
		return false
	}
	return s.Fire()
}

// Fire shoots one bullet in the player's facing direction.
func (s *Shooter) Fire() bool {
	id := s.player.ID()
	if !s.world.Exists(id) {
		return false
	}

	x := s.world.CenterX(id)
	y := s.world.CenterY(id)
	dir := s.player.Facing()

	offsetX := s.world.Body[id].Width + s.offset
	if dir == DirLeft {
		offsetX = -s.offset
	}

	if !s.pool.Fire(x+offsetX, y, dir) {
		return false
	}
	if s.sound != nil {
		s.sound()
	}
	return true
}
