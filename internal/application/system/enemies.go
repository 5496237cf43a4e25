package system

import (
	"fmt"

	"github.com/younwookim/pixelrun/internal/domain/anim"
	"github.com/younwookim/pixelrun/internal/domain/hud"
	"github.com/younwookim/pixelrun/internal/ecs"
	"github.com/younwookim/pixelrun/internal/infrastructure/config"
)

// Animation keys used by enemies.
const (
	AnimEnemyIdle  = "enemy_idle"
	AnimChaserIdle = "chaser_idle"
	AnimChaserRun  = "chaser_run"
)

// SpawnEnemies creates one static enemy per spawn point, playing idleAnim.
func SpawnEnemies(w *ecs.World, anims *anim.Registry, textures Textures, spawns []config.SpawnConfig, idleAnim string) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(spawns))
	for i, sp := range spawns {
		spec, err := textures.Spec(sp.Key, sp.Scale)
		if err != nil {
			return nil, fmt.Errorf("enemy %d: %w", i, err)
		}
		id := w.CreateEnemy(sp.X, sp.Y, spec)
		sprite := w.Sprite[id]
		anims.Play(&sprite, idleAnim, true)
		w.Sprite[id] = sprite
		ids = append(ids, id)
	}
	return ids, nil
}

// SpawnChaser creates an enemy that runs toward target when it comes close.
func SpawnChaser(w *ecs.World, anims *anim.Registry, spec ecs.SpriteSpec, target ecs.EntityID, cfg config.ChaserConfig) ecs.EntityID {
	id := w.CreateChaser(cfg.X, cfg.Y, spec, ecs.Chase{
		Target:      target,
		Speed:       ecs.ToIUPerSubstep(cfg.Speed),
		DetectRange: cfg.DetectRange,
		StopRange:   cfg.StopRange,
		JumpForce:   ecs.ToIUPerSubstep(cfg.JumpForce),
		IdleAnim:    AnimChaserIdle,
		RunAnim:     AnimChaserRun,
	}, ecs.PctToInt(cfg.Bounce))

	sprite := w.Sprite[id]
	anims.Play(&sprite, AnimChaserIdle, true)
	w.Sprite[id] = sprite
	return id
}

// DamageOnTouch takes health from the player on every frame it touches an
// enemy of the given kind, unless the player is immune.
type DamageOnTouch struct {
	world  *ecs.World
	health *hud.MetricDisplay
	damage float64
	onHit  func()
}

// NewDamageOnTouch registers the player/kind overlap.
func NewDamageOnTouch(w *ecs.World, overlaps *OverlapSystem, kind ecs.Kind, health *hud.MetricDisplay, damage float64) *DamageOnTouch {
	d := &DamageOnTouch{world: w, health: health, damage: damage}
	overlaps.Overlap(ecs.KindPlayer, kind, d.touch)
	return d
}

// OnHit sets a callback run after damage is taken.
func (d *DamageOnTouch) OnHit(fn func()) { d.onHit = fn }

func (d *DamageOnTouch) touch(player, enemy ecs.EntityID) {
	if d.world.PlayerData[player].Immune {
		return
	}
	d.health.Add(-d.damage)
	if d.onHit != nil {
		d.onHit()
	}
}

// BulletEnemyCollision removes both the bullet and the enemy it hits and
// adds points to the score.
type BulletEnemyCollision struct {
	world  *ecs.World
	score  *hud.MetricDisplay
	points float64
	onKill func()
}

// NewBulletEnemyCollision registers the bullet/kind overlap.
func NewBulletEnemyCollision(w *ecs.World, overlaps *OverlapSystem, kind ecs.Kind, score *hud.MetricDisplay, points float64) *BulletEnemyCollision {
	c := &BulletEnemyCollision{world: w, score: score, points: points}
	overlaps.Overlap(ecs.KindBullet, kind, c.hit)
	return c
}

// OnKill sets a callback run after an enemy is shot.
func (c *BulletEnemyCollision) OnKill(fn func()) { c.onKill = fn }

func (c *BulletEnemyCollision) hit(bullet, enemy ecs.EntityID) {
	c.world.DisableBody(bullet, true)
	c.world.DisableBody(enemy, true)
	c.score.Add(c.points)
	if c.onKill != nil {
		c.onKill()
	}
}
