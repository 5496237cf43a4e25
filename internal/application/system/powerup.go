package system

import (
	"fmt"
	"image/color"

	"github.com/younwookim/pixelrun/internal/domain/anim"
	"github.com/younwookim/pixelrun/internal/domain/hud"
	"github.com/younwookim/pixelrun/internal/ecs"
	"github.com/younwookim/pixelrun/internal/infrastructure/config"
)

// AnimApple is the looping apple animation key.
const AnimApple = "apple"

// SpawnApples creates one static apple per spawn point.
func SpawnApples(w *ecs.World, anims *anim.Registry, textures Textures, spawns []config.SpawnConfig, animKey string) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(spawns))
	for i, sp := range spawns {
		spec, err := textures.Spec(sp.Key, sp.Scale)
		if err != nil {
			return nil, fmt.Errorf("apple %d: %w", i, err)
		}
		id := w.CreateApple(sp.X, sp.Y, spec)
		sprite := w.Sprite[id]
		anims.Play(&sprite, animKey, true)
		w.Sprite[id] = sprite
		ids = append(ids, id)
	}
	return ids, nil
}

// ImmunityPowerUp makes the player immune to enemy damage for a while after
// picking up an apple. The display counts the remaining seconds down.
type ImmunityPowerUp struct {
	world    *ecs.World
	clock    *Clock
	display  *hud.MetricDisplay
	duration float64 // ms
	tint     color.RGBA
	onPickup func()
}

// NewImmunityPowerUp registers the player/apple overlap.
func NewImmunityPowerUp(w *ecs.World, overlaps *OverlapSystem, clock *Clock, display *hud.MetricDisplay, durationMs int, tint color.RGBA) *ImmunityPowerUp {
	p := &ImmunityPowerUp{
		world:    w,
		clock:    clock,
		display:  display,
		duration: float64(durationMs),
		tint:     tint,
	}
	overlaps.Overlap(ecs.KindPlayer, ecs.KindApple, p.pickup)
	return p
}

// OnPickup sets a callback run after an apple is eaten.
func (p *ImmunityPowerUp) OnPickup(fn func()) { p.onPickup = fn }

func (p *ImmunityPowerUp) pickup(player, apple ecs.EntityID) {
	p.world.DisableBody(apple, true)
	p.Activate(player)
	if p.onPickup != nil {
		p.onPickup()
	}
}

// Activate starts immunity on player. It does nothing while immunity is
// already running.
func (p *ImmunityPowerUp) Activate(player ecs.EntityID) {
	data, ok := p.world.PlayerData[player]
	if !ok || data.Immune {
		return
	}
	data.Immune = true
	p.world.PlayerData[player] = data
	p.world.SetTint(player, p.tint)

	totalSecs := int(p.duration / 1000)
	p.display.Reset()
	p.display.Add(float64(totalSecs))

	if totalSecs > 0 {
		p.clock.AddEvent(1000, totalSecs-1, func() {
			p.display.Add(-1)
		})
	}

	p.clock.DelayedCall(p.duration, func() {
		if data, ok := p.world.PlayerData[player]; ok {
			data.Immune = false
			p.world.PlayerData[player] = data
			p.world.ClearTint(player)
		}
		p.display.Reset()
	})
}
