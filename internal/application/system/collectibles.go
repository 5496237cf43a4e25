package system

import (
	"math/rand"

	"github.com/younwookim/pixelrun/internal/domain/hud"
	"github.com/younwookim/pixelrun/internal/ecs"
)

// SetXY places the members of a spawned group along a line.
type SetXY struct {
	X, Y         int
	StepX, StepY int
}

// SpawnCollectibles creates repeat+1 collectibles starting at at and moving
// by the step for each one. Each bounces by a random share in
// [bounceMin, bounceMax).
func SpawnCollectibles(w *ecs.World, spec ecs.SpriteSpec, repeat int, at SetXY, bounceMin, bounceMax float64, rng *rand.Rand) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, repeat+1)
	for i := 0; i <= repeat; i++ {
		bounce := bounceMin
		if bounceMax > bounceMin {
			bounce += rng.Float64() * (bounceMax - bounceMin)
		}
		x := at.X + i*at.StepX
		y := at.Y + i*at.StepY
		ids = append(ids, w.CreateCollectible(x, y, spec, ecs.PctToInt(bounce)))
	}
	return ids
}

// Collector adds points to the score when the player picks up a collectible.
type Collector struct {
	world  *ecs.World
	score  *hud.MetricDisplay
	points float64
	sound  func()
}

// NewCollector registers the player/collectible overlap.
func NewCollector(w *ecs.World, overlaps *OverlapSystem, score *hud.MetricDisplay, points float64) *Collector {
	c := &Collector{world: w, score: score, points: points}
	overlaps.Overlap(ecs.KindPlayer, ecs.KindCollectible, c.collect)
	return c
}

// OnCollect sets a callback run after each pickup.
func (c *Collector) OnCollect(fn func()) { c.sound = fn }

func (c *Collector) collect(player, item ecs.EntityID) {
	c.world.DisableBody(item, true)
	c.score.Add(c.points)
	if c.sound != nil {
		c.sound()
	}
}

// Remaining returns the number of collectibles still in play.
func (c *Collector) Remaining() int {
	return c.world.CountEnabled(ecs.KindCollectible)
}
