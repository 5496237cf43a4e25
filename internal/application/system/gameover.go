package system

import (
	"image/color"
	"log"

	"github.com/younwookim/pixelrun/internal/domain/hud"
	"github.com/younwookim/pixelrun/internal/ecs"
)

// End of level messages.
const (
	MessageGameOver = "GAME OVER"
	MessageWin      = "YOU WIN!"
)

// Pauser stops the physics world.
type Pauser interface {
	Pause()
}

// GameOver ends the level: physics stops, the player turns red and a
// banner shows the message. Only the first Run has any effect.
type GameOver struct {
	world   *ecs.World
	physics Pauser
	banner  *hud.TextDisplay
	tint    color.RGBA

	ended   bool
	message string
	onEnd   func(message string)
}

// NewGameOver creates the end of level handler.
func NewGameOver(w *ecs.World, physics Pauser, banner *hud.TextDisplay, tint color.RGBA) *GameOver {
	return &GameOver{world: w, physics: physics, banner: banner, tint: tint}
}

// OnEnd sets a callback run once when the level ends.
func (g *GameOver) OnEnd(fn func(message string)) { g.onEnd = fn }

// Run ends the level with message.
func (g *GameOver) Run(message string) {
	if g.ended {
		return
	}
	g.ended = true
	g.message = message

	g.physics.Pause()
	if g.world.Exists(g.world.PlayerID) {
		g.world.SetTint(g.world.PlayerID, g.tint)
	}
	g.banner.SetText(message)
	log.Printf("[GameOver] %s", message)

	if g.onEnd != nil {
		g.onEnd(message)
	}
}

// Ended reports whether the level is over.
func (g *GameOver) Ended() bool { return g.ended }

// Message returns the end message, empty while playing.
func (g *GameOver) Message() string { return g.message }

// Won reports whether the level ended by reaching the goal.
func (g *GameOver) Won() bool { return g.ended && g.message == MessageWin }

// GameOverOnHealth ends the level once health runs out.
type GameOverOnHealth struct {
	gameOver *GameOver
	health   *hud.MetricDisplay
}

// NewGameOverOnHealth creates the health monitor.
func NewGameOverOnHealth(gameOver *GameOver, health *hud.MetricDisplay) *GameOverOnHealth {
	return &GameOverOnHealth{gameOver: gameOver, health: health}
}

// Update checks the health once per frame.
func (m *GameOverOnHealth) Update() {
	if !m.gameOver.Ended() && m.health.Value <= 0 {
		m.gameOver.Run(MessageGameOver)
	}
}

// Destination is the goal that wins the level when the player touches it.
type Destination struct {
	id       ecs.EntityID
	gameOver *GameOver
	reached  bool
}

// NewDestination places the goal centred on (x, y).
func NewDestination(w *ecs.World, overlaps *OverlapSystem, gameOver *GameOver, spec ecs.SpriteSpec, x, y int) *Destination {
	d := &Destination{id: w.CreateGoal(x, y, spec), gameOver: gameOver}
	overlaps.Overlap(ecs.KindPlayer, ecs.KindGoal, d.reach)
	return d
}

// ID returns the goal entity.
func (d *Destination) ID() ecs.EntityID { return d.id }

// Reached reports whether the player got to the goal.
func (d *Destination) Reached() bool { return d.reached }

func (d *Destination) reach(player, goal ecs.EntityID) {
	if d.reached {
		return
	}
	d.reached = true
	d.gameOver.Run(MessageWin)
}
