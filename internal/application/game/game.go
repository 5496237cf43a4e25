// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pixelrun/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64

	// Update throttling: a scene update runs only when more than
	// updateInterval passed since the previous one.
	updateInterval time.Duration
	lastUpdate     time.Time
	now            func() time.Time

	done bool
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
		now:     time.Now,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.done {
		return ebiten.Termination
	}

	if g.updateInterval > 0 {
		now := g.now()
		if !g.lastUpdate.IsZero() && now.Sub(g.lastUpdate) <= g.updateInterval {
			return nil
		}
		g.lastUpdate = now
	}

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	if g.done {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// SetUpdateInterval throttles scene updates. Zero updates on every tick.
func (g *Game) SetUpdateInterval(d time.Duration) {
	g.updateInterval = d
	g.lastUpdate = time.Time{}
}

// SetClock replaces the time source used for throttling.
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
}

// Stop ends the loop after the current update. The current scene's OnExit runs once.
func (g *Game) Stop() {
	if g.done {
		return
	}
	g.done = true
	g.current.OnExit()
}

// Stopped reports whether Stop was called.
func (g *Game) Stopped() bool {
	return g.done
}

// Current returns the active scene.
func (g *Game) Current() scene.Scene {
	return g.current
}
