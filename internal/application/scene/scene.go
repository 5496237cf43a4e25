// Package scene defines the Scene interface shared by the level and the
// shell screens, plus the text drawing they use.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game: a menu or the level.
//
// game.Game calls Update once per tick and Draw once per frame. Update
// returns the scene to switch to, or nil to stay.
type Scene interface {
	// Update advances the scene by dt seconds. A non-nil error stops the game.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current.
	OnEnter()

	// OnExit runs when the scene is replaced or the game stops.
	OnExit()
}
