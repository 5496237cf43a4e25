package state

// GameState represents the current state of the level
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
	StateWon
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateWon:
		return "Won"
	default:
		return "Unknown"
	}
}

// Ended reports whether the level is over.
func (s GameState) Ended() bool {
	return s == StateGameOver || s == StateWon
}

// Screen is one of the shell screens. Exactly one is shown at a time.
type Screen int

const (
	ScreenStartMenu Screen = iota
	ScreenSettings
	ScreenInstructions
	ScreenGame
	ScreenGameOver
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenStartMenu:
		return "StartMenu"
	case ScreenSettings:
		return "Settings"
	case ScreenInstructions:
		return "Instructions"
	case ScreenGame:
		return "Game"
	case ScreenGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// ElementID returns the id of the screen's element in the HTML shell page.
func (s Screen) ElementID() string {
	switch s {
	case ScreenStartMenu:
		return "start-menu-screen"
	case ScreenSettings:
		return "settings-screen"
	case ScreenInstructions:
		return "instructions-screen"
	case ScreenGame:
		return "game-container"
	case ScreenGameOver:
		return "game-over-screen"
	default:
		return ""
	}
}

// Result is how a level ended, handed from the level to the shell.
type Result struct {
	Score   int
	Won     bool
	Message string
}
