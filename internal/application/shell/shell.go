// Package shell is the game shell: the start menu, settings, instructions
// and game over screens around the level, with their sounds and the high
// score.
package shell

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pixelrun/internal/application/scene"
	"github.com/younwookim/pixelrun/internal/application/scene/menu"
	"github.com/younwookim/pixelrun/internal/application/state"
	"github.com/younwookim/pixelrun/internal/infrastructure/audio"
	"github.com/younwookim/pixelrun/internal/infrastructure/platform"
	"github.com/younwookim/pixelrun/internal/infrastructure/storage"
)

// Element ids of the shell buttons in the HTML page.
const (
	IDPlay         = "play-button"
	IDSettings     = "settings-button"
	IDInstructions = "instructions-button"
	IDPlayAgain    = "play-again-button"
	IDMainMenu     = "main-menu-button"
	IDVolumeDown   = "volume-down-button"
	IDVolumeUp     = "volume-up-button"
	IDDifficulty   = "difficulty-button"
)

// volumeStep is how much one press of a volume button changes the volume.
const volumeStep = 10

// DefaultInstructions is shown on the instructions screen.
var DefaultInstructions = []string{
	"Arrow keys or the joystick: run",
	"Space or Jump: jump",
	"F or Fire: shoot",
	"Collect stars, shoot enemies, eat an apple to be immune",
	"Reach the flag to win",
	"Esc: pause    R: restart",
}

var difficultyNames = [...]string{"Easy", "Medium", "Hard", "Default"}

// Sounds plays the shell's effects.
type Sounds interface {
	Play(s audio.Sound)
	SetVolume(volume int)
}

// GameFactory builds a new level. The level calls finish with its result
// when the player leaves it.
type GameFactory func(difficulty int, finish func(state.Result) scene.Scene) (scene.Scene, error)

// Shell switches between the shell screens and the level. Exactly one
// screen is active at a time.
type Shell struct {
	screen   state.Screen
	sounds   Sounds
	store    *storage.Store
	platform platform.Platform
	newGame  GameFactory

	width, height int

	// InstructionLines are the instructions lines, DefaultInstructions unless replaced.
	InstructionLines []string

	// Quit is called by Escape on the start menu.
	Quit func()

	last state.Result
}

// New creates a shell drawing width x height screens.
func New(store *storage.Store, p platform.Platform, sounds Sounds, newGame GameFactory, width, height int) *Shell {
	s := &Shell{
		screen:           state.ScreenStartMenu,
		sounds:           sounds,
		store:            store,
		platform:         p,
		newGame:          newGame,
		width:            width,
		height:           height,
		InstructionLines: DefaultInstructions,
	}
	if sounds != nil {
		sounds.SetVolume(p.GetSoundVolume())
	}
	return s
}

// Screen returns the active screen.
func (s *Shell) Screen() state.Screen { return s.screen }

// LastResult returns the result of the last finished level.
func (s *Shell) LastResult() state.Result { return s.last }

func (s *Shell) show(screen state.Screen) {
	log.Printf("[Shell] %s -> %s", s.screen, screen)
	s.screen = screen
}

func (s *Shell) play(sound audio.Sound) {
	if s.sounds != nil {
		s.sounds.Play(sound)
	}
}

// MainMenu shows the start menu.
func (s *Shell) MainMenu() scene.Scene {
	s.show(state.ScreenStartMenu)
	m := menu.New("Pixel Run", s.width, s.height,
		&menu.Item{ID: IDPlay, Label: "Play", Keys: []ebiten.Key{ebiten.KeyP}, Action: s.StartGame},
		&menu.Item{ID: IDSettings, Label: "Settings", Keys: []ebiten.Key{ebiten.KeyS}, Action: s.settingsAction},
		&menu.Item{ID: IDInstructions, Label: "Instructions", Keys: []ebiten.Key{ebiten.KeyI}, Action: s.instructionsAction},
	)
	m.Lines = []string{fmt.Sprintf("Best: %d", s.platform.GetHighestScore())}
	m.Back = func() (scene.Scene, error) {
		if s.Quit != nil {
			s.Quit()
		}
		return nil, nil
	}
	return m
}

// StartGame shows the level and plays the start sound.
func (s *Shell) StartGame() (scene.Scene, error) {
	next, err := s.startLevel()
	if err != nil {
		return nil, err
	}
	s.play(audio.SoundStart)
	return next, nil
}

// PlayAgain starts a new level from the game over screen.
func (s *Shell) PlayAgain() (scene.Scene, error) {
	return s.startLevel()
}

func (s *Shell) startLevel() (scene.Scene, error) {
	next, err := s.newGame(s.platform.GetPreferredDifficulty(), s.EndGame)
	if err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}
	s.show(state.ScreenGame)
	return next, nil
}

// EndGame shows the game over screen, plays the end sound and keeps the
// score when it beats the best one.
func (s *Shell) EndGame(r state.Result) scene.Scene {
	s.show(state.ScreenGameOver)
	s.play(audio.SoundEnd)
	s.last = r

	best := s.platform.GetHighestScore()
	newBest := r.Score > best
	if newBest {
		s.platform.SetHighestScore(r.Score)
		best = r.Score
	}

	title := "Game Over"
	if r.Message != "" {
		title = r.Message
	}
	m := menu.New(title, s.width, s.height,
		&menu.Item{ID: IDPlayAgain, Label: "Play again", Keys: []ebiten.Key{ebiten.KeyP}, Action: s.PlayAgain},
		&menu.Item{ID: IDMainMenu, Label: "Main menu", Keys: []ebiten.Key{ebiten.KeyM}, Action: s.mainMenuAction},
	)
	m.Lines = []string{fmt.Sprintf("Score: %d", r.Score), fmt.Sprintf("Best: %d", best)}
	if newBest {
		m.Lines = append(m.Lines, "New high score!")
	}
	m.Back = s.mainMenuAction
	return m
}

// Settings shows the volume and difficulty settings. They are saved when
// the screen is left.
func (s *Shell) Settings() scene.Scene {
	s.show(state.ScreenSettings)
	m := menu.New("Settings", s.width, s.height,
		&menu.Item{ID: IDVolumeDown, Label: "Volume -", Keys: []ebiten.Key{ebiten.KeyArrowLeft}},
		&menu.Item{ID: IDVolumeUp, Label: "Volume +", Keys: []ebiten.Key{ebiten.KeyArrowRight}},
		&menu.Item{ID: IDDifficulty, Keys: []ebiten.Key{ebiten.KeyD}},
		&menu.Item{ID: IDMainMenu, Label: "Back", Action: s.leaveSettings},
	)
	refresh := func() {
		m.Lines = []string{fmt.Sprintf("Sound volume: %d", s.store.SoundVolume())}
		m.Item(IDDifficulty).Label = "Difficulty: " + DifficultyName(s.store.Difficulty())
	}
	m.Item(IDVolumeDown).Action = func() (scene.Scene, error) {
		s.changeVolume(-volumeStep)
		refresh()
		return nil, nil
	}
	m.Item(IDVolumeUp).Action = func() (scene.Scene, error) {
		s.changeVolume(volumeStep)
		refresh()
		return nil, nil
	}
	m.Item(IDDifficulty).Action = func() (scene.Scene, error) {
		next := (s.store.Difficulty() + 1) % len(difficultyNames)
		if err := s.store.SetDifficulty(next); err != nil {
			return nil, err
		}
		refresh()
		return nil, nil
	}
	m.Back = s.leaveSettings
	refresh()
	return m
}

func (s *Shell) changeVolume(delta int) {
	s.store.SetSoundVolume(s.store.SoundVolume() + delta)
	if s.sounds != nil {
		s.sounds.SetVolume(s.store.SoundVolume())
	}
}

func (s *Shell) leaveSettings() (scene.Scene, error) {
	if err := s.store.Save(); err != nil {
		log.Printf("[Shell] Failed to save settings: %v", err)
	}
	return s.MainMenu(), nil
}

// Instructions shows how to play.
func (s *Shell) Instructions() scene.Scene {
	s.show(state.ScreenInstructions)
	m := menu.New("Instructions", s.width, s.height,
		&menu.Item{ID: IDMainMenu, Label: "Back", Action: s.mainMenuAction},
	)
	m.Lines = s.InstructionLines
	m.Back = s.mainMenuAction
	return m
}

func (s *Shell) mainMenuAction() (scene.Scene, error)     { return s.MainMenu(), nil }
func (s *Shell) settingsAction() (scene.Scene, error)     { return s.Settings(), nil }
func (s *Shell) instructionsAction() (scene.Scene, error) { return s.Instructions(), nil }

// DifficultyName returns the display name of a difficulty level.
func DifficultyName(level int) string {
	if level < 0 || level >= len(difficultyNames) {
		return "Unknown"
	}
	return difficultyNames[level]
}
