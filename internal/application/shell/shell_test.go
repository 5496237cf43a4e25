package shell

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/pixelrun/internal/application/scene"
	"github.com/younwookim/pixelrun/internal/application/scene/menu"
	"github.com/younwookim/pixelrun/internal/application/state"
	"github.com/younwookim/pixelrun/internal/infrastructure/audio"
	"github.com/younwookim/pixelrun/internal/infrastructure/platform"
	"github.com/younwookim/pixelrun/internal/infrastructure/storage"
)

type fakeSounds struct {
	played []audio.Sound
	volume int
}

func (f *fakeSounds) Play(s audio.Sound)   { f.played = append(f.played, s) }
func (f *fakeSounds) SetVolume(volume int) { f.volume = volume }

type fakeLevel struct {
	difficulty int
	finish     func(state.Result) scene.Scene
}

func (l *fakeLevel) Update(float64) (scene.Scene, error) { return nil, nil }
func (l *fakeLevel) Draw(*ebiten.Image)                  {}
func (l *fakeLevel) OnEnter()                            {}
func (l *fakeLevel) OnExit()                             {}

type fixture struct {
	shell  *Shell
	store  *storage.Store
	sounds *fakeSounds
	levels []*fakeLevel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: storage.New(nil), sounds: &fakeSounds{}}
	newGame := func(difficulty int, finish func(state.Result) scene.Scene) (scene.Scene, error) {
		l := &fakeLevel{difficulty: difficulty, finish: finish}
		f.levels = append(f.levels, l)
		return l, nil
	}
	f.shell = New(f.store, platform.NewLocal(f.store), f.sounds, newGame, 800, 768)
	return f
}

func asMenu(t *testing.T, s scene.Scene) *menu.Menu {
	t.Helper()
	m, ok := s.(*menu.Menu)
	require.True(t, ok, "expected a menu, got %T", s)
	return m
}

func choose(t *testing.T, m *menu.Menu, id string) scene.Scene {
	t.Helper()
	it := m.Item(id)
	require.NotNil(t, it, "no item %s", id)
	next, err := it.Action()
	require.NoError(t, err)
	return next
}

func TestNew_AppliesVolume(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, storage.DefaultSettings().SoundVolume, f.sounds.volume)
	assert.Equal(t, state.ScreenStartMenu, f.shell.Screen())
}

func TestMainMenu(t *testing.T) {
	f := newFixture(t)
	m := asMenu(t, f.shell.MainMenu())

	assert.Equal(t, state.ScreenStartMenu, f.shell.Screen())
	for _, id := range []string{IDPlay, IDSettings, IDInstructions} {
		assert.NotNil(t, m.Item(id), id)
	}
}

func TestStartGame(t *testing.T) {
	f := newFixture(t)
	m := asMenu(t, f.shell.MainMenu())

	next := choose(t, m, IDPlay)

	require.Len(t, f.levels, 1)
	assert.Same(t, f.levels[0], next)
	assert.Equal(t, state.ScreenGame, f.shell.Screen())
	assert.Equal(t, []audio.Sound{audio.SoundStart}, f.sounds.played)
	assert.Equal(t, storage.DifficultyDefault, f.levels[0].difficulty)
}

func TestStartGame_FactoryError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")
	f.shell.newGame = func(int, func(state.Result) scene.Scene) (scene.Scene, error) { return nil, boom }

	_, err := f.shell.StartGame()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, state.ScreenStartMenu, f.shell.Screen())
	assert.Empty(t, f.sounds.played)
}

func TestEndGame(t *testing.T) {
	f := newFixture(t)
	_, err := f.shell.StartGame()
	require.NoError(t, err)

	next := f.levels[0].finish(state.Result{Score: 120, Message: "YOU WIN!", Won: true})
	m := asMenu(t, next)

	assert.Equal(t, state.ScreenGameOver, f.shell.Screen())
	assert.Equal(t, []audio.Sound{audio.SoundStart, audio.SoundEnd}, f.sounds.played)
	assert.Equal(t, 120, f.store.HighestScore())
	assert.Equal(t, "YOU WIN!", m.Title)
	assert.Contains(t, m.Lines, "New high score!")
	assert.Equal(t, 120, f.shell.LastResult().Score)

	t.Run("lower score keeps the best", func(t *testing.T) {
		m := asMenu(t, f.shell.EndGame(state.Result{Score: 30, Message: "GAME OVER"}))
		assert.Equal(t, 120, f.store.HighestScore())
		assert.Equal(t, []string{"Score: 30", "Best: 120"}, m.Lines)
	})
}

func TestPlayAgain(t *testing.T) {
	f := newFixture(t)
	m := asMenu(t, f.shell.EndGame(state.Result{Score: 10}))

	next := choose(t, m, IDPlayAgain)

	require.Len(t, f.levels, 1)
	assert.Same(t, f.levels[0], next)
	assert.Equal(t, state.ScreenGame, f.shell.Screen())
	assert.Equal(t, []audio.Sound{audio.SoundEnd}, f.sounds.played, "play again has no start sound")
}

func TestGameOver_MainMenu(t *testing.T) {
	f := newFixture(t)
	m := asMenu(t, f.shell.EndGame(state.Result{}))

	asMenu(t, choose(t, m, IDMainMenu))
	assert.Equal(t, state.ScreenStartMenu, f.shell.Screen())
}

func TestSettings(t *testing.T) {
	f := newFixture(t)
	m := asMenu(t, choose(t, asMenu(t, f.shell.MainMenu()), IDSettings))
	assert.Equal(t, state.ScreenSettings, f.shell.Screen())
	assert.Equal(t, "Difficulty: Default", m.Item(IDDifficulty).Label)

	assert.Nil(t, choose(t, m, IDVolumeUp))
	assert.Equal(t, 90, f.store.SoundVolume())
	assert.Equal(t, 90, f.sounds.volume)

	choose(t, m, IDVolumeUp)
	choose(t, m, IDVolumeUp)
	assert.Equal(t, 100, f.store.SoundVolume(), "clamped")

	choose(t, m, IDVolumeDown)
	assert.Equal(t, []string{"Sound volume: 90"}, m.Lines)

	choose(t, m, IDDifficulty)
	assert.Equal(t, storage.DifficultyEasy, f.store.Difficulty(), "cycles past default")
	assert.Equal(t, "Difficulty: Easy", m.Item(IDDifficulty).Label)

	asMenu(t, choose(t, m, IDMainMenu))
	assert.Equal(t, state.ScreenStartMenu, f.shell.Screen())

	_, err := f.shell.StartGame()
	require.NoError(t, err)
	assert.Equal(t, storage.DifficultyEasy, f.levels[0].difficulty)
}

func TestInstructions(t *testing.T) {
	f := newFixture(t)
	m := asMenu(t, f.shell.Instructions())

	assert.Equal(t, state.ScreenInstructions, f.shell.Screen())
	assert.Equal(t, DefaultInstructions, m.Lines)

	next, err := m.Back()
	require.NoError(t, err)
	asMenu(t, next)
	assert.Equal(t, state.ScreenStartMenu, f.shell.Screen())
}

func TestMainMenu_BackQuits(t *testing.T) {
	f := newFixture(t)
	quit := 0
	f.shell.Quit = func() { quit++ }

	m := asMenu(t, f.shell.MainMenu())
	next, err := m.Back()
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, 1, quit)
}

func TestDifficultyName(t *testing.T) {
	assert.Equal(t, "Easy", DifficultyName(0))
	assert.Equal(t, "Hard", DifficultyName(2))
	assert.Equal(t, "Unknown", DifficultyName(7))
}
