package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/younwookim/pixelrun/internal/application/replay"
	"github.com/younwookim/pixelrun/internal/application/scene/playing"
	"github.com/younwookim/pixelrun/internal/application/state"
	"github.com/younwookim/pixelrun/internal/infrastructure/config"
)

var errWrongLevel = errors.New("replay was recorded on another level")

// loadReplay reads a recording and checks it belongs to level.
func loadReplay(path, level string) (*replay.ReplayData, error) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return nil, err
	}
	if data.Version != replay.Version {
		return nil, fmt.Errorf("replay version %q, want %q", data.Version, replay.Version)
	}
	if data.Level != level {
		return nil, fmt.Errorf("%s: %w (%s)", path, errWrongLevel, data.Level)
	}
	return data, nil
}

// sessionPath names the recording of the n-th session started with -record
// base. The first session writes base itself, later ones add _n before the
// extension.
func sessionPath(base string, n int) string {
	if base == "" || n <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(base, ext), n, ext)
}

// Summary is the state of a level after a headless replay.
type Summary struct {
	Frames     int
	Seed       int64
	Difficulty int
	State      state.GameState
	Result     state.Result
	Health     float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%d frames, seed %d, difficulty %d, %s, score %d, health %g",
		s.Frames, s.Seed, s.Difficulty, s.State, s.Result.Score, s.Health)
}

// runHeadless steps the level through every recorded frame without a window,
// at the difficulty the session was recorded at.
func runHeadless(cfg *config.GameConfig, level *config.TiledMap, data *replay.ReplayData) (Summary, error) {
	p, err := playing.New(cfg, level, playing.Options{Replay: data})
	if err != nil {
		return Summary{}, err
	}
	dt := 1.0 / float64(cfg.Display.Framerate)
	for range data.Frames {
		if _, err := p.Update(dt); err != nil {
			return Summary{}, err
		}
	}
	return Summary{
		Frames:     len(data.Frames),
		Seed:       p.Seed(),
		Difficulty: data.Difficulty,
		State:      p.State(),
		Result:     p.Result(),
		Health:     p.Health().Value,
	}, nil
}
