// Package storage persists the player's settings and best score.
package storage

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Difficulty levels understood by the game.
const (
	DifficultyEasy = iota
	DifficultyMedium
	DifficultyHard
	DifficultyDefault
)

const (
	settingsObject   = "settings"
	settingsProperty = "player"
)

// Settings is everything the game keeps between runs.
type Settings struct {
	SoundVolume  int `yaml:"soundVolume"` // 0-100
	Difficulty   int `yaml:"difficulty"`  // 0 easy, 1 medium, 2 hard, 3 default
	HighestScore int `yaml:"highestScore"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		SoundVolume: 80,
		Difficulty:  DifficultyDefault,
	}
}

// Store keeps Settings in memory and saves them through gdata.
// A nil manager keeps everything in memory only.
type Store struct {
	manager  *gdata.Manager
	settings Settings
}

// Open creates a store under the per-user data directory of appName.
// When the data directory is unavailable the store falls back to memory.
func Open(appName string) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Store] Warning: save data unavailable: %v (settings will not persist)", err)
		manager = nil
	}
	return New(manager)
}

// New creates a store over manager and loads saved settings.
func New(manager *gdata.Manager) *Store {
	s := &Store{manager: manager, settings: DefaultSettings()}
	if err := s.Load(); err != nil {
		log.Printf("[Store] Warning: %v (using defaults)", err)
	}
	return s
}

// Persistent reports whether settings survive a restart.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Load reads saved settings. Missing data keeps the defaults.
func (s *Store) Load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(settingsObject, settingsProperty) {
		s.settings = DefaultSettings()
		return nil
	}

	data, err := s.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		s.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		s.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	if !validDifficulty(loaded.Difficulty) {
		loaded.Difficulty = DifficultyDefault
	}
	s.settings = loaded
	return nil
}

// Save writes the settings. It is a no-op without a manager.
func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	return s.settings
}

// SoundVolume returns the volume in [0, 100].
func (s *Store) SoundVolume() int {
	return s.settings.SoundVolume
}

// SetSoundVolume sets the volume, clamped to [0, 100]. Call Save to persist.
func (s *Store) SetSoundVolume(volume int) {
	s.settings.SoundVolume = clampVolume(volume)
}

// Difficulty returns the preferred difficulty.
func (s *Store) Difficulty() int {
	return s.settings.Difficulty
}

// SetDifficulty sets the preferred difficulty. Call Save to persist.
func (s *Store) SetDifficulty(level int) error {
	if !validDifficulty(level) {
		return fmt.Errorf("difficulty %d out of range [0, 3]", level)
	}
	s.settings.Difficulty = level
	return nil
}

// HighestScore returns the best recorded score.
func (s *Store) HighestScore() int {
	return s.settings.HighestScore
}

// SetHighestScore replaces the best score and saves it.
func (s *Store) SetHighestScore(score int) error {
	s.settings.HighestScore = score
	return s.Save()
}

// RecordScore saves score if it beats the best one. It reports whether it did.
func (s *Store) RecordScore(score int) (bool, error) {
	if score <= s.settings.HighestScore {
		return false, nil
	}
	return true, s.SetHighestScore(score)
}

func clampVolume(v int) int {
	return min(max(v, 0), 100)
}

func validDifficulty(level int) bool {
	return level >= DifficultyEasy && level <= DifficultyDefault
}
