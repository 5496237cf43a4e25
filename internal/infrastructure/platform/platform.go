// Package platform is the host API the game shell talks to: version,
// high score, sound volume and preferred difficulty.
package platform

import (
	"errors"
	"fmt"
	"log"

	"github.com/younwookim/pixelrun/internal/infrastructure/storage"
)

// Version of the API implemented by Local.
const (
	MajorVersion = 1
	MinorVersion = 0
)

// ErrUnsupportedVersion is returned when the host speaks another major version.
var ErrUnsupportedVersion = errors.New("requires Platform version 1.x")

// Platform is version 1 of the host API. All numbers are integers.
type Platform interface {
	MajorVersion() int
	MinorVersion() int
	SetHighestScore(score int)
	GetHighestScore() int
	GetSoundVolume() int         // 0-100
	GetPreferredDifficulty() int // 0 easy, 1 medium, 2 hard, 3 default
}

// Require fails unless p implements the given major version.
func Require(p Platform, major int) error {
	if p.MajorVersion() != major {
		return fmt.Errorf("platform version %d.%d: %w", p.MajorVersion(), p.MinorVersion(), ErrUnsupportedVersion)
	}
	return nil
}

// Local is the platform of a desktop or browser build, backed by save data.
type Local struct {
	store *storage.Store
}

// NewLocal creates a platform over store.
func NewLocal(store *storage.Store) *Local {
	return &Local{store: store}
}

func (l *Local) MajorVersion() int { return MajorVersion }
func (l *Local) MinorVersion() int { return MinorVersion }

// SetHighestScore saves score as the best one. A lower score is ignored.
func (l *Local) SetHighestScore(score int) {
	if _, err := l.store.RecordScore(score); err != nil {
		log.Printf("[Platform] Failed to save high score: %v", err)
	}
}

func (l *Local) GetHighestScore() int        { return l.store.HighestScore() }
func (l *Local) GetSoundVolume() int         { return l.store.SoundVolume() }
func (l *Local) GetPreferredDifficulty() int { return l.store.Difficulty() }
