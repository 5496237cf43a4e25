package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/pixelrun/internal/infrastructure/storage"
)

type futurePlatform struct{ *Local }

func (futurePlatform) MajorVersion() int { return 2 }

func TestRequire(t *testing.T) {
	local := NewLocal(storage.New(nil))
	assert.NoError(t, Require(local, 1))

	err := Require(futurePlatform{local}, 1)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Contains(t, err.Error(), "requires Platform version 1.x")
}

func TestLocal(t *testing.T) {
	store := storage.New(nil)
	store.SetSoundVolume(65)
	require.NoError(t, store.SetDifficulty(storage.DifficultyMedium))
	p := NewLocal(store)

	assert.Equal(t, 1, p.MajorVersion())
	assert.Equal(t, 0, p.MinorVersion())
	assert.Equal(t, 65, p.GetSoundVolume())
	assert.Equal(t, 1, p.GetPreferredDifficulty())

	assert.Zero(t, p.GetHighestScore())
	p.SetHighestScore(250)
	assert.Equal(t, 250, p.GetHighestScore())
	assert.Equal(t, 250, store.HighestScore())

	p.SetHighestScore(90)
	assert.Equal(t, 250, p.GetHighestScore(), "a lower score keeps the best")
}
