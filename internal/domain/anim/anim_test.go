package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/pixelrun/internal/ecs"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	created, err := r.Create("run", "player_run", 12, 20, -1)
	require.NoError(t, err)
	require.True(t, created)
	created, err = r.Create("idle", "player_idle", 11, 20, -1)
	require.NoError(t, err)
	require.True(t, created)
	created, err = r.Create("appear", "apple", 4, 10, 0)
	require.NoError(t, err)
	require.True(t, created)
	return r
}

func TestCreate(t *testing.T) {
	r := newTestRegistry(t)

	assert.True(t, r.Exists("run"))
	assert.False(t, r.Exists("jump"))

	t.Run("duplicate key keeps the first", func(t *testing.T) {
		created, err := r.Create("run", "other", 3, 5, 0)
		require.NoError(t, err)
		assert.False(t, created)

		a, ok := r.Get("run")
		require.True(t, ok)
		assert.Equal(t, "player_run", a.Texture)
		assert.Equal(t, 12, a.Frames)
	})

	t.Run("zero frames", func(t *testing.T) {
		_, err := r.Create("empty", "tex", 0, 10, -1)
		assert.Error(t, err)
		assert.False(t, r.Exists("empty"))
	})
}

func TestFrameDuration(t *testing.T) {
	assert.InDelta(t, 50.0, Animation{FrameRate: 20}.FrameDuration(), 1e-9)
	assert.Zero(t, Animation{}.FrameDuration())
}

func TestPlay(t *testing.T) {
	r := newTestRegistry(t)
	s := &ecs.Sprite{}

	r.Play(s, "run", true)
	assert.Equal(t, "run", s.Anim)
	assert.Equal(t, "player_run", s.Texture)

	s.Frame = 5
	r.Play(s, "run", true)
	assert.Equal(t, 5, s.Frame, "ignoreIfPlaying keeps the frame")

	r.Play(s, "run", false)
	assert.Equal(t, 0, s.Frame, "restart from the first frame")

	r.Play(s, "idle", true)
	assert.Equal(t, "player_idle", s.Texture)
}

func TestAdvanceLoops(t *testing.T) {
	r := newTestRegistry(t)
	s := &ecs.Sprite{}
	r.Play(s, "run", true)

	r.Advance(s, 49)
	assert.Equal(t, 0, s.Frame)

	r.Advance(s, 1)
	assert.Equal(t, 1, s.Frame)

	// 12 frames at 50ms: a full pass brings the frame back around
	r.Advance(s, 12*50)
	assert.Equal(t, 1, s.Frame)
	assert.Equal(t, 1, s.Loop)
}

func TestAdvanceFiniteHoldsLastFrame(t *testing.T) {
	r := newTestRegistry(t)
	s := &ecs.Sprite{}
	r.Play(s, "appear", true)

	r.Advance(s, 10_000)
	assert.Equal(t, 3, s.Frame)

	r.Advance(s, 1_000)
	assert.Equal(t, 3, s.Frame)
}

func TestAdvanceUnknownAnimation(t *testing.T) {
	r := newTestRegistry(t)
	s := &ecs.Sprite{Anim: "missing", Frame: 2}

	r.Advance(s, 1000)
	assert.Equal(t, 2, s.Frame)
}

func TestAdvanceAll(t *testing.T) {
	r := newTestRegistry(t)
	w := ecs.NewWorld()
	spec := ecs.SpriteSpec{Texture: "player_idle", Width: 32, Height: 32}
	visible := w.CreateEnemy(100, 100, spec)
	hidden := w.CreateEnemy(200, 100, spec)

	for _, id := range []ecs.EntityID{visible, hidden} {
		s := w.Sprite[id]
		r.Play(&s, "idle", true)
		w.Sprite[id] = s
	}
	w.DisableBody(hidden, true)

	r.AdvanceAll(w, 100)

	assert.Equal(t, 2, w.Sprite[visible].Frame)
	assert.Equal(t, 0, w.Sprite[hidden].Frame)
}

func TestAdvanceSwitchesTexture(t *testing.T) {
	r := newTestRegistry(t)
	s := &ecs.Sprite{Texture: "player_idle"}

	s.Play("run")
	r.Advance(s, 0)
	assert.Equal(t, "player_run", s.Texture)
}
