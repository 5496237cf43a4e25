package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/pixelrun/internal/ecs"
)

func newTestPlayer(t *testing.T) (*ecs.World, *PlayerController) {
	t.Helper()
	w := ecs.NewWorld()
	id := w.CreatePlayer(100, 450, playerSpec, "player_idle", "player_run")
	return w, NewPlayerController(w, id, 160, 330)
}

func TestPlayerController_Move(t *testing.T) {
	tests := []struct {
		name        string
		left, right bool
		wantVX      int
		wantAnim    string
		wantFlipX   bool
		wantFacing  Direction
	}{
		{"idle", false, false, 0, "player_idle", false, DirRight},
		{"left", true, false, -ecs.ToIUPerSubstep(160), "player_run", true, DirLeft},
		{"right", false, true, ecs.ToIUPerSubstep(160), "player_run", false, DirRight},
		{"both prefers left", true, true, -ecs.ToIUPerSubstep(160), "player_run", true, DirLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := newTestPlayer(t)
			c.Update(tt.left, tt.right, false)

			id := c.ID()
			assert.Equal(t, tt.wantVX, w.Velocity[id].X)
			assert.Equal(t, tt.wantAnim, w.Sprite[id].Anim)
			assert.Equal(t, tt.wantFlipX, w.Sprite[id].FlipX)
			assert.Equal(t, tt.wantFacing, c.Facing())
		})
	}
}

func TestPlayerController_FacingSticksWhenIdle(t *testing.T) {
	w, c := newTestPlayer(t)
	c.Update(true, false, false)
	c.Update(false, false, false)

	assert.Equal(t, DirLeft, c.Facing())
	assert.Zero(t, w.Velocity[c.ID()].X)
}

func TestPlayerController_JumpOnlyWhenGrounded(t *testing.T) {
	w, c := newTestPlayer(t)
	id := c.ID()

	assert.False(t, c.Jump(), "airborne")
	assert.Zero(t, w.Velocity[id].Y)

	body := w.Body[id]
	body.Blocked.Down = true
	w.Body[id] = body

	c.Update(false, false, true)
	assert.Equal(t, -ecs.ToIUPerSubstep(330), w.Velocity[id].Y)
}

func TestPlayerController_MissingPlayer(t *testing.T) {
	w, c := newTestPlayer(t)
	w.DestroyEntity(c.ID())

	assert.NotPanics(t, func() { c.Update(true, false, true) })
	assert.False(t, c.Immune())
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "left", DirLeft.String())
	assert.Equal(t, "right", DirRight.String())
}
