package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/pixelrun/internal/ecs"
)

func TestCamera_Follow(t *testing.T) {
	tests := []struct {
		name        string
		playerX     int
		wantScrollX int
	}{
		{"clamped at the left edge", 100, 0},
		{"centred", 1000, 1000 - 400},
		// map 1600 + 600 extra, view 800
		{"clamped at the right edge", 2150, 2200 - 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := w.CreatePlayer(tt.playerX, 450, playerSpec, "idle", "run")
			c := NewCamera(w, 800, 768)
			c.SetBounds(0, 0, 1600+600, 0)
			c.StartFollow(player)

			c.Update()
			assert.Equal(t, tt.wantScrollX, c.ScrollX)
			assert.Zero(t, c.ScrollY, "zero bound height pins the vertical scroll")
		})
	}
}

func TestCamera_Unbounded(t *testing.T) {
	w := ecs.NewWorld()
	player := w.CreatePlayer(100, 100, playerSpec, "idle", "run")
	c := NewCamera(w, 800, 600)
	c.StartFollow(player)

	c.Update()
	assert.Equal(t, -300, c.ScrollX)
	assert.Equal(t, -200, c.ScrollY)
}

func TestCamera_WorldToScreen(t *testing.T) {
	c := NewCamera(ecs.NewWorld(), 800, 600)
	c.ScrollX, c.ScrollY = 250, 10

	sx, sy := c.WorldToScreen(300, 50)
	assert.Equal(t, 50, sx)
	assert.Equal(t, 40, sy)
}
