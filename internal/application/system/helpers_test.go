package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younwookim/pixelrun/internal/domain/tilemap"
	"github.com/younwookim/pixelrun/internal/infrastructure/config"
)

// newTestStage builds a map of 32px tiles where the listed (tx, ty) cells are solid.
func newTestStage(t *testing.T, width, height int, solid ...[2]int) *tilemap.Tilemap {
	t.Helper()
	data := make([]int, width*height)
	for _, c := range solid {
		data[c[1]*width+c[0]] = 1
	}
	tm, err := tilemap.New(width, height, 32, 32, "Tile Layer", data, nil)
	require.NoError(t, err)
	tm.SetCollision(1)
	return tm
}

// groundRow returns the cells of a full-width floor at row ty.
func groundRow(width, ty int) [][2]int {
	cells := make([][2]int, 0, width)
	for tx := 0; tx < width; tx++ {
		cells = append(cells, [2]int{tx, ty})
	}
	return cells
}

func testSettings(gravity float64) config.PhysicsSettings {
	return config.PhysicsSettings{
		Substeps:     10,
		Gravity:      gravity,
		MaxFallSpeed: 600,
		RestSpeed:    20,
	}
}
