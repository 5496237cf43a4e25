package system

import (
	"github.com/younwookim/pixelrun/internal/ecs"
)

// Camera scrolls the world view to follow an entity within bounds.
type Camera struct {
	ScrollX, ScrollY int
	ViewW, ViewH     int

	world  *ecs.World
	target ecs.EntityID

	bounded                 bool
	boundX, boundY          int
	boundWidth, boundHeight int
}

// NewCamera creates a camera with a viewW x viewH view.
func NewCamera(w *ecs.World, viewW, viewH int) *Camera {
	return &Camera{world: w, ViewW: viewW, ViewH: viewH}
}

// StartFollow keeps target centred in the view.
func (c *Camera) StartFollow(target ecs.EntityID) {
	c.target = target
}

// SetBounds limits scrolling to the rectangle. A bound smaller than the
// view pins that axis to the bound's origin.
func (c *Camera) SetBounds(x, y, width, height int) {
	c.bounded = true
	c.boundX, c.boundY = x, y
	c.boundWidth, c.boundHeight = width, height
}

// Update recentres on the target and applies the bounds.
func (c *Camera) Update() {
	if c.target != 0 && c.world.Exists(c.target) {
		c.ScrollX = c.world.CenterX(c.target) - c.ViewW/2
		c.ScrollY = c.world.CenterY(c.target) - c.ViewH/2
	}
	if c.bounded {
		c.ScrollX = clampScroll(c.ScrollX, c.boundX, c.boundWidth, c.ViewW)
		c.ScrollY = clampScroll(c.ScrollY, c.boundY, c.boundHeight, c.ViewH)
	}
}

func clampScroll(scroll, origin, size, view int) int {
	maxScroll := max(origin, origin+size-view)
	return min(max(scroll, origin), maxScroll)
}

// WorldToScreen converts world pixels to screen pixels.
func (c *Camera) WorldToScreen(x, y int) (int, int) {
	return x - c.ScrollX, y - c.ScrollY
}
