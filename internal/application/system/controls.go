package system

import (
	"fmt"
	"math"

	"github.com/younwookim/pixelrun/internal/infrastructure/config"
)

// Button font metrics for the 32px panel font.
const (
	buttonCharWidth = 18
	buttonHeight    = 40
)

// Button is a text button centred on (X, Y).
type Button struct {
	Text string
	X, Y int
	W, H int

	callback func()
}

// Contains reports whether the screen point is on the button.
func (b *Button) Contains(x, y int) bool {
	return x >= b.X-b.W/2 && x < b.X+b.W/2 && y >= b.Y-b.H/2 && y < b.Y+b.H/2
}

// Press invokes the button's callback.
func (b *Button) Press() {
	if b.callback != nil {
		b.callback()
	}
}

// Joystick is a virtual stick that only reports left and right.
type Joystick struct {
	X, Y     int // base centre
	Radius   int
	ForceMin int // drag distance before a direction counts

	ThumbX, ThumbY int
	Left, Right    bool

	pointer  int
	dragging bool
}

// Update follows the pointer that started a drag on the base.
func (j *Joystick) Update(pointers []Pointer) {
	if j.dragging {
		p, ok := findPointer(pointers, j.pointer)
		if !ok || !p.Down {
			j.release()
			return
		}
		j.moveThumb(p.X, p.Y)
		return
	}

	for _, p := range pointers {
		if p.Pressed && j.onBase(p.X, p.Y) {
			j.pointer = p.ID
			j.dragging = true
			j.moveThumb(p.X, p.Y)
			return
		}
	}
}

// Force returns the thumb's distance from the base centre.
func (j *Joystick) Force() float64 {
	return math.Hypot(float64(j.ThumbX-j.X), float64(j.ThumbY-j.Y))
}

// Dragging reports whether a pointer holds the stick.
func (j *Joystick) Dragging() bool { return j.dragging }

func (j *Joystick) onBase(x, y int) bool {
	dx, dy := float64(x-j.X), float64(y-j.Y)
	return dx*dx+dy*dy <= float64(j.Radius*j.Radius)
}

func (j *Joystick) moveThumb(x, y int) {
	dx, dy := float64(x-j.X), float64(y-j.Y)
	dist := math.Hypot(dx, dy)
	if r := float64(j.Radius); dist > r {
		dx, dy = dx*r/dist, dy*r/dist
		dist = r
	}
	j.ThumbX = j.X + int(math.Round(dx))
	j.ThumbY = j.Y + int(math.Round(dy))

	j.Left, j.Right = false, false
	if dist >= float64(j.ForceMin) {
		j.Left = dx < 0
		j.Right = dx > 0
	}
}

func (j *Joystick) release() {
	j.dragging = false
	j.ThumbX, j.ThumbY = j.X, j.Y
	j.Left, j.Right = false, false
}

func findPointer(pointers []Pointer, id int) (Pointer, bool) {
	for _, p := range pointers {
		if p.ID == id {
			return p, true
		}
	}
	return Pointer{}, false
}

// ControlPanel is the on-screen strip under the map holding the joystick
// and the action buttons.
type ControlPanel struct {
	X, Y          int
	Width, Height int

	Joystick *Joystick
	Buttons  []*Button

	buttonX int
}

// NewControlPanel places the panel between mapHeight and gameHeight.
func NewControlPanel(mapHeight, gameHeight, gameWidth int, cfg config.ControlsConfig) *ControlPanel {
	height := gameHeight - mapHeight
	centreY := mapHeight + height/2
	return &ControlPanel{
		X:      0,
		Y:      mapHeight,
		Width:  gameWidth,
		Height: height,
		Joystick: &Joystick{
			X:        cfg.JoystickX,
			Y:        centreY,
			Radius:   cfg.JoystickRadius,
			ForceMin: cfg.ForceMin,
			ThumbX:   cfg.JoystickX,
			ThumbY:   centreY,
		},
		buttonX: gameWidth - cfg.ButtonInset,
	}
}

// SetButtons replaces the buttons, spread evenly down the panel.
func (p *ControlPanel) SetButtons(texts []string, callbacks []func()) error {
	if len(texts) != len(callbacks) {
		return fmt.Errorf("set buttons: %d texts but %d callbacks", len(texts), len(callbacks))
	}
	n := len(texts)
	p.Buttons = make([]*Button, 0, n)
	for i, text := range texts {
		p.Buttons = append(p.Buttons, &Button{
			Text:     text,
			X:        p.buttonX,
			Y:        p.Y + p.Height*(i+1)/(n+1),
			W:        len(text) * buttonCharWidth,
			H:        buttonHeight,
			callback: callbacks[i],
		})
	}
	return nil
}

// Update feeds pointers to the joystick and presses touched buttons.
func (p *ControlPanel) Update(pointers []Pointer) {
	p.Joystick.Update(pointers)

	for _, ptr := range pointers {
		if !ptr.Pressed {
			continue
		}
		for _, b := range p.Buttons {
			if b.Contains(ptr.X, ptr.Y) {
				b.Press()
			}
		}
	}
}

// CursorKeys returns the joystick as left and right keys.
func (p *ControlPanel) CursorKeys() (left, right bool) {
	return p.Joystick.Left, p.Joystick.Right
}
