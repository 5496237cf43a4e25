// Package menu provides the button screens of the game shell: start menu,
// settings, instructions and game over.
package menu

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/pixelrun/internal/application/scene"
	"github.com/younwookim/pixelrun/internal/application/system"
)

// Layout in screen pixels.
const (
	titleSize     = 48
	lineSize      = 20
	buttonSize    = 24
	buttonHeight  = 44
	buttonPadding = 40
	buttonGap     = 16
	lineHeight    = 30
)

var (
	colorBG      = color.RGBA{26, 26, 46, 255}
	colorTitle   = color.RGBA{255, 210, 81, 255}
	colorLine    = color.RGBA{220, 220, 230, 255}
	colorButton  = color.RGBA{60, 60, 90, 255}
	colorFocused = color.RGBA{90, 120, 200, 255}
	colorLabel   = color.RGBA{255, 255, 255, 255}
)

// Action runs when an item is chosen. A nil scene keeps the menu on screen.
type Action func() (scene.Scene, error)

// Item is a clickable button.
type Item struct {
	ID     string // id of the matching element in the HTML shell page
	Label  string
	Keys   []ebiten.Key // keyboard shortcuts
	Action Action
}

// Input is one frame of menu input.
type Input struct {
	Up, Down bool
	Confirm  bool
	Back     bool
	Keys     []ebiten.Key // just pressed
	Pointers []system.Pointer
}

// Menu is a titled screen with some text lines and a column of buttons.
// Arrow keys move the focus, Enter chooses the focused button and Escape
// runs Back.
type Menu struct {
	Title string
	Lines []string
	Items []*Item
	Back  Action

	width, height int
	focus         int

	input *system.InputSystem
	keys  []ebiten.Key
}

// New creates a menu screen of the given size.
func New(title string, width, height int, items ...*Item) *Menu {
	input, err := system.NewInputSystem("")
	if err != nil {
		log.Printf("[Menu] %v", err)
	}
	return &Menu{
		Title:  title,
		Items:  items,
		width:  width,
		height: height,
		input:  input,
	}
}

// Item returns the item with the given id.
func (m *Menu) Item(id string) *Item {
	for _, it := range m.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Focus returns the index of the focused item.
func (m *Menu) Focus() int { return m.focus }

// Update reads the keyboard and pointers (implements scene.Scene)
func (m *Menu) Update(_ float64) (scene.Scene, error) {
	return m.Step(m.readInput())
}

func (m *Menu) readInput() Input {
	m.keys = inpututil.AppendJustPressedKeys(m.keys[:0])
	in := Input{
		Up:   inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		Down: inpututil.IsKeyJustPressed(ebiten.KeyArrowDown),
		Keys: m.keys,
	}
	if m.input != nil {
		state := m.input.GetInput()
		in.Confirm = state.Confirm
		in.Back = state.Pause
		in.Pointers = state.Pointers
	}
	return in
}

// Step applies one frame of input.
func (m *Menu) Step(in Input) (scene.Scene, error) {
	if len(m.Items) > 0 {
		if in.Up {
			m.focus = (m.focus + len(m.Items) - 1) % len(m.Items)
		}
		if in.Down {
			m.focus = (m.focus + 1) % len(m.Items)
		}
	}

	if p, ok := pressedPointer(in.Pointers); ok {
		for i := range m.Items {
			if m.contains(i, p.X, p.Y) {
				m.focus = i
				return m.choose(i)
			}
		}
	}

	for _, key := range in.Keys {
		for i, it := range m.Items {
			for _, k := range it.Keys {
				if k == key {
					m.focus = i
					return m.choose(i)
				}
			}
		}
	}

	if in.Confirm && len(m.Items) > 0 {
		return m.choose(m.focus)
	}
	if in.Back && m.Back != nil {
		return m.Back()
	}
	return nil, nil
}

func (m *Menu) choose(i int) (scene.Scene, error) {
	if m.Items[i].Action == nil {
		return nil, nil
	}
	return m.Items[i].Action()
}

func pressedPointer(pointers []system.Pointer) (system.Pointer, bool) {
	for _, p := range pointers {
		if p.Pressed {
			return p, true
		}
	}
	return system.Pointer{}, false
}

// ButtonRect returns the screen rectangle of item i.
func (m *Menu) ButtonRect(i int) (x, y, w, h int) {
	w = int(scene.TextWidth(m.Items[i].Label, buttonSize)) + buttonPadding
	h = buttonHeight
	x = (m.width - w) / 2
	y = m.buttonsTop() + i*(buttonHeight+buttonGap)
	return x, y, w, h
}

func (m *Menu) buttonsTop() int {
	linesEnd := m.height/5 + titleSize + 24 + len(m.Lines)*lineHeight + 24
	return max(m.height/2, linesEnd)
}

func (m *Menu) contains(i, px, py int) bool {
	x, y, w, h := m.ButtonRect(i)
	return px >= x && px < x+w && py >= y && py < y+h
}

// Draw renders the menu (implements scene.Scene)
func (m *Menu) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	cx := float64(m.width) / 2
	top := float64(m.height / 5)
	scene.DrawText(screen, m.Title, cx, top, titleSize, colorTitle, scene.AlignCenter)

	y := top + titleSize + 24
	for _, line := range m.Lines {
		scene.DrawText(screen, line, cx, y, lineSize, colorLine, scene.AlignCenter)
		y += lineHeight
	}

	for i, it := range m.Items {
		x, y, w, h := m.ButtonRect(i)
		c := colorButton
		if i == m.focus {
			c = colorFocused
		}
		ebitenutil.DrawRect(screen, float64(x), float64(y), float64(w), float64(h), c)
		labelY := float64(y) + float64(h-buttonSize)/2
		scene.DrawText(screen, it.Label, cx, labelY, buttonSize, colorLabel, scene.AlignCenter)
	}
}

// OnEnter resets the focus to the first button.
func (m *Menu) OnEnter() {
	m.focus = 0
}

// OnExit is called when leaving this scene
func (m *Menu) OnExit() {}
