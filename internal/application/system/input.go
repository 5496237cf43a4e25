package system

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MousePointerID identifies the mouse among touch pointers.
const MousePointerID = -1

// Pointer is a mouse cursor or a touch.
type Pointer struct {
	ID      int
	X, Y    int
	Down    bool // held this frame
	Pressed bool // went down this frame
}

// InputState holds the current input state
type InputState struct {
	Left     bool
	Right    bool
	Jump     bool // held
	Fire     bool // just pressed
	Pause    bool // just pressed
	Restart  bool // just pressed
	Confirm  bool // just pressed
	Pointers []Pointer
}

var keyNames = map[string]ebiten.Key{
	"A":     ebiten.KeyA,
	"C":     ebiten.KeyC,
	"F":     ebiten.KeyF,
	"J":     ebiten.KeyJ,
	"K":     ebiten.KeyK,
	"X":     ebiten.KeyX,
	"Z":     ebiten.KeyZ,
	"ENTER": ebiten.KeyEnter,
	"SPACE": ebiten.KeySpace,
	"SHIFT": ebiten.KeyShift,
}

// KeyByName resolves a key name such as "F" or "Space".
func KeyByName(name string) (ebiten.Key, error) {
	key, ok := keyNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return key, nil
}

// InputSystem handles player input
type InputSystem struct {
	fireKey ebiten.Key
	touches []ebiten.TouchID
	pressed []ebiten.TouchID
}

// NewInputSystem creates a new input system. An empty fire key means F.
func NewInputSystem(fireKey string) (*InputSystem, error) {
	if fireKey == "" {
		fireKey = "F"
	}
	key, err := KeyByName(fireKey)
	if err != nil {
		return nil, fmt.Errorf("fire key: %w", err)
	}
	return &InputSystem{fireKey: key}, nil
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:     ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:    ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:     ebiten.IsKeyPressed(ebiten.KeySpace),
		Fire:     inpututil.IsKeyJustPressed(s.fireKey),
		Pause:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Restart:  inpututil.IsKeyJustPressed(ebiten.KeyR),
		Confirm:  inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Pointers: s.pointers(),
	}
}

func (s *InputSystem) pointers() []Pointer {
	mx, my := ebiten.CursorPosition()
	out := []Pointer{{
		ID:      MousePointerID,
		X:       mx,
		Y:       my,
		Down:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Pressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}}

	s.touches = ebiten.AppendTouchIDs(s.touches[:0])
	s.pressed = inpututil.AppendJustPressedTouchIDs(s.pressed[:0])
	for _, id := range s.touches {
		x, y := ebiten.TouchPosition(id)
		out = append(out, Pointer{
			ID:      int(id),
			X:       x,
			Y:       y,
			Down:    true,
			Pressed: containsTouch(s.pressed, id),
		})
	}
	return out
}

func containsTouch(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
