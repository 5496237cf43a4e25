// Package hud holds the on-screen numeric and text displays.
package hud

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Style describes how a display is drawn.
type Style struct {
	FontSize int
	Fill     color.RGBA
	Bold     bool
}

// DefaultStyle is 24px bold black text.
var DefaultStyle = Style{FontSize: 24, Fill: color.RGBA{A: 0xff}, Bold: true}

// ParseFill converts a "#rgb" or "#rrggbb" colour to RGBA.
func ParseFill(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse fill %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// NewStyle builds a style from a fill string, falling back to black.
func NewStyle(fontSize int, fill string, bold bool) Style {
	rgba, err := ParseFill(fill)
	if err != nil {
		rgba = DefaultStyle.Fill
	}
	return Style{FontSize: fontSize, Fill: rgba, Bold: bold}
}

// MetricDisplay is a labelled number pinned to the screen.
type MetricDisplay struct {
	Label string
	Value float64
	X, Y  int
	Style Style
}

// NewMetricDisplay creates a display showing initial.
func NewMetricDisplay(x, y int, label string, initial float64) *MetricDisplay {
	return &MetricDisplay{Label: label, Value: initial, X: x, Y: y, Style: DefaultStyle}
}

// Add adds delta to the value.
func (d *MetricDisplay) Add(delta float64) {
	d.Value += delta
}

// Reset sets the value back to zero.
func (d *MetricDisplay) Reset() {
	d.Value = 0
}

// Text returns "Label: value".
func (d *MetricDisplay) Text() string {
	return d.Label + ": " + FormatValue(d.Value)
}

// FormatValue prints integers without decimals and anything else with one.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// TextDisplay is a free-form line of text pinned to the screen.
type TextDisplay struct {
	X, Y  int
	Style Style

	text string
}

// NewTextDisplay creates a text display.
func NewTextDisplay(x, y int, text string) *TextDisplay {
	return &TextDisplay{X: x, Y: y, Style: DefaultStyle, text: text}
}

// SetText replaces the displayed text.
func (d *TextDisplay) SetText(text string) {
	d.text = text
}

// Text returns the displayed text.
func (d *TextDisplay) Text() string {
	return d.text
}
