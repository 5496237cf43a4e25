package scene

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// baseFontSize is the pixel height of basicfont.Face7x13.
const baseFontSize = 13

var face = text.NewGoXFace(basicfont.Face7x13)

// Align positions text relative to the x coordinate it is drawn at.
type Align = text.Align

const (
	AlignStart  = text.AlignStart
	AlignCenter = text.AlignCenter
	AlignEnd    = text.AlignEnd
)

// DrawText draws s with its top edge at y, scaled to size pixels.
func DrawText(dst *ebiten.Image, s string, x, y float64, size int, clr color.Color, align Align) {
	scale := fontScale(size)
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.LineSpacing = baseFontSize * 1.4
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// TextWidth returns the width of a single line drawn at size pixels.
func TextWidth(s string, size int) float64 {
	return float64(utf8.RuneCountInString(s)*basicfont.Face7x13.Advance) * fontScale(size)
}

func fontScale(size int) float64 {
	if size <= 0 {
		return 1
	}
	return float64(size) / baseFontSize
}
