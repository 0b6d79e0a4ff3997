/*
Package glyph maps palette colors onto a small ordered set of intensity
glyphs suitable for printing on a terminal.

The intensity of a color is its Euclidean magnitude in RGB space normalized
against the brightest possible color, split evenly into five levels ranging
from a blank space through to a solid block.
*/
package glyph

import (
	"errors"
	"image/color"
	"math"
)

// Glyph is a single character cell on the canvas.
type Glyph rune

// Sentinel is used for canvas cells that have never been drawn or that have
// been erased.
const Sentinel Glyph = '▞'

// Levels holds the intensity glyphs ordered from darkest to brightest.
var Levels = [...]Glyph{' ', '░', '▒', '▓', '█'}

// ErrIndex is returned when a color index lies outside of the palette.
var ErrIndex = errors.New("glyph: color index out of range")

// Just over the squared magnitude of white so the result is always below
// len(Levels)
const bound = 255*255*3 + 1

// Level returns the index into Levels for the given 8-bit channel values.
func Level(r, g, b uint8) int {
	ri, gi, bi := uint32(r), uint32(g), uint32(b)
	sum := float64(ri*ri + gi*gi + bi*bi)
	return int(math.Sqrt(sum/bound) * float64(len(Levels)))
}

// Of returns the glyph for color c.
func Of(c color.Color) Glyph {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Levels[Level(n.R, n.G, n.B)]
}

// Pick returns the glyph for the color at index i in palette p.
func Pick(p color.Palette, i int) (Glyph, error) {
	if i < 0 || i >= len(p) {
		return 0, ErrIndex
	}
	return Of(p[i]), nil
}
