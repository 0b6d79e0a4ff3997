/*
Package canvas implements a fixed size grid of glyphs along with the
rectangle operations needed to composite animation frames onto it.

Pixels are stored row-major so the glyph at (x, y) lives at offset
x + y*width. Every canvas starts out filled with glyph.Sentinel.
*/
package canvas

import (
	"bufio"
	"image"
	"io"
	"strings"

	"github.com/bodgit/gifglyph/glyph"
)

// Canvas is a width by height grid of glyphs.
type Canvas struct {
	Pix    []glyph.Glyph
	Width  int
	Height int
}

// New returns a canvas of the given dimensions filled with glyph.Sentinel.
func New(width, height int) *Canvas {
	c := &Canvas{
		Pix:    make([]glyph.Glyph, width*height),
		Width:  width,
		Height: height,
	}
	Erase(c.Bounds(), width, c.Pix)
	return c
}

// Bounds returns the rectangle covered by the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// At returns the glyph at (x, y).
func (c *Canvas) At(x, y int) glyph.Glyph {
	return c.Pix[x+y*c.Width]
}

// Set stores g at (x, y).
func (c *Canvas) Set(x, y int, g glyph.Glyph) {
	c.Pix[x+y*c.Width] = g
}

// Copy copies every pixel within r from src to dst, both of which are
// canvases of the given width. Pixels outside of r are untouched.
func Copy(r image.Rectangle, width int, src, dst []glyph.Glyph) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := r.Min.X + y*width
		j := r.Max.X + y*width
		copy(dst[i:j], src[i:j])
	}
}

// Erase resets every pixel within r of buf, a canvas of the given width, to
// glyph.Sentinel. Pixels outside of r are untouched.
func Erase(r image.Rectangle, width int, buf []glyph.Glyph) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			buf[x+y*width] = glyph.Sentinel
		}
	}
}

// WriteTo writes the canvas to w as Height lines of Width glyphs, each line
// terminated by a newline. It implements the io.WriterTo interface.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for y := 0; y < c.Height; y++ {
		for _, g := range c.Pix[y*c.Width : (y+1)*c.Width] {
			m, err := bw.WriteRune(rune(g))
			n += int64(m)
			if err != nil {
				return n, err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// String returns the canvas as it would be written by WriteTo.
func (c *Canvas) String() string {
	var b strings.Builder
	c.WriteTo(&b)
	return b.String()
}
