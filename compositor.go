package gifglyph

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/bodgit/gifglyph/canvas"
	"github.com/bodgit/gifglyph/gif"
	"github.com/bodgit/gifglyph/glyph"
)

var (
	errBounds = errors.New("frame bounds outside of image bounds")
	errPixels = errors.New("frame pixel data does not match its bounds")
)

// Compositor builds up the visible canvas of a GIF one frame at a time.
//
// Two canvases are kept; current holds what is displayed and previous holds
// the last composited state used to undo frames with DisposalPrevious.
type Compositor struct {
	config   gif.Config
	current  *canvas.Canvas
	previous *canvas.Canvas
	n        int
}

// NewCompositor returns a Compositor for a GIF with the given logical screen.
func NewCompositor(config gif.Config) *Compositor {
	return &Compositor{
		config:   config,
		current:  canvas.New(config.Width, config.Height),
		previous: canvas.New(config.Width, config.Height),
	}
}

// Frame returns the number of frames rendered so far.
func (c *Compositor) Frame() int {
	return c.n
}

// Canvas returns the current canvas.
func (c *Compositor) Canvas() *canvas.Canvas {
	return c.current
}

// Previous returns the canvas used to restore frames with DisposalPrevious.
func (c *Compositor) Previous() *canvas.Canvas {
	return c.previous
}

func (c *Compositor) palette(f *gif.Frame) color.Palette {
	if f.Palette != nil {
		return f.Palette
	}
	return c.config.Palette
}

func (c *Compositor) transparent(f *gif.Frame) int {
	if f.Transparent >= 0 {
		return f.Transparent
	}
	return c.config.Background
}

func (c *Compositor) check(f *gif.Frame) error {
	r, b := f.Rect, c.current.Bounds()
	if r != r.Canon() || r.Min.X < b.Min.X || r.Min.Y < b.Min.Y || r.Max.X > b.Max.X || r.Max.Y > b.Max.Y {
		return &DecodeError{fmt.Errorf("%w: %v not in %v", errBounds, r, b)}
	}
	if len(f.Pix) != f.Rect.Dx()*f.Rect.Dy() {
		return &DecodeError{errPixels}
	}
	return nil
}

// Composite draws f onto the current canvas. Pixels using the transparent
// color index leave the canvas untouched.
func (c *Compositor) Composite(f *gif.Frame) error {
	if err := c.check(f); err != nil {
		return err
	}

	p := c.palette(f)
	transparent := c.transparent(f)

	width := f.Rect.Dx()
	for fy := 0; fy < f.Rect.Dy(); fy++ {
		for fx := 0; fx < width; fx++ {
			index := int(f.Pix[fx+fy*width])
			if index == transparent {
				continue
			}
			g, err := glyph.Pick(p, index)
			if err != nil {
				return &DecodeError{fmt.Errorf("%w: %d with %d colors", err, index, len(p))}
			}
			c.current.Set(f.Rect.Min.X+fx, f.Rect.Min.Y+fy, g)
		}
	}

	return nil
}

// Dispose prepares the canvases for the frame following f according to the
// disposal method of f. Only the area covered by f is changed.
func (c *Compositor) Dispose(f *gif.Frame) error {
	if err := c.check(f); err != nil {
		return err
	}

	switch f.Disposal {
	case gif.DisposalAny, gif.DisposalKeep:
		canvas.Copy(f.Rect, c.current.Width, c.current.Pix, c.previous.Pix)
	case gif.DisposalPrevious:
		canvas.Copy(f.Rect, c.current.Width, c.previous.Pix, c.current.Pix)
	case gif.DisposalBackground:
		canvas.Erase(f.Rect, c.current.Width, c.current.Pix)
	default:
		return &DecodeError{fmt.Errorf("unknown disposal method %d", f.Disposal)}
	}

	return nil
}

// Render composites f, writes the numbered frame to w followed by a blank
// line and then applies the disposal method of f.
func (c *Compositor) Render(w io.Writer, f *gif.Frame) error {
	if err := c.Composite(f); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "frame %d\n", c.n); err != nil {
		return &IOError{err}
	}
	if _, err := c.current.WriteTo(w); err != nil {
		return &IOError{err}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return &IOError{err}
	}
	c.n++

	return c.Dispose(f)
}
