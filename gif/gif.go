/*
Package gif implements a streaming GIF decoder that yields each frame as it is
read rather than compositing the whole animation up front.

Frames are returned exactly as they are stored in the file; a rectangle on
the logical screen, an optional local color table, an optional transparent
color index, a disposal method and one palette index per pixel. Applying the
frames to a canvas is left to the caller.

The format is described at https://www.w3.org/Graphics/GIF/spec-gif89a.txt.
*/
package gif

import (
	"image"
	"image/color"
)

// Disposal describes what should happen to the area covered by a frame once
// it has been displayed.
type Disposal uint8

// Disposal methods as stored in the graphic control extension.
const (
	DisposalAny Disposal = iota
	DisposalKeep
	DisposalBackground
	DisposalPrevious
)

func (d Disposal) String() string {
	switch d {
	case DisposalAny:
		return "any"
	case DisposalKeep:
		return "keep"
	case DisposalBackground:
		return "background"
	case DisposalPrevious:
		return "previous"
	default:
		return "unknown"
	}
}

// Config holds the logical screen description of a GIF.
type Config struct {
	Width, Height int

	// Palette is the global color table, nil if the file has none.
	Palette color.Palette

	// Background is the index of the background color, or -1 if there is
	// no global color table for it to refer to.
	Background int
}

// Frame is a single image descriptor and its pixel data.
type Frame struct {
	// Rect is the area of the logical screen covered by the frame.
	Rect image.Rectangle

	// Palette is the local color table, nil if the frame uses the global
	// color table.
	Palette color.Palette

	// Transparent is the transparent color index, or -1 if not set.
	Transparent int

	Disposal Disposal

	// Pix holds one color index per pixel, Rect.Dx() pixels per row.
	Pix []uint8
}

// A FormatError reports that the input is not a valid GIF.
type FormatError string

func (e FormatError) Error() string { return "gif: " + string(e) }
