/*
Package gifglyph is a library for rendering animated GIF images as a sequence
of character-art frames suitable for printing on a terminal.
*/
package gifglyph

import (
	"io"
	"log"
)

// Renderer writes the frames of each GIF it is given to an output stream,
// reporting failures per input rather than stopping.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	logger *log.Logger
}

// New returns a Renderer writing frames to out and per-input failures to
// errOut. Diagnostic messages are written to logger.
func New(out, errOut io.Writer, logger *log.Logger) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		logger: logger,
	}
}
