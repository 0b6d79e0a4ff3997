package gifglyph

import (
	"errors"

	"github.com/bodgit/gifglyph/gif"
)

// IOError is returned when an input cannot be opened or read, or when output
// cannot be written.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return "io error: " + e.Err.Error() }

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error { return e.Err }

// DecodeError is returned when an input is not a well-formed GIF, including
// frames that fall outside of the logical screen or that reference colors
// missing from their palette.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode error: " + e.Err.Error() }

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Errors from the decoder are either format errors or failures of the
// underlying reader
func decoderError(err error) error {
	var fe gif.FormatError
	if errors.As(err, &fe) {
		return &DecodeError{err}
	}
	return &IOError{err}
}
