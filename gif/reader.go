// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The block reader, extension handling and interlace table are derived from
// the standard library's image/gif decoder.

package gif

import (
	"bufio"
	"compress/lzw"
	"fmt"
	"image"
	"image/color"
	"io"
)

var (
	errNotEnough = FormatError("not enough image data")
	errTooMuch   = FormatError("too much image data")
	errBounds    = FormatError("frame bounds larger than image bounds")
)

// If the io.Reader does not also have ReadByte, then the decoder adds its own
// buffering.
type reader interface {
	io.Reader
	io.ByteReader
}

// Fields.
const (
	fColorTable     = 1 << 7
	fColorTableSize = 7

	// Image descriptor fields
	fInterlace = 1 << 6

	// Graphic control fields
	gcTransparent = 1 << 0
	gcDisposal    = 7 << 2
)

// Section indicators.
const (
	sExtension       = 0x21
	sImageDescriptor = 0x2c
	sTrailer         = 0x3b
)

// Extensions.
const (
	eText           = 0x01
	eGraphicControl = 0xf9
	eComment        = 0xfe
	eApplication    = 0xff
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = errNotEnough
	}
	return err
}

func readByte(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if err == io.EOF {
		err = errNotEnough
	}
	return b, err
}

// blockReader presents the data sub-blocks of an image as a single stream for
// the LZW decoder. The terminating zero length block is reported as io.EOF.
type blockReader struct {
	r     reader
	slice []byte
	err   error
	tmp   [256]byte
}

func (b *blockReader) Read(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if len(b.slice) == 0 {
		var n byte
		if n, b.err = readByte(b.r); b.err != nil {
			return 0, b.err
		}
		if n == 0 {
			b.err = io.EOF
			return 0, b.err
		}
		b.slice = b.tmp[:n]
		if b.err = readFull(b.r, b.slice); b.err != nil {
			return 0, b.err
		}
	}
	n := copy(p, b.slice)
	b.slice = b.slice[n:]
	return n, nil
}

// Decoder reads frames from a GIF one at a time.
type Decoder struct {
	r      reader
	config Config

	// Graphic control state waiting for the next image descriptor
	transparent int
	disposal    Disposal

	// Sticky error, io.EOF once the trailer has been read
	err error

	tmp [3 * 256]byte
}

// NewDecoder reads the header, logical screen descriptor and global color
// table from r and returns a Decoder positioned before the first frame.
func NewDecoder(r io.Reader) (*Decoder, error) {
	d := &Decoder{
		transparent: -1,
	}
	if rr, ok := r.(reader); ok {
		d.r = rr
	} else {
		d.r = bufio.NewReader(r)
	}

	if err := d.readHeaderAndScreenDescriptor(); err != nil {
		return nil, err
	}

	return d, nil
}

// Config returns the logical screen description.
func (d *Decoder) Config() Config {
	return d.config
}

func (d *Decoder) readHeaderAndScreenDescriptor() error {
	if err := readFull(d.r, d.tmp[:13]); err != nil {
		return err
	}

	switch version := string(d.tmp[:6]); version {
	case "GIF87a", "GIF89a":
	default:
		return FormatError(fmt.Sprintf("can't recognize format %q", version))
	}

	d.config = Config{
		Width:      int(d.tmp[6]) | int(d.tmp[7])<<8,
		Height:     int(d.tmp[8]) | int(d.tmp[9])<<8,
		Background: -1,
	}

	if fields := d.tmp[10]; fields&fColorTable != 0 {
		background := int(d.tmp[11])
		p, err := d.readColorTable(fields)
		if err != nil {
			return err
		}
		d.config.Palette = p
		d.config.Background = background
	}

	return nil
}

func (d *Decoder) readColorTable(fields byte) (color.Palette, error) {
	n := 1 << (1 + uint(fields&fColorTableSize))
	if err := readFull(d.r, d.tmp[:3*n]); err != nil {
		return nil, err
	}
	p := make(color.Palette, n)
	for i := range p {
		p[i] = color.RGBA{d.tmp[3*i+0], d.tmp[3*i+1], d.tmp[3*i+2], 0xff}
	}
	return p, nil
}

// Next returns the next frame. It returns io.EOF once the trailer has been
// reached. After any error, subsequent calls return the same error.
func (d *Decoder) Next() (*Frame, error) {
	if d.err != nil {
		return nil, d.err
	}

	f, err := d.next()
	if err != nil {
		d.err = err
		return nil, err
	}
	return f, nil
}

func (d *Decoder) next() (*Frame, error) {
	for {
		c, err := readByte(d.r)
		if err != nil {
			return nil, err
		}

		switch c {
		case sExtension:
			if err := d.readExtension(); err != nil {
				return nil, err
			}
		case sImageDescriptor:
			return d.readImageDescriptor()
		case sTrailer:
			return nil, io.EOF
		default:
			return nil, FormatError(fmt.Sprintf("unknown block type: 0x%.2x", c))
		}
	}
}

func (d *Decoder) readExtension() error {
	extension, err := readByte(d.r)
	if err != nil {
		return err
	}

	size := 0
	switch extension {
	case eText:
		size = 13
	case eGraphicControl:
		return d.readGraphicControl()
	case eComment:
		// Nothing but data sub-blocks
	case eApplication:
		b, err := readByte(d.r)
		if err != nil {
			return err
		}
		// Should be 11 but Adobe sometimes uses 10
		size = int(b)
	default:
		return FormatError(fmt.Sprintf("unknown extension 0x%.2x", extension))
	}

	if size > 0 {
		if err := readFull(d.r, d.tmp[:size]); err != nil {
			return err
		}
	}

	return d.skipBlocks()
}

func (d *Decoder) skipBlocks() error {
	for {
		n, err := readByte(d.r)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		if err := readFull(d.r, d.tmp[:n]); err != nil {
			return err
		}
	}
}

func (d *Decoder) readGraphicControl() error {
	if err := readFull(d.r, d.tmp[:6]); err != nil {
		return err
	}
	if d.tmp[0] != 4 {
		return FormatError(fmt.Sprintf("invalid graphic control extension block size: %d", d.tmp[0]))
	}

	// Reserved disposal methods are treated as unspecified
	d.disposal = Disposal((d.tmp[1] & gcDisposal) >> 2)
	if d.disposal > DisposalPrevious {
		d.disposal = DisposalAny
	}

	d.transparent = -1
	if d.tmp[1]&gcTransparent != 0 {
		d.transparent = int(d.tmp[4])
	}

	if d.tmp[5] != 0 {
		return FormatError("graphic control extension not terminated")
	}
	return nil
}

func (d *Decoder) readImageDescriptor() (*Frame, error) {
	if err := readFull(d.r, d.tmp[:9]); err != nil {
		return nil, err
	}

	left := int(d.tmp[0]) | int(d.tmp[1])<<8
	top := int(d.tmp[2]) | int(d.tmp[3])<<8
	width := int(d.tmp[4]) | int(d.tmp[5])<<8
	height := int(d.tmp[6]) | int(d.tmp[7])<<8
	fields := d.tmp[8]

	// Each image must fit within the logical screen, checked before the
	// pixel buffer is sized from untrusted dimensions
	r := image.Rect(left, top, left+width, top+height)
	if !r.In(image.Rect(0, 0, d.config.Width, d.config.Height)) {
		return nil, errBounds
	}

	f := &Frame{
		Rect:        r,
		Transparent: d.transparent,
		Disposal:    d.disposal,
		Pix:         make([]uint8, width*height),
	}

	// Graphic control only applies to the image that follows it
	d.transparent, d.disposal = -1, DisposalAny

	if fields&fColorTable != 0 {
		p, err := d.readColorTable(fields)
		if err != nil {
			return nil, err
		}
		f.Palette = p
	}

	if err := d.readImageData(f.Pix); err != nil {
		return nil, err
	}

	if fields&fInterlace != 0 {
		uninterlace(f.Pix, width, height)
	}

	return f, nil
}

func (d *Decoder) readImageData(pix []uint8) error {
	litWidth, err := readByte(d.r)
	if err != nil {
		return err
	}
	if litWidth < 2 || litWidth > 8 {
		return FormatError(fmt.Sprintf("LZW minimum code size out of range: %d", litWidth))
	}

	br := &blockReader{r: d.r}
	lzwr := lzw.NewReader(br, lzw.LSB, int(litWidth))
	defer lzwr.Close()

	if err := readFull(lzwr, pix); err != nil {
		return lzwError(br, err)
	}

	// The LZW stream should be exhausted, any sub-blocks left after the end
	// code are skipped
	if n, err := lzwr.Read(d.tmp[:1]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return lzwError(br, err)
		}
		return errTooMuch
	}
	for {
		if _, err := br.Read(d.tmp[:256]); err == io.EOF {
			break
		} else if err != nil {
			return err
		}
	}

	return nil
}

// The LZW reader passes through errors from the underlying reader, anything
// else it reports is a problem with the data
func lzwError(br *blockReader, err error) error {
	if br.err != nil && br.err != io.EOF {
		return br.err
	}
	if _, ok := err.(FormatError); ok {
		return err
	}
	return FormatError(err.Error())
}

type interlaceScan struct {
	skip, start int
}

var interlacing = []interlaceScan{
	{8, 0}, // Every 8th row, starting with row 0
	{8, 4}, // Every 8th row, starting with row 4
	{4, 2}, // Every 4th row, starting with row 2
	{2, 1}, // Every 2nd row, starting with row 1
}

func uninterlace(pix []uint8, width, height int) {
	if width == 0 || height == 0 {
		return
	}
	tmp := make([]uint8, len(pix))
	offset := 0
	for _, pass := range interlacing {
		for y := pass.start; y < height; y += pass.skip {
			copy(tmp[y*width:(y+1)*width], pix[offset:offset+width])
			offset += width
		}
	}
	copy(pix, tmp)
}
