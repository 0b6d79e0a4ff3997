package gifglyph

import (
	"fmt"
	"io"
	"os"

	"github.com/bodgit/gifglyph/gif"
)

func (r *Renderer) render(name string, rd io.Reader) error {
	d, err := gif.NewDecoder(rd)
	if err != nil {
		return decoderError(err)
	}

	config := d.Config()
	r.logger.Printf("%s: %dx%d, %d global colors, background %d\n", name, config.Width, config.Height, len(config.Palette), config.Background)

	c := NewCompositor(config)
	for {
		f, err := d.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return decoderError(err)
		}

		r.logger.Printf("%s: frame %d at %v, %d local colors, transparent %d, disposal %s\n", name, c.Frame(), f.Rect, len(f.Palette), f.Transparent, f.Disposal)

		if err := c.Render(r.out, f); err != nil {
			return err
		}
	}

	r.logger.Printf("%s: %d frames\n", name, c.Frame())

	return nil
}

// Render writes every frame of the GIF stored in file. Frames written before
// any error remain written.
func (r *Renderer) Render(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return &IOError{err}
	}
	defer f.Close()

	return r.render(file, f)
}

// Run renders each file in turn. A failure is reported as a single line on
// the error stream and processing continues with the next file. An error is
// returned if any file failed.
func (r *Renderer) Run(files ...string) error {
	var failed int
	for _, file := range files {
		if err := r.Render(file); err != nil {
			fmt.Fprintf(r.errOut, "file %s: %v\n", file, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}

	return nil
}
