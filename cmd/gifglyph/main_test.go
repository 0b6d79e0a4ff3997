package main

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func writeGIF(t *testing.T, file string) {
	t.Helper()
	p := color.Palette{color.Black, color.White}
	m := image.NewPaletted(image.Rect(0, 0, 1, 1), p)
	b := new(bytes.Buffer)
	require.NoError(t, gif.EncodeAll(b, &gif.GIF{
		Image:           []*image.Paletted{m},
		Delay:           []int{0},
		BackgroundIndex: 1,
		Config: image.Config{
			ColorModel: p,
			Width:      1,
			Height:     1,
		},
	}))
	require.NoError(t, ioutil.WriteFile(file, b.Bytes(), 0644))
}

func TestRenderExitStatus(t *testing.T) {
	dir, err := ioutil.TempDir("", "gifglyph")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	good := filepath.Join(dir, "good.gif")
	writeGIF(t, good)
	missing := filepath.Join(dir, "missing.gif")

	tables := []struct {
		files []string
		code  int
	}{
		{nil, 0},
		{[]string{good}, 0},
		{[]string{good, good}, 0},
		{[]string{missing}, 1},
		{[]string{good, missing}, 1},
	}

	for _, table := range tables {
		out, errOut := new(bytes.Buffer), new(bytes.Buffer)
		err := render(out, errOut, false, table.files...)

		if table.code == 0 {
			assert.NoError(t, err, "%v", table.files)
			assert.Equal(t, 0, errOut.Len(), "%v", table.files)
			continue
		}

		ec, ok := err.(cli.ExitCoder)
		require.True(t, ok, "%v", table.files)
		assert.Equal(t, table.code, ec.ExitCode(), "%v", table.files)
		assert.Equal(t, "", ec.Error())
		assert.Equal(t, 1, strings.Count(errOut.String(), "\n"), "%v", table.files)
	}
}

func TestRenderVerbose(t *testing.T) {
	errOut := new(bytes.Buffer)
	err := render(new(bytes.Buffer), errOut, true, filepath.Join("testdata", "missing.gif"))
	require.Error(t, err)

	// The failure line followed by the summary
	assert.Contains(t, errOut.String(), "file "+filepath.Join("testdata", "missing.gif")+": io error: ")
	assert.Contains(t, errOut.String(), "1 of 1 files failed")
}
