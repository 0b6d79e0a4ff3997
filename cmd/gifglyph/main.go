package main

import (
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/gifglyph"
	"github.com/urfave/cli/v2"
)

// render writes every file to out, returning an exit status of 1 if any of
// them failed
func render(out, errOut io.Writer, verbose bool, files ...string) error {
	logger := log.New(ioutil.Discard, "", 0)
	if verbose {
		logger.SetOutput(errOut)
	}

	r := gifglyph.New(out, errOut, logger)

	// Each failure has already been reported
	if err := r.Run(files...); err != nil {
		logger.Println(err)
		return cli.NewExitError("", 1)
	}

	return nil
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "gifglyph"
	app.Usage = "Render animated GIF images as character art"
	app.Version = "1.0.0"
	app.ArgsUsage = "[FILE...]"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"GIFGLYPH_VERBOSE"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		return render(os.Stdout, os.Stderr, c.Bool("verbose"), c.Args().Slice()...)
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
