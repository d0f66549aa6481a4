package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/semitile"
	simage "github.com/bodgit/semitile/image"
	"github.com/bodgit/semitile/tilemap"
	"github.com/urfave/cli/v2"
)

const defaultDB = "semitile.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func options(c *cli.Context) (simage.Options, error) {
	f, err := tilemap.ParseFormat(c.String("format"))
	if err != nil {
		return simage.Options{}, err
	}
	return simage.Options{Format: f, Flips: c.Bool("flips")}, nil
}

func open(c *cli.Context) (*semitile.Semitile, error) {
	o, err := options(c)
	if err != nil {
		return nil, err
	}
	return semitile.New(c.String("db"), o.Format, o.Flips, newLogger(c))
}

func main() {
	app := cli.NewApp()

	app.Name = "semitile"
	app.Usage = "Background tile, palette and tilemap conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SEMITILE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.StringFlag{
			Name:    "format",
			EnvVars: []string{"SEMITILE_FORMAT"},
			Value:   tilemap.FormatA.String(),
			Usage:   "tilemap entry format, \"a\" (8 palettes & priority) or \"b\" (16 palettes)",
		},
		&cli.BoolFlag{
			Name:  "flips",
			Usage: "reuse mirrored tiles",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "import",
			Usage:       "Convert and store every image in a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer s.Close()

				if err := s.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Write the palette, tiles and tilemap of stored assets",
			Description: "",
			ArgsUsage:   "NAME...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   cwd,
					Usage:   "output directory",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer s.Close()

				for _, name := range c.Args().Slice() {
					if err := s.Export(name, c.String("output")); err != nil {
						return cli.NewExitError(fmt.Errorf("%s: %v", name, err), 1)
					}
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert images without storing them",
			Description: "",
			ArgsUsage:   "FILE...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   cwd,
					Usage:   "output directory",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				o, err := options(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				logger := newLogger(c)
				for _, file := range c.Args().Slice() {
					if err := semitile.ConvertFile(file, c.String("output"), o); err != nil {
						return cli.NewExitError(fmt.Errorf("%s: %v", file, err), 1)
					}
					logger.Printf("Converted \"%s\"\n", file)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List stored assets",
			Description: "",
			Action: func(c *cli.Context) error {
				s, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer s.Close()

				names, err := s.DB().Names()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, name := range names {
					fmt.Println(name)
				}

				return nil
			},
		},
		{
			Name:        "delete",
			Usage:       "Remove stored assets",
			Description: "",
			ArgsUsage:   "NAME...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer s.Close()

				for _, name := range c.Args().Slice() {
					if err := s.DB().DeleteAsset(name); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
