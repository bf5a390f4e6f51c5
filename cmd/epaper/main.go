package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/timcal/epaper"
	"github.com/timcal/epaper/bmp"
	"github.com/timcal/epaper/display"
	"github.com/timcal/epaper/tricolor"
	"github.com/urfave/cli/v2"
)

const defaultDB = "epaper.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func parseSymbol(s string) (tricolor.Symbol, error) {
	for _, sym := range []tricolor.Symbol{tricolor.White, tricolor.Black, tricolor.Accent} {
		if strings.EqualFold(s, sym.String()) {
			return sym, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func newBuffer(c *cli.Context) (*display.Buffer, error) {
	p, err := display.ProfileByName(c.String("panel"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("width") {
		p.Width = c.Int("width")
	}
	if c.IsSet("height") {
		p.Height = c.Int("height")
	}
	if p.Width < 1 || p.Height < 1 {
		return nil, fmt.Errorf("invalid panel size %dx%d", p.Width, p.Height)
	}

	switch accent := c.String("accent"); accent {
	case "":
	case "red":
		p.Accent = tricolor.Red
	case "yellow":
		p.Accent = tricolor.Yellow
	default:
		return nil, fmt.Errorf("unknown accent %q", accent)
	}

	buf := display.NewFromProfile(p)

	bg, err := parseSymbol(c.String("background"))
	if err != nil {
		return nil, err
	}
	buf.Fill(bg)

	return buf, nil
}

func render(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	buf, err := newBuffer(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	var src epaper.Source
	if dir := c.String("dir"); dir != "" {
		src = epaper.NewFSSource(os.DirFS(dir))
	} else {
		db, err := epaper.NewAssetDB(c.String("db"), logger)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer db.Close()
		src = db
	}

	r := epaper.New(src, buf, logger)

	drawn := 0
	for _, name := range c.Args().Slice() {
		status := r.DrawBitmap(name, c.Int("x"), c.Int("y"), c.Bool("color"))
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, status)
		if status == epaper.Drawn {
			drawn++
		}
	}

	if file := c.String("output"); file != "" {
		if err := writePNG(file, buf.Image(), c.Int("scale")); err != nil {
			return cli.Exit(err, 1)
		}
	}

	if file := c.String("planes"); file != "" {
		if err := writePlanes(file, buf); err != nil {
			return cli.Exit(err, 1)
		}
	}

	if c.Bool("sixel") {
		if err := writeSixel(os.Stdout, buf.Image(), c.Int("scale")); err != nil {
			return cli.Exit(err, 1)
		}
	}

	if drawn == 0 {
		return cli.Exit("nothing drawn", 1)
	}

	return nil
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	for _, file := range c.Args().Slice() {
		f, err := os.Open(file)
		if err != nil {
			return cli.Exit(err, 1)
		}

		h, err := bmp.ReadHeader(f)
		f.Close()
		if err != nil {
			return cli.Exit(fmt.Errorf("%s: %w", file, err), 1)
		}

		order := "bottom-up"
		if h.TopDown {
			order = "top-down"
		}

		fmt.Printf("%s:\n", file)
		fmt.Printf("  File size:    %d\n", h.FileSize)
		fmt.Printf("  Image offset: %d\n", h.DataOffset)
		fmt.Printf("  Header size:  %d\n", h.HeaderSize)
		fmt.Printf("  Bit depth:    %d\n", h.BitCount)
		fmt.Printf("  Compression:  %d\n", h.Compression)
		fmt.Printf("  Image size:   %dx%d (%s)\n", h.Width, h.Height, order)
		fmt.Printf("  Row size:     %d\n", h.RowSize())
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "epaper"
	app.Usage = "Tri-color e-paper bitmap renderer"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"EPAPER_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to asset database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "import",
			Usage:     "Import bitmaps from a directory into the asset database",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := epaper.NewAssetDB(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := db.ImportDir(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Print bitmap header fields",
			ArgsUsage: "FILE...",
			Action:    info,
		},
		{
			Name:  "panels",
			Usage: "List known panel profiles",
			Action: func(c *cli.Context) error {
				for _, name := range display.ProfileNames() {
					p, _ := display.ProfileByName(name)
					accent := "none"
					switch p.Accent {
					case tricolor.Red:
						accent = "red"
					case tricolor.Yellow:
						accent = "yellow"
					}
					fmt.Printf("%-12s %dx%d accent %s\n", p.Name, p.Width, p.Height, accent)
				}
				return nil
			},
		},
		{
			Name:      "render",
			Usage:     "Draw bitmaps onto a panel buffer",
			ArgsUsage: "NAME...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "dir",
					Aliases: []string{"d"},
					EnvVars: []string{"EPAPER_DIR"},
					Usage:   "read bitmaps from `DIRECTORY` instead of the database",
				},
				&cli.IntFlag{
					Name:  "x",
					Usage: "left edge of the bitmap",
				},
				&cli.IntFlag{
					Name:  "y",
					Usage: "top edge of the bitmap",
				},
				&cli.BoolFlag{
					Name:    "color",
					Aliases: []string{"c"},
					Usage:   "use the accent color",
				},
				&cli.StringFlag{
					Name:    "panel",
					Aliases: []string{"p"},
					EnvVars: []string{"EPAPER_PANEL"},
					Value:   display.DefaultProfile,
					Usage:   "panel profile, see \"panels\"",
				},
				&cli.IntFlag{
					Name:  "width",
					Usage: "override panel width",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "override panel height",
				},
				&cli.StringFlag{
					Name:  "accent",
					Usage: "override accent color (red or yellow)",
				},
				&cli.StringFlag{
					Name:  "background",
					Value: tricolor.White.String(),
					Usage: "fill the panel with white, black or accent before drawing",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write a PNG preview to `FILE`",
				},
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "preview scale factor",
				},
				&cli.StringFlag{
					Name:  "planes",
					Usage: "write the packed black and accent planes to `FILE`",
				},
				&cli.BoolFlag{
					Name:  "sixel",
					Usage: "print a sixel preview to the terminal",
				},
			},
			Action: render,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
