package signboard

import (
	"fmt"

	"github.com/travigo/signboard/pkg/layout"
	"github.com/urfave/cli/v2"
)

func RegisterMetricsCLI() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Print glyph sizes and the character grid of every font for a panel size",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "width",
				Value:   128,
				Usage:   "panel width in pixels",
				EnvVars: []string{"SIGNBOARD_WIDTH"},
			},
			&cli.IntFlag{
				Name:    "height",
				Value:   64,
				Usage:   "panel height in pixels",
				EnvVars: []string{"SIGNBOARD_HEIGHT"},
			},
		},
		Action: func(c *cli.Context) error {
			for _, name := range layout.FontNames() {
				font, err := layout.FontByName(name)
				if err != nil {
					return err
				}

				glyphs := layout.MeasureFont(font)
				grid, err := layout.NewGrid(c.Int("width"), c.Int("height"), glyphs)
				if err != nil {
					fmt.Fprintf(c.App.Writer, "%-10s glyph %dx%d  %v\n", name, glyphs.Width, glyphs.Height, err)
					continue
				}

				fmt.Fprintf(c.App.Writer, "%-10s glyph %dx%d  grid %d columns x %d rows\n", name, glyphs.Width, glyphs.Height, grid.Columns, grid.Rows)
			}

			return nil
		},
	}
}
