package layout

import (
	"fmt"
	"sort"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// Grid is the character grid a display offers for a given font
type Grid struct {
	Columns int
	Rows    int
}

type GlyphMetrics struct {
	Width  int
	Height int
}

// NewGrid derives the character grid from the display size in pixels and the glyph size
func NewGrid(width int, height int, glyphs GlyphMetrics) (Grid, error) {
	if glyphs.Width <= 0 || glyphs.Height <= 0 {
		return Grid{}, fmt.Errorf("invalid glyph size %dx%d", glyphs.Width, glyphs.Height)
	}

	grid := Grid{
		Columns: width / glyphs.Width,
		Rows:    height / glyphs.Height,
	}
	if grid.Columns < 2 || grid.Rows < 1 {
		return Grid{}, fmt.Errorf("display %dx%d too small for %dx%d glyphs", width, height, glyphs.Width, glyphs.Height)
	}

	return grid, nil
}

// MeasureFont finds the widest advance and tallest line over printable ASCII
func MeasureFont(font tinyfont.Fonter) GlyphMetrics {
	var metrics GlyphMetrics

	for r := rune(32); r < 128; r++ {
		info := font.GetGlyph(r).Info()

		width := int(info.XAdvance)
		if int(info.Width) > width {
			width = int(info.Width)
		}

		metrics.Width = max(metrics.Width, width)
		metrics.Height = max(metrics.Height, int(info.Height))
	}

	metrics.Height = max(metrics.Height, int(font.GetYAdvance()))

	return metrics
}

var fonts = map[string]tinyfont.Fonter{
	"tomthumb":  &tinyfont.TomThumb,
	"picopixel": &tinyfont.Picopixel,
	"org01":     &tinyfont.Org01,
	"freemono9": &freemono.Regular9pt7b,
}

func FontByName(name string) (tinyfont.Fonter, error) {
	font, ok := fonts[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown font %q", name)
	}

	return font, nil
}

func FontNames() []string {
	names := make([]string, 0, len(fonts))
	for name := range fonts {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
