package display

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/travigo/signboard/pkg/layout"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	Foreground = color.RGBA{R: 255, G: 160, B: 0, A: 255}
	Background = color.RGBA{A: 255}
)

// Framebuffer renders rows onto an in-memory panel image and publishes every
// frame as a PNG so an external process can push it to the hardware.
type Framebuffer struct {
	Path string
	Font tinyfont.Fonter

	glyphs layout.GlyphMetrics
	image  *image.RGBA
	mutex  sync.Mutex
}

var _ drivers.Displayer = (*panel)(nil)

type panel struct {
	framebuffer *Framebuffer
}

func (p *panel) Size() (x, y int16) {
	bounds := p.framebuffer.image.Bounds()
	return int16(bounds.Dx()), int16(bounds.Dy())
}

func (p *panel) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{X: int(x), Y: int(y)}).In(p.framebuffer.image.Bounds()) {
		return
	}
	p.framebuffer.image.SetRGBA(int(x), int(y), c)
}

func (p *panel) Display() error {
	return p.framebuffer.publish()
}

func NewFramebuffer(path string, width int, height int, font tinyfont.Fonter) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	if font == nil {
		return nil, fmt.Errorf("framebuffer needs a font")
	}

	return &Framebuffer{
		Path:   path,
		Font:   font,
		glyphs: layout.MeasureFont(font),
		image:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

func (f *Framebuffer) Grid() (layout.Grid, error) {
	bounds := f.image.Bounds()
	return layout.NewGrid(bounds.Dx(), bounds.Dy(), f.glyphs)
}

func (f *Framebuffer) fill(c color.RGBA) {
	bounds := f.image.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			f.image.SetRGBA(x, y, c)
		}
	}
}

func (f *Framebuffer) Show(rows []string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	display := &panel{framebuffer: f}

	f.fill(Background)
	for index, row := range rows {
		baseline := int16((index+1)*f.glyphs.Height - 1)
		tinyfont.WriteLine(display, f.Font, 0, baseline, row, Foreground)
	}

	return display.Display()
}

func (f *Framebuffer) Clear() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.fill(Background)

	return (&panel{framebuffer: f}).Display()
}

func (f *Framebuffer) Close() error {
	return f.Clear()
}

// Pixel reports the colour of a single panel pixel
func (f *Framebuffer) Pixel(x int, y int) color.RGBA {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.image.RGBAAt(x, y)
}

func (f *Framebuffer) publish() error {
	if f.Path == "" {
		return nil
	}

	temporary, err := os.CreateTemp(filepath.Dir(f.Path), ".signboard-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(temporary.Name())

	if err := png.Encode(temporary, f.image); err != nil {
		temporary.Close()
		return err
	}
	if err := temporary.Close(); err != nil {
		return err
	}

	if err := os.Rename(temporary.Name(), f.Path); err != nil {
		return err
	}

	log.Debug().Str("path", f.Path).Msg("Published frame")

	return nil
}
