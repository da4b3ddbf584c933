package renderer

import (
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/linuxmatters/jivescope/internal/config"
)

// Overlay draws a title caption near the bottom of the frame.
type Overlay struct {
	face  font.Face
	title string
}

// NewOverlay loads a TrueType font from disk and prepares the caption.
func NewOverlay(fontPath, title string, size float64) (*Overlay, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, err
	}

	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	return &Overlay{face: face, title: title}, nil
}

// Draw renders the title centered horizontally near the bottom edge.
func (o *Overlay) Draw(img *image.RGBA) {
	if o.face == nil || o.title == "" {
		return
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 248, G: 179, B: 29, A: 255}),
		Face: o.face,
	}

	bounds, _ := d.BoundString(o.title)
	textWidth := (bounds.Max.X - bounds.Min.X).Ceil()

	x := (config.Width - textWidth) / 2
	y := config.Height - 40

	d.Dot = freetype.Pt(x, y)
	d.DrawString(o.title)
}
