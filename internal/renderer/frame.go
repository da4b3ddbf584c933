package renderer

import (
	"image"
	"math"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/linuxmatters/jivescope/internal/config"
	"github.com/linuxmatters/jivescope/internal/scene"
)

// Frame renders the reactive scene into an RGBA buffer. Edges are drawn
// as thick additive strokes whose radius tracks the smoothed thickness
// parameter, re-applied to every edge of the object each frame.
type Frame struct {
	img     *image.RGBA
	width   int
	height  int
	overlay *Overlay
}

var framePool = sync.Pool{
	New: func() interface{} {
		return image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))
	},
}

// NewFrame creates a frame renderer at the configured resolution.
// overlay may be nil when no title is drawn.
func NewFrame(overlay *Overlay) *Frame {
	return &Frame{
		img:     framePool.Get().(*image.RGBA),
		width:   config.Width,
		height:  config.Height,
		overlay: overlay,
	}
}

// Draw clears the frame and renders every object.
func (f *Frame) Draw(objects []*scene.Object) {
	f.clear()

	total := len(objects)
	for _, obj := range objects {
		f.drawObject(obj, total)
	}

	if f.overlay != nil {
		f.overlay.Draw(f.img)
	}
}

// clear fills the buffer with opaque black, 8 pixels per copy.
func (f *Frame) clear() {
	blackPattern := [32]byte{
		0, 0, 0, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 0, 0, 0, 255,
	}
	for i := 0; i < len(f.img.Pix); i += 32 {
		copy(f.img.Pix[i:i+32], blackPattern[:])
	}
}

func (f *Frame) drawObject(obj *scene.Object, total int) {
	center := RingPosition(obj.Index, total)
	edges := PoseCube(center, obj.Osc.Angle, obj.Smooth.Scale)

	// Edge-cylinder radius in pixels, derived from the smoothed
	// thickness which is expressed as a fraction of frame height
	radius := obj.Smooth.Thickness * float64(f.height) / 4
	if radius < 1 {
		radius = 1
	}

	c := colorful.Hsv(obj.Hue, 0.65, 1.0)
	r8 := uint8(c.R * 255)
	g8 := uint8(c.G * 255)
	b8 := uint8(c.B * 255)

	for _, edge := range edges {
		ax, ay, aVisible := Project(edge.A, f.width, f.height)
		bx, by, bVisible := Project(edge.B, f.width, f.height)
		if !aVisible || !bVisible {
			continue
		}
		f.strokeLine(ax, ay, bx, by, radius, r8, g8, b8)
	}
}

// strokeLine stamps overlapping discs along the segment. Additive
// blending lets crossing edges and folded copies glow where they stack.
func (f *Frame) strokeLine(ax, ay, bx, by, radius float64, r, g, b uint8) {
	dx := bx - ax
	dy := by - ay
	length := math.Hypot(dx, dy)

	// Step at half the radius so the discs overlap into a solid stroke
	steps := int(length/(radius*0.5)) + 1

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		f.stampDisc(ax+dx*t, ay+dy*t, radius, r, g, b)
	}
}

func (f *Frame) stampDisc(cx, cy, radius float64, r, g, b uint8) {
	x0 := int(cx - radius)
	x1 := int(cx + radius + 1)
	y0 := int(cy - radius)
	y1 := int(cy + radius + 1)

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > f.width {
		x1 = f.width
	}
	if y1 > f.height {
		y1 = f.height
	}

	r2 := radius * radius
	for y := y0; y < y1; y++ {
		row := y * f.img.Stride
		for x := x0; x < x1; x++ {
			ddx := float64(x) + 0.5 - cx
			ddy := float64(y) + 0.5 - cy
			d2 := ddx*ddx + ddy*ddy
			if d2 > r2 {
				continue
			}

			// Soft falloff towards the disc rim
			w := 1 - d2/r2
			offset := row + x*4
			f.img.Pix[offset] = addClamp(f.img.Pix[offset], float64(r)*w)
			f.img.Pix[offset+1] = addClamp(f.img.Pix[offset+1], float64(g)*w)
			f.img.Pix[offset+2] = addClamp(f.img.Pix[offset+2], float64(b)*w)
			f.img.Pix[offset+3] = 255
		}
	}
}

func addClamp(base uint8, add float64) uint8 {
	v := float64(base) + add
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Image returns the current frame buffer.
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// Release returns the frame buffer to the pool.
func (f *Frame) Release() {
	if f.img != nil {
		framePool.Put(f.img)
		f.img = nil
	}
}
