package kaleido

import (
	"image"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Compositor resamples a finished color buffer through the fold, one
// output pixel at a time. Rows are split into bands processed in
// parallel; Fold itself is stateless so the only shared data is the
// read-only source image.
type Compositor struct {
	workers int
}

// NewCompositor creates a compositor using one worker per CPU.
func NewCompositor() *Compositor {
	return &Compositor{workers: runtime.NumCPU()}
}

// Apply writes the folded view of src into dst. Both images must share
// the same bounds. The source is sampled bilinearly at the folded
// coordinate, clamped to the unit square.
func (c *Compositor) Apply(dst, src *image.RGBA, p Params) {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if height == 0 || width == 0 {
		return
	}

	workers := c.workers
	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}
	rowsPerWorker := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		yStart := w * rowsPerWorker
		yEnd := yStart + rowsPerWorker
		if yEnd > height {
			yEnd = height
		}
		if yStart >= yEnd {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			foldRows(dst, src, p, width, height, yStart, yEnd)
		}(yStart, yEnd)
	}
	wg.Wait()
}

func foldRows(dst, src *image.RGBA, p Params, width, height, yStart, yEnd int) {
	for y := yStart; y < yEnd; y++ {
		dstRow := y * dst.Stride
		for x := 0; x < width; x++ {
			uv := mgl64.Vec2{
				(float64(x) + 0.5) / float64(width),
				(float64(y) + 0.5) / float64(height),
			}
			folded := Fold(uv, p)

			r, g, b := sampleBilinear(src, folded, width, height)

			offset := dstRow + x*4
			dst.Pix[offset] = r
			dst.Pix[offset+1] = g
			dst.Pix[offset+2] = b
			dst.Pix[offset+3] = 255
		}
	}
}

// sampleBilinear reads src at a normalized coordinate with bilinear
// filtering, clamping to the image edges.
func sampleBilinear(src *image.RGBA, uv mgl64.Vec2, width, height int) (uint8, uint8, uint8) {
	fx := uv.X()*float64(width) - 0.5
	fy := uv.Y()*float64(height) - 0.5

	x0 := int(fx)
	y0 := int(fy)
	if fx < 0 {
		x0 = 0
		fx = 0
	}
	if fy < 0 {
		y0 = 0
		fy = 0
	}

	x1 := x0 + 1
	y1 := y0 + 1
	if x0 > width-1 {
		x0 = width - 1
	}
	if y0 > height-1 {
		y0 = height - 1
	}
	if x1 > width-1 {
		x1 = width - 1
	}
	if y1 > height-1 {
		y1 = height - 1
	}

	wx := fx - float64(x0)
	wy := fy - float64(y0)
	if wx < 0 {
		wx = 0
	}
	if wy < 0 {
		wy = 0
	}

	o00 := y0*src.Stride + x0*4
	o10 := y0*src.Stride + x1*4
	o01 := y1*src.Stride + x0*4
	o11 := y1*src.Stride + x1*4

	lerp := func(a, b uint8, t float64) float64 {
		return float64(a)*(1-t) + float64(b)*t
	}

	r := lerp(src.Pix[o00], src.Pix[o10], wx)*(1-wy) + lerp(src.Pix[o01], src.Pix[o11], wx)*wy
	g := lerp(src.Pix[o00+1], src.Pix[o10+1], wx)*(1-wy) + lerp(src.Pix[o01+1], src.Pix[o11+1], wx)*wy
	b := lerp(src.Pix[o00+2], src.Pix[o10+2], wx)*(1-wy) + lerp(src.Pix[o01+2], src.Pix[o11+2], wx)*wy

	return uint8(r + 0.5), uint8(g + 0.5), uint8(b + 0.5)
}
