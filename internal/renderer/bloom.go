package renderer

import (
	"image"

	"github.com/linuxmatters/jivescope/internal/config"
)

// Bloom adds a glow around bright pixels: highlights above a luma
// threshold are blurred with a separable box filter and blended back.
// It runs before the kaleidoscope fold, so the glow blurs un-folded
// geometry and the fold stays the final spatial distortion.
type Bloom struct {
	threshold int
	radius    int
	strength  float64

	// Scratch buffers reused across frames, one value per pixel
	highlights []uint16
	blurred    []uint16
}

// NewBloom creates a bloom pass with the configured defaults.
func NewBloom() *Bloom {
	return &Bloom{
		threshold: config.BloomThreshold,
		radius:    config.BloomRadius,
		strength:  config.BloomStrength,
	}
}

// Apply blurs the frame's highlights in place.
func (b *Bloom) Apply(img *image.RGBA) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	n := width * height
	if len(b.highlights) < n {
		b.highlights = make([]uint16, n)
		b.blurred = make([]uint16, n)
	}

	// Extract luma above the threshold
	for y := 0; y < height; y++ {
		row := y * img.Stride
		for x := 0; x < width; x++ {
			offset := row + x*4
			// Integer Rec.601 luma
			luma := (299*int(img.Pix[offset]) + 587*int(img.Pix[offset+1]) + 114*int(img.Pix[offset+2])) / 1000
			if luma > b.threshold {
				b.highlights[y*width+x] = uint16(luma)
			} else {
				b.highlights[y*width+x] = 0
			}
		}
	}

	boxBlurHorizontal(b.highlights, b.blurred, width, height, b.radius)
	boxBlurVertical(b.blurred, b.highlights, width, height, b.radius)

	// Blend the blurred highlights back, brightening all channels
	for y := 0; y < height; y++ {
		row := y * img.Stride
		for x := 0; x < width; x++ {
			glow := float64(b.highlights[y*width+x]) * b.strength
			if glow == 0 {
				continue
			}
			offset := row + x*4
			img.Pix[offset] = addClamp(img.Pix[offset], glow)
			img.Pix[offset+1] = addClamp(img.Pix[offset+1], glow)
			img.Pix[offset+2] = addClamp(img.Pix[offset+2], glow)
		}
	}
}

// boxBlurHorizontal averages each row over a window of 2*radius+1 using
// a running sum.
func boxBlurHorizontal(src, dst []uint16, width, height, radius int) {
	window := 2*radius + 1
	for y := 0; y < height; y++ {
		row := y * width
		var sum int
		for x := -radius; x <= radius; x++ {
			sum += int(src[row+clampIndex(x, width)])
		}
		for x := 0; x < width; x++ {
			dst[row+x] = uint16(sum / window)
			sum -= int(src[row+clampIndex(x-radius, width)])
			sum += int(src[row+clampIndex(x+radius+1, width)])
		}
	}
}

// boxBlurVertical averages each column over the same window.
func boxBlurVertical(src, dst []uint16, width, height, radius int) {
	window := 2*radius + 1
	for x := 0; x < width; x++ {
		var sum int
		for y := -radius; y <= radius; y++ {
			sum += int(src[clampIndex(y, height)*width+x])
		}
		for y := 0; y < height; y++ {
			dst[y*width+x] = uint16(sum / window)
			sum -= int(src[clampIndex(y-radius, height)*width+x])
			sum += int(src[clampIndex(y+radius+1, height)*width+x])
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
