package renderer

import (
	"image"
	"testing"

	"github.com/linuxmatters/jivescope/internal/config"
)

func fillOpaque(img *image.RGBA, r, g, b uint8) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = 255
	}
}

// TestBloom_DarkFrameUnchanged verifies a frame with no pixel above the
// highlight threshold passes through untouched.
func TestBloom_DarkFrameUnchanged(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	fillOpaque(img, 40, 40, 40)

	before := make([]byte, len(img.Pix))
	copy(before, img.Pix)

	NewBloom().Apply(img)

	for i := range img.Pix {
		if img.Pix[i] != before[i] {
			t.Fatalf("dark frame changed at byte %d: %d -> %d", i, before[i], img.Pix[i])
		}
	}
}

// TestBloom_SpreadsHighlight verifies a bright patch brightens its
// neighborhood but not distant pixels.
func TestBloom_SpreadsHighlight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fillOpaque(img, 0, 0, 0)

	// White 8x8 block at the center, well above the threshold
	for y := 28; y < 36; y++ {
		for x := 28; x < 36; x++ {
			offset := y*img.Stride + x*4
			img.Pix[offset] = 255
			img.Pix[offset+1] = 255
			img.Pix[offset+2] = 255
		}
	}

	NewBloom().Apply(img)

	// Just outside the block, inside the blur radius of its edge
	neighbor := 32*img.Stride + (36+config.BloomRadius/2)*4
	if img.Pix[neighbor] == 0 {
		t.Error("pixel inside the blur radius was not brightened")
	}

	corner := 0
	if img.Pix[corner] != 0 {
		t.Errorf("distant corner brightened to %d, want 0", img.Pix[corner])
	}
}

// TestBloom_NeverDims verifies blending only ever raises channel values.
func TestBloom_NeverDims(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	fillOpaque(img, 10, 10, 10)

	// One saturated row to produce highlights
	for x := 0; x < 32; x++ {
		offset := 16*img.Stride + x*4
		img.Pix[offset] = 255
		img.Pix[offset+1] = 255
		img.Pix[offset+2] = 255
	}

	before := make([]byte, len(img.Pix))
	copy(before, img.Pix)

	NewBloom().Apply(img)

	for i := range img.Pix {
		if i%4 == 3 {
			continue // alpha
		}
		if img.Pix[i] < before[i] {
			t.Fatalf("channel dimmed at byte %d: %d -> %d", i, before[i], img.Pix[i])
		}
	}
}
