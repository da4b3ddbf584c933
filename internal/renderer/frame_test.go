package renderer

import (
	"testing"

	"github.com/linuxmatters/jivescope/internal/config"
	"github.com/linuxmatters/jivescope/internal/scene"
)

func countLitPixels(f *Frame) int {
	lit := 0
	pix := f.Image().Pix
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 0 || pix[i+1] != 0 || pix[i+2] != 0 {
			lit++
		}
	}
	return lit
}

func testObjects(thickness float64) []*scene.Object {
	objects := scene.New(4).Objects
	for _, obj := range objects {
		obj.Smooth.Thickness = thickness
	}
	return objects
}

// TestFrame_DrawProducesPixels verifies a drawn scene lights pixels and
// a redraw of an empty scene clears them again.
func TestFrame_DrawProducesPixels(t *testing.T) {
	frame := NewFrame(nil)
	defer frame.Release()

	frame.Draw(testObjects(config.MinThickness))
	if lit := countLitPixels(frame); lit == 0 {
		t.Fatal("drawing four objects lit no pixels")
	}

	frame.Draw(nil)
	if lit := countLitPixels(frame); lit != 0 {
		t.Errorf("empty scene left %d lit pixels", lit)
	}
}

// TestFrame_ThickerStrokesCoverMore verifies thickness controls stroke
// coverage.
func TestFrame_ThickerStrokesCoverMore(t *testing.T) {
	frame := NewFrame(nil)
	defer frame.Release()

	frame.Draw(testObjects(config.MinThickness))
	thin := countLitPixels(frame)

	frame.Draw(testObjects(config.MaxThickness))
	thick := countLitPixels(frame)

	if thick <= thin {
		t.Errorf("thickness %v lit %d pixels, thickness %v lit %d", config.MaxThickness, thick, config.MinThickness, thin)
	}
}

// TestFrame_AngleMovesObjects verifies the oscillator angle changes
// what is drawn.
func TestFrame_AngleMovesObjects(t *testing.T) {
	frame := NewFrame(nil)
	defer frame.Release()

	objects := testObjects(config.MinThickness)
	frame.Draw(objects)
	before := make([]byte, len(frame.Image().Pix))
	copy(before, frame.Image().Pix)

	for _, obj := range objects {
		obj.Osc.Angle += 0.8
	}
	frame.Draw(objects)

	same := true
	for i, v := range frame.Image().Pix {
		if before[i] != v {
			same = false
			break
		}
	}
	if same {
		t.Error("rotating every cube produced an identical frame")
	}
}

// TestFrame_ScaleGrowsObjects verifies band scale inflates the cubes.
func TestFrame_ScaleGrowsObjects(t *testing.T) {
	frame := NewFrame(nil)
	defer frame.Release()

	objects := testObjects(config.MinThickness)
	frame.Draw(objects)
	small := countLitPixels(frame)

	for _, obj := range objects {
		obj.Smooth.Scale = 1 + config.ScaleGain
	}
	frame.Draw(objects)
	large := countLitPixels(frame)

	if large <= small {
		t.Errorf("scaled cubes lit %d pixels, unscaled lit %d", large, small)
	}
}
