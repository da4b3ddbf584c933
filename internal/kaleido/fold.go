// Package kaleido implements the angular kaleidoscope mirror transform
// applied as the final spatial distortion before display.
package kaleido

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Params carries the per-frame fold configuration. Segments is a
// configuration constant; Aspect must be recomputed every frame the
// viewport can change, since a stale aspect misaligns the wedge seams.
type Params struct {
	Segments int     // Wedge count, >= 2
	Aspect   float64 // Viewport width / height
}

// Fold maps a normalized image coordinate into one angular wedge of the
// kaleidoscope, producing the mirrored sampling coordinate. The transform
// works in aspect-equalized space so wedges are true angular sectors on
// any viewport shape, and uses a double-wedge modulo with reflection so
// neighbouring wedges alternate direction (a mirror repeat, not a
// pinwheel repeat).
//
// Fold is pure and carries no state; it is safe to evaluate out of order
// or in parallel across pixels.
func Fold(uv mgl64.Vec2, p Params) mgl64.Vec2 {
	segments := p.Segments
	if segments < 2 {
		segments = 2
	}
	aspect := p.Aspect
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		// Degenerate viewport: skip the correction rather than divide
		// by zero.
		aspect = 1
	}

	centered := uv.Sub(mgl64.Vec2{0.5, 0.5})

	// Equalize units before any angle math
	if aspect > 1 {
		centered[0] *= aspect
	} else {
		centered[1] /= aspect
	}

	radius := centered.Len()
	angle := math.Atan2(centered.Y(), centered.X())

	segAngle := 2 * math.Pi / float64(segments)
	wrapped := math.Mod(angle, 2*segAngle)
	if wrapped < 0 {
		wrapped += 2 * segAngle
	}
	if wrapped > segAngle {
		wrapped = 2*segAngle - wrapped
	}

	folded := mgl64.Vec2{math.Cos(wrapped) * radius, math.Sin(wrapped) * radius}

	// Undo the unit equalization
	if aspect > 1 {
		folded[0] /= aspect
	} else {
		folded[1] *= aspect
	}

	return folded.Add(mgl64.Vec2{0.5, 0.5})
}
