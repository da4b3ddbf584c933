package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/linuxmatters/jivescope/internal/config"
)

// TestRingPosition verifies objects land on the ring at even spacing.
func TestRingPosition(t *testing.T) {
	total := 8
	for i := 0; i < total; i++ {
		p := RingPosition(i, total)
		radius := math.Hypot(p.X(), p.Y())
		if math.Abs(radius-config.RingRadius) > 1e-12 {
			t.Errorf("object %d ring radius = %v, want %v", i, radius, config.RingRadius)
		}
		if p.Z() != 0 {
			t.Errorf("object %d left the ring plane: z = %v", i, p.Z())
		}
	}

	// Opposite objects sit on opposite sides
	a := RingPosition(0, total)
	b := RingPosition(total/2, total)
	if math.Abs(a.X()+b.X()) > 1e-12 || math.Abs(a.Y()+b.Y()) > 1e-12 {
		t.Errorf("opposite ring positions not antipodal: %v vs %v", a, b)
	}
}

// TestPoseCube_EdgeLengths verifies rotation preserves edge lengths and
// scale multiplies them: every posed edge must measure CubeSize*scale.
func TestPoseCube_EdgeLengths(t *testing.T) {
	for _, scale := range []float64{1.0, 1.6, 0.5} {
		edges := PoseCube(mgl64.Vec3{1, -2, 0.5}, 0.73, scale)
		want := config.CubeSize * scale

		for i, edge := range edges {
			got := edge.B.Sub(edge.A).Len()
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("scale %v edge %d length = %v, want %v", scale, i, got, want)
			}
		}
	}
}

// TestPoseCube_CenterPreserved verifies the cube centroid stays at the
// requested center under any rotation.
func TestPoseCube_CenterPreserved(t *testing.T) {
	center := mgl64.Vec3{-1.2, 0.8, 0.3}
	edges := PoseCube(center, 2.41, 1.3)

	var sum mgl64.Vec3
	for _, edge := range edges {
		sum = sum.Add(edge.A).Add(edge.B)
	}
	centroid := sum.Mul(1.0 / 24.0)

	if centroid.Sub(center).Len() > 1e-9 {
		t.Errorf("centroid %v drifted from center %v", centroid, center)
	}
}

// TestProject_CenterAndDepth verifies the origin projects to the frame
// center and points behind the camera are culled.
func TestProject_CenterAndDepth(t *testing.T) {
	x, y, visible := Project(mgl64.Vec3{0, 0, 0}, config.Width, config.Height)
	if !visible {
		t.Fatal("origin not visible")
	}
	if math.Abs(x-config.Width/2) > 1e-9 || math.Abs(y-config.Height/2) > 1e-9 {
		t.Errorf("origin projected to (%v, %v), want frame center", x, y)
	}

	if _, _, visible := Project(mgl64.Vec3{0, 0, config.CameraDistance + 1}, config.Width, config.Height); visible {
		t.Error("point behind the camera reported visible")
	}
}

// TestProject_PerspectiveShrink verifies farther points project closer
// to the center.
func TestProject_PerspectiveShrink(t *testing.T) {
	nearX, _, _ := Project(mgl64.Vec3{1, 0, 1}, config.Width, config.Height)
	farX, _, _ := Project(mgl64.Vec3{1, 0, -3}, config.Width, config.Height)

	nearOffset := nearX - config.Width/2
	farOffset := farX - config.Width/2

	if farOffset >= nearOffset {
		t.Errorf("far point offset %v not smaller than near point offset %v", farOffset, nearOffset)
	}
}
