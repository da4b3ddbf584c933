package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/linuxmatters/jivescope/internal/config"
)

// cubeCorners are the unit cube corners centered on the origin.
var cubeCorners = [8]mgl64.Vec3{
	{-0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
}

// cubeEdgeIndices pair up corners into the 12 cube edges.
var cubeEdgeIndices = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // back face
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // front face
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting edges
}

// Edge is one cube edge in world space, built from its two endpoints.
type Edge struct {
	A, B mgl64.Vec3
}

// RingPosition places object i of total on the scene ring.
func RingPosition(i, total int) mgl64.Vec3 {
	if total < 1 {
		total = 1
	}
	angle := float64(i) / float64(total) * 2 * math.Pi
	return mgl64.Vec3{
		config.RingRadius * math.Cos(angle),
		config.RingRadius * math.Sin(angle),
		0,
	}
}

// PoseCube returns the 12 edges of a cube rotated by angle around all
// three axes, scaled uniformly, and translated to center. The edge set
// is rebuilt from the corner pairs each frame; corners are shared so
// each is transformed once.
func PoseCube(center mgl64.Vec3, angle, scale float64) [12]Edge {
	rotation := mgl64.Rotate3DX(angle).
		Mul3(mgl64.Rotate3DY(angle)).
		Mul3(mgl64.Rotate3DZ(angle))

	var posed [8]mgl64.Vec3
	for i, corner := range cubeCorners {
		posed[i] = rotation.Mul3x1(corner.Mul(config.CubeSize * scale)).Add(center)
	}

	var edges [12]Edge
	for i, pair := range cubeEdgeIndices {
		edges[i] = Edge{A: posed[pair[0]], B: posed[pair[1]]}
	}
	return edges
}

// Project maps a world-space point to pixel coordinates through a simple
// perspective camera on the +Z axis. Visible is false for points at or
// behind the camera plane.
func Project(p mgl64.Vec3, width, height int) (x, y float64, visible bool) {
	depth := config.CameraDistance - p.Z()
	if depth < 0.1 {
		return 0, 0, false
	}

	half := float64(height) / 2
	x = float64(width)/2 + config.FocalLength*p.X()/depth*half
	y = half - config.FocalLength*p.Y()/depth*half
	return x, y, true
}
