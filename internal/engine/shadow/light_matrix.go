package shadow

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyAABB returns a box that any extended point replaces.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// Empty reports whether no point was added to the box.
func (b AABB) Empty() bool {
	return b.Min[0] > b.Max[0]
}

// Extend grows the box to contain p.
func (b *AABB) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
}

// Center returns the center point of the AABB.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns the distance from center to corner (half-diagonal).
func (b AABB) Radius() float32 {
	return b.Max.Sub(b.Min).Len() / 2
}

// DirectionalLightMatrix computes the view-projection of the depth pass.
// lightDir is the normalized direction toward the light; the orthographic
// volume is sized to enclose bounds.
func DirectionalLightMatrix(lightDir mgl32.Vec3, bounds AABB) mgl32.Mat4 {
	center := bounds.Center()
	radius := bounds.Radius()

	lightDistance := radius * 2
	lightPos := center.Add(lightDir.Mul(lightDistance))

	up := mgl32.Vec3{0, 1, 0}
	if math32.Abs(lightDir[1]) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(lightPos, center, up)

	padding := radius * 0.1
	halfSize := radius + padding
	far := lightDistance + radius + padding
	proj := mgl32.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, far)

	return proj.Mul4(view)
}
