package lighting

import "github.com/go-gl/mathgl/mgl32"

// SunDirection returns the normalized direction from target toward a
// directional light placed at position. A light on its target shines
// straight down.
func SunDirection(position, target mgl32.Vec3) mgl32.Vec3 {
	d := position.Sub(target)
	if d.Len() < 1e-6 {
		return mgl32.Vec3{0, 1, 0}
	}
	return d.Normalize()
}
