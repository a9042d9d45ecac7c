// Package camera provides the perspective camera the scene is viewed through.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective is a camera looking from Position at Target.
type Perspective struct {
	FovY   float32 // Vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

// NewPerspective creates a camera at distance on +Z looking at the origin.
func NewPerspective(fovY, aspect, near, far, distance float32) *Perspective {
	c := &Perspective{
		FovY:   fovY,
		Aspect: 1,
		Near:   near,
		Far:    far,
		Up:     mgl32.Vec3{0, 1, 0},
	}
	c.SetAspect(aspect)
	c.Position = mgl32.Vec3{0, 0, distance}
	return c
}

// SetAspect updates the aspect ratio. Non-positive values are ignored.
func (c *Perspective) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// SetViewport sets the aspect ratio from a viewport size.
func (c *Perspective) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.SetAspect(float32(width) / float32(height))
	}
}

// Distance returns the distance between camera and target.
func (c *Perspective) Distance() float32 {
	return c.Position.Sub(c.Target).Len()
}

// SetDistance moves the camera along its view axis to distance from the
// target. A camera sitting on its target is placed on +Z.
func (c *Perspective) SetDistance(distance float32) {
	dir := c.Position.Sub(c.Target)
	if dir.Len() < 1e-6 {
		dir = mgl32.Vec3{0, 0, 1}
	}
	c.Position = c.Target.Add(dir.Normalize().Mul(distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}
