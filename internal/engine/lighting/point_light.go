// Package lighting prepares scene lights for GPU upload.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 8

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  mgl32.Vec3 // World position
	Color     mgl32.Vec3 // RGB color (0-1 range)
	Range     float32    // Falloff distance, 0 for none
	Intensity float32
}

// RGB converts a color to a clamped shader vector.
func RGB(c colorful.Color) mgl32.Vec3 {
	c = c.Clamped()
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight

	positions   []float32
	colors      []float32
	ranges      []float32
	intensities []float32
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights:      make([]PointLight, 0, MaxPointLights),
		positions:   make([]float32, MaxPointLights*3),
		colors:      make([]float32, MaxPointLights*3),
		ranges:      make([]float32, MaxPointLights),
		intensities: make([]float32, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
}

// Count returns the number of lights in the buffer.
func (b *PointLightBuffer) Count() int {
	return len(b.Lights)
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if len(b.Lights) >= MaxPointLights {
		return false
	}
	if light.Intensity < 0 {
		light.Intensity = 0
	}
	b.Lights = append(b.Lights, light)
	return true
}

// Positions returns positions as a flat slice: x0, y0, z0, x1, ...
// The slice is reused by the next call.
func (b *PointLightBuffer) Positions() []float32 {
	clear(b.positions)
	for i, l := range b.Lights {
		copy(b.positions[i*3:], l.Position[:])
	}
	return b.positions
}

// Colors returns colors as a flat slice: r0, g0, b0, r1, ...
// The slice is reused by the next call.
func (b *PointLightBuffer) Colors() []float32 {
	clear(b.colors)
	for i, l := range b.Lights {
		copy(b.colors[i*3:], l.Color[:])
	}
	return b.colors
}

// Ranges returns ranges as a flat slice.
func (b *PointLightBuffer) Ranges() []float32 {
	clear(b.ranges)
	for i, l := range b.Lights {
		b.ranges[i] = l.Range
	}
	return b.ranges
}

// Intensities returns intensities as a flat slice.
func (b *PointLightBuffer) Intensities() []float32 {
	clear(b.intensities)
	for i, l := range b.Lights {
		b.intensities[i] = l.Intensity
	}
	return b.intensities
}
