// Package lightfield places one point light and one visible marker on every
// geodesic point of the sphere and keeps the two in step.
package lightfield

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/spaceship-earth/internal/animation"
	"github.com/Faultbox/spaceship-earth/internal/geodesic"
	"github.com/Faultbox/spaceship-earth/internal/scene"
)

const (
	// SurfaceOffsetRatio lifts lights off the panels by a share of the radius.
	SurfaceOffsetRatio = 1.0 / 150

	// DefaultRange is the falloff distance of every vertex light.
	DefaultRange = 1.5

	MarkerRadius   = 0.015
	MarkerSegments = 6

	// Marker opacity when dark and the extra opacity at full intensity.
	markerBaseOpacity = 0.1
	markerGainOpacity = 0.8
)

// ErrEmptyMesh is returned by Build for a mesh without geodesic points.
var ErrEmptyMesh = errors.New("lightfield: mesh has no vertices")

// VertexLight is the light attached to one geodesic point.
type VertexLight struct {
	Index    int
	Position mgl64.Vec3
	Range    float64
	Marker   *scene.Node

	node *scene.Node
}

// Node returns the point light node.
func (l *VertexLight) Node() *scene.Node {
	return l.node
}

// Color returns the current light color.
func (l *VertexLight) Color() colorful.Color {
	return l.node.Light.Color
}

// Intensity returns the current light intensity.
func (l *VertexLight) Intensity() float64 {
	return l.node.Light.Intensity
}

// SetColor sets the color of the light and its marker.
func (l *VertexLight) SetColor(c colorful.Color) {
	l.node.Light.Color = c
	l.Marker.Material.Color = c
}

// SetIntensity sets the light intensity and the marker opacity. Negative
// values are clamped to zero.
func (l *VertexLight) SetIntensity(v float64) {
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	l.node.Light.Intensity = v
	l.Marker.Material.Opacity = MarkerOpacity(v)
}

// MarkerOpacity maps a light intensity to the opacity of its marker.
func MarkerOpacity(intensity float64) float64 {
	return markerBaseOpacity + markerGainOpacity*math.Max(0, math.Min(intensity, 1))
}

// Field is the set of vertex lights of one mesh.
type Field struct {
	lights   []*VertexLight
	parent   *scene.Node
	disposed bool
}

// Build creates one light per geodesic point of m, in vertex order, and
// attaches the lights and markers to parent. All lights start dark.
func Build(m *geodesic.Mesh, color colorful.Color, parent *scene.Node) (*Field, error) {
	if m == nil || m.VertexCount() == 0 {
		return nil, ErrEmptyMesh
	}
	if parent == nil {
		return nil, fmt.Errorf("lightfield: nil parent node")
	}

	offset := m.Radius + m.Radius*SurfaceOffsetRatio
	marker := scene.SphereGeometry(MarkerRadius, MarkerSegments, MarkerSegments)

	f := &Field{parent: parent, lights: make([]*VertexLight, m.VertexCount())}
	nodes := make([]*scene.Node, 0, 2*len(f.lights))
	for i, v := range m.Vertices() {
		pos := v.Normalize().Mul(offset)
		p32 := mgl32.Vec3{float32(pos[0]), float32(pos[1]), float32(pos[2])}

		light := scene.NewLight(fmt.Sprintf("light-%d", i), scene.KindPointLight, &scene.Light{
			Color: color,
			Range: DefaultRange,
		})
		light.Position = p32

		mat := scene.NewMaterial(scene.Basic, color)
		mat.Transparent = true
		mat.Opacity = MarkerOpacity(0)
		geom := marker
		if i > 0 {
			geom = marker.Share()
		}
		mk := scene.NewMesh(fmt.Sprintf("marker-%d", i), geom, mat)
		mk.Position = p32

		f.lights[i] = &VertexLight{Index: i, Position: pos, Range: DefaultRange, Marker: mk, node: light}
		nodes = append(nodes, light, mk)
	}
	parent.Add(nodes...)
	return f, nil
}

// Lights returns the lights in vertex order. The slice must not be modified.
func (f *Field) Lights() []*VertexLight {
	return f.lights
}

// Len returns the number of lights.
func (f *Field) Len() int {
	return len(f.lights)
}

// Apply sets every light from the matching sample. Extra samples or
// lights are left alone.
func (f *Field) Apply(samples []animation.Sample) {
	if f.disposed {
		return
	}
	n := min(len(samples), len(f.lights))
	for i := 0; i < n; i++ {
		f.lights[i].SetColor(samples[i].Color)
		f.lights[i].SetIntensity(samples[i].Intensity)
	}
}

// Dispose detaches every light and marker and releases the marker
// resources. Later calls do nothing.
func (f *Field) Dispose() {
	if f.disposed {
		return
	}
	f.disposed = true

	owned := make(map[*scene.Node]struct{}, 2*len(f.lights))
	for _, l := range f.lights {
		owned[l.node] = struct{}{}
		owned[l.Marker] = struct{}{}
		l.Marker.Geometry.Dispose()
		l.Marker.Material.Dispose()
	}
	f.parent.RemoveAll(func(n *scene.Node) bool {
		_, ok := owned[n]
		return ok
	})
}

// Disposed reports whether Dispose was called.
func (f *Field) Disposed() bool {
	return f.disposed
}
