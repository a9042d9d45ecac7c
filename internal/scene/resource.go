package scene

import colorful "github.com/lucasb-eyer/go-colorful"

// resource tracks disposal of data a renderer may mirror on the GPU.
// Renderers register release hooks with OnDispose when they upload it.
type resource struct {
	disposed bool
	hooks    []func()
}

// OnDispose registers fn to run when the resource is disposed. If it
// already was, fn runs immediately.
func (r *resource) OnDispose(fn func()) {
	if r.disposed {
		fn()
		return
	}
	r.hooks = append(r.hooks, fn)
}

// Dispose runs the release hooks once. Later calls do nothing.
func (r *resource) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	hooks := r.hooks
	r.hooks = nil
	for _, fn := range hooks {
		fn()
	}
}

// Disposed reports whether Dispose was called.
func (r *resource) Disposed() bool {
	return r.disposed
}

// Primitive is the topology of a geometry.
type Primitive uint8

// Primitives.
const (
	Triangles Primitive = iota
	Lines
	Points
)

// Geometry is vertex data in the node's local space. Positions and
// Normals are packed xyz triples; Indices is optional.
type Geometry struct {
	resource

	// Key is set when several geometries share the same vertex data, so a
	// renderer can keep one GPU copy.
	Key string

	Primitive Primitive
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// VertexCount returns the number of positions.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// ElementCount returns the number of vertices a draw call consumes.
func (g *Geometry) ElementCount() int {
	if len(g.Indices) > 0 {
		return len(g.Indices)
	}
	return g.VertexCount()
}

// Share returns a geometry with the same key and vertex data but its own
// disposal state.
func (g *Geometry) Share() *Geometry {
	return &Geometry{
		Key:       g.Key,
		Primitive: g.Primitive,
		Positions: g.Positions,
		Normals:   g.Normals,
		Indices:   g.Indices,
	}
}

// Shading selects the lighting model of a material.
type Shading uint8

// Shading models.
const (
	// Basic ignores lights.
	Basic Shading = iota
	// Lambert is diffuse only.
	Lambert
	// Phong adds a specular highlight.
	Phong
)

// Material describes how a node is drawn.
type Material struct {
	resource

	Shading     Shading
	Color       colorful.Color
	Opacity     float64
	Transparent bool
	Wireframe   bool
	DoubleSided bool

	Shininess float64
	Specular  colorful.Color

	// Size is the point size in pixels for point clouds.
	Size float64
}

// NewMaterial returns an opaque material of the given shading and color.
func NewMaterial(shading Shading, color colorful.Color) *Material {
	return &Material{Shading: shading, Color: color, Opacity: 1}
}

// Hex converts a 0xRRGGBB literal to a color.
func Hex(rgb uint32) colorful.Color {
	return colorful.Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
	}
}
