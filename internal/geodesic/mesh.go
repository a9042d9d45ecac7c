// Package geodesic generates the subdivided icosahedral mesh of the sphere.
//
// The mesh is built like the panels of a geodesic dome: an icosahedron is
// refined by edge midpoints, every face is then split around its centroid
// into three panels, and every panel is raised into a shallow pyramid whose
// apex sits on the sphere. The panel apexes are the geodesic points of the
// structure and the vertices the light field is derived from.
package geodesic

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultRadius is the sphere radius in world units.
	DefaultRadius = 3.0

	// DefaultLevel yields 3,840 geodesic points and 11,520 triangles.
	DefaultLevel = 5

	// MinLevel is the lowest level: no midpoint pass, centroid and panel pass only.
	MinLevel = 2

	// MaxLevel keeps the light field within a few hundred thousand nodes.
	MaxLevel = 7
)

var (
	// ErrLevel is returned for a subdivision level outside [MinLevel, MaxLevel].
	ErrLevel = errors.New("geodesic: subdivision level out of range")

	// ErrEmptyMesh is returned when a mesh carries no position data.
	ErrEmptyMesh = errors.New("geodesic: mesh has no positions")

	// ErrIndex is returned when a triangle references a missing position.
	ErrIndex = errors.New("geodesic: triangle index out of range")
)

// Triangle holds three indices into Mesh.Positions, counter-clockwise
// when seen from outside the sphere.
type Triangle [3]uint32

// Mesh is an indexed triangle mesh on a sphere centered at the origin.
type Mesh struct {
	Radius float64
	Level  int

	// Positions holds the geodesic points first, then the panel corners.
	Positions []mgl64.Vec3
	Triangles []Triangle

	points int
}

// VertexCount returns the number of geodesic points.
func (m *Mesh) VertexCount() int {
	return m.points
}

// Vertices returns the geodesic points in their stable order.
// Index i of the result identifies the light derived from it.
func (m *Mesh) Vertices() []mgl64.Vec3 {
	return m.Positions[:m.points]
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Normal returns the outward unit normal at position i.
func (m *Mesh) Normal(i int) mgl64.Vec3 {
	return m.Positions[i].Normalize()
}

// Validate reports whether the mesh can be rendered and lit.
func (m *Mesh) Validate() error {
	if m == nil || len(m.Positions) == 0 || m.points == 0 {
		return ErrEmptyMesh
	}
	n := uint32(len(m.Positions))
	for ti, tri := range m.Triangles {
		for _, idx := range tri {
			if idx >= n {
				return fmt.Errorf("triangle %d references %d of %d positions: %w", ti, idx, n, ErrIndex)
			}
		}
	}
	return nil
}

// VertexCountForLevel returns the number of geodesic points at level.
func VertexCountForLevel(level int) int {
	return 60 << (2 * (level - MinLevel))
}

// TriangleCountForLevel returns the number of triangles at level.
func TriangleCountForLevel(level int) int {
	return 3 * VertexCountForLevel(level)
}

// Generate builds the geodesic mesh for level on a sphere of radius.
// Identical arguments always produce an identical mesh.
func Generate(level int, radius float64) (*Mesh, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, fmt.Errorf("level %d not in [%d, %d]: %w", level, MinLevel, MaxLevel, ErrLevel)
	}
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("radius %v must be positive", radius)
	}

	b := newBuilder(radius)
	b.icosahedron()
	for i := MinLevel; i < level; i++ {
		b.splitEdges()
	}
	b.splitCentroids()

	return b.panels(level), nil
}

type builder struct {
	radius    float64
	positions []mgl64.Vec3
	faces     []Triangle
	midpoints map[[2]uint32]uint32
}

func newBuilder(radius float64) *builder {
	return &builder{radius: radius}
}

// add projects p onto the sphere and appends it.
func (b *builder) add(p mgl64.Vec3) uint32 {
	b.positions = append(b.positions, p.Normalize().Mul(b.radius))
	return uint32(len(b.positions) - 1)
}

func (b *builder) icosahedron() {
	t := (1 + math.Sqrt(5)) / 2
	for _, p := range []mgl64.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	} {
		b.add(p)
	}
	b.faces = []Triangle{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
}

// midpoint returns the shared midpoint of edge (i, j), creating it once.
func (b *builder) midpoint(i, j uint32) uint32 {
	key := [2]uint32{i, j}
	if j < i {
		key = [2]uint32{j, i}
	}
	if idx, ok := b.midpoints[key]; ok {
		return idx
	}
	idx := b.add(b.positions[i].Add(b.positions[j]).Mul(0.5))
	b.midpoints[key] = idx
	return idx
}

// splitEdges replaces every face with four faces through its edge midpoints.
func (b *builder) splitEdges() {
	b.midpoints = make(map[[2]uint32]uint32, len(b.faces)*3/2)
	faces := make([]Triangle, 0, len(b.faces)*4)
	for _, f := range b.faces {
		ab := b.midpoint(f[0], f[1])
		bc := b.midpoint(f[1], f[2])
		ca := b.midpoint(f[2], f[0])
		faces = append(faces,
			Triangle{f[0], ab, ca},
			Triangle{f[1], bc, ab},
			Triangle{f[2], ca, bc},
			Triangle{ab, bc, ca},
		)
	}
	b.faces = faces
	b.midpoints = nil
}

// splitCentroids replaces every face with three faces around its centroid.
func (b *builder) splitCentroids() {
	faces := make([]Triangle, 0, len(b.faces)*3)
	for _, f := range b.faces {
		m := b.add(b.centroid(f))
		faces = append(faces,
			Triangle{f[0], f[1], m},
			Triangle{f[1], f[2], m},
			Triangle{f[2], f[0], m},
		)
	}
	b.faces = faces
}

func (b *builder) centroid(f Triangle) mgl64.Vec3 {
	return b.positions[f[0]].Add(b.positions[f[1]]).Add(b.positions[f[2]]).Mul(1.0 / 3)
}

// panels raises every face into a three-sided pyramid. The apexes go first
// in the resulting position list so that apex k belongs to face k.
func (b *builder) panels(level int) *Mesh {
	apexes := len(b.faces)
	m := &Mesh{
		Radius:    b.radius,
		Level:     level,
		Positions: make([]mgl64.Vec3, apexes, apexes+len(b.positions)),
		Triangles: make([]Triangle, 0, apexes*3),
		points:    apexes,
	}
	offset := uint32(apexes)
	for k, f := range b.faces {
		m.Positions[k] = b.centroid(f).Normalize().Mul(b.radius)
		apex := uint32(k)
		a, c, d := f[0]+offset, f[1]+offset, f[2]+offset
		m.Triangles = append(m.Triangles,
			Triangle{a, c, apex},
			Triangle{c, d, apex},
			Triangle{d, a, apex},
		)
	}
	m.Positions = append(m.Positions, b.positions...)
	return m
}
