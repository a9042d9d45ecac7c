package lighting

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultGlowNeighbors caps how many ranged lights reach one vertex.
const DefaultGlowNeighbors = 12

// GlowKernel maps many ranged point lights onto the vertices of a mesh.
// Lights and vertices are expected in the same local space, so the kernel
// stays valid while both move together.
type GlowKernel struct {
	vertices int
	lights   int

	// Entries of vertex v are [start[v], start[v+1]).
	start   []int32
	source  []int32
	weights []float32
}

type glowCandidate struct {
	light  int32
	dist   float32
	weight float32
}

// NewGlowKernel weights every light within lightRange of a vertex by
// (1 - d/lightRange)^2, keeping the nearest maxPerVertex lights.
func NewGlowKernel(vertices, lights []mgl32.Vec3, lightRange float32, maxPerVertex int) *GlowKernel {
	if maxPerVertex <= 0 {
		maxPerVertex = DefaultGlowNeighbors
	}
	k := &GlowKernel{
		vertices: len(vertices),
		lights:   len(lights),
		start:    make([]int32, len(vertices)+1),
	}
	if lightRange <= 0 || len(lights) == 0 {
		return k
	}

	grid := newCellGrid(lights, lightRange)
	var cands []glowCandidate
	for v, p := range vertices {
		k.start[v] = int32(len(k.source))
		cands = cands[:0]
		grid.near(p, func(i int32) {
			d := p.Sub(lights[i]).Len()
			if d >= lightRange {
				return
			}
			f := 1 - d/lightRange
			cands = append(cands, glowCandidate{light: i, dist: d, weight: f * f})
		})
		slices.SortFunc(cands, func(a, b glowCandidate) int {
			if c := cmp.Compare(a.dist, b.dist); c != 0 {
				return c
			}
			return cmp.Compare(a.light, b.light)
		})
		if len(cands) > maxPerVertex {
			cands = cands[:maxPerVertex]
		}
		for _, c := range cands {
			k.source = append(k.source, c.light)
			k.weights = append(k.weights, c.weight)
		}
	}
	k.start[len(vertices)] = int32(len(k.source))
	return k
}

// Vertices returns the number of vertices the kernel was built for.
func (k *GlowKernel) Vertices() int { return k.vertices }

// Lights returns the number of lights the kernel was built for.
func (k *GlowKernel) Lights() int { return k.lights }

// Neighbors returns the lights reaching vertex v and their weights.
func (k *GlowKernel) Neighbors(v int) ([]int32, []float32) {
	a, b := k.start[v], k.start[v+1]
	return k.source[a:b], k.weights[a:b]
}

// Accumulate writes the summed glow of every vertex into dst as packed
// RGB, given each light's color already scaled by its intensity.
func (k *GlowKernel) Accumulate(dst []float32, radiance []mgl32.Vec3) {
	for v := 0; v < k.vertices; v++ {
		var sum mgl32.Vec3
		for e := k.start[v]; e < k.start[v+1]; e++ {
			if int(k.source[e]) >= len(radiance) {
				continue
			}
			sum = sum.Add(radiance[k.source[e]].Mul(k.weights[e]))
		}
		dst[3*v], dst[3*v+1], dst[3*v+2] = sum[0], sum[1], sum[2]
	}
}

// cellGrid buckets points by cubes of one range on a side.
type cellGrid struct {
	size  float32
	cells map[[3]int32][]int32
}

func newCellGrid(points []mgl32.Vec3, size float32) *cellGrid {
	g := &cellGrid{size: size, cells: make(map[[3]int32][]int32)}
	for i, p := range points {
		c := g.cell(p)
		g.cells[c] = append(g.cells[c], int32(i))
	}
	return g
}

func (g *cellGrid) cell(p mgl32.Vec3) [3]int32 {
	return [3]int32{
		int32(math32.Floor(p[0] / g.size)),
		int32(math32.Floor(p[1] / g.size)),
		int32(math32.Floor(p[2] / g.size)),
	}
}

// near calls fn for every point in the 27 cells around p, in ascending
// cell then insertion order.
func (g *cellGrid) near(p mgl32.Vec3, fn func(int32)) {
	c := g.cell(p)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				for _, i := range g.cells[[3]int32{c[0] + dx, c[1] + dy, c[2] + dz}] {
					fn(i)
				}
			}
		}
	}
}
