package geodesic

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultEdgeThreshold is the dihedral angle, in degrees, above which an
// edge is drawn in the outline overlay.
const DefaultEdgeThreshold = 1.0

// Edge is a pair of position indices, smaller index first.
type Edge [2]uint32

// FaceNormal returns the unit normal of triangle t.
func (m *Mesh) FaceNormal(t Triangle) mgl64.Vec3 {
	a, b, c := m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// SharpEdges returns the edges whose adjacent faces meet at more than
// thresholdDeg degrees, plus any edge used by a single face. Edges are
// returned in the order they are first met while walking the triangles.
func SharpEdges(m *Mesh, thresholdDeg float64) []Edge {
	limit := math.Cos(thresholdDeg * math.Pi / 180)

	type adjacency struct {
		edge   Edge
		first  int
		second int
	}
	order := make([]*adjacency, 0, len(m.Triangles)*3/2)
	seen := make(map[Edge]*adjacency, len(m.Triangles)*3/2)

	for ti, tri := range m.Triangles {
		for k := 0; k < 3; k++ {
			i, j := tri[k], tri[(k+1)%3]
			e := Edge{i, j}
			if j < i {
				e = Edge{j, i}
			}
			if adj, ok := seen[e]; ok {
				adj.second = ti
				continue
			}
			adj := &adjacency{edge: e, first: ti, second: -1}
			seen[e] = adj
			order = append(order, adj)
		}
	}

	normals := make([]mgl64.Vec3, len(m.Triangles))
	for ti, tri := range m.Triangles {
		normals[ti] = m.FaceNormal(tri)
	}

	edges := make([]Edge, 0, len(order))
	for _, adj := range order {
		if adj.second < 0 || normals[adj.first].Dot(normals[adj.second]) <= limit {
			edges = append(edges, adj.edge)
		}
	}
	return edges
}
