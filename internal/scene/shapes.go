package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spaceship-earth/internal/geodesic"
)

// SphereGeometry builds a UV sphere centered at the origin.
func SphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	g := &Geometry{Key: fmt.Sprintf("sphere/%g/%d/%d", radius, widthSegments, heightSegments)}
	for y := 0; y <= heightSegments; y++ {
		v := float32(y) / float32(heightSegments)
		theta := v * math32.Pi
		for x := 0; x <= widthSegments; x++ {
			u := float32(x) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			n := mgl32.Vec3{
				-math32.Cos(phi) * math32.Sin(theta),
				math32.Cos(theta),
				math32.Sin(phi) * math32.Sin(theta),
			}
			g.Positions = append(g.Positions, n[0]*radius, n[1]*radius, n[2]*radius)
			g.Normals = append(g.Normals, n[0], n[1], n[2])
		}
	}

	row := uint32(widthSegments + 1)
	for y := 0; y < heightSegments; y++ {
		for x := 0; x < widthSegments; x++ {
			a := uint32(y)*row + uint32(x) + 1
			b := uint32(y)*row + uint32(x)
			c := uint32(y+1)*row + uint32(x)
			d := uint32(y+1)*row + uint32(x) + 1
			if y != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if y != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// CylinderGeometry builds a capped cylinder along Y, centered at the origin.
func CylinderGeometry(radiusTop, radiusBottom, height float32, radialSegments int) *Geometry {
	radialSegments = max(radialSegments, 3)
	g := &Geometry{Key: fmt.Sprintf("cylinder/%g/%g/%g/%d", radiusTop, radiusBottom, height, radialSegments)}
	half := height / 2
	slope := (radiusBottom - radiusTop) / height

	// Side: two rings of radialSegments+1 vertices.
	for ring, r := range [2]float32{radiusTop, radiusBottom} {
		y := half
		if ring == 1 {
			y = -half
		}
		for i := 0; i <= radialSegments; i++ {
			a := float32(i) / float32(radialSegments) * 2 * math32.Pi
			sin, cos := math32.Sincos(a)
			n := mgl32.Vec3{sin, slope, cos}.Normalize()
			g.Positions = append(g.Positions, r*sin, y, r*cos)
			g.Normals = append(g.Normals, n[0], n[1], n[2])
		}
	}
	row := uint32(radialSegments + 1)
	for i := uint32(0); i < uint32(radialSegments); i++ {
		a, b := i, i+row
		g.Indices = append(g.Indices, a, b, a+1, b, b+1, a+1)
	}

	for _, top := range [2]bool{true, false} {
		y, r, ny := half, radiusTop, float32(1)
		if !top {
			y, r, ny = -half, radiusBottom, -1
		}
		if r == 0 {
			continue
		}
		center := uint32(g.VertexCount())
		g.Positions = append(g.Positions, 0, y, 0)
		g.Normals = append(g.Normals, 0, ny, 0)
		for i := 0; i <= radialSegments; i++ {
			a := float32(i) / float32(radialSegments) * 2 * math32.Pi
			sin, cos := math32.Sincos(a)
			g.Positions = append(g.Positions, r*sin, y, r*cos)
			g.Normals = append(g.Normals, 0, ny, 0)
		}
		for i := uint32(1); i <= uint32(radialSegments); i++ {
			if top {
				g.Indices = append(g.Indices, center, center+i, center+i+1)
			} else {
				g.Indices = append(g.Indices, center, center+i+1, center+i)
			}
		}
	}
	return g
}

// CircleGeometry builds a disc in the XY plane facing +Z.
func CircleGeometry(radius float32, segments int) *Geometry {
	segments = max(segments, 3)
	g := &Geometry{Key: fmt.Sprintf("circle/%g/%d", radius, segments)}
	g.Positions = append(g.Positions, 0, 0, 0)
	g.Normals = append(g.Normals, 0, 0, 1)
	for i := 0; i <= segments; i++ {
		a := float32(i) / float32(segments) * 2 * math32.Pi
		sin, cos := math32.Sincos(a)
		g.Positions = append(g.Positions, radius*cos, radius*sin, 0)
		g.Normals = append(g.Normals, 0, 0, 1)
	}
	for i := uint32(1); i <= uint32(segments); i++ {
		g.Indices = append(g.Indices, i, i+1, 0)
	}
	return g
}

// GeodesicGeometry converts m into a smooth-shaded triangle geometry.
func GeodesicGeometry(m *geodesic.Mesh) *Geometry {
	g := &Geometry{
		Key:       fmt.Sprintf("geodesic/%d/%g", m.Level, m.Radius),
		Positions: make([]float32, 0, len(m.Positions)*3),
		Normals:   make([]float32, 0, len(m.Positions)*3),
		Indices:   make([]uint32, 0, len(m.Triangles)*3),
	}
	for i, p := range m.Positions {
		n := m.Normal(i)
		g.Positions = append(g.Positions, float32(p[0]), float32(p[1]), float32(p[2]))
		g.Normals = append(g.Normals, float32(n[0]), float32(n[1]), float32(n[2]))
	}
	for _, t := range m.Triangles {
		g.Indices = append(g.Indices, t[0], t[1], t[2])
	}
	return g
}

// EdgesGeometry builds line segments for the sharp edges of m.
func EdgesGeometry(m *geodesic.Mesh, thresholdDeg float64) *Geometry {
	edges := geodesic.SharpEdges(m, thresholdDeg)
	g := &Geometry{
		Key:       fmt.Sprintf("edges/%d/%g/%g", m.Level, m.Radius, thresholdDeg),
		Primitive: Lines,
		Positions: make([]float32, 0, len(m.Positions)*3),
		Indices:   make([]uint32, 0, len(edges)*2),
	}
	for _, p := range m.Positions {
		g.Positions = append(g.Positions, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	for _, e := range edges {
		g.Indices = append(g.Indices, e[0], e[1])
	}
	return g
}

// PointsGeometry builds an unindexed point cloud.
func PointsGeometry(points []mgl32.Vec3) *Geometry {
	g := &Geometry{Primitive: Points, Positions: make([]float32, 0, len(points)*3)}
	for _, p := range points {
		g.Positions = append(g.Positions, p[0], p[1], p[2])
	}
	return g
}
