package geodesic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLevelFiveCounts(t *testing.T) {
	m, err := Generate(DefaultLevel, DefaultRadius)
	require.NoError(t, err)

	assert.Equal(t, 3840, m.VertexCount())
	assert.Len(t, m.Vertices(), 3840)
	assert.Equal(t, 11520, m.TriangleCount())
	assert.Equal(t, DefaultLevel, m.Level)
	assert.NoError(t, m.Validate())
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(DefaultLevel, DefaultRadius)
	require.NoError(t, err)
	b, err := Generate(DefaultLevel, DefaultRadius)
	require.NoError(t, err)

	require.Equal(t, a.VertexCount(), b.VertexCount())
	assert.Equal(t, a.Positions, b.Positions)
	assert.Equal(t, a.Triangles, b.Triangles)
}

func TestCountsForLevel(t *testing.T) {
	tests := []struct {
		level     int
		vertices  int
		triangles int
	}{
		{level: 2, vertices: 60, triangles: 180},
		{level: 3, vertices: 240, triangles: 720},
		{level: 4, vertices: 960, triangles: 2880},
		{level: 5, vertices: 3840, triangles: 11520},
		{level: 6, vertices: 15360, triangles: 46080},
	}

	for _, tt := range tests {
		m, err := Generate(tt.level, 1)
		require.NoError(t, err, "level %d", tt.level)

		assert.Equal(t, tt.vertices, m.VertexCount(), "level %d vertices", tt.level)
		assert.Equal(t, tt.triangles, m.TriangleCount(), "level %d triangles", tt.level)
		assert.Equal(t, tt.vertices, VertexCountForLevel(tt.level))
		assert.Equal(t, tt.triangles, TriangleCountForLevel(tt.level))
	}
}

func TestGenerateRejectsLevel(t *testing.T) {
	for _, level := range []int{-1, 0, 1, MaxLevel + 1} {
		_, err := Generate(level, DefaultRadius)
		assert.True(t, errors.Is(err, ErrLevel), "level %d: %v", level, err)
	}

	_, err := Generate(DefaultLevel, 0)
	assert.Error(t, err)
}

func TestPositionsLieOnSphere(t *testing.T) {
	m, err := Generate(4, DefaultRadius)
	require.NoError(t, err)

	for i, p := range m.Positions {
		assert.InDelta(t, DefaultRadius, p.Len(), 1e-9, "position %d", i)
	}
}

func TestMeshIsClosed(t *testing.T) {
	m, err := Generate(4, DefaultRadius)
	require.NoError(t, err)

	uses := make(map[Edge]int)
	for _, tri := range m.Triangles {
		for k := 0; k < 3; k++ {
			i, j := tri[k], tri[(k+1)%3]
			if j < i {
				i, j = j, i
			}
			uses[Edge{i, j}]++
		}
	}
	for e, n := range uses {
		if n != 2 {
			t.Fatalf("edge %v used by %d faces", e, n)
		}
	}

	// Euler characteristic of a sphere.
	assert.Equal(t, 2, len(m.Positions)-len(uses)+m.TriangleCount())
}

func TestTrianglesFaceOutward(t *testing.T) {
	m, err := Generate(3, DefaultRadius)
	require.NoError(t, err)

	for ti, tri := range m.Triangles {
		n := m.FaceNormal(tri)
		c := m.Positions[tri[0]].Add(m.Positions[tri[1]]).Add(m.Positions[tri[2]])
		if n.Dot(c) <= 0 {
			t.Fatalf("triangle %d faces inward", ti)
		}
	}
}

func TestEveryTriangleHasOneApex(t *testing.T) {
	m, err := Generate(3, DefaultRadius)
	require.NoError(t, err)

	apex := uint32(m.VertexCount())
	for ti, tri := range m.Triangles {
		assert.Less(t, tri[0], uint32(len(m.Positions)))
		assert.GreaterOrEqual(t, tri[0], apex, "triangle %d corner", ti)
		assert.GreaterOrEqual(t, tri[1], apex, "triangle %d corner", ti)
		assert.Equal(t, uint32(ti/3), tri[2], "triangle %d apex", ti)
	}
}

func TestValidate(t *testing.T) {
	var nilMesh *Mesh
	assert.ErrorIs(t, nilMesh.Validate(), ErrEmptyMesh)
	assert.ErrorIs(t, (&Mesh{}).Validate(), ErrEmptyMesh)

	m, err := Generate(MinLevel, 1)
	require.NoError(t, err)
	m.Triangles[7][1] = uint32(len(m.Positions))
	assert.ErrorIs(t, m.Validate(), ErrIndex)
}

func TestNormal(t *testing.T) {
	m, err := Generate(MinLevel, DefaultRadius)
	require.NoError(t, err)

	for i := range m.Vertices() {
		n := m.Normal(i)
		assert.InDelta(t, 1.0, n.Len(), 1e-12)
		assert.InDelta(t, DefaultRadius, n.Dot(m.Positions[i]), 1e-9)
	}
}
