package geodesic

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharpEdgesThresholds(t *testing.T) {
	m, err := Generate(3, DefaultRadius)
	require.NoError(t, err)
	total := m.TriangleCount() * 3 / 2

	all := SharpEdges(m, 0)
	assert.Len(t, all, total)

	none := SharpEdges(m, 180)
	assert.Empty(t, none)

	outline := SharpEdges(m, DefaultEdgeThreshold)
	assert.NotEmpty(t, outline)
	assert.LessOrEqual(t, len(outline), total)
}

func TestSharpEdgesDeterministic(t *testing.T) {
	m, err := Generate(4, DefaultRadius)
	require.NoError(t, err)

	a := SharpEdges(m, DefaultEdgeThreshold)
	b := SharpEdges(m, DefaultEdgeThreshold)
	assert.Equal(t, a, b)

	for _, e := range a {
		assert.Less(t, e[0], e[1])
	}
}

func TestSharpEdgesOpenMesh(t *testing.T) {
	m := &Mesh{
		Radius:    1,
		Positions: []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Triangles: []Triangle{{0, 1, 2}},
		points:    3,
	}

	// A lone triangle has three boundary edges, all kept.
	assert.Len(t, SharpEdges(m, 180), 3)
}
