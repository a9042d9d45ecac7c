package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spaceship-earth/internal/geodesic"
	"github.com/Faultbox/spaceship-earth/internal/lightfield"
	"github.com/Faultbox/spaceship-earth/internal/scene"
)

func composed(t *testing.T) (*scene.Graph, *lightfield.Field) {
	t.Helper()
	m, err := geodesic.Generate(geodesic.MinLevel, geodesic.DefaultRadius)
	require.NoError(t, err)
	g, err := scene.Compose(m, scene.DefaultOptions())
	require.NoError(t, err)
	f, err := lightfield.Build(m, scene.Hex(0x00aaff), g.Sphere)
	require.NoError(t, err)
	return g, f
}

func TestCollectLights(t *testing.T) {
	g, f := composed(t)
	fr := newFrame()
	fr.collect(g.Root, mgl32.Vec3{0, 0, 8})

	ambient := scene.AmbientColor
	assert.InDelta(t, ambient.R*0.4, fr.ambient[0], 1e-6)

	require.True(t, fr.sun)
	assert.True(t, fr.sunShadow)
	assert.Equal(t, 2048, fr.shadowSize)
	assert.True(t, fr.sunDir.ApproxEqual(mgl32.Vec3{5, 10, 5}.Normalize()))
	assert.InDelta(t, 0.8, fr.sunColor[0], 1e-6)

	assert.Equal(t, 1, fr.points.Count(), "only the accent light is unranged")
	assert.Equal(t, mgl32.Vec3{-5, 3, -5}, fr.points.Lights[0].Position)

	group := fr.ranged[g.Sphere]
	require.NotNil(t, group)
	assert.Len(t, group.positions, f.Len())
	assert.Len(t, group.radiance, f.Len())
	assert.InDelta(t, lightfield.DefaultRange, group.lightRng, 1e-6)
	assert.Equal(t, f.Lights()[7].Node().Position, group.positions[7])
}

func TestCollectRadianceFollowsIntensity(t *testing.T) {
	g, f := composed(t)
	f.Lights()[3].SetIntensity(2)

	fr := newFrame()
	fr.collect(g.Root, mgl32.Vec3{0, 0, 8})
	group := fr.ranged[g.Sphere]
	require.NotNil(t, group)

	want := mgl32.Vec3{0, float32(0xaa) / 255, 1}.Mul(2)
	assert.True(t, group.radiance[3].ApproxEqualThreshold(want, 1e-5), "got %v", group.radiance[3])
	assert.Equal(t, mgl32.Vec3{}, group.radiance[4])
}

func TestCollectDrawables(t *testing.T) {
	g, f := composed(t)
	fr := newFrame()
	fr.collect(g.Root, mgl32.Vec3{0, 0, 8})

	// panels and three supports
	assert.Len(t, fr.opaque, 4)
	// wireframe, edges, ground, stars and one marker per light
	assert.Len(t, fr.transparent, 4+f.Len())
	assert.Len(t, fr.casters, 4)
	assert.Len(t, fr.receivers, 5)

	for i := 1; i < len(fr.transparent); i++ {
		assert.GreaterOrEqual(t, fr.transparent[i-1].depth, fr.transparent[i].depth, "back to front")
	}
}

func TestCollectSkipsHiddenAndDisposed(t *testing.T) {
	g, _ := composed(t)
	g.Sphere.Visible = false
	g.Stars.Geometry.Dispose()

	fr := newFrame()
	fr.collect(g.Root, mgl32.Vec3{0, 0, 8})

	assert.Empty(t, fr.ranged)
	assert.Len(t, fr.opaque, 3)
	assert.Len(t, fr.transparent, 1, "only the ground is left")
	assert.Equal(t, "ground", fr.transparent[0].node.Name)

	g.Sphere.Visible = true
	fr.collect(g.Root, mgl32.Vec3{0, 0, 8})
	assert.Len(t, fr.ranged, 1)
}

func TestCollectNilRoot(t *testing.T) {
	fr := newFrame()
	fr.collect(nil, mgl32.Vec3{})
	assert.False(t, fr.sun)
	assert.Empty(t, fr.opaque)
}

func TestGeometryCacheSharesByKey(t *testing.T) {
	var released []string
	c := newGeometryCache(func(gpu *gpuGeometry) { released = append(released, gpu.key) })

	uploads := 0
	upload := func(key string, _ *scene.Geometry) *gpuGeometry {
		uploads++
		return &gpuGeometry{key: key}
	}

	a := scene.SphereGeometry(1, 4, 4)
	a.Key = "ball"
	b := a.Share()
	loose := scene.CircleGeometry(1, 8)

	ga := c.get(a, upload)
	gb := c.get(b, upload)
	c.get(loose, upload)
	assert.Same(t, ga, gb)
	assert.Same(t, ga, c.get(a, upload), "repeat lookups do not add references")
	assert.Equal(t, 2, uploads)
	assert.Equal(t, 2, c.len())
	assert.Equal(t, 2, ga.refs)

	a.Dispose()
	assert.Empty(t, released)
	b.Dispose()
	assert.Equal(t, []string{"ball"}, released)

	c.clear()
	assert.Len(t, released, 2)
	loose.Dispose()
	assert.Len(t, released, 2, "dispose after clear releases nothing")
}
