package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spaceship-earth/internal/engine/shadow"
	"github.com/Faultbox/spaceship-earth/internal/scene"
)

// Vertex attribute locations shared by every program.
const (
	attribPosition = 0
	attribNormal   = 1
	attribGlow     = 2
)

// gpuGeometry is the GPU copy of a geometry. Geometries with the same Key
// share one copy; refs counts the geometries bound to it.
type gpuGeometry struct {
	key       string
	vao       uint32
	positions uint32
	normals   uint32
	ebo       uint32
	mode      uint32
	count     int32
	indexed   bool
	vertices  int
	bounds    shadow.AABB
	refs      int
}

func newGPUGeometry(key string, g *scene.Geometry) *gpuGeometry {
	gpu := &gpuGeometry{
		key:      key,
		mode:     primitiveMode(g.Primitive),
		count:    int32(g.ElementCount()),
		indexed:  len(g.Indices) > 0,
		vertices: g.VertexCount(),
		bounds:   shadow.EmptyAABB(),
	}
	for i := 0; i+2 < len(g.Positions); i += 3 {
		gpu.bounds.Extend(mgl32.Vec3{g.Positions[i], g.Positions[i+1], g.Positions[i+2]})
	}

	gl.GenVertexArrays(1, &gpu.vao)
	gl.BindVertexArray(gpu.vao)

	gl.GenBuffers(1, &gpu.positions)
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.positions)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Positions)*4, unsafe.Pointer(&g.Positions[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(attribPosition)

	if len(g.Normals) == len(g.Positions) {
		gl.GenBuffers(1, &gpu.normals)
		gl.BindBuffer(gl.ARRAY_BUFFER, gpu.normals)
		gl.BufferData(gl.ARRAY_BUFFER, len(g.Normals)*4, unsafe.Pointer(&g.Normals[0]), gl.STATIC_DRAW)
		gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(attribNormal)
	}

	if gpu.indexed {
		gl.GenBuffers(1, &gpu.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return gpu
}

// bindAttributes points the current VAO at the shared buffers.
func (gpu *gpuGeometry) bindAttributes() {
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.positions)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(attribPosition)
	if gpu.normals != 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, gpu.normals)
		gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(attribNormal)
	}
	if gpu.ebo != 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.ebo)
	}
}

// draw issues the draw call with whatever VAO is bound.
func (gpu *gpuGeometry) draw() {
	if gpu.indexed {
		gl.DrawElements(gpu.mode, gpu.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gpu.mode, 0, gpu.count)
	}
}

func (gpu *gpuGeometry) destroy() {
	if gpu.vao != 0 {
		gl.DeleteVertexArrays(1, &gpu.vao)
		gpu.vao = 0
	}
	for _, b := range []*uint32{&gpu.positions, &gpu.normals, &gpu.ebo} {
		if *b != 0 {
			gl.DeleteBuffers(1, b)
			*b = 0
		}
	}
}

func primitiveMode(p scene.Primitive) uint32 {
	switch p {
	case scene.Lines:
		return gl.LINES
	case scene.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

// geometryCache maps scene geometries to their GPU copies.
type geometryCache struct {
	byKey   map[string]*gpuGeometry
	bound   map[*scene.Geometry]*gpuGeometry
	release func(*gpuGeometry)
}

func newGeometryCache(release func(*gpuGeometry)) *geometryCache {
	return &geometryCache{
		byKey:   make(map[string]*gpuGeometry),
		bound:   make(map[*scene.Geometry]*gpuGeometry),
		release: release,
	}
}

func cacheKey(g *scene.Geometry) string {
	if g.Key != "" {
		return g.Key
	}
	return fmt.Sprintf("%p", g)
}

// get returns the GPU copy of g, uploading it with upload on first use.
// The reference is dropped when g is disposed.
func (c *geometryCache) get(g *scene.Geometry, upload func(string, *scene.Geometry) *gpuGeometry) *gpuGeometry {
	if gpu, ok := c.bound[g]; ok {
		return gpu
	}
	key := cacheKey(g)
	gpu := c.byKey[key]
	if gpu == nil {
		gpu = upload(key, g)
		c.byKey[key] = gpu
	}
	gpu.refs++
	c.bound[g] = gpu
	g.OnDispose(func() { c.drop(g) })
	return gpu
}

func (c *geometryCache) drop(g *scene.Geometry) {
	gpu, ok := c.bound[g]
	if !ok {
		return
	}
	delete(c.bound, g)
	gpu.refs--
	if gpu.refs > 0 {
		return
	}
	delete(c.byKey, gpu.key)
	if c.release != nil {
		c.release(gpu)
	}
}

// len returns the number of distinct GPU copies.
func (c *geometryCache) len() int {
	return len(c.byKey)
}

// clear forgets every entry, releasing each GPU copy once.
func (c *geometryCache) clear() {
	for _, gpu := range c.byKey {
		if c.release != nil {
			c.release(gpu)
		}
	}
	clear(c.byKey)
	clear(c.bound)
}
