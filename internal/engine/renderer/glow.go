package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spaceship-earth/internal/engine/lighting"
	"github.com/Faultbox/spaceship-earth/internal/scene"
)

// glowReceiver is a lit mesh sharing a parent with ranged point lights.
// Its own VAO adds a per-vertex glow buffer to the shared geometry.
type glowReceiver struct {
	geometry *scene.Geometry
	kernel   *lighting.GlowKernel
	data     []float32
	vao      uint32
	vbo      uint32
	seen     uint64
}

// receiverVertices returns the geometry positions in the parent's space,
// the space ranged lights are collected in.
func receiverVertices(n *scene.Node) []mgl32.Vec3 {
	local := n.LocalMatrix()
	pos := n.Geometry.Positions
	out := make([]mgl32.Vec3, 0, len(pos)/3)
	for i := 0; i+2 < len(pos); i += 3 {
		out = append(out, mgl32.TransformCoordinate(mgl32.Vec3{pos[i], pos[i+1], pos[i+2]}, local))
	}
	return out
}

func newGlowReceiver(n *scene.Node, g *rangedGroup, gpu *gpuGeometry) *glowReceiver {
	k := lighting.NewGlowKernel(receiverVertices(n), g.positions, g.lightRng, lighting.DefaultGlowNeighbors)
	rc := &glowReceiver{
		geometry: n.Geometry,
		kernel:   k,
		data:     make([]float32, 3*k.Vertices()),
	}

	gl.GenVertexArrays(1, &rc.vao)
	gl.BindVertexArray(rc.vao)
	gpu.bindAttributes()

	gl.GenBuffers(1, &rc.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, rc.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(rc.data)*4, gl.Ptr(rc.data), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(attribGlow, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(attribGlow)

	gl.BindVertexArray(0)
	return rc
}

// matches reports whether the receiver was built for this node state.
func (rc *glowReceiver) matches(n *scene.Node, g *rangedGroup) bool {
	return rc.geometry == n.Geometry && rc.kernel.Lights() == len(g.positions)
}

// update recomputes the glow from the current light radiance.
func (rc *glowReceiver) update(g *rangedGroup) {
	rc.kernel.Accumulate(rc.data, g.radiance)
	gl.BindBuffer(gl.ARRAY_BUFFER, rc.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(rc.data)*4, gl.Ptr(rc.data))
}

func (rc *glowReceiver) destroy() {
	if rc.vbo != 0 {
		gl.DeleteBuffers(1, &rc.vbo)
		rc.vbo = 0
	}
	if rc.vao != 0 {
		gl.DeleteVertexArrays(1, &rc.vao)
		rc.vao = 0
	}
}
