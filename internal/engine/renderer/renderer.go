// Package renderer draws scene graphs with OpenGL 4.1.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/spaceship-earth/internal/engine/camera"
	"github.com/Faultbox/spaceship-earth/internal/engine/lighting"
	"github.com/Faultbox/spaceship-earth/internal/engine/renderer/shaders"
	"github.com/Faultbox/spaceship-earth/internal/engine/shader"
	"github.com/Faultbox/spaceship-earth/internal/engine/shadow"
	"github.com/Faultbox/spaceship-earth/internal/logger"
	"github.com/Faultbox/spaceship-earth/internal/scene"
)

// Errors returned by Render.
var (
	ErrClosed   = errors.New("renderer: closed")
	ErrNilScene = errors.New("renderer: nil scene or camera")
)

// shadowTextureUnit is the texture unit the shadow map is sampled from.
const shadowTextureUnit = 1

// Presenter shows the finished frame, normally a double-buffered window.
type Presenter interface {
	SwapBuffers()
}

// Renderer draws a scene.Graph. It must be created and used on the
// thread that owns the GL context.
type Renderer struct {
	presenter Presenter
	log       *zap.Logger

	width, height int32

	surface *shader.Program
	line    *shader.Program
	point   *shader.Program
	depth   *shader.Program

	shadowMap *shadow.Map
	geometry  *geometryCache
	glow      map[*scene.Node]*glowReceiver
	frame     *frame
	frameNo   uint64

	capture func(pixels []byte, width, height int)

	closed bool
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(presenter Presenter, width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		presenter: presenter,
		log:       logger.Named("renderer"),
		glow:      make(map[*scene.Node]*glowReceiver),
		frame:     newFrame(),
	}
	r.geometry = newGeometryCache(r.releaseGeometry)

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	programs := []struct {
		dst        **shader.Program
		name       string
		vert, frag string
	}{
		{&r.surface, "surface", shaders.SurfaceVertexShader, shaders.SurfaceFragmentShader},
		{&r.line, "line", shaders.LineVertexShader, shaders.LineFragmentShader},
		{&r.point, "point", shaders.PointVertexShader, shaders.PointFragmentShader},
		{&r.depth, "depth", shaders.DepthVertexShader, shaders.DepthFragmentShader},
	}
	for _, p := range programs {
		prog, err := shader.NewProgram(p.name, p.vert, p.frag)
		if err != nil {
			r.Close()
			return nil, err
		}
		*p.dst = prog
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	r.SetSize(width, height)
	return r, nil
}

// SetSize sets the drawable size in pixels.
func (r *Renderer) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = int32(width), int32(height)
}

// Render draws one frame of g as seen by cam and presents it.
func (r *Renderer) Render(g *scene.Graph, cam *camera.Perspective) error {
	if r.closed {
		return ErrClosed
	}
	if g == nil || cam == nil {
		return ErrNilScene
	}
	r.frameNo++

	f := r.frame
	f.collect(g.Root, cam.Position)

	lightViewProj := mgl32.Ident4()
	shadows := false
	if f.sun && f.sunShadow && len(f.casters) > 0 {
		if err := r.ensureShadowMap(int32(f.shadowSize)); err != nil {
			r.log.Warn("shadows disabled", zap.Error(err))
		} else {
			lightViewProj = shadow.DirectionalLightMatrix(f.sunDir, r.shadowBounds())
			r.renderShadowPass(lightViewProj)
			shadows = true
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, r.width, r.height)
	bg := g.Background.Clamped()
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := cam.ViewProjection()
	r.setupSurface(viewProj, cam.Position, lightViewProj, shadows)
	gl.VertexAttrib3f(attribGlow, 0, 0, 0)

	for _, it := range f.opaque {
		r.draw(it, viewProj)
	}
	for _, it := range f.transparent {
		r.draw(it, viewProj)
	}

	gl.BindVertexArray(0)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Disable(gl.CULL_FACE)

	r.pruneGlow()

	if code := gl.GetError(); code != gl.NO_ERROR {
		r.log.Warn("GL error", zap.Uint32("code", code))
	}

	if r.capture != nil {
		r.readPixels()
	}
	if r.presenter != nil {
		r.presenter.SwapBuffers()
	}
	return nil
}

// CaptureNext calls fn with the RGBA pixels of the next frame, bottom row
// first, before it is presented.
func (r *Renderer) CaptureNext(fn func(pixels []byte, width, height int)) {
	r.capture = fn
}

func (r *Renderer) readPixels() {
	fn := r.capture
	r.capture = nil
	pixels := make([]byte, int(r.width)*int(r.height)*4)
	if len(pixels) == 0 {
		return
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, r.width, r.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	fn(pixels, int(r.width), int(r.height))
}

func (r *Renderer) ensureShadowMap(size int32) error {
	if size <= 0 {
		size = shadow.DefaultResolution
	}
	if r.shadowMap.IsValid() && r.shadowMap.Resolution == size {
		return nil
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}
	sm, err := shadow.NewMap(size)
	if err != nil {
		return err
	}
	r.shadowMap = sm
	return nil
}

// shadowBounds is the world box of every shadow caster and receiver.
func (r *Renderer) shadowBounds() shadow.AABB {
	b := shadow.EmptyAABB()
	for _, it := range r.frame.receivers {
		gpu := r.gpu(it.node.Geometry)
		for i := 0; i < 8; i++ {
			corner := mgl32.Vec3{gpu.bounds.Min[0], gpu.bounds.Min[1], gpu.bounds.Min[2]}
			if i&1 != 0 {
				corner[0] = gpu.bounds.Max[0]
			}
			if i&2 != 0 {
				corner[1] = gpu.bounds.Max[1]
			}
			if i&4 != 0 {
				corner[2] = gpu.bounds.Max[2]
			}
			b.Extend(mgl32.TransformCoordinate(corner, it.world))
		}
	}
	return b
}

func (r *Renderer) renderShadowPass(lightViewProj mgl32.Mat4) {
	r.shadowMap.Bind()
	r.depth.Use()
	r.depth.SetMat4("uLightViewProj", lightViewProj)
	for _, it := range r.frame.casters {
		gpu := r.gpu(it.node.Geometry)
		if gpu.mode != gl.TRIANGLES {
			continue
		}
		r.depth.SetMat4("uModel", it.world)
		gl.BindVertexArray(gpu.vao)
		gpu.draw()
	}
	gl.BindVertexArray(0)
	r.shadowMap.Unbind()
}

// setupSurface uploads the uniforms shared by every lit mesh this frame.
func (r *Renderer) setupSurface(viewProj mgl32.Mat4, eye mgl32.Vec3, lightViewProj mgl32.Mat4, shadows bool) {
	f := r.frame
	p := r.surface
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetMat4("uLightViewProj", lightViewProj)
	p.SetVec3("uCameraPos", eye)
	p.SetVec3("uAmbient", f.ambient)
	p.SetVec3("uSunDir", f.sunDir)
	p.SetVec3("uSunColor", f.sunColor)

	p.SetBool("uShadowsEnabled", shadows)
	p.SetInt("uShadowMap", shadowTextureUnit)
	if shadows {
		r.shadowMap.BindTexture(gl.TEXTURE0 + shadowTextureUnit)
	}

	n := f.points.Count()
	p.SetInt("uPointLightCount", int32(n))
	p.SetVec3Array("uPointLightPositions", f.points.Positions(), n)
	p.SetVec3Array("uPointLightColors", f.points.Colors(), n)
	p.SetFloatArray("uPointLightRanges", f.points.Ranges(), n)
	p.SetFloatArray("uPointLightIntensities", f.points.Intensities(), n)
}

func (r *Renderer) draw(it drawItem, viewProj mgl32.Mat4) {
	n, m := it.node, it.node.Material
	gpu := r.gpu(n.Geometry)
	color := lighting.RGB(m.Color)
	opacity := float32(1)
	if m.Transparent || m.Opacity < 1 {
		opacity = float32(max(0, min(m.Opacity, 1)))
	}

	switch n.Kind {
	case scene.KindMesh:
		p := r.surface
		p.Use()
		p.SetMat4("uModel", it.world)
		p.SetMat3("uNormalMatrix", it.world.Mat3().Inv().Transpose())
		p.SetInt("uShading", int32(m.Shading))
		p.SetVec3("uColor", color)
		p.SetFloat("uOpacity", opacity)
		p.SetVec3("uSpecular", lighting.RGB(m.Specular))
		p.SetFloat("uShininess", float32(max(m.Shininess, 1)))
		p.SetBool("uDoubleSided", m.DoubleSided)
		p.SetBool("uReceiveShadow", n.ReceiveShadow)

		if m.DoubleSided {
			gl.Disable(gl.CULL_FACE)
		} else {
			gl.Enable(gl.CULL_FACE)
			gl.CullFace(gl.BACK)
		}
		if m.Wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}

		if rc := r.glowFor(it, gpu); rc != nil {
			gl.BindVertexArray(rc.vao)
		} else {
			gl.BindVertexArray(gpu.vao)
		}

	case scene.KindLines:
		p := r.line
		p.Use()
		p.SetMat4("uMVP", viewProj.Mul4(it.world))
		p.SetVec3("uColor", color)
		p.SetFloat("uOpacity", opacity)
		gl.Disable(gl.CULL_FACE)
		gl.BindVertexArray(gpu.vao)

	case scene.KindPoints:
		p := r.point
		p.Use()
		p.SetMat4("uMVP", viewProj.Mul4(it.world))
		p.SetVec3("uColor", color)
		p.SetFloat("uOpacity", opacity)
		p.SetFloat("uPointSize", float32(max(m.Size, 1)))
		gl.Disable(gl.CULL_FACE)
		gl.BindVertexArray(gpu.vao)
	}

	gpu.draw()
}

// glowFor returns the glow receiver of a lit mesh that shares its parent
// with ranged point lights, updated for this frame.
func (r *Renderer) glowFor(it drawItem, gpu *gpuGeometry) *glowReceiver {
	n := it.node
	if n.Material.Shading == scene.Basic || n.Parent() == nil || n.Geometry.VertexCount() == 0 {
		return nil
	}
	g := r.frame.ranged[n.Parent()]
	if g == nil {
		return nil
	}
	rc := r.glow[n]
	if rc == nil || !rc.matches(n, g) {
		if rc != nil {
			rc.destroy()
		}
		rc = newGlowReceiver(n, g, gpu)
		r.glow[n] = rc
		r.log.Debug("glow kernel built",
			zap.String("node", n.Name),
			zap.Int("vertices", rc.kernel.Vertices()),
			zap.Int("lights", rc.kernel.Lights()),
		)
	}
	rc.seen = r.frameNo
	rc.update(g)
	return rc
}

// pruneGlow frees receivers not drawn this frame.
func (r *Renderer) pruneGlow() {
	for n, rc := range r.glow {
		if rc.seen != r.frameNo {
			rc.destroy()
			delete(r.glow, n)
		}
	}
}

func (r *Renderer) gpu(g *scene.Geometry) *gpuGeometry {
	return r.geometry.get(g, newGPUGeometry)
}

func (r *Renderer) releaseGeometry(gpu *gpuGeometry) {
	if r.closed {
		return
	}
	gpu.destroy()
}

// Close releases every GL object. Geometries disposed afterwards do not
// touch GL.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.log.Info("closing renderer", zap.Int("geometries", r.geometry.len()))
	r.geometry.clear()
	for n, rc := range r.glow {
		rc.destroy()
		delete(r.glow, n)
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}
	for _, p := range []*shader.Program{r.surface, r.line, r.point, r.depth} {
		if p != nil {
			p.Delete()
		}
	}
	r.closed = true
}
