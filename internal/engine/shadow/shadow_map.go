// Package shadow provides real-time shadow mapping for 3D rendering.
package shadow

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrIncomplete is returned when the driver rejects the depth framebuffer.
var ErrIncomplete = errors.New("shadow: framebuffer incomplete")

// Map is the depth framebuffer the sun renders shadow casters into. Its
// texture is sampled with comparison in the surface shader.
type Map struct {
	FBO          uint32   // Framebuffer object
	DepthTexture uint32   // Depth texture for shadow sampling
	Resolution   int32    // Shadow map resolution (width = height)
	prevViewport [4]int32 // Saved viewport for restore
}

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 2048

// NewMap creates a shadow map of resolution x resolution texels. Zero or
// negative resolutions use DefaultResolution.
func NewMap(resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	sm := &Map{
		Resolution: resolution,
	}

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)

	gl.GenTextures(1, &sm.DepthTexture)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.DEPTH_COMPONENT24,
		resolution,
		resolution,
		0,
		gl.DEPTH_COMPONENT,
		gl.FLOAT,
		nil,
	)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Clamp to border with white (1.0) to avoid shadow outside frustum
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	// sampler2DShadow comparison
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.FramebufferTexture2D(
		gl.FRAMEBUFFER,
		gl.DEPTH_ATTACHMENT,
		gl.TEXTURE_2D,
		sm.DepthTexture,
		0,
	)

	// Depth only
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		return nil, fmt.Errorf("%dx%d depth map, status 0x%x: %w", resolution, resolution, status, ErrIncomplete)
	}

	return sm, nil
}

// Bind binds the shadow map framebuffer for rendering the depth pass.
// Sets the viewport to match the shadow map resolution.
func (sm *Map) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &sm.prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.Viewport(0, 0, sm.Resolution, sm.Resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// Closed casters only: culling front faces keeps acne off lit sides.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(1.5, 4)
}

// Unbind restores the default framebuffer, the saved viewport and
// disables culling again.
func (sm *Map) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(sm.prevViewport[0], sm.prevViewport[1], sm.prevViewport[2], sm.prevViewport[3])
	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.CullFace(gl.BACK)
	gl.Disable(gl.CULL_FACE)
}

// BindTexture binds the depth texture to textureUnit for sampling.
func (sm *Map) BindTexture(textureUnit uint32) {
	gl.ActiveTexture(textureUnit)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
}

// Destroy releases the framebuffer and texture. It is safe to call twice.
func (sm *Map) Destroy() {
	if sm.FBO != 0 {
		gl.DeleteFramebuffers(1, &sm.FBO)
		sm.FBO = 0
	}
	if sm.DepthTexture != 0 {
		gl.DeleteTextures(1, &sm.DepthTexture)
		sm.DepthTexture = 0
	}
}

// IsValid returns true if the shadow map was created successfully.
func (sm *Map) IsValid() bool {
	return sm != nil && sm.FBO != 0 && sm.DepthTexture != 0
}
