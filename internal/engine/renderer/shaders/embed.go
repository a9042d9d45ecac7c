// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SurfaceVertexShader is the vertex shader for lit and unlit triangle meshes.
//
//go:embed surface.vert
var SurfaceVertexShader string

// SurfaceFragmentShader shades meshes with ambient, sun, point lights,
// per-vertex glow and shadows.
//
//go:embed surface.frag
var SurfaceFragmentShader string

// LineVertexShader is the vertex shader for line segments.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for line segments.
//
//go:embed line.frag
var LineFragmentShader string

// PointVertexShader is the vertex shader for point clouds.
//
//go:embed point.vert
var PointVertexShader string

// PointFragmentShader draws round points.
//
//go:embed point.frag
var PointFragmentShader string

// DepthVertexShader is the vertex shader for the shadow depth pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the fragment shader for the shadow depth pass.
//
//go:embed depth.frag
var DepthFragmentShader string
