// Package scene provides the scene graph the renderer draws and the
// composer that assembles the geodesic sphere and its surroundings.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Kind identifies what a node renders or emits.
type Kind uint8

// Node kinds.
const (
	KindGroup Kind = iota
	KindMesh
	KindLines
	KindPoints
	KindAmbientLight
	KindDirectionalLight
	KindPointLight
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindLines:
		return "lines"
	case KindPoints:
		return "points"
	case KindAmbientLight:
		return "ambient"
	case KindDirectionalLight:
		return "directional"
	case KindPointLight:
		return "point"
	default:
		return "unknown"
	}
}

// IsLight reports whether nodes of this kind carry a Light.
func (k Kind) IsLight() bool {
	return k == KindAmbientLight || k == KindDirectionalLight || k == KindPointLight
}

// Light holds emitter parameters. Range is only used by point lights;
// a zero Range means no falloff limit.
type Light struct {
	Color     colorful.Color
	Intensity float64
	Range     float64

	// CastShadow and ShadowMapSize apply to directional lights.
	CastShadow    bool
	ShadowMapSize int
}

// Node is an element of the scene graph. Rotation holds Euler angles in
// radians applied in X, Y, Z order.
type Node struct {
	Name     string
	Kind     Kind
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool

	Geometry *Geometry
	Material *Material
	Light    *Light

	CastShadow    bool
	ReceiveShadow bool

	parent   *Node
	children []*Node
}

func newNode(name string, kind Kind) *Node {
	return &Node{Name: name, Kind: kind, Scale: mgl32.Vec3{1, 1, 1}, Visible: true}
}

// NewGroup creates an empty grouping node.
func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

// NewMesh creates a triangle mesh node.
func NewMesh(name string, g *Geometry, m *Material) *Node {
	n := newNode(name, KindMesh)
	n.Geometry, n.Material = g, m
	return n
}

// NewLines creates a line segment node.
func NewLines(name string, g *Geometry, m *Material) *Node {
	n := newNode(name, KindLines)
	n.Geometry, n.Material = g, m
	return n
}

// NewPoints creates a point cloud node.
func NewPoints(name string, g *Geometry, m *Material) *Node {
	n := newNode(name, KindPoints)
	n.Geometry, n.Material = g, m
	return n
}

// NewLight creates a light node; kind must be a light kind.
func NewLight(name string, kind Kind, l *Light) *Node {
	if !kind.IsLight() {
		panic("scene: NewLight with non-light kind " + kind.String())
	}
	n := newNode(name, kind)
	n.Light = l
	return n
}

// Parent returns the node this node is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the attached children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches children, detaching each from its previous parent first.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		c.Detach()
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child from n. It reports whether child was attached.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return true
		}
	}
	return false
}

// RemoveAll detaches every child for which drop returns true, in one pass.
// It returns the number of detached children.
func (n *Node) RemoveAll(drop func(*Node) bool) int {
	kept := n.children[:0]
	removed := 0
	for _, c := range n.children {
		if drop(c) {
			c.parent = nil
			removed++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(n.children); i++ {
		n.children[i] = nil
	}
	n.children = kept
	return removed
}

// Detach removes n from its parent. It is a no-op for a root node.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// LocalMatrix returns translation * rotation(X, Y, Z) * scale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DX(n.Rotation[0]).
		Mul4(mgl32.HomogRotate3DY(n.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation[2]))
	return mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2]).
		Mul4(rot).
		Mul4(mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2]))
}

// WorldMatrix returns the node transform composed with its ancestors.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// WalkWorld is Walk with the world matrix of each visited node.
func (n *Node) WalkWorld(fn func(*Node, mgl32.Mat4) bool) {
	var parent mgl32.Mat4
	if n.parent != nil {
		parent = n.parent.WorldMatrix()
	} else {
		parent = mgl32.Ident4()
	}
	n.walkWorld(parent, fn)
}

func (n *Node) walkWorld(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4) bool) {
	world := parent.Mul4(n.LocalMatrix())
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.walkWorld(world, fn)
	}
}
