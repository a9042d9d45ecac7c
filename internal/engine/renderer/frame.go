package renderer

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spaceship-earth/internal/engine/lighting"
	"github.com/Faultbox/spaceship-earth/internal/scene"
)

// drawItem is a visible drawable with its world transform.
type drawItem struct {
	node  *scene.Node
	world mgl32.Mat4
	depth float32 // distance from the eye
}

// rangedGroup holds the ranged point lights attached to one parent, in
// that parent's local space and in child order.
type rangedGroup struct {
	positions []mgl32.Vec3
	radiance  []mgl32.Vec3
	lightRng  float32
}

// frame is everything one Render call draws, gathered in a single walk.
type frame struct {
	ambient mgl32.Vec3

	sun        bool
	sunDir     mgl32.Vec3
	sunColor   mgl32.Vec3
	sunShadow  bool
	shadowSize int

	points *lighting.PointLightBuffer
	ranged map[*scene.Node]*rangedGroup

	opaque      []drawItem
	transparent []drawItem
	casters     []drawItem
	receivers   []drawItem
}

func newFrame() *frame {
	return &frame{
		points: lighting.NewPointLightBuffer(),
		ranged: make(map[*scene.Node]*rangedGroup),
	}
}

func (f *frame) reset() {
	f.ambient = mgl32.Vec3{}
	f.sun, f.sunShadow = false, false
	f.sunDir, f.sunColor = mgl32.Vec3{}, mgl32.Vec3{}
	f.shadowSize = 0
	f.points.Clear()
	for _, g := range f.ranged {
		g.positions = g.positions[:0]
		g.radiance = g.radiance[:0]
		g.lightRng = 0
	}
	f.opaque = f.opaque[:0]
	f.transparent = f.transparent[:0]
	f.casters = f.casters[:0]
	f.receivers = f.receivers[:0]
}

func (f *frame) group(parent *scene.Node) *rangedGroup {
	g := f.ranged[parent]
	if g == nil {
		g = &rangedGroup{}
		f.ranged[parent] = g
	}
	return g
}

// collect walks root, gathering lights and drawables. Hidden subtrees and
// disposed resources are skipped. Transparent items come out sorted back
// to front as seen from eye.
func (f *frame) collect(root *scene.Node, eye mgl32.Vec3) {
	f.reset()
	if root == nil {
		return
	}
	root.WalkWorld(func(n *scene.Node, world mgl32.Mat4) bool {
		if !n.Visible {
			return false
		}
		if n.Kind.IsLight() {
			f.addLight(n, world)
			return true
		}
		if !drawable(n) {
			return true
		}
		pos := world.Col(3).Vec3()
		it := drawItem{node: n, world: world, depth: pos.Sub(eye).Len()}
		if n.Material.Transparent || n.Material.Opacity < 1 {
			f.transparent = append(f.transparent, it)
		} else {
			f.opaque = append(f.opaque, it)
		}
		if n.Kind == scene.KindMesh {
			if n.CastShadow {
				f.casters = append(f.casters, it)
			}
			if n.CastShadow || n.ReceiveShadow {
				f.receivers = append(f.receivers, it)
			}
		}
		return true
	})
	for parent, g := range f.ranged {
		if len(g.positions) == 0 {
			delete(f.ranged, parent)
		}
	}
	slices.SortStableFunc(f.transparent, func(a, b drawItem) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
}

func drawable(n *scene.Node) bool {
	switch n.Kind {
	case scene.KindMesh, scene.KindLines, scene.KindPoints:
	default:
		return false
	}
	return n.Geometry != nil && n.Material != nil &&
		!n.Geometry.Disposed() && !n.Material.Disposed() &&
		n.Geometry.ElementCount() > 0
}

func (f *frame) addLight(n *scene.Node, world mgl32.Mat4) {
	l := n.Light
	if l == nil {
		return
	}
	radiance := lighting.RGB(l.Color).Mul(float32(max(l.Intensity, 0)))
	switch n.Kind {
	case scene.KindAmbientLight:
		f.ambient = f.ambient.Add(radiance)
	case scene.KindDirectionalLight:
		if f.sun {
			return
		}
		f.sun = true
		f.sunDir = lighting.SunDirection(world.Col(3).Vec3(), mgl32.Vec3{})
		f.sunColor = radiance
		f.sunShadow = l.CastShadow
		f.shadowSize = l.ShadowMapSize
	case scene.KindPointLight:
		if l.Range > 0 && n.Parent() != nil {
			g := f.group(n.Parent())
			g.positions = append(g.positions, n.Position)
			g.radiance = append(g.radiance, radiance)
			g.lightRng = math32.Max(g.lightRng, float32(l.Range))
			return
		}
		f.points.AddLight(lighting.PointLight{
			Position:  world.Col(3).Vec3(),
			Color:     lighting.RGB(l.Color),
			Range:     float32(l.Range),
			Intensity: float32(max(l.Intensity, 0)),
		})
	}
}
