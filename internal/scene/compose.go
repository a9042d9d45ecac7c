package scene

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/spaceship-earth/internal/geodesic"
)

// ErrEmptyMesh is returned by Compose for a mesh that cannot be drawn.
var ErrEmptyMesh = geodesic.ErrEmptyMesh

// Palette of the composed scene.
var (
	BackgroundColor = Hex(0x000510)
	PanelColor      = Hex(0xc8c8d0)
	PanelSpecular   = Hex(0x444444)
	WireColor       = Hex(0x202020)
	EdgeColor       = Hex(0x404040)
	SupportColor    = Hex(0x666666)
	GroundColor     = Hex(0x1a1a2e)
	AmbientColor    = Hex(0x404040)
	AccentColor     = Hex(0x4a90e2)
	StarColor       = Hex(0xffffff)
)

// Options tunes the parts of the scene that are not derived from the mesh.
type Options struct {
	StarCount     int
	StarSeed      uint64
	StarSpread    float32
	EdgeThreshold float64
}

// DefaultOptions returns the reference star field and edge threshold.
func DefaultOptions() Options {
	return Options{
		StarCount:     200,
		StarSeed:      1,
		StarSpread:    100,
		EdgeThreshold: geodesic.DefaultEdgeThreshold,
	}
}

// Graph is the composed scene. Sphere is the rotating group the light
// field attaches to; the other named nodes are exposed for the render loop.
type Graph struct {
	Root       *Node
	Background colorful.Color

	Sphere    *Node
	Solid     *Node
	Wireframe *Node
	Edges     *Node

	Supports []*Node
	Ground   *Node

	Ambient *Node
	Sun     *Node
	Accent  *Node

	Stars *Node

	disposed bool
}

// Compose builds the scene around m. Nothing is built if m is invalid.
func Compose(m *geodesic.Mesh, opts Options) (*Graph, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("compose scene: %w", err)
	}
	if opts.StarCount < 0 {
		opts.StarCount = 0
	}
	if opts.StarSpread <= 0 {
		opts.StarSpread = DefaultOptions().StarSpread
	}

	g := &Graph{Root: NewGroup("scene"), Background: BackgroundColor}

	g.Sphere = NewGroup("sphere")
	g.composeSphere(m, opts.EdgeThreshold)
	g.Root.Add(g.Sphere)

	g.composeSupports()
	g.composeGround()
	g.composeLights()
	g.composeStars(opts)

	return g, nil
}

func (g *Graph) composeSphere(m *geodesic.Mesh, threshold float64) {
	geom := GeodesicGeometry(m)

	panel := NewMaterial(Phong, PanelColor)
	panel.Shininess = 100
	panel.Specular = PanelSpecular
	g.Solid = NewMesh("panels", geom, panel)
	g.Solid.CastShadow = true
	g.Solid.ReceiveShadow = true

	wire := NewMaterial(Basic, WireColor)
	wire.Wireframe = true
	wire.Transparent = true
	wire.Opacity = 0.3
	g.Wireframe = NewMesh("wireframe", geom.Share(), wire)
	g.Wireframe.Scale = mgl32.Vec3{1.002, 1.002, 1.002}

	line := NewMaterial(Basic, EdgeColor)
	line.Transparent = true
	line.Opacity = 0.7
	g.Edges = NewLines("edges", EdgesGeometry(m, threshold), line)

	g.Sphere.Add(g.Solid, g.Wireframe, g.Edges)
}

func (g *Graph) composeSupports() {
	geom := CylinderGeometry(0.05, 0.08, 4, 8)
	for i := 0; i < 3; i++ {
		a := float64(i) * 2 * math.Pi / 3
		mat := NewMaterial(Phong, SupportColor)
		leg := NewMesh(fmt.Sprintf("support-%d", i), geom, mat)
		if i > 0 {
			leg.Geometry = geom.Share()
		}
		leg.Position = mgl32.Vec3{float32(math.Cos(a) * 2.5), -4, float32(math.Sin(a) * 2.5)}
		leg.Rotation = mgl32.Vec3{float32(math.Cos(a) * 0.1), 0, float32(math.Sin(a) * 0.1)}
		leg.CastShadow = true
		g.Supports = append(g.Supports, leg)
		g.Root.Add(leg)
	}
}

func (g *Graph) composeGround() {
	mat := NewMaterial(Lambert, GroundColor)
	mat.Transparent = true
	mat.Opacity = 0.3
	mat.DoubleSided = true
	g.Ground = NewMesh("ground", CircleGeometry(15, 32), mat)
	g.Ground.Position = mgl32.Vec3{0, -6, 0}
	g.Ground.Rotation = mgl32.Vec3{-math.Pi / 2, 0, 0}
	g.Ground.ReceiveShadow = true
	g.Root.Add(g.Ground)
}

func (g *Graph) composeLights() {
	g.Ambient = NewLight("ambient", KindAmbientLight, &Light{Color: AmbientColor, Intensity: 0.4})

	g.Sun = NewLight("sun", KindDirectionalLight, &Light{
		Color:         StarColor,
		Intensity:     0.8,
		CastShadow:    true,
		ShadowMapSize: 2048,
	})
	g.Sun.Position = mgl32.Vec3{5, 10, 5}

	g.Accent = NewLight("accent", KindPointLight, &Light{Color: AccentColor, Intensity: 0.3})
	g.Accent.Position = mgl32.Vec3{-5, 3, -5}

	g.Root.Add(g.Ambient, g.Sun, g.Accent)
}

func (g *Graph) composeStars(opts Options) {
	rng := rand.New(rand.NewPCG(opts.StarSeed, opts.StarSeed^0x9e3779b97f4a7c15))
	points := make([]mgl32.Vec3, opts.StarCount)
	for i := range points {
		for k := 0; k < 3; k++ {
			points[i][k] = (rng.Float32() - 0.5) * opts.StarSpread
		}
	}
	mat := NewMaterial(Basic, StarColor)
	mat.Transparent = true
	mat.Opacity = 0.8
	mat.Size = 2
	g.Stars = NewPoints("stars", PointsGeometry(points), mat)
	g.Root.Add(g.Stars)
}

// Dispose releases every geometry and material in the graph and detaches
// the top-level nodes. It is safe to call more than once.
func (g *Graph) Dispose() {
	if g == nil || g.disposed {
		return
	}
	g.disposed = true
	g.Root.Walk(func(n *Node) bool {
		if n.Geometry != nil {
			n.Geometry.Dispose()
		}
		if n.Material != nil {
			n.Material.Dispose()
		}
		return true
	})
	g.Root.RemoveAll(func(*Node) bool { return true })
}

// Disposed reports whether Dispose was called.
func (g *Graph) Disposed() bool {
	return g.disposed
}
