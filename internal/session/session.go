// Package session drives the geodesic sphere: it owns the scene, the light
// field and the interaction state, and advances them once per frame.
package session

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spaceship-earth/internal/animation"
	"github.com/Faultbox/spaceship-earth/internal/engine/camera"
	"github.com/Faultbox/spaceship-earth/internal/engine/frame"
	"github.com/Faultbox/spaceship-earth/internal/engine/input"
	"github.com/Faultbox/spaceship-earth/internal/geodesic"
	"github.com/Faultbox/spaceship-earth/internal/interaction"
	"github.com/Faultbox/spaceship-earth/internal/lightfield"
	"github.com/Faultbox/spaceship-earth/internal/logger"
	"github.com/Faultbox/spaceship-earth/internal/scene"
)

// Camera parameters.
const (
	FieldOfView = 75
	NearPlane   = 0.1
	FarPlane    = 1000
)

// StarDrift is the star field yaw added per frame, in radians.
const StarDrift = 0.0005

var (
	ErrNoSurface   = errors.New("session: no render surface")
	ErrNoRenderer  = errors.New("session: no renderer")
	ErrNoScheduler = errors.New("session: no frame scheduler")
	ErrNoEvents    = errors.New("session: no event source")
	ErrRunning     = errors.New("session: already running")
	ErrClosed      = errors.New("session: closed")
)

// Renderer draws a scene graph. It is the provided rendering backend.
type Renderer interface {
	Render(g *scene.Graph, cam *camera.Perspective) error
	SetSize(width, height int)
	Close()
}

// Surface is the drawable the renderer presents to. Close must tolerate
// being called after the host already released it.
type Surface interface {
	Size() (width, height int)
	Close()
}

// Scheduler runs callbacks on the next display frame.
type Scheduler interface {
	Request(fn frame.Callback) frame.Handle
	Cancel(h frame.Handle) bool
}

// EventSource delivers boundary events.
type EventSource interface {
	Subscribe(typ input.EventType, fn input.Handler) *input.Subscription
}

// State is the lifecycle state of a session.
type State int

const (
	Stopped State = iota
	Running
	// Closed is terminal: everything the session owned was released.
	Closed
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configures a session. Renderer, Surface, Scheduler and Events
// are required.
type Options struct {
	Renderer  Renderer
	Surface   Surface
	Scheduler Scheduler
	Events    EventSource

	// Level and Radius of the geodesic mesh; zero means the default.
	Level  int
	Radius float64

	Scene       scene.Options
	Interaction interaction.Config
	Params      Params

	Logger *zap.Logger
}

// DefaultOptions returns options with the reference geometry and params.
// The collaborators still have to be set.
func DefaultOptions() Options {
	return Options{
		Level:       geodesic.DefaultLevel,
		Radius:      geodesic.DefaultRadius,
		Scene:       scene.DefaultOptions(),
		Interaction: interaction.DefaultConfig(),
		Params:      DefaultParams(),
	}
}

// Stats is the read-only summary shown by the info panel.
type Stats struct {
	Triangles int
	Vertices  int
	Lights    int
	Frames    uint64
}

// Session owns one running visualization. All methods must be called from
// the frame thread.
type Session struct {
	log *zap.Logger

	renderer  Renderer
	surface   Surface
	scheduler Scheduler

	mesh   *geodesic.Mesh
	graph  *scene.Graph
	field  *lightfield.Field
	ctrl   *interaction.Controller
	camera *camera.Perspective

	params  Params
	samples []animation.Sample

	state   State
	pending frame.Handle
	subs    []*input.Subscription
	width   int
	height  int

	yaw    float64
	epoch  time.Time
	frames uint64
	err    error
}

// New builds the scene and the light field and registers input
// listeners. On error nothing is left allocated or subscribed.
func New(opts Options) (*Session, error) {
	switch {
	case opts.Surface == nil:
		return nil, ErrNoSurface
	case opts.Renderer == nil:
		return nil, ErrNoRenderer
	case opts.Scheduler == nil:
		return nil, ErrNoScheduler
	case opts.Events == nil:
		return nil, ErrNoEvents
	}

	def := DefaultOptions()
	if opts.Level == 0 {
		opts.Level = def.Level
	}
	if opts.Radius == 0 {
		opts.Radius = def.Radius
	}
	if opts.Scene == (scene.Options{}) {
		opts.Scene = def.Scene
	}
	if opts.Logger == nil {
		opts.Logger = logger.Named("session")
	}

	mesh, err := geodesic.Generate(opts.Level, opts.Radius)
	if err != nil {
		return nil, fmt.Errorf("generate mesh: %w", err)
	}
	graph, err := scene.Compose(mesh, opts.Scene)
	if err != nil {
		return nil, err
	}
	params := opts.Params.Clamped()
	field, err := lightfield.Build(mesh, params.LightColor, graph.Sphere)
	if err != nil {
		graph.Dispose()
		return nil, fmt.Errorf("build light field: %w", err)
	}

	ctrl := interaction.New(opts.Interaction)
	w, h := opts.Surface.Size()
	s := &Session{
		log:       opts.Logger,
		renderer:  opts.Renderer,
		surface:   opts.Surface,
		scheduler: opts.Scheduler,
		mesh:      mesh,
		graph:     graph,
		field:     field,
		ctrl:      ctrl,
		camera:    camera.NewPerspective(FieldOfView, 1, NearPlane, FarPlane, float32(ctrl.Distance())),
		params:    params,
		samples:   make([]animation.Sample, field.Len()),
	}
	s.Resize(w, h)

	s.subs = []*input.Subscription{
		opts.Events.Subscribe(input.EventMouseMove, s.onPointerMove),
		opts.Events.Subscribe(input.EventMouseWheel, s.onWheel),
		opts.Events.Subscribe(input.EventWindowResize, s.onResize),
	}

	s.log.Info("session created",
		zap.Int("level", mesh.Level),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("lights", field.Len()),
	)
	return s, nil
}

// Start schedules the first frame.
func (s *Session) Start() error {
	switch s.state {
	case Running:
		return ErrRunning
	case Closed:
		return ErrClosed
	}
	s.state = Running
	s.pending = s.scheduler.Request(s.tick)
	s.log.Debug("session started")
	return nil
}

// Stop cancels the pending frame and releases everything the session
// owns. Calling it again does nothing.
func (s *Session) Stop() {
	if s.state == Closed {
		return
	}
	if s.pending != 0 {
		s.scheduler.Cancel(s.pending)
		s.pending = 0
	}
	s.state = Closed

	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil

	s.field.Dispose()
	s.graph.Dispose()
	s.renderer.Close()
	s.surface.Close()

	s.log.Info("session stopped", zap.Uint64("frames", s.frames))
}

// Update replaces the configuration snapshot. Values outside their domain
// are clamped. The next frame uses the new snapshot.
func (s *Session) Update(p Params) {
	if s.state == Closed {
		return
	}
	s.params = p.Clamped()
}

// Resize updates the camera aspect and the renderer viewport.
func (s *Session) Resize(width, height int) {
	if s.state == Closed || width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.camera.SetViewport(width, height)
	s.renderer.SetSize(width, height)
}

func (s *Session) tick(now time.Time) {
	s.pending = 0
	if s.state != Running {
		return
	}
	if s.frames == 0 {
		s.epoch = now
	}
	p := s.params

	if p.Rotating {
		s.yaw += p.RotationSpeed
	}
	s.ctrl.Advance(0)
	o := s.ctrl.Orientation()
	s.graph.Sphere.Rotation[0] = float32(o.Pitch)
	s.graph.Sphere.Rotation[1] = float32(s.yaw)
	s.graph.Sphere.Rotation[2] = float32(o.Yaw)
	s.camera.SetDistance(float32(s.ctrl.Distance()))

	animation.ComputeInto(s.samples, p.Animation(), now.Sub(s.epoch).Seconds())
	s.field.Apply(s.samples)

	s.graph.Stars.Rotation[1] += StarDrift

	if err := s.renderer.Render(s.graph, s.camera); err != nil {
		s.err = fmt.Errorf("render frame %d: %w", s.frames, err)
		s.log.Error("render failed, stopping", zap.Error(err))
		s.Stop()
		return
	}
	s.frames++
	if s.state == Running {
		s.pending = s.scheduler.Request(s.tick)
	}
}

func (s *Session) onPointerMove(e input.Event) bool {
	s.ctrl.PointerMovePixels(float64(e.MouseX), float64(e.MouseY), float64(s.width), float64(s.height))
	return false
}

func (s *Session) onWheel(e input.Event) bool {
	return s.ctrl.Scroll(e.WheelY)
}

func (s *Session) onResize(e input.Event) bool {
	s.Resize(e.Width, e.Height)
	return false
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Err returns the error that stopped the session, if any.
func (s *Session) Err() error {
	return s.err
}

// Params returns the current configuration snapshot.
func (s *Session) Params() Params {
	return s.params
}

// Stats returns the counts shown by the info panel.
func (s *Session) Stats() Stats {
	return Stats{
		Triangles: s.mesh.TriangleCount(),
		Vertices:  s.mesh.VertexCount(),
		Lights:    s.field.Len(),
		Frames:    s.frames,
	}
}

// Graph returns the scene graph.
func (s *Session) Graph() *scene.Graph { return s.graph }

// Field returns the light field.
func (s *Session) Field() *lightfield.Field { return s.field }

// Camera returns the camera.
func (s *Session) Camera() *camera.Perspective { return s.camera }

// Controller returns the interaction controller.
func (s *Session) Controller() *interaction.Controller { return s.ctrl }

// ResetView recenters the sphere and restores the camera distance.
func (s *Session) ResetView() {
	s.ctrl.Reset()
}
