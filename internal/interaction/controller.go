// Package interaction turns pointer and scroll input into a smoothed
// sphere orientation and a clamped camera distance.
package interaction

const (
	// MaxTilt is the largest target pitch or yaw, in radians.
	MaxTilt = 0.3

	// Damping is the share of the remaining delta closed per frame.
	Damping = 0.05

	// ZoomStep is the relative distance change per scroll tick.
	ZoomStep = 0.05

	MinDistance     = 4.0
	MaxDistance     = 20.0
	DefaultDistance = 8.0
)

// Orientation is a pitch/yaw pair in radians.
type Orientation struct {
	Pitch float64
	Yaw   float64
}

// Config holds controller tuning.
type Config struct {
	MaxTilt     float64
	Damping     float64
	ZoomStep    float64
	MinDistance float64
	MaxDistance float64
	Distance    float64
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		MaxTilt:     MaxTilt,
		Damping:     Damping,
		ZoomStep:    ZoomStep,
		MinDistance: MinDistance,
		MaxDistance: MaxDistance,
		Distance:    DefaultDistance,
	}
}

// Controller owns the interaction state. It is not safe for concurrent use;
// all calls are expected on the frame thread.
type Controller struct {
	cfg      Config
	target   Orientation
	current  Orientation
	distance float64
}

// New creates a controller. Zero fields in cfg take their defaults.
func New(cfg Config) *Controller {
	def := DefaultConfig()
	if cfg.MaxTilt <= 0 {
		cfg.MaxTilt = def.MaxTilt
	}
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		cfg.Damping = def.Damping
	}
	if cfg.ZoomStep <= 0 || cfg.ZoomStep >= 1 {
		cfg.ZoomStep = def.ZoomStep
	}
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = def.MinDistance
	}
	if cfg.MaxDistance <= 0 {
		cfg.MaxDistance = def.MaxDistance
	}
	if cfg.MinDistance > cfg.MaxDistance {
		cfg.MinDistance, cfg.MaxDistance = cfg.MaxDistance, cfg.MinDistance
	}
	if cfg.Distance <= 0 {
		cfg.Distance = def.Distance
	}

	c := &Controller{cfg: cfg}
	c.distance = c.clampDistance(cfg.Distance)
	return c
}

// PointerMove sets the target orientation from a pointer position
// normalized to [-1, 1] on both axes, y pointing up.
func (c *Controller) PointerMove(x, y float64) {
	c.target = Orientation{
		Pitch: clamp(y, -1, 1) * c.cfg.MaxTilt,
		Yaw:   clamp(x, -1, 1) * c.cfg.MaxTilt,
	}
}

// PointerMovePixels is PointerMove for a pointer at (px, py) in a
// width x height viewport with y pointing down.
func (c *Controller) PointerMovePixels(px, py, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.PointerMove(px/width*2-1, -(py/height*2 - 1))
}

// Scroll zooms out for deltaY > 0 and in for deltaY < 0. It reports whether
// the event was consumed, in which case the host must not scroll anything else.
func (c *Controller) Scroll(deltaY float64) bool {
	switch {
	case deltaY > 0:
		c.distance *= 1 + c.cfg.ZoomStep
	case deltaY < 0:
		c.distance *= 1 - c.cfg.ZoomStep
	default:
		return false
	}
	c.distance = c.clampDistance(c.distance)
	return true
}

// Advance moves the current orientation toward the target by a fixed share
// per call, whatever the frame time.
func (c *Controller) Advance(float64) {
	c.current.Pitch += (c.target.Pitch - c.current.Pitch) * c.cfg.Damping
	c.current.Yaw += (c.target.Yaw - c.current.Yaw) * c.cfg.Damping
}

// Orientation returns the smoothed orientation.
func (c *Controller) Orientation() Orientation {
	return c.current
}

// Target returns the orientation the controller is easing toward.
func (c *Controller) Target() Orientation {
	return c.target
}

// Distance returns the camera distance from the sphere center.
func (c *Controller) Distance() float64 {
	return c.distance
}

// Reset recenters the orientation and restores the initial distance.
func (c *Controller) Reset() {
	c.target = Orientation{}
	c.current = Orientation{}
	c.distance = c.clampDistance(c.cfg.Distance)
}

func (c *Controller) clampDistance(d float64) float64 {
	return clamp(d, c.cfg.MinDistance, c.cfg.MaxDistance)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
