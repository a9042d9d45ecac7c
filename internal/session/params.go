package session

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/spaceship-earth/internal/animation"
)

// Parameter domains.
const (
	MinRotationSpeed     = 0.001
	MaxRotationSpeed     = 0.02
	DefaultRotationSpeed = 0.005

	MaxLightIntensity     = 2.0
	DefaultLightIntensity = 0.5

	DefaultLightColor = "#00aaff"
)

// Params is the runtime configuration produced by the control surface.
type Params struct {
	Rotating bool
	// RotationSpeed is the yaw added per frame, in radians.
	RotationSpeed float64

	LightsEnabled  bool
	LightIntensity float64
	LightColor     colorful.Color
	Mode           animation.Mode
}

// DefaultParams returns the startup configuration.
func DefaultParams() Params {
	c, _ := colorful.Hex(DefaultLightColor)
	return Params{
		Rotating:       true,
		RotationSpeed:  DefaultRotationSpeed,
		LightsEnabled:  true,
		LightIntensity: DefaultLightIntensity,
		LightColor:     c,
		Mode:           animation.Static,
	}
}

// Clamped returns p with every value forced into its domain.
func (p Params) Clamped() Params {
	p.RotationSpeed = clamp(p.RotationSpeed, MinRotationSpeed, MaxRotationSpeed)
	p.LightIntensity = clamp(p.LightIntensity, 0, MaxLightIntensity)
	p.LightColor = p.LightColor.Clamped()
	if !p.Mode.Valid() {
		p.Mode = animation.Static
	}
	return p
}

// Animation returns the animation input derived from p.
func (p Params) Animation() animation.Params {
	return animation.Params{
		Mode:          p.Mode,
		BaseIntensity: p.LightIntensity,
		BaseColor:     p.LightColor,
		Enabled:       p.LightsEnabled,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
