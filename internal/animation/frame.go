package animation

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Params is the configuration snapshot one frame is computed from.
type Params struct {
	Mode          Mode
	BaseIntensity float64
	BaseColor     colorful.Color
	Enabled       bool
}

// Sample is the computed state of one light.
type Sample struct {
	Intensity float64
	Color     colorful.Color
}

// Evaluate returns the sample for the light at index at time t (seconds).
func Evaluate(p Params, index int, t float64) Sample {
	i := float64(index)
	s := Sample{Intensity: p.BaseIntensity, Color: p.BaseColor}

	switch p.Mode {
	case Static:
	case Wave:
		s.Intensity = (math.Sin(2*t+0.1*i) + 1) / 2 * p.BaseIntensity
	case Pulse:
		// Same phase for every light.
		s.Intensity = (math.Sin(3*t) + 1) / 2 * p.BaseIntensity
	case Rainbow:
		s.Color = colorful.Hsl(Hue(index, t), 1, 0.5)
	}

	if !p.Enabled {
		s.Intensity = 0
	}
	return s
}

// Hue returns the rainbow hue in degrees, in [0, 360).
func Hue(index int, t float64) float64 {
	h := math.Mod(50*t+10*float64(index), 360)
	if h < 0 {
		h += 360
	}
	return h
}

// ComputeFrame returns one sample per light for count lights.
func ComputeFrame(p Params, count int, t float64) []Sample {
	if count <= 0 {
		return nil
	}
	dst := make([]Sample, count)
	ComputeInto(dst, p, t)
	return dst
}

// ComputeInto fills dst, where dst[i] is the sample of light i.
func ComputeInto(dst []Sample, p Params, t float64) {
	for i := range dst {
		dst[i] = Evaluate(p, i, t)
	}
}
