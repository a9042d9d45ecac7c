// Package config handles visualization settings loading and management.
package config

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/spaceship-earth/internal/animation"
	"github.com/Faultbox/spaceship-earth/internal/geodesic"
	"github.com/Faultbox/spaceship-earth/internal/session"
)

// ErrInvalid is returned when a setting is outside its domain.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Sphere   SphereConfig   `yaml:"sphere"`
	Logging  LoggingConfig  `yaml:"logging"`

	source string
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SphereConfig holds the runtime parameters of the visualization.
type SphereConfig struct {
	Rotating         bool           `yaml:"rotating"`
	RotationSpeed    float64        `yaml:"rotation_speed"`
	LightsEnabled    bool           `yaml:"lights_enabled"`
	LightIntensity   float64        `yaml:"light_intensity"`
	LightColor       string         `yaml:"light_color"`
	AnimationMode    animation.Mode `yaml:"animation_mode"`
	SubdivisionLevel int            `yaml:"subdivision_level"`
	StarSeed         int64          `yaml:"star_seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the reference values.
func Default() *Config {
	p := session.DefaultParams()
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Sphere: SphereConfig{
			Rotating:         p.Rotating,
			RotationSpeed:    p.RotationSpeed,
			LightsEnabled:    p.LightsEnabled,
			LightIntensity:   p.LightIntensity,
			LightColor:       session.DefaultLightColor,
			AnimationMode:    p.Mode,
			SubdivisionLevel: geodesic.DefaultLevel,
			StarSeed:         1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Source returns the file the config was loaded from, if any.
func (c *Config) Source() string {
	return c.source
}

// Validate reports the first setting outside its domain.
func (c *Config) Validate() error {
	g, s := c.Graphics, c.Sphere
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("graphics size %dx%d: %w", g.Width, g.Height, ErrInvalid)
	case s.RotationSpeed < session.MinRotationSpeed || s.RotationSpeed > session.MaxRotationSpeed:
		return fmt.Errorf("sphere.rotation_speed %v not in [%v, %v]: %w",
			s.RotationSpeed, session.MinRotationSpeed, session.MaxRotationSpeed, ErrInvalid)
	case s.LightIntensity < 0 || s.LightIntensity > session.MaxLightIntensity:
		return fmt.Errorf("sphere.light_intensity %v not in [0, %v]: %w",
			s.LightIntensity, session.MaxLightIntensity, ErrInvalid)
	case !s.AnimationMode.Valid():
		return fmt.Errorf("sphere.animation_mode %v: %w", s.AnimationMode, ErrInvalid)
	case s.SubdivisionLevel < geodesic.MinLevel || s.SubdivisionLevel > geodesic.MaxLevel:
		return fmt.Errorf("sphere.subdivision_level %d not in [%d, %d]: %w",
			s.SubdivisionLevel, geodesic.MinLevel, geodesic.MaxLevel, ErrInvalid)
	}
	if _, err := colorful.Hex(s.LightColor); err != nil {
		return fmt.Errorf("sphere.light_color %q: %w", s.LightColor, ErrInvalid)
	}
	return nil
}

// Params converts the sphere settings into session parameters.
func (c *Config) Params() (session.Params, error) {
	color, err := colorful.Hex(c.Sphere.LightColor)
	if err != nil {
		return session.Params{}, fmt.Errorf("sphere.light_color %q: %w", c.Sphere.LightColor, ErrInvalid)
	}
	return session.Params{
		Rotating:       c.Sphere.Rotating,
		RotationSpeed:  c.Sphere.RotationSpeed,
		LightsEnabled:  c.Sphere.LightsEnabled,
		LightIntensity: c.Sphere.LightIntensity,
		LightColor:     color,
		Mode:           c.Sphere.AnimationMode,
	}, nil
}

// SetParams stores p in the sphere settings, for example before Save.
func (c *Config) SetParams(p session.Params) {
	c.Sphere.Rotating = p.Rotating
	c.Sphere.RotationSpeed = p.RotationSpeed
	c.Sphere.LightsEnabled = p.LightsEnabled
	c.Sphere.LightIntensity = p.LightIntensity
	c.Sphere.LightColor = p.LightColor.Hex()
	c.Sphere.AnimationMode = p.Mode
}

// ApplyLive copies the parameters of next that a running session can take
// into c and returns them. Subdivision level and star seed keep their
// current values; restart reports whether next asks for different ones.
func (c *Config) ApplyLive(next *Config) (p session.Params, restart bool, err error) {
	p, err = next.Params()
	if err != nil {
		return session.Params{}, false, err
	}
	restart = next.Sphere.SubdivisionLevel != c.Sphere.SubdivisionLevel ||
		next.Sphere.StarSeed != c.Sphere.StarSeed
	c.SetParams(p)
	return p, restart, nil
}
