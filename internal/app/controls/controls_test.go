package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spaceship-earth/internal/animation"
	"github.com/Faultbox/spaceship-earth/internal/session"
)

func TestControlsToggles(t *testing.T) {
	c := NewControls()
	p := session.DefaultParams()

	p, action, ok := c.Apply("Space", p)
	require.True(t, ok)
	assert.Equal(t, ActionNone, action)
	assert.False(t, p.Rotating)

	p, _, _ = c.Apply("L", p)
	assert.False(t, p.LightsEnabled)
	p, _, _ = c.Apply("L", p)
	assert.True(t, p.LightsEnabled)
}

func TestControlsModes(t *testing.T) {
	c := NewControls()
	tests := []struct {
		key  string
		want animation.Mode
	}{
		{"1", animation.Static},
		{"2", animation.Wave},
		{"3", animation.Pulse},
		{"4", animation.Rainbow},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p, _, ok := c.Apply(tt.key, session.DefaultParams())
			require.True(t, ok)
			assert.Equal(t, tt.want, p.Mode)
		})
	}

	p := session.DefaultParams()
	p.Mode = animation.Rainbow
	p, _, _ = c.Apply("M", p)
	assert.Equal(t, animation.Static, p.Mode)
}

func TestControlsStepsClamp(t *testing.T) {
	c := NewControls()
	p := session.DefaultParams()

	p, _, _ = c.Apply("=", p)
	assert.InDelta(t, session.DefaultRotationSpeed+SpeedStep, p.RotationSpeed, 1e-12)

	for i := 0; i < 50; i++ {
		p, _, _ = c.Apply("-", p)
	}
	assert.Equal(t, session.MinRotationSpeed, p.RotationSpeed)

	for i := 0; i < 50; i++ {
		p, _, _ = c.Apply("]", p)
	}
	assert.Equal(t, session.MaxLightIntensity, p.LightIntensity)

	for i := 0; i < 50; i++ {
		p, _, _ = c.Apply("[", p)
	}
	assert.Equal(t, 0.0, p.LightIntensity)
}

func TestControlsColorPresets(t *testing.T) {
	c := NewControls()
	p := session.DefaultParams()

	p, _, _ = c.Apply("C", p)
	assert.Equal(t, PresetColors[1], p.LightColor.Hex())

	for range PresetColors[1:] {
		p, _, _ = c.Apply("C", p)
	}
	assert.Equal(t, PresetColors[1], p.LightColor.Hex(), "presets wrap around")
}

func TestControlsActions(t *testing.T) {
	c := NewControls()
	tests := []struct {
		key  string
		want Action
	}{
		{"Escape", ActionQuit},
		{"S", ActionSave},
		{"R", ActionResetView},
		{"F", ActionFullscreen},
		{"P", ActionScreenshot},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			before := session.DefaultParams()
			p, action, ok := c.Apply(tt.key, before)
			require.True(t, ok)
			assert.Equal(t, tt.want, action)
			assert.Equal(t, before, p)
		})
	}

	_, _, ok := c.Apply("Q", session.DefaultParams())
	assert.False(t, ok, "unbound key")
}

func TestFormatTitle(t *testing.T) {
	got := FormatTitle(session.Stats{Triangles: 11520, Vertices: 3840, Lights: 3840})
	assert.Equal(t, "Spaceship Earth · 11,520 panels · 3,840 points · 3,840 lights", got)
}
