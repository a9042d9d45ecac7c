// Package controls maps keyboard keys to parameter changes and host
// actions, and formats the info line shown in the window title.
package controls

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/spaceship-earth/internal/animation"
	"github.com/Faultbox/spaceship-earth/internal/session"
)

// Title is the window title prefix.
const Title = "Spaceship Earth"

// Action is a host-level command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionSave
	ActionResetView
	ActionFullscreen
	ActionScreenshot
)

// Step sizes of the parameter keys.
const (
	SpeedStep     = 0.001
	IntensityStep = 0.1
)

// PresetColors are cycled by the color key, starting after the default.
var PresetColors = []string{"#00aaff", "#ff6600", "#00ff88", "#ff00aa", "#ffd700", "#ffffff"}

// Controls maps key names to parameter changes and host actions.
type Controls struct {
	presets []colorful.Color
	preset  int
}

// NewControls returns the default bindings.
func NewControls() *Controls {
	c := &Controls{}
	for _, hex := range PresetColors {
		col, err := colorful.Hex(hex)
		if err != nil {
			continue
		}
		c.presets = append(c.presets, col)
	}
	return c
}

// Apply returns p changed by key, the action the key triggers and whether
// the key is bound at all. Returned params are clamped.
func (c *Controls) Apply(key string, p session.Params) (session.Params, Action, bool) {
	switch key {
	case "Space":
		p.Rotating = !p.Rotating
	case "L":
		p.LightsEnabled = !p.LightsEnabled
	case "1", "2", "3", "4":
		p.Mode = animation.Modes()[key[0]-'1']
	case "M":
		p.Mode = p.Mode.Next()
	case "=", "+", "Keypad +":
		p.RotationSpeed += SpeedStep
	case "-", "Keypad -":
		p.RotationSpeed -= SpeedStep
	case "]":
		p.LightIntensity += IntensityStep
	case "[":
		p.LightIntensity -= IntensityStep
	case "C":
		if len(c.presets) > 0 {
			c.preset = (c.preset + 1) % len(c.presets)
			p.LightColor = c.presets[c.preset]
		}
	case "R":
		return p, ActionResetView, true
	case "F":
		return p, ActionFullscreen, true
	case "S":
		return p, ActionSave, true
	case "P":
		return p, ActionScreenshot, true
	case "Escape":
		return p, ActionQuit, true
	default:
		return p, ActionNone, false
	}
	return p.Clamped(), ActionNone, true
}

var printer = message.NewPrinter(language.English)

// FormatTitle renders the info panel line shown in the window title.
func FormatTitle(s session.Stats) string {
	return printer.Sprintf("%s · %d panels · %d points · %d lights", Title, s.Triangles, s.Vertices, s.Lights)
}
