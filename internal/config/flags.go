package config

import (
	"flag"

	"github.com/Faultbox/spaceship-earth/internal/animation"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and FPS reporting")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagLevel      = flag.Int("level", 0, "Geodesic subdivision level (2-7)")
	flagMode       = new(modeFlag)
)

func init() {
	flag.Var(flagMode, "mode", "Light animation mode: static, wave, pulse or rainbow")
}

// modeFlag remembers whether -mode was given.
type modeFlag struct {
	mode animation.Mode
	set  bool
}

func (f *modeFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return f.mode.String()
}

func (f *modeFlag) Set(s string) error {
	if err := f.mode.Set(s); err != nil {
		return err
	}
	f.set = true
	return nil
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Debug reports whether --debug was given.
func Debug() bool {
	return *flagDebug
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagLevel > 0 {
		cfg.Sphere.SubdivisionLevel = *flagLevel
	}
	if flagMode.set {
		cfg.Sphere.AnimationMode = flagMode.mode
	}
}
