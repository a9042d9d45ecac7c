package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/spaceship-earth/internal/animation"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	s := cfg.Sphere
	if !s.Rotating || !s.LightsEnabled {
		t.Error("expected rotation and lights enabled by default")
	}
	if s.RotationSpeed != 0.005 {
		t.Errorf("expected rotation speed 0.005, got %v", s.RotationSpeed)
	}
	if s.LightIntensity != 0.5 {
		t.Errorf("expected light intensity 0.5, got %v", s.LightIntensity)
	}
	if s.LightColor != "#00aaff" {
		t.Errorf("expected light color #00aaff, got %s", s.LightColor)
	}
	if s.AnimationMode != animation.Static {
		t.Errorf("expected static mode, got %v", s.AnimationMode)
	}
	if s.SubdivisionLevel != 5 {
		t.Errorf("expected subdivision level 5, got %d", s.SubdivisionLevel)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "spaceship.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

sphere:
  rotating: false
  rotation_speed: 0.01
  lights_enabled: true
  light_intensity: 1.5
  light_color: "#ff8800"
  animation_mode: rainbow
  subdivision_level: 4
  star_seed: 7

logging:
  level: "debug"
  log_file: "spaceship.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Sphere.Rotating {
		t.Error("expected rotating to be false")
	}
	if cfg.Sphere.RotationSpeed != 0.01 {
		t.Errorf("expected rotation speed 0.01, got %v", cfg.Sphere.RotationSpeed)
	}
	if cfg.Sphere.AnimationMode != animation.Rainbow {
		t.Errorf("expected rainbow mode, got %v", cfg.Sphere.AnimationMode)
	}
	if cfg.Sphere.SubdivisionLevel != 4 || cfg.Sphere.StarSeed != 7 {
		t.Errorf("expected level 4 seed 7, got %d %d", cfg.Sphere.SubdivisionLevel, cfg.Sphere.StarSeed)
	}
	if cfg.Logging.LogFile != "spaceship.log" {
		t.Errorf("expected log file 'spaceship.log', got %s", cfg.Logging.LogFile)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params() error: %v", err)
	}
	if p.LightColor.Hex() != "#ff8800" || p.LightIntensity != 1.5 || p.Mode != animation.Rainbow {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	tests := []string{
		"graphics:\n  width: not a number\n  invalid syntax here\n",
		"sphere:\n  animation_mode: strobe\n",
	}
	for _, content := range tests {
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if err := loadFromFile(Default(), configPath); err == nil {
			t.Errorf("expected error loading %q, got nil", content)
		}
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"slow rotation", func(c *Config) { c.Sphere.RotationSpeed = 0 }},
		{"fast rotation", func(c *Config) { c.Sphere.RotationSpeed = 0.5 }},
		{"negative intensity", func(c *Config) { c.Sphere.LightIntensity = -1 }},
		{"bright intensity", func(c *Config) { c.Sphere.LightIntensity = 2.5 }},
		{"bad color", func(c *Config) { c.Sphere.LightColor = "blue" }},
		{"bad mode", func(c *Config) { c.Sphere.AnimationMode = animation.Mode(9) }},
		{"level too low", func(c *Config) { c.Sphere.SubdivisionLevel = 1 }},
		{"level too high", func(c *Config) { c.Sphere.SubdivisionLevel = 8 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSetParamsRoundTrip(t *testing.T) {
	cfg := Default()
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("Params() error: %v", err)
	}
	p.Mode = animation.Wave
	p.LightIntensity = 2
	p.Rotating = false
	cfg.SetParams(p)

	if cfg.Sphere.AnimationMode != animation.Wave || cfg.Sphere.LightIntensity != 2 || cfg.Sphere.Rotating {
		t.Errorf("SetParams not applied: %+v", cfg.Sphere)
	}
	if cfg.Sphere.LightColor != "#00aaff" {
		t.Errorf("expected color #00aaff, got %s", cfg.Sphere.LightColor)
	}
}

func TestApplyLiveKeepsRestartSettings(t *testing.T) {
	cfg := Default()
	next := Default()
	next.Sphere.LightIntensity = 1.5
	next.Sphere.SubdivisionLevel = 3
	next.Sphere.StarSeed = 42

	p, restart, err := cfg.ApplyLive(next)
	if err != nil {
		t.Fatalf("ApplyLive() error: %v", err)
	}
	if !restart {
		t.Error("expected restart for a new level and seed")
	}
	if p.LightIntensity != 1.5 || cfg.Sphere.LightIntensity != 1.5 {
		t.Errorf("live intensity not applied: params %v, config %v", p.LightIntensity, cfg.Sphere.LightIntensity)
	}
	if cfg.Sphere.SubdivisionLevel != Default().Sphere.SubdivisionLevel || cfg.Sphere.StarSeed != 1 {
		t.Errorf("restart settings changed: %+v", cfg.Sphere)
	}

	// The same file again still asks for a restart.
	if _, restart, _ = cfg.ApplyLive(next); !restart {
		t.Error("expected restart on repeated reload")
	}

	next = Default()
	next.Sphere.Rotating = false
	if _, restart, _ = cfg.ApplyLive(next); restart {
		t.Error("unexpected restart for live-only change")
	}

	next.Sphere.Rotating = true
	next.Sphere.LightColor = "bogus"
	if _, _, err = cfg.ApplyLive(next); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	if cfg.Sphere.Rotating {
		t.Error("rejected reload must not be applied")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "spaceship.yaml")
	cfg := Default()
	cfg.Sphere.AnimationMode = animation.Pulse
	cfg.Sphere.StarSeed = 99

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	if cfg.Source() != path {
		t.Errorf("Source() = %q, want %q", cfg.Source(), path)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if loaded.Sphere.AnimationMode != animation.Pulse || loaded.Sphere.StarSeed != 99 {
		t.Errorf("saved settings not restored: %+v", loaded.Sphere)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "spaceship.yaml"), []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find spaceship.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "level flag",
			setup: func() { *flagLevel = 3 },
			verify: func(cfg *Config) {
				if cfg.Sphere.SubdivisionLevel != 3 {
					t.Errorf("expected level 3, got %d", cfg.Sphere.SubdivisionLevel)
				}
			},
			teardown: func() { *flagLevel = 0 },
		},
		{
			name: "mode flag",
			setup: func() {
				if err := flagMode.Set("wave"); err != nil {
					t.Fatal(err)
				}
			},
			verify: func(cfg *Config) {
				if cfg.Sphere.AnimationMode != animation.Wave {
					t.Errorf("expected wave mode, got %v", cfg.Sphere.AnimationMode)
				}
			},
			teardown: func() { *flagMode = modeFlag{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "spaceship.yaml")
	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Source() != configPath {
		t.Errorf("expected source %s, got %s", configPath, cfg.Source())
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spaceship.yaml")
	if err := Default().SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer w.Close()

	cfg := Default()
	cfg.Sphere.AnimationMode = animation.Rainbow
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	select {
	case got := <-w.Updates():
		if got.Sphere.AnimationMode != animation.Rainbow {
			t.Errorf("reloaded mode = %v, want rainbow", got.Sphere.AnimationMode)
		}
	case err := <-w.Errors():
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}

	if err := os.WriteFile(path, []byte("sphere:\n  light_intensity: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	select {
	case err := <-w.Errors():
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("expected ErrInvalid, got %v", err)
		}
	case <-w.Updates():
		t.Error("invalid config delivered as update")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload error within 5s")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}
