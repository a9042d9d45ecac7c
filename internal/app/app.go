// Package app runs the desktop host: window, renderer, session and the
// control surface around them.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spaceship-earth/internal/app/controls"
	"github.com/Faultbox/spaceship-earth/internal/config"
	"github.com/Faultbox/spaceship-earth/internal/engine/frame"
	"github.com/Faultbox/spaceship-earth/internal/engine/input"
	"github.com/Faultbox/spaceship-earth/internal/engine/renderer"
	"github.com/Faultbox/spaceship-earth/internal/engine/screenshot"
	"github.com/Faultbox/spaceship-earth/internal/engine/window"
	"github.com/Faultbox/spaceship-earth/internal/logger"
	"github.com/Faultbox/spaceship-earth/internal/scene"
	"github.com/Faultbox/spaceship-earth/internal/session"
)

// ScreenshotDir is where the screenshot key writes PNG files.
const ScreenshotDir = "screenshots"

// App is the running host.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window    *window.Window
	renderer  *renderer.Renderer
	events    *input.Router
	scheduler *frame.Scheduler
	session   *session.Session
	watcher   *config.Watcher
	controls  *controls.Controls
	shots     *screenshot.Capture
	keys      *input.Subscription

	running    bool
	fullscreen bool
	debug      bool
}

// New opens the window and builds the session from cfg.
func New(cfg *config.Config, debug bool) (*App, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:        cfg,
		log:        logger.Named("app"),
		events:     input.NewRouter(),
		scheduler:  frame.NewScheduler(),
		controls:   controls.NewControls(),
		shots:      screenshot.New(ScreenshotDir, "spaceship-earth"),
		fullscreen: cfg.Graphics.Fullscreen,
		debug:      debug,
	}
	a.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("level", cfg.Sphere.SubdivisionLevel),
		zap.Stringer("mode", params.Mode),
	)

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      controls.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := a.window.Size()
	a.renderer, err = renderer.New(a.window, width, height)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	opts := session.DefaultOptions()
	opts.Renderer = a.renderer
	opts.Surface = a.window
	opts.Scheduler = a.scheduler
	opts.Events = a.events
	opts.Level = cfg.Sphere.SubdivisionLevel
	opts.Scene = scene.DefaultOptions()
	opts.Scene.StarSeed = uint64(cfg.Sphere.StarSeed)
	opts.Params = params
	a.session, err = session.New(opts)
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	a.keys = a.events.Subscribe(input.EventKeyDown, a.onKey)

	if path := cfg.Source(); path != "" {
		a.watcher, err = config.Watch(path)
		if err != nil {
			a.log.Warn("config hot reload disabled", zap.String("path", path), zap.Error(err))
		} else {
			a.log.Info("watching config", zap.String("path", path))
		}
	}

	a.window.SetTitle(controls.FormatTitle(a.session.Stats()))
	a.log.Info("initialized")
	return a, nil
}

// Run drives frames until quit, Escape or a session failure.
func (a *App) Run() error {
	if err := a.session.Start(); err != nil {
		return err
	}
	a.running = true

	frames := 0
	fpsTimer := time.Now()

	a.log.Info("starting render loop")
	for a.running {
		if a.window.PumpEvents(a.events) {
			break
		}
		a.drainConfig()

		a.scheduler.Dispatch(time.Now())
		if a.session.State() == session.Closed {
			if err := a.session.Err(); err != nil {
				return fmt.Errorf("render error: %w", err)
			}
			break
		}

		frames++
		if a.debug && time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frames), zap.Uint64("frames", a.session.Stats().Frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// Close stops the session and releases the window. It is safe to call
// more than once.
func (a *App) Close() {
	a.log.Info("closing")
	if a.keys != nil {
		a.keys.Unsubscribe()
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing config watcher", zap.Error(err))
		}
		a.watcher = nil
	}
	if a.session != nil {
		a.session.Stop()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// drainConfig applies configs reloaded since the last frame.
func (a *App) drainConfig() {
	if a.watcher == nil {
		return
	}
	select {
	case cfg := <-a.watcher.Updates():
		a.applyConfig(cfg)
	case err := <-a.watcher.Errors():
		a.log.Warn("config reload failed", zap.Error(err))
	default:
	}
}

func (a *App) applyConfig(cfg *config.Config) {
	p, restart, err := a.cfg.ApplyLive(cfg)
	if err != nil {
		a.log.Warn("config reload rejected", zap.Error(err))
		return
	}
	if restart {
		a.log.Warn("subdivision_level and star_seed apply on restart")
	}
	a.session.Update(p)
	a.log.Info("config reloaded", zap.Stringer("mode", p.Mode), zap.String("color", p.LightColor.Hex()))
}

func (a *App) onKey(e input.Event) bool {
	p, action, ok := a.controls.Apply(e.Key, a.session.Params())
	if !ok {
		return false
	}
	switch action {
	case controls.ActionNone:
		a.session.Update(p)
		a.log.Debug("params changed",
			zap.String("key", e.Key),
			zap.Bool("rotating", p.Rotating),
			zap.Float64("speed", p.RotationSpeed),
			zap.Bool("lights", p.LightsEnabled),
			zap.Float64("intensity", p.LightIntensity),
			zap.String("color", p.LightColor.Hex()),
			zap.Stringer("mode", p.Mode),
		)
	case controls.ActionQuit:
		a.running = false
	case controls.ActionSave:
		a.save()
	case controls.ActionResetView:
		a.session.ResetView()
	case controls.ActionScreenshot:
		a.renderer.CaptureNext(a.saveScreenshot)
	case controls.ActionFullscreen:
		a.fullscreen = !a.fullscreen
		if err := a.window.SetFullscreen(a.fullscreen); err != nil {
			a.log.Warn("toggling fullscreen", zap.Error(err))
		}
	}
	return true
}

func (a *App) save() {
	a.cfg.SetParams(a.session.Params())
	if err := a.cfg.Save(); err != nil {
		a.log.Error("saving config", zap.Error(err))
		return
	}
	a.log.Info("config saved", zap.String("path", a.cfg.Source()))
}

func (a *App) saveScreenshot(pixels []byte, width, height int) {
	name, err := a.shots.Save(pixels, width, height)
	if err != nil {
		a.log.Error("saving screenshot", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", name))
}
