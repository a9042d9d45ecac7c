package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/spaceship-earth/internal/engine/input"
)

// PumpEvents polls pending SDL events and dispatches them to r. Mouse
// coordinates and sizes are in drawable pixels. It returns true once a
// quit was requested.
func (w *Window) PumpEvents(r *input.Router) bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := w.translate(event)
		if !ok {
			continue
		}
		if e.Type == input.EventQuit {
			quit = true
		}
		r.Dispatch(e)
	}
	return quit
}

func (w *Window) translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			width, height := w.Size()
			return input.Event{Type: input.EventWindowResize, Width: width, Height: height}, true
		}

	case *sdl.KeyboardEvent:
		typ := input.EventKeyDown
		if e.Type == sdl.KEYUP {
			typ = input.EventKeyUp
		} else if e.Repeat != 0 {
			return input.Event{}, false
		}
		return input.Event{Type: typ, Key: sdl.GetKeyName(e.Keysym.Sym)}, true

	case *sdl.MouseMotionEvent:
		x, y := w.toPixels(e.X, e.Y)
		return input.Event{Type: input.EventMouseMove, MouseX: x, MouseY: y}, true

	case *sdl.MouseButtonEvent:
		x, y := w.toPixels(e.X, e.Y)
		typ := input.EventMouseDown
		if e.Type == sdl.MOUSEBUTTONUP {
			typ = input.EventMouseUp
		}
		return input.Event{Type: typ, MouseX: x, MouseY: y, Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		dy := float64(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		// SDL reports rolling away from the user as positive.
		return input.Event{Type: input.EventMouseWheel, WheelY: -dy}, true
	}
	return input.Event{}, false
}

// toPixels scales window coordinates to drawable pixels.
func (w *Window) toPixels(x, y int32) (int, int) {
	ww, wh := w.GetSize()
	dw, dh := w.Size()
	if ww <= 0 || wh <= 0 {
		return int(x), int(y)
	}
	return int(x) * dw / ww, int(y) * dh / wh
}
