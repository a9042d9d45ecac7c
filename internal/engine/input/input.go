// Package input routes boundary events to the components listening for them.
package input

// EventType identifies a boundary event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

var eventNames = [...]string{
	EventNone:         "none",
	EventQuit:         "quit",
	EventWindowResize: "resize",
	EventKeyDown:      "keydown",
	EventKeyUp:        "keyup",
	EventMouseMove:    "mousemove",
	EventMouseDown:    "mousedown",
	EventMouseUp:      "mouseup",
	EventMouseWheel:   "wheel",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a processed input event.
type Event struct {
	Type EventType

	// Key is the key name for keyboard events, for example "Space" or "L".
	Key string

	Width  int
	Height int

	MouseX int
	MouseY int
	Button uint8

	// WheelY is positive when the wheel is rolled toward the user, the
	// direction that scrolls a page down.
	WheelY float64
}

// Handler reacts to an event. It returns true if it consumed the event,
// which tells the source to skip any default handling.
type Handler func(Event) bool

// Subscription is a registered handler.
type Subscription struct {
	router *Router
	typ    EventType
	fn     Handler
	active bool
}

// Unsubscribe removes the handler. Later calls do nothing.
func (s *Subscription) Unsubscribe() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	s.router.remove(s)
}

// Router dispatches events to handlers by type, in subscription order.
// It is not safe for concurrent use.
type Router struct {
	handlers map[EventType][]*Subscription
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[EventType][]*Subscription)}
}

// Subscribe registers fn for events of type typ.
func (r *Router) Subscribe(typ EventType, fn Handler) *Subscription {
	s := &Subscription{router: r, typ: typ, fn: fn, active: true}
	r.handlers[typ] = append(r.handlers[typ], s)
	return s
}

// Dispatch delivers e to every handler of its type and reports whether any
// of them consumed it.
func (r *Router) Dispatch(e Event) bool {
	subs := r.handlers[e.Type]
	if len(subs) == 0 {
		return false
	}
	// Handlers may unsubscribe while we iterate.
	snapshot := make([]*Subscription, len(subs))
	copy(snapshot, subs)

	consumed := false
	for _, s := range snapshot {
		if s.active && s.fn(e) {
			consumed = true
		}
	}
	return consumed
}

// Count returns the number of handlers registered for typ.
func (r *Router) Count(typ EventType) int {
	return len(r.handlers[typ])
}

// Total returns the number of registered handlers.
func (r *Router) Total() int {
	n := 0
	for _, subs := range r.handlers {
		n += len(subs)
	}
	return n
}

func (r *Router) remove(s *Subscription) {
	subs := r.handlers[s.typ]
	for i, cur := range subs {
		if cur == s {
			r.handlers[s.typ] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(r.handlers[s.typ]) == 0 {
		delete(r.handlers, s.typ)
	}
}
