package interaction

import (
	"math"
	"testing"
)

func TestPointerMoveTarget(t *testing.T) {
	tests := []struct {
		name       string
		x, y       float64
		pitch, yaw float64
	}{
		{"center", 0, 0, 0, 0},
		{"top right", 1, 1, 0.3, 0.3},
		{"bottom left", -1, -1, -0.3, -0.3},
		{"half", 0.5, -0.5, -0.15, 0.15},
		{"clamped", 4, -7, -0.3, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultConfig())
			c.PointerMove(tt.x, tt.y)
			got := c.Target()
			if math.Abs(got.Pitch-tt.pitch) > 1e-12 || math.Abs(got.Yaw-tt.yaw) > 1e-12 {
				t.Errorf("Target() = %+v, want pitch %v yaw %v", got, tt.pitch, tt.yaw)
			}
		})
	}
}

func TestPointerMovePixels(t *testing.T) {
	c := New(DefaultConfig())

	c.PointerMovePixels(800, 0, 800, 600)
	got := c.Target()
	if math.Abs(got.Yaw-0.3) > 1e-12 || math.Abs(got.Pitch-0.3) > 1e-12 {
		t.Errorf("top right corner: got %+v", got)
	}

	c.PointerMovePixels(400, 300, 800, 600)
	if got := c.Target(); got != (Orientation{}) {
		t.Errorf("center: got %+v", got)
	}

	c.PointerMove(1, 1)
	c.PointerMovePixels(10, 10, 0, 600)
	if got := c.Target(); got.Yaw != 0.3 {
		t.Errorf("zero width must be ignored, got %+v", got)
	}
}

func TestAdvanceIsExponential(t *testing.T) {
	c := New(DefaultConfig())
	c.PointerMove(1, 0)

	c.Advance(1.0 / 60)
	if got := c.Orientation().Yaw; math.Abs(got-0.015) > 1e-12 {
		t.Fatalf("first step yaw = %v, want 0.015", got)
	}

	// Remaining delta after n steps is 0.3 * 0.95^n, whatever dt is.
	for i := 1; i < 20; i++ {
		c.Advance(float64(i))
	}
	want := 0.3 - 0.3*math.Pow(0.95, 20)
	if got := c.Orientation().Yaw; math.Abs(got-want) > 1e-12 {
		t.Errorf("yaw after 20 steps = %v, want %v", got, want)
	}
	if c.Orientation().Pitch != 0 {
		t.Errorf("pitch moved without input: %v", c.Orientation().Pitch)
	}
}

func TestAdvanceConverges(t *testing.T) {
	c := New(DefaultConfig())
	c.PointerMove(-0.5, 0.8)
	for i := 0; i < 1000; i++ {
		c.Advance(0)
	}
	got, want := c.Orientation(), c.Target()
	if math.Abs(got.Pitch-want.Pitch) > 1e-9 || math.Abs(got.Yaw-want.Yaw) > 1e-9 {
		t.Errorf("Orientation() = %+v, want %+v", got, want)
	}
}

func TestScrollClamp(t *testing.T) {
	c := New(DefaultConfig())
	if c.Distance() != DefaultDistance {
		t.Fatalf("initial distance = %v", c.Distance())
	}

	for i := 0; i < 200; i++ {
		if !c.Scroll(120) {
			t.Fatal("zoom out not consumed")
		}
		if c.Distance() > MaxDistance {
			t.Fatalf("distance %v above max after %d ticks", c.Distance(), i)
		}
	}
	if c.Distance() != MaxDistance {
		t.Errorf("distance = %v, want %v", c.Distance(), MaxDistance)
	}

	for i := 0; i < 200; i++ {
		c.Scroll(-1)
		if c.Distance() < MinDistance {
			t.Fatalf("distance %v below min after %d ticks", c.Distance(), i)
		}
	}
	if c.Distance() != MinDistance {
		t.Errorf("distance = %v, want %v", c.Distance(), MinDistance)
	}
}

func TestScrollStep(t *testing.T) {
	c := New(DefaultConfig())
	c.Scroll(1)
	if got := c.Distance(); math.Abs(got-8.4) > 1e-12 {
		t.Errorf("one tick out = %v, want 8.4", got)
	}
	c.Scroll(-1)
	if got := c.Distance(); math.Abs(got-7.98) > 1e-12 {
		t.Errorf("then one tick in = %v, want 7.98", got)
	}
	if c.Scroll(0) {
		t.Error("zero delta must not be consumed")
	}
}

func TestNewSanitizesConfig(t *testing.T) {
	c := New(Config{MinDistance: 30, MaxDistance: 10, Distance: 50})
	if c.Distance() != 30 {
		t.Errorf("distance = %v, want clamp to swapped max 30", c.Distance())
	}

	c = New(Config{})
	if c.Distance() != DefaultDistance {
		t.Errorf("zero config distance = %v", c.Distance())
	}
}

func TestReset(t *testing.T) {
	c := New(DefaultConfig())
	c.PointerMove(1, 1)
	c.Advance(0)
	c.Scroll(1)
	c.Reset()
	if c.Orientation() != (Orientation{}) || c.Target() != (Orientation{}) || c.Distance() != DefaultDistance {
		t.Errorf("after Reset: %+v %+v %v", c.Orientation(), c.Target(), c.Distance())
	}
}
