package screenshot

import (
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromGLFlipsRows(t *testing.T) {
	// Two rows, bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromGL(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FromGL() error = %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}
}

func TestFromGLSizeMismatch(t *testing.T) {
	if _, err := FromGL(make([]byte, 7), 1, 2); !errors.Is(err, ErrPixelSize) {
		t.Errorf("FromGL() error = %v, want ErrPixelSize", err)
	}
	if _, err := FromGL(nil, 0, 0); !errors.Is(err, ErrPixelSize) {
		t.Errorf("FromGL(empty) error = %v, want ErrPixelSize", err)
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := New(dir, "earth")
	c.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC) }

	pixels := make([]byte, 2*2*4)
	first, err := c.Save(pixels, 2, 2)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if want := filepath.Join(dir, "earth_2026-03-01_12-30-45.png"); first != want {
		t.Errorf("Save() = %q, want %q", first, want)
	}

	second, err := c.Save(pixels, 2, 2)
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if want := filepath.Join(dir, "earth_2026-03-01_12-30-45-2.png"); second != want {
		t.Errorf("second Save() = %q, want %q", second, want)
	}

	f, err := os.Open(first)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding saved file: %v", err)
	}
	if cfg.Width != 2 || cfg.Height != 2 {
		t.Errorf("saved size = %dx%d", cfg.Width, cfg.Height)
	}
}
