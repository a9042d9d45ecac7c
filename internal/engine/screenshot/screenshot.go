// Package screenshot saves rendered frames as PNG files.
package screenshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ErrPixelSize is returned when the pixel buffer does not match the size.
var ErrPixelSize = errors.New("screenshot: pixel data size mismatch")

// Capture writes frames into Dir as <Prefix>_<timestamp>.png.
type Capture struct {
	Dir    string
	Prefix string

	// Now is the clock used for file names.
	Now func() time.Time
}

// New creates a capture writing into dir.
func New(dir, prefix string) *Capture {
	return &Capture{Dir: dir, Prefix: prefix, Now: time.Now}
}

// FromGL converts bottom-up RGBA rows, as glReadPixels returns them, into
// a top-down image.
func FromGL(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%dx%d with %d bytes: %w", width, height, len(pixels), ErrPixelSize)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Save flips and writes GL pixels, returning the file name.
func (c *Capture) Save(pixels []byte, width, height int) (string, error) {
	img, err := FromGL(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.SaveImage(img)
}

// SaveImage writes img, returning the file name. An existing file is
// never overwritten.
func (c *Capture) SaveImage(img image.Image) (string, error) {
	if c.Dir != "" {
		if err := os.MkdirAll(c.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	base := c.Filename()
	name := base
	var file *os.File
	for i := 2; ; i++ {
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			file = f
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("creating file: %w", err)
		}
		name = fmt.Sprintf("%s-%d.png", base[:len(base)-len(".png")], i)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return name, nil
}

// Filename generates the next file name without saving.
func (c *Capture) Filename() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	filename := fmt.Sprintf("%s_%s.png", c.Prefix, now().Format("2006-01-02_15-04-05"))
	if c.Dir != "" {
		filename = filepath.Join(c.Dir, filename)
	}
	return filename
}
