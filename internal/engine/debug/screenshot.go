package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Snapshot writes framebuffer readbacks to PNG files. Pixels equal to the
// color key become fully transparent, so the file matches what the desktop
// shows through the layered window.
type Snapshot struct {
	outputDir string
	prefix    string
	key       color.RGBA
	now       func() time.Time
}

// NewSnapshot creates a snapshot writer. key is the window's transparent
// color; its alpha is ignored.
func NewSnapshot(outputDir, prefix string, key color.RGBA) *Snapshot {
	return &Snapshot{
		outputDir: outputDir,
		prefix:    prefix,
		key:       key,
		now:       time.Now,
	}
}

// Filename returns the path the next capture would be written to.
func (s *Snapshot) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05.000"))
	if s.outputDir != "" {
		name = filepath.Join(s.outputDir, name)
	}
	return name
}

// FromPixels converts a bottom-up RGBA readback into a top-down image with
// keyed pixels cleared.
func (s *Snapshot) FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snapshot: invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("snapshot: pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	KeyToAlpha(img, s.key)
	return img, nil
}

// Capture writes the readback to a new PNG and returns its path.
func (s *Snapshot) Capture(pixels []byte, width, height int) (string, error) {
	img, err := s.FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}

	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := s.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// KeyToAlpha zeroes every pixel whose RGB equals key.
func KeyToAlpha(img *image.RGBA, key color.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		p := img.Pix[i : i+4 : i+4]
		if p[0] == key.R && p[1] == key.G && p[2] == key.B {
			p[0], p[1], p[2], p[3] = 0, 0, 0, 0
		}
	}
}
