// Package shell connects the host window or GUI toolkit to the render
// sessions: color-key handling, panel geometry and per-frame signals.
package shell

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/goonie-buddy/internal/engine/gpu"
)

// ErrColorKey is returned for a color key the window manager cannot honor.
var ErrColorKey = errors.New("shell: invalid color key")

// DefaultColorKey is the sentinel painted wherever the model is not.
var DefaultColorKey = ColorKey{R: 0xFF, G: 0xB2, B: 0xFF}

// ColorKey is the RGB value the window manager composites as transparent.
type ColorKey struct {
	R, G, B uint8
}

// ParseColorKey parses "#RRGGBB" or "#RGB". Win32 layered windows mishandle
// keys whose red and blue differ, so those are rejected.
func ParseColorKey(s string) (ColorKey, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorKey{}, fmt.Errorf("%w: %q: %v", ErrColorKey, s, err)
	}
	r, g, b := c.RGB255()
	k := ColorKey{R: r, G: g, B: b}
	if k.R != k.B {
		return ColorKey{}, fmt.Errorf("%w: %s: red and blue must match", ErrColorKey, k)
	}
	return k, nil
}

// String returns the key as #RRGGBB.
func (k ColorKey) String() string {
	return fmt.Sprintf("#%02X%02X%02X", k.R, k.G, k.B)
}

// Floats returns the key as normalized RGB.
func (k ColorKey) Floats() [3]float32 {
	return [3]float32{float32(k.R) / 255, float32(k.G) / 255, float32(k.B) / 255}
}

// ClearColor returns the opaque clear color standalone mode fills unused
// pixels with.
func (k ColorKey) ClearColor() gpu.Color {
	f := k.Floats()
	return gpu.Color{R: f[0], G: f[1], B: f[2], A: 1}
}

// RGBA returns the key as an opaque color.RGBA.
func (k ColorKey) RGBA() color.RGBA {
	return color.RGBA{R: k.R, G: k.G, B: k.B, A: 0xFF}
}

// COLORREF returns the key in Win32 0x00BBGGRR layout.
func (k ColorKey) COLORREF() uint32 {
	return uint32(k.R) | uint32(k.G)<<8 | uint32(k.B)<<16
}
