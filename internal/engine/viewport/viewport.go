// Package viewport maps GUI panel geometry to framebuffer viewport and
// scissor rectangles.
//
// GUI toolkits measure in logical units from the top-left corner. GL measures
// in pixels from the bottom-left corner of the framebuffer. Map converts
// between the two.
package viewport

import "github.com/chewxy/math32"

// Rect is a framebuffer-space rectangle in pixels with a bottom-left origin.
type Rect struct {
	X, Y          int32
	Width, Height int32
}

// Empty reports whether the rectangle covers no pixel.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether other lies fully inside r. An empty other is
// contained anywhere.
func (r Rect) Contains(other Rect) bool {
	if other.Empty() {
		return true
	}
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Aspect returns width/height, or 1 for an empty rectangle.
func (r Rect) Aspect() float32 {
	if r.Empty() {
		return 1
	}
	return float32(r.Width) / float32(r.Height)
}

// Logical is a rectangle in GUI units with a top-left origin.
type Logical struct {
	X, Y          float32
	Width, Height float32
}

// Intersect returns the overlap of l and other. When they do not overlap
// the result has zero width or height.
func (l Logical) Intersect(other Logical) Logical {
	left := math32.Max(l.X, other.X)
	top := math32.Max(l.Y, other.Y)
	right := math32.Min(l.X+l.Width, other.X+other.Width)
	bottom := math32.Min(l.Y+l.Height, other.Y+other.Height)

	return Logical{
		X:      left,
		Y:      top,
		Width:  math32.Max(0, right-left),
		Height: math32.Max(0, bottom-top),
	}
}

// Input is the geometry a host paint callback delivers once per frame.
type Input struct {
	Panel             Logical
	Clip              Logical
	PixelsPerPoint    float32
	FramebufferHeight int32
}

// Map converts the panel and clip rectangles to framebuffer pixels.
//
// Edges, not sizes, are rounded (half-up), so two panels sharing an edge in
// logical units share it in pixels as well. The clip is intersected with the
// panel first, so the scissor never leaves the viewport.
func Map(in Input) (viewport, scissor Rect) {
	viewport = in.toPixels(in.Panel)
	scissor = in.toPixels(in.Panel.Intersect(in.Clip))
	return viewport, scissor
}

func (in Input) toPixels(l Logical) Rect {
	left := round(l.X * in.PixelsPerPoint)
	right := round((l.X + l.Width) * in.PixelsPerPoint)
	top := round(l.Y * in.PixelsPerPoint)
	bottom := round((l.Y + l.Height) * in.PixelsPerPoint)

	return Rect{
		X:      left,
		Y:      in.FramebufferHeight - bottom,
		Width:  right - left,
		Height: bottom - top,
	}
}

// round rounds half-up: 2.5 -> 3, -2.5 -> -2.
func round(v float32) int32 {
	return int32(math32.Floor(v + 0.5))
}
