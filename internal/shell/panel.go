package shell

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/goonie-buddy/internal/engine/viewport"
)

// Vec2 is a point or size in logical UI units.
type Vec2 struct {
	X, Y float32
}

// PanelGeometry is what a GUI toolkit reports about the panel hosting the
// 3D canvas, all in logical units except FramebufferScale.
type PanelGeometry struct {
	ContentPos  Vec2 // top-left of the canvas region
	ContentSize Vec2
	WindowPos   Vec2 // the panel window, which clips the canvas
	WindowSize  Vec2
	DisplaySize Vec2

	FramebufferScale float32
}

// Input converts the geometry into a viewport mapping request. The clip is
// the canvas cut by the panel window and the display.
func (g PanelGeometry) Input() viewport.Input {
	panel := viewport.Logical{X: g.ContentPos.X, Y: g.ContentPos.Y, Width: g.ContentSize.X, Height: g.ContentSize.Y}
	window := viewport.Logical{X: g.WindowPos.X, Y: g.WindowPos.Y, Width: g.WindowSize.X, Height: g.WindowSize.Y}
	display := viewport.Logical{Width: g.DisplaySize.X, Height: g.DisplaySize.Y}

	scale := g.FramebufferScale
	if scale <= 0 {
		scale = 1
	}
	return viewport.Input{
		Panel:             panel,
		Clip:              window.Intersect(display),
		PixelsPerPoint:    scale,
		FramebufferHeight: int32(math32.Floor(g.DisplaySize.Y*scale + 0.5)),
	}
}

// WindowInput is the standalone case: the whole window is both the panel and
// the clip. Sizes are the window in logical units and its drawable in pixels.
func WindowInput(width, height, drawableWidth, drawableHeight int32) viewport.Input {
	ratio := float32(1)
	if height > 0 && drawableHeight > 0 {
		ratio = float32(drawableHeight) / float32(height)
	}
	full := viewport.Logical{Width: float32(width), Height: float32(height)}
	return viewport.Input{
		Panel:             full,
		Clip:              full,
		PixelsPerPoint:    ratio,
		FramebufferHeight: drawableHeight,
	}
}
