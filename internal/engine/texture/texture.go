// Package texture provides image conversion utilities for texture upload.
package texture

import (
	"image"
	"image/draw"
)

// ToRGBA returns img as tightly packed RGBA anchored at the origin. Rows stay
// top-first: glTF puts v=0 on the first uploaded row, so no flip is needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
