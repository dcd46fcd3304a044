package texture

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToRGBA(t *testing.T) {
	t.Run("rebases offset bounds", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
		src.Set(5, 5, color.NRGBA{R: 255, A: 255})
		src.Set(6, 5, color.NRGBA{G: 255, A: 255})

		out := ToRGBA(src)
		assert.Equal(t, image.Rect(0, 0, 2, 1), out.Rect)
		assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(0, 0))
		assert.Equal(t, color.RGBA{G: 255, A: 255}, out.RGBAAt(1, 0))
	})

	t.Run("packs gray", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 3, 2))
		src.SetGray(2, 1, color.Gray{Y: 128})

		out := ToRGBA(src)
		assert.Len(t, out.Pix, 3*2*4)
		assert.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 255}, out.RGBAAt(2, 1))
	})
}
