package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_Basic(t *testing.T) {
	assert := assert.New(t)

	op := NewBlend()
	assert.Equal(Normal, op.Get())

	op.Set("blend_mode_not_supported")
	assert.Equal(Normal, op.Get())

	op.Set(Darken)
	assert.Equal(Darken, op.Get())
	op.Set(Lighten)
	assert.Equal(Lighten, op.Get())
}

func TestBlend_Modes(t *testing.T) {
	pinkFront := color.NRGBA{R: 214, G: 20, B: 65, A: 255}
	orangeBack := color.NRGBA{R: 250, G: 121, B: 17, A: 255}

	rect := image.Rect(0, 0, 1, 1)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)
	draw.Draw(source, rect, &image.Uniform{pinkFront}, image.Point{}, draw.Src)
	draw.Draw(backdrop, rect, &image.Uniform{orangeBack}, image.Point{}, draw.Src)

	testCases := []struct {
		mode     string
		expected []uint8
	}{
		{Normal, []uint8{214, 20, 65, 255}},
		{Darken, []uint8{214, 20, 17, 255}},
		{Lighten, []uint8{250, 121, 65, 255}},
		{Multiply, []uint8{210, 9, 4, 255}},
	}

	for _, tc := range testCases {
		t.Run(tc.mode, func(t *testing.T) {
			op := InitOp()
			blend := NewBlend()
			blend.Set(tc.mode)

			bmp := NewBitmap(rect)
			op.Draw(bmp, source, backdrop, blend)
			assert.EqualValues(t, tc.expected, bmp.Img.Pix)
		})
	}
}

func TestBlend_TransparentBackdrop(t *testing.T) {
	rect := image.Rect(0, 0, 1, 1)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)
	source.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	blend := NewBlend()
	blend.Set(Multiply)
	bmp := NewBitmap(rect)
	InitOp().Draw(bmp, source, backdrop, blend)

	// Nothing to multiply with, the source is kept as is.
	assert.EqualValues(t, []uint8{200, 100, 50, 255}, bmp.Img.Pix)
}
