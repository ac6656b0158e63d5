package pixtrace

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/pixtrace/utils"
)

// Preprocess prepares src for tracing. Noisy photos produce one region per
// pixel, so the image is optionally blurred, converted to grayscale, reduced
// to black and white and posterized before it is turned into a bitmap.
func (p *Processor) Preprocess(src image.Image) *image.NRGBA {
	img := p.resize(imgToNRGBA(src))
	if p.BlurRadius > 0 {
		img = imaging.Blur(img, p.BlurRadius)
	}
	if p.Grayscale || p.Threshold > 0 {
		img = imaging.Grayscale(img)
	}
	if p.Threshold > 0 {
		img = threshold(img, uint8(utils.Clamp(p.Threshold, 1, 0xff)))
	}
	if p.Levels > 1 {
		img = posterize(img, utils.Min(p.Levels, 0x100))
	}
	return img
}

// resize scales img by the Scale factor. Nearest neighbour sampling keeps
// the colors of the source, so no new regions appear along the edges.
func (p *Processor) resize(img *image.NRGBA) *image.NRGBA {
	if p.Scale <= 0 || p.Scale == 1 {
		return img
	}
	w := int(math.Round(float64(img.Bounds().Dx()) * p.Scale))
	h := int(math.Round(float64(img.Bounds().Dy()) * p.Scale))
	return imaging.Resize(img, utils.Max(w, 1), utils.Max(h, 1), imaging.NearestNeighbor)
}

// planes returns the bitmap depth matching the preprocessing options.
func (p *Processor) planes() int {
	if p.Grayscale || p.Threshold > 0 {
		return 1
	}
	return 3
}

// threshold maps every pixel darker than t to black and the rest to white.
func threshold(img image.Image, t uint8) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if luma(Color{R: c.R, G: c.G, B: c.B}) < t {
			return color.NRGBA{A: 0xff}
		}
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	})
}

// posterize reduces every channel to the given number of evenly spaced levels.
func posterize(img image.Image, levels int) *image.NRGBA {
	step := 255 / float64(levels-1)
	quantize := func(v uint8) uint8 {
		return uint8(math.Round(math.Round(float64(v)/step) * step))
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: quantize(c.R), G: quantize(c.G), B: quantize(c.B), A: c.A}
	})
}
