package pixtrace

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// BitmapFromImage converts img into a bitmap with the given number of
// planes. One plane bitmaps keep the luma of each pixel. Transparent
// pixels are composited over white.
func BitmapFromImage(img image.Image, planes int) (*Bitmap, error) {
	src := imgToNRGBA(img)
	b := src.Bounds()

	bm, err := NewBitmap(b.Dx(), b.Dy(), planes)
	if err != nil {
		return nil, err
	}
	for y := 0; y < bm.Height; y++ {
		si := src.PixOffset(0, y)
		for x := 0; x < bm.Width; x++ {
			c := flatten(src.Pix[si : si+4])
			if planes == 1 {
				c = Gray(luma(c))
			}
			bm.SetColor(y, x, c)
			si += 4
		}
	}
	return bm, nil
}

// ImageFromBitmap returns an opaque image holding the pixels of bm.
func ImageFromBitmap(bm *Bitmap) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, bm.Width, bm.Height))
	for y := 0; y < bm.Height; y++ {
		di := dst.PixOffset(0, y)
		for x := 0; x < bm.Width; x++ {
			c := bm.ColorAt(y, x)
			dst.Pix[di+0] = c.R
			dst.Pix[di+1] = c.G
			dst.Pix[di+2] = c.B
			dst.Pix[di+3] = 0xff
			di += 4
		}
	}
	return dst
}

// flatten composites a non-premultiplied RGBA pixel over white.
func flatten(px []uint8) Color {
	a := uint32(px[3])
	blend := func(v uint8) uint8 {
		return uint8((uint32(v)*a + 0xff*(0xff-a) + 0x7f) / 0xff)
	}
	return Color{R: blend(px[0]), G: blend(px[1]), B: blend(px[2])}
}

// luma uses the Rec. 601 weights, like the grayscale filter.
func luma(c Color) uint8 {
	y := (299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B) + 500) / 1000
	return uint8(y)
}

// decodeImg decodes an image of any registered format.
func decodeImg(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return img, nil
}

// encodeImg encodes img into w. The format follows the file extension when w
// is a file; everything else, pipes included, gets PNG.
func encodeImg(w io.Writer, img image.Image) error {
	ext := ".png"
	if f, ok := w.(*os.File); ok && f != os.Stdout {
		ext = strings.ToLower(filepath.Ext(f.Name()))
	}
	switch ext {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	case *image.Gray:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				v := src.Pix[si+dstX]
				dst.Pix[di+0] = v
				dst.Pix[di+1] = v
				dst.Pix[di+2] = v
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}
