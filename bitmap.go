package pixtrace

import (
	"fmt"
	"math"
)

// MaxPixels caps the number of pixels a single trace call accepts.
// The marking plane needs one byte per pixel.
const MaxPixels = 1 << 30

// Color is an RGB triple. Gray pixels are promoted to R == G == B.
type Color struct {
	R, G, B uint8
}

// Gray returns the color of a single plane pixel value.
func Gray(v uint8) Color {
	return Color{R: v, G: v, B: v}
}

// Equal reports whether the two colors match byte for byte.
func (c Color) Equal(o Color) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B
}

// Bitmap is a row-major pixel grid with one (gray) or three (RGB) planes.
// The tracers never modify it.
type Bitmap struct {
	Width  int
	Height int
	Planes int
	Pix    []uint8
}

// NewBitmap allocates a zeroed bitmap.
func NewBitmap(width, height, planes int) (*Bitmap, error) {
	bm := &Bitmap{Width: width, Height: height, Planes: planes}
	if err := bm.checkSize(); err != nil {
		return nil, err
	}
	bm.Pix = make([]uint8, width*height*planes)
	return bm, nil
}

// Validate reports whether the bitmap can be traced.
func (bm *Bitmap) Validate() error {
	if bm == nil {
		return fmt.Errorf("%w: nil bitmap", ErrInvalidBitmap)
	}
	if err := bm.checkSize(); err != nil {
		return err
	}
	if want := bm.Width * bm.Height * bm.Planes; len(bm.Pix) != want {
		return fmt.Errorf("%w: pixel buffer holds %d bytes, %dx%dx%d needs %d",
			ErrInvalidBitmap, len(bm.Pix), bm.Width, bm.Height, bm.Planes, want)
	}
	return nil
}

func (bm *Bitmap) checkSize() error {
	if bm.Planes != 1 && bm.Planes != 3 {
		return fmt.Errorf("%w: %d planes, want 1 or 3", ErrInvalidBitmap, bm.Planes)
	}
	if bm.Width < 0 || bm.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidBitmap, bm.Width, bm.Height)
	}
	if bm.Height > 0 && bm.Width > math.MaxInt/bm.Height/bm.Planes {
		return fmt.Errorf("%w: %dx%d overflows", ErrBitmapTooLarge, bm.Width, bm.Height)
	}
	if n := bm.Width * bm.Height; n > MaxPixels {
		return fmt.Errorf("%w: %d pixels, limit is %d", ErrBitmapTooLarge, n, MaxPixels)
	}
	return nil
}

// ColorAt returns the color of the pixel at (row, col).
// The coordinates must be inside the bitmap.
func (bm *Bitmap) ColorAt(row, col int) Color {
	i := (row*bm.Width + col) * bm.Planes
	if bm.Planes == 1 {
		return Gray(bm.Pix[i])
	}
	return Color{R: bm.Pix[i], G: bm.Pix[i+1], B: bm.Pix[i+2]}
}

// SetColor stores c at (row, col). One plane bitmaps keep the red channel.
func (bm *Bitmap) SetColor(row, col int, c Color) {
	i := (row*bm.Width + col) * bm.Planes
	if bm.Planes == 1 {
		bm.Pix[i] = c.R
		return
	}
	bm.Pix[i], bm.Pix[i+1], bm.Pix[i+2] = c.R, c.G, c.B
}

// inside reports whether (row, col) addresses a pixel of the bitmap.
func (bm *Bitmap) inside(row, col int) bool {
	return row >= 0 && row < bm.Height && col >= 0 && col < bm.Width
}

// sameColor reports whether (row, col) is inside the bitmap and has color c.
func (bm *Bitmap) sameColor(row, col int, c Color) bool {
	return bm.inside(row, col) && bm.ColorAt(row, col).Equal(c)
}
