package pixtrace

import "errors"

var (
	// ErrInvalidBitmap is returned for bitmaps with an unsupported plane
	// count, negative dimensions or a pixel buffer of the wrong length.
	ErrInvalidBitmap = errors.New("invalid bitmap")

	// ErrBitmapTooLarge is returned when the marking plane for a bitmap
	// cannot be allocated.
	ErrBitmapTooLarge = errors.New("bitmap too large")

	// ErrUnsupportedFormat is returned when an output file extension has no encoder.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
