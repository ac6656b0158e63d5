package pixtrace

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/esimov/pixtrace/imop"
	"github.com/esimov/pixtrace/utils"
)

// Tracer is implemented by anything that can extract outlines from a bitmap.
type Tracer interface {
	Trace(*Bitmap) (*PixelOutlineList, error)
}

var _ Tracer = (*Processor)(nil)

// white is the background assumed by centerline tracing when none is given.
var white = Color{R: 0xff, G: 0xff, B: 0xff}

// Processor options
type Processor struct {
	// Centerline traces 1 pixel wide skeletons instead of region outlines.
	Centerline bool

	// Background is a hex color (#rgb or #rrggbb) never traced. Empty means
	// none in outline mode and white in centerline mode.
	Background string

	// Scale resizes the source before anything else; 0 or 1 keeps it.
	Scale float64

	BlurRadius  float64
	Threshold   int
	Levels      int
	Grayscale   bool
	Overlay     bool
	StrokeColor string

	// Progress and Cancel are forwarded to the tracer.
	Progress func(float64)
	Cancel   func() bool
}

// Report sums up one processed image. Cancelled tells whether the trace
// behind the written image was cut short.
type Report struct {
	Width     int
	Height    int
	Outlines  int
	Unclosed  int
	Cancelled bool
}

// Trace extracts the outlines of bm in the configured mode.
func (p *Processor) Trace(bm *Bitmap) (*PixelOutlineList, error) {
	bg, err := p.background()
	if err != nil {
		return nil, err
	}
	opts := &TraceOptions{Progress: p.Progress, Cancel: p.Cancel}
	if p.Centerline {
		return TraceCenterlines(bm, *bg, opts)
	}
	return TraceOutlines(bm, bg, opts)
}

// Process decodes the source image, traces it and encodes the rendered
// outlines into w. The reader and writer can be files, pipes or buffers.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	_, err := p.Run(r, w)
	return err
}

// Run works like Process and also reports what was traced.
func (p *Processor) Run(r io.Reader, w io.Writer) (*Report, error) {
	src, err := decodeImg(r)
	if err != nil {
		return nil, err
	}
	img := p.Preprocess(src)

	bm, err := BitmapFromImage(img, p.planes())
	if err != nil {
		return nil, err
	}
	list, err := p.Trace(bm)
	if err != nil {
		return nil, err
	}
	defer list.Free()

	out, err := p.render(list, bm, p.resize(imgToNRGBA(src)))
	if err != nil {
		return nil, err
	}
	if err := encodeImg(w, out); err != nil {
		return nil, err
	}

	return &Report{
		Width:     bm.Width,
		Height:    bm.Height,
		Outlines:  list.Len(),
		Unclosed:  list.Unclosed(),
		Cancelled: list.Cancelled,
	}, nil
}

// render rasterizes the traced outlines and lays them over the source
// image when the overlay option is set.
func (p *Processor) render(list *PixelOutlineList, bm *Bitmap, src *image.NRGBA) (*image.NRGBA, error) {
	bg, err := p.background()
	if err != nil {
		return nil, err
	}
	stroke, err := parseColor(p.StrokeColor)
	if err != nil {
		return nil, err
	}
	out := Render(list, bm.Width, bm.Height, RenderOptions{
		Background:  bg,
		Transparent: p.Overlay,
		Centerline:  p.Centerline,
		Stroke:      stroke,
	})
	if !p.Overlay {
		return out, nil
	}

	bmp := imop.NewBitmap(src.Bounds())
	op := imop.InitOp()
	op.Set(imop.SrcOver)
	blend := imop.NewBlend()
	blend.Set(imop.Multiply)
	op.Draw(bmp, out, src, blend)
	return bmp.Img, nil
}

func (p *Processor) background() (*Color, error) {
	c, err := parseColor(p.Background)
	if err != nil {
		return nil, fmt.Errorf("invalid background color: %w", err)
	}
	if c == nil && p.Centerline {
		c = &white
	}
	return c, nil
}

// parseColor converts a hex color string. The empty string yields nil.
func parseColor(s string) (*Color, error) {
	if s == "" {
		return nil, nil
	}
	c, err := utils.HexToRGBA(s)
	if err != nil {
		return nil, err
	}
	if c.A != 0xff {
		return nil, errors.New("translucent colors cannot be traced")
	}
	return &Color{R: c.R, G: c.G, B: c.B}, nil
}
