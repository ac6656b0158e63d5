package imop

import (
	"image"

	"github.com/esimov/pixtrace/utils"
)

// Porter-Duff composition operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap holds the result of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// NewBitmap allocates a transparent bitmap of the given size.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp returns a Composite set to SrcOver.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear, Copy, Dst,
			SrcOver, DstOver,
			SrcIn, DstIn,
			SrcOut, DstOut,
			SrcAtop, DstAtop,
			Xor,
		},
	}
}

// Set activates cop. Unknown operations are ignored.
func (op *Composite) Set(cop string) {
	if utils.Contains(op.ops, cop) {
		op.current = cop
	}
}

// Get returns the active operation.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the fraction of source and backdrop kept by the active
// operation, given the source alpha as and backdrop alpha ab.
func (op *Composite) factors(as, ab float64) (fs, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	default:
		return 1, 1 - as
	}
}

// Draw composes src onto the backdrop dst and stores the result in bitmap.
// The images are aligned at their minimum points and only the overlapping
// area is drawn. When blend is not nil the source color is mixed with the
// backdrop first.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA, blend *Blend) {
	if bitmap == nil {
		return
	}
	sb, db, bb := src.Bounds(), dst.Bounds(), bitmap.Img.Bounds()
	dx := utils.Min(sb.Dx(), utils.Min(db.Dx(), bb.Dx()))
	dy := utils.Min(sb.Dy(), utils.Min(db.Dy(), bb.Dy()))

	for y := 0; y < dy; y++ {
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := dst.PixOffset(db.Min.X, db.Min.Y+y)
		bi := bitmap.Img.PixOffset(bb.Min.X, bb.Min.Y+y)
		for x := 0; x < dx; x++ {
			s := normalize(src.Pix[si : si+4])
			b := normalize(dst.Pix[di : di+4])
			if blend != nil {
				s = blend.mix(s, b)
			}

			fs, fb := op.factors(s[3], b[3])
			a := s[3]*fs + b[3]*fb
			out := bitmap.Img.Pix[bi : bi+4]
			for c := 0; c < 3; c++ {
				v := 0.0
				if a > 0 {
					v = (s[3]*fs*s[c] + b[3]*fb*b[c]) / a
				}
				out[c] = denormalize(v)
			}
			out[3] = denormalize(a)

			si += 4
			di += 4
			bi += 4
		}
	}
}

func normalize(px []uint8) [4]float64 {
	return [4]float64{
		float64(px[0]) / 255,
		float64(px[1]) / 255,
		float64(px[2]) / 255,
		float64(px[3]) / 255,
	}
}

func denormalize(v float64) uint8 {
	return uint8(utils.Clamp(v, 0, 1)*255 + 0.5)
}
