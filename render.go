package pixtrace

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// RenderOptions controls how a traced outline list is rasterized.
type RenderOptions struct {
	// Background fills the canvas before any outline is drawn. When set,
	// outlines of the same color are filled together with the hole
	// boundaries reversed, so that holes cut out of their enclosing region.
	Background *Color
	// Transparent leaves the canvas clear even when Background is set.
	Transparent bool
	// Centerline draws every point as a unit pixel instead of filling
	// the polygon spanned by the points.
	Centerline bool
	// Stroke, when set, replaces the color of every outline.
	Stroke *Color
}

// Render rasterizes list onto a new width x height image. Outline points are
// Cartesian, so the y axis is flipped back to image orientation.
func Render(list *PixelOutlineList, width, height int, opts RenderOptions) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if opts.Background != nil && !opts.Transparent {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(toNRGBA(*opts.Background)), image.Point{}, draw.Src)
	}
	if list.Len() == 0 || width == 0 || height == 0 {
		return dst
	}

	r := &renderer{
		dst:    dst,
		z:      vector.NewRasterizer(width, height),
		height: float32(height),
		stroke: opts.Stroke,
	}
	switch {
	case opts.Centerline:
		for i := range list.Outlines {
			o := &list.Outlines[i]
			r.fill(o.pixelPath(), o.Color)
		}
	case opts.Background != nil:
		for _, g := range groupByColor(list) {
			p := &path.Data{}
			for _, i := range g.outlines {
				o := &list.Outlines[i]
				o.appendTo(p, o.Clockwise)
			}
			r.fill(p, g.color)
		}
	default:
		// Enclosed regions are always discovered after their parent, so
		// painting in list order keeps them on top.
		for i := range list.Outlines {
			o := &list.Outlines[i]
			r.fill(o.Path(), o.Color)
		}
	}
	return dst
}

type renderer struct {
	dst    *image.NRGBA
	z      *vector.Rasterizer
	height float32
	stroke *Color
}

// fill rasterizes p with color c. Every subpath is closed, including
// outlines flagged as open.
func (r *renderer) fill(p *path.Data, c Color) {
	if r.stroke != nil {
		c = *r.stroke
	}
	b := r.dst.Bounds()
	r.z.Reset(b.Dx(), b.Dy())

	var started bool
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if started {
				r.z.ClosePath()
			}
			r.z.MoveTo(r.device(p.Coords[i]))
			started = true
			i++
		case path.CmdLineTo:
			r.z.LineTo(r.device(p.Coords[i]))
			i++
		case path.CmdQuadTo:
			i += 2
		case path.CmdCubeTo:
			i += 3
		case path.CmdClose:
			r.z.ClosePath()
			started = false
		}
	}
	if started {
		r.z.ClosePath()
	}
	r.z.Draw(r.dst, b, image.NewUniform(toNRGBA(c)), image.Point{})
}

func (r *renderer) device(v vec.Vec2) (float32, float32) {
	return float32(v.X), r.height - float32(v.Y)
}

// pixelPath returns one unit square per point, each square covering the
// pixel whose center the point addresses.
func (o *PixelOutline) pixelPath() *path.Data {
	p := &path.Data{}
	for _, pt := range o.Points {
		x, y := float64(pt.X), float64(pt.Y)
		p.MoveTo(vec.Vec2{X: x, Y: y}).
			LineTo(vec.Vec2{X: x + 1, Y: y}).
			LineTo(vec.Vec2{X: x + 1, Y: y + 1}).
			LineTo(vec.Vec2{X: x, Y: y + 1}).
			Close()
	}
	return p
}

type colorGroup struct {
	color    Color
	outlines []int
}

// groupByColor collects outline indices per color in order of first appearance.
func groupByColor(list *PixelOutlineList) []colorGroup {
	var groups []colorGroup
	index := make(map[Color]int)
	for i := range list.Outlines {
		c := list.Outlines[i].Color
		g, ok := index[c]
		if !ok {
			g = len(groups)
			index[c] = g
			groups = append(groups, colorGroup{color: c})
		}
		groups[g].outlines = append(groups[g].outlines, i)
	}
	return groups
}

func toNRGBA(c Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
