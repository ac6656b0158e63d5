package pixtrace

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Path converts the outline to a polyline path for a curve fitter, keeping
// the traced point order. Closed outlines end with a close command, open
// ones do not.
func (o *PixelOutline) Path() *path.Data {
	p := &path.Data{}
	o.appendTo(p, false)
	return p
}

// appendTo adds the outline as a new subpath of p, back to front when
// reverse is set.
func (o *PixelOutline) appendTo(p *path.Data, reverse bool) {
	n := len(o.Points)
	if n == 0 {
		return
	}
	at := func(i int) vec.Vec2 {
		if reverse {
			return toVec(o.Points[n-1-i])
		}
		return toVec(o.Points[i])
	}
	p.MoveTo(at(0))
	for i := 1; i < n; i++ {
		p.LineTo(at(i))
	}
	if !o.Open {
		p.Close()
	}
}

// Path joins all outlines of the list into a single fill path, one subpath
// per outline. Hole boundaries keep their region on the right while being
// traced, which makes their polygon turn the same way as the outer ones;
// they are reversed here so that filling the result with the nonzero rule
// leaves the holes empty.
func (l *PixelOutlineList) Path() *path.Data {
	p := &path.Data{}
	if l == nil {
		return p
	}
	for i := range l.Outlines {
		o := &l.Outlines[i]
		o.appendTo(p, o.Clockwise)
	}
	return p
}

func toVec(pt Point) vec.Vec2 {
	return vec.Vec2{X: float64(pt.X), Y: float64(pt.Y)}
}
