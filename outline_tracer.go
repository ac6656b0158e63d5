package pixtrace

import "log/slog"

// TraceOutlines traces the pixel-edge boundary of every same-colored region
// of bm. Outer boundaries are returned counterclockwise. When bg is given,
// pixels of that color are never traced and hole boundaries are returned
// clockwise; without it hole boundaries are still walked, since later
// seeds depend on their edges being marked, but they are not returned.
//
// A walk that stops before getting back to its seed edge yields an outline
// flagged as Open rather than an error. Where three colors meet at a corner
// such a walk can be a single edge long; those are dropped, so every
// returned outline has at least two points.
//
// When opts.Cancel stops the scan early the list is flagged as Cancelled.
func TraceOutlines(bm *Bitmap, bg *Color, opts *TraceOptions) (*PixelOutlineList, error) {
	marked, err := prepare(bm)
	if err != nil {
		return nil, err
	}
	t := &outlineTracer{
		edgeWalker: edgeWalker{bm: bm, marked: marked},
		bg:         bg,
		log:        Logger(),
	}
	list := &PixelOutlineList{}

	t.log.Debug("tracing outlines",
		slog.Int("width", bm.Width),
		slog.Int("height", bm.Height),
		slog.Bool("background", bg != nil),
	)
	cancelled := scan(bm, t, opts, list)
	t.log.Debug("outlines traced",
		slog.Int("outlines", list.Len()),
		slog.Int("unclosed", list.Unclosed()),
		slog.Bool("cancelled", cancelled),
	)
	return list, nil
}

type outlineTracer struct {
	edgeWalker
	bg  *Color
	log *slog.Logger
}

func (t *outlineTracer) isBackground(c Color) bool {
	return t.bg != nil && c.Equal(*t.bg)
}

func (t *outlineTracer) traceAt(row, col int, list *PixelOutlineList) {
	// Outer boundaries start on the top edge of their topmost pixel.
	c := t.bm.ColorAt(row, col)
	if !t.isBackground(c) && t.isUnmarkedOutlineEdge(row, col, Top, c) {
		t.keep(list, t.walk(row, col, Top, false, false))
	}
	if row == 0 {
		return
	}

	// Holes start on the bottom edge of the pixel above their topmost pixel.
	above := t.bm.ColorAt(row-1, col)
	if t.isBackground(above) || !t.isUnmarkedOutlineEdge(row-1, col, Bottom, above) {
		return
	}
	if t.bg != nil {
		t.keep(list, t.walk(row-1, col, Bottom, true, false))
	} else {
		t.walk(row-1, col, Bottom, true, true)
	}
}

// keep appends o unless it is a single edge left over by a diagonal
// crossing of three colors. Its edge stays marked either way.
func (t *outlineTracer) keep(list *PixelOutlineList, o PixelOutline) {
	if o.Len() > 1 {
		list.Append(o)
		return
	}
	t.log.Debug("dropping degenerate outline",
		slog.Any("points", o.Points),
		slog.Bool("clockwise", o.Clockwise),
	)
}

// walk follows the boundary starting at edge seed of (row, col), marking
// every edge it passes. With discard set only the marks are kept.
func (t *outlineTracer) walk(row, col int, seed Edge, clockwise, discard bool) PixelOutline {
	c := t.bm.ColorAt(row, col)
	o := PixelOutline{Clockwise: clockwise, Color: c}

	r, cl, e := row, col, seed
	lastRow, lastCol, lastEdge := r, cl, e
	for e != NoEdge {
		if !discard {
			o.Append(t.edgePoint(r, cl, e))
		}
		t.marked.markEdge(r, cl, e)
		lastRow, lastCol, lastEdge = r, cl, e
		r, cl, e = t.next(r, cl, e, c, clockwise)
	}

	if !discard && !t.closes(lastRow, lastCol, lastEdge, row, col, seed, c, clockwise) {
		o.Open = true
		t.log.Warn("outline stopped before reaching its seed",
			slog.Int("row", row),
			slog.Int("col", col),
			slog.Bool("clockwise", clockwise),
			slog.Int("points", o.Len()),
		)
	}
	return o
}

// closes reports whether the seed edge is the continuation of the last
// walked edge, i.e. the walk only stopped because the seed was marked.
func (t *outlineTracer) closes(row, col int, e Edge, seedRow, seedCol int, seed Edge, c Color, clockwise bool) bool {
	accept := func(r, cl int, ed Edge, c Color) bool {
		if r == seedRow && cl == seedCol && ed == seed {
			return true
		}
		return t.isUnmarkedOutlineEdge(r, cl, ed, c)
	}
	r, cl, next := t.nextWith(row, col, e, c, clockwise, accept)
	return next == seed && r == seedRow && cl == seedCol
}

// edgePoint maps an edge to the Cartesian corner it ends on when walked
// counterclockwise.
func (t *outlineTracer) edgePoint(row, col int, e Edge) Point {
	p := Point{X: col, Y: t.bm.Height - row - 1}
	if e == Right || e == Bottom {
		p.X++
	}
	if e == Top || e == Right {
		p.Y++
	}
	return p
}
