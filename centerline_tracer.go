package pixtrace

import "log/slog"

// searchOrder lists the rotations tried from the current search direction,
// alternating on both sides and widening until the reverse direction.
var searchOrder = [8]int{0, 1, -1, 2, -2, 3, -3, 4}

// TraceCenterlines follows the 1 pixel wide skeletons of bm from pixel center
// to pixel center. Pixels of color bg are never traced.
//
// A branch that ends without coming back to its seed is extended from the
// seed in the opposite direction as well, so each returned open outline runs
// from one dead end to the other. Junction pixels stay available until all of
// their branches have been consumed. Chains of a single pixel are dropped.
//
// When opts.Cancel stops the scan early the list is flagged as Cancelled.
func TraceCenterlines(bm *Bitmap, bg Color, opts *TraceOptions) (*PixelOutlineList, error) {
	marked, err := prepare(bm)
	if err != nil {
		return nil, err
	}
	t := &centerlineTracer{
		bm:     bm,
		marked: marked,
		bg:     bg,
		log:    Logger(),
	}
	list := &PixelOutlineList{}

	t.log.Debug("tracing centerlines",
		slog.Int("width", bm.Width),
		slog.Int("height", bm.Height),
	)
	cancelled := scan(bm, t, opts, list)
	t.log.Debug("centerlines traced",
		slog.Int("outlines", list.Len()),
		slog.Int("open", list.Unclosed()),
		slog.Bool("cancelled", cancelled),
	)
	return list, nil
}

type centerlineTracer struct {
	bm     *Bitmap
	marked *markedPlane
	bg     Color
	log    *slog.Logger
}

func (t *centerlineTracer) traceAt(row, col int, list *PixelOutlineList) {
	c := t.bm.ColorAt(row, col)
	if c.Equal(t.bg) {
		return
	}
	// A junction may seed once per boundary edge.
	for {
		e := t.seedEdge(row, col, c)
		if e == NoEdge {
			return
		}
		t.marked.mark(row, col, uint8(edgeDirection[e]))

		o := t.trace(row, col, c)
		o.Clockwise = e == Bottom
		if o.Len() > 1 {
			list.Append(o)
		}
	}
}

// seedEdge returns the first unmarked boundary edge of (row, col), rotating
// counterclockwise from Top.
//
// A pixel next to a junction is often seeded on its Left edge once the
// junction's vertical branch is consumed. Its walk then starts diagonally,
// so the chain bends around the junction pixel, which is picked up later by
// a small closed loop of its remaining neighbours.
func (t *centerlineTracer) seedEdge(row, col int, c Color) Edge {
	if t.marked.isRetired(row, col) {
		return NoEdge
	}
	e := Top
	for i := 0; i < 4; i++ {
		if !t.marked.isMarked(row, col, uint8(edgeDirection[e])) &&
			isOutlineEdge(t.bm, row, col, e, c) {
			return e
		}
		e = e.Next()
	}
	return NoEdge
}

// trace builds one chain through the seed pixel (row, col).
func (t *centerlineTracer) trace(row, col int, c Color) PixelOutline {
	o := PixelOutline{Color: c}

	first, open := t.walk(row, col, East, c)
	if open {
		second, _ := t.walk(row, col, East.Opposite(), c)
		o.Points = make([]Point, 0, len(second)+len(first)-1)
		for i := len(second) - 1; i > 0; i-- {
			o.Append(second[i])
		}
		o.Points = append(o.Points, first...)
		o.Open = true
	} else {
		o.Points = first
	}

	if !t.isOpenJunction(row, col, c) {
		t.marked.retire(row, col)
	}
	return o
}

// walk steps from the seed (row, col) until it returns to the seed or runs
// out of unmarked connections. It returns the visited points starting with
// the seed and whether the chain was left open.
func (t *centerlineTracer) walk(row, col int, dir Direction, c Color) ([]Point, bool) {
	points := []Point{t.point(row, col)}
	r, cl := row, col
	for {
		d, ok := t.nextPixel(r, cl, dir, c)
		if !ok {
			t.leave(r, cl, row, col, c)
			return points, true
		}

		dr, dc := d.Delta()
		t.marked.mark(r, cl, uint8(d))
		t.marked.mark(r+dr, cl+dc, uint8(d.Opposite()))
		t.leave(r, cl, row, col, c)

		r, cl, dir = r+dr, cl+dc, d
		if r == row && cl == col {
			return points, false
		}
		points = append(points, t.point(r, cl))
	}
}

// leave retires (r, cl) unless it is the seed or a junction that still has
// branches to offer.
func (t *centerlineTracer) leave(r, cl, seedRow, seedCol int, c Color) {
	if r == seedRow && cl == seedCol {
		return
	}
	if !t.isOpenJunction(r, cl, c) {
		t.marked.retire(r, cl)
	}
}

// nextPixel returns the first direction, in search order around dir, that
// leads to an unconsumed neighbour of the same color.
func (t *centerlineTracer) nextPixel(row, col int, dir Direction, c Color) (Direction, bool) {
	for _, n := range searchOrder {
		if d := dir.Rotate(n); t.canStep(row, col, d, c) {
			return d, true
		}
	}
	return dir, false
}

// canStep reports whether the neighbour of (row, col) toward d has color c
// and the connection between the two is unmarked on both ends.
func (t *centerlineTracer) canStep(row, col int, d Direction, c Color) bool {
	dr, dc := d.Delta()
	r, cl := row+dr, col+dc
	return t.bm.sameColor(r, cl, c) &&
		!t.marked.isMarked(row, col, uint8(d)) &&
		!t.marked.isMarked(r, cl, uint8(d.Opposite()))
}

// isOpenJunction reports whether (row, col) has more than two neighbours of
// color c and more than one of them is still reachable.
func (t *centerlineTracer) isOpenJunction(row, col int, c Color) bool {
	var neighbours, open int
	for d := North; d <= NorthEast; d++ {
		dr, dc := d.Delta()
		if !t.bm.sameColor(row+dr, col+dc, c) {
			continue
		}
		neighbours++
		if t.canStep(row, col, d, c) {
			open++
		}
	}
	return neighbours > 2 && open > 1
}

func (t *centerlineTracer) point(row, col int) Point {
	return Point{X: col, Y: t.bm.Height - row - 1}
}
