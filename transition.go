package pixtrace

// step addresses an edge of a pixel relative to the pixel being walked.
type step struct {
	dr, dc int
	edge   Edge
}

// transition lists the candidate moves leaving one edge, in the order they
// are tried. Each candidate must land on an unmarked edge that separates
// the walked color from a different color or the image border.
type transition struct {
	// straight continues along the neighbour sharing the edge orientation.
	straight step
	// diagonal crosses the shared corner onto the diagonal neighbour.
	diagonal step
	// guards describe the opposite reading of the corner, where the two
	// other pixels touching it are the connected ones. The diagonal move
	// is refused when both edges of either pair are already marked.
	guards [2][2]step
	// turn rotates in place on the current pixel.
	turn Edge
}

// Counterclockwise walks keep the region on their left: top edges are
// walked westwards, left edges southwards, bottom edges eastwards and
// right edges northwards.
var ccwTransitions = [4]transition{
	Top: {
		straight: step{0, -1, Top},
		diagonal: step{-1, -1, Right},
		guards: [2][2]step{
			{{0, -1, Right}, {-1, 0, Bottom}},
			{{-1, 0, Left}, {0, -1, Top}},
		},
		turn: Left,
	},
	Left: {
		straight: step{1, 0, Left},
		diagonal: step{1, -1, Top},
		guards: [2][2]step{
			{{1, 0, Top}, {0, -1, Right}},
			{{0, -1, Bottom}, {1, 0, Left}},
		},
		turn: Bottom,
	},
	Bottom: {
		straight: step{0, 1, Bottom},
		diagonal: step{1, 1, Left},
		guards: [2][2]step{
			{{0, 1, Left}, {1, 0, Top}},
			{{1, 0, Right}, {0, 1, Bottom}},
		},
		turn: Right,
	},
	Right: {
		straight: step{-1, 0, Right},
		diagonal: step{-1, 1, Bottom},
		guards: [2][2]step{
			{{-1, 0, Bottom}, {0, 1, Left}},
			{{0, 1, Top}, {-1, 0, Right}},
		},
		turn: Top,
	},
}

// Clockwise walks keep the region on their right and mirror the table
// above: top edges are walked eastwards, left edges northwards, bottom
// edges westwards and right edges southwards.
var cwTransitions = [4]transition{
	Top: {
		straight: step{0, 1, Top},
		diagonal: step{-1, 1, Left},
		guards: [2][2]step{
			{{0, 1, Left}, {-1, 0, Bottom}},
			{{-1, 0, Right}, {0, 1, Top}},
		},
		turn: Right,
	},
	Left: {
		straight: step{-1, 0, Left},
		diagonal: step{-1, -1, Bottom},
		guards: [2][2]step{
			{{-1, 0, Bottom}, {0, -1, Right}},
			{{0, -1, Top}, {-1, 0, Left}},
		},
		turn: Top,
	},
	Bottom: {
		straight: step{0, -1, Bottom},
		diagonal: step{1, -1, Right},
		guards: [2][2]step{
			{{0, -1, Right}, {1, 0, Top}},
			{{1, 0, Left}, {0, -1, Bottom}},
		},
		turn: Left,
	},
	Right: {
		straight: step{1, 0, Right},
		diagonal: step{1, 1, Top},
		guards: [2][2]step{
			{{1, 0, Top}, {0, 1, Left}},
			{{0, 1, Bottom}, {1, 0, Right}},
		},
		turn: Bottom,
	},
}

// lookupTransition returns the candidate moves for edge e.
func lookupTransition(e Edge, clockwise bool) transition {
	if clockwise {
		return cwTransitions[e]
	}
	return ccwTransitions[e]
}

// isOutlineEdge reports whether edge e of (row, col) separates a pixel of
// color c from a differently colored pixel or from the image border.
func isOutlineEdge(bm *Bitmap, row, col int, e Edge, c Color) bool {
	if !bm.sameColor(row, col, c) {
		return false
	}
	switch e {
	case Top:
		return row == 0 || !bm.ColorAt(row-1, col).Equal(c)
	case Left:
		return col == 0 || !bm.ColorAt(row, col-1).Equal(c)
	case Bottom:
		return row == bm.Height-1 || !bm.ColorAt(row+1, col).Equal(c)
	case Right:
		return col == bm.Width-1 || !bm.ColorAt(row, col+1).Equal(c)
	}
	return false
}

// edgeWalker evaluates transitions against a bitmap and its marking plane.
type edgeWalker struct {
	bm     *Bitmap
	marked *markedPlane
}

func (w *edgeWalker) isUnmarkedOutlineEdge(row, col int, e Edge, c Color) bool {
	return w.bm.inside(row, col) &&
		!w.marked.isMarkedEdge(row, col, e) &&
		isOutlineEdge(w.bm, row, col, e, c)
}

// markedAt reports whether the edge addressed by s relative to (row, col)
// exists and has been marked.
func (w *edgeWalker) markedAt(row, col int, s step) bool {
	r, c := row+s.dr, col+s.dc
	return w.bm.inside(r, c) && w.marked.isMarkedEdge(r, c, s.edge)
}

// next returns the edge following edge e of pixel (row, col) on a walk
// around color c, or NoEdge when the walk cannot continue.
func (w *edgeWalker) next(row, col int, e Edge, c Color, clockwise bool) (int, int, Edge) {
	return w.nextWith(row, col, e, c, clockwise, w.isUnmarkedOutlineEdge)
}

func (w *edgeWalker) nextWith(
	row, col int,
	e Edge,
	c Color,
	clockwise bool,
	accept func(row, col int, e Edge, c Color) bool,
) (int, int, Edge) {
	if e == NoEdge {
		return row, col, NoEdge
	}
	t := lookupTransition(e, clockwise)

	s := t.straight
	if accept(row+s.dr, col+s.dc, s.edge, c) {
		return row + s.dr, col + s.dc, s.edge
	}

	s = t.diagonal
	if accept(row+s.dr, col+s.dc, s.edge, c) && !w.cornerTaken(row, col, t) {
		return row + s.dr, col + s.dc, s.edge
	}

	if accept(row, col, t.turn, c) {
		return row, col, t.turn
	}
	return row, col, NoEdge
}

// cornerTaken reports whether an earlier walk already connected the two
// other pixels meeting at the corner ahead.
func (w *edgeWalker) cornerTaken(row, col int, t transition) bool {
	for _, g := range t.guards {
		if w.markedAt(row, col, g[0]) && w.markedAt(row, col, g[1]) {
			return true
		}
	}
	return false
}
