package pixtrace

// Point is an integer coordinate in Cartesian orientation: x grows to the
// right and y grows upwards, so bitmap row 0 maps to the largest y.
type Point struct {
	X int
	Y int
}

// PixelOutline is an ordered chain of pixel coordinates describing one
// region boundary (outline mode) or one skeleton branch (centerline mode).
type PixelOutline struct {
	Points []Point
	// Clockwise is set for hole boundaries. Outer boundaries are
	// traced counterclockwise.
	Clockwise bool
	// Open is set for chains whose last point does not connect back to
	// the first one.
	Open  bool
	Color Color
}

// Append adds p to the end of the outline.
func (o *PixelOutline) Append(p Point) {
	o.Points = append(o.Points, p)
}

// Len returns the number of points in the outline.
func (o *PixelOutline) Len() int {
	return len(o.Points)
}

// Closed reports whether the outline forms a cycle.
func (o *PixelOutline) Closed() bool {
	return !o.Open
}

// PixelOutlineList holds the outlines of one trace in discovery order.
type PixelOutlineList struct {
	Outlines []PixelOutline
	// Cancelled is set when the scan was stopped before the last row,
	// leaving a partial list.
	Cancelled bool
}

// Append adds o to the end of the list.
func (l *PixelOutlineList) Append(o PixelOutline) {
	l.Outlines = append(l.Outlines, o)
}

// Len returns the number of outlines.
func (l *PixelOutlineList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Outlines)
}

// Unclosed counts the outlines flagged as open.
func (l *PixelOutlineList) Unclosed() int {
	if l == nil {
		return 0
	}
	var n int
	for i := range l.Outlines {
		if l.Outlines[i].Open {
			n++
		}
	}
	return n
}

// Free releases every outline's points and the list itself.
// It is safe to call on an empty or already freed list.
func (l *PixelOutlineList) Free() {
	if l == nil {
		return
	}
	for i := range l.Outlines {
		l.Outlines[i].Points = nil
	}
	l.Outlines = nil
}
