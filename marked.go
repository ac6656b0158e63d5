package pixtrace

// retired is the mark value of a pixel that may not be entered again.
const retired = 0xff

// markedPlane records which edges (outline mode) or which neighbour
// connections (centerline mode) have been consumed. It is a flat grid
// parallel to the bitmap, indexed by row*width+col.
type markedPlane struct {
	width  int
	height int
	bits   []uint8
}

func newMarkedPlane(width, height int) *markedPlane {
	return &markedPlane{
		width:  width,
		height: height,
		bits:   make([]uint8, width*height),
	}
}

func (m *markedPlane) isMarked(row, col int, bit uint8) bool {
	return m.bits[row*m.width+col]&(1<<bit) != 0
}

func (m *markedPlane) mark(row, col int, bit uint8) {
	m.bits[row*m.width+col] |= 1 << bit
}

func (m *markedPlane) isMarkedEdge(row, col int, e Edge) bool {
	return m.isMarked(row, col, uint8(e))
}

func (m *markedPlane) markEdge(row, col int, e Edge) {
	m.mark(row, col, uint8(e))
}

// retire marks every edge and connection of the pixel.
func (m *markedPlane) retire(row, col int) {
	m.bits[row*m.width+col] = retired
}

func (m *markedPlane) isRetired(row, col int) bool {
	return m.bits[row*m.width+col] == retired
}
