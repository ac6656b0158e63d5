package pixtrace

// Edge is one side of a pixel. Edges are numbered counterclockwise so that
// Next rotates counterclockwise and Opposite is two steps away.
type Edge uint8

const (
	Right Edge = iota
	Top
	Left
	Bottom
	// NoEdge means there is no valid continuation.
	NoEdge
)

// Next returns the following edge in counterclockwise order.
func (e Edge) Next() Edge {
	if e == NoEdge {
		return NoEdge
	}
	return (e + 1) % 4
}

// Prev returns the following edge in clockwise order.
func (e Edge) Prev() Edge {
	if e == NoEdge {
		return NoEdge
	}
	return (e + 3) % 4
}

// Opposite returns the edge on the other side of the pixel.
func (e Edge) Opposite() Edge {
	if e == NoEdge {
		return NoEdge
	}
	return (e + 2) % 4
}

func (e Edge) String() string {
	switch e {
	case Right:
		return "right"
	case Top:
		return "top"
	case Left:
		return "left"
	case Bottom:
		return "bottom"
	default:
		return "none"
	}
}

// Direction is one of the eight compass directions, numbered counterclockwise
// starting at North.
type Direction uint8

const (
	North Direction = iota
	NorthWest
	West
	SouthWest
	South
	SouthEast
	East
	NorthEast
)

// Rotate returns the direction n steps counterclockwise from d.
// Negative values rotate clockwise.
func (d Direction) Rotate(n int) Direction {
	return Direction(((int(d)+n)%8 + 8) % 8)
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return d.Rotate(4)
}

// Delta returns the row and column step of d. Diagonal steps are the sum
// of the two orthogonal neighbours.
func (d Direction) Delta() (dr, dc int) {
	if d%2 != 0 {
		r0, c0 := d.Rotate(-1).Delta()
		r1, c1 := d.Rotate(1).Delta()
		return r0 + r1, c0 + c1
	}
	switch d {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 1
	}
}

// edgeDirection maps an edge to the orthogonal direction crossing it.
var edgeDirection = [4]Direction{
	Right:  East,
	Top:    North,
	Left:   West,
	Bottom: South,
}
