package pixtrace

import (
	"testing"

	"seehuhn.de/go/geom/path"
)

var (
	black = Color{}
	red   = Color{R: 0xff}
	blue  = Color{B: 0xff}
)

// inks maps the runes of a bitmap sketch to colors.
var inks = map[rune]Color{
	'.': white,
	'#': black,
	'r': red,
	'b': blue,
}

// sketch builds an RGB bitmap from rows of ink runes.
func sketch(t testing.TB, rows ...string) *Bitmap {
	t.Helper()
	bm, err := NewBitmap(len(rows[0]), len(rows), 3)
	if err != nil {
		t.Fatalf("could not allocate bitmap: %v", err)
	}
	for row, s := range rows {
		if len(s) != bm.Width {
			t.Fatalf("row %d has %d pixels, want %d", row, len(s), bm.Width)
		}
		for col, r := range s {
			c, ok := inks[r]
			if !ok {
				t.Fatalf("unknown pixel %q", r)
			}
			bm.SetColor(row, col, c)
		}
	}
	return bm
}

func lengths(list *PixelOutlineList) []int {
	n := make([]int, 0, list.Len())
	for _, o := range list.Outlines {
		n = append(n, o.Len())
	}
	return n
}

// qualifyingEdges counts the edges of every pixel not of color bg that
// separate it from a different color or the image border.
func qualifyingEdges(bm *Bitmap, bg *Color) int {
	var n int
	for row := 0; row < bm.Height; row++ {
		for col := 0; col < bm.Width; col++ {
			c := bm.ColorAt(row, col)
			if bg != nil && c.Equal(*bg) {
				continue
			}
			for e := Right; e < NoEdge; e++ {
				if isOutlineEdge(bm, row, col, e, c) {
					n++
				}
			}
		}
	}
	return n
}

// signedArea sums the shoelace areas of every subpath of p.
func signedArea(p *path.Data) float64 {
	var (
		area       float64
		start, cur [2]float64
	)
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			area += cur[0]*start[1] - start[0]*cur[1]
			start = [2]float64{p.Coords[i].X, p.Coords[i].Y}
			cur = start
			i++
		case path.CmdLineTo:
			next := [2]float64{p.Coords[i].X, p.Coords[i].Y}
			area += cur[0]*next[1] - next[0]*cur[1]
			cur = next
			i++
		}
	}
	area += cur[0]*start[1] - start[0]*cur[1]
	return area / 2
}
