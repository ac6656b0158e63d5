package pixtrace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockwise(list *PixelOutlineList) []bool {
	cw := make([]bool, 0, list.Len())
	for _, o := range list.Outlines {
		cw = append(cw, o.Clockwise)
	}
	return cw
}

func TestOutline_Rectangle(t *testing.T) {
	assert := assert.New(t)

	bm := sketch(t,
		"###",
		"###",
	)
	list, err := TraceOutlines(bm, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())

	o := list.Outlines[0]
	assert.False(o.Clockwise)
	assert.True(o.Closed())
	assert.Equal(black, o.Color)
	assert.Equal([]Point{
		{0, 2}, {0, 1}, {0, 0}, {1, 0}, {2, 0},
		{3, 0}, {3, 1}, {3, 2}, {2, 2}, {1, 2},
	}, o.Points)
	assert.Equal(2*(bm.Width+bm.Height), o.Len())
}

func TestOutline_RectangleOnBackground(t *testing.T) {
	assert := assert.New(t)

	bm := sketch(t,
		".....",
		".###.",
		".###.",
		".....",
	)
	list, err := TraceOutlines(bm, &white, nil)
	require.NoError(t, err)
	assert.Equal([]int{10}, lengths(list))
	assert.Equal(black, list.Outlines[0].Color)

	// Without a background the surrounding white region is an outline too,
	// but its hole around the rectangle is not returned.
	list, err = TraceOutlines(bm, nil, nil)
	require.NoError(t, err)
	assert.Equal([]int{18, 10}, lengths(list))
	assert.Equal([]bool{false, false}, clockwise(list))
	assert.Equal(white, list.Outlines[0].Color)
}

func TestOutline_RingWithHole(t *testing.T) {
	assert := assert.New(t)

	bm := sketch(t,
		".....",
		".###.",
		".#.#.",
		".###.",
		".....",
	)
	list, err := TraceOutlines(bm, &white, nil)
	require.NoError(t, err)
	assert.Equal([]int{12, 4}, lengths(list))
	assert.Equal([]bool{false, true}, clockwise(list))
	assert.Equal(0, list.Unclosed())

	// The hole is reversed in the fill path, leaving the 8 ring pixels.
	assert.Equal(8.0, signedArea(list.Path()))
	assert.Equal(9.0, signedArea(list.Outlines[0].Path()))

	list, err = TraceOutlines(bm, nil, nil)
	require.NoError(t, err)
	assert.Equal([]int{20, 12, 4}, lengths(list))
	assert.Equal([]bool{false, false, false}, clockwise(list))
	assert.Equal([]Color{white, black, white}, []Color{
		list.Outlines[0].Color, list.Outlines[1].Color, list.Outlines[2].Color,
	})
}

func TestOutline_SinglePixel(t *testing.T) {
	assert := assert.New(t)

	bm := sketch(t,
		"....",
		".#..",
		"....",
		"....",
	)
	list, err := TraceOutlines(bm, &white, nil)
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())
	assert.Equal([]Point{{1, 3}, {1, 2}, {2, 2}, {2, 3}}, list.Outlines[0].Points)
	assert.True(list.Outlines[0].Closed())

	list, err = TraceOutlines(bm, nil, nil)
	require.NoError(t, err)
	assert.Equal([]int{16, 4}, lengths(list))
}

func TestOutline_DiagonalNeighbours(t *testing.T) {
	assert := assert.New(t)

	bm := sketch(t,
		"#.",
		".#",
	)
	list, err := TraceOutlines(bm, nil, nil)
	require.NoError(t, err)

	// The black pixels touch at a corner and share one outline; the white
	// ones may no longer cross that corner.
	assert.Equal([]int{8, 4, 4}, lengths(list))
	assert.Equal([]Point{
		{0, 2}, {0, 1}, {1, 1}, {1, 0},
		{2, 0}, {2, 1}, {1, 1}, {1, 2},
	}, list.Outlines[0].Points)

	list, err = TraceOutlines(bm, &white, nil)
	require.NoError(t, err)
	assert.Equal([]int{8}, lengths(list))
	assert.Equal(2.0, signedArea(list.Path()))
}

func TestOutline_EveryEdgeIsTracedOnce(t *testing.T) {
	assert := assert.New(t)

	bm := sketch(t,
		"..........",
		".####..rr.",
		".#..#..rr.",
		".####.....",
		"......##..",
		"..#....#..",
	)
	list, err := TraceOutlines(bm, &white, nil)
	require.NoError(t, err)

	assert.Equal([]int{14, 8, 6, 8, 4}, lengths(list))
	assert.Equal([]bool{false, false, true, false, false}, clockwise(list))
	assert.Equal(red, list.Outlines[1].Color)
	assert.Equal(0, list.Unclosed())

	var points int
	for _, o := range list.Outlines {
		points += o.Len()
	}
	assert.Equal(qualifyingEdges(bm, &white), points)

	// Run the scan again by hand to inspect the marking plane. Without a
	// background the hole walks are not returned but must still mark the
	// edges they pass.
	for _, bg := range []*Color{&white, nil} {
		tr := &outlineTracer{
			edgeWalker: edgeWalker{bm: bm, marked: newMarkedPlane(bm.Width, bm.Height)},
			bg:         bg,
			log:        Logger(),
		}
		list := &PixelOutlineList{}
		scan(bm, tr, nil, list)
		assert.Equal(0, list.Unclosed())

		for row := 0; row < bm.Height; row++ {
			for col := 0; col < bm.Width; col++ {
				c := bm.ColorAt(row, col)
				for e := Right; e < NoEdge; e++ {
					qualifies := !tr.isBackground(c) && isOutlineEdge(bm, row, col, e, c)
					assert.Equal(qualifies, tr.marked.isMarkedEdge(row, col, e),
						"(%d, %d) %s, background %v", row, col, e, bg != nil)
				}
			}
		}
	}
}

func TestOutline_DropsSingleEdgeWalks(t *testing.T) {
	bm := sketch(t,
		"#r#.",
		".#r#",
		"#r#.",
		"#r..",
	)
	for _, bg := range []*Color{&white, nil} {
		list, err := TraceOutlines(bm, bg, nil)
		require.NoError(t, err)
		require.NotZero(t, list.Len())
		for _, o := range list.Outlines {
			assert.Greater(t, o.Len(), 1, "background %v", bg != nil)
		}
	}
}

func TestOutline_GrayBitmap(t *testing.T) {
	bm, err := NewBitmap(3, 3, 1)
	require.NoError(t, err)
	for i := range bm.Pix {
		bm.Pix[i] = 0xff
	}
	bm.Pix[4] = 0x80

	bg := Gray(0xff)
	list, err := TraceOutlines(bm, &bg, nil)
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())
	assert.Equal(t, Gray(0x80), list.Outlines[0].Color)
	assert.Equal(t, 4, list.Outlines[0].Len())
}

func TestOutline_Cancel(t *testing.T) {
	assert := assert.New(t)

	bm, err := NewBitmap(3, 10, 3)
	require.NoError(t, err)
	for row := 0; row < bm.Height; row++ {
		for col := 0; col < bm.Width; col++ {
			bm.SetColor(row, col, white)
		}
		if row%2 == 0 {
			bm.SetColor(row, 1, black)
		}
	}

	var (
		rows     int
		progress []float64
	)
	opts := &TraceOptions{
		Progress: func(f float64) { progress = append(progress, f) },
		Cancel: func() bool {
			rows++
			return rows == 5
		},
	}
	list, err := TraceOutlines(bm, &white, opts)
	require.NoError(t, err)

	// Rows 0 to 4 were scanned, holding the pixels of rows 0, 2 and 4.
	assert.Equal(3, list.Len())
	assert.Equal(5, rows)
	assert.Equal([]float64{0.1, 0.2, 0.3, 0.4, 0.5}, progress)
	assert.Equal(0, list.Unclosed())
	assert.True(list.Cancelled)

	list, err = TraceOutlines(bm, &white, &TraceOptions{})
	require.NoError(t, err)
	assert.Equal(5, list.Len())
	assert.False(list.Cancelled)

	// The predicate is not consulted once the last row is done.
	rows = 0
	list, err = TraceOutlines(bm, &white, &TraceOptions{Cancel: func() bool {
		rows++
		return rows == bm.Height
	}})
	require.NoError(t, err)
	assert.Equal(bm.Height-1, rows)
	assert.Equal(5, list.Len())
	assert.False(list.Cancelled)
}

func TestOutline_OpenWalk(t *testing.T) {
	assert := assert.New(t)

	bm := sketch(t, "###")
	tr := &outlineTracer{
		edgeWalker: edgeWalker{bm: bm, marked: newMarkedPlane(bm.Width, bm.Height)},
		log:        Logger(),
	}
	// A stray mark cuts the boundary short.
	tr.marked.markEdge(0, 1, Bottom)

	o := tr.walk(0, 0, Top, false, false)
	assert.True(o.Open)
	assert.Equal(3, o.Len())

	tr.marked = newMarkedPlane(bm.Width, bm.Height)
	o = tr.walk(0, 0, Top, false, false)
	assert.False(o.Open)
	assert.Equal(8, o.Len())
}

func TestOutline_InvalidBitmap(t *testing.T) {
	cases := map[string]*Bitmap{
		"nil":          nil,
		"planes":       {Width: 1, Height: 1, Planes: 2, Pix: make([]uint8, 2)},
		"negative":     {Width: -1, Height: 1, Planes: 1},
		"short buffer": {Width: 2, Height: 2, Planes: 3, Pix: make([]uint8, 11)},
	}
	for name, bm := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := TraceOutlines(bm, nil, nil)
			assert.True(t, errors.Is(err, ErrInvalidBitmap), "got %v", err)

			_, err = TraceCenterlines(bm, white, nil)
			assert.True(t, errors.Is(err, ErrInvalidBitmap), "got %v", err)
		})
	}

	_, err := NewBitmap(1<<16, 1<<15, 1)
	assert.True(t, errors.Is(err, ErrBitmapTooLarge), "got %v", err)
}

func TestOutline_EmptyBitmap(t *testing.T) {
	bm, err := NewBitmap(0, 0, 3)
	require.NoError(t, err)

	list, err := TraceOutlines(bm, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Len())
}

func TestOutlineList_Free(t *testing.T) {
	assert := assert.New(t)

	var list *PixelOutlineList
	assert.NotPanics(func() { list.Free() })
	assert.Equal(0, list.Len())
	assert.Equal(0, list.Unclosed())

	list = &PixelOutlineList{}
	list.Append(PixelOutline{Points: []Point{{1, 2}}, Open: true})
	list.Append(PixelOutline{Points: []Point{{3, 4}}})
	assert.Equal(2, list.Len())
	assert.Equal(1, list.Unclosed())

	list.Free()
	assert.Equal(0, list.Len())
	assert.NotPanics(func() { list.Free() })
}
