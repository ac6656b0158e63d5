package pixtrace

// TraceOptions holds the cooperative checkpoints of a trace. Both hooks are
// invoked once per bitmap row, never inside a walk.
type TraceOptions struct {
	// Progress receives the fraction of rows scanned so far.
	Progress func(fraction float64)
	// Cancel is polled after each row but the last. Returning true stops
	// the scan and the outlines completed so far are returned, flagged as
	// Cancelled.
	Cancel func() bool
}

// pixelTracer seeds and walks every trace rooted at one pixel. Outline and
// centerline mode implement it; scan drives both.
type pixelTracer interface {
	traceAt(row, col int, list *PixelOutlineList)
}

// scan visits the bitmap row by row and records on list whether it was
// cancelled.
func scan(bm *Bitmap, t pixelTracer, opts *TraceOptions, list *PixelOutlineList) bool {
	var progress func(float64)
	var cancel func() bool
	if opts != nil {
		progress, cancel = opts.Progress, opts.Cancel
	}

	for row := 0; row < bm.Height; row++ {
		for col := 0; col < bm.Width; col++ {
			t.traceAt(row, col, list)
		}
		if progress != nil {
			progress(float64(row+1) / float64(bm.Height))
		}
		// A completed scan is never reported as cancelled.
		if cancel != nil && row+1 < bm.Height && cancel() {
			list.Cancelled = true
			return true
		}
	}
	return false
}

// prepare validates bm and allocates the marking plane for it.
func prepare(bm *Bitmap) (*markedPlane, error) {
	if err := bm.Validate(); err != nil {
		return nil, err
	}
	return newMarkedPlane(bm.Width, bm.Height), nil
}
