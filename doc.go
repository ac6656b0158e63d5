/*
Package pixtrace extracts the pixel outlines and the centerlines of the same
colored regions of a bitmap, the first stage of an image to vector converter.

Outline mode walks the pixel edges around every region and returns outer
boundaries counterclockwise and, when a background color is known, holes
clockwise. Centerline mode walks from pixel center to pixel center along
1 pixel wide skeletons. The resulting chains are handed to a curve fitter,
for example as a path:

	bm, err := pixtrace.BitmapFromImage(img, 3)
	if err != nil {
		return err
	}
	list, err := pixtrace.TraceOutlines(bm, &pixtrace.Color{R: 255, G: 255, B: 255}, nil)
	if err != nil {
		return err
	}
	fit(list.Path())

The package also provides a command line interface, which renders the traced
outlines back into an image. To check the supported commands type:

	$ pixtrace --help

In case you wish to run the whole pipeline from your own code:

	package main

	import (
		"fmt"
		"github.com/esimov/pixtrace"
	)

	func main() {
		p := &pixtrace.Processor{
			Background: "#ffffff",
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error tracing image: %s", err.Error())
		}
	}
*/
package pixtrace
