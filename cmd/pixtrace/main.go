package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/esimov/pixtrace"
	"github.com/esimov/pixtrace/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┬─┐ ┬┌┬┐┬─┐┌─┐┌─┐┌─┐
├─┘│┌┴┬┘ │ ├┬┘├─┤│  ├┤
┴  ┴┴ └─ ┴ ┴└─┴ ┴└─┘└─┘

Pixel outline and centerline tracer.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

func main() {
	log.SetFlags(0)

	var (
		// Flags
		source      = flag.String("in", pipeName, "Source image, directory or URL")
		destination = flag.String("out", pipeName, "Destination image or directory")
		centerline  = flag.Bool("centerline", false, "Trace 1 pixel wide skeletons instead of outlines")
		background  = flag.String("bg", "", "Background color never traced, e.g. #ffffff")
		scale       = flag.Float64("scale", 1, "Resize the source by this factor before tracing")
		blurRadius  = flag.Float64("blur", 0, "Gaussian blur applied before tracing")
		threshold   = flag.Int("threshold", 0, "Reduce the image to black and white at this gray level (1-255)")
		levels      = flag.Int("levels", 0, "Posterize every channel to this many levels")
		grayscale   = flag.Bool("gray", false, "Convert the image to grayscale before tracing")
		overlay     = flag.Bool("overlay", false, "Draw the traced outlines over the source image")
		strokeColor = flag.String("color", "", "Paint every outline with this color")
		debug       = flag.Bool("debug", false, "Log tracing details to stderr")
		workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debug {
		pixtrace.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	// Nothing piped in and no source given.
	if *source == pipeName && term.IsTerminal(int(os.Stdin.Fd())) {
		flag.Usage()
		os.Exit(2)
	}

	proc := &pixtrace.Processor{
		Centerline:  *centerline,
		Background:  *background,
		Scale:       *scale,
		BlurRadius:  *blurRadius,
		Threshold:   *threshold,
		Levels:      *levels,
		Grayscale:   *grayscale,
		Overlay:     *overlay,
		StrokeColor: *strokeColor,
	}

	op := &pixtrace.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}

	if err := proc.Execute(op); err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("\nError: %v\n", err), utils.ErrorMessage))
	}
}
