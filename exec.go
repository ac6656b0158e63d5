package pixtrace

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/esimov/pixtrace/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

var (
	// srcExtensions lists the decodable input files.
	srcExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}
	// dstExtensions lists the encodable output files.
	dstExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}
)

// Ops holds the command line level options of a run.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int

	spinner   *utils.Spinner
	cancelled atomic.Bool
	// download holds the temporary copy of a remote source image.
	download *os.File
}

// result holds the relevant information about the tracing process and the generated image.
type result struct {
	path   string
	report *Report
	err    error
}

// Execute traces the source file, pipe, URL or directory into the destination.
// The first interrupt signal cancels the running traces, whose partial result
// is still written out; a second one exits immediately.
func (p *Processor) Execute(op *Ops) error {
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ PIXTRACE", utils.StatusMessage),
		utils.DecorateText("⇢ tracing image...", utils.DefaultMessage),
	)
	op.spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)

	// The hooks are bound to this run, so they go on a copy.
	proc := *p
	proc.Cancel = func() bool {
		return op.cancelled.Load() || (p.Cancel != nil && p.Cancel())
	}

	stop := op.watchSignals()
	defer stop()

	var (
		fs  os.FileInfo
		err error
	)
	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		op.download, err = utils.DownloadImage(op.Src)
		if op.download != nil {
			defer os.Remove(op.download.Name())
			defer op.download.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		fs, err = op.download.Stat()
	} else if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return fmt.Errorf("unable to create the destination directory: %w", err)
		}

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		// Process recursively the image files from the specified directory concurrently.
		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, srcExtensions)

		var wg sync.WaitGroup
		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(&proc, op.Dst, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		var failed int
		for res := range ch {
			if res.err != nil {
				failed++
			}
			op.printOpStatus(res.path, res.report, res.err)
		}

		if err := <-errc; err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d image(s) could not be traced", failed)
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		// Only a single trace may drive the percentage shown by the spinner.
		if proc.Progress == nil {
			proc.Progress = op.spinner.SetProgress
		}

		ext := strings.ToLower(filepath.Ext(op.Dst))
		if !utils.Contains(dstExtensions, ext) && op.Dst != op.PipeName {
			return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
		}

		report, err := op.process(&proc, op.Src, op.Dst)
		op.printOpStatus(op.Dst, report, err)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported source %q", op.Src)
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// watchSignals turns the first interrupt into a cooperative cancellation.
// The returned function stops watching.
func (op *Ops) watchSignals() func() {
	signalChan := make(chan os.Signal, 2)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	quit := make(chan struct{})

	go func() {
		for {
			select {
			case <-signalChan:
				if op.cancelled.Swap(true) {
					op.spinner.RestoreCursor()
					os.Exit(1)
				}
			case <-quit:
				return
			}
		}
	}()

	return func() {
		signal.Stop(signalChan)
		close(quit)
	}
}

// consumer reads the path names from the paths channel and calls the tracer against the source image.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		r := result{path: src}
		if op.cancelled.Load() {
			r.err = errors.New("skipped, the run was interrupted")
		} else {
			r.report, r.err = op.process(p, src, destPath(dest, src))
		}

		select {
		case <-done:
			return
		case res <- r:
		}
	}
}

// destPath returns the output file of src inside the dest directory.
// Formats that cannot be encoded are written as PNG.
func destPath(dest, src string) string {
	name := filepath.Base(src)
	ext := filepath.Ext(name)
	if !utils.Contains(dstExtensions, strings.ToLower(ext)) {
		name = strings.TrimSuffix(name, ext) + ".png"
	}
	return filepath.Join(dest, name)
}

// process calls the tracer over the source image and returns the error in case exists.
func (op *Ops) process(p *Processor, in, out string) (*Report, error) {
	successMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ PIXTRACE", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been traced successfully ✔", utils.SuccessMessage),
	)
	errorMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ PIXTRACE", utils.StatusMessage),
		utils.DecorateText("tracing image failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return nil, err
	}
	defer closeFile(src)
	defer closeFile(dst)

	// Start the progress indicator.
	op.spinner.Start()

	report, err := p.Run(src, dst)
	if err != nil {
		// remove the generated image file in case of an error
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			os.Remove(f.Name())
		}
		op.spinner.Stop(errorMsg)
		return nil, err
	}

	op.spinner.Stop(successMsg)
	return report, nil
}

func closeFile(v any) {
	f, ok := v.(*os.File)
	if !ok || f == os.Stdin || f == os.Stdout {
		return
	}
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		log.Printf("could not close the opened file: %v", err)
	}
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source path is a local image or URL.
	if utils.IsValidUrl(in) && op.download != nil {
		src = op.download
	} else if in == op.PipeName {
		// Check if the source is a pipe name or a regular file.
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			closeFile(src)
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			closeFile(src)
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the tracing process.
func (op *Ops) printOpStatus(fname string, report *Report, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s%s",
			utils.DecorateText(fmt.Sprintf("\nError tracing %s", filepath.Base(fname)), utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
		return
	}
	if report != nil {
		msg := fmt.Sprintf("\n%dx%d px, %d outline(s)", report.Width, report.Height, report.Outlines)
		if report.Unclosed > 0 {
			msg += fmt.Sprintf(", %d open", report.Unclosed)
		}
		fmt.Fprint(os.Stderr, utils.DecorateText(msg, utils.StatusMessage))
		if report.Cancelled {
			fmt.Fprint(os.Stderr, utils.DecorateText(" (interrupted, partial result)", utils.WarningMessage))
		}
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe traced image has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !utils.Contains(srcExts, strings.ToLower(filepath.Ext(f.Name()))) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
