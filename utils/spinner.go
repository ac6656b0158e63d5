package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Spinner initializes the progress indicator.
type Spinner struct {
	mu         *sync.RWMutex
	delay      time.Duration
	writer     io.Writer
	message    string
	lastOutput string
	progress   float64
	hideCursor bool
	// active counts the Start calls not yet matched by a Stop.
	active   int
	stopChan chan struct{}
}

// NewSpinner instantiates a new progress indicator.
func NewSpinner(msg string, d time.Duration, hideCursor bool) *Spinner {
	return &Spinner{
		mu:         &sync.RWMutex{},
		delay:      d,
		writer:     os.Stderr,
		message:    msg,
		progress:   -1,
		hideCursor: hideCursor,
	}
}

// SetWriter redirects the spinner output.
func (s *Spinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer = w
}

// SetProgress shows fraction, a value in [0, 1], as a percentage next to
// the spinner. A negative value hides it.
func (s *Spinner) SetProgress(fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = Min(fraction, 1)
}

// Start starts the progress indicator. Concurrent jobs may share one
// spinner: each of them calls Start and later Stop, and the indicator
// runs until the last one has stopped.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.active++
	if s.active > 1 {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	s.stopChan = stop
	if s.hideCursor && runtime.GOOS != "windows" {
		// hides the cursor
		fmt.Fprint(s.writer, "\033[?25l")
	}
	s.mu.Unlock()

	go func() {
		for {
			for _, r := range `⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏` {
				select {
				case <-stop:
					return
				default:
					s.mu.Lock()
					select {
					case <-stop:
						s.mu.Unlock()
						return
					default:
					}
					s.render(r)
					s.mu.Unlock()
					time.Sleep(s.delay)
				}
			}
		}
	}()
}

// render draws one frame. Caller must hold the locker.
func (s *Spinner) render(r rune) {
	output := fmt.Sprintf("\r%s%s %c%s", s.message, SuccessColor, r, DefaultColor)
	if s.progress >= 0 {
		output += fmt.Sprintf(" %3.0f%%", s.progress*100)
	}
	fmt.Fprint(s.writer, output)
	s.lastOutput = output
}

// Stop ends one job started by Start and prints msg in place of the
// indicator. The indicator keeps going on the next line while other jobs
// are still running.
func (s *Spinner) Stop(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == 0 {
		return
	}
	s.active--
	s.clear()
	if s.active > 0 {
		if len(msg) > 0 {
			fmt.Fprintln(s.writer, msg)
		}
		return
	}
	s.restoreCursor()
	if len(msg) > 0 {
		fmt.Fprint(s.writer, msg)
	}
	s.progress = -1
	close(s.stopChan)
}

// Running reports whether any job started by Start is still running.
func (s *Spinner) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active > 0
}

// RestoreCursor restores back the cursor visibility.
func (s *Spinner) RestoreCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreCursor()
}

func (s *Spinner) restoreCursor() {
	if s.hideCursor && runtime.GOOS != "windows" {
		// makes the cursor visible
		fmt.Fprint(s.writer, "\033[?25h")
	}
}

// clear deletes the last line. Caller must hold the the locker.
func (s *Spinner) clear() {
	n := utf8.RuneCountInString(s.lastOutput)
	if runtime.GOOS == "windows" {
		clearString := "\r" + strings.Repeat(" ", n) + "\r"
		fmt.Fprint(s.writer, clearString)
		s.lastOutput = ""
		return
	}
	for _, c := range []string{"\b", "\127", "\b", "\033[K"} { // "\033[K" for macOS Terminal
		fmt.Fprint(s.writer, strings.Repeat(c, n))
	}
	fmt.Fprint(s.writer, "\r\033[K") // clear line
	s.lastOutput = ""
}
