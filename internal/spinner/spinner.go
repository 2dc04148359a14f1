// Package spinner draws a one-line progress indicator on stderr while completions run.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

var frames = []string{"◜", "◠", "◝", "◞", "◡", "◟"}

const frameDelay = 100 * time.Millisecond

// Spinner shows a label, an animated frame, and an optional done/total count.
type Spinner struct {
	writer io.Writer
	delay  time.Duration

	mu     sync.Mutex
	label  string
	done   int
	total  int
	active bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a stopped spinner writing to w.
func New(w io.Writer, label string) *Spinner {
	return &Spinner{writer: w, delay: frameDelay, label: label}
}

// Start animates until Stop is called or ctx is done.
func (s *Spinner) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return
	}
	s.active = true

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()

	if IsTerminal(s.writer) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// IsActive reports whether the spinner is animating.
func (s *Spinner) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Update records progress; its signature matches rewrite.Config.Progress.
func (s *Spinner) Update(done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done, s.total = done, total
}

// SetLabel replaces the label.
func (s *Spinner) SetLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
}

// line renders the current state with the given frame.
func (s *Spinner) line(frame string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.total > 0 {
		return fmt.Sprintf("\r%s %s (%d/%d)", frame, s.label, s.done, s.total)
	}
	return fmt.Sprintf("\r%s %s", frame, s.label)
}

func (s *Spinner) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(s.writer, s.line(frames[i%len(frames)]))
		}
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
