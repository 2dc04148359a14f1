package spinner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, "Generating candidates")
	s.delay = 10 * time.Millisecond

	if s.IsActive() {
		t.Error("Spinner should not be active initially")
	}

	s.Start(context.Background())
	if !s.IsActive() {
		t.Error("Spinner should be active after Start()")
	}

	time.Sleep(60 * time.Millisecond)
	s.Stop()

	if s.IsActive() {
		t.Error("Spinner should not be active after Stop()")
	}

	output := buf.String()
	if !strings.Contains(output, "Generating candidates") {
		t.Errorf("label missing from output %q", output)
	}
	hasFrame := false
	for _, frame := range frames {
		hasFrame = hasFrame || strings.Contains(output, frame)
	}
	if !hasFrame {
		t.Error("Expected spinner frames in output")
	}
	// a bytes.Buffer is not a terminal, so Stop only returns the carriage
	if !strings.HasSuffix(output, "\r") {
		t.Error("Expected output to end with carriage return")
	}
}

func TestSpinnerLine(t *testing.T) {
	s := New(&bytes.Buffer{}, "Generating candidates")

	if got := s.line("◜"); got != "\r◜ Generating candidates" {
		t.Errorf("line() without progress = %q", got)
	}

	s.Update(2, 3)
	if got := s.line("◠"); got != "\r◠ Generating candidates (2/3)" {
		t.Errorf("line() with progress = %q", got)
	}

	s.SetLabel("Scoring")
	if got := s.line("◝"); got != "\r◝ Scoring (2/3)" {
		t.Errorf("line() after SetLabel = %q", got)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, "Working")
	s.delay = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	// Stop must still return once the goroutine has exited on its own
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return after context cancellation")
	}
}

func TestSpinnerRepeatedCalls(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, "Testing")

	// stop without start is a no-op
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("Stop() without Start() wrote %q", buf.String())
	}

	s.Start(context.Background())
	s.Start(context.Background())
	if !s.IsActive() {
		t.Error("Spinner should still be active after second Start()")
	}

	s.Stop()
	s.Stop()
	if s.IsActive() {
		t.Error("Spinner should not be active after Stop()")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
