package tracking

import (
	"fmt"
	"io"
	"time"
)

// Reporter receives per-frame progress from a loop.
type Reporter interface {
	Report(frame int, tp TrackedPoint)
	Done()
}

// StatusLine implements the Reporter interface on a single terminal line
type StatusLine struct {
	out        io.Writer
	label      string
	lastUpdate time.Time
	every      time.Duration
	frame      int
	point      TrackedPoint
}

func NewStatusLine(out io.Writer, label string) *StatusLine {
	return &StatusLine{
		out:   out,
		label: label,
		every: 100 * time.Millisecond,
	}
}

func (s *StatusLine) Report(frame int, tp TrackedPoint) {
	s.frame = frame
	s.point = tp

	// Only redraw if enough time has passed
	if time.Since(s.lastUpdate) < s.every {
		return
	}
	s.lastUpdate = time.Now()
	s.print()
}

func (s *StatusLine) print() {
	if !s.point.Selected {
		fmt.Fprintf(s.out, "\r%s frame %d waiting for a click", s.label, s.frame)
		return
	}
	at := s.point.Round()
	fmt.Fprintf(s.out, "\r%s frame %d point (%d, %d) misses %d",
		s.label, s.frame, at.X, at.Y, s.point.Misses)
}

func (s *StatusLine) Done() {
	s.print()
	fmt.Fprintln(s.out) // New line after completion
}
