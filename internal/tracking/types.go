package tracking

import (
	"image"
	"math"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrEndOfStream is returned by a VideoSource that has no more frames.
	ErrEndOfStream = errors.New("end of stream")
	// ErrNoFrame means the first read of a session failed.
	ErrNoFrame            = errors.New("no frame could be read from the video source")
	ErrSelectionCancelled = errors.New("selection cancelled")
	ErrTrackerInit        = errors.New("could not initialize the tracker")
)

// noFrameError is ErrNoFrame carrying the source's own error.
type noFrameError struct {
	cause error
}

func (e *noFrameError) Error() string {
	return ErrNoFrame.Error() + ": " + e.cause.Error()
}

func (e *noFrameError) Is(target error) bool { return target == ErrNoFrame }

func (e *noFrameError) Unwrap() error { return e.cause }

func (e *noFrameError) Cause() error { return e.cause }

// Point is a sub-pixel position in frame coordinates.
type Point struct {
	X float64
	Y float64
}

// Round returns the integer pixel the cursor is moved to.
func (p Point) Round() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// TrackedPoint is the point the user clicked and the tracker follows.
type TrackedPoint struct {
	Point
	Selected bool
	Valid    bool
	Misses   int // consecutive frames the estimator reported failure
}

// CursorPosition holds one cursor move made during a session.
type CursorPosition struct {
	X       int
	Y       int
	Elapsed time.Duration // Time elapsed since the session started
}

// FlowResult is the outcome of one optical flow estimate.
type FlowResult struct {
	Point Point
	OK    bool
	Error float64
}

// Frame is an image handle owned by the loop for the iteration it was read in.
type Frame interface {
	Close() error
}

type VideoSource interface {
	// Read returns the next frame, or ErrEndOfStream when the source is exhausted.
	Read() (Frame, error)
	Close() error
}

type Converter interface {
	Grayscale(f Frame) (Frame, error)
}

type FlowEstimator interface {
	Estimate(prev, next Frame, p Point) (FlowResult, error)
}

// MouseEvent is a pointer event on the display. Display implementations
// translate their native event codes into these values.
type MouseEvent int

const (
	MouseMove MouseEvent = iota
	MouseLeftButtonDown
	MouseRightButtonDown
	MouseMiddleButtonDown
	MouseLeftButtonUp
)

type MouseHandler func(event MouseEvent, x, y int)

// Display is the window the video is shown in.
type Display interface {
	Open(onMouse MouseHandler) error
	DrawMarker(f Frame, at image.Point, radius int) error
	DrawBox(f Frame, box image.Rectangle) error
	Show(f Frame) error
	// PollKey waits up to wait for a key press and returns its code, or -1.
	PollKey(wait time.Duration) int
	Close() error
}

type ROISelector interface {
	SelectROI(f Frame) (image.Rectangle, error)
}

type BoxTracker interface {
	Init(f Frame, box image.Rectangle) bool
	Update(f Frame) (image.Rectangle, bool)
	Close() error
}

type Cursor interface {
	Location() (int, int)
	Move(x, y int)
}
