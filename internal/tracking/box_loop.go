package tracking

import (
	"context"
	"image"
	"log"
	"time"

	"github.com/pkg/errors"
)

type BoxLoopOptions struct {
	KeyWait      time.Duration
	ExitKey      int
	MarkerRadius int
}

// BoxLoop follows a user drawn rectangle with a visual tracker and moves the
// cursor onto the rectangle's center.
type BoxLoop struct {
	source   VideoSource
	display  Display
	selector ROISelector
	tracker  BoxTracker
	cursor   Cursor
	reporter Reporter
	logger   *log.Logger
	opts     BoxLoopOptions
}

// NewBoxLoop takes ownership of source and tracker; both are closed when Run returns.
func NewBoxLoop(source VideoSource, display Display, selector ROISelector, tracker BoxTracker, cursor Cursor, opts BoxLoopOptions) *BoxLoop {
	return &BoxLoop{
		source:   source,
		display:  display,
		selector: selector,
		tracker:  tracker,
		cursor:   cursor,
		logger:   log.Default(),
		opts:     opts,
	}
}

func (l *BoxLoop) SetReporter(r Reporter) { l.reporter = r }

func (l *BoxLoop) SetLogger(logger *log.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Center is the pixel the cursor is moved to for a tracked box.
func Center(box image.Rectangle) image.Point {
	return image.Pt(box.Min.X+box.Dx()/2, box.Min.Y+box.Dy()/2)
}

func (l *BoxLoop) Run(ctx context.Context) (*Session, error) {
	defer func() {
		if err := l.source.Close(); err != nil {
			l.logger.Printf("Failed to release video source: %v", err)
		}
		l.tracker.Close()
	}()

	first, err := l.source.Read()
	if err != nil {
		return nil, &noFrameError{cause: err}
	}

	if err := l.display.Open(nil); err != nil {
		first.Close()
		return nil, errors.Wrap(err, "failed to open display")
	}
	defer l.display.Close()

	box, err := l.selector.SelectROI(first)
	if err != nil {
		first.Close()
		return nil, errors.Wrap(err, "failed to select region")
	}
	if box.Empty() {
		first.Close()
		return nil, ErrSelectionCancelled
	}

	ok := l.tracker.Init(first, box)
	first.Close()
	if !ok {
		return nil, errors.Wrapf(ErrTrackerInit, "region %v", box)
	}

	session := newSession()
	if l.reporter != nil {
		defer l.reporter.Done()
	}
	l.logger.Printf("Session %s tracking region %v", session.ID, box)

	var current TrackedPoint
loop:
	for {
		select {
		case <-ctx.Done():
			session.Reason = StopCancelled
			break loop
		default:
		}

		frame, err := l.source.Read()
		if err != nil {
			if !errors.Is(err, ErrEndOfStream) {
				l.logger.Printf("Failed to read frame: %v", err)
			}
			session.Reason = StopEndOfStream
			break loop
		}
		session.Frames++

		stop, err := l.step(session, frame, &current)
		frame.Close()
		if err != nil {
			session.Final = current
			return session, err
		}
		if stop {
			session.Reason = StopExitKey
			break loop
		}
	}

	session.Final = current
	l.logger.Printf("Session %s stopped after %d frames: %s", session.ID, session.Frames, session.Reason)
	return session, nil
}

func (l *BoxLoop) step(session *Session, frame Frame, current *TrackedPoint) (bool, error) {
	box, ok := l.tracker.Update(frame)
	if ok {
		center := Center(box)
		if err := l.display.DrawBox(frame, box); err != nil {
			return false, errors.Wrap(err, "failed to draw box")
		}
		if err := l.display.DrawMarker(frame, center, l.opts.MarkerRadius); err != nil {
			return false, errors.Wrap(err, "failed to draw marker")
		}
		l.cursor.Move(center.X, center.Y)
		session.record(center.X, center.Y)
		*current = TrackedPoint{
			Point:    Point{X: float64(center.X), Y: float64(center.Y)},
			Selected: true,
			Valid:    true,
		}
	} else {
		current.Valid = false
		current.Misses++
	}

	if l.reporter != nil {
		l.reporter.Report(session.Frames, *current)
	}

	if err := l.display.Show(frame); err != nil {
		return false, errors.Wrap(err, "failed to show frame")
	}
	return l.display.PollKey(l.opts.KeyWait) == l.opts.ExitKey, nil
}
