package tracking

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
)

// LossPolicy decides what happens to the selected point when the estimator
// reports failure.
type LossPolicy int

const (
	// LossRetain keeps the last good point and submits it again on the next frame.
	LossRetain LossPolicy = iota
	// LossClear drops the selection so the user has to click again.
	LossClear
)

func ParseLossPolicy(s string) (LossPolicy, error) {
	switch s {
	case "retain", "":
		return LossRetain, nil
	case "clear":
		return LossClear, nil
	default:
		return LossRetain, errors.Errorf("unknown loss policy %q", s)
	}
}

type PointLoopOptions struct {
	KeyWait      time.Duration
	ExitKey      int
	MarkerRadius int
	LossPolicy   LossPolicy
}

// PointLoop follows a clicked point with optical flow and moves the cursor onto it.
type PointLoop struct {
	source    VideoSource
	converter Converter
	flow      FlowEstimator
	display   Display
	cursor    Cursor
	selection *Selection
	smoother  Smoother
	reporter  Reporter
	logger    *log.Logger
	opts      PointLoopOptions
}

func NewPointLoop(source VideoSource, converter Converter, flow FlowEstimator, display Display, cursor Cursor, opts PointLoopOptions) *PointLoop {
	return &PointLoop{
		source:    source,
		converter: converter,
		flow:      flow,
		display:   display,
		cursor:    cursor,
		selection: NewSelection(),
		smoother:  passthrough{},
		logger:    log.Default(),
		opts:      opts,
	}
}

func (l *PointLoop) SetSmoother(s Smoother) {
	if s == nil {
		s = passthrough{}
	}
	l.smoother = s
}

func (l *PointLoop) SetReporter(r Reporter) { l.reporter = r }

func (l *PointLoop) SetLogger(logger *log.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Selection is the state shared with the display's click handler.
func (l *PointLoop) Selection() *Selection {
	return l.selection
}

// Run blocks until the video source ends, the exit key is pressed or ctx is
// cancelled. The video source and the display are closed on every return path.
func (l *PointLoop) Run(ctx context.Context) (*Session, error) {
	defer l.closeSource()

	first, err := l.source.Read()
	if err != nil {
		return nil, &noFrameError{cause: err}
	}

	if err := l.display.Open(l.onMouse); err != nil {
		first.Close()
		return nil, errors.Wrap(err, "failed to open display")
	}
	defer l.display.Close()

	prevGray, err := l.converter.Grayscale(first)
	first.Close()
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert first frame")
	}
	defer func() {
		prevGray.Close()
	}()

	session := newSession()
	if l.reporter != nil {
		defer l.reporter.Done()
	}
	l.smoother.Reset()
	l.logger.Printf("Session %s started, click a point in the window to track it", session.ID)

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

		stop, err := l.step(session, frame, &prevGray)
		frame.Close()
		if err != nil {
			session.Final = l.selection.Snapshot()
			return session, err
		}
		if stop {
			session.Reason = StopExitKey
			break loop
		}
	}

	session.Final = l.selection.Snapshot()
	l.logger.Printf("Session %s stopped after %d frames: %s", session.ID, session.Frames, session.Reason)
	return session, nil
}

func (l *PointLoop) onMouse(event MouseEvent, x, y int) {
	l.selection.HandleMouse(event, x, y)
	if event == MouseLeftButtonDown {
		l.smoother.Reset()
		l.logger.Printf("Point selected: %d, %d", x, y)
	}
}

// step processes one frame and reports whether the exit key was pressed.
// On return *prevGray holds the grayscale copy of frame.
func (l *PointLoop) step(session *Session, frame Frame, prevGray *Frame) (bool, error) {
	gray, err := l.converter.Grayscale(frame)
	if err != nil {
		return false, errors.Wrap(err, "failed to convert frame")
	}

	if tp := l.selection.Snapshot(); tp.Selected {
		res, err := l.flow.Estimate(*prevGray, gray, tp.Point)
		if err != nil {
			gray.Close()
			return false, errors.Wrap(err, "optical flow failed")
		}

		if res.OK {
			l.selection.Update(res.Point)
			if err := l.display.DrawMarker(frame, res.Point.Round(), l.opts.MarkerRadius); err != nil {
				gray.Close()
				return false, errors.Wrap(err, "failed to draw marker")
			}
			at := l.smoother.Smooth(res.Point).Round()
			l.cursor.Move(at.X, at.Y)
			session.record(at.X, at.Y)
		} else {
			l.lost(tp)
		}
	}

	(*prevGray).Close()
	*prevGray = gray

	if l.reporter != nil {
		l.reporter.Report(session.Frames, l.selection.Snapshot())
	}

	if err := l.display.Show(frame); err != nil {
		return false, errors.Wrap(err, "failed to show frame")
	}
	if key := l.display.PollKey(l.opts.KeyWait); key == l.opts.ExitKey {
		l.selection.Clear()
		return true, nil
	}
	return false, nil
}

func (l *PointLoop) lost(tp TrackedPoint) {
	at := tp.Round()
	switch l.opts.LossPolicy {
	case LossClear:
		l.selection.Clear()
		l.smoother.Reset()
		l.logger.Printf("Lost track of point (%d, %d), click to select again", at.X, at.Y)
	default:
		if misses := l.selection.Miss(); misses == 1 {
			l.logger.Printf("Lost track of point (%d, %d), retrying from the last position", at.X, at.Y)
		}
	}
}

func (l *PointLoop) closeSource() {
	if err := l.source.Close(); err != nil {
		l.logger.Printf("Failed to release video source: %v", err)
	}
}
