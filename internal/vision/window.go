package vision

import (
	"image"
	"image/color"
	"time"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/vedantwpatil/point-tracker/internal/tracking"
)

var (
	green = color.RGBA{0, 255, 0, 0}
	red   = color.RGBA{255, 0, 0, 0}
)

// Window is a highgui window. It must be used from the goroutine that runs the
// tracking loop.
type Window struct {
	name   string
	window *gocv.Window
}

func NewWindow(name string) *Window {
	return &Window{name: name}
}

func (w *Window) Open(onMouse tracking.MouseHandler) error {
	if w.window != nil {
		return errors.Errorf("window %q already open", w.name)
	}
	w.window = gocv.NewWindow(w.name)
	if onMouse != nil {
		w.window.SetMouseHandler(func(event, x, y, _ int, _ interface{}) {
			if e, ok := mouseEvent(event); ok {
				onMouse(e, x, y)
			}
		}, nil)
	}
	return nil
}

// highgui event codes, cv::MouseEventTypes
const (
	cvEventMouseMove   = 0
	cvEventLButtonDown = 1
	cvEventRButtonDown = 2
	cvEventMButtonDown = 3
	cvEventLButtonUp   = 4
)

func mouseEvent(code int) (tracking.MouseEvent, bool) {
	switch code {
	case cvEventMouseMove:
		return tracking.MouseMove, true
	case cvEventLButtonDown:
		return tracking.MouseLeftButtonDown, true
	case cvEventRButtonDown:
		return tracking.MouseRightButtonDown, true
	case cvEventMButtonDown:
		return tracking.MouseMiddleButtonDown, true
	case cvEventLButtonUp:
		return tracking.MouseLeftButtonUp, true
	}
	return 0, false
}

// DrawMarker draws a filled green dot.
func (w *Window) DrawMarker(f tracking.Frame, at image.Point, radius int) error {
	return w.drawMarker(f, at, radius, green)
}

func (w *Window) drawMarker(f tracking.Frame, at image.Point, radius int, c color.RGBA) error {
	m, err := asMat(f)
	if err != nil {
		return err
	}
	return errors.Wrap(gocv.Circle(&m.Mat, at, radius, c, -1), "failed to draw marker")
}

func (w *Window) DrawBox(f tracking.Frame, box image.Rectangle) error {
	m, err := asMat(f)
	if err != nil {
		return err
	}
	return errors.Wrap(gocv.Rectangle(&m.Mat, box, green, 2), "failed to draw box")
}

func (w *Window) Show(f tracking.Frame) error {
	m, err := asMat(f)
	if err != nil {
		return err
	}
	if w.window == nil {
		return errors.Errorf("window %q is not open", w.name)
	}
	return errors.Wrap(w.window.IMShow(m.Mat), "failed to show frame")
}

func (w *Window) PollKey(wait time.Duration) int {
	if w.window == nil {
		return -1
	}
	ms := int(wait / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	key := w.window.WaitKey(ms)
	if key < 0 {
		return -1
	}
	return key & 0xFF
}

// SelectROI lets the user drag a rectangle on f. An empty rectangle means the
// selection was cancelled.
func (w *Window) SelectROI(f tracking.Frame) (image.Rectangle, error) {
	m, err := asMat(f)
	if err != nil {
		return image.Rectangle{}, err
	}
	return gocv.SelectROI(w.name, m.Mat), nil
}

func (w *Window) Close() error {
	if w.window == nil {
		return nil
	}
	err := w.window.Close()
	w.window = nil
	return err
}

// BoxWindow shows the box tracker's center marker in red.
type BoxWindow struct {
	*Window
}

func (w BoxWindow) DrawMarker(f tracking.Frame, at image.Point, radius int) error {
	return w.drawMarker(f, at, radius, red)
}
