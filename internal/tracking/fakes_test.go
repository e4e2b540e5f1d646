package tracking

import (
	"image"
	"time"

	"github.com/pkg/errors"
)

type fakeFrame struct {
	id     int
	gray   bool
	closed *int
}

func (f *fakeFrame) Close() error {
	*f.closed++
	return nil
}

// scriptedSource yields frames 0..count-1 and then ErrEndOfStream.
type scriptedSource struct {
	count   int
	readErr error
	next    int
	opened  int // frames handed out
	closed  int // Close calls on the source
	frames  int // Close calls on frames
}

func (s *scriptedSource) Read() (Frame, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	if s.next >= s.count {
		return nil, ErrEndOfStream
	}
	f := &fakeFrame{id: s.next, closed: &s.frames}
	s.next++
	s.opened++
	return f, nil
}

func (s *scriptedSource) Close() error {
	s.closed++
	return nil
}

type fakeConverter struct {
	calls  int
	opened int
	closed int
}

func (c *fakeConverter) Grayscale(f Frame) (Frame, error) {
	c.calls++
	c.opened++
	return &fakeFrame{id: f.(*fakeFrame).id, gray: true, closed: &c.closed}, nil
}

type flowCall struct {
	prev, next int
	point      Point
}

// stubFlow answers with fn and records every call.
type stubFlow struct {
	fn    func(call int, p Point) FlowResult
	calls []flowCall
}

func (s *stubFlow) Estimate(prev, next Frame, p Point) (FlowResult, error) {
	pf, nf := prev.(*fakeFrame), next.(*fakeFrame)
	if !pf.gray || !nf.gray {
		return FlowResult{}, errors.New("estimator needs grayscale frames")
	}
	s.calls = append(s.calls, flowCall{prev: pf.id, next: nf.id, point: p})
	return s.fn(len(s.calls), p), nil
}

// shiftRight moves the point one pixel to the right on every call.
func shiftRight(_ int, p Point) FlowResult {
	return FlowResult{Point: Point{X: p.X + 1, Y: p.Y}, OK: true}
}

type fakeDisplay struct {
	opened  bool
	closed  int
	onMouse MouseHandler
	// clickOnOpen fires a left click as soon as the window opens
	clickOnOpen *image.Point
	// clicks fires a left click during the poll with the given index (1-based)
	clicks  map[int]image.Point
	keys    map[int]int
	polls   int
	shows   int
	markers []image.Point
	boxes   []image.Rectangle
	roi     image.Rectangle
	roiErr  error
	showErr error
}

func (d *fakeDisplay) Open(onMouse MouseHandler) error {
	d.opened = true
	d.onMouse = onMouse
	if d.clickOnOpen != nil && onMouse != nil {
		onMouse(MouseLeftButtonDown, d.clickOnOpen.X, d.clickOnOpen.Y)
	}
	return nil
}

func (d *fakeDisplay) DrawMarker(_ Frame, at image.Point, _ int) error {
	d.markers = append(d.markers, at)
	return nil
}

func (d *fakeDisplay) DrawBox(_ Frame, box image.Rectangle) error {
	d.boxes = append(d.boxes, box)
	return nil
}

func (d *fakeDisplay) Show(Frame) error {
	d.shows++
	return d.showErr
}

func (d *fakeDisplay) PollKey(time.Duration) int {
	d.polls++
	if at, ok := d.clicks[d.polls]; ok && d.onMouse != nil {
		d.onMouse(MouseLeftButtonDown, at.X, at.Y)
	}
	if key, ok := d.keys[d.polls]; ok {
		return key
	}
	return -1
}

func (d *fakeDisplay) Close() error {
	d.closed++
	return nil
}

func (d *fakeDisplay) SelectROI(Frame) (image.Rectangle, error) {
	return d.roi, d.roiErr
}

func (d *fakeDisplay) touched() bool {
	return d.opened || d.shows > 0 || d.polls > 0 || len(d.markers) > 0
}

type fakeCursor struct {
	x, y  int
	moves []image.Point
}

func (c *fakeCursor) Location() (int, int) { return c.x, c.y }

func (c *fakeCursor) Move(x, y int) {
	c.x, c.y = x, y
	c.moves = append(c.moves, image.Pt(x, y))
}

// fakeBoxTracker shifts the initial box by step on every update and fails on
// the updates listed in fail.
type fakeBoxTracker struct {
	initOK  bool
	box     image.Rectangle
	step    image.Point
	fail    map[int]bool
	updates int
	closed  int
}

func (t *fakeBoxTracker) Init(_ Frame, box image.Rectangle) bool {
	t.box = box
	return t.initOK
}

func (t *fakeBoxTracker) Update(Frame) (image.Rectangle, bool) {
	t.updates++
	if t.fail[t.updates] {
		return image.Rectangle{}, false
	}
	t.box = t.box.Add(t.step)
	return t.box, true
}

func (t *fakeBoxTracker) Close() error {
	t.closed++
	return nil
}

type countingReporter struct {
	reports int
	done    int
}

func (r *countingReporter) Report(int, TrackedPoint) { r.reports++ }

func (r *countingReporter) Done() { r.done++ }
