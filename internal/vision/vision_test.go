package vision

import (
	"image"
	"testing"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/vedantwpatil/point-tracker/internal/tracking"
)

type otherFrame struct{}

func (otherFrame) Close() error { return nil }

func TestMouseEventCodes(t *testing.T) {
	tests := []struct {
		code int
		want tracking.MouseEvent
		ok   bool
	}{
		{0, tracking.MouseMove, true},
		{1, tracking.MouseLeftButtonDown, true},
		{2, tracking.MouseRightButtonDown, true},
		{3, tracking.MouseMiddleButtonDown, true},
		{4, tracking.MouseLeftButtonUp, true},
		{5, 0, false},  // right button up
		{10, 0, false}, // wheel
	}
	for _, tt := range tests {
		got, ok := mouseEvent(tt.code)
		if ok != tt.ok || got != tt.want {
			t.Errorf("mouseEvent(%d) = %v, %v, want %v, %v", tt.code, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGrayscale(t *testing.T) {
	lk := NewLucasKanade(15, 2, 10, 0.03)
	src := NewMat(gocv.NewMatWithSize(8, 8, gocv.MatTypeCV8UC3))
	defer src.Close()

	gray, err := lk.Grayscale(src)
	if err != nil {
		t.Fatal(err)
	}
	defer gray.Close()

	m := gray.(*Mat)
	if m.Channels() != 1 || m.Rows() != 8 || m.Cols() != 8 {
		t.Fatalf("got %dx%d with %d channels", m.Cols(), m.Rows(), m.Channels())
	}
}

func TestGrayscaleRejectsForeignFrame(t *testing.T) {
	lk := NewLucasKanade(15, 2, 10, 0.03)
	if _, err := lk.Grayscale(otherFrame{}); err == nil {
		t.Fatal("expected an error for a non-gocv frame")
	}
}

func TestEstimateSizeMismatch(t *testing.T) {
	lk := NewLucasKanade(15, 2, 10, 0.03)
	prev := NewMat(gocv.NewMatWithSize(8, 8, gocv.MatTypeCV8U))
	defer prev.Close()
	next := NewMat(gocv.NewMatWithSize(16, 8, gocv.MatTypeCV8U))
	defer next.Close()

	_, err := lk.Estimate(prev, next, tracking.Point{X: 4, Y: 4})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestMILTrackerForeignFrame(t *testing.T) {
	tracker := NewMILTracker()
	defer tracker.Close()

	if tracker.Init(otherFrame{}, image.Rect(0, 0, 4, 4)) {
		t.Fatal("init accepted a non-gocv frame")
	}
	if _, ok := tracker.Update(otherFrame{}); ok {
		t.Fatal("update accepted a non-gocv frame")
	}
}

func TestDrawReportsFrameErrors(t *testing.T) {
	w := NewWindow("test")
	if err := w.DrawMarker(otherFrame{}, image.Pt(1, 1), 2); err == nil {
		t.Fatal("expected an error drawing a marker on a non-gocv frame")
	}
	if err := w.DrawBox(otherFrame{}, image.Rect(0, 0, 2, 2)); err == nil {
		t.Fatal("expected an error drawing a box on a non-gocv frame")
	}

	m := NewMat(gocv.NewMatWithSize(8, 8, gocv.MatTypeCV8UC3))
	defer m.Close()
	if err := w.DrawMarker(m, image.Pt(4, 4), 2); err != nil {
		t.Fatal(err)
	}
	if err := w.DrawBox(m, image.Rect(1, 1, 6, 6)); err != nil {
		t.Fatal(err)
	}
	// never opened
	if err := w.Show(m); err == nil {
		t.Fatal("expected an error showing on a closed window")
	}
}
