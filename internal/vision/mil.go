package vision

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/vedantwpatil/point-tracker/internal/tracking"
)

// MILTracker follows a rectangle with OpenCV's Multiple Instance Learning tracker.
type MILTracker struct {
	tracker gocv.Tracker
}

var _ tracking.BoxTracker = (*MILTracker)(nil)

func NewMILTracker() *MILTracker {
	return &MILTracker{tracker: gocv.NewTrackerMIL()}
}

func (t *MILTracker) Init(f tracking.Frame, box image.Rectangle) bool {
	m, err := asMat(f)
	if err != nil {
		return false
	}
	return t.tracker.Init(m.Mat, box)
}

func (t *MILTracker) Update(f tracking.Frame) (image.Rectangle, bool) {
	m, err := asMat(f)
	if err != nil {
		return image.Rectangle{}, false
	}
	return t.tracker.Update(m.Mat)
}

func (t *MILTracker) Close() error {
	return t.tracker.Close()
}
