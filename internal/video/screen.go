package video

import (
	"image"

	"github.com/kbinani/screenshot"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/vedantwpatil/point-tracker/internal/tracking"
	"github.com/vedantwpatil/point-tracker/internal/vision"
)

// Screen captures a display on every read. It never runs out of frames.
type Screen struct {
	display int
	bounds  image.Rectangle
}

func OpenScreen(display int) (*Screen, error) {
	if n := screenshot.NumActiveDisplays(); display >= n {
		return nil, errors.Errorf("display %d not found, %d active", display, n)
	}
	return &Screen{display: display, bounds: screenshot.GetDisplayBounds(display)}, nil
}

func (s *Screen) Read() (tracking.Frame, error) {
	img, err := screenshot.CaptureRect(s.bounds)
	if err != nil {
		return nil, errors.Wrapf(err, "error capturing display %d", s.display)
	}
	m, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert screenshot")
	}
	return vision.NewMat(m), nil
}

func (s *Screen) Close() error {
	return nil
}
