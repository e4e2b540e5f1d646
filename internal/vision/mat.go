// Package vision adapts gocv to the tracking interfaces.
package vision

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/vedantwpatil/point-tracker/internal/tracking"
)

// Mat is a gocv backed tracking.Frame.
type Mat struct {
	gocv.Mat
}

func NewMat(m gocv.Mat) *Mat {
	return &Mat{Mat: m}
}

func asMat(f tracking.Frame) (*Mat, error) {
	m, ok := f.(*Mat)
	if !ok {
		return nil, errors.Errorf("vision: unsupported frame type %T", f)
	}
	if m.Empty() {
		return nil, errors.New("vision: empty frame")
	}
	return m, nil
}
