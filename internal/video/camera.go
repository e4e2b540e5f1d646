// Package video opens the frame sources a tracking session reads from.
package video

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/vedantwpatil/point-tracker/internal/tracking"
	"github.com/vedantwpatil/point-tracker/internal/vision"
)

// Camera reads frames from a capture device.
type Camera struct {
	device  int
	capture *gocv.VideoCapture
}

func OpenCamera(device int) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening video capture device %d", device)
	}
	return &Camera{device: device, capture: capture}, nil
}

func (c *Camera) Read() (tracking.Frame, error) {
	img := gocv.NewMat()
	if ok := c.capture.Read(&img); !ok {
		img.Close()
		return nil, errors.Errorf("cannot read device %d", c.device)
	}
	if img.Empty() {
		img.Close()
		return nil, tracking.ErrEndOfStream
	}
	return vision.NewMat(img), nil
}

func (c *Camera) Close() error {
	return c.capture.Close()
}
