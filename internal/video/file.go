package video

import (
	vidio "github.com/AlexEidt/Vidio"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/vedantwpatil/point-tracker/internal/tracking"
	"github.com/vedantwpatil/point-tracker/internal/vision"
)

// File plays back a recorded video through ffmpeg.
type File struct {
	path  string
	video *vidio.Video
	frame int
}

func OpenFile(path string) (*File, error) {
	video, err := vidio.NewVideo(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open the video at path: %s", path)
	}
	return &File{path: path, video: video}, nil
}

func (f *File) Read() (tracking.Frame, error) {
	if !f.video.Read() {
		return nil, tracking.ErrEndOfStream
	}
	f.frame++

	// Vidio decodes to packed RGB, the trackers expect BGR
	rgb, err := gocv.NewMatFromBytes(f.video.Height(), f.video.Width(), gocv.MatTypeCV8UC3, f.video.FrameBuffer())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to wrap frame %d of %s", f.frame, f.path)
	}
	defer rgb.Close()

	bgr := gocv.NewMat()
	if err := gocv.CvtColor(rgb, &bgr, gocv.ColorRGBToBGR); err != nil {
		bgr.Close()
		return nil, errors.Wrapf(err, "failed to convert frame %d of %s", f.frame, f.path)
	}
	return vision.NewMat(bgr), nil
}

func (f *File) FPS() float64 {
	return f.video.FPS()
}

func (f *File) Close() error {
	f.video.Close()
	return nil
}
