package video

import (
	"github.com/pkg/errors"

	"github.com/vedantwpatil/point-tracker/internal/config"
	"github.com/vedantwpatil/point-tracker/internal/tracking"
)

// Open returns the source selected by cfg.Camera.Source. The caller hands it to
// a tracking loop, which releases it.
func Open(cfg *config.Config) (tracking.VideoSource, error) {
	var (
		source tracking.VideoSource
		err    error
	)
	switch cfg.Camera.Source {
	case config.SourceCamera:
		source, err = OpenCamera(cfg.Camera.Device)
	case config.SourceFile:
		source, err = OpenFile(cfg.Camera.File)
	case config.SourceScreen:
		source, err = OpenScreen(cfg.Camera.Display)
	default:
		return nil, errors.Errorf("unknown video source %q", cfg.Camera.Source)
	}
	if err != nil {
		return nil, err
	}
	return source, nil
}
