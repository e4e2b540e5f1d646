package vision

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/vedantwpatil/point-tracker/internal/tracking"
)

var ErrSizeMismatch = errors.New("frames differ in size")

// LucasKanade estimates point motion with pyramidal Lucas-Kanade optical flow.
type LucasKanade struct {
	winSize  image.Point
	maxLevel int
	criteria gocv.TermCriteria
	minEig   float64
}

func NewLucasKanade(windowSize, maxLevel, maxIterations int, epsilon float64) *LucasKanade {
	return &LucasKanade{
		winSize:  image.Pt(windowSize, windowSize),
		maxLevel: maxLevel,
		criteria: gocv.NewTermCriteria(gocv.Count|gocv.EPS, maxIterations, epsilon),
		minEig:   1e-4,
	}
}

func (lk *LucasKanade) Grayscale(f tracking.Frame) (tracking.Frame, error) {
	src, err := asMat(f)
	if err != nil {
		return nil, err
	}
	gray := gocv.NewMat()
	if err := gocv.CvtColor(src.Mat, &gray, gocv.ColorBGRToGray); err != nil {
		gray.Close()
		return nil, errors.Wrap(err, "failed to convert frame to grayscale")
	}
	return NewMat(gray), nil
}

func (lk *LucasKanade) Estimate(prev, next tracking.Frame, p tracking.Point) (tracking.FlowResult, error) {
	pm, err := asMat(prev)
	if err != nil {
		return tracking.FlowResult{}, err
	}
	nm, err := asMat(next)
	if err != nil {
		return tracking.FlowResult{}, err
	}
	if pm.Rows() != nm.Rows() || pm.Cols() != nm.Cols() {
		return tracking.FlowResult{}, errors.Wrapf(ErrSizeMismatch, "%dx%d and %dx%d",
			pm.Cols(), pm.Rows(), nm.Cols(), nm.Rows())
	}

	// a single point as a 1x2 float row
	prevPts := gocv.NewMatWithSize(1, 2, gocv.MatTypeCV32F)
	defer prevPts.Close()
	prevPts.SetFloatAt(0, 0, float32(p.X))
	prevPts.SetFloatAt(0, 1, float32(p.Y))

	nextPts := gocv.NewMat()
	defer nextPts.Close()
	status := gocv.NewMat()
	defer status.Close()
	errs := gocv.NewMat()
	defer errs.Close()

	if err := gocv.CalcOpticalFlowPyrLKWithParams(pm.Mat, nm.Mat, prevPts, nextPts, &status, &errs,
		lk.winSize, lk.maxLevel, lk.criteria, 0, lk.minEig); err != nil {
		return tracking.FlowResult{}, errors.Wrap(err, "optical flow failed")
	}

	if nextPts.Empty() || status.Empty() {
		return tracking.FlowResult{Point: p}, nil
	}
	return tracking.FlowResult{
		Point: tracking.Point{
			X: float64(nextPts.GetFloatAt(0, 0)),
			Y: float64(nextPts.GetFloatAt(0, 1)),
		},
		OK:    status.GetUCharAt(0, 0) == 1,
		Error: float64(errs.GetFloatAt(0, 0)),
	}, nil
}
