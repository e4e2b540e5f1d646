package tracking

import (
	kalman_filter "github.com/LdDl/kalman-filter"
)

// Smoother filters estimates before they reach the cursor.
type Smoother interface {
	Smooth(p Point) Point
	Reset()
}

type passthrough struct{}

func (passthrough) Smooth(p Point) Point { return p }
func (passthrough) Reset()               {}

// KalmanSmoother runs a constant velocity 2D Kalman filter over the estimates.
// The filter is seeded with the first point after each Reset.
type KalmanSmoother struct {
	dt      float64
	stdDevA float64
	stdDevM float64
	filter  *kalman_filter.Kalman2D
}

func NewKalmanSmoother(dt, stdDevA, stdDevM float64) *KalmanSmoother {
	return &KalmanSmoother{dt: dt, stdDevA: stdDevA, stdDevM: stdDevM}
}

func (k *KalmanSmoother) Smooth(p Point) Point {
	if k.filter == nil {
		k.filter = kalman_filter.NewKalman2D(k.dt, 0.0, 0.0, k.stdDevA, k.stdDevM, k.stdDevM,
			kalman_filter.WithState2D(p.X, p.Y))
		return p
	}
	k.filter.Predict()
	if err := k.filter.Update(p.X, p.Y); err != nil {
		// singular innovation, fall back to the raw measurement
		k.filter = nil
		return p
	}
	x, y := k.filter.GetState()
	return Point{X: x, Y: y}
}

func (k *KalmanSmoother) Reset() {
	k.filter = nil
}
