package tracking

import "sync"

// Selection owns the tracked point. The display's mouse handler and the loop body
// both receive the same Selection.
type Selection struct {
	mu    sync.Mutex
	point TrackedPoint
}

func NewSelection() *Selection {
	return &Selection{}
}

// HandleMouse selects the clicked pixel on a left button press.
func (s *Selection) HandleMouse(event MouseEvent, x, y int) {
	if event != MouseLeftButtonDown {
		return
	}
	s.mu.Lock()
	s.point = TrackedPoint{
		Point:    Point{X: float64(x), Y: float64(y)},
		Selected: true,
		Valid:    true,
	}
	s.mu.Unlock()
}

func (s *Selection) Snapshot() TrackedPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.point
}

// Update stores a successful estimate.
func (s *Selection) Update(p Point) {
	s.mu.Lock()
	s.point.Point = p
	s.point.Valid = true
	s.point.Misses = 0
	s.mu.Unlock()
}

// Miss records a failed estimate. The last good point stays selected and is
// submitted again on the next frame.
func (s *Selection) Miss() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.point.Valid = false
	s.point.Misses++
	return s.point.Misses
}

func (s *Selection) Clear() {
	s.mu.Lock()
	s.point = TrackedPoint{}
	s.mu.Unlock()
}
