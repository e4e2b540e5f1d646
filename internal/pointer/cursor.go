// Package pointer moves and watches the system mouse pointer.
package pointer

import (
	"github.com/go-vgo/robotgo"
)

// System is the desktop cursor. On Linux it needs an X11 session.
type System struct {
	displayID int
}

func NewSystem(displayID int) *System {
	return &System{displayID: displayID}
}

func (s *System) Location() (int, int) {
	return robotgo.Location()
}

func (s *System) Move(x, y int) {
	robotgo.Move(x, y, s.displayID)
}

// ScreenSize returns the size of the main display in pixels.
func (s *System) ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}
