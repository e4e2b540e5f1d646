package tracking

import (
	"time"

	"github.com/google/uuid"
)

type StopReason int

const (
	StopEndOfStream StopReason = iota
	StopExitKey
	StopCancelled
)

func (r StopReason) String() string {
	switch r {
	case StopEndOfStream:
		return "end of stream"
	case StopExitKey:
		return "exit key"
	case StopCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Session is the record of one run of a tracking loop.
type Session struct {
	ID     uuid.UUID
	Frames int
	Final  TrackedPoint
	Reason StopReason

	startTime time.Time
	history   []CursorPosition
}

func newSession() *Session {
	return &Session{
		ID:        uuid.New(),
		startTime: time.Now(),
		history:   make([]CursorPosition, 0),
	}
}

func (s *Session) record(x, y int) {
	s.history = append(s.history, CursorPosition{
		X:       x,
		Y:       y,
		Elapsed: time.Since(s.startTime),
	})
}

// History returns every cursor move made during the session, oldest first.
func (s *Session) History() []CursorPosition {
	return s.history
}

func (s *Session) StartTime() time.Time {
	return s.startTime
}
