package animation

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidStep is returned by Start when the step would never converge.
var ErrInvalidStep = errors.New("animation step must be positive")

type Cursor interface {
	Location() (int, int)
	Move(x, y int)
}

type Options struct {
	Target   image.Point
	Step     int
	Interval time.Duration
}

// State is the animator's view of the cursor.
type State struct {
	Current image.Point
	Target  image.Point
	Step    int
}

// Animator steps the cursor toward a fixed target, one step per tick.
type Animator struct {
	cursor Cursor
	opts   Options
	logger *log.Logger

	mu      sync.Mutex
	state   State
	steps   int
	running bool
	stop    chan struct{}
	done    chan struct{}
}

func New(cursor Cursor, opts Options) *Animator {
	done := make(chan struct{})
	close(done)
	return &Animator{
		cursor: cursor,
		opts:   opts,
		logger: log.Default(),
		done:   done,
	}
}

func (a *Animator) SetLogger(logger *log.Logger) {
	if logger != nil {
		a.logger = logger
	}
}

// Begin captures the current cursor position as the start of a new run without
// starting the ticker.
func (a *Animator) Begin() error {
	if a.opts.Step <= 0 {
		return errors.Wrapf(ErrInvalidStep, "got %d", a.opts.Step)
	}
	x, y := a.cursor.Location()

	a.mu.Lock()
	a.state = State{
		Current: image.Pt(x, y),
		Target:  a.opts.Target,
		Step:    a.opts.Step,
	}
	a.steps = 0
	a.mu.Unlock()
	return nil
}

// Start begins a run and ticks every Interval until the cursor converges, Stop
// is called or ctx is cancelled. A run already in flight is stopped first.
func (a *Animator) Start(ctx context.Context) error {
	if a.opts.Interval <= 0 {
		return errors.Errorf("animation interval must be positive, got %v", a.opts.Interval)
	}
	a.Stop()
	if err := a.Begin(); err != nil {
		return err
	}

	a.mu.Lock()
	a.running = true
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	stop, done := a.stop, a.done
	a.mu.Unlock()

	a.logger.Printf("Moving cursor from %v to %v in steps of %d", a.State().Current, a.opts.Target, a.opts.Step)
	go a.run(ctx, stop, done)
	return nil
}

func (a *Animator) run(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(a.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.finish(stop)
			return
		case <-stop:
			return
		case <-ticker.C:
			if !a.Tick() {
				a.finish(stop)
				a.logger.Printf("Cursor reached %v after %d steps", a.State().Current, a.Steps())
				return
			}
		}
	}
}

func (a *Animator) finish(stop chan struct{}) {
	a.mu.Lock()
	if a.stop == stop {
		a.running = false
	}
	a.mu.Unlock()
}

// Tick moves the cursor one step and reports whether it moved. It returns false
// once both axes are within one step of the target.
func (a *Animator) Tick() bool {
	a.mu.Lock()
	s := a.state
	dx := s.Target.X - s.Current.X
	dy := s.Target.Y - s.Current.Y
	if abs(dx) < s.Step && abs(dy) < s.Step {
		a.mu.Unlock()
		return false
	}

	// Each axis moves a whole step on its own, so unequal distances give an
	// L-shaped path rather than a straight line.
	if abs(dx) >= s.Step {
		s.Current.X += sign(dx) * s.Step
	}
	if abs(dy) >= s.Step {
		s.Current.Y += sign(dy) * s.Step
	}
	a.state = s
	a.steps++
	a.mu.Unlock()

	a.cursor.Move(s.Current.X, s.Current.Y)
	return true
}

// Stop ends the current run, if any, and waits for its ticker to exit.
func (a *Animator) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	close(a.stop)
	done := a.done
	a.mu.Unlock()

	<-done
}

func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Done is closed when the current run ends.
func (a *Animator) Done() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}

func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Steps is the number of cursor moves made in the current run.
func (a *Animator) Steps() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.steps
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
