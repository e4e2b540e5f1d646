package main

import (
	"context"
	"image"
	"io"
	"log"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/vedantwpatil/point-tracker/internal/animation"
)

type idleCursor struct{}

func (idleCursor) Location() (int, int) { return 0, 0 }

func (idleCursor) Move(int, int) {}

func newTestApplication() (*Application, chan int) {
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan int, 1)
	animator := animation.New(idleCursor{}, animation.Options{
		Target:   image.Pt(300, 300),
		Step:     5,
		Interval: time.Hour,
	})
	animator.SetLogger(log.New(io.Discard, "", 0))
	return &Application{
		animator: animator,
		logger:   log.New(io.Discard, "", 0),
		ctx:      ctx,
		cancel:   cancel,
		exit:     func(code int) { exited <- code },
	}, exited
}

func TestSignalCancelsThenExits(t *testing.T) {
	app, exited := newTestApplication()
	sigChan := make(chan os.Signal, 2)
	done := make(chan struct{})
	go func() {
		app.handleSignals(sigChan)
		close(done)
	}()

	sigChan <- syscall.SIGINT
	select {
	case <-app.ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("first signal did not cancel the context")
	}

	sigChan <- syscall.SIGINT
	select {
	case code := <-exited:
		if code != 1 {
			t.Fatalf("exit code %d, want 1", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second signal did not exit")
	}
	<-done
}

func TestSignalStopsAnimationFirst(t *testing.T) {
	app, exited := newTestApplication()
	if err := app.animator.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	sigChan := make(chan os.Signal, 1)
	go app.handleSignals(sigChan)
	defer close(sigChan)

	sigChan <- syscall.SIGINT
	select {
	case <-app.animator.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("signal did not stop the animation")
	}
	if app.ctx.Err() != nil {
		t.Fatal("context cancelled while an animation was running")
	}
	select {
	case <-exited:
		t.Fatal("process exited")
	default:
	}
}
