package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vedantwpatil/point-tracker/internal/animation"
	"github.com/vedantwpatil/point-tracker/internal/config"
	"github.com/vedantwpatil/point-tracker/internal/pointer"
	"github.com/vedantwpatil/point-tracker/internal/shim"
	"github.com/vedantwpatil/point-tracker/internal/tracking"
	"github.com/vedantwpatil/point-tracker/internal/video"
	"github.com/vedantwpatil/point-tracker/internal/vision"
)

type Application struct {
	config   *config.Config
	cursor   *pointer.System
	animator *animation.Animator
	logger   *log.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	exit     func(code int)
}

func NewApplication(cfg *config.Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())
	cursor := pointer.NewSystem(cfg.Camera.Display)
	logger := log.Default()

	animator := animation.New(cursor, animation.Options{
		Target:   image.Pt(cfg.Animation.TargetX, cfg.Animation.TargetY),
		Step:     cfg.Animation.Step,
		Interval: cfg.AnimationInterval(),
	})
	animator.SetLogger(logger)

	return &Application{
		config:   cfg,
		cursor:   cursor,
		animator: animator,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		exit:     os.Exit,
	}
}

// Context is cancelled on the first SIGINT/SIGTERM that does not stop an
// animation. A second one exits the process.
func (app *Application) Context() context.Context {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go app.handleSignals(sigChan)
	return app.ctx
}

func (app *Application) handleSignals(sigChan chan os.Signal) {
	for sig := range sigChan {
		fmt.Printf("\nReceived signal: %v\n", sig)
		if app.animator.Running() {
			fmt.Println("Stopping cursor animation...")
			app.animator.Stop()
			continue
		}
		if app.ctx.Err() == nil {
			fmt.Println("Exiting application...")
			app.cancel()
			continue
		}

		// still blocked after the first interrupt
		signal.Stop(sigChan)
		fmt.Println("Forcing exit")
		app.exit(1)
		return
	}
}

// Dispatcher wires every command to its handler. The animation handler returns
// as soon as the animation starts.
func (app *Application) Dispatcher() *shim.Dispatcher {
	d := shim.NewDispatcher()
	d.Handle(shim.StartPointTracking, app.trackPoint)
	d.Handle(shim.StartBoxTracking, app.trackBox)
	d.Handle(shim.StartCursorAnimation, app.startAnimation)
	return d
}

func (app *Application) trackPoint(ctx context.Context) error {
	// only one feature drives the cursor at a time
	app.animator.Stop()

	policy, err := tracking.ParseLossPolicy(app.config.Tracking.LossPolicy)
	if err != nil {
		return err
	}
	source, err := video.Open(app.config)
	if err != nil {
		return err
	}

	lk := vision.NewLucasKanade(app.config.Flow.WindowSize, app.config.Flow.MaxLevel,
		app.config.Flow.MaxIterations, app.config.Flow.Epsilon)
	loop := tracking.NewPointLoop(source, lk, lk, vision.NewWindow(app.config.Window.Name), app.cursor,
		tracking.PointLoopOptions{
			KeyWait:      app.config.TrackingKeyWait(),
			ExitKey:      app.config.Tracking.ExitKey,
			MarkerRadius: app.config.Tracking.MarkerRadius,
			LossPolicy:   policy,
		})
	loop.SetLogger(app.logger)
	loop.SetReporter(tracking.NewStatusLine(os.Stdout, "Tracking"))
	if app.config.Tracking.Smoothing.Enabled {
		loop.SetSmoother(tracking.NewKalmanSmoother(app.config.TrackingKeyWait().Seconds(),
			app.config.Tracking.Smoothing.StdDevA, app.config.Tracking.Smoothing.StdDevM))
	}

	fmt.Println("Click a point in the window to track it. Press Esc to stop.")
	session, err := loop.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Tracked %d frames, moved the cursor %d times\n", session.Frames, len(session.History()))
	return nil
}

func (app *Application) trackBox(ctx context.Context) error {
	app.animator.Stop()

	source, err := video.Open(app.config)
	if err != nil {
		return err
	}

	window := vision.BoxWindow{Window: vision.NewWindow(app.config.Window.Name)}
	loop := tracking.NewBoxLoop(source, window, window, vision.NewMILTracker(), app.cursor,
		tracking.BoxLoopOptions{
			KeyWait:      app.config.BoxKeyWait(),
			ExitKey:      app.config.Tracking.ExitKey,
			MarkerRadius: app.config.Tracking.MarkerRadius,
		})
	loop.SetLogger(app.logger)
	loop.SetReporter(tracking.NewStatusLine(os.Stdout, "Box"))

	fmt.Println("Drag a rectangle around the target and press Enter. Press Esc to stop.")
	session, err := loop.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Tracked %d frames, moved the cursor %d times\n", session.Frames, len(session.History()))
	return nil
}

func (app *Application) startAnimation(ctx context.Context) error {
	width, height := app.cursor.ScreenSize()
	target := image.Pt(app.config.Animation.TargetX, app.config.Animation.TargetY)
	if !target.In(image.Rect(0, 0, width, height)) {
		app.logger.Printf("Warning: target %v is outside the %dx%d screen", target, width, height)
	}
	return app.animator.Start(ctx)
}

// animate runs the animation to completion. The stop hotkey ends it early.
func (app *Application) animate(ctx context.Context) error {
	if err := app.startAnimation(ctx); err != nil {
		return err
	}

	hotkeyCtx, stopHotkey := context.WithCancel(ctx)
	defer stopHotkey()
	go pointer.WatchHotkey(hotkeyCtx, app.config.Animation.StopHotkey, app.animator.Stop)

	<-app.animator.Done()
	state := app.animator.State()
	fmt.Printf("Cursor at %v after %d steps\n", state.Current, app.animator.Steps())
	return nil
}

func (app *Application) cleanup() {
	app.animator.Stop()
	app.cancel()
}
