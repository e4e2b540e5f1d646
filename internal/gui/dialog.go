// Package gui is the desktop front end: a window with a menu action that opens
// the tracker dialog.
package gui

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/vedantwpatil/point-tracker/internal/shim"
)

const (
	ActionLabel = "OpencvTest"
	ButtonLabel = "Press me"
)

type Dialog struct {
	app        fyne.App
	window     fyne.Window
	dispatcher *shim.Dispatcher
}

func NewDialog(dispatcher *shim.Dispatcher) *Dialog {
	a := app.New()
	return &Dialog{
		app:        a,
		window:     a.NewWindow("Point Tracker"),
		dispatcher: dispatcher,
	}
}

// Run shows the main window and blocks until it is closed or ctx is done.
// Handlers run on the UI goroutine, so the window does not respond while a
// tracking session is running.
func (d *Dialog) Run(ctx context.Context) {
	action := fyne.NewMenuItem(ActionLabel, func() { d.open(ctx) })
	d.window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("Tools", action)))

	status := widget.NewLabel("Choose Tools > " + ActionLabel)
	d.window.SetContent(container.NewVBox(status))
	d.window.Resize(fyne.NewSize(320, 120))

	go func() {
		<-ctx.Done()
		fyne.Do(d.app.Quit)
	}()

	d.window.ShowAndRun()
}

func (d *Dialog) open(ctx context.Context) {
	label := widget.NewLabel("Hello World!")
	label.Alignment = fyne.TextAlignTrailing

	button := widget.NewButton(ButtonLabel, func() {
		if err := d.dispatcher.Dispatch(ctx, shim.StartBoxTracking); err != nil {
			log.Printf("%s failed: %v", shim.StartBoxTracking, err)
			dialog.ShowError(err, d.window)
		}
	})

	content := container.NewHBox(button, widget.NewSeparator(), label)
	dialog.ShowCustom("Tracker", "Close", content, d.window)
}
