// Package shim turns user actions from the menu, the dialog or the command line
// into commands and runs them.
package shim

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownCommand = errors.New("unknown command")

type Command int

const (
	StartPointTracking Command = iota + 1
	StartBoxTracking
	StartCursorAnimation
	Quit
)

var commandNames = map[Command]string{
	StartPointTracking:   "point",
	StartBoxTracking:     "box",
	StartCursorAnimation: "animate",
	Quit:                 "quit",
}

var commandTitles = map[Command]string{
	StartPointTracking:   "Track a clicked point",
	StartBoxTracking:     "Track a selected region",
	StartCursorAnimation: "Move the cursor to the target",
	Quit:                 "Exit",
}

// Commands in menu order.
var Commands = []Command{StartPointTracking, StartBoxTracking, StartCursorAnimation, Quit}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "Command(" + strconv.Itoa(int(c)) + ")"
}

func (c Command) Title() string {
	return commandTitles[c]
}

// ParseCommand accepts a command name or its menu number.
func ParseCommand(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(Commands) {
			return Commands[n-1], nil
		}
		return 0, errors.Wrapf(ErrUnknownCommand, "option %d", n)
	}
	for c, name := range commandNames {
		if name == s {
			return c, nil
		}
	}
	switch s {
	case "exit", "q":
		return Quit, nil
	}
	return 0, errors.Wrapf(ErrUnknownCommand, "%q", s)
}

type Handler func(ctx context.Context) error

// Dispatcher runs the handler registered for a command.
type Dispatcher struct {
	handlers map[Command]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Command]Handler)}
}

func (d *Dispatcher) Handle(c Command, h Handler) {
	d.handlers[c] = h
}

func (d *Dispatcher) Dispatch(ctx context.Context, c Command) error {
	h, ok := d.handlers[c]
	if !ok {
		return errors.Wrapf(ErrUnknownCommand, "no handler for %s", c)
	}
	return h(ctx)
}
