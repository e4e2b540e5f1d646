package shim

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Menu is the numbered terminal menu.
type Menu struct {
	in         *bufio.Scanner
	out        io.Writer
	dispatcher *Dispatcher
}

func NewMenu(in io.Reader, out io.Writer, dispatcher *Dispatcher) *Menu {
	return &Menu{
		in:         bufio.NewScanner(in),
		out:        out,
		dispatcher: dispatcher,
	}
}

func (m *Menu) show() {
	fmt.Fprintln(m.out, "\n"+titleStyle.Render("Commands:"))
	for i, c := range Commands {
		fmt.Fprintf(m.out, "%s %s\n", numberStyle.Render(fmt.Sprintf("%d.", i+1)), c.Title())
	}
	fmt.Fprint(m.out, "Choose an option: ")
}

// read sends input lines until the input ends or done is closed. The read
// error is sent before lines is closed.
func (m *Menu) read(lines chan<- string, readErr chan<- error, done <-chan struct{}) {
	defer close(lines)
	for m.in.Scan() {
		select {
		case lines <- m.in.Text():
		case <-done:
			return
		}
	}
	readErr <- m.in.Err()
}

// Run shows the menu and dispatches choices until Quit, end of input or ctx is
// done. Handler errors are printed and the menu continues. Cancelling ctx ends
// Run even while it waits for input. A Menu runs once.
func (m *Menu) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go m.read(lines, readErr, done)

	for {
		if ctx.Err() != nil {
			return nil
		}

		m.show()
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(m.out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(m.out)
				select {
				case err := <-readErr:
					return errors.Wrap(err, "failed to read choice")
				default:
					return nil
				}
			}
			line = l
		}

		choice, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid option")
			continue
		}
		if choice == Quit {
			fmt.Fprintln(m.out, "Exiting...")
			return nil
		}

		if err := m.dispatcher.Dispatch(ctx, choice); err != nil {
			log.Printf("%s failed: %v", choice, err)
			fmt.Fprintln(m.out, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
	}
}
