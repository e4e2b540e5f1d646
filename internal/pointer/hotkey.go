package pointer

import (
	"context"
	"log"
	"strings"
	"sync"

	hook "github.com/robotn/gohook"
)

// hook keeps process wide state, only one listener may run at a time.
var hookMu sync.Mutex

// WatchHotkey calls fn every time the key combination is pressed until ctx is
// done. It blocks while the hook is running.
func WatchHotkey(ctx context.Context, keys []string, fn func()) {
	hookMu.Lock()
	defer hookMu.Unlock()

	hook.Register(hook.KeyDown, keys, func(e hook.Event) {
		log.Printf("%s detected", strings.Join(keys, " + "))
		fn()
	})

	// Start the event hook
	s := hook.Start()

	go func() {
		<-ctx.Done()
		hook.End()
	}()

	// Wait until the listener is stopped
	<-hook.Process(s)
}
