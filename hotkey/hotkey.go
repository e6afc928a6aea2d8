// Package hotkey watches for the global Escape press that cancels
// region selection even when the overlay never receives keyboard focus.
// The watcher only signals a channel; acting on the signal stays with
// the UI loop so no cross-thread state is touched here.
package hotkey

import (
	"log"
	"sync"

	gohook "github.com/robotn/gohook"
)

// Escape rawcodes by platform: VK_ESCAPE on Windows, XK_Escape keysym
// on X11, virtual keycode 53 on macOS.
var escapeRawcodes = []uint16{27, 65307, 53}

// WatchEscape starts a global key listener and returns a channel that
// receives one signal per Escape press, plus a stop function. The
// channel is never closed; callers select on it alongside their own
// done channel and call stop when the overlay goes away.
func WatchEscape() (<-chan struct{}, func()) {
	signals := make(chan struct{}, 1)
	var stopOnce sync.Once
	stop := func() {
		stopOnce.Do(gohook.End)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in escape watcher: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("Escape watcher unavailable: hook start failed")
			return
		}
		for ev := range evChan {
			if ev.Kind != gohook.KeyDown {
				continue
			}
			if !isEscape(ev.Rawcode) {
				continue
			}
			// Non-blocking: a pending unconsumed signal already
			// means cancellation is on its way.
			select {
			case signals <- struct{}{}:
			default:
			}
		}
	}()

	return signals, stop
}

func isEscape(rawcode uint16) bool {
	for _, rc := range escapeRawcodes {
		if rawcode == rc {
			return true
		}
	}
	return false
}
