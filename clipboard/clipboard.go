// Package clipboard is a thin guard over the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	mu          sync.Mutex
	initialized bool
)

// Init must be called once before Write. It fails when no clipboard
// backend is available (e.g. no display), which this tool treats as a
// hard error.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return nil
	}
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	initialized = true
	return nil
}

// Write places text on the clipboard. The mutex keeps a late global
// listener callback from racing a write in progress.
func Write(text string) error {
	mu.Lock()
	defer mu.Unlock()
	if !initialized {
		return fmt.Errorf("clipboard not initialized")
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
