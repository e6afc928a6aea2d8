// Package selection implements the drag-to-select state machine that
// drives the fullscreen overlay. It is deliberately free of any UI
// toolkit: the overlay feeds it pointer and cancel events, and tests
// drive it directly.
package selection

import (
	"sync"

	"neocr/screenshot"
)

// MinSpan is the smallest width/height (exclusive) a drag must cover to
// count as a selection. Anything at or below this bounces back to Idle.
const MinSpan = 10

// State enumerates the selector's lifecycle.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Machine tracks one selection attempt. All methods are safe for
// concurrent use; the global escape listener and the overlay's own key
// handler may both call Cancel at the same moment.
type Machine struct {
	mu sync.Mutex

	state            State
	anchorX, anchorY int
	curX, curY       int
	region           screenshot.Region
}

// New returns a machine in StateIdle.
func New() *Machine {
	return &Machine{state: StateIdle}
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// PointerDown anchors one corner of the rectangle and enters
// StateDragging. Ignored outside StateIdle.
func (m *Machine) PointerDown(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		return
	}
	m.state = StateDragging
	m.anchorX, m.anchorY = x, y
	m.curX, m.curY = x, y
}

// PointerMove tracks the free corner while dragging. Ignored in any
// other state.
func (m *Machine) PointerMove(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateDragging {
		return
	}
	m.curX, m.curY = x, y
}

// PointerUp ends the drag. The candidate rectangle is normalized so
// x/y are the minimum of the two corners regardless of drag direction.
// If both dimensions exceed MinSpan the machine enters StateCompleted
// and the region is returned; otherwise it falls back to StateIdle with
// no rectangle, which is the implicit retry path.
func (m *Machine) PointerUp(x, y int) (screenshot.Region, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateDragging {
		return screenshot.Region{}, false
	}
	m.curX, m.curY = x, y

	left := minInt(m.anchorX, m.curX)
	top := minInt(m.anchorY, m.curY)
	width := absInt(m.curX - m.anchorX)
	height := absInt(m.curY - m.anchorY)

	if width <= MinSpan || height <= MinSpan {
		m.state = StateIdle
		return screenshot.Region{}, false
	}

	m.region = screenshot.Region{X: left, Y: top, Width: width, Height: height}
	m.state = StateCompleted
	return m.region, true
}

// Cancel moves the machine to StateCancelled from any state. It is
// idempotent: only the first call reports the transition, so two
// listeners firing together cannot double-release resources. A machine
// that already completed stays completed.
func (m *Machine) Cancel() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateCancelled || m.state == StateCompleted {
		return false
	}
	m.state = StateCancelled
	return true
}

// Region returns the accepted region. Valid only in StateCompleted.
func (m *Machine) Region() (screenshot.Region, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateCompleted {
		return screenshot.Region{}, false
	}
	return m.region, true
}

// Rubberband returns the current rectangle corners for drawing while a
// drag is in progress.
func (m *Machine) Rubberband() (x0, y0, x1, y1 int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateDragging {
		return 0, 0, 0, 0, false
	}
	return minInt(m.anchorX, m.curX), minInt(m.anchorY, m.curY),
		maxInt(m.anchorX, m.curX), maxInt(m.anchorY, m.curY), true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
