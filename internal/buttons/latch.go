package buttons

import "sync"

// Latch is a Source driven by software. Presses are held until the next Read,
// so a keystroke counts as exactly one tick of "pressed".
type Latch struct {
	mu      sync.Mutex
	pending State
	closed  bool
}

// NewLatch creates an empty latch.
func NewLatch() *Latch {
	return &Latch{}
}

// Press latches the given buttons for the next Read. Pressing several buttons
// in one call presses them together.
func (l *Latch) Press(buttons ...Button) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range buttons {
		if b >= 0 && int(b) < Count {
			l.pending[b] = true
		}
	}
}

// Read implements Source.
func (l *Latch) Read() (State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return State{}, nil
	}
	st := l.pending
	l.pending = State{}
	return st, nil
}

// Close implements Source. A closed latch reads as nothing pressed.
func (l *Latch) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}
