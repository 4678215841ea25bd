package virtualcube

import "sync"

// Tracker wraps a Cube with a move history behind a mutex. Cube moves
// are multi-step read-modify-write sequences, so a cube shared between
// goroutines needs a serializing layer; Tracker is that layer.
type Tracker struct {
	mu      sync.RWMutex
	cube    *Cube
	history []Move

	onMove   func(Move)
	onSolved func()
}

// NewTracker creates a tracker starting from a solved cube.
func NewTracker() *Tracker {
	return &Tracker{cube: NewCube()}
}

// NewTrackerFrom creates a tracker starting from a copy of the given
// cube state, with an empty history.
func NewTrackerFrom(c *Cube) *Tracker {
	return &Tracker{cube: c.Clone()}
}

// SetMoveCallback sets a callback that fires after every applied move.
// The callback runs on the applying goroutine with the lock released.
func (t *Tracker) SetMoveCallback(cb func(Move)) {
	t.mu.Lock()
	t.onMove = cb
	t.mu.Unlock()
}

// SetSolvedCallback sets a callback that fires when the cube
// transitions into the solved state. It does not fire again until the
// cube has left and re-entered that state.
func (t *Tracker) SetSolvedCallback(cb func()) {
	t.mu.Lock()
	t.onSolved = cb
	t.mu.Unlock()
}

// Apply applies moves in order, recording each in the history. It stops
// at the first invalid move.
func (t *Tracker) Apply(moves ...Move) error {
	for _, m := range moves {
		if err := t.applyOne(m); err != nil {
			return err
		}
	}
	return nil
}

// ApplyNotation parses a notation sequence and applies it. Parsing
// happens before any move is applied, so an invalid sequence leaves the
// cube untouched.
func (t *Tracker) ApplyNotation(s string) error {
	moves, err := ParseMoves(s)
	if err != nil {
		return err
	}
	return t.Apply(moves...)
}

func (t *Tracker) applyOne(m Move) error {
	t.mu.Lock()
	wasSolved := t.cube.IsSolved()
	if err := t.cube.Move(m.Face, m.Clockwise); err != nil {
		t.mu.Unlock()
		return err
	}
	t.history = append(t.history, m)
	nowSolved := t.cube.IsSolved()
	onMove, onSolved := t.onMove, t.onSolved
	t.mu.Unlock()

	if onMove != nil {
		onMove(m)
	}
	if onSolved != nil && nowSolved && !wasSolved {
		onSolved()
	}
	return nil
}

// Undo reverses the most recently applied move and removes it from the
// history. It reports the move that was undone, or false when the
// history is empty. Undo does not fire the move callback; the solved
// callback still fires if the undo restores the solved state.
func (t *Tracker) Undo() (Move, bool) {
	t.mu.Lock()
	if len(t.history) == 0 {
		t.mu.Unlock()
		return Move{}, false
	}
	last := t.history[len(t.history)-1]
	t.history = t.history[:len(t.history)-1]
	wasSolved := t.cube.IsSolved()
	inv := last.Inverse()
	_ = t.cube.Move(inv.Face, inv.Clockwise)
	nowSolved := t.cube.IsSolved()
	onSolved := t.onSolved
	t.mu.Unlock()

	if onSolved != nil && nowSolved && !wasSolved {
		onSolved()
	}
	return last, true
}

// Reset returns the tracker to a solved cube and clears the history.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.cube.Reset()
	t.history = nil
	t.mu.Unlock()
}

// Cube returns a copy of the tracked cube for inspection.
func (t *Tracker) Cube() *Cube {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cube.Clone()
}

// State returns a full sticker dump of the tracked cube.
func (t *Tracker) State() [NumFaces][9]Color {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cube.State()
}

// History returns a copy of the applied moves in order.
func (t *Tracker) History() []Move {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Move, len(t.history))
	copy(out, t.history)
	return out
}

// MoveCount returns the number of moves in the history.
func (t *Tracker) MoveCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.history)
}

// IsSolved reports whether the tracked cube is solved.
func (t *Tracker) IsSolved() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cube.IsSolved()
}

// CubeString returns the net rendering of the tracked cube.
func (t *Tracker) CubeString() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cube.String()
}
