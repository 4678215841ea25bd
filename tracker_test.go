package virtualcube

import (
	"errors"
	"sync"
	"testing"
)

func TestTrackerStartsSolved(t *testing.T) {
	tr := NewTracker()
	if !tr.IsSolved() {
		t.Error("New tracker should start solved")
	}
	if tr.MoveCount() != 0 {
		t.Errorf("New tracker should have no history, got %d moves", tr.MoveCount())
	}
}

func TestTrackerApplyAndHistory(t *testing.T) {
	tr := NewTracker()
	if err := tr.Apply(W, GPrime, R); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	history := tr.History()
	want := []Move{W, GPrime, R}
	if len(history) != len(want) {
		t.Fatalf("History has %d moves, want %d", len(history), len(want))
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("History[%d] = %v, want %v", i, history[i], want[i])
		}
	}

	// The tracked cube matches the same moves applied to a bare cube.
	c := NewCube()
	if err := c.Apply(want...); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !tr.Cube().Equal(c) {
		t.Error("Tracked cube should match a bare cube with the same moves")
	}
}

func TestTrackerApplyNotation(t *testing.T) {
	tr := NewTracker()
	if err := tr.ApplyNotation("W W W W"); err != nil {
		t.Fatalf("ApplyNotation returned error: %v", err)
	}
	if !tr.IsSolved() {
		t.Error("Four identical turns should return to solved")
	}
	if tr.MoveCount() != 4 {
		t.Errorf("History should have 4 moves, got %d", tr.MoveCount())
	}
}

func TestTrackerApplyNotationRejectsBadSequence(t *testing.T) {
	tr := NewTracker()
	err := tr.ApplyNotation("W X G")
	if !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("ApplyNotation should fail with ErrInvalidNotation, got %v", err)
	}
	if !tr.IsSolved() || tr.MoveCount() != 0 {
		t.Error("A rejected sequence must leave the tracker untouched")
	}
}

func TestTrackerUndo(t *testing.T) {
	tr := NewTracker()
	if err := tr.Apply(W, G); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	undone, ok := tr.Undo()
	if !ok {
		t.Fatal("Undo should succeed with history present")
	}
	if undone != G {
		t.Errorf("Undo returned %v, want %v", undone, G)
	}
	if tr.MoveCount() != 1 {
		t.Errorf("History should have 1 move after undo, got %d", tr.MoveCount())
	}

	// Undoing the remaining move restores the solved state.
	if _, ok := tr.Undo(); !ok {
		t.Fatal("Second undo should succeed")
	}
	if !tr.IsSolved() {
		t.Error("Undoing everything should restore the solved state")
	}

	if _, ok := tr.Undo(); ok {
		t.Error("Undo with empty history should report false")
	}
}

func TestTrackerMoveCallback(t *testing.T) {
	tr := NewTracker()
	var seen []Move
	tr.SetMoveCallback(func(m Move) {
		seen = append(seen, m)
	})

	if err := tr.Apply(W, Y, WPrime); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if len(seen) != 3 {
		t.Errorf("Move callback fired %d times, want 3", len(seen))
	}
}

func TestTrackerSolvedCallbackOnTransition(t *testing.T) {
	tr := NewTracker()
	solvedCount := 0
	tr.SetSolvedCallback(func() {
		solvedCount++
	})

	// Leaving the solved state fires nothing.
	if err := tr.Apply(W); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if solvedCount != 0 {
		t.Errorf("Callback should not fire on leaving solved, fired %d times", solvedCount)
	}

	// Coming back fires exactly once.
	if err := tr.Apply(WPrime); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if solvedCount != 1 {
		t.Errorf("Callback should fire once on reaching solved, fired %d times", solvedCount)
	}

	// A full four-turn cycle fires once more on re-entry.
	if err := tr.ApplyNotation("G G G G"); err != nil {
		t.Fatalf("ApplyNotation returned error: %v", err)
	}
	if solvedCount != 2 {
		t.Errorf("Callback should have fired twice in total, fired %d times", solvedCount)
	}
}

func TestTrackerSolvedCallbackOnUndo(t *testing.T) {
	tr := NewTracker()
	solvedCount := 0
	tr.SetSolvedCallback(func() {
		solvedCount++
	})

	if err := tr.Apply(B); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if _, ok := tr.Undo(); !ok {
		t.Fatal("Undo should succeed")
	}
	if solvedCount != 1 {
		t.Errorf("Undo back to solved should fire the callback once, fired %d times", solvedCount)
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	if err := tr.Apply(R, O, Y); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	tr.Reset()
	if !tr.IsSolved() {
		t.Error("Tracker should be solved after reset")
	}
	if tr.MoveCount() != 0 {
		t.Errorf("History should be empty after reset, got %d moves", tr.MoveCount())
	}
}

func TestTrackerFromExistingCube(t *testing.T) {
	c := NewCube()
	if err := c.Move(Green, true); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}

	tr := NewTrackerFrom(c)
	if tr.IsSolved() {
		t.Error("Tracker should start from the given state")
	}
	if tr.MoveCount() != 0 {
		t.Error("Tracker from an existing cube starts with an empty history")
	}

	// The tracker holds a copy, not the original.
	if err := c.Move(Green, false); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if tr.IsSolved() {
		t.Error("Mutating the source cube must not affect the tracker")
	}
}

func TestTrackerConcurrentApplies(t *testing.T) {
	// Moves on the same face commute, so any interleaving of 400 white
	// turns lands back on solved. What matters is that no update is
	// lost and the history sees every move.
	tr := NewTracker()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if err := tr.Apply(W); err != nil {
					t.Errorf("Apply returned error: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if tr.MoveCount() != 400 {
		t.Errorf("History should have 400 moves, got %d", tr.MoveCount())
	}
	if !tr.IsSolved() {
		t.Error("400 white turns should return to solved")
	}
}
