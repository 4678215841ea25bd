package virtualcube

import (
	"errors"
	"testing"
)

func TestMoveNotation(t *testing.T) {
	cases := []struct {
		move Move
		want string
	}{
		{W, "W"},
		{WPrime, "W'"},
		{G, "G"},
		{GPrime, "G'"},
		{R, "R"},
		{O, "O"},
		{B, "B"},
		{YPrime, "Y'"},
	}
	for _, tc := range cases {
		if got := tc.move.Notation(); got != tc.want {
			t.Errorf("Notation() = %q, want %q", got, tc.want)
		}
	}
}

func TestMoveDescribe(t *testing.T) {
	if got := W.Describe(); got != "white face clockwise" {
		t.Errorf("W.Describe() = %q", got)
	}
	if got := BPrime.Describe(); got != "blue face counter-clockwise" {
		t.Errorf("BPrime.Describe() = %q", got)
	}
}

func TestMoveInverse(t *testing.T) {
	for _, m := range AllMoves {
		inv := m.Inverse()
		if inv.Face != m.Face {
			t.Errorf("Inverse of %v changed the face", m)
		}
		if inv.Clockwise == m.Clockwise {
			t.Errorf("Inverse of %v should flip direction", m)
		}
		if inv.Inverse() != m {
			t.Errorf("Double inverse of %v should be the original", m)
		}
		if !Cancels(m, inv) {
			t.Errorf("%v and its inverse should cancel", m)
		}
	}

	if Cancels(W, W) {
		t.Error("A move should not cancel itself")
	}
	if Cancels(W, GPrime) {
		t.Error("Moves on different faces should not cancel")
	}
}

func TestParseMove(t *testing.T) {
	cases := []struct {
		in   string
		want Move
	}{
		{"W", W},
		{"w", W},
		{"W'", WPrime},
		{"W`", WPrime},
		{"g", G},
		{"G'", GPrime},
		{"R", R},
		{"o'", OPrime},
		{"B", B},
		{"Y'", YPrime},
		{" Y ", Y},
	}
	for _, tc := range cases {
		got, err := ParseMove(tc.in)
		if err != nil {
			t.Errorf("ParseMove(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseMoveRejectsInvalid(t *testing.T) {
	invalid := []string{"", "X", "W3", "W''", "'W", "WW", "W2"}
	for _, in := range invalid {
		if _, err := ParseMove(in); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) should fail with ErrInvalidNotation, got %v", in, err)
		}
	}
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("W G' R2 Y")
	if err != nil {
		t.Fatalf("ParseMoves returned error: %v", err)
	}
	want := []Move{W, GPrime, R, R, Y}
	if len(moves) != len(want) {
		t.Fatalf("ParseMoves returned %d moves, want %d", len(moves), len(want))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("Move %d = %v, want %v", i, moves[i], want[i])
		}
	}
}

func TestParseMovesEmpty(t *testing.T) {
	moves, err := ParseMoves("")
	if err != nil {
		t.Fatalf("ParseMoves(\"\") returned error: %v", err)
	}
	if len(moves) != 0 {
		t.Errorf("ParseMoves(\"\") should return no moves, got %d", len(moves))
	}
}

func TestParseMovesFailsFast(t *testing.T) {
	// A bad token fails the whole parse instead of being skipped.
	if _, err := ParseMoves("W X G"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("ParseMoves with a bad token should fail with ErrInvalidNotation, got %v", err)
	}
}

func TestFormatMoves(t *testing.T) {
	moves := []Move{W, GPrime, Y, BPrime}
	if got := FormatMoves(moves); got != "W G' Y B'" {
		t.Errorf("FormatMoves = %q, want %q", got, "W G' Y B'")
	}
	if got := FormatMoves(nil); got != "" {
		t.Errorf("FormatMoves(nil) = %q, want empty", got)
	}
}

func TestNotationRoundTrip(t *testing.T) {
	in := "W G' R O' B2 Y"
	moves, err := ParseMoves(in)
	if err != nil {
		t.Fatalf("ParseMoves returned error: %v", err)
	}
	// B2 expands, so the canonical form spells both quarter turns.
	if got := FormatMoves(moves); got != "W G' R O' B B Y" {
		t.Errorf("Round trip = %q, want %q", got, "W G' R O' B B Y")
	}
}

func TestAllMoves(t *testing.T) {
	if len(AllMoves) != 12 {
		t.Fatalf("AllMoves should list 12 moves, got %d", len(AllMoves))
	}
	seen := make(map[Move]bool)
	for _, m := range AllMoves {
		if !m.Face.Valid() {
			t.Errorf("Move %v has an invalid face", m)
		}
		if seen[m] {
			t.Errorf("Move %v appears twice", m)
		}
		seen[m] = true
	}
}
