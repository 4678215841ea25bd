package virtualcube

import (
	"fmt"
	"strings"
)

// Move represents a single quarter-turn of one face. The face is
// identified by its color; Clockwise false means counter-clockwise.
type Move struct {
	Face      Color `json:"face"`
	Clockwise bool  `json:"clockwise"`
}

// Notation returns the color-letter notation string for this move:
// the face letter with an apostrophe for counter-clockwise.
// Examples: W, W', G, G'
func (m Move) Notation() string {
	if m.Clockwise {
		return m.Face.String()
	}
	return m.Face.String() + "'"
}

// Describe returns a spoken form of the move, such as
// "white face clockwise".
func (m Move) Describe() string {
	dir := "clockwise"
	if !m.Clockwise {
		dir = "counter-clockwise"
	}
	return m.Face.Name() + " face " + dir
}

// Inverse returns the move that undoes this one: same face, opposite
// direction.
func (m Move) Inverse() Move {
	return Move{Face: m.Face, Clockwise: !m.Clockwise}
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Cancels reports whether b immediately undoes a.
func Cancels(a, b Move) bool {
	return a.Face == b.Face && a.Clockwise != b.Clockwise
}

// ParseMove parses a single quarter-turn token: a color letter with an
// optional ' or ` suffix. Examples: W, W', g, y`
//
// Double-turn tokens such as W2 are sequence-level sugar and are only
// accepted by ParseMoves.
func ParseMove(s string) (Move, error) {
	m, repeat, err := parseToken(s)
	if err != nil {
		return Move{}, err
	}
	if repeat != 1 {
		return Move{}, fmt.Errorf("%w: %q is not a single quarter turn", ErrInvalidNotation, s)
	}
	return m, nil
}

// parseToken parses one notation token into a move plus a repeat count:
// 1 for plain and prime tokens, 2 for double turns.
func parseToken(s string) (Move, int, error) {
	token := strings.TrimSpace(s)
	if token == "" {
		return Move{}, 0, fmt.Errorf("%w: empty token", ErrInvalidNotation)
	}

	face, err := ParseColor(token[:1])
	if err != nil {
		return Move{}, 0, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	m := Move{Face: face, Clockwise: true}
	switch token[1:] {
	case "":
		return m, 1, nil
	case "'", "`":
		m.Clockwise = false
		return m, 1, nil
	case "2":
		return m, 2, nil
	}
	return Move{}, 0, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
}

// ParseMoves parses a whitespace-separated move sequence.
// Example: "W G' R2 Y"
//
// A double turn expands into two identical quarter turns, so the result
// contains quarter turns only. The first invalid token fails the whole
// parse; nothing is silently skipped.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, repeat, err := parseToken(part)
		if err != nil {
			return nil, err
		}
		for i := 0; i < repeat; i++ {
			moves = append(moves, move)
		}
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation
// string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
