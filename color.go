package virtualcube

import (
	"fmt"
	"strings"
)

// Color is both a sticker color and a face identifier: every face is
// addressed by the code of the color it shows when solved. The codes
// are part of the public API and never change:
//
//	White 0, Green 1, Red 2, Orange 3, Blue 4, Yellow 5
//
// Codes of opposite faces sum to 5.
type Color byte

const (
	White  Color = 0
	Green  Color = 1
	Red    Color = 2
	Orange Color = 3
	Blue   Color = 4
	Yellow Color = 5
)

// NumFaces is the number of faces on the cube, which is also the number
// of colors.
const NumFaces = 6

// Valid reports whether c is one of the six cube colors.
func (c Color) Valid() bool {
	return c < NumFaces
}

// Opposite returns the color of the opposing face. The pairs are
// White/Yellow, Green/Blue and Red/Orange.
func (c Color) Opposite() Color {
	return 5 - c
}

// String returns the single-letter form: W, G, R, O, B or Y.
func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Green:
		return "G"
	case Red:
		return "R"
	case Orange:
		return "O"
	case Blue:
		return "B"
	case Yellow:
		return "Y"
	default:
		return "?"
	}
}

// Name returns the lower-case color name, such as "white".
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Green:
		return "green"
	case Red:
		return "red"
	case Orange:
		return "orange"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// ParseColor converts a color letter or full color name into a Color.
// Both cases are accepted: "W", "w" and "white" all parse to White.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "white":
		return White, nil
	case "g", "green":
		return Green, nil
	case "r", "red":
		return Red, nil
	case "o", "orange":
		return Orange, nil
	case "b", "blue":
		return Blue, nil
	case "y", "yellow":
		return Yellow, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}
