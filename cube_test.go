package virtualcube

import (
	"errors"
	"strings"
	"testing"
)

// scrambled returns a cube with a fixed non-trivial state.
func scrambled(t *testing.T) *Cube {
	t.Helper()
	c := NewCube()
	moves, err := ParseMoves("W G' R O2 B Y' G W' R' B2 Y O")
	if err != nil {
		t.Fatalf("Failed to parse scramble: %v", err)
	}
	if err := c.Apply(moves...); err != nil {
		t.Fatalf("Failed to apply scramble: %v", err)
	}
	if c.IsSolved() {
		t.Fatal("Scramble left the cube solved")
	}
	return c
}

func TestColorOpposites(t *testing.T) {
	pairs := map[Color]Color{
		White:  Yellow,
		Green:  Blue,
		Red:    Orange,
		Orange: Red,
		Blue:   Green,
		Yellow: White,
	}
	for c, want := range pairs {
		if got := c.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, want %v", c, got, want)
		}
		if c.Opposite().Opposite() != c {
			t.Errorf("Opposite of opposite of %v should be %v", c, c)
		}
		if c.Opposite() == c {
			t.Errorf("%v should not be its own opposite", c)
		}
	}
}

func TestColorCodes(t *testing.T) {
	// The codes are public API and must not drift.
	codes := []struct {
		color Color
		code  byte
	}{
		{White, 0}, {Green, 1}, {Red, 2}, {Orange, 3}, {Blue, 4}, {Yellow, 5},
	}
	for _, tc := range codes {
		if byte(tc.color) != tc.code {
			t.Errorf("%v should have code %d, got %d", tc.color.Name(), tc.code, byte(tc.color))
		}
	}
}

func TestParseColor(t *testing.T) {
	valid := map[string]Color{
		"W": White, "w": White, "white": White, "WHITE": White,
		"G": Green, "green": Green,
		"R": Red, "red": Red,
		"O": Orange, "orange": Orange,
		"B": Blue, "blue": Blue,
		"Y": Yellow, "yellow": Yellow,
	}
	for in, want := range valid {
		got, err := ParseColor(in)
		if err != nil {
			t.Errorf("ParseColor(%q) returned error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseColor(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "X", "purple", "WG"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) should fail with ErrInvalidColor, got %v", in, err)
		}
	}
}

func TestNewCubeIsSolved(t *testing.T) {
	c := NewCube()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
}

func TestNewCubeFaceColors(t *testing.T) {
	c := NewCube()
	for face := Color(0); face < NumFaces; face++ {
		grid, err := c.ReadFace(face)
		if err != nil {
			t.Fatalf("ReadFace(%v) returned error: %v", face, err)
		}
		for i, s := range grid {
			if s != face {
				t.Errorf("Face %v position %d should be %v, got %v", face, i, face, s)
			}
		}
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	c := NewCube()
	if err := c.Move(Red, true); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if c.IsSolved() {
		t.Error("Cube should not be solved after a single move")
	}
}

func TestFaceRotationPermutation(t *testing.T) {
	// Give the white face a distinctive pattern and turn it once. The
	// face's own grid must follow the quarter-turn permutation exactly;
	// the neighbouring strips do not feed into this face.
	state := NewCube().State()
	state[White] = [9]Color{White, Green, Red, Orange, Blue, Yellow, White, Green, Red}
	c, err := RestoreCube(state)
	if err != nil {
		t.Fatalf("RestoreCube returned error: %v", err)
	}

	if err := c.Move(White, true); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}

	got, _ := c.ReadFace(White)
	want := [9]Color{White, Orange, White, Green, Blue, Green, Red, Yellow, Red}
	if got != want {
		t.Errorf("Rotated white face = %v, want %v", got, want)
	}
}

func TestWhiteClockwiseFromSolved(t *testing.T) {
	c := NewCube()
	if err := c.Move(White, true); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}

	// The turned face and its opposite stay uniform.
	whiteFace, _ := c.ReadFace(White)
	yellowFace, _ := c.ReadFace(Yellow)
	for i := 0; i < 9; i++ {
		if whiteFace[i] != White {
			t.Errorf("White face position %d should stay white, got %v", i, whiteFace[i])
		}
		if yellowFace[i] != Yellow {
			t.Errorf("Yellow face position %d should stay yellow, got %v", i, yellowFace[i])
		}
	}

	// The bottom rows of the belt faces cycle one step.
	wantBottom := map[Color]Color{
		Green:  Red,
		Red:    Blue,
		Blue:   Orange,
		Orange: Green,
	}
	for face, want := range wantBottom {
		grid, _ := c.ReadFace(face)
		for _, pos := range []int{6, 7, 8} {
			if grid[pos] != want {
				t.Errorf("Face %v position %d should be %v, got %v", face, pos, want, grid[pos])
			}
		}
		// The two upper rows are untouched.
		for pos := 0; pos < 6; pos++ {
			if grid[pos] != face {
				t.Errorf("Face %v position %d should stay %v, got %v", face, pos, face, grid[pos])
			}
		}
	}

	t.Log("\n" + c.String())
}

func TestFourTurnsReturnToStart_AllFaces(t *testing.T) {
	base := scrambled(t)
	for face := Color(0); face < NumFaces; face++ {
		c := base.Clone()
		for i := 0; i < 4; i++ {
			if err := c.Move(face, true); err != nil {
				t.Fatalf("Move(%v) returned error: %v", face, err)
			}
		}
		if !c.Equal(base) {
			t.Errorf("%v x 4 should return to the starting state", face)
			t.Log("\n" + c.String())
		}
	}
}

func TestCounterClockwiseIsThreeClockwise_AllFaces(t *testing.T) {
	base := scrambled(t)
	for face := Color(0); face < NumFaces; face++ {
		ccw := base.Clone()
		if err := ccw.Move(face, false); err != nil {
			t.Fatalf("Move(%v) returned error: %v", face, err)
		}

		cw3 := base.Clone()
		for i := 0; i < 3; i++ {
			if err := cw3.Move(face, true); err != nil {
				t.Fatalf("Move(%v) returned error: %v", face, err)
			}
		}

		if !ccw.Equal(cw3) {
			t.Errorf("%v counter-clockwise should equal three clockwise turns", face)
		}
	}
}

func TestMoveThenInverseRestores_AllFaces(t *testing.T) {
	base := scrambled(t)
	for face := Color(0); face < NumFaces; face++ {
		c := base.Clone()
		if err := c.Move(face, true); err != nil {
			t.Fatalf("Move returned error: %v", err)
		}
		if err := c.Move(face, false); err != nil {
			t.Fatalf("Move returned error: %v", err)
		}
		if !c.Equal(base) {
			t.Errorf("%v then its inverse should restore the starting state", face)
		}
	}
}

func TestOppositeFaceUntouched_AllFaces(t *testing.T) {
	base := scrambled(t)
	for face := Color(0); face < NumFaces; face++ {
		c := base.Clone()
		before, _ := c.ReadFace(face.Opposite())
		if err := c.Move(face, true); err != nil {
			t.Fatalf("Move returned error: %v", err)
		}
		after, _ := c.ReadFace(face.Opposite())
		if before != after {
			t.Errorf("Turning %v must not touch the %v face", face, face.Opposite())
		}
	}
}

func TestRedOrangeMovesCommute(t *testing.T) {
	// Red and Orange are an opposite pair: their turns touch disjoint
	// sticker sets, so the order of application does not matter.
	bases := []*Cube{NewCube(), scrambled(t)}
	for _, base := range bases {
		ro := base.Clone()
		if err := ro.Apply(R, O); err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}

		or := base.Clone()
		if err := or.Apply(O, R); err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}

		if !ro.Equal(or) {
			t.Error("Red then Orange should equal Orange then Red")
			t.Log("\n" + ro.String())
			t.Log("\n" + or.String())
		}
	}
}

func TestStickerCountsPreserved(t *testing.T) {
	c := NewCube()
	seq := "W G' R B2 Y O' W2 G R' Y' B O"
	for i := 0; i < 3; i++ {
		moves, err := ParseMoves(seq)
		if err != nil {
			t.Fatalf("Failed to parse sequence: %v", err)
		}
		if err := c.Apply(moves...); err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}
	}

	counts := make(map[Color]int)
	for face := Color(0); face < NumFaces; face++ {
		grid, _ := c.ReadFace(face)
		for _, s := range grid {
			counts[s]++
		}
	}
	for color := Color(0); color < NumFaces; color++ {
		if counts[color] != 9 {
			t.Errorf("Color %v should appear 9 times, got %d", color, counts[color])
		}
	}
}

func TestMoveRejectsInvalidFace(t *testing.T) {
	c := NewCube()
	before := c.State()

	err := c.Move(Color(6), true)
	if !errors.Is(err, ErrInvalidFace) {
		t.Errorf("Move with face 6 should fail with ErrInvalidFace, got %v", err)
	}
	if c.State() != before {
		t.Error("Failed move must leave the cube untouched")
	}

	if err := c.Move(Color(250), false); !errors.Is(err, ErrInvalidFace) {
		t.Errorf("Move with face 250 should fail with ErrInvalidFace, got %v", err)
	}
}

func TestReadFaceRejectsInvalidFace(t *testing.T) {
	c := NewCube()
	if _, err := c.ReadFace(Color(9)); !errors.Is(err, ErrInvalidFace) {
		t.Errorf("ReadFace with face 9 should fail with ErrInvalidFace, got %v", err)
	}
}

func TestRestoreCubeRoundTrip(t *testing.T) {
	base := scrambled(t)
	restored, err := RestoreCube(base.State())
	if err != nil {
		t.Fatalf("RestoreCube returned error: %v", err)
	}
	if !restored.Equal(base) {
		t.Error("Restored cube should equal the original")
	}
}

func TestRestoreCubeRejectsInvalidSticker(t *testing.T) {
	state := NewCube().State()
	state[2][7] = Color(9)
	if _, err := RestoreCube(state); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("RestoreCube should fail with ErrInvalidColor, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewCube()
	clone := c.Clone()
	if err := clone.Move(Green, true); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if !c.IsSolved() {
		t.Error("Moving a clone must not change the original")
	}
	if clone.IsSolved() {
		t.Error("Clone should have moved")
	}
}

func TestResetReturnsToSolved(t *testing.T) {
	c := scrambled(t)
	c.Reset()
	if !c.IsSolved() {
		t.Error("Cube should be solved after reset")
	}
}

func TestStringNetShape(t *testing.T) {
	c := NewCube()
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 9 {
		t.Errorf("Net should have 9 lines, got %d", len(lines))
	}
	t.Log("\n" + s)
}
