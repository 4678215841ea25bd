package virtualcube

import (
	"fmt"
	"strings"
)

// Section identifies one border strip of a face. Each strip covers
// three grid positions in a fixed order; the order matters because
// strip transfers write replacement values positionally.
type Section int

const (
	Top Section = iota
	Left
	Right
	Bottom
)

func (s Section) String() string {
	switch s {
	case Top:
		return "top"
	case Left:
		return "left"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	default:
		return "?"
	}
}

// sectionIndices maps each section to the grid positions it covers, in
// strip order.
var sectionIndices = [4][3]int{
	Top:    {2, 1, 0},
	Left:   {0, 3, 6},
	Right:  {8, 5, 2},
	Bottom: {6, 7, 8},
}

// rotationCW is the clockwise quarter-turn of a face grid: position i
// takes the sticker previously at rotationCW[i]. The center (index 4)
// maps to itself and never moves.
var rotationCW = [9]int{6, 3, 0, 7, 4, 1, 8, 5, 2}

// Face is one 3x3 sticker grid. Positions are row-major:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// with rows numbered top to bottom and columns left to right. No
// spatial orientation is modeled beyond this local indexing.
type Face struct {
	grid [9]Color
}

// newFace returns a face uniformly covered in c.
func newFace(c Color) Face {
	var f Face
	for i := range f.grid {
		f.grid[i] = c
	}
	return f
}

// Stickers returns a copy of the grid in row-major order.
func (f *Face) Stickers() [9]Color {
	return f.grid
}

// rotate turns the grid a quarter-turn clockwise in place.
func (f *Face) rotate() {
	old := f.grid
	for i, from := range rotationCW {
		f.grid[i] = old[from]
	}
}

// swapStrip reads the three stickers along section s in strip order.
// When replace is non-nil the same positions are overwritten with
// replace after the read. The returned values are always the pre-write
// ones.
func (f *Face) swapStrip(s Section, replace *[3]Color) [3]Color {
	idx := sectionIndices[s]
	var prior [3]Color
	for i, pos := range idx {
		prior[i] = f.grid[pos]
	}
	if replace != nil {
		for i, pos := range idx {
			f.grid[pos] = replace[i]
		}
	}
	return prior
}

// Cube is the full 3x3x3 state: six faces addressed by color code, so
// c.ReadFace(White) is the face that shows white when solved.
//
// A Cube is not safe for concurrent use. Moves are multi-step
// read-modify-write sequences, so callers sharing a cube across
// goroutines must serialize access; Tracker provides that.
type Cube struct {
	faces [NumFaces]Face
}

// NewCube returns a solved cube: face i uniformly shows color i.
func NewCube() *Cube {
	c := &Cube{}
	for i := range c.faces {
		c.faces[i] = newFace(Color(i))
	}
	return c
}

// RestoreCube builds a cube from a full sticker dump, face by face in
// row-major order. Every sticker must be a valid color; beyond that the
// state is not checked for reachability.
func RestoreCube(stickers [NumFaces][9]Color) (*Cube, error) {
	c := &Cube{}
	for f := range stickers {
		for i, s := range stickers[f] {
			if !s.Valid() {
				return nil, fmt.Errorf("%w: face %d position %d", ErrInvalidColor, f, i)
			}
		}
		c.faces[f].grid = stickers[f]
	}
	return c, nil
}

// Move turns the given face a quarter-turn. Clockwise is one primitive
// turn; counter-clockwise is exactly three of them. The face identifier
// is validated before any state changes, so a failed Move leaves the
// cube untouched.
func (c *Cube) Move(face Color, clockwise bool) error {
	if !face.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidFace, face)
	}
	turns := 1
	if !clockwise {
		turns = 3
	}
	for i := 0; i < turns; i++ {
		c.turnClockwise(face)
	}
	return nil
}

// Apply runs a sequence of moves, stopping at the first invalid one.
func (c *Cube) Apply(moves ...Move) error {
	for _, m := range moves {
		if err := c.Move(m.Face, m.Clockwise); err != nil {
			return err
		}
	}
	return nil
}

// turnClockwise is the primitive turn: rotate the face's own grid, then
// shift the border strips of the four neighbouring faces one step
// around the ring.
func (c *Cube) turnClockwise(face Color) {
	c.faces[face].rotate()
	c.shiftStrips(neighborsOf(face), sectionsOf(face))
}

// neighborsOf lists the four faces adjacent to face in the ring order
// the strip transfer walks: the codes 0..5 ascending with face and its
// opposite removed, the last two entries swapped, and the whole list
// reversed for even faces.
func neighborsOf(face Color) [4]Color {
	var ring [4]Color
	n := 0
	for code := Color(0); code < NumFaces; code++ {
		if code == face || code == face.Opposite() {
			continue
		}
		ring[n] = code
		n++
	}
	ring[2], ring[3] = ring[3], ring[2]
	if face%2 == 0 {
		ring[0], ring[3] = ring[3], ring[0]
		ring[1], ring[2] = ring[2], ring[1]
	}
	return ring
}

// sectionsOf gives the strip each neighbouring face contributes to the
// ring, aligned index-by-index with neighborsOf. The two poles use the
// same strip on all four neighbours; on the belt faces the ring
// endpoints always use Right and Left.
func sectionsOf(face Color) [4]Section {
	switch face {
	case White:
		return [4]Section{Bottom, Bottom, Bottom, Bottom}
	case Yellow:
		return [4]Section{Top, Top, Top, Top}
	case Green:
		return [4]Section{Top, Right, Bottom, Left}
	case Blue:
		return [4]Section{Right, Top, Left, Bottom}
	case Red:
		return [4]Section{Right, Left, Left, Left}
	default: // Orange
		return [4]Section{Right, Right, Right, Left}
	}
}

// shiftStrips moves the listed strips one step along the ring: strip k
// takes the previous contents of strip k-1 and strip 0 takes the
// previous contents of strip 3. The first visit reads without writing;
// the fifth closes the ring by writing the held values back into strip
// 0.
func (c *Cube) shiftStrips(ring [4]Color, sections [4]Section) {
	var held *[3]Color
	for i := 0; i < 5; i++ {
		k := i % 4
		prior := c.faces[ring[k]].swapStrip(sections[k], held)
		held = &prior
	}
}

// ReadFace returns a row-major copy of one face's stickers without
// modifying the cube.
func (c *Cube) ReadFace(face Color) ([9]Color, error) {
	if !face.Valid() {
		return [9]Color{}, fmt.Errorf("%w: %d", ErrInvalidFace, face)
	}
	return c.faces[face].Stickers(), nil
}

// State returns a full sticker dump of all six faces. The result can be
// fed back through RestoreCube.
func (c *Cube) State() [NumFaces][9]Color {
	var out [NumFaces][9]Color
	for i := range c.faces {
		out[i] = c.faces[i].grid
	}
	return out
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Reset returns the cube to the solved state.
func (c *Cube) Reset() {
	*c = *NewCube()
}

// IsSolved reports whether every face uniformly shows its own color.
func (c *Cube) IsSolved() bool {
	for i := range c.faces {
		for _, s := range c.faces[i].grid {
			if s != Color(i) {
				return false
			}
		}
	}
	return true
}

// Equal reports whether both cubes have identical sticker grids.
func (c *Cube) Equal(other *Cube) bool {
	return c.faces == other.faces
}

// String returns a text net of the cube for inspection: Yellow on top,
// the Green-Red-Blue-Orange belt in the middle, White at the bottom.
// Faces are printed row-major as stored; the net does not re-orient
// rows the way a folded paper net would.
func (c *Cube) String() string {
	var sb strings.Builder

	writeRow := func(face Color, row int) {
		for col := 0; col < 3; col++ {
			sb.WriteString(c.faces[face].grid[row*3+col].String())
			sb.WriteString(" ")
		}
	}

	for row := 0; row < 3; row++ {
		sb.WriteString("      ")
		writeRow(Yellow, row)
		sb.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		for _, face := range []Color{Green, Red, Blue, Orange} {
			writeRow(face, row)
		}
		sb.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		sb.WriteString("      ")
		writeRow(White, row)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Debug returns a one-line summary.
func (c *Cube) Debug() string {
	return fmt.Sprintf("Solved: %v", c.IsSolved())
}
