// Package virtualcube models a 3x3x3 twisty puzzle as six flat 3x3
// sticker grids addressed by color code.
//
// # Model
//
// Faces are identified by the color they show when solved, with fixed
// codes: White 0, Green 1, Red 2, Orange 3, Blue 4, Yellow 5. Codes of
// opposite faces sum to 5. Each face is a row-major 3x3 grid; a move is
// a quarter-turn of one face, and a counter-clockwise turn is carried
// out as three clockwise turns.
//
// # Quick Start
//
// Create a solved cube and turn some faces:
//
//	cube := virtualcube.NewCube()
//
//	// Turn the white face clockwise, then the green face the other way
//	_ = cube.Move(virtualcube.White, true)
//	_ = cube.Move(virtualcube.Green, false)
//
//	fmt.Println(cube)
//	fmt.Println("Solved:", cube.IsSolved())
//
// Moves can also come from notation or the predefined constants:
//
//	moves, err := virtualcube.ParseMoves("W G' R2 Y")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = cube.Apply(moves...)
//
//	_ = cube.Apply(virtualcube.W, virtualcube.GPrime)
//
// # Notation
//
// Moves are written with color letters: W, G, R, O, B, Y. A trailing
// apostrophe means counter-clockwise (W'), and a trailing 2 is sequence
// sugar for two quarter turns (W2).
//
// # Concurrency
//
// A Cube is single-owner: moves are multi-step read-modify-write
// sequences and are not atomic. When several goroutines share one cube,
// wrap it in a Tracker, which serializes access and also keeps a move
// history with undo:
//
//	t := virtualcube.NewTracker()
//	t.SetSolvedCallback(func() { fmt.Println("solved!") })
//	_ = t.ApplyNotation("W W W W")
package virtualcube
