package virtualcube

// Predefined moves for convenience.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	cube.Apply(virtualcube.W, virtualcube.G, virtualcube.WPrime)
var (
	// White face moves
	W      = Move{Face: White, Clockwise: true}
	WPrime = Move{Face: White, Clockwise: false}

	// Green face moves
	G      = Move{Face: Green, Clockwise: true}
	GPrime = Move{Face: Green, Clockwise: false}

	// Red face moves
	R      = Move{Face: Red, Clockwise: true}
	RPrime = Move{Face: Red, Clockwise: false}

	// Orange face moves
	O      = Move{Face: Orange, Clockwise: true}
	OPrime = Move{Face: Orange, Clockwise: false}

	// Blue face moves
	B      = Move{Face: Blue, Clockwise: true}
	BPrime = Move{Face: Blue, Clockwise: false}

	// Yellow face moves
	Y      = Move{Face: Yellow, Clockwise: true}
	YPrime = Move{Face: Yellow, Clockwise: false}
)

// AllMoves lists the twelve quarter turns, clockwise first per face in
// face-code order.
var AllMoves = []Move{W, WPrime, G, GPrime, R, RPrime, O, OPrime, B, BPrime, Y, YPrime}
