package virtualcube

import "errors"

// Sentinel errors for the virtualcube package.
var (
	// Input validation errors
	ErrInvalidFace     = errors.New("virtualcube: invalid face identifier")
	ErrInvalidColor    = errors.New("virtualcube: invalid color")
	ErrInvalidNotation = errors.New("virtualcube: invalid move notation")
)
