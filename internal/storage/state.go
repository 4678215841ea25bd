package storage

import (
	"fmt"
	"strings"

	"github.com/cubelab/virtualcube"
)

// stateLen is the length of an encoded cube state: 6 faces of 9 stickers.
const stateLen = 54

// EncodeState renders a cube as a 54-character string, one letter per
// sticker, faces in identifier order and stickers in row-major order.
func EncodeState(c *virtualcube.Cube) string {
	var b strings.Builder
	b.Grow(stateLen)
	for face := virtualcube.Color(0); face < virtualcube.NumFaces; face++ {
		stickers, _ := c.ReadFace(face)
		for _, s := range stickers {
			b.WriteString(s.String())
		}
	}
	return b.String()
}

// DecodeState rebuilds a cube from a string produced by EncodeState.
func DecodeState(s string) (*virtualcube.Cube, error) {
	if len(s) != stateLen {
		return nil, fmt.Errorf("state must be %d characters, got %d", stateLen, len(s))
	}

	var state [virtualcube.NumFaces][9]virtualcube.Color
	for i := 0; i < stateLen; i++ {
		color, err := virtualcube.ParseColor(string(s[i]))
		if err != nil {
			return nil, fmt.Errorf("invalid sticker at position %d: %w", i, err)
		}
		state[i/9][i%9] = color
	}

	return virtualcube.RestoreCube(state)
}
