// Virtualcube - CLI application for turning, mirroring and recording a
// virtual Rubik's cube.
package main

import (
	"github.com/cubelab/virtualcube/internal/cli"
)

func main() {
	cli.Execute()
}
