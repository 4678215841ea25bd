package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cubelab/virtualcube"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// stickerStyles colors each sticker with its face color.
var stickerStyles = map[virtualcube.Color]lipgloss.Style{
	virtualcube.White:  lipgloss.NewStyle().Background(lipgloss.Color("15")).Foreground(lipgloss.Color("0")),
	virtualcube.Green:  lipgloss.NewStyle().Background(lipgloss.Color("40")).Foreground(lipgloss.Color("0")),
	virtualcube.Red:    lipgloss.NewStyle().Background(lipgloss.Color("196")).Foreground(lipgloss.Color("15")),
	virtualcube.Orange: lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("0")),
	virtualcube.Blue:   lipgloss.NewStyle().Background(lipgloss.Color("21")).Foreground(lipgloss.Color("15")),
	virtualcube.Yellow: lipgloss.NewStyle().Background(lipgloss.Color("226")).Foreground(lipgloss.Color("0")),
}

// renderSticker renders one sticker, colored when enabled.
func renderSticker(c virtualcube.Color, color bool) string {
	if !color {
		return c.String() + " "
	}
	if style, ok := stickerStyles[c]; ok {
		return style.Render(" "+c.String()) + " "
	}
	return c.String() + " "
}

// RenderCube renders a cube net, optionally colored. The layout matches
// Cube.String: Yellow on top, the Green-Red-Blue-Orange belt in the
// middle, White at the bottom.
func RenderCube(c *virtualcube.Cube, color bool) string {
	if !color {
		return c.String()
	}

	var sb strings.Builder
	indent := strings.Repeat(" ", 9)

	writeRow := func(face virtualcube.Color, row int) {
		stickers, _ := c.ReadFace(face)
		for col := 0; col < 3; col++ {
			sb.WriteString(renderSticker(stickers[row*3+col], true))
		}
	}

	for row := 0; row < 3; row++ {
		sb.WriteString(indent)
		writeRow(virtualcube.Yellow, row)
		sb.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		for _, face := range []virtualcube.Color{virtualcube.Green, virtualcube.Red, virtualcube.Blue, virtualcube.Orange} {
			writeRow(face, row)
		}
		sb.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		sb.WriteString(indent)
		writeRow(virtualcube.White, row)
		sb.WriteString("\n")
	}

	return sb.String()
}
