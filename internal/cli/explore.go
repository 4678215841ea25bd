package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Turn a virtual cube interactively",
	Long: `Open an interactive virtual cube. No device is needed; faces are
turned with the keyboard.

Keyboard shortcuts:
  w/g/r/o/b/y - Turn that face clockwise
  W/G/R/O/B/Y - Turn that face counter-clockwise
  u           - Undo the last move
  ctrl+r      - Reset to solved
  q/Esc       - Quit`,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	model := newExploreModel(cfg.Render.Color)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("explore error: %w", err)
	}
	return nil
}

type exploreModel struct {
	tracker  *virtualcube.Tracker
	color    bool
	lastMove string
	quitting bool
}

func newExploreModel(color bool) *exploreModel {
	return &exploreModel{tracker: virtualcube.NewTracker(), color: color}
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "u":
		if mv, ok := m.tracker.Undo(); ok {
			m.lastMove = mv.Notation() + " undone"
		}

	case "ctrl+r":
		m.tracker.Reset()
		m.lastMove = ""

	case "w", "g", "r", "o", "b", "y", "W", "G", "R", "O", "B", "Y":
		face, err := virtualcube.ParseColor(s)
		if err != nil {
			break
		}
		// Lowercase turns clockwise, uppercase counter-clockwise.
		move := virtualcube.Move{Face: face, Clockwise: s == strings.ToLower(s)}
		if err := m.tracker.Apply(move); err == nil {
			m.lastMove = move.Notation()
		}
	}

	return m, nil
}

func (m *exploreModel) View() string {
	if m.quitting {
		history := m.tracker.History()
		if len(history) == 0 {
			return "No moves made.\n"
		}
		return fmt.Sprintf("Moves: %s\n", virtualcube.FormatMoves(history))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Cube Explorer"))
	b.WriteString("\n\n")

	b.WriteString(RenderCube(m.tracker.Cube(), m.color))

	if m.tracker.IsSolved() {
		b.WriteString(solvedStyle.Render("Solved"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Moves: %d", m.tracker.MoveCount()))
	if m.lastMove != "" {
		b.WriteString("   last: ")
		b.WriteString(moveStyle.Render(m.lastMove))
	}
	b.WriteString("\n")

	if history := m.tracker.History(); len(history) > 0 {
		const tail = 16
		prefix := ""
		if len(history) > tail {
			prefix = "... "
			history = history[len(history)-tail:]
		}
		b.WriteString(prefix + virtualcube.FormatMoves(history))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("w/g/r/o/b/y=turn (shift for counter-clockwise)  u=undo  ctrl+r=reset  q=quit"))
	b.WriteString("\n")

	return b.String()
}
