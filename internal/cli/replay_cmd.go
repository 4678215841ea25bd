package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube"
	"github.com/cubelab/virtualcube/internal/storage"
)

var (
	replayID   string
	replayLast bool
	replayLog  string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Step through a recorded session",
	Long: `Step through a recorded move sequence one move at a time,
showing the cube after every turn.

Reads moves from a stored session or from a mirror log file:

  virtualcube replay --last
  virtualcube replay --id <session-id>
  virtualcube replay --log mirror_20250812_193102.jsonl
  virtualcube replay --log list

Keyboard shortcuts:
  SPACE/n - Apply the next move
  b       - Take the last move back
  r       - Reset to the start
  q/Esc   - Quit`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVar(&replayID, "id", "", "Session ID to replay")
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the most recent session")
	replayCmd.Flags().StringVar(&replayLog, "log", "", "Mirror log file to replay ('list' to list logs)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var moves []virtualcube.Move
	var source string

	switch {
	case replayLog == "list":
		return listLogs(DefaultLogDir())

	case replayLog != "":
		moves, source, err = movesFromLogFile(replayLog)

	case replayID != "" || replayLast:
		moves, source, err = movesFromSession()

	default:
		return fmt.Errorf("specify --id, --last, or --log")
	}
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return fmt.Errorf("nothing to replay: %s has no moves", source)
	}

	model := newReplayModel(moves, source, cfg.Render.Color)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}

	return nil
}

func movesFromSession() ([]virtualcube.Move, string, error) {
	db, err := openDB()
	if err != nil {
		return nil, "", err
	}
	defer db.Close()

	sessionID := replayID
	if replayLast {
		session, err := storage.NewSessionRepository(db).GetLast()
		if err != nil {
			return nil, "", err
		}
		if session == nil {
			return nil, "", fmt.Errorf("no sessions recorded")
		}
		sessionID = session.SessionID
	}

	records, err := storage.NewMoveRepository(db).BySession(sessionID)
	if err != nil {
		return nil, "", err
	}
	moves, err := storage.ToMoves(records)
	if err != nil {
		return nil, "", err
	}

	if err := verifySnapshots(db, sessionID, moves); err != nil {
		return nil, "", err
	}

	return moves, "session " + sessionID, nil
}

// verifySnapshots replays the stored moves from solved and checks every
// stored snapshot against the recomputed state at its index.
func verifySnapshots(db *storage.DB, sessionID string, moves []virtualcube.Move) error {
	snaps, err := storage.NewSnapshotRepository(db).BySession(sessionID)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return nil
	}

	cube := virtualcube.NewCube()
	applied := 0
	for _, snap := range snaps {
		if snap.MoveIndex > len(moves) {
			return fmt.Errorf("snapshot at move %d exceeds stored history of %d moves", snap.MoveIndex, len(moves))
		}
		for ; applied < snap.MoveIndex; applied++ {
			if err := cube.Apply(moves[applied]); err != nil {
				return err
			}
		}
		expected, err := storage.DecodeState(snap.State)
		if err != nil {
			return fmt.Errorf("corrupt snapshot at move %d: %w", snap.MoveIndex, err)
		}
		if !cube.Equal(expected) {
			return fmt.Errorf("snapshot at move %d does not match the replayed state", snap.MoveIndex)
		}
	}

	return nil
}

func movesFromLogFile(name string) ([]virtualcube.Move, string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(DefaultLogDir(), name)
	}

	log, err := LoadEventLog(path)
	if err != nil {
		return nil, "", err
	}

	notations := MovesFromLog(log)
	moves, err := virtualcube.ParseMoves(strings.Join(notations, " "))
	if err != nil {
		return nil, "", fmt.Errorf("log contains an invalid move: %w", err)
	}

	return moves, "log " + name, nil
}

func listLogs(logDir string) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No log files found. Record one with: virtualcube mirror --log")
			return nil
		}
		return err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			logs = append(logs, e.Name())
		}
	}

	if len(logs) == 0 {
		fmt.Println("No log files found. Record one with: virtualcube mirror --log")
		return nil
	}

	// Names embed the start timestamp, so sorting puts the newest last.
	sort.Strings(logs)

	fmt.Println("Available log files:")
	fmt.Println()
	for _, name := range logs {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println()
	fmt.Println("Usage: virtualcube replay --log <filename>")

	return nil
}

// Replay model

type replayModel struct {
	moves  []virtualcube.Move
	index  int
	cube   *virtualcube.Cube
	color  bool
	source string

	quitting bool
}

func newReplayModel(moves []virtualcube.Move, source string, color bool) *replayModel {
	return &replayModel{
		moves:  moves,
		cube:   virtualcube.NewCube(),
		color:  color,
		source: source,
	}
}

func (m *replayModel) Init() tea.Cmd {
	return nil
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case " ", "n":
		if m.index < len(m.moves) {
			// Stored moves always carry valid faces.
			_ = m.cube.Apply(m.moves[m.index])
			m.index++
		}

	case "b":
		if m.index > 0 {
			m.index--
			_ = m.cube.Apply(m.moves[m.index].Inverse())
		}

	case "r":
		m.index = 0
		m.cube.Reset()
	}

	return m, nil
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Replay"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.source))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Move %d/%d", m.index, len(m.moves)))
	if m.index > 0 {
		b.WriteString("  last: ")
		b.WriteString(moveStyle.Render(m.moves[m.index-1].Notation()))
	}
	if m.index < len(m.moves) {
		b.WriteString("  next: ")
		b.WriteString(moveStyle.Render(m.moves[m.index].Notation()))
	}
	b.WriteString("\n\n")

	b.WriteString(RenderCube(m.cube, m.color))

	if m.cube.IsSolved() {
		b.WriteString(solvedStyle.Render("Solved"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("SPACE/n=next  b=back  r=reset  q=quit"))
	b.WriteString("\n")

	return b.String()
}
