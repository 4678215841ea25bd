package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube"
	"github.com/cubelab/virtualcube/internal/recorder"
	"github.com/cubelab/virtualcube/internal/storage"
)

var applyState string

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply a move sequence and show the result",
	Long: `Apply a sequence of face turns to a cube and print the resulting net.

Moves use face letters W, G, R, O, B, Y. An apostrophe marks a
counter-clockwise turn and a 2 doubles the turn:

  virtualcube apply "W G' R2"
  virtualcube apply --state <54 letters> "Y B'"

When a recording session is active the moves continue that session and
are stored. Otherwise the sequence is applied to a throwaway cube,
starting from solved or from --state.

The sequence is validated before anything is applied; an invalid token
leaves the cube untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVar(&applyState, "state", "", "54-letter cube state to start from (default: solved)")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	moves, err := virtualcube.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return err
	}

	if stateFile.HasActiveSession() && applyState == "" {
		return applyToSession(cfg.Render.Color, stateFile, moves)
	}

	cube := virtualcube.NewCube()
	if applyState != "" {
		cube, err = storage.DecodeState(applyState)
		if err != nil {
			return fmt.Errorf("invalid state: %w", err)
		}
	}

	if err := cube.Apply(moves...); err != nil {
		return err
	}

	fmt.Printf("Applied: %s\n\n", virtualcube.FormatMoves(moves))
	fmt.Print(RenderCube(cube, cfg.Render.Color))
	fmt.Printf("\nState: %s\n", storage.EncodeState(cube))
	if cube.IsSolved() {
		fmt.Println("Solved")
	}

	return nil
}

// applyToSession records the moves into the active session and leaves it
// open.
func applyToSession(color bool, stateFile *recorder.StateFile, moves []virtualcube.Move) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sess := recorder.NewSession(db, stateFile)
	if err := sess.Resume(stateFile.ActiveSessionID()); err != nil {
		return err
	}

	for _, m := range moves {
		if err := sess.Record(m); err != nil {
			return err
		}
	}

	cube := sess.Cube()
	fmt.Printf("Applied to session %s: %s\n\n", sess.SessionID(), virtualcube.FormatMoves(moves))
	fmt.Print(RenderCube(cube, color))
	fmt.Printf("\nMoves recorded: %d\n", sess.MoveCount())
	if cube.IsSolved() {
		fmt.Println("Solved")
	}

	return nil
}
