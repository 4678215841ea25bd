package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube"
	"github.com/cubelab/virtualcube/internal/recorder"
	"github.com/cubelab/virtualcube/internal/storage"
)

var showState string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a cube state",
	Long: `Print a cube net. Shows the active recording session's cube when one
exists, a stored state passed as a 54-letter string, or the solved cube.

Examples:
  virtualcube show
  virtualcube show --state WWWWWWWWWGGGGGGGGGRRRRRRRRROOOOOOOOOBBBBBBBBBYYYYYYYYY`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showState, "state", "", "54-letter cube state to show")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var cube *virtualcube.Cube
	switch {
	case showState != "":
		cube, err = storage.DecodeState(showState)
		if err != nil {
			return fmt.Errorf("invalid state: %w", err)
		}

	default:
		stateFile, err := recorder.NewDefaultStateFile()
		if err != nil {
			return err
		}
		if stateFile.HasActiveSession() {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			sess := recorder.NewSession(db, stateFile)
			if err := sess.Resume(stateFile.ActiveSessionID()); err != nil {
				return err
			}
			cube = sess.Cube()
			fmt.Printf("Session %s (%d moves)\n\n", sess.SessionID(), sess.MoveCount())
		} else {
			cube = virtualcube.NewCube()
		}
	}

	fmt.Print(RenderCube(cube, cfg.Render.Color))
	if cube.IsSolved() {
		fmt.Println("Solved")
	}

	return nil
}
