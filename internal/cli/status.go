package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube/internal/config"
	"github.com/cubelab/virtualcube/internal/recorder"
	"github.com/cubelab/virtualcube/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and session status",
	Long:  `Display the database location, stored session counts, any active recording session, and the last connected device.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	state := stateFile.State()

	fmt.Println("virtualcube status")
	fmt.Println("==================")
	fmt.Println()

	cfgPath, _ := configPathInUse()
	fmt.Printf("Config: %s\n", cfgPath)

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Database: %s\n", db.Path())

	sessionRepo := storage.NewSessionRepository(db)
	moveRepo := storage.NewMoveRepository(db)

	sessions, err := sessionRepo.List(10000)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	open := 0
	for _, s := range sessions {
		if s.EndedAt == nil {
			open++
		}
	}
	fmt.Printf("Sessions: %d (%d open)\n", len(sessions), open)

	if last, err := sessionRepo.GetLast(); err == nil && last != nil {
		count, _ := moveRepo.Count(last.SessionID)
		fmt.Printf("Last session: %s (%d moves, started %s)\n", last.SessionID, count, last.StartedAt)
	}

	fmt.Println()

	if state.ActiveSessionID != "" {
		fmt.Printf("Active session: %s\n", state.ActiveSessionID)
		fmt.Println("  (use 'virtualcube session end' to finish, or 'virtualcube mirror --record' to continue)")
	} else {
		fmt.Println("No active session")
	}

	fmt.Println()

	if state.LastDeviceID != "" {
		fmt.Printf("Last device: %s (%s)\n", state.LastDeviceName, state.LastDeviceID)
	} else {
		fmt.Println("No device history")
	}

	return nil
}

// configPathInUse reports which config file path applies and whether a
// file exists there.
func configPathInUse() (string, bool) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return "(unknown)", false
		}
	}
	_, err := os.Stat(path)
	return path, err == nil
}
