package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube/internal/storage"
)

var (
	exportSessionID string
	exportFormat    string
	exportOutput    string
	exportLast      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session data",
	Long:  `Export recorded session data in various formats.`,
}

var exportMovesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Export moves from a session",
	Long: `Export the move sequence from a session in text or JSON format.

Examples:
  virtualcube export moves --last
  virtualcube export moves --id <session_id> --format json
  virtualcube export moves --id <session_id> --format txt -o moves.txt`,
	RunE: runExportMoves,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportMovesCmd)
	exportMovesCmd.Flags().StringVar(&exportSessionID, "id", "", "Session ID to export")
	exportMovesCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last session")
	exportMovesCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportMovesCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExportMoves(cmd *cobra.Command, args []string) error {
	if exportSessionID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	// Open database
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	// Get session ID
	sessionID := exportSessionID
	if exportLast {
		sessionRepo := storage.NewSessionRepository(db)
		session, err := sessionRepo.GetLast()
		if err != nil {
			return fmt.Errorf("failed to get last session: %w", err)
		}
		if session == nil {
			return fmt.Errorf("no sessions found")
		}
		sessionID = session.SessionID
	}

	// Get moves
	moveRepo := storage.NewMoveRepository(db)
	moves, err := moveRepo.BySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}

	if len(moves) == 0 {
		return fmt.Errorf("no moves found for session %s", sessionID)
	}

	// Format output
	var output string

	switch strings.ToLower(exportFormat) {
	case "txt":
		var notations []string
		for _, m := range moves {
			notations = append(notations, m.Notation)
		}
		output = strings.Join(notations, " ")

	case "json":
		type MoveJSON struct {
			MoveIndex int    `json:"move_index"`
			Face      string `json:"face"`
			Clockwise bool   `json:"clockwise"`
			Notation  string `json:"notation"`
		}

		var movesJSON []MoveJSON
		for _, m := range moves {
			movesJSON = append(movesJSON, MoveJSON{
				MoveIndex: m.MoveIndex,
				Face:      m.Face,
				Clockwise: m.Clockwise,
				Notation:  m.Notation,
			})
		}

		data, err := json.MarshalIndent(movesJSON, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		output = string(data)

	default:
		return fmt.Errorf("unknown format: %s (use txt or json)", exportFormat)
	}

	// Write output
	if exportOutput == "" {
		fmt.Println(output)
	} else {
		// Ensure directory exists
		dir := filepath.Dir(exportOutput)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		fmt.Printf("Exported %d moves to %s\n", len(moves), exportOutput)
	}

	return nil
}
