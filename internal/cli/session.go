package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube"
	"github.com/cubelab/virtualcube/internal/recorder"
	"github.com/cubelab/virtualcube/internal/storage"
)

var (
	sessionName  string
	sessionLast  bool
	sessionLimit int
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage recording sessions",
	Long: `Manage move recording sessions.

A session collects moves in order, either typed in or mirrored from a
connected smart cube. Start one, record into it with 'virtualcube
mirror --record', and end it when done.`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new recording session",
	RunE:  runSessionStart,
}

var sessionEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the active recording session",
	RunE:  runSessionEnd,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	RunE:  runSessionList,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session's moves and final state",
	RunE:  runSessionShow,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its moves",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

func init() {
	rootCmd.AddCommand(sessionCmd)

	sessionCmd.AddCommand(sessionStartCmd)
	sessionStartCmd.Flags().StringVar(&sessionName, "name", "", "Session name")

	sessionCmd.AddCommand(sessionEndCmd)

	sessionCmd.AddCommand(sessionListCmd)
	sessionListCmd.Flags().IntVar(&sessionLimit, "limit", 20, "Maximum sessions to list")

	sessionCmd.AddCommand(sessionShowCmd)
	sessionShowCmd.Flags().BoolVar(&sessionLast, "last", false, "Show the most recent session")

	sessionCmd.AddCommand(sessionDeleteCmd)
}

func runSessionStart(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return err
	}
	if stateFile.HasActiveSession() {
		return fmt.Errorf("session %s is already active, end it first", stateFile.ActiveSessionID())
	}

	sess := recorder.NewSession(db, stateFile)

	var name *string
	if sessionName != "" {
		name = &sessionName
	}

	id, err := sess.Start(name, nil, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Started session %s\n", id)
	fmt.Println("Record moves with: virtualcube mirror --record")
	return nil
}

func runSessionEnd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return err
	}
	if !stateFile.HasActiveSession() {
		return fmt.Errorf("no active session")
	}

	sess := recorder.NewSession(db, stateFile)
	if err := sess.Resume(stateFile.ActiveSessionID()); err != nil {
		return err
	}
	if err := sess.End(); err != nil {
		return err
	}

	fmt.Printf("Ended session %s (%d moves)\n", sess.SessionID(), sess.MoveCount())
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := storage.NewSessionRepository(db)
	list, err := sessions.List(sessionLimit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No sessions recorded")
		return nil
	}

	fmt.Printf("%-36s  %-12s  %-20s  %-7s  %s\n", "ID", "NAME", "STARTED", "MOVES", "STATUS")
	for _, s := range list {
		name := ""
		if s.Name != nil {
			name = *s.Name
		}
		status := "open"
		if s.EndedAt != nil {
			status = "ended"
		}
		count, err := sessions.GetMoveCount(s.SessionID)
		if err != nil {
			return err
		}
		fmt.Printf("%-36s  %-12s  %-20s  %-7d  %s\n", s.SessionID, name, s.StartedAt, count, status)
	}

	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := storage.NewSessionRepository(db)

	var session *storage.Session
	switch {
	case sessionLast:
		session, err = sessions.GetLast()
	case len(args) == 1:
		session, err = sessions.Get(args[0])
	default:
		return fmt.Errorf("specify a session ID or --last")
	}
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session not found")
	}

	records, err := storage.NewMoveRepository(db).BySession(session.SessionID)
	if err != nil {
		return err
	}
	moves, err := storage.ToMoves(records)
	if err != nil {
		return err
	}

	cube := virtualcube.NewCube()
	if err := cube.Apply(moves...); err != nil {
		return err
	}

	fmt.Printf("Session: %s\n", session.SessionID)
	if session.Name != nil {
		fmt.Printf("Name: %s\n", *session.Name)
	}
	fmt.Printf("Started: %s\n", session.StartedAt)
	if session.EndedAt != nil {
		fmt.Printf("Ended: %s\n", *session.EndedAt)
	}
	if session.DeviceName != nil {
		fmt.Printf("Device: %s\n", *session.DeviceName)
	}
	fmt.Printf("Moves: %d\n", len(moves))
	if len(moves) > 0 {
		fmt.Printf("Sequence: %s\n", virtualcube.FormatMoves(moves))
	}
	fmt.Println()
	fmt.Print(RenderCube(cube, cfg.Render.Color))
	if cube.IsSolved() {
		fmt.Println("Solved")
	}

	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := storage.NewSessionRepository(db)
	session, err := sessions.Get(args[0])
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", args[0])
	}

	if err := sessions.Delete(args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}
