package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cubelab/virtualcube"
	"github.com/cubelab/virtualcube/internal/mirror"
	"github.com/cubelab/virtualcube/internal/recorder"
)

var (
	mirrorRecord      bool
	mirrorLog         bool
	mirrorFlash       bool
	mirrorOrientation bool
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror a smart cube live",
	Long: `Connect to a smart cube over Bluetooth and mirror it: every turn of
the physical cube is applied to the virtual one and shown immediately.

With --record, moves are stored into a session. If a session is already
active it is resumed and stays open on quit; otherwise a new session is
started and ended when the mirror exits.

Keyboard shortcuts:
  s       - Sync full state from the device
  f       - Flash the cube backlight
  b       - Request battery level
  r       - Reset the virtual cube (does not affect recording)
  q/Esc   - Quit`,
	RunE: runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
	mirrorCmd.Flags().BoolVar(&mirrorRecord, "record", false, "Record moves into a session")
	mirrorCmd.Flags().BoolVar(&mirrorLog, "log", false, "Write a JSONL event log")
	mirrorCmd.Flags().BoolVar(&mirrorFlash, "flash-on-solved", false, "Flash the backlight when the cube is solved")
	mirrorCmd.Flags().BoolVar(&mirrorOrientation, "orientation", false, "Show cube orientation updates")
}

func runMirror(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Scanning for %s devices...\n", cfg.Device.NamePrefix)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Device.ScanTimeout)
	defer cancel()

	opts := []mirror.Option{
		mirror.WithDevicePrefix(cfg.Device.NamePrefix),
		mirror.WithScanTimeout(cfg.Device.ScanTimeout),
	}
	if mirrorFlash {
		opts = append(opts, mirror.WithFlashOnSolved(true))
	}

	mc, err := mirror.ConnectFirst(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer mc.Close()

	fmt.Printf("Connected: %s\n", mc.DeviceName())

	// Optional session recording.
	var sess *recorder.Session
	startedHere := false
	if mirrorRecord {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stateFile, err := recorder.NewDefaultStateFile()
		if err != nil {
			return err
		}

		sess = recorder.NewSession(db, stateFile)
		if stateFile.HasActiveSession() {
			if err := sess.Resume(stateFile.ActiveSessionID()); err != nil {
				return err
			}
			fmt.Printf("Resumed session %s (%d moves)\n", sess.SessionID(), sess.MoveCount())
		} else {
			deviceName := mc.DeviceName()
			deviceID := mc.DeviceUUID()
			if _, err := sess.Start(nil, &deviceName, &deviceID); err != nil {
				return err
			}
			startedHere = true
			fmt.Printf("Recording session %s\n", sess.SessionID())
		}
		_ = stateFile.SetLastDevice(mc.DeviceUUID(), mc.DeviceName())
	}

	// Optional JSONL event log.
	var logger *EventLogger
	if mirrorLog {
		logger = NewEventLogger()
		if err := logger.Start(DefaultLogDir()); err != nil {
			return err
		}
		defer logger.Close()

		sessionID := ""
		if sess != nil {
			sessionID = sess.SessionID()
		}
		logger.SetDeviceInfo(mc.DeviceName(), sessionID)
	}

	model := newMirrorModel(mc, sess, logger, cfg.Render.Color)

	mc.OnMove(func(mv virtualcube.Move) {
		if sess != nil {
			_ = sess.Record(mv)
		}
		if logger != nil {
			logger.LogMove(mv.Notation())
		}
		model.events <- mirrorMoveMsg(mv)
	})
	mc.OnSolved(func() {
		model.events <- mirrorSolvedMsg{}
	})
	mc.OnBattery(func(level int) {
		model.events <- mirrorBatteryMsg(level)
	})
	mc.OnOrientationChange(func(o mirror.Orientation) {
		model.events <- mirrorOrientationMsg(o)
	})
	mc.OnDisconnect(func() {
		model.events <- mirrorDisconnectMsg{}
	})

	_ = mc.RequestBattery()
	if mirrorOrientation {
		_ = mc.EnableOrientation()
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("mirror error: %w", err)
	}

	if mirrorOrientation {
		_ = mc.DisableOrientation()
	}

	// End a session we started ourselves; leave resumed ones open.
	if startedHere {
		if err := sess.End(); err != nil {
			return err
		}
		fmt.Printf("Ended session %s (%d moves)\n", sess.SessionID(), sess.MoveCount())
	}
	if logger != nil {
		fmt.Printf("Event log: %s\n", logger.FilePath())
	}

	return nil
}

// Messages
type mirrorMoveMsg virtualcube.Move
type mirrorSolvedMsg struct{}
type mirrorBatteryMsg int
type mirrorOrientationMsg mirror.Orientation
type mirrorDisconnectMsg struct{}

// Model
type mirrorModel struct {
	mirror *mirror.Mirror
	sess   *recorder.Session
	logger *EventLogger
	color  bool

	events chan tea.Msg

	connected   bool
	battery     int
	orientation *mirror.Orientation
	lastMove    string
	lastSpoken  string
	notations   []string
	quitting    bool
}

func newMirrorModel(mc *mirror.Mirror, sess *recorder.Session, logger *EventLogger, color bool) *mirrorModel {
	return &mirrorModel{
		mirror:    mc,
		sess:      sess,
		logger:    logger,
		color:     color,
		events:    make(chan tea.Msg, 100),
		connected: true,
		battery:   -1,
	}
}

func (m *mirrorModel) listenEvents() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *mirrorModel) Init() tea.Cmd {
	return m.listenEvents()
}

func (m *mirrorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if m.logger != nil {
			m.logger.LogKeyPress(key)
		}

		switch key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "s":
			_ = m.mirror.SyncFromDevice()

		case "f":
			_ = m.mirror.FlashBacklight()

		case "b":
			_ = m.mirror.RequestBattery()

		case "r":
			m.mirror.Reset()
			m.lastMove = ""
			m.lastSpoken = ""
			m.notations = nil
		}

	case mirrorMoveMsg:
		move := virtualcube.Move(msg)
		m.lastMove = move.Notation()
		m.lastSpoken = move.Describe()
		m.notations = append(m.notations, m.lastMove)
		return m, m.listenEvents()

	case mirrorSolvedMsg:
		return m, m.listenEvents()

	case mirrorBatteryMsg:
		m.battery = int(msg)
		return m, m.listenEvents()

	case mirrorOrientationMsg:
		o := mirror.Orientation(msg)
		m.orientation = &o
		return m, m.listenEvents()

	case mirrorDisconnectMsg:
		m.connected = false
		return m, m.listenEvents()
	}

	return m, nil
}

func (m *mirrorModel) View() string {
	if m.quitting {
		return "Mirror ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Cube Mirror"))
	b.WriteString("\n\n")

	// Device line
	device := m.mirror.DeviceName()
	if !m.connected {
		device += errorStyle.Render("  [DISCONNECTED]")
	}
	b.WriteString(device)
	if m.battery >= 0 {
		b.WriteString(fmt.Sprintf("  battery %d%%", m.battery))
	}
	b.WriteString("\n")

	// Recording line
	if m.sess != nil {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Recording %s (%d moves)", m.sess.SessionID(), m.sess.MoveCount())))
		b.WriteString("\n")
	}

	if m.orientation != nil {
		b.WriteString(fmt.Sprintf("Up: %s  Front: %s\n", m.orientation.Up.Name(), m.orientation.Front.Name()))
	}
	b.WriteString("\n")

	b.WriteString(RenderCube(m.mirror.Cube(), m.color))

	if m.mirror.IsSolved() {
		b.WriteString(solvedStyle.Render("Solved"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Recent moves
	if m.lastMove != "" {
		b.WriteString(fmt.Sprintf("Last: %s (%s)\n", moveStyle.Render(m.lastMove), m.lastSpoken))
	}
	b.WriteString(fmt.Sprintf("Moves: %d\n", m.mirror.MoveCount()))
	if len(m.notations) > 0 {
		start := 0
		prefix := ""
		if len(m.notations) > 20 {
			start = len(m.notations) - 20
			prefix = "... "
		}
		b.WriteString(prefix)
		b.WriteString(moveStyle.Render(strings.Join(m.notations[start:], " ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s=sync  f=flash  b=battery  r=reset  q=quit"))
	b.WriteString("\n")

	return b.String()
}
