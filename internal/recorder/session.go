package recorder

import (
	"fmt"
	"sync"

	"github.com/cubelab/virtualcube"
	"github.com/cubelab/virtualcube/internal/storage"
)

// snapshotInterval is the number of moves between stored cube snapshots.
const snapshotInterval = 25

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session manages a move recording session. It keeps its own cube that
// mirrors every recorded move, so snapshots always reflect the stored
// move list.
type Session struct {
	db        *storage.DB
	stateFile *StateFile

	mu        sync.RWMutex
	state     SessionState
	sessionID string
	moveIndex int
	cube      *virtualcube.Cube

	// Repositories
	sessionRepo  *storage.SessionRepository
	moveRepo     *storage.MoveRepository
	snapshotRepo *storage.SnapshotRepository

	// Callbacks
	onMove   func(virtualcube.Move)
	onSolved func()
}

// NewSession creates a new session manager.
func NewSession(db *storage.DB, stateFile *StateFile) *Session {
	return &Session{
		db:           db,
		stateFile:    stateFile,
		state:        StateIdle,
		cube:         virtualcube.NewCube(),
		sessionRepo:  storage.NewSessionRepository(db),
		moveRepo:     storage.NewMoveRepository(db),
		snapshotRepo: storage.NewSnapshotRepository(db),
	}
}

// SetMoveCallback sets the callback for recorded moves.
func (s *Session) SetMoveCallback(cb func(virtualcube.Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// SetSolvedCallback sets the callback fired when a recorded move brings
// the cube back into the solved state.
func (s *Session) SetSolvedCallback(cb func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSolved = cb
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// MoveCount returns the number of moves recorded so far.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moveIndex
}

// Cube returns a copy of the cube as reconstructed from the recorded moves.
func (s *Session) Cube() *virtualcube.Cube {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cube.Clone()
}

// IsSolved reports whether the recorded cube is currently solved.
func (s *Session) IsSolved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cube.IsSolved()
}

// Start begins a new recording session from a solved cube.
func (s *Session) Start(name, deviceName, deviceID *string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", fmt.Errorf("session already in progress")
	}

	sessionID, err := s.sessionRepo.Create(name, deviceName, deviceID)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = sessionID
	s.moveIndex = 0
	s.cube = virtualcube.NewCube()
	s.state = StateRecording

	if s.stateFile != nil {
		_ = s.stateFile.SetActiveSession(sessionID)
	}

	return sessionID, nil
}

// Record applies a move to the session cube and persists it. The move is
// rejected without side effects if its face identifier is invalid.
func (s *Session) Record(move virtualcube.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return fmt.Errorf("no session in progress")
	}

	wasSolved := s.cube.IsSolved()
	if err := s.cube.Apply(move); err != nil {
		return err
	}

	if err := s.moveRepo.Append(s.sessionID, s.moveIndex, move); err != nil {
		return fmt.Errorf("failed to store move: %w", err)
	}
	s.moveIndex++

	if s.moveIndex%snapshotInterval == 0 {
		state := storage.EncodeState(s.cube)
		if err := s.snapshotRepo.Save(s.sessionID, s.moveIndex, state); err != nil {
			return fmt.Errorf("failed to store snapshot: %w", err)
		}
	}

	if s.onMove != nil {
		go s.onMove(move)
	}
	if s.onSolved != nil && !wasSolved && s.cube.IsSolved() {
		go s.onSolved()
	}

	return nil
}

// End finishes the current session and stores a final snapshot.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return fmt.Errorf("no session in progress")
	}

	state := storage.EncodeState(s.cube)
	if err := s.snapshotRepo.Save(s.sessionID, s.moveIndex, state); err != nil {
		return fmt.Errorf("failed to store final snapshot: %w", err)
	}

	if err := s.sessionRepo.End(s.sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded

	if s.stateFile != nil {
		_ = s.stateFile.ClearActiveSession()
	}

	return nil
}

// Resume reopens an interrupted session. The cube is rebuilt from the
// stored move list, and any stored snapshot is checked against the
// replayed state to catch a corrupted history.
func (s *Session) Resume(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return fmt.Errorf("session already in progress")
	}

	session, err := s.sessionRepo.Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	if session.EndedAt != nil {
		return fmt.Errorf("session already ended")
	}

	records, err := s.moveRepo.BySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to load moves: %w", err)
	}
	moves, err := storage.ToMoves(records)
	if err != nil {
		return fmt.Errorf("failed to decode moves: %w", err)
	}

	cube := virtualcube.NewCube()
	latest, err := s.snapshotRepo.Latest(sessionID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if latest != nil {
		if latest.MoveIndex > len(moves) {
			return fmt.Errorf("snapshot at move %d but only %d moves stored", latest.MoveIndex, len(moves))
		}
		if err := cube.Apply(moves[:latest.MoveIndex]...); err != nil {
			return fmt.Errorf("failed to replay moves: %w", err)
		}
		expected, err := storage.DecodeState(latest.State)
		if err != nil {
			return fmt.Errorf("failed to decode snapshot: %w", err)
		}
		if !cube.Equal(expected) {
			return fmt.Errorf("snapshot at move %d does not match replayed state", latest.MoveIndex)
		}
		if err := cube.Apply(moves[latest.MoveIndex:]...); err != nil {
			return fmt.Errorf("failed to replay moves: %w", err)
		}
	} else if err := cube.Apply(moves...); err != nil {
		return fmt.Errorf("failed to replay moves: %w", err)
	}

	s.sessionID = sessionID
	s.moveIndex = len(moves)
	s.cube = cube
	s.state = StateRecording

	if s.stateFile != nil {
		_ = s.stateFile.SetActiveSession(sessionID)
	}

	return nil
}
