package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session represents a recorded session.
type Session struct {
	SessionID  string
	Name       *string
	StartedAt  string
	EndedAt    *string
	DeviceName *string
	DeviceID   *string
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session and returns its ID.
func (r *SessionRepository) Create(name, deviceName, deviceID *string) (string, error) {
	sessionID := uuid.New().String()
	startedAt := time.Now().UTC().Format(time.RFC3339)

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, name, started_at, device_name, device_id)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, name, startedAt, deviceName, deviceID)

	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return sessionID, nil
}

// End marks a session as ended.
func (r *SessionRepository) End(sessionID string) error {
	endedAt := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.Exec(`
		UPDATE sessions SET ended_at = ? WHERE session_id = ?
	`, endedAt, sessionID)

	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	return nil
}

// Get retrieves a session by ID. Returns nil if not found.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	var s Session
	err := r.db.QueryRow(`
		SELECT session_id, name, started_at, ended_at, device_name, device_id
		FROM sessions
		WHERE session_id = ?
	`, sessionID).Scan(&s.SessionID, &s.Name, &s.StartedAt, &s.EndedAt, &s.DeviceName, &s.DeviceID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

// GetLast retrieves the most recently started session. Returns nil if the
// database holds no sessions.
func (r *SessionRepository) GetLast() (*Session, error) {
	var s Session
	err := r.db.QueryRow(`
		SELECT session_id, name, started_at, ended_at, device_name, device_id
		FROM sessions
		ORDER BY started_at DESC
		LIMIT 1
	`).Scan(&s.SessionID, &s.Name, &s.StartedAt, &s.EndedAt, &s.DeviceName, &s.DeviceID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last session: %w", err)
	}

	return &s, nil
}

// List retrieves sessions ordered by start time, most recent first.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	rows, err := r.db.Query(`
		SELECT session_id, name, started_at, ended_at, device_name, device_id
		FROM sessions
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		err := rows.Scan(&s.SessionID, &s.Name, &s.StartedAt, &s.EndedAt, &s.DeviceName, &s.DeviceID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}

// Delete removes a session and its moves and snapshots.
func (r *SessionRepository) Delete(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetMoveCount returns the number of moves recorded for a session.
func (r *SessionRepository) GetMoveCount(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}
