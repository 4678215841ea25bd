package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Snapshot represents a stored cube state at a point in a session.
type Snapshot struct {
	SnapshotID int64
	SessionID  string
	MoveIndex  int
	State      string
	CreatedAt  string
}

// SnapshotRepository provides CRUD operations for snapshots.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores a cube state for a session at the given move index.
// Overwrites any existing snapshot at the same index.
func (r *SnapshotRepository) Save(sessionID string, moveIndex int, state string) error {
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO snapshots (session_id, move_index, state, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, moveIndex, state, createdAt)

	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Latest retrieves the snapshot with the highest move index for a session.
// Returns nil if the session has no snapshots.
func (r *SnapshotRepository) Latest(sessionID string) (*Snapshot, error) {
	var s Snapshot
	err := r.db.QueryRow(`
		SELECT snapshot_id, session_id, move_index, state, created_at
		FROM snapshots
		WHERE session_id = ?
		ORDER BY move_index DESC
		LIMIT 1
	`, sessionID).Scan(&s.SnapshotID, &s.SessionID, &s.MoveIndex, &s.State, &s.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	return &s, nil
}

// BySession retrieves all snapshots for a session in move order.
func (r *SnapshotRepository) BySession(sessionID string) ([]Snapshot, error) {
	rows, err := r.db.Query(`
		SELECT snapshot_id, session_id, move_index, state, created_at
		FROM snapshots
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		err := rows.Scan(&s.SnapshotID, &s.SessionID, &s.MoveIndex, &s.State, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, nil
}
