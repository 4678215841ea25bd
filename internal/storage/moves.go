package storage

import (
	"database/sql"
	"fmt"

	"github.com/cubelab/virtualcube"
)

// MoveRecord represents a move in the database.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	Face      string
	Clockwise bool
	Notation  string
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Append stores a single move at the given index.
func (r *MoveRepository) Append(sessionID string, moveIndex int, move virtualcube.Move) error {
	_, err := r.db.Exec(`
		INSERT INTO moves (session_id, move_index, face, clockwise, notation)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, moveIndex, move.Face.String(), move.Clockwise, move.Notation())

	if err != nil {
		return fmt.Errorf("failed to append move: %w", err)
	}

	return nil
}

// CreateBatch stores multiple moves in a single transaction, starting at
// the given index.
func (r *MoveRepository) CreateBatch(sessionID string, moves []virtualcube.Move, startIndex int) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, move := range moves {
			_, err := tx.Exec(`
				INSERT INTO moves (session_id, move_index, face, clockwise, notation)
				VALUES (?, ?, ?, ?, ?)
			`, sessionID, startIndex+i, move.Face.String(), move.Clockwise, move.Notation())
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// BySession retrieves all moves for a session in order.
func (r *MoveRepository) BySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, move_index, face, clockwise, notation
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.Face, &m.Clockwise, &m.Notation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, nil
}

// NextIndex returns the next free move index for a session.
func (r *MoveRepository) NextIndex(sessionID string) (int, error) {
	var maxIndex int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(move_index), -1) FROM moves WHERE session_id = ?
	`, sessionID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max move index: %w", err)
	}
	return maxIndex + 1, nil
}

// Count returns the number of moves for a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves converts MoveRecords back into model moves.
func ToMoves(records []MoveRecord) ([]virtualcube.Move, error) {
	moves := make([]virtualcube.Move, len(records))
	for i, r := range records {
		face, err := virtualcube.ParseColor(r.Face)
		if err != nil {
			return nil, fmt.Errorf("move %d has invalid face %q: %w", r.MoveIndex, r.Face, err)
		}
		moves[i] = virtualcube.Move{Face: face, Clockwise: r.Clockwise}
	}
	return moves, nil
}
