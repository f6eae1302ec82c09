package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/perryvale/hearth/internal/model"
)

type ChoreStore struct {
	db DBTX
}

func NewChoreStore(db DBTX) *ChoreStore {
	return &ChoreStore{db: db}
}

// WithTx returns a ChoreStore bound to the given transaction.
func (s *ChoreStore) WithTx(tx *sql.Tx) *ChoreStore {
	return &ChoreStore{db: tx}
}

const choreCols = `id, household_id, room_id, name, description, points, frequency, is_active, last_completed_at, created_at, updated_at`

func scanChore(s scanner) (*model.Chore, error) {
	var c model.Chore
	var lastCompleted sql.NullTime

	err := s.Scan(
		&c.ID, &c.HouseholdID, &c.RoomID, &c.Name, &c.Description,
		&c.Points, &c.Frequency, &c.IsActive, &lastCompleted,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastCompleted.Valid {
		t := lastCompleted.Time
		c.LastCompletedAt = &t
	}
	return &c, nil
}

func (s *ChoreStore) Create(householdID, roomID int64, name, description string, points int, frequency model.Frequency) (*model.Chore, error) {
	result, err := s.db.Exec(
		`INSERT INTO chores (household_id, room_id, name, description, points, frequency) VALUES (?, ?, ?, ?, ?, ?)`,
		householdID, roomID, name, description, points, frequency,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chore: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChoreStore) GetByID(id int64) (*model.Chore, error) {
	row := s.db.QueryRow(`SELECT `+choreCols+` FROM chores WHERE id = ?`, id)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	return c, nil
}

func (s *ChoreStore) ListByHousehold(householdID int64) ([]model.Chore, error) {
	return s.list(`SELECT `+choreCols+` FROM chores WHERE household_id = ? AND is_active = 1 ORDER BY name ASC`, householdID)
}

func (s *ChoreStore) ListByRoom(roomID int64) ([]model.Chore, error) {
	return s.list(`SELECT `+choreCols+` FROM chores WHERE room_id = ? AND is_active = 1 ORDER BY name ASC`, roomID)
}

func (s *ChoreStore) list(query string, args ...any) ([]model.Chore, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

func (s *ChoreStore) Update(id int64, roomID int64, name, description string, points int, frequency model.Frequency) (*model.Chore, error) {
	_, err := s.db.Exec(
		`UPDATE chores SET room_id = ?, name = ?, description = ?, points = ?, frequency = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		roomID, name, description, points, frequency, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update chore: %w", err)
	}
	return s.GetByID(id)
}

// Deactivate soft-deletes a chore. Completion history stays intact.
func (s *ChoreStore) Deactivate(id int64) error {
	_, err := s.db.Exec(
		`UPDATE chores SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("deactivate chore: %w", err)
	}
	return nil
}

// SetLastCompleted stamps the confirmed completion time the recurrence
// window is derived from. Called only inside the confirming transaction.
func (s *ChoreStore) SetLastCompleted(id int64, at time.Time) error {
	_, err := s.db.Exec(
		`UPDATE chores SET last_completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		at, id,
	)
	if err != nil {
		return fmt.Errorf("set last completed: %w", err)
	}
	return nil
}
