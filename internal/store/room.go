package store

import (
	"database/sql"
	"fmt"

	"github.com/perryvale/hearth/internal/model"
)

type RoomStore struct {
	db DBTX
}

func NewRoomStore(db DBTX) *RoomStore {
	return &RoomStore{db: db}
}

const roomCols = `id, household_id, name, description, color_code, is_active, created_at, updated_at`

func scanRoom(s scanner) (*model.Room, error) {
	var r model.Room
	err := s.Scan(
		&r.ID, &r.HouseholdID, &r.Name, &r.Description, &r.ColorCode,
		&r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RoomStore) Create(householdID int64, name, description, colorCode string) (*model.Room, error) {
	result, err := s.db.Exec(
		`INSERT INTO rooms (household_id, name, description, color_code) VALUES (?, ?, ?, ?)`,
		householdID, name, description, colorCode,
	)
	if err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *RoomStore) GetByID(id int64) (*model.Room, error) {
	row := s.db.QueryRow(`SELECT `+roomCols+` FROM rooms WHERE id = ?`, id)
	r, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	return r, nil
}

func (s *RoomStore) ListByHousehold(householdID int64) ([]model.Room, error) {
	rows, err := s.db.Query(
		`SELECT `+roomCols+` FROM rooms WHERE household_id = ? AND is_active = 1 ORDER BY name ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, *r)
	}
	return rooms, rows.Err()
}

func (s *RoomStore) Update(id int64, name, description, colorCode string) (*model.Room, error) {
	_, err := s.db.Exec(
		`UPDATE rooms SET name = ?, description = ?, color_code = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, description, colorCode, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	return s.GetByID(id)
}

// Deactivate soft-deletes a room. Its chores keep their history but are no
// longer listed.
func (s *RoomStore) Deactivate(id int64) error {
	_, err := s.db.Exec(
		`UPDATE rooms SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("deactivate room: %w", err)
	}
	return nil
}
