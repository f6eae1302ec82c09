package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/perryvale/hearth/internal/model"
)

type MemberStore struct {
	db DBTX
}

func NewMemberStore(db DBTX) *MemberStore {
	return &MemberStore{db: db}
}

// WithTx returns a MemberStore bound to the given transaction.
func (s *MemberStore) WithTx(tx *sql.Tx) *MemberStore {
	return &MemberStore{db: tx}
}

const memberCols = `id, household_id, name, birth_date, is_parent, pin_hash != '', is_active, created_at, updated_at`

func scanMember(s scanner) (*model.Member, error) {
	var m model.Member
	err := s.Scan(
		&m.ID, &m.HouseholdID, &m.Name, &m.BirthDate,
		&m.IsParent, &m.HasPIN, &m.IsActive,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MemberStore) Create(householdID int64, name string, birthDate time.Time, isParent bool) (*model.Member, error) {
	result, err := s.db.Exec(
		`INSERT INTO members (household_id, name, birth_date, is_parent) VALUES (?, ?, ?, ?)`,
		householdID, name, birthDate, isParent,
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *MemberStore) GetByID(id int64) (*model.Member, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *MemberStore) ListByHousehold(householdID int64) ([]model.Member, error) {
	rows, err := s.db.Query(
		`SELECT `+memberCols+` FROM members WHERE household_id = ? AND is_active = 1 ORDER BY name ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (s *MemberStore) Update(id int64, name string, birthDate time.Time, isParent bool) (*model.Member, error) {
	_, err := s.db.Exec(
		`UPDATE members SET name = ?, birth_date = ?, is_parent = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, birthDate, isParent, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return s.GetByID(id)
}

// Deactivate soft-deletes a member. Completions and points history stay.
func (s *MemberStore) Deactivate(id int64) error {
	_, err := s.db.Exec(
		`UPDATE members SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("deactivate member: %w", err)
	}
	return nil
}

func (s *MemberStore) SetPINHash(id int64, hash string) error {
	_, err := s.db.Exec(
		`UPDATE members SET pin_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, hash, id,
	)
	if err != nil {
		return fmt.Errorf("set pin: %w", err)
	}
	return nil
}

func (s *MemberStore) GetPINHash(id int64) (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT pin_hash FROM members WHERE id = ?`, id).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get pin hash: %w", err)
	}
	return hash, nil
}
