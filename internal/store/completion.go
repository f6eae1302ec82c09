package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/perryvale/hearth/internal/model"
)

type CompletionStore struct {
	db DBTX
}

func NewCompletionStore(db DBTX) *CompletionStore {
	return &CompletionStore{db: db}
}

// WithTx returns a CompletionStore bound to the given transaction.
func (s *CompletionStore) WithTx(tx *sql.Tx) *CompletionStore {
	return &CompletionStore{db: tx}
}

const completionCols = `id, chore_id, member_id, status, points_earned, completed_at, confirmed_at, week_start, created_at`

func scanCompletion(s scanner) (*model.Completion, error) {
	var c model.Completion
	var confirmedAt sql.NullTime

	err := s.Scan(
		&c.ID, &c.ChoreID, &c.MemberID, &c.Status, &c.PointsEarned,
		&c.CompletedAt, &confirmedAt, &c.WeekStart, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		c.ConfirmedAt = &t
	}
	return &c, nil
}

// CreatePending inserts a new pending completion. points is the chore's
// point value at completion time; it never changes afterwards.
func (s *CompletionStore) CreatePending(choreID, memberID int64, points int, completedAt, weekStart time.Time) (*model.Completion, error) {
	result, err := s.db.Exec(
		`INSERT INTO completions (chore_id, member_id, status, points_earned, completed_at, week_start) VALUES (?, ?, ?, ?, ?, ?)`,
		choreID, memberID, model.CompletionPending, points, completedAt, weekStart,
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *CompletionStore) GetByID(id int64) (*model.Completion, error) {
	row := s.db.QueryRow(`SELECT `+completionCols+` FROM completions WHERE id = ?`, id)
	c, err := scanCompletion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get completion: %w", err)
	}
	return c, nil
}

// Transition moves a pending completion to a terminal status and stamps
// confirmed_at. The status guard in the WHERE clause makes the
// check-and-transition atomic: it reports false when the completion was not
// pending, so two concurrent approvals cannot both win.
func (s *CompletionStore) Transition(id int64, to model.CompletionStatus, at time.Time) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE completions SET status = ?, confirmed_at = ? WHERE id = ? AND status = ?`,
		to, at, id, model.CompletionPending,
	)
	if err != nil {
		return false, fmt.Errorf("transition completion: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// PendingExistsForChore reports whether the chore has an unresolved
// completion. At most one may exist at a time.
func (s *CompletionStore) PendingExistsForChore(choreID int64) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(1) FROM completions WHERE chore_id = ? AND status = ?`,
		choreID, model.CompletionPending,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count pending completions: %w", err)
	}
	return n > 0, nil
}

// PendingChoreIDs returns the set of chore ids in the household that have
// an unresolved completion, for deriving chore display status in one pass.
func (s *CompletionStore) PendingChoreIDs(householdID int64) (map[int64]bool, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT c.chore_id FROM completions c
		 JOIN chores ch ON ch.id = c.chore_id
		 WHERE ch.household_id = ? AND c.status = ?`,
		householdID, model.CompletionPending,
	)
	if err != nil {
		return nil, fmt.Errorf("pending chore ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan chore id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// ListPendingByHousehold returns unresolved completions awaiting parent
// review, newest first.
func (s *CompletionStore) ListPendingByHousehold(householdID int64) ([]model.Completion, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.chore_id, c.member_id, c.status, c.points_earned, c.completed_at, c.confirmed_at, c.week_start, c.created_at
		 FROM completions c
		 JOIN chores ch ON ch.id = c.chore_id
		 WHERE ch.household_id = ? AND c.status = ?
		 ORDER BY c.created_at DESC`,
		householdID, model.CompletionPending,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending completions: %w", err)
	}
	defer rows.Close()

	var completions []model.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, *c)
	}
	return completions, rows.Err()
}

func (s *CompletionStore) ListByChore(choreID int64) ([]model.Completion, error) {
	rows, err := s.db.Query(
		`SELECT `+completionCols+` FROM completions WHERE chore_id = ? ORDER BY completed_at DESC`,
		choreID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var completions []model.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, *c)
	}
	return completions, rows.Err()
}
