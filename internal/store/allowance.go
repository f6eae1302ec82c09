package store

import (
	"database/sql"
	"fmt"

	"github.com/perryvale/hearth/internal/model"
)

type AllowanceStore struct {
	db DBTX
}

func NewAllowanceStore(db DBTX) *AllowanceStore {
	return &AllowanceStore{db: db}
}

const allowanceCols = `id, member_id, month_year, total_points_earned, total_points_possible, completion_percentage, allowance_amount, age_category, calculated_at`

func scanAllowance(s scanner) (*model.AllowanceCalculation, error) {
	var a model.AllowanceCalculation
	err := s.Scan(
		&a.ID, &a.MemberID, &a.MonthYear, &a.TotalPointsEarned,
		&a.TotalPointsPossible, &a.CompletionPercentage, &a.AllowanceAmount,
		&a.AgeCategory, &a.CalculatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert replaces the calculation for (member, month). The row is fully
// derived, so overwriting is always safe.
func (s *AllowanceStore) Upsert(a model.AllowanceCalculation) (*model.AllowanceCalculation, error) {
	_, err := s.db.Exec(
		`INSERT INTO allowance_calculations
		   (member_id, month_year, total_points_earned, total_points_possible, completion_percentage, allowance_amount, age_category, calculated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(member_id, month_year) DO UPDATE SET
		   total_points_earned = excluded.total_points_earned,
		   total_points_possible = excluded.total_points_possible,
		   completion_percentage = excluded.completion_percentage,
		   allowance_amount = excluded.allowance_amount,
		   age_category = excluded.age_category,
		   calculated_at = CURRENT_TIMESTAMP`,
		a.MemberID, a.MonthYear, a.TotalPointsEarned, a.TotalPointsPossible,
		a.CompletionPercentage, a.AllowanceAmount, a.AgeCategory,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert allowance: %w", err)
	}
	return s.Get(a.MemberID, a.MonthYear)
}

func (s *AllowanceStore) Get(memberID int64, monthYear string) (*model.AllowanceCalculation, error) {
	row := s.db.QueryRow(
		`SELECT `+allowanceCols+` FROM allowance_calculations WHERE member_id = ? AND month_year = ?`,
		memberID, monthYear,
	)
	a, err := scanAllowance(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get allowance: %w", err)
	}
	return a, nil
}
