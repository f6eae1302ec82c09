package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/perryvale/hearth/internal/model"
)

type WeeklyPointsStore struct {
	db DBTX
}

func NewWeeklyPointsStore(db DBTX) *WeeklyPointsStore {
	return &WeeklyPointsStore{db: db}
}

// WithTx returns a WeeklyPointsStore bound to the given transaction.
func (s *WeeklyPointsStore) WithTx(tx *sql.Tx) *WeeklyPointsStore {
	return &WeeklyPointsStore{db: tx}
}

const weeklyPointsCols = `id, member_id, week_start, week_end, points_earned, points_capped, created_at, updated_at`

func scanWeeklyPoints(s scanner) (*model.WeeklyPoints, error) {
	var wp model.WeeklyPoints
	err := s.Scan(
		&wp.ID, &wp.MemberID, &wp.WeekStart, &wp.WeekEnd,
		&wp.PointsEarned, &wp.PointsCapped, &wp.CreatedAt, &wp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wp, nil
}

func (s *WeeklyPointsStore) Get(memberID int64, weekStart time.Time) (*model.WeeklyPoints, error) {
	row := s.db.QueryRow(
		`SELECT `+weeklyPointsCols+` FROM weekly_points WHERE member_id = ? AND week_start = ?`,
		memberID, weekStart,
	)
	wp, err := scanWeeklyPoints(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weekly points: %w", err)
	}
	return wp, nil
}

// AddConfirmedPoints increments the member's raw weekly sum and recomputes
// the capped value in one statement. The single upsert is the critical
// section that keeps concurrent confirmations from losing an increment:
// both the addition and MIN() run against the row's committed state inside
// the caller's transaction.
func (s *WeeklyPointsStore) AddConfirmedPoints(memberID int64, weekStart, weekEnd time.Time, points, maxPoints int) (*model.WeeklyPoints, error) {
	_, err := s.db.Exec(
		`INSERT INTO weekly_points (member_id, week_start, week_end, points_earned, points_capped)
		 VALUES (?, ?, ?, ?, MIN(?, ?))
		 ON CONFLICT(member_id, week_start) DO UPDATE SET
		   points_earned = weekly_points.points_earned + excluded.points_earned,
		   points_capped = MIN(weekly_points.points_earned + excluded.points_earned, ?),
		   updated_at = CURRENT_TIMESTAMP`,
		memberID, weekStart, weekEnd, points, points, maxPoints, maxPoints,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert weekly points: %w", err)
	}
	return s.Get(memberID, weekStart)
}

// ListOverlappingMonth returns the member's weekly rows whose week overlaps
// the [monthStart, monthEnd] range.
func (s *WeeklyPointsStore) ListOverlappingMonth(memberID int64, monthStart, monthEnd time.Time) ([]model.WeeklyPoints, error) {
	rows, err := s.db.Query(
		`SELECT `+weeklyPointsCols+` FROM weekly_points
		 WHERE member_id = ? AND week_start <= ? AND week_end >= ?
		 ORDER BY week_start ASC`,
		memberID, monthEnd, monthStart,
	)
	if err != nil {
		return nil, fmt.Errorf("list weekly points: %w", err)
	}
	defer rows.Close()

	var list []model.WeeklyPoints
	for rows.Next() {
		wp, err := scanWeeklyPoints(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weekly points: %w", err)
		}
		list = append(list, *wp)
	}
	return list, rows.Err()
}
