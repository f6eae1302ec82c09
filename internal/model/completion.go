package model

import "time"

// CompletionStatus is the lifecycle state of a single completion record.
// Pending completions transition to exactly one of completed or rejected;
// both are terminal.
type CompletionStatus string

const (
	CompletionPending   CompletionStatus = "pending"
	CompletionCompleted CompletionStatus = "completed"
	CompletionRejected  CompletionStatus = "rejected"
)

type Completion struct {
	ID           int64            `json:"id"`
	ChoreID      int64            `json:"chore_id"`
	MemberID     int64            `json:"member_id"`
	Status       CompletionStatus `json:"status"`
	PointsEarned int              `json:"points_earned"`
	CompletedAt  time.Time        `json:"completed_at"`
	ConfirmedAt  *time.Time       `json:"confirmed_at"`
	WeekStart    time.Time        `json:"week_start"`
	CreatedAt    time.Time        `json:"created_at"`
}

// WeeklyPoints is one row per (member, week). points_capped is recomputed
// inside the confirming transaction, never lazily at read time.
type WeeklyPoints struct {
	ID           int64     `json:"id"`
	MemberID     int64     `json:"member_id"`
	WeekStart    time.Time `json:"week_start"`
	WeekEnd      time.Time `json:"week_end"`
	PointsEarned int       `json:"points_earned"`
	PointsCapped int       `json:"points_capped"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type WeeklyStatus struct {
	MemberID          int64     `json:"member_id"`
	WeekStart         time.Time `json:"week_start"`
	CurrentWeekPoints int       `json:"current_week_points"`
	MaxWeeklyPoints   int       `json:"max_weekly_points"`
	PointsRemaining   int       `json:"points_remaining"`
	IsAtCap           bool      `json:"is_at_cap"`
}

// AllowanceCalculation is one row per (member, month). Safe to regenerate
// in full at any time.
type AllowanceCalculation struct {
	ID                   int64       `json:"id"`
	MemberID             int64       `json:"member_id"`
	MonthYear            string      `json:"month_year"`
	TotalPointsEarned    int         `json:"total_points_earned"`
	TotalPointsPossible  int         `json:"total_points_possible"`
	CompletionPercentage float64     `json:"completion_percentage"`
	AllowanceAmount      float64     `json:"allowance_amount"`
	AgeCategory          AgeCategory `json:"age_category"`
	CalculatedAt         time.Time   `json:"calculated_at"`
}
