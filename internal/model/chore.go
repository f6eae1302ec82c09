package model

import "time"

// Frequency is the interval after which a confirmed chore becomes
// available again.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

type Chore struct {
	ID              int64      `json:"id"`
	HouseholdID     int64      `json:"household_id"`
	RoomID          int64      `json:"room_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Points          int        `json:"points"`
	Frequency       Frequency  `json:"frequency"`
	IsActive        bool       `json:"is_active"`
	LastCompletedAt *time.Time `json:"last_completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
