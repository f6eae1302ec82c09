package model

import "time"

// AgeCategory classifies a member for allowance rate rules.
type AgeCategory string

const (
	AgeChild    AgeCategory = "child"
	AgePreteen  AgeCategory = "preteen"
	AgeTeenager AgeCategory = "teenager"
	AgeAdult    AgeCategory = "adult"
)

type Member struct {
	ID          int64     `json:"id"`
	HouseholdID int64     `json:"household_id"`
	Name        string    `json:"name"`
	BirthDate   time.Time `json:"birth_date"`
	IsParent    bool      `json:"is_parent"`
	HasPIN      bool      `json:"has_pin"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Age returns the member's age in whole years as of now.
func (m Member) Age(now time.Time) int {
	age := now.Year() - m.BirthDate.Year()
	if now.Month() < m.BirthDate.Month() ||
		(now.Month() == m.BirthDate.Month() && now.Day() < m.BirthDate.Day()) {
		age--
	}
	return age
}

// Category maps the member's age to an allowance category.
func (m Member) Category(now time.Time) AgeCategory {
	switch age := m.Age(now); {
	case age < 8:
		return AgeChild
	case age <= 12:
		return AgePreteen
	case age <= 17:
		return AgeTeenager
	default:
		return AgeAdult
	}
}
