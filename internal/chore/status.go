package chore

import (
	"time"

	"github.com/perryvale/hearth/internal/model"
	"github.com/perryvale/hearth/internal/recurrence"
)

// Status is the derived display state of a chore. It is never stored:
// availability is a pure function of the chore's frequency, its last
// confirmed completion, and whether an unresolved completion exists.
type Status string

const (
	StatusAvailable Status = "available"
	StatusDisabled  Status = "disabled"
	StatusPending   Status = "pending"
)

// ChoreWithStatus is a chore decorated with its derived state for list views.
type ChoreWithStatus struct {
	model.Chore
	Status          Status     `json:"status"`
	NextAvailableAt *time.Time `json:"next_available_at"`
	RoomName        string     `json:"room_name,omitempty"`
}

// ComputeStatus derives a chore's status at the given instant. The three
// states are mutually exclusive: pending wins over everything, then the
// recurrence window decides between disabled and available.
func ComputeStatus(c model.Chore, hasPending bool, now time.Time) (Status, *time.Time) {
	next := recurrence.NextAvailable(c.Frequency, c.LastCompletedAt)
	if hasPending {
		return StatusPending, next
	}
	if next != nil && now.Before(*next) {
		return StatusDisabled, next
	}
	return StatusAvailable, next
}
