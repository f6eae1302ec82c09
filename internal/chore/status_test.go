package chore

import (
	"testing"
	"time"

	"github.com/perryvale/hearth/internal/model"
)

func dailyChore(last *time.Time) model.Chore {
	return model.Chore{ID: 1, Name: "Dishes", Points: 5, Frequency: model.FrequencyDaily, IsActive: true, LastCompletedAt: last}
}

func TestComputeStatusNeverCompleted(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	status, next := ComputeStatus(dailyChore(nil), false, now)
	if status != StatusAvailable {
		t.Errorf("status = %q, want %q", status, StatusAvailable)
	}
	if next != nil {
		t.Errorf("next = %v, want nil", next)
	}
}

func TestComputeStatusPendingWins(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	status, _ := ComputeStatus(dailyChore(nil), true, now)
	if status != StatusPending {
		t.Errorf("status = %q, want %q", status, StatusPending)
	}
}

func TestComputeStatusRecurrenceWindow(t *testing.T) {
	last := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	c := dailyChore(&last)
	nextAvailable := last.Add(24 * time.Hour)

	// Disabled throughout [last, nextAvailable).
	for _, now := range []time.Time{
		last,
		last.Add(time.Minute),
		last.Add(12 * time.Hour),
		nextAvailable.Add(-time.Second),
	} {
		status, next := ComputeStatus(c, false, now)
		if status != StatusDisabled {
			t.Errorf("at %v: status = %q, want %q", now, status, StatusDisabled)
		}
		if next == nil || !next.Equal(nextAvailable) {
			t.Errorf("at %v: next = %v, want %v", now, next, nextAvailable)
		}
	}

	// Available at and after nextAvailable.
	for _, now := range []time.Time{nextAvailable, nextAvailable.Add(time.Hour)} {
		status, _ := ComputeStatus(c, false, now)
		if status != StatusAvailable {
			t.Errorf("at %v: status = %q, want %q", now, status, StatusAvailable)
		}
	}
}

func TestComputeStatusStatesMutuallyExclusive(t *testing.T) {
	last := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	c := dailyChore(&last)

	// A pending completion masks the recurrence window.
	status, _ := ComputeStatus(c, true, last.Add(time.Hour))
	if status != StatusPending {
		t.Errorf("status = %q, want %q", status, StatusPending)
	}
}
