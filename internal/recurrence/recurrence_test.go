package recurrence

import (
	"testing"
	"time"

	"github.com/perryvale/hearth/internal/model"
)

func TestNextAvailableNeverCompleted(t *testing.T) {
	if got := NextAvailable(model.FrequencyDaily, nil); got != nil {
		t.Errorf("NextAvailable(daily, nil) = %v, want nil", got)
	}
}

func TestNextAvailableDaily(t *testing.T) {
	last := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	got := NextAvailable(model.FrequencyDaily, &last)
	want := last.Add(24 * time.Hour)
	if got == nil || !got.Equal(want) {
		t.Errorf("NextAvailable(daily, %v) = %v, want %v", last, got, want)
	}
}

func TestNextAvailableWeekly(t *testing.T) {
	last := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	got := NextAvailable(model.FrequencyWeekly, &last)
	want := last.Add(7 * 24 * time.Hour)
	if got == nil || !got.Equal(want) {
		t.Errorf("NextAvailable(weekly, %v) = %v, want %v", last, got, want)
	}
}

func TestNextAvailableMonthly(t *testing.T) {
	tests := []struct {
		name string
		last time.Time
		want time.Time
	}{
		{
			name: "same day next month",
			last: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "clamped to shorter month",
			last: time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "clamped to leap february",
			last: time.Date(2028, 1, 31, 9, 0, 0, 0, time.UTC),
			want: time.Date(2028, 2, 29, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "december wraps to january",
			last: time.Date(2026, 12, 15, 9, 0, 0, 0, time.UTC),
			want: time.Date(2027, 1, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "may 31 clamps to june 30",
			last: time.Date(2026, 5, 31, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 6, 30, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextAvailable(model.FrequencyMonthly, &tt.last)
			if got == nil || !got.Equal(tt.want) {
				t.Errorf("NextAvailable(monthly, %v) = %v, want %v", tt.last, got, tt.want)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself",
			in:   time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "wednesday maps back to monday",
			in:   time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday maps back to monday",
			in:   time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "week spanning month boundary",
			in:   time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeekEnd(t *testing.T) {
	in := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := WeekEnd(in); !got.Equal(want) {
		t.Errorf("WeekEnd(%v) = %v, want %v", in, got, want)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC))
	if want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if want := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}

func TestWeeklyOccurrences(t *testing.T) {
	if got := WeeklyOccurrences(model.FrequencyDaily); got != 7 {
		t.Errorf("daily = %d, want 7", got)
	}
	if got := WeeklyOccurrences(model.FrequencyWeekly); got != 1 {
		t.Errorf("weekly = %d, want 1", got)
	}
	if got := WeeklyOccurrences(model.FrequencyMonthly); got != 0 {
		t.Errorf("monthly = %d, want 0", got)
	}
}
