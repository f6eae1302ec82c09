package allowance

import (
	"testing"

	"github.com/perryvale/hearth/internal/model"
)

func TestCapped(t *testing.T) {
	tests := []struct {
		earned int
		want   int
	}{
		{0, 0},
		{12, 12},
		{30, 30},
		{31, 30},
		{90, 30},
	}
	for _, tt := range tests {
		if got := Capped(tt.earned); got != tt.want {
			t.Errorf("Capped(%d) = %d, want %d", tt.earned, got, tt.want)
		}
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(12); got != 18 {
		t.Errorf("Remaining(12) = %d, want 18", got)
	}
	if got := Remaining(30); got != 0 {
		t.Errorf("Remaining(30) = %d, want 0", got)
	}
}

func TestIsAtCap(t *testing.T) {
	if IsAtCap(29) {
		t.Error("IsAtCap(29) = true, want false")
	}
	if !IsAtCap(30) {
		t.Error("IsAtCap(30) = false, want true")
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name     string
		points   int
		category model.AgeCategory
		age      int
		want     float64
	}{
		{"teenager rate equals age", 20, model.AgeTeenager, 14, 280},
		{"adult earns nothing", 50, model.AgeAdult, 40, 0},
		{"preteen fixed rate", 20, model.AgePreteen, 10, 10},
		{"child fixed rate", 20, model.AgeChild, 6, 5},
		{"zero points", 0, model.AgeTeenager, 16, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Amount(tt.points, tt.category, tt.age); got != tt.want {
				t.Errorf("Amount(%d, %s, %d) = %v, want %v", tt.points, tt.category, tt.age, got, tt.want)
			}
		})
	}
}
