package main

import (
	"context"
	"testing"
)

func TestRescaleCalories(t *testing.T) {
	tests := []struct {
		name       string
		calories   float64
		oldPortion float64
		newPortion float64
		want       float64
	}{
		{"double portion doubles calories", 250, 1, 2, 500},
		{"half portion halves calories", 250, 1, 0.5, 125},
		{"same portion unchanged", 300, 1.5, 1.5, 300},
		{"fractional base portion", 330, 1.5, 2, 440},
		{"zero old portion keeps calories", 200, 0, 3, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rescaleCalories(tt.calories, tt.oldPortion, tt.newPortion)
			if got != tt.want {
				t.Errorf("rescaleCalories(%v, %v, %v) = %v, want %v",
					tt.calories, tt.oldPortion, tt.newPortion, got, tt.want)
			}
		})
	}
}

// TestMealEditDelta_AdjustsLoggedDay walks the edit flow at the aggregate
// level: a meal logged on a past day is edited, and the calorie difference
// lands on that day's accumulator.
func TestMealEditDelta_AdjustsLoggedDay(t *testing.T) {
	m, _ := newTestManager(completeProfile())
	ctx := context.Background()
	day := "2026-03-10"

	// Log: 1 portion of a 400-calorie food.
	m.applyCaloriesIn(ctx, 1, day, 400, testNow)

	// Edit to 1.5 portions: the rescaled entry is 600, the day gets the delta.
	newCalories := rescaleCalories(400, 1, 1.5)
	dlog, err := m.applyCaloriesIn(ctx, 1, day, newCalories-400, testNow)
	if err != nil {
		t.Fatalf("applyCaloriesIn failed: %v", err)
	}
	if dlog.CaloriesIn != 600 {
		t.Errorf("caloriesIn = %f, want 600 after edit", dlog.CaloriesIn)
	}
	if dlog.NetCalories != 600 {
		t.Errorf("netCalories = %f, want 600 after edit", dlog.NetCalories)
	}
}
