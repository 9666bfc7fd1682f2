package main

import "testing"

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

/* ─── Missing-input guard tests ──────────────────────────────────────── */

// TestCalculateDailyCalories_MissingInputs verifies the undetermined result
// (nil, not an error) when gender or activity level is absent or unknown.
func TestCalculateDailyCalories_MissingInputs(t *testing.T) {
	cases := []struct {
		name          string
		gender        *string
		activityLevel *string
	}{
		{"nil gender", nil, strPtr("active")},
		{"nil activity level", strPtr("male"), nil},
		{"both nil", nil, nil},
		{"unknown activity level", strPtr("male"), strPtr("couch_potato")},
		{"unknown gender", strPtr("other"), strPtr("active")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := calculateDailyCalories(70, 175, 25, tc.gender, tc.activityLevel); got != nil {
				t.Errorf("expected nil, got %d", *got)
			}
		})
	}
}

/* ─── Formula regression tests ───────────────────────────────────────── */

// TestCalculateDailyCalories_Male pins the male Mifflin-St Jeor result.
// BMR = 10*70 + 6.25*175 - 5*25 + 5 = 1673.75; * 1.55 (active) = 2594.3 → 2594.
func TestCalculateDailyCalories_Male(t *testing.T) {
	got := calculateDailyCalories(70, 175, 25, strPtr("male"), strPtr("active"))
	if got == nil {
		t.Fatal("expected a result, got nil")
	}
	if *got != 2594 {
		t.Errorf("male TDEE = %d, want 2594", *got)
	}
}

// TestCalculateDailyCalories_Female pins the female variant (-161 constant).
// BMR = 10*60 + 6.25*165 - 5*30 - 161 = 1320.25; * 1.375 (lightly_active) = 1815.3 → 1815.
func TestCalculateDailyCalories_Female(t *testing.T) {
	got := calculateDailyCalories(60, 165, 30, strPtr("female"), strPtr("lightly_active"))
	if got == nil {
		t.Fatal("expected a result, got nil")
	}
	if *got != 1815 {
		t.Errorf("female TDEE = %d, want 1815", *got)
	}
}

// TestCalculateDailyCalories_ActivityMonotonic verifies the factors increase
// across the four levels — a higher level must never produce fewer calories.
func TestCalculateDailyCalories_ActivityMonotonic(t *testing.T) {
	levels := []string{"not_very_active", "lightly_active", "active", "very_active"}
	prev := 0
	for _, level := range levels {
		got := calculateDailyCalories(70, 175, 25, strPtr("male"), strPtr(level))
		if got == nil {
			t.Fatalf("expected a result for %s, got nil", level)
		}
		if *got <= prev {
			t.Errorf("TDEE for %s = %d, want > %d", level, *got, prev)
		}
		prev = *got
	}
}

/* ─── Goal target tests ──────────────────────────────────────────────── */

func TestGoalCalorieTarget_Adjustments(t *testing.T) {
	cases := []struct {
		name string
		tdee int
		goal string
		want int
	}{
		{"lose subtracts 500", 2000, "lose_weight", 1500},
		{"gain adds 300", 2000, "gain_weight", 2300},
		{"maintain passes through", 2000, "maintain_weight", 2000},
		{"lose clamps to floor", 1200, "lose_weight", 1000},
		{"gain clamps to ceiling", 6000, "gain_weight", 6000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := goalCalorieTarget(intPtr(tc.tdee), strPtr(tc.goal))
			if got == nil {
				t.Fatal("expected a result, got nil")
			}
			if *got != tc.want {
				t.Errorf("target = %d, want %d", *got, tc.want)
			}
		})
	}
}

func TestGoalCalorieTarget_MissingInputs(t *testing.T) {
	if got := goalCalorieTarget(nil, strPtr("lose_weight")); got != nil {
		t.Errorf("expected nil for nil tdee, got %d", *got)
	}
	if got := goalCalorieTarget(intPtr(2000), nil); got != nil {
		t.Errorf("expected nil for nil goal, got %d", *got)
	}
	if got := goalCalorieTarget(intPtr(2000), strPtr("get_swole")); got != nil {
		t.Errorf("expected nil for unknown goal, got %d", *got)
	}
}
