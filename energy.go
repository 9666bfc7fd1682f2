package main

import "math"

// activityFactors maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used
// for input validation in patchProfile.
var activityFactors = map[string]float64{
	"not_very_active": 1.2,
	"lightly_active":  1.375,
	"active":          1.55,
	"very_active":     1.725,
}

// validGenders is the set of allowed gender values. The BMR formula is
// sex-specific, so anything else leaves the calculation undetermined.
var validGenders = map[string]bool{
	"male":   true,
	"female": true,
}

// validFitnessGoals is the set of allowed fitness goal values.
var validFitnessGoals = map[string]bool{
	"lose_weight":     true,
	"gain_weight":     true,
	"maintain_weight": true,
}

// Goal adjustments applied on top of TDEE, and the safety bounds the result
// is clamped to regardless of what the formula produces.
const (
	loseWeightDeficit = 500
	gainWeightSurplus = 300
	minCalorieTarget  = 1000
	maxCalorieTarget  = 6000
)

// calculateDailyCalories estimates total daily energy expenditure via
// Mifflin-St Jeor BMR (male +5, female -161) times an activity factor,
// rounded to the nearest whole calorie. Returns nil when gender or activity
// level is absent or unrecognized — an undetermined result, not an error.
// Pure function of its five inputs.
func calculateDailyCalories(weightKG, heightCM float64, age int, gender, activityLevel *string) *int {
	if gender == nil || activityLevel == nil {
		return nil
	}
	factor, found := activityFactors[*activityLevel]
	if !found {
		return nil
	}

	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	switch *gender {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		return nil
	}

	tdee := int(math.Round(bmr * factor))
	return &tdee
}

// goalCalorieTarget adjusts a TDEE estimate for the user's fitness goal:
// -500 for lose_weight, +300 for gain_weight, unchanged for maintain_weight.
// The result is clamped to [1000, 6000] so an extreme formula output can
// never become an unsafe target. Returns nil when either input is absent.
func goalCalorieTarget(tdee *int, fitnessGoal *string) *int {
	if tdee == nil || fitnessGoal == nil {
		return nil
	}

	target := *tdee
	switch *fitnessGoal {
	case "lose_weight":
		target -= loseWeightDeficit
	case "gain_weight":
		target += gainWeightSurplus
	case "maintain_weight":
		// passthrough
	default:
		return nil
	}

	if target < minCalorieTarget {
		target = minCalorieTarget
	}
	if target > maxCalorieTarget {
		target = maxCalorieTarget
	}
	return &target
}
