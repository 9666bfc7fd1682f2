package main

import "math"

// Calorie balance states derived from a day's net calories and its effective
// target. Computed on demand, never persisted.
const (
	statusDeficit  = "deficit"
	statusSurplus  = "surplus"
	statusOnTarget = "on_target"
	statusNoTarget = "no_target"
)

// statusLabels maps each status to its fixed display label.
var statusLabels = map[string]string{
	statusDeficit:  "Deficit",
	statusSurplus:  "Surplus",
	statusOnTarget: "On Target",
	statusNoTarget: "No Target",
}

// statusTones maps each status to its fixed visual tone category.
var statusTones = map[string]string{
	statusDeficit:  "green",
	statusSurplus:  "red",
	statusOnTarget: "amber",
	statusNoTarget: "neutral",
}

// resolveCalorieTarget picks the effective calorie target for a day.
// Precedence, first present wins: manual override, then the goal-adjusted
// snapshot, then the raw TDEE snapshot. Explicit user intent beats
// goal-derived defaults, which beat the metabolic estimate. Returns nil only
// when all three are absent.
func resolveCalorieTarget(l dailyLog) *float64 {
	if l.ManualCalorieTarget != nil {
		return l.ManualCalorieTarget
	}
	if l.GoalCalorieTarget != nil {
		return l.GoalCalorieTarget
	}
	return l.DailyNeedCalories
}

// calorieStatus classifies net calories against the resolved target.
// A difference of less than 1 calorie counts as on target, which keeps
// float arithmetic from flapping between deficit and surplus.
func calorieStatus(netCalories float64, target *float64) string {
	if target == nil {
		return statusNoTarget
	}
	if math.Abs(netCalories-*target) < 1 {
		return statusOnTarget
	}
	if netCalories < *target {
		return statusDeficit
	}
	return statusSurplus
}
