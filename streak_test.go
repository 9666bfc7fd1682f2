package main

import (
	"testing"
	"time"
)

// fixedNow is mid-afternoon UTC on an arbitrary date; every streak test
// derives its workout timestamps from it.
var fixedNow = time.Date(2026, 3, 15, 15, 30, 0, 0, time.UTC)

// daysAgo returns a workout timestamp n calendar days before fixedNow.
func daysAgo(n int) time.Time {
	return fixedNow.AddDate(0, 0, -n)
}

func TestWorkoutStreak_TodayAndYesterday(t *testing.T) {
	times := []time.Time{daysAgo(0), daysAgo(1)}
	if got := workoutStreak(times, fixedNow); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}
}

// TestWorkoutStreak_NoWorkoutTodayKeepsRun verifies the deliberate policy:
// a missing workout today does not reset the run ending yesterday.
func TestWorkoutStreak_NoWorkoutTodayKeepsRun(t *testing.T) {
	times := []time.Time{daysAgo(1), daysAgo(2), daysAgo(3)}
	if got := workoutStreak(times, fixedNow); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestWorkoutStreak_Empty(t *testing.T) {
	if got := workoutStreak(nil, fixedNow); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

// TestWorkoutStreak_NoRecentActivity: workouts exist in the window but the
// run ending at today/yesterday is empty, so the streak is 0.
func TestWorkoutStreak_NoRecentActivity(t *testing.T) {
	times := []time.Time{daysAgo(5), daysAgo(6)}
	if got := workoutStreak(times, fixedNow); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

// TestWorkoutStreak_GapStopsScan: the scan stops at the first day with no
// workout; activity beyond the gap does not count.
func TestWorkoutStreak_GapStopsScan(t *testing.T) {
	times := []time.Time{daysAgo(0), daysAgo(1), daysAgo(3), daysAgo(4)}
	if got := workoutStreak(times, fixedNow); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}
}

// TestWorkoutStreak_MultipleWorkoutsPerDay: several sessions on one date
// count as a single streak day.
func TestWorkoutStreak_MultipleWorkoutsPerDay(t *testing.T) {
	times := []time.Time{
		daysAgo(0), daysAgo(0).Add(-2 * time.Hour),
		daysAgo(1), daysAgo(1).Add(-5 * time.Hour),
	}
	if got := workoutStreak(times, fixedNow); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}
}

// TestWorkoutStreak_NormalizesToUTC: a timestamp recorded in a non-UTC zone
// counts toward the UTC calendar day it falls on, matching dayKey.
func TestWorkoutStreak_NormalizesToUTC(t *testing.T) {
	offset := time.FixedZone("UTC+5", 5*60*60)
	// 2026-03-15 03:00 +05:00 is 2026-03-14 22:00 UTC — yesterday, not today.
	times := []time.Time{time.Date(2026, 3, 15, 3, 0, 0, 0, offset)}
	if got := workoutStreak(times, fixedNow); got != 1 {
		t.Errorf("streak = %d, want 1 (workout belongs to yesterday in UTC)", got)
	}
}

func TestDayKey_NormalizesToUTC(t *testing.T) {
	offset := time.FixedZone("UTC-8", -8*60*60)
	// 2026-03-14 20:30 -08:00 is 2026-03-15 04:30 UTC.
	got := dayKey(time.Date(2026, 3, 14, 20, 30, 0, 0, offset))
	if got != "2026-03-15" {
		t.Errorf("dayKey = %s, want 2026-03-15", got)
	}
}
