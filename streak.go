package main

import "time"

// streakWindow caps how many recent workouts the streak scan considers.
// A streak longer than the window under-reports — a deliberate trade of
// perfect accuracy for a bounded read, regardless of account age.
const streakWindow = 30

// workoutStreak derives the current consecutive-day workout streak from a
// bounded window of recent workout start times (any order; only the UTC
// calendar date of each matters) and an explicit now.
//
// A workout today starts the count at 1. No workout today does not break the
// run: the scan still continues from yesterday, so a user who trained
// yesterday and the day before sees 2 before today's session. The scan walks
// back one calendar day at a time and stops at the first gap.
func workoutStreak(startTimes []time.Time, now time.Time) int {
	if len(startTimes) == 0 {
		return 0
	}

	active := make(map[string]bool, len(startTimes))
	for _, t := range startTimes {
		active[dayKey(t)] = true
	}

	streak := 0
	if active[dayKey(now)] {
		streak = 1
	}
	day := now.UTC().AddDate(0, 0, -1)
	for active[dayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
