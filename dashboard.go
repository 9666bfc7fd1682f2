package main

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// workoutTimeRow is the shape of the streak-window query rows.
type workoutTimeRow struct {
	StartTime time.Time `db:"start_time"`
}

// getDashboardStats assembles the dashboard hero view: today's energy
// balance with its derived target/status, workout count, streak, next
// scheduled workout, and a motivational one-liner.
// GET /api/dashboard/stats.
func (h *Handler) getDashboardStats(c *gin.Context) {
	userID := c.GetInt("user_id")
	now := time.Now()

	dlog, err := h.logs.ensure(c, userID, dayKey(now), now)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to load daily log")
		return
	}

	// Today's UTC day window, matching the dayKey the aggregate is keyed by.
	y, m, d := now.UTC().Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var workoutsToday int
	err = h.db.QueryRow(c,
		`SELECT COUNT(*) FROM workouts
		 WHERE user_id = @userID AND start_time >= @dayStart AND start_time < @dayEnd`,
		pgx.NamedArgs{"userID": userID, "dayStart": dayStart, "dayEnd": dayEnd}).Scan(&workoutsToday)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to count workouts")
		return
	}

	// Bounded streak window: the most recent workouts up to the end of today.
	recent, err := queryMany[workoutTimeRow](h.db, c,
		`SELECT start_time FROM workouts
		 WHERE user_id = @userID AND start_time < @dayEnd
		 ORDER BY start_time DESC
		 LIMIT @limit`,
		pgx.NamedArgs{"userID": userID, "dayEnd": dayEnd, "limit": streakWindow})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch workout history")
		return
	}
	startTimes := make([]time.Time, len(recent))
	for i, r := range recent {
		startTimes[i] = r.StartTime
	}
	streak := workoutStreak(startTimes, now)

	// Next scheduled workout, if any. No rows just means nothing is
	// scheduled; any other error is a real store failure.
	nextWorkout := "No scheduled workout"
	var nextTitle string
	err = h.db.QueryRow(c,
		`SELECT title FROM workouts
		 WHERE user_id = @userID AND start_time > @now
		 ORDER BY start_time ASC
		 LIMIT 1`,
		pgx.NamedArgs{"userID": userID, "now": now}).Scan(&nextTitle)
	switch {
	case err == nil:
		nextWorkout = nextTitle
	case !errors.Is(err, pgx.ErrNoRows):
		apiError(c, http.StatusInternalServerError, "failed to fetch next workout")
		return
	}

	var username string
	if err := h.db.QueryRow(c, "SELECT username FROM users WHERE id = $1", userID).Scan(&username); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	motivation := generateMotivation(c.Request.Context(), h.openAIBaseURL, motivationInput{
		Name:           username,
		WorkoutsToday:  workoutsToday,
		Streak:         streak,
		CaloriesBurned: int(math.Round(dlog.CaloriesOut)),
	})

	target := resolveCalorieTarget(dlog)
	status := calorieStatus(dlog.NetCalories, target)

	c.JSON(http.StatusOK, dashboardStats{
		Date:           dayKey(now),
		CaloriesIn:     int(math.Round(dlog.CaloriesIn)),
		CaloriesBurned: int(math.Round(dlog.CaloriesOut)),
		NetCalories:    int(math.Round(dlog.NetCalories)),
		Target:         target,
		Status:         status,
		StatusLabel:    statusLabels[status],
		StatusTone:     statusTones[status],
		WorkoutsToday:  workoutsToday,
		Streak:         streak,
		NextWorkout:    nextWorkout,
		Motivation:     motivation,
	})
}
