package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// listWorkouts returns the user's workouts, most recent first.
// GET /api/workouts.
func (h *Handler) listWorkouts(c *gin.Context) {
	userID := c.GetInt("user_id")

	workouts, err := queryMany[workout](h.db, c,
		`SELECT * FROM workouts
		 WHERE user_id = @userID
		 ORDER BY start_time DESC
		 LIMIT 100`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch workouts")
		return
	}
	if workouts == nil {
		workouts = []workout{}
	}

	c.JSON(http.StatusOK, workouts)
}

// createWorkout records a workout session. The calorie burn is estimated by
// the AI estimator (0 if unavailable) and applied to the daily log of the
// session's start date — so the streak scan and the energy balance agree on
// which day the workout belongs to.
// POST /api/workouts.
func (h *Handler) createWorkout(c *gin.Context) {
	userID := c.GetInt("user_id")
	now := time.Now()

	var body createWorkoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Title == "" {
		apiError(c, http.StatusBadRequest, "title is required")
		return
	}
	startTime, err := time.Parse(time.RFC3339, body.StartTime)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid start_time, expected RFC 3339")
		return
	}
	var endTime *time.Time
	if body.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *body.EndTime)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid end_time, expected RFC 3339")
			return
		}
		if t.Before(startTime) {
			apiError(c, http.StatusBadRequest, "end_time must not be before start_time")
			return
		}
		endTime = &t
	}
	if len(body.Exercises) == 0 {
		body.Exercises = []byte("[]")
	}

	burned, err := estimateWorkoutCalories(c.Request.Context(), h.openAIBaseURL, body)
	if err != nil {
		// Estimation failure must not block logging the workout itself.
		log.Printf("[createWorkout] calorie estimate failed for user %d: %v", userID, err)
		burned = 0
	}

	w, err := queryOne[workout](h.db, c,
		`INSERT INTO workouts (user_id, title, start_time, end_time, total_calories_burned, exercises)
		 VALUES (@userID, @title, @startTime, @endTime, @burned, @exercises)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "title": body.Title,
			"startTime": startTime, "endTime": endTime,
			"burned": burned, "exercises": body.Exercises,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create workout")
		return
	}

	// Applied even when the estimate came back 0: a zero delta still creates
	// the daily log for the session's date, keeping one row per active day.
	day := dayKey(startTime)
	if _, err := h.logs.applyCaloriesOut(c, userID, day, float64(burned), now); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update daily log")
		return
	}

	c.JSON(http.StatusCreated, w)
}

// deleteWorkout removes a workout and reverses its estimated burn from the
// daily log of its start date.
// DELETE /api/workouts/:id.
func (h *Handler) deleteWorkout(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")
	now := time.Now()

	w, err := queryOne[workout](h.db, c,
		`DELETE FROM workouts WHERE id = @id AND user_id = @userID RETURNING *`,
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "workout not found")
		return
	}

	day := dayKey(w.StartTime)
	if _, err := h.logs.applyCaloriesOut(c, userID, day, -float64(w.TotalCaloriesBurned), now); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update daily log")
		return
	}

	c.Status(http.StatusNoContent)
}
