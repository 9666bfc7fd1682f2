package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validMealTypes is the set of allowed values for meal_entries.meal_type.
// Reject unknown values with 400 rather than letting the DB return a cryptic 500.
var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// getDailyDietSummary returns the day's aggregate log, its meal entries, and
// the derived target/status views.
// GET /api/diet/daily?date=YYYY-MM-DD (defaults to today, UTC).
func (h *Handler) getDailyDietSummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	now := time.Now()
	date := c.DefaultQuery("date", dayKey(now))

	// Validate date format before querying — an invalid value silently returns no rows.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	dlog, err := h.logs.ensure(c, userID, date, now)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to load daily log")
		return
	}

	entries, err := queryMany[mealEntry](h.db, c,
		`SELECT * FROM meal_entries
		 WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch entries")
		return
	}
	// Ensure entries is an empty array (not null) in JSON
	if entries == nil {
		entries = []mealEntry{}
	}

	target := resolveCalorieTarget(dlog)
	status := calorieStatus(dlog.NetCalories, target)

	c.JSON(http.StatusOK, dailyDietSummary{
		Date:        date,
		Log:         dlog,
		Target:      target,
		Status:      status,
		StatusLabel: statusLabels[status],
		StatusTone:  statusTones[status],
		Entries:     entries,
	})
}

// setManualCalorieTarget sets or clears the user's explicit calorie target
// for a day. A null target removes the override so the computed snapshots
// take over again.
// PATCH /api/diet/daily/target.
func (h *Handler) setManualCalorieTarget(c *gin.Context) {
	userID := c.GetInt("user_id")
	now := time.Now()

	var body setManualTargetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = dayKey(now)
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.Target != nil && (*body.Target < 0 || *body.Target > 20000) {
		apiError(c, http.StatusBadRequest, "target must be between 0 and 20000")
		return
	}

	dlog, err := h.logs.setManualTarget(c, userID, body.Date, body.Target, now)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to set target")
		return
	}

	c.JSON(http.StatusOK, dlog)
}

// createMealEntry logs a portion of a food and synchronously feeds the
// day's caloriesIn accumulator — the increment is part of the same request,
// keyed by the entry's own date, never the server clock's local day.
// POST /api/diet/meals. Date defaults to today (UTC).
func (h *Handler) createMealEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	now := time.Now()

	var body createMealEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validMealTypes[body.MealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}
	if body.Portion <= 0 {
		apiError(c, http.StatusBadRequest, "portion must be positive")
		return
	}
	if body.Date == "" {
		body.Date = dayKey(now)
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	f, err := queryOne[food](h.db, c,
		"SELECT * FROM foods WHERE id = @foodID AND user_id = @userID",
		pgx.NamedArgs{"foodID": body.FoodID, "userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "food not found")
		return
	}

	calories := f.Calories * body.Portion

	entry, err := queryOne[mealEntry](h.db, c,
		`INSERT INTO meal_entries (user_id, date, meal_type, food_id, item_name, portion, calories)
		 VALUES (@userID, @date, @mealType, @foodID, @itemName, @portion, @calories)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date, "mealType": body.MealType,
			"foodID": f.ID, "itemName": f.Name, "portion": body.Portion,
			"calories": calories,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to log meal")
		return
	}

	if _, err := h.logs.applyCaloriesIn(c, userID, body.Date, calories, now); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update daily log")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// rescaleCalories recomputes an entry's calories for a new portion from the
// per-portion rate it was logged with, so an edit never picks up later
// changes to the food's nutrition.
func rescaleCalories(calories, oldPortion, newPortion float64) float64 {
	if oldPortion <= 0 {
		return calories
	}
	return calories / oldPortion * newPortion
}

// updateMealEntry edits a logged meal's type or portion. A portion change
// rescales the entry's calories and feeds the difference to the day's
// caloriesIn accumulator, keyed by the entry's stored date — editing a past
// day's meal adjusts that day, not today.
// PUT /api/diet/meals/:id. Omitted fields keep their current value.
func (h *Handler) updateMealEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")
	now := time.Now()

	var body struct {
		MealType *string  `json:"meal_type"`
		Portion  *float64 `json:"portion"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.MealType != nil && !validMealTypes[*body.MealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}
	if body.Portion != nil && *body.Portion <= 0 {
		apiError(c, http.StatusBadRequest, "portion must be positive")
		return
	}

	prev, err := queryOne[mealEntry](h.db, c,
		"SELECT * FROM meal_entries WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "meal entry not found")
		return
	}

	portion := prev.Portion
	calories := prev.Calories
	if body.Portion != nil {
		portion = *body.Portion
		calories = rescaleCalories(prev.Calories, prev.Portion, portion)
	}

	entry, err := queryOne[mealEntry](h.db, c,
		`UPDATE meal_entries SET
			meal_type = COALESCE(@mealType, meal_type),
			portion   = @portion,
			calories  = @calories
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"mealType": body.MealType, "portion": portion, "calories": calories,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update meal entry")
		return
	}

	day := dayKey(prev.Date.Time)
	if _, err := h.logs.applyCaloriesIn(c, userID, day, entry.Calories-prev.Calories, now); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update daily log")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// deleteMealEntry removes a logged meal and reverses its calories from the
// day it was logged on (negative delta, same accumulator path as the add).
// DELETE /api/diet/meals/:id.
func (h *Handler) deleteMealEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")
	now := time.Now()

	entry, err := queryOne[mealEntry](h.db, c,
		`DELETE FROM meal_entries WHERE id = @id AND user_id = @userID RETURNING *`,
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "meal entry not found")
		return
	}

	day := dayKey(entry.Date.Time)
	if _, err := h.logs.applyCaloriesIn(c, userID, day, -entry.Calories, now); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update daily log")
		return
	}

	c.Status(http.StatusNoContent)
}
