package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// listFoods returns the user's custom foods, newest first.
// GET /api/foods.
func (h *Handler) listFoods(c *gin.Context) {
	userID := c.GetInt("user_id")

	foods, err := queryMany[food](h.db, c,
		`SELECT * FROM foods WHERE user_id = @userID ORDER BY created_at DESC`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch foods")
		return
	}
	// Ensure foods is an empty array (not null) in JSON
	if foods == nil {
		foods = []food{}
	}

	c.JSON(http.StatusOK, foods)
}

// createFood adds a custom food to the user's library. Creating a food does
// not touch any daily log — calories only count once the food is logged as
// a meal entry.
// POST /api/foods.
func (h *Handler) createFood(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createFoodRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Name) < 2 {
		apiError(c, http.StatusBadRequest, "name must be at least 2 characters")
		return
	}
	if body.Calories < 0 {
		apiError(c, http.StatusBadRequest, "calories must not be negative")
		return
	}

	f, err := queryOne[food](h.db, c,
		`INSERT INTO foods (user_id, name, calories, protein_g, carbs_g, fat_g)
		 VALUES (@userID, @name, @calories, @proteinG, @carbsG, @fatG)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "name": body.Name, "calories": body.Calories,
			"proteinG": body.ProteinG, "carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create food")
		return
	}

	c.JSON(http.StatusCreated, f)
}

// updateFood updates a custom food. Uses COALESCE so omitted fields keep
// their current value. Existing meal entries keep the calories they were
// logged with — edits only affect future logging.
// PUT /api/foods/:id.
func (h *Handler) updateFood(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		Name     *string  `json:"name"`
		Calories *float64 `json:"calories"`
		ProteinG *float64 `json:"protein_g"`
		CarbsG   *float64 `json:"carbs_g"`
		FatG     *float64 `json:"fat_g"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Calories != nil && *body.Calories < 0 {
		apiError(c, http.StatusBadRequest, "calories must not be negative")
		return
	}

	f, err := queryOne[food](h.db, c,
		`UPDATE foods SET
			name      = COALESCE(@name, name),
			calories  = COALESCE(@calories, calories),
			protein_g = COALESCE(@proteinG, protein_g),
			carbs_g   = COALESCE(@carbsG, carbs_g),
			fat_g     = COALESCE(@fatG, fat_g)
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"name": body.Name, "calories": body.Calories,
			"proteinG": body.ProteinG, "carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusNotFound, "food not found")
		return
	}

	c.JSON(http.StatusOK, f)
}

// deleteFood removes a custom food. Meal entries that referenced it survive
// with their logged calories (the FK sets food_id to NULL).
// DELETE /api/foods/:id.
func (h *Handler) deleteFood(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM foods WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete food")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "food not found")
		return
	}

	c.Status(http.StatusNoContent)
}
