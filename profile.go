package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// profileStatus reports whether a profile has everything the calorie
// calculators and goal views need. Target weight is only required when the
// goal actually involves changing weight.
func profileStatus(p profile) (complete bool, missing []string) {
	if p.Age == nil {
		missing = append(missing, "age")
	}
	if p.Gender == nil {
		missing = append(missing, "gender")
	}
	if p.BodyWeightKG == nil {
		missing = append(missing, "body_weight_kg")
	}
	if p.HeightCM == nil {
		missing = append(missing, "height_cm")
	}
	if p.FitnessGoal == nil {
		missing = append(missing, "fitness_goal")
	}
	if p.ActivityLevel == nil {
		missing = append(missing, "activity_level")
	}
	if p.FitnessGoal != nil && (*p.FitnessGoal == "lose_weight" || *p.FitnessGoal == "gain_weight") && p.TargetWeightKG == nil {
		missing = append(missing, "target_weight_kg")
	}
	return len(missing) == 0, missing
}

// getProfile returns the authenticated user's profile plus completeness.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := queryOne[profile](h.db, c,
		"SELECT * FROM profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	complete, missing := profileStatus(p)
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, profileResponse{Profile: p, IsComplete: complete, MissingFields: missing})
}

// patchProfile updates only the provided profile fields, then refreshes
// today's daily log snapshots so the new metrics take effect immediately.
// PATCH /api/profile. Pointer fields in the request body distinguish "not
// provided" from zero — only non-nil fields get updated.
func (h *Handler) patchProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validate enums up front — an unknown value stored now silently breaks
	// every future recalculation with no visible error.
	if body.ActivityLevel != nil {
		if _, ok := activityFactors[*body.ActivityLevel]; !ok {
			apiError(c, http.StatusBadRequest, "activity_level must be one of: not_very_active, lightly_active, active, very_active")
			return
		}
	}
	if body.Gender != nil && !validGenders[*body.Gender] {
		apiError(c, http.StatusBadRequest, "gender must be one of: male, female")
		return
	}
	if body.FitnessGoal != nil && !validFitnessGoals[*body.FitnessGoal] {
		apiError(c, http.StatusBadRequest, "fitness_goal must be one of: lose_weight, gain_weight, maintain_weight")
		return
	}
	if body.Age != nil && (*body.Age < 0 || *body.Age > 130) {
		apiError(c, http.StatusBadRequest, "age must be between 0 and 130")
		return
	}

	// Build SET clause dynamically — only update fields the client actually sent
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}

	if body.BodyWeightKG != nil {
		setClauses = append(setClauses, "body_weight_kg = @bodyWeightKG")
		args["bodyWeightKG"] = *body.BodyWeightKG
	}
	if body.HeightCM != nil {
		setClauses = append(setClauses, "height_cm = @heightCM")
		args["heightCM"] = *body.HeightCM
	}
	if body.Age != nil {
		setClauses = append(setClauses, "age = @age")
		args["age"] = *body.Age
	}
	if body.Gender != nil {
		setClauses = append(setClauses, "gender = @gender")
		args["gender"] = *body.Gender
	}
	if body.ActivityLevel != nil {
		setClauses = append(setClauses, "activity_level = @activityLevel")
		args["activityLevel"] = *body.ActivityLevel
	}
	if body.FitnessGoal != nil {
		setClauses = append(setClauses, "fitness_goal = @fitnessGoal")
		args["fitnessGoal"] = *body.FitnessGoal
	}
	if body.TargetWeightKG != nil {
		setClauses = append(setClauses, "target_weight_kg = @targetWeightKG")
		args["targetWeightKG"] = *body.TargetWeightKG
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}
	setClauses = append(setClauses, "updated_at = now()")

	query := "UPDATE profiles SET " +
		strings.Join(setClauses, ", ") +
		" WHERE user_id = @userID RETURNING *"

	p, err := queryOne[profile](h.db, c, query, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	// Profile changes invalidate today's cached target snapshots.
	now := time.Now()
	if _, err := h.logs.recalculate(c, userID, dayKey(now), now); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to refresh daily log")
		return
	}

	complete, missing := profileStatus(p)
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, profileResponse{Profile: p, IsComplete: complete, MissingFields: missing})
}
