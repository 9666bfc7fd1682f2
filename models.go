package main

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

// dayKey normalizes a timestamp to its UTC calendar date string. Every
// daily_logs row is keyed by this value — meal, workout, and weight writes
// must all go through it so that a mutation near midnight lands on the same
// row no matter which server timezone handled the request.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// profile maps to the profiles table: one row per user with the body metrics
// and goal that feed the daily-calorie calculation. All fields are nullable —
// a freshly created account has an empty row and the calculators degrade to
// "undetermined" until enough is filled in.
type profile struct {
	UserID         int        `json:"user_id" db:"user_id"`
	BodyWeightKG   *float64   `json:"body_weight_kg" db:"body_weight_kg"`
	HeightCM       *float64   `json:"height_cm" db:"height_cm"`
	Age            *int       `json:"age" db:"age"`
	Gender         *string    `json:"gender" db:"gender"`
	ActivityLevel  *string    `json:"activity_level" db:"activity_level"`
	FitnessGoal    *string    `json:"fitness_goal" db:"fitness_goal"`
	TargetWeightKG *float64   `json:"target_weight_kg" db:"target_weight_kg"`
	UpdatedAt      *time.Time `json:"updated_at" db:"updated_at"`
}

// dailyLog maps to daily_logs: the per-user-per-day energy-balance aggregate.
// One row per (user_id, date), enforced by a UNIQUE constraint. Accumulators
// and snapshots are only ever written through the dailyLogManager.
type dailyLog struct {
	ID          int      `json:"id" db:"id"`
	UserID      int      `json:"user_id" db:"user_id"`
	Date        DateOnly `json:"date" db:"date"`
	CaloriesIn  float64  `json:"calories_in" db:"calories_in"`
	CaloriesOut float64  `json:"calories_out" db:"calories_out"`
	// NetCalories is derived: recomputed as calories_in - calories_out in the
	// same statement as any accumulator change, never mutated on its own.
	NetCalories float64 `json:"net_calories" db:"net_calories"`

	// Snapshots of the computed targets at last recalculate time. Nullable —
	// absent until the profile supports the calculation.
	DailyNeedCalories *float64 `json:"daily_need_calories" db:"daily_need_calories"`
	GoalCalorieTarget *float64 `json:"goal_calorie_target" db:"goal_calorie_target"`
	// ManualCalorieTarget is the user's explicit override; independent of the
	// computed snapshots and untouched by recalculate.
	ManualCalorieTarget *float64 `json:"manual_calorie_target" db:"manual_calorie_target"`

	CurrentWeightKG    *float64   `json:"current_weight_kg" db:"current_weight_kg"`
	TargetWeightKG     *float64   `json:"target_weight_kg" db:"target_weight_kg"`
	LastRecalculatedAt time.Time  `json:"last_recalculated_at" db:"last_recalculated_at"`
	CreatedAt          *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at" db:"updated_at"`
}

// food maps to foods: a user's custom food with per-serving nutrition.
type food struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Name      string     `json:"name" db:"name"`
	Calories  float64    `json:"calories" db:"calories"`
	ProteinG  *float64   `json:"protein_g" db:"protein_g"`
	CarbsG    *float64   `json:"carbs_g" db:"carbs_g"`
	FatG      *float64   `json:"fat_g" db:"fat_g"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// mealEntry maps to meal_entries: one logged portion of a food on a date.
// Calories are denormalized at log time (food.calories * portion) so that
// deleting the entry can reverse exactly what it added, even if the food's
// nutrition is edited later.
type mealEntry struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	MealType  string     `json:"meal_type" db:"meal_type"`
	FoodID    *int       `json:"food_id" db:"food_id"`
	ItemName  string     `json:"item_name" db:"item_name"`
	Portion   float64    `json:"portion" db:"portion"`
	Calories  float64    `json:"calories" db:"calories"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// workout maps to workouts. Exercises are stored as a jsonb payload — the
// engine only cares about start_time (streak, daily log key) and
// total_calories_burned (caloriesOut delta).
type workout struct {
	ID                  int             `json:"id" db:"id"`
	UserID              int             `json:"user_id" db:"user_id"`
	Title               string          `json:"title" db:"title"`
	StartTime           time.Time       `json:"start_time" db:"start_time"`
	EndTime             *time.Time      `json:"end_time" db:"end_time"`
	TotalCaloriesBurned int             `json:"total_calories_burned" db:"total_calories_burned"`
	Exercises           json.RawMessage `json:"exercises" db:"exercises"`
	CreatedAt           *time.Time      `json:"created_at" db:"created_at"`
}

// weightEntry maps to weight_log: one body-weight measurement per user per date.
type weightEntry struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	WeightKG  float64    `json:"weight_kg" db:"weight_kg"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

/* ─── Request / response shapes ──────────────────────────────────────── */

// patchProfileRequest is the request body for PATCH /api/profile.
// All fields are pointers — only non-nil fields get written to the database.
type patchProfileRequest struct {
	BodyWeightKG   *float64 `json:"body_weight_kg"`
	HeightCM       *float64 `json:"height_cm"`
	Age            *int     `json:"age"`
	Gender         *string  `json:"gender"`
	ActivityLevel  *string  `json:"activity_level"`
	FitnessGoal    *string  `json:"fitness_goal"`
	TargetWeightKG *float64 `json:"target_weight_kg"`
}

// profileResponse wraps the profile with its completeness status for the
// frontend's "finish your profile" prompt.
type profileResponse struct {
	Profile       profile  `json:"profile"`
	IsComplete    bool     `json:"is_complete"`
	MissingFields []string `json:"missing_fields"`
}

// createFoodRequest is the request body for POST /api/foods.
type createFoodRequest struct {
	Name     string   `json:"name"`
	Calories float64  `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
	CarbsG   *float64 `json:"carbs_g"`
	FatG     *float64 `json:"fat_g"`
}

// createMealEntryRequest is the request body for POST /api/diet/meals.
// Date defaults to today (UTC) when omitted.
type createMealEntryRequest struct {
	Date     string  `json:"date"`
	MealType string  `json:"meal_type"`
	FoodID   int     `json:"food_id"`
	Portion  float64 `json:"portion"`
}

// createWorkoutRequest is the request body for POST /api/workouts.
// StartTime/EndTime are RFC 3339 timestamps; exercises pass through as-is.
type createWorkoutRequest struct {
	Title     string          `json:"title"`
	StartTime string          `json:"start_time"`
	EndTime   *string         `json:"end_time"`
	Exercises json.RawMessage `json:"exercises"`
}

// setManualTargetRequest is the request body for PATCH /api/diet/daily/target.
// A null target clears the override, falling back to the computed snapshots.
type setManualTargetRequest struct {
	Date   string   `json:"date"`
	Target *float64 `json:"target"`
}

// dailyDietSummary is the response shape for GET /api/diet/daily.
type dailyDietSummary struct {
	Date        string      `json:"date"`
	Log         dailyLog    `json:"log"`
	Target      *float64    `json:"target"`
	Status      string      `json:"status"`
	StatusLabel string      `json:"status_label"`
	StatusTone  string      `json:"status_tone"`
	Entries     []mealEntry `json:"entries"`
}

// dashboardStats is the response shape for GET /api/dashboard/stats.
type dashboardStats struct {
	Date           string   `json:"date"`
	CaloriesIn     int      `json:"calories_in"`
	CaloriesBurned int      `json:"calories_burned"`
	NetCalories    int      `json:"net_calories"`
	Target         *float64 `json:"target"`
	Status         string   `json:"status"`
	StatusLabel    string   `json:"status_label"`
	StatusTone     string   `json:"status_tone"`
	WorkoutsToday  int      `json:"workouts_today"`
	Streak         int      `json:"streak"`
	NextWorkout    string   `json:"next_workout"`
	Motivation     string   `json:"motivation"`
}
