package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dailyLogStore is the persistence contract for daily_logs rows. The pgx
// implementation below is the real one; tests use an in-memory store to
// exercise the manager's sequencing without a database.
type dailyLogStore interface {
	// insertIfAbsent creates a zeroed row for (userID, day) unless one already
	// exists. A concurrent create racing on the UNIQUE (user_id, date)
	// constraint is not an error — both callers converge on the same row.
	insertIfAbsent(ctx context.Context, userID int, day string, now time.Time) error
	find(ctx context.Context, userID int, day string) (dailyLog, error)
	// addCalories atomically increments the accumulators and recomputes
	// net_calories in the same statement, so interleaved writers never lose
	// an update.
	addCalories(ctx context.Context, userID int, day string, inDelta, outDelta float64, now time.Time) (dailyLog, error)
	updateSnapshots(ctx context.Context, userID int, day string, snap logSnapshots, now time.Time) (dailyLog, error)
	setManualTarget(ctx context.Context, userID int, day string, target *float64, now time.Time) (dailyLog, error)
}

// profileStore supplies the profile that feeds recalculate. Always re-read
// on demand — the manager never caches profile data.
type profileStore interface {
	find(ctx context.Context, userID int) (profile, error)
}

// logSnapshots carries the derived fields recalculate writes onto a row.
// Nil fields are stored as NULL, which is the "undetermined" state.
type logSnapshots struct {
	DailyNeedCalories *float64
	GoalCalorieTarget *float64
	CurrentWeightKG   *float64
	TargetWeightKG    *float64
}

// dailyLogManager is the only writer of daily_logs rows. Handlers hand it a
// day key (dayKey of the mutation's timestamp) and an explicit now so the
// whole write path is deterministic under test.
type dailyLogManager struct {
	store    dailyLogStore
	profiles profileStore
}

// ensure returns the daily log for (userID, day), creating a zeroed row if
// absent. Idempotent and safe under concurrent calls for the same key: the
// storage uniqueness constraint guarantees at most one row, and a lost
// create race just falls through to the fetch.
func (m *dailyLogManager) ensure(ctx context.Context, userID int, day string, now time.Time) (dailyLog, error) {
	if err := m.store.insertIfAbsent(ctx, userID, day, now); err != nil {
		return dailyLog{}, fmt.Errorf("ensure daily log: %w", err)
	}
	return m.store.find(ctx, userID, day)
}

// applyCaloriesIn adds delta (negative to reverse a deleted entry) to the
// day's consumed-calories accumulator and recomputes net calories.
func (m *dailyLogManager) applyCaloriesIn(ctx context.Context, userID int, day string, delta float64, now time.Time) (dailyLog, error) {
	if _, err := m.ensure(ctx, userID, day, now); err != nil {
		return dailyLog{}, err
	}
	return m.store.addCalories(ctx, userID, day, delta, 0, now)
}

// applyCaloriesOut adds delta to the day's expended-calories accumulator and
// recomputes net calories.
func (m *dailyLogManager) applyCaloriesOut(ctx context.Context, userID int, day string, delta float64, now time.Time) (dailyLog, error) {
	if _, err := m.ensure(ctx, userID, day, now); err != nil {
		return dailyLog{}, err
	}
	return m.store.addCalories(ctx, userID, day, 0, delta, now)
}

// recalculate refreshes the computed target snapshots from the current
// profile. The manual target and the raw accumulators are never touched. An
// incomplete profile is not an error: the affected snapshots stay NULL and
// classification degrades to no_target downstream.
func (m *dailyLogManager) recalculate(ctx context.Context, userID int, day string, now time.Time) (dailyLog, error) {
	if _, err := m.ensure(ctx, userID, day, now); err != nil {
		return dailyLog{}, err
	}
	p, err := m.profiles.find(ctx, userID)
	if err != nil {
		return dailyLog{}, fmt.Errorf("recalculate daily log: %w", err)
	}

	var snap logSnapshots
	if p.BodyWeightKG != nil && p.HeightCM != nil && p.Age != nil {
		if tdee := calculateDailyCalories(*p.BodyWeightKG, *p.HeightCM, *p.Age, p.Gender, p.ActivityLevel); tdee != nil {
			need := float64(*tdee)
			snap.DailyNeedCalories = &need
			if goal := goalCalorieTarget(tdee, p.FitnessGoal); goal != nil {
				target := float64(*goal)
				snap.GoalCalorieTarget = &target
			}
		}
	}
	snap.CurrentWeightKG = p.BodyWeightKG
	snap.TargetWeightKG = p.TargetWeightKG

	return m.store.updateSnapshots(ctx, userID, day, snap, now)
}

// setManualTarget sets (or clears, with nil) the user's explicit calorie
// target for the day.
func (m *dailyLogManager) setManualTarget(ctx context.Context, userID int, day string, target *float64, now time.Time) (dailyLog, error) {
	if _, err := m.ensure(ctx, userID, day, now); err != nil {
		return dailyLog{}, err
	}
	return m.store.setManualTarget(ctx, userID, day, target, now)
}

/* ─── pgx-backed stores ──────────────────────────────────────────────── */

type pgxDailyLogStore struct {
	db *pgxpool.Pool
}

func (s *pgxDailyLogStore) insertIfAbsent(ctx context.Context, userID int, day string, now time.Time) error {
	// ON CONFLICT DO NOTHING turns the create race into a no-op; the caller
	// re-fetches either way.
	_, err := s.db.Exec(ctx,
		`INSERT INTO daily_logs (user_id, date, last_recalculated_at)
		 VALUES (@userID, @date, @now)
		 ON CONFLICT (user_id, date) DO NOTHING`,
		pgx.NamedArgs{"userID": userID, "date": day, "now": now})
	return err
}

func (s *pgxDailyLogStore) find(ctx context.Context, userID int, day string) (dailyLog, error) {
	return queryOne[dailyLog](s.db, ctx,
		"SELECT * FROM daily_logs WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": day})
}

func (s *pgxDailyLogStore) addCalories(ctx context.Context, userID int, day string, inDelta, outDelta float64, now time.Time) (dailyLog, error) {
	// Single-statement read-increment-write: column references on the right
	// side see the pre-update values, so concurrent increments serialize at
	// the row level instead of overwriting each other. Accumulators clamp at
	// zero and net is recomputed from the same clamped expressions.
	return queryOne[dailyLog](s.db, ctx,
		`UPDATE daily_logs SET
			calories_in  = GREATEST(calories_in  + @inDelta, 0),
			calories_out = GREATEST(calories_out + @outDelta, 0),
			net_calories = GREATEST(calories_in + @inDelta, 0) - GREATEST(calories_out + @outDelta, 0),
			last_recalculated_at = @now,
			updated_at = now()
		 WHERE user_id = @userID AND date = @date
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": day,
			"inDelta": inDelta, "outDelta": outDelta, "now": now,
		})
}

func (s *pgxDailyLogStore) updateSnapshots(ctx context.Context, userID int, day string, snap logSnapshots, now time.Time) (dailyLog, error) {
	return queryOne[dailyLog](s.db, ctx,
		`UPDATE daily_logs SET
			daily_need_calories = @dailyNeed,
			goal_calorie_target = @goalTarget,
			current_weight_kg   = @currentWeight,
			target_weight_kg    = @targetWeight,
			last_recalculated_at = @now,
			updated_at = now()
		 WHERE user_id = @userID AND date = @date
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": day,
			"dailyNeed": snap.DailyNeedCalories, "goalTarget": snap.GoalCalorieTarget,
			"currentWeight": snap.CurrentWeightKG, "targetWeight": snap.TargetWeightKG,
			"now": now,
		})
}

func (s *pgxDailyLogStore) setManualTarget(ctx context.Context, userID int, day string, target *float64, now time.Time) (dailyLog, error) {
	return queryOne[dailyLog](s.db, ctx,
		`UPDATE daily_logs SET
			manual_calorie_target = @target,
			last_recalculated_at = @now,
			updated_at = now()
		 WHERE user_id = @userID AND date = @date
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "date": day, "target": target, "now": now})
}

type pgxProfileStore struct {
	db *pgxpool.Pool
}

func (s *pgxProfileStore) find(ctx context.Context, userID int) (profile, error) {
	return queryOne[profile](s.db, ctx,
		"SELECT * FROM profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
}
