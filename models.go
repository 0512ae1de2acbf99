package main

import (
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

/* ─── Domain structs ─────────────────────────────────────────────────── */

// profile maps to the profiles table. One row per user; every field except
// the id is nullable so zero-knowledge rows still work.
type profile struct {
	UserID         string     `json:"user_id"          db:"user_id"`
	Gender         *string    `json:"gender"           db:"gender"`
	HeightCm       *float64   `json:"height_cm"        db:"height_cm"`
	WeightKg       *float64   `json:"weight_kg"        db:"weight_kg"`
	BodyFatPercent *float64   `json:"body_fat_percent" db:"body_fat_percent"`
	DateOfBirth    *DateOnly  `json:"date_of_birth"    db:"date_of_birth"`
	ActivityLevel  *string    `json:"activity_level"   db:"activity_level"`
	CreatedAt      *time.Time `json:"created_at"       db:"created_at"`
}

// bodyMeasurement maps to body_measurements. Three waist columns exist
// because measuring site matters for the Navy estimate; preferredWaistCm
// resolves them.
type bodyMeasurement struct {
	ID             int        `json:"id"               db:"id"`
	UserID         string     `json:"user_id"          db:"user_id"`
	MeasuredAt     time.Time  `json:"measured_at"      db:"measured_at"`
	WeightKg       *float64   `json:"weight_kg"        db:"weight_kg"`
	BodyFatPercent *float64   `json:"body_fat_percent" db:"body_fat_percent"`
	NeckCm         *float64   `json:"neck_cm"          db:"neck_cm"`
	WaistNavelCm   *float64   `json:"waist_navel_cm"   db:"waist_navel_cm"`
	WaistNarrowCm  *float64   `json:"waist_narrow_cm"  db:"waist_narrow_cm"`
	WaistCm        *float64   `json:"waist_cm"         db:"waist_cm"`
	HipsCm         *float64   `json:"hips_cm"          db:"hips_cm"`
	CreatedAt      *time.Time `json:"created_at"       db:"created_at"`
}

// preferredWaistCm picks the waist value for the Navy formula: navel
// measurement first, then narrowest-point, then the generic waist column.
func (m bodyMeasurement) preferredWaistCm() *float64 {
	if m.WaistNavelCm != nil {
		return m.WaistNavelCm
	}
	if m.WaistNarrowCm != nil {
		return m.WaistNarrowCm
	}
	return m.WaistCm
}

// measurementSnapshot is the per-field most-recent-non-null view over a
// user's measurement history (the measurement-store contract): each value
// carries the timestamp of the row it came from.
type measurementSnapshot struct {
	WeightKg       *float64   `json:"weight_kg"`
	WeightAt       *time.Time `json:"weight_at"`
	BodyFatPercent *float64   `json:"body_fat_percent"`
	BodyFatAt      *time.Time `json:"body_fat_at"`
	NeckCm         *float64   `json:"neck_cm"`
	WaistNavelCm   *float64   `json:"waist_navel_cm"`
	WaistNarrowCm  *float64   `json:"waist_narrow_cm"`
	WaistCm        *float64   `json:"waist_cm"`
	HipsCm         *float64   `json:"hips_cm"`
	TapeAt         *time.Time `json:"tape_at"`
}

// userGoal maps to user_goals. goal_key drives calculator defaults
// (cutting, cutting_fast, recomp, bulking); label is display-only.
type userGoal struct {
	ID      int    `json:"id"       db:"id"`
	UserID  string `json:"user_id"  db:"user_id"`
	GoalKey string `json:"goal_key" db:"goal_key"`
	Label   string `json:"label"    db:"label"`
}

// userSettings joins user_calorie_settings and user_protein_settings into
// the single settings payload the UI sliders persist. Nil means "no
// user-chosen value; use the goal-driven default".
type userSettings struct {
	UserID     string   `json:"user_id"      db:"user_id"`
	DeficitPct *float64 `json:"deficit_pct"  db:"deficit_pct"`
	GramsPerKg *float64 `json:"grams_per_kg" db:"grams_per_kg"`
}

// dayStatus maps to user_day_status: one row per user per day with the
// rest-day flag.
type dayStatus struct {
	UserID string   `json:"user_id" db:"user_id"`
	Day    DateOnly `json:"day"     db:"day"`
	IsRest bool     `json:"is_rest" db:"is_rest"`
}

// nutritionEntry maps to nutrition_entries; one logged meal/food item.
// Macro fields are pointers so pgx can scan NULLs and JSON omits nothing
// silently.
type nutritionEntry struct {
	ID         int        `json:"id"          db:"id"`
	UserID     string     `json:"user_id"     db:"user_id"`
	OccurredAt time.Time  `json:"occurred_at" db:"occurred_at"`
	ItemName   string     `json:"item_name"   db:"item_name"`
	Calories   *float64   `json:"calories"    db:"calories"`
	ProteinG   *float64   `json:"protein_g"   db:"protein_g"`
	CarbsG     *float64   `json:"carbs_g"     db:"carbs_g"`
	FatG       *float64   `json:"fat_g"       db:"fat_g"`
	CreatedAt  *time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"  db:"updated_at"`
}

// dayTotals is the macro sum over a set of entries.
type dayTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// sumEntryTotals adds up entry macros, treating NULL columns as zero.
func sumEntryTotals(items []nutritionEntry) dayTotals {
	var t dayTotals
	for _, it := range items {
		if it.Calories != nil {
			t.Calories += *it.Calories
		}
		if it.ProteinG != nil {
			t.ProteinG += *it.ProteinG
		}
		if it.CarbsG != nil {
			t.CarbsG += *it.CarbsG
		}
		if it.FatG != nil {
			t.FatG += *it.FatG
		}
	}
	t.Calories = round2(t.Calories)
	t.ProteinG = round2(t.ProteinG)
	t.CarbsG = round2(t.CarbsG)
	t.FatG = round2(t.FatG)
	return t
}

// dailySummary is the response shape for GET /api/nutrition/daily.
type dailySummary struct {
	Date      string           `json:"date"`
	Totals    dayTotals        `json:"totals"`
	MacroKcal float64          `json:"macro_kcal"` // 4p + 4c + 9f reconciliation
	Items     []nutritionEntry `json:"items"`
}

// progressDay is one day's totals in the GET /api/nutrition/progress
// response.
type progressDay struct {
	Date   DateOnly  `json:"date"`
	Totals dayTotals `json:"totals"`
}

// progressDBRow is the scan shape for the per-day GROUP BY aggregate.
type progressDBRow struct {
	Day      DateOnly `db:"day"`
	Calories float64  `db:"calories"`
	ProteinG float64  `db:"protein_g"`
	CarbsG   float64  `db:"carbs_g"`
	FatG     float64  `db:"fat_g"`
}

/* ─── Workout log ────────────────────────────────────────────────────── */

// workout maps to workouts, one training session. EndedAt stays NULL while
// the session is live; deleting a session cascades to its exercises and sets.
type workout struct {
	ID        int        `json:"id"         db:"id"`
	UserID    string     `json:"user_id"    db:"user_id"`
	StartedAt time.Time  `json:"started_at" db:"started_at"`
	EndedAt   *time.Time `json:"ended_at"   db:"ended_at"`
	Notes     *string    `json:"notes"      db:"notes"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// workoutExercise maps to workout_exercises, one exercise slot within a
// session, ordered by order_index.
type workoutExercise struct {
	ID           int    `json:"id"            db:"id"`
	WorkoutID    int    `json:"workout_id"    db:"workout_id"`
	ExerciseName string `json:"exercise_name" db:"exercise_name"`
	OrderIndex   int    `json:"order_index"   db:"order_index"`
}

// exerciseSet maps to exercise_sets. Every metric is optional; a set needs at
// least one of reps, weight, or distance to be loggable.
type exerciseSet struct {
	ID                int      `json:"id"                  db:"id"`
	WorkoutExerciseID int      `json:"workout_exercise_id" db:"workout_exercise_id"`
	SetIndex          int      `json:"set_index"           db:"set_index"`
	WeightKg          *float64 `json:"weight_kg"           db:"weight_kg"`
	Reps              *int     `json:"reps"                db:"reps"`
	DistanceM         *int     `json:"distance_m"          db:"distance_m"`
}

// workoutExerciseDetail is an exercise slot with its sets, as returned by
// GET /api/workouts/:id.
type workoutExerciseDetail struct {
	workoutExercise
	Sets []exerciseSet `json:"sets"`
}

// workoutDetail is the full session view.
type workoutDetail struct {
	workout
	Exercises []workoutExerciseDetail `json:"exercises"`
}

// exerciseHistoryRow is one past set for an exercise name, with the session
// start time it belongs to.
type exerciseHistoryRow struct {
	ID        int       `json:"id"         db:"id"`
	WorkoutID int       `json:"workout_id" db:"workout_id"`
	StartedAt time.Time `json:"started_at" db:"started_at"`
	SetIndex  int       `json:"set_index"  db:"set_index"`
	WeightKg  *float64  `json:"weight_kg"  db:"weight_kg"`
	Reps      *int      `json:"reps"       db:"reps"`
	DistanceM *int      `json:"distance_m" db:"distance_m"`
}

/* ─── Request bodies ─────────────────────────────────────────────────── */

// startWorkoutRequest is the body for POST /api/workouts. Exercises are
// optional; more can be added while the session runs.
type startWorkoutRequest struct {
	StartedAt *time.Time `json:"started_at"` // defaults to now
	Notes     *string    `json:"notes"`
	Exercises []string   `json:"exercises"`
}

// addSetRequest is the body for POST /api/exercises/:id/sets. At least one
// metric must be present.
type addSetRequest struct {
	WeightKg  *float64 `json:"weight_kg"`
	Reps      *int     `json:"reps"`
	DistanceM *int     `json:"distance_m"`
}

// validate returns an error message for an unloggable set, or "" when the
// request is fine. A set needs at least one metric, and none may be negative.
func (r addSetRequest) validate() string {
	if r.WeightKg == nil && r.Reps == nil && r.DistanceM == nil {
		return "at least one of reps, weight_kg, or distance_m is required"
	}
	if r.WeightKg != nil && *r.WeightKg < 0 {
		return "weight_kg must not be negative"
	}
	if r.Reps != nil && *r.Reps < 0 {
		return "reps must not be negative"
	}
	if r.DistanceM != nil && *r.DistanceM < 0 {
		return "distance_m must not be negative"
	}
	return ""
}

// patchProfileRequest is the body for PATCH /api/profile. All fields are
// pointers; only non-nil fields get written.
type patchProfileRequest struct {
	Gender         *string  `json:"gender"`
	HeightCm       *float64 `json:"height_cm"`
	WeightKg       *float64 `json:"weight_kg"`
	BodyFatPercent *float64 `json:"body_fat_percent"`
	DateOfBirth    *string  `json:"date_of_birth"` // YYYY-MM-DD string, stored as date
	ActivityLevel  *string  `json:"activity_level"`
}

// upsertMeasurementRequest is the body for POST /api/measurements.
type upsertMeasurementRequest struct {
	MeasuredAt     *time.Time `json:"measured_at"` // defaults to now
	WeightKg       *float64   `json:"weight_kg"`
	BodyFatPercent *float64   `json:"body_fat_percent"`
	NeckCm         *float64   `json:"neck_cm"`
	WaistNavelCm   *float64   `json:"waist_navel_cm"`
	WaistNarrowCm  *float64   `json:"waist_narrow_cm"`
	WaistCm        *float64   `json:"waist_cm"`
	HipsCm         *float64   `json:"hips_cm"`
}

// patchSettingsRequest is the body for PATCH /api/settings.
type patchSettingsRequest struct {
	DeficitPct *float64 `json:"deficit_pct"`
	GramsPerKg *float64 `json:"grams_per_kg"`
}

// createNutritionEntryRequest is the body for POST /api/nutrition/items.
type createNutritionEntryRequest struct {
	OccurredAt *time.Time `json:"occurred_at"` // defaults to now
	ItemName   string     `json:"item_name"`
	Calories   *float64   `json:"calories"`
	ProteinG   *float64   `json:"protein_g"`
	CarbsG     *float64   `json:"carbs_g"`
	FatG       *float64   `json:"fat_g"`
}
