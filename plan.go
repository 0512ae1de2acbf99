package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

/* ─── Nutrition plan assembly ────────────────────────────────────────── */

// deficitPctMin/Max bound the deficit/surplus slider. Values outside are
// clamped, not rejected, so a stale stored setting can never break the plan.
const (
	deficitPctMin = -15.0
	deficitPctMax = 30.0
)

// planningInput is everything the plan pipeline needs, already resolved from
// storage (or supplied directly by the preview endpoint).
type planningInput struct {
	Profile            bodyProfile     `json:"profile"`
	Circumferences     *circumferences `json:"circumferences"`
	ActivityLevel      string          `json:"activity_level"`
	IsRestDay          bool            `json:"is_rest_day"`
	DeficitSurplusPct  *float64        `json:"deficit_surplus_pct"` // nil = goal default
	GramsPerKgOverride *float64        `json:"grams_per_kg"`        // nil = goal default
	Goals              goalSet         `json:"goals"`
	BaselineWeightKg   *float64        `json:"baseline_weight_kg"`
}

// nutritionPlan is the full calculator output for one day.
type nutritionPlan struct {
	BodyComposition     bodyComposition `json:"body_composition"`
	BMRKcal             *float64        `json:"bmr_kcal"`
	BMRMethod           bmrMethod       `json:"bmr_method"`
	TDEEKcal            *float64        `json:"tdee_kcal"`
	ActivityLevel       string          `json:"activity_level"`
	EffectiveMultiplier float64         `json:"effective_multiplier"`
	IsRestDay           bool            `json:"is_rest_day"`
	DeficitSurplusPct   float64         `json:"deficit_surplus_pct"`
	CalorieTarget       calorieTarget   `json:"calorie_target"`
	Macros              *macroTargets   `json:"macros"`
	Protein             *proteinPlan    `json:"protein"`
	BMI                 *bmiAnalysis    `json:"bmi"`
	Goals               goalSet         `json:"goals"`
}

// buildNutritionPlan runs the whole pipeline: body composition → BMR → TDEE →
// calorie target → protein → macros → BMI. Pure; every stage degrades
// gracefully when inputs are missing, so the result is always usable for
// display even with a near-empty profile.
func buildNutritionPlan(in planningInput) nutritionPlan {
	comp := estimateBodyComposition(in.Profile, in.Circumferences)

	bmr, method := computeBMR(in.Profile, comp.LeanBodyMassKg)
	tdee := computeTDEE(bmr, in.ActivityLevel, in.IsRestDay)
	mult, level := effectiveActivityMultiplier(in.ActivityLevel, in.IsRestDay)

	pct := defaultDeficitPctFromGoals(in.Goals)
	if in.DeficitSurplusPct != nil {
		pct = *in.DeficitSurplusPct
	}
	if pct < deficitPctMin {
		pct = deficitPctMin
	}
	if pct > deficitPctMax {
		pct = deficitPctMax
	}

	target := planCalorieTarget(tdee, bmr, pct, in.Profile.Gender)

	plan := nutritionPlan{
		BodyComposition:     comp,
		BMRKcal:             bmr,
		BMRMethod:           method,
		TDEEKcal:            tdee,
		ActivityLevel:       level,
		EffectiveMultiplier: mult,
		IsRestDay:           in.IsRestDay,
		DeficitSurplusPct:   pct,
		CalorieTarget:       target,
		Goals:               in.Goals,
	}

	if in.Profile.WeightKg > 0 {
		basis := in.Profile.WeightKg
		if comp.LeanBodyMassKg != nil {
			basis = *comp.LeanBodyMassKg
		}
		protein := planProteinTarget(basis, in.Goals, comp.BodyFatPercent, in.GramsPerKgOverride)
		plan.Protein = &protein

		if target.TargetKcal != nil {
			macros := allocateMacros(*target.TargetKcal, in.Profile.WeightKg,
				comp.BodyFatPercent, in.IsRestDay, protein.GramsPerKg, pct)
			plan.Macros = &macros
		}
	}

	if in.Profile.HeightCm != nil && *in.Profile.HeightCm > 0 {
		bmi := analyzeBMI(in.Profile.WeightKg, *in.Profile.HeightCm, in.BaselineWeightKg)
		plan.BMI = &bmi
	}

	return plan
}

/* ─── Plan handlers ──────────────────────────────────────────────────── */

// getPlan assembles today's plan from stored state: profile, the latest
// measurement snapshot, goals, saved slider settings, and the rest-day flag.
// GET /api/plan?date=YYYY-MM-DD&deficit_pct=&grams_per_kg=; query params
// override saved settings for what-if views without persisting anything.
func (h *Handler) getPlan(c *gin.Context) {
	uid := userID(c)

	p, err := queryOne[profile](h.db, c,
		"SELECT * FROM profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": uid})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	snap, err := h.latestSnapshot(c, uid)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch measurements")
		return
	}

	goalRows, err := queryMany[userGoal](h.db, c,
		"SELECT * FROM user_goals WHERE user_id = @userID ORDER BY id",
		pgx.NamedArgs{"userID": uid})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch goals")
		return
	}
	goals := make(goalSet, 0, len(goalRows))
	for _, g := range goalRows {
		goals = append(goals, g.GoalKey)
	}

	settings, err := h.loadSettings(c, uid)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}

	in := planningInput{
		Profile:            resolveBodyProfile(p, snap),
		Circumferences:     snap.circumferences(),
		IsRestDay:          false,
		DeficitSurplusPct:  settings.DeficitPct,
		GramsPerKgOverride: settings.GramsPerKg,
		Goals:              goals,
	}
	if p.ActivityLevel != nil {
		in.ActivityLevel = *p.ActivityLevel
	}

	date := c.Query("date")
	if date != "" {
		isRest, err := h.isRestDay(c, uid, date)
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to fetch day status")
			return
		}
		in.IsRestDay = isRest
	}

	// What-if query overrides, not persisted.
	var override struct {
		DeficitPct *float64 `form:"deficit_pct"`
		GramsPerKg *float64 `form:"grams_per_kg"`
	}
	if err := c.ShouldBindQuery(&override); err != nil {
		apiError(c, http.StatusBadRequest, "invalid query params")
		return
	}
	if override.DeficitPct != nil {
		in.DeficitSurplusPct = override.DeficitPct
	}
	if override.GramsPerKg != nil {
		in.GramsPerKgOverride = override.GramsPerKg
	}

	// Baseline for BMI progress: the user's earliest recorded weight.
	var baseline *float64
	err = h.db.QueryRow(c,
		`SELECT weight_kg FROM body_measurements
		 WHERE user_id = $1 AND weight_kg IS NOT NULL
		 ORDER BY measured_at ASC LIMIT 1`, uid).Scan(&baseline)
	if err != nil && err != pgx.ErrNoRows {
		apiError(c, http.StatusInternalServerError, "failed to fetch measurements")
		return
	}
	in.BaselineWeightKg = baseline

	c.JSON(http.StatusOK, buildNutritionPlan(in))
}

// resolveBodyProfile merges the profile row with the measurement snapshot:
// a logged measurement is fresher than the profile's static fields, so it
// wins for weight and body fat.
func resolveBodyProfile(p profile, snap measurementSnapshot) bodyProfile {
	bp := bodyProfile{AgeYears: p.ageYears()}
	if p.Gender != nil {
		bp.Gender = *p.Gender
	}
	bp.HeightCm = p.HeightCm

	bp.WeightKg = 0
	if p.WeightKg != nil {
		bp.WeightKg = *p.WeightKg
	}
	if snap.WeightKg != nil {
		bp.WeightKg = *snap.WeightKg
	}

	bp.BodyFatPercent = p.BodyFatPercent
	if snap.BodyFatPercent != nil {
		bp.BodyFatPercent = snap.BodyFatPercent
	}
	return bp
}

// previewPlan computes a plan from request-supplied inputs without touching
// storage. POST /api/plan/preview. Used by onboarding and the what-if sliders
// before anything is saved.
func (h *Handler) previewPlan(c *gin.Context) {
	var in planningInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Profile.WeightKg < 0 {
		apiError(c, http.StatusBadRequest, "weight_kg must not be negative")
		return
	}
	for _, g := range in.Goals {
		if !validGoalKeys[g] {
			apiError(c, http.StatusBadRequest, "goal must be one of: cutting, cutting_fast, recomp, bulking")
			return
		}
	}

	c.JSON(http.StatusOK, buildNutritionPlan(in))
}
