package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validGoalKeys is the set of goal tags the calculators understand.
var validGoalKeys = map[string]bool{
	"cutting":      true,
	"cutting_fast": true,
	"recomp":       true,
	"bulking":      true,
}

// getSettings returns the persisted slider values (deficit pct, protein
// g/kg) for the authenticated user. Missing rows mean "no user choice" and
// come back as nulls; callers fall back to goal-driven defaults.
// GET /api/settings.
func (h *Handler) getSettings(c *gin.Context) {
	s, err := h.loadSettings(c, userID(c))
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}

	c.JSON(http.StatusOK, s)
}

// loadSettings reads both settings tables, tolerating absent rows.
func (h *Handler) loadSettings(c *gin.Context, uid string) (userSettings, error) {
	s := userSettings{UserID: uid}

	var deficitPct *float64
	err := h.db.QueryRow(c,
		"SELECT deficit_pct FROM user_calorie_settings WHERE user_id = $1", uid).Scan(&deficitPct)
	if err != nil && err != pgx.ErrNoRows {
		return s, err
	}
	s.DeficitPct = deficitPct

	var gramsPerKg *float64
	err = h.db.QueryRow(c,
		"SELECT grams_per_kg FROM user_protein_settings WHERE user_id = $1", uid).Scan(&gramsPerKg)
	if err != nil && err != pgx.ErrNoRows {
		return s, err
	}
	s.GramsPerKg = gramsPerKg

	return s, nil
}

// patchSettings upserts the provided slider values.
// PATCH /api/settings. Only non-nil fields are written.
func (h *Handler) patchSettings(c *gin.Context) {
	var body patchSettingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.DeficitPct == nil && body.GramsPerKg == nil {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}
	// Mirror the slider ranges; values outside them are client bugs.
	if body.DeficitPct != nil && (*body.DeficitPct < -15 || *body.DeficitPct > 30) {
		apiError(c, http.StatusBadRequest, "deficit_pct must be between -15 and 30")
		return
	}
	if body.GramsPerKg != nil && (*body.GramsPerKg < 0.8 || *body.GramsPerKg > 2.4) {
		apiError(c, http.StatusBadRequest, "grams_per_kg must be between 0.8 and 2.4")
		return
	}

	uid := userID(c)
	if body.DeficitPct != nil {
		_, err := h.db.Exec(c,
			`INSERT INTO user_calorie_settings (user_id, deficit_pct)
			 VALUES (@userID, @deficitPct)
			 ON CONFLICT (user_id) DO UPDATE SET deficit_pct = EXCLUDED.deficit_pct`,
			pgx.NamedArgs{"userID": uid, "deficitPct": *body.DeficitPct})
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to save deficit_pct")
			return
		}
	}
	if body.GramsPerKg != nil {
		_, err := h.db.Exec(c,
			`INSERT INTO user_protein_settings (user_id, grams_per_kg, source_key)
			 VALUES (@userID, @gramsPerKg, 'custom')
			 ON CONFLICT (user_id) DO UPDATE SET grams_per_kg = EXCLUDED.grams_per_kg, source_key = 'custom'`,
			pgx.NamedArgs{"userID": uid, "gramsPerKg": *body.GramsPerKg})
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to save grams_per_kg")
			return
		}
	}

	s, err := h.loadSettings(c, uid)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}
	c.JSON(http.StatusOK, s)
}

/* ─── Goals ──────────────────────────────────────────────────────────── */

// getGoals returns the user's goal tags. GET /api/goals.
func (h *Handler) getGoals(c *gin.Context) {
	goals, err := queryMany[userGoal](h.db, c,
		"SELECT * FROM user_goals WHERE user_id = @userID ORDER BY id",
		pgx.NamedArgs{"userID": userID(c)})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch goals")
		return
	}
	if goals == nil {
		goals = []userGoal{}
	}

	c.JSON(http.StatusOK, goals)
}

// putGoals replaces the user's goal set.
// PUT /api/goals. Body: { "goals": [{ "goal_key": "...", "label": "..." }] }.
func (h *Handler) putGoals(c *gin.Context) {
	var body struct {
		Goals []struct {
			GoalKey string `json:"goal_key"`
			Label   string `json:"label"`
		} `json:"goals"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, g := range body.Goals {
		if !validGoalKeys[g.GoalKey] {
			apiError(c, http.StatusBadRequest, "goal_key must be one of: cutting, cutting_fast, recomp, bulking")
			return
		}
	}

	uid := userID(c)
	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update goals")
		return
	}
	defer tx.Rollback(c)

	if _, err := tx.Exec(c, "DELETE FROM user_goals WHERE user_id = $1", uid); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update goals")
		return
	}
	for _, g := range body.Goals {
		label := g.Label
		if label == "" {
			label = g.GoalKey
		}
		if _, err := tx.Exec(c,
			"INSERT INTO user_goals (user_id, goal_key, label) VALUES ($1, $2, $3)",
			uid, g.GoalKey, label); err != nil {
			apiError(c, http.StatusInternalServerError, "failed to update goals")
			return
		}
	}
	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update goals")
		return
	}

	h.getGoals(c)
}

/* ─── Day status (rest-day flag) ─────────────────────────────────────── */

// getDayStatus returns the rest-day flag for a date. Missing rows default to
// a training day. GET /api/day-status/:date.
func (h *Handler) getDayStatus(c *gin.Context) {
	date := c.Param("date")
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	isRest, err := h.isRestDay(c, userID(c), date)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch day status")
		return
	}

	c.JSON(http.StatusOK, dayStatus{UserID: userID(c), Day: DateOnly{day}, IsRest: isRest})
}

// isRestDay reports whether the given day counts as a rest day. The stored
// flag is only half the answer: a day with a logged training session is a
// training day no matter what the flag says.
func (h *Handler) isRestDay(c *gin.Context, uid, date string) (bool, error) {
	var isRest bool
	err := h.db.QueryRow(c,
		"SELECT is_rest FROM user_day_status WHERE user_id = $1 AND day = $2",
		uid, date).Scan(&isRest)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !isRest {
		return false, nil
	}

	trained, err := h.hasWorkoutOn(c, uid, date)
	if err != nil {
		return false, err
	}
	return !trained, nil
}

// putDayStatus sets the rest-day flag for a date.
// PUT /api/day-status/:date. Body: { "is_rest": true }.
func (h *Handler) putDayStatus(c *gin.Context) {
	date := c.Param("date")
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	var body struct {
		IsRest *bool `json:"is_rest"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.IsRest == nil {
		apiError(c, http.StatusBadRequest, "is_rest is required")
		return
	}

	_, err = h.db.Exec(c,
		`INSERT INTO user_day_status (user_id, day, is_rest)
		 VALUES (@userID, @day, @isRest)
		 ON CONFLICT (user_id, day) DO UPDATE SET is_rest = EXCLUDED.is_rest`,
		pgx.NamedArgs{"userID": userID(c), "day": date, "isRest": *body.IsRest})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save day status")
		return
	}

	c.JSON(http.StatusOK, dayStatus{UserID: userID(c), Day: DateOnly{day}, IsRest: *body.IsRest})
}
