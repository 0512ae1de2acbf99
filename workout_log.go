package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// startWorkout opens a new training session, optionally pre-filled with an
// ordered exercise list. POST /api/workouts. A session stays live until
// PATCH sets ended_at.
func (h *Handler) startWorkout(c *gin.Context) {
	var body startWorkoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, name := range body.Exercises {
		if strings.TrimSpace(name) == "" {
			apiError(c, http.StatusBadRequest, "exercise names must not be empty")
			return
		}
	}
	startedAt := time.Now()
	if body.StartedAt != nil {
		startedAt = *body.StartedAt
	}

	uid := userID(c)
	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start workout")
		return
	}
	defer tx.Rollback(c)

	var w workout
	err = tx.QueryRow(c,
		`INSERT INTO workouts (user_id, started_at, notes)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, started_at, ended_at, notes, created_at`,
		uid, startedAt, body.Notes,
	).Scan(&w.ID, &w.UserID, &w.StartedAt, &w.EndedAt, &w.Notes, &w.CreatedAt)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start workout")
		return
	}

	detail := workoutDetail{workout: w, Exercises: []workoutExerciseDetail{}}
	for i, name := range body.Exercises {
		var we workoutExercise
		err = tx.QueryRow(c,
			`INSERT INTO workout_exercises (workout_id, exercise_name, order_index)
			 VALUES ($1, $2, $3)
			 RETURNING id, workout_id, exercise_name, order_index`,
			w.ID, strings.TrimSpace(name), i+1,
		).Scan(&we.ID, &we.WorkoutID, &we.ExerciseName, &we.OrderIndex)
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to start workout")
			return
		}
		detail.Exercises = append(detail.Exercises,
			workoutExerciseDetail{workoutExercise: we, Sets: []exerciseSet{}})
	}
	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start workout")
		return
	}

	c.JSON(http.StatusCreated, detail)
}

// getWorkouts lists sessions within [start, end], newest first.
// GET /api/workouts?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) getWorkouts(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	rows, err := queryMany[workout](h.db, c,
		`SELECT * FROM workouts
		 WHERE user_id = @userID
		   AND started_at >= @start::date
		   AND started_at < (@end::date + 1)
		 ORDER BY started_at DESC`,
		pgx.NamedArgs{"userID": userID(c), "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch workouts")
		return
	}
	if rows == nil {
		rows = []workout{}
	}

	c.JSON(http.StatusOK, rows)
}

// getWorkoutDetail returns one session with its exercises and sets, ordered
// by exercise position and set index. GET /api/workouts/:id.
func (h *Handler) getWorkoutDetail(c *gin.Context) {
	id := c.Param("id")
	uid := userID(c)

	w, err := queryOne[workout](h.db, c,
		"SELECT * FROM workouts WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": uid})
	if err != nil {
		apiError(c, http.StatusNotFound, "workout not found")
		return
	}

	exercises, err := queryMany[workoutExercise](h.db, c,
		`SELECT * FROM workout_exercises
		 WHERE workout_id = @workoutID
		 ORDER BY order_index`,
		pgx.NamedArgs{"workoutID": w.ID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch exercises")
		return
	}

	sets, err := queryMany[exerciseSet](h.db, c,
		`SELECT es.* FROM exercise_sets es
		 JOIN workout_exercises we ON we.id = es.workout_exercise_id
		 WHERE we.workout_id = @workoutID
		 ORDER BY we.order_index, es.set_index`,
		pgx.NamedArgs{"workoutID": w.ID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch sets")
		return
	}

	detail := workoutDetail{workout: w, Exercises: []workoutExerciseDetail{}}
	for _, ex := range exercises {
		d := workoutExerciseDetail{workoutExercise: ex, Sets: []exerciseSet{}}
		for _, s := range sets {
			if s.WorkoutExerciseID == ex.ID {
				d.Sets = append(d.Sets, s)
			}
		}
		detail.Exercises = append(detail.Exercises, d)
	}

	c.JSON(http.StatusOK, detail)
}

// updateWorkout finishes a session or amends its notes.
// PATCH /api/workouts/:id. Body: { "ended_at": ..., "notes": ... }. Only
// non-nil fields are written; finishing means stamping ended_at.
func (h *Handler) updateWorkout(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		EndedAt *time.Time `json:"ended_at"`
		Notes   *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.EndedAt == nil && body.Notes == nil {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	w, err := queryOne[workout](h.db, c,
		`UPDATE workouts SET
			ended_at = COALESCE(@endedAt, ended_at),
			notes    = COALESCE(@notes, notes)
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{"id": id, "userID": userID(c), "endedAt": body.EndedAt, "notes": body.Notes})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "workout not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update workout")
		}
		return
	}

	c.JSON(http.StatusOK, w)
}

// deleteWorkout cancels a session: the row and, via cascade, every exercise
// and set logged under it. DELETE /api/workouts/:id.
func (h *Handler) deleteWorkout(c *gin.Context) {
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM workouts WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID(c)})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete workout")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "workout not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// addWorkoutExercise appends an exercise slot to a session. Ownership is
// enforced by inserting through a SELECT on the user's workout; the next
// order_index is assigned in the same statement. POST /api/workouts/:id/exercises.
func (h *Handler) addWorkoutExercise(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		ExerciseName string `json:"exercise_name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.ExerciseName) == "" {
		apiError(c, http.StatusBadRequest, "exercise_name is required")
		return
	}

	we, err := queryOne[workoutExercise](h.db, c,
		`INSERT INTO workout_exercises (workout_id, exercise_name, order_index)
		 SELECT w.id, @name,
		        COALESCE((SELECT MAX(order_index) FROM workout_exercises WHERE workout_id = w.id), 0) + 1
		 FROM workouts w
		 WHERE w.id = @workoutID AND w.user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{"workoutID": id, "userID": userID(c), "name": strings.TrimSpace(body.ExerciseName)})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "workout not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to add exercise")
		}
		return
	}

	c.JSON(http.StatusCreated, we)
}

// addExerciseSet logs a set under an exercise slot. A set with no metric at
// all is meaningless, so at least one of reps, weight, or distance is
// required. POST /api/exercises/:id/sets.
func (h *Handler) addExerciseSet(c *gin.Context) {
	id := c.Param("id")

	var body addSetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	set, err := queryOne[exerciseSet](h.db, c,
		`INSERT INTO exercise_sets (workout_exercise_id, set_index, weight_kg, reps, distance_m)
		 SELECT we.id,
		        COALESCE((SELECT MAX(set_index) FROM exercise_sets WHERE workout_exercise_id = we.id), 0) + 1,
		        @weightKg, @reps, @distanceM
		 FROM workout_exercises we
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE we.id = @exerciseID AND w.user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"exerciseID": id, "userID": userID(c),
			"weightKg": body.WeightKg, "reps": body.Reps, "distanceM": body.DistanceM,
		})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "exercise not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to log set")
		}
		return
	}

	c.JSON(http.StatusCreated, set)
}

// deleteExerciseSet removes a logged set, enforcing ownership through the
// session join. DELETE /api/sets/:id.
func (h *Handler) deleteExerciseSet(c *gin.Context) {
	id := c.Param("id")

	result, err := h.db.Exec(c,
		`DELETE FROM exercise_sets es
		 USING workout_exercises we, workouts w
		 WHERE es.id = @id
		   AND we.id = es.workout_exercise_id
		   AND w.id = we.workout_id
		   AND w.user_id = @userID`,
		pgx.NamedArgs{"id": id, "userID": userID(c)})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete set")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "set not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// getExerciseHistory returns recent past sets for an exercise name, newest
// session first, so the UI can show what was lifted last time.
// GET /api/exercise-history?name=bench+press.
func (h *Handler) getExerciseHistory(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		apiError(c, http.StatusBadRequest, "name query param is required")
		return
	}

	rows, err := queryMany[exerciseHistoryRow](h.db, c,
		`SELECT es.id, w.id AS workout_id, w.started_at, es.set_index, es.weight_kg, es.reps, es.distance_m
		 FROM exercise_sets es
		 JOIN workout_exercises we ON we.id = es.workout_exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.user_id = @userID AND we.exercise_name = @name
		 ORDER BY w.started_at DESC, es.set_index
		 LIMIT 60`,
		pgx.NamedArgs{"userID": userID(c), "name": name})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch history")
		return
	}
	if rows == nil {
		rows = []exerciseHistoryRow{}
	}

	c.JSON(http.StatusOK, gin.H{"name": name, "sets": rows})
}

// hasWorkoutOn reports whether any session was started on the given day.
func (h *Handler) hasWorkoutOn(c *gin.Context, uid, date string) (bool, error) {
	var n int
	err := h.db.QueryRow(c,
		`SELECT COUNT(*) FROM workouts
		 WHERE user_id = $1
		   AND started_at >= $2::date
		   AND started_at < ($2::date + 1)`,
		uid, date).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
