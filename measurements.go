package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getMeasurements returns measurement rows for the authenticated user within
// [start, end]. GET /api/measurements?start=YYYY-MM-DD&end=YYYY-MM-DD. Both
// params required. Returns an empty array (not null) if no rows exist.
func (h *Handler) getMeasurements(c *gin.Context) {
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

	rows, err := queryMany[bodyMeasurement](h.db, c,
		`SELECT * FROM body_measurements
		 WHERE user_id = @userID
		   AND measured_at >= @start::date
		   AND measured_at < (@end::date + 1)
		 ORDER BY measured_at ASC`,
		pgx.NamedArgs{"userID": userID(c), "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch measurements")
		return
	}
	// Ensure empty array (not null) in JSON
	if rows == nil {
		rows = []bodyMeasurement{}
	}

	c.JSON(http.StatusOK, rows)
}

// getLatestMeasurementSnapshot returns the most recent non-null value per
// field across the user's measurement history, each with the timestamp of
// the row it came from. GET /api/measurements/latest.
func (h *Handler) getLatestMeasurementSnapshot(c *gin.Context) {
	snap, err := h.latestSnapshot(c, userID(c))
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch measurement snapshot")
		return
	}

	c.JSON(http.StatusOK, snap)
}

// latestSnapshot walks measurement rows newest-first and fills each snapshot
// field from the first row where it is non-null. Individual fields can come
// from different rows; a user may tape circumferences monthly but weigh in
// daily.
func (h *Handler) latestSnapshot(c *gin.Context, uid string) (measurementSnapshot, error) {
	rows, err := queryMany[bodyMeasurement](h.db, c,
		`SELECT * FROM body_measurements
		 WHERE user_id = @userID
		 ORDER BY measured_at DESC
		 LIMIT 200`,
		pgx.NamedArgs{"userID": uid})
	if err != nil {
		return measurementSnapshot{}, err
	}

	var snap measurementSnapshot
	for _, m := range rows {
		at := m.MeasuredAt
		if snap.WeightKg == nil && m.WeightKg != nil {
			snap.WeightKg = m.WeightKg
			snap.WeightAt = &at
		}
		if snap.BodyFatPercent == nil && m.BodyFatPercent != nil {
			snap.BodyFatPercent = m.BodyFatPercent
			snap.BodyFatAt = &at
		}
		// Tape fields travel together: take them all from the newest row that
		// has any circumference, so the Navy estimate never mixes sessions.
		if snap.TapeAt == nil && (m.NeckCm != nil || m.preferredWaistCm() != nil || m.HipsCm != nil) {
			snap.NeckCm = m.NeckCm
			snap.WaistNavelCm = m.WaistNavelCm
			snap.WaistNarrowCm = m.WaistNarrowCm
			snap.WaistCm = m.WaistCm
			snap.HipsCm = m.HipsCm
			snap.TapeAt = &at
		}
	}
	return snap, nil
}

// circumferences resolves the snapshot's tape fields into the calculator
// input, applying the waist-site preference. Nil when no tape session exists.
func (s measurementSnapshot) circumferences() *circumferences {
	if s.TapeAt == nil {
		return nil
	}
	waist := s.WaistNavelCm
	if waist == nil {
		waist = s.WaistNarrowCm
	}
	if waist == nil {
		waist = s.WaistCm
	}
	return &circumferences{NeckCm: s.NeckCm, WaistCm: waist, HipsCm: s.HipsCm}
}

// upsertMeasurement creates or updates the measurement row for the given
// timestamp's day. POST /api/measurements. The UNIQUE(user_id, measured_at::date)
// index means posting the same day updates in place, newest write wins.
func (h *Handler) upsertMeasurement(c *gin.Context) {
	var body upsertMeasurementRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.WeightKg == nil && body.BodyFatPercent == nil && body.NeckCm == nil &&
		body.WaistNavelCm == nil && body.WaistNarrowCm == nil && body.WaistCm == nil && body.HipsCm == nil {
		apiError(c, http.StatusBadRequest, "at least one measurement field is required")
		return
	}
	if body.WeightKg != nil && (*body.WeightKg <= 0 || *body.WeightKg > 635) {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 635")
		return
	}
	if body.BodyFatPercent != nil && (*body.BodyFatPercent < 0 || *body.BodyFatPercent > 100) {
		apiError(c, http.StatusBadRequest, "body_fat_percent must be between 0 and 100")
		return
	}
	measuredAt := time.Now()
	if body.MeasuredAt != nil {
		measuredAt = *body.MeasuredAt
	}

	row, err := queryOne[bodyMeasurement](h.db, c,
		`INSERT INTO body_measurements
			(user_id, measured_at, weight_kg, body_fat_percent, neck_cm, waist_navel_cm, waist_narrow_cm, waist_cm, hips_cm)
		 VALUES (@userID, @measuredAt, @weightKg, @bodyFatPercent, @neckCm, @waistNavelCm, @waistNarrowCm, @waistCm, @hipsCm)
		 ON CONFLICT (user_id, (measured_at::date)) DO UPDATE SET
			measured_at      = EXCLUDED.measured_at,
			weight_kg        = COALESCE(EXCLUDED.weight_kg, body_measurements.weight_kg),
			body_fat_percent = COALESCE(EXCLUDED.body_fat_percent, body_measurements.body_fat_percent),
			neck_cm          = COALESCE(EXCLUDED.neck_cm, body_measurements.neck_cm),
			waist_navel_cm   = COALESCE(EXCLUDED.waist_navel_cm, body_measurements.waist_navel_cm),
			waist_narrow_cm  = COALESCE(EXCLUDED.waist_narrow_cm, body_measurements.waist_narrow_cm),
			waist_cm         = COALESCE(EXCLUDED.waist_cm, body_measurements.waist_cm),
			hips_cm          = COALESCE(EXCLUDED.hips_cm, body_measurements.hips_cm)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID(c), "measuredAt": measuredAt,
			"weightKg": body.WeightKg, "bodyFatPercent": body.BodyFatPercent,
			"neckCm": body.NeckCm, "waistNavelCm": body.WaistNavelCm,
			"waistNarrowCm": body.WaistNarrowCm, "waistCm": body.WaistCm,
			"hipsCm": body.HipsCm,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to upsert measurement")
		return
	}

	c.JSON(http.StatusCreated, row)
}

// updateMeasurement partially updates an existing measurement row.
// PUT /api/measurements/:id. Uses COALESCE so omitted fields keep their
// current values.
func (h *Handler) updateMeasurement(c *gin.Context) {
	id := c.Param("id")

	var body upsertMeasurementRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.WeightKg != nil && (*body.WeightKg <= 0 || *body.WeightKg > 635) {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 635")
		return
	}

	row, err := queryOne[bodyMeasurement](h.db, c,
		`UPDATE body_measurements SET
			measured_at      = COALESCE(@measuredAt, measured_at),
			weight_kg        = COALESCE(@weightKg, weight_kg),
			body_fat_percent = COALESCE(@bodyFatPercent, body_fat_percent),
			neck_cm          = COALESCE(@neckCm, neck_cm),
			waist_navel_cm   = COALESCE(@waistNavelCm, waist_navel_cm),
			waist_narrow_cm  = COALESCE(@waistNarrowCm, waist_narrow_cm),
			waist_cm         = COALESCE(@waistCm, waist_cm),
			hips_cm          = COALESCE(@hipsCm, hips_cm)
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID(c), "measuredAt": body.MeasuredAt,
			"weightKg": body.WeightKg, "bodyFatPercent": body.BodyFatPercent,
			"neckCm": body.NeckCm, "waistNavelCm": body.WaistNavelCm,
			"waistNarrowCm": body.WaistNarrowCm, "waistCm": body.WaistCm,
			"hipsCm": body.HipsCm,
		})
	if err != nil {
		// Distinguish a missing row from a real DB failure so callers get an
		// actionable status code rather than a misleading 404.
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "measurement not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update measurement")
		}
		return
	}

	c.JSON(http.StatusOK, row)
}

// deleteMeasurement removes a measurement row by ID.
// DELETE /api/measurements/:id. Returns 204 on success, 404 if not found.
// Ownership is enforced by requiring both id and user_id to match.
func (h *Handler) deleteMeasurement(c *gin.Context) {
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM body_measurements WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID(c)})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete measurement")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "measurement not found")
		return
	}

	c.Status(http.StatusNoContent)
}
