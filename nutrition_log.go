package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getDailySummary returns the nutrition entries and macro totals for a given
// date. GET /api/nutrition/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	// Validate date format before querying; an invalid value silently
	// returns no rows.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := queryMany[nutritionEntry](h.db, c,
		`SELECT * FROM nutrition_entries
		 WHERE user_id = @userID
		   AND occurred_at >= @date::date
		   AND occurred_at < (@date::date + 1)
		 ORDER BY occurred_at`,
		pgx.NamedArgs{"userID": userID(c), "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch entries")
		return
	}
	// Ensure items is an empty array (not null) in JSON
	if items == nil {
		items = []nutritionEntry{}
	}

	totals := sumEntryTotals(items)

	c.JSON(http.StatusOK, dailySummary{
		Date:      date,
		Totals:    totals,
		MacroKcal: round2(totals.ProteinG*4 + totals.CarbsG*4 + totals.FatG*9),
		Items:     items,
	})
}

// getProgress returns per-day macro totals for an arbitrary date range.
// GET /api/nutrition/progress?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params
// required. Only days with logged items are returned (no gap-filling; the
// frontend handles that).
func (h *Handler) getProgress(c *gin.Context) {
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

	rows, err := queryMany[progressDBRow](h.db, c,
		`SELECT
			occurred_at::date AS day,
			COALESCE(SUM(calories),  0) AS calories,
			COALESCE(SUM(protein_g), 0) AS protein_g,
			COALESCE(SUM(carbs_g),   0) AS carbs_g,
			COALESCE(SUM(fat_g),     0) AS fat_g
		 FROM nutrition_entries
		 WHERE user_id = @userID
		   AND occurred_at >= @start::date
		   AND occurred_at < (@end::date + 1)
		 GROUP BY occurred_at::date
		 ORDER BY day ASC`,
		pgx.NamedArgs{"userID": userID(c), "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch progress data")
		return
	}

	days := make([]progressDay, 0, len(rows))
	for _, row := range rows {
		days = append(days, progressDay{
			Date: row.Day,
			Totals: dayTotals{
				Calories: round2(row.Calories),
				ProteinG: round2(row.ProteinG),
				CarbsG:   round2(row.CarbsG),
				FatG:     round2(row.FatG),
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// createNutritionEntry inserts a new logged item.
// POST /api/nutrition/items. Defaults occurred_at to now if omitted.
func (h *Handler) createNutritionEntry(c *gin.Context) {
	var body createNutritionEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ItemName == "" {
		apiError(c, http.StatusBadRequest, "item_name is required")
		return
	}
	if body.Calories != nil && *body.Calories < 0 {
		apiError(c, http.StatusBadRequest, "calories must not be negative")
		return
	}
	occurredAt := time.Now()
	if body.OccurredAt != nil {
		occurredAt = *body.OccurredAt
	}

	item, err := queryOne[nutritionEntry](h.db, c,
		`INSERT INTO nutrition_entries (user_id, occurred_at, item_name, calories, protein_g, carbs_g, fat_g)
		 VALUES (@userID, @occurredAt, @itemName, @calories, @proteinG, @carbsG, @fatG)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID(c), "occurredAt": occurredAt, "itemName": body.ItemName,
			"calories": body.Calories, "proteinG": body.ProteinG,
			"carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// updateNutritionEntry updates an existing logged item.
// PUT /api/nutrition/items/:id. Uses COALESCE so omitted fields keep their
// current value.
func (h *Handler) updateNutritionEntry(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		OccurredAt *time.Time `json:"occurred_at"`
		ItemName   *string    `json:"item_name"`
		Calories   *float64   `json:"calories"`
		ProteinG   *float64   `json:"protein_g"`
		CarbsG     *float64   `json:"carbs_g"`
		FatG       *float64   `json:"fat_g"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := queryOne[nutritionEntry](h.db, c,
		`UPDATE nutrition_entries SET
			occurred_at = COALESCE(@occurredAt, occurred_at),
			item_name   = COALESCE(@itemName, item_name),
			calories    = COALESCE(@calories, calories),
			protein_g   = COALESCE(@proteinG, protein_g),
			carbs_g     = COALESCE(@carbsG, carbs_g),
			fat_g       = COALESCE(@fatG, fat_g),
			updated_at  = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID(c),
			"occurredAt": body.OccurredAt, "itemName": body.ItemName,
			"calories": body.Calories, "proteinG": body.ProteinG,
			"carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusNotFound, "entry not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteNutritionEntry removes a logged item. Returns 204 on success.
// DELETE /api/nutrition/items/:id.
func (h *Handler) deleteNutritionEntry(c *gin.Context) {
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM nutrition_entries WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID(c)})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
