package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validGenders is the set of allowed values for the gender enum. Reject
// unknown values with 400 rather than letting the DB return a cryptic 500.
var validGenders = map[string]bool{
	"male":        true,
	"female":      true,
	"other":       true,
	"unspecified": true,
}

// getProfile returns the profile for the authenticated user.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	p, err := queryOne[profile](h.db, c,
		"SELECT * FROM profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID(c)})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	c.JSON(http.StatusOK, p)
}

// patchProfile updates only the provided profile fields.
// PATCH /api/profile. Uses pointer fields in the request body to distinguish
// "not provided" from zero; only non-nil fields get updated.
func (h *Handler) patchProfile(c *gin.Context) {
	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validate enums before saving; a bad activity level silently breaks
	// every future TDEE calculation with no visible error.
	if body.ActivityLevel != nil {
		if _, ok := activityMultipliers[*body.ActivityLevel]; !ok {
			apiError(c, http.StatusBadRequest, "activity_level must be one of: sedentary, light, moderate, very_active")
			return
		}
	}
	if body.Gender != nil && !validGenders[*body.Gender] {
		apiError(c, http.StatusBadRequest, "gender must be one of: male, female, other, unspecified")
		return
	}
	if body.DateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *body.DateOfBirth); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date_of_birth, expected YYYY-MM-DD")
			return
		}
	}
	if body.HeightCm != nil && *body.HeightCm <= 0 {
		apiError(c, http.StatusBadRequest, "height_cm must be positive")
		return
	}
	if body.WeightKg != nil && *body.WeightKg <= 0 {
		apiError(c, http.StatusBadRequest, "weight_kg must be positive")
		return
	}
	if body.BodyFatPercent != nil && (*body.BodyFatPercent < 0 || *body.BodyFatPercent > 100) {
		apiError(c, http.StatusBadRequest, "body_fat_percent must be between 0 and 100")
		return
	}

	// Build SET clause dynamically; only update fields the client actually sent.
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID(c)}

	if body.Gender != nil {
		setClauses = append(setClauses, "gender = @gender")
		args["gender"] = *body.Gender
	}
	if body.HeightCm != nil {
		setClauses = append(setClauses, "height_cm = @heightCm")
		args["heightCm"] = *body.HeightCm
	}
	if body.WeightKg != nil {
		setClauses = append(setClauses, "weight_kg = @weightKg")
		args["weightKg"] = *body.WeightKg
	}
	if body.BodyFatPercent != nil {
		setClauses = append(setClauses, "body_fat_percent = @bodyFatPercent")
		args["bodyFatPercent"] = *body.BodyFatPercent
	}
	if body.DateOfBirth != nil {
		setClauses = append(setClauses, "date_of_birth = @dateOfBirth")
		args["dateOfBirth"] = *body.DateOfBirth
	}
	if body.ActivityLevel != nil {
		setClauses = append(setClauses, "activity_level = @activityLevel")
		args["activityLevel"] = *body.ActivityLevel
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	query := "UPDATE profiles SET " +
		strings.Join(setClauses, ", ") +
		" WHERE user_id = @userID RETURNING *"

	p, err := queryOne[profile](h.db, c, query, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, p)
}

// ageYears derives age from the profile's date of birth. Returns nil when
// the DOB is missing or yields an implausible age (negative, or over 130).
func (p profile) ageYears() *int {
	if p.DateOfBirth == nil {
		return nil
	}
	today := time.Now()
	age := today.Year() - p.DateOfBirth.Year()
	if today.Before(p.DateOfBirth.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 || age > 130 {
		return nil
	}
	return &age
}
