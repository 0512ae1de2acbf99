package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// setupValidationTest registers the full route table behind a stub that sets
// a user id directly, skipping the identity middleware. Only requests that
// fail validation are sent, so the nil pool is never touched.
func setupValidationTest() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	api := router.Group("/api", func(c *gin.Context) {
		c.Set("user_id", "7b9f5a1c-3d2e-4f60-9a8b-1c2d3e4f5a6b")
		c.Next()
	})
	api.GET("/measurements", h.getMeasurements)
	api.GET("/nutrition/daily", h.getDailySummary)
	api.GET("/nutrition/progress", h.getProgress)
	api.POST("/nutrition/items", h.createNutritionEntry)
	api.PATCH("/settings", h.patchSettings)
	api.PATCH("/profile", h.patchProfile)
	api.PUT("/day-status/:date", h.putDayStatus)
	return router
}

func doJSONRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestValidation_BadRequests sweeps the validation branches that must reject
// before any query runs.
func TestValidation_BadRequests(t *testing.T) {
	router := setupValidationTest()

	cases := []struct {
		name, method, path, body string
	}{
		{"measurements without range", "GET", "/api/measurements", ""},
		{"measurements bad start", "GET", "/api/measurements?start=nope&end=2026-08-28", ""},
		{"measurements inverted range", "GET", "/api/measurements?start=2026-08-28&end=2026-08-01", ""},
		{"daily bad date", "GET", "/api/nutrition/daily?date=yesterday", ""},
		{"progress without range", "GET", "/api/nutrition/progress", ""},
		{"entry without name", "POST", "/api/nutrition/items", `{"calories": 200}`},
		{"entry negative calories", "POST", "/api/nutrition/items", `{"item_name": "toast", "calories": -5}`},
		{"settings deficit out of range", "PATCH", "/api/settings", `{"deficit_pct": 45}`},
		{"settings g/kg out of range", "PATCH", "/api/settings", `{"grams_per_kg": 3.5}`},
		{"settings empty body", "PATCH", "/api/settings", `{}`},
		{"profile bad activity level", "PATCH", "/api/profile", `{"activity_level": "heroic"}`},
		{"profile bad gender", "PATCH", "/api/profile", `{"gender": "robot"}`},
		{"profile bad dob", "PATCH", "/api/profile", `{"date_of_birth": "28-08-2026"}`},
		{"profile negative height", "PATCH", "/api/profile", `{"height_cm": -170}`},
		{"day status bad date", "PUT", "/api/day-status/today", `{"is_rest": true}`},
		{"day status missing flag", "PUT", "/api/day-status/2026-08-28", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSONRequest(router, tc.method, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
