package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds shared dependencies (db pool) for all route handlers.
type Handler struct {
	db *pgxpool.Pool
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn)
// because managed Postgres providers close idle connections after a few
// minutes.
func getDBPool() *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from the provider's server-side prepared statement cache after
	// schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("DB pool ready!")
	return pool
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	api := router.Group("/api", h.identityMiddleware())

	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.patchProfile)

	api.GET("/measurements", h.getMeasurements)
	api.GET("/measurements/latest", h.getLatestMeasurementSnapshot)
	api.POST("/measurements", h.upsertMeasurement)
	api.PUT("/measurements/:id", h.updateMeasurement)
	api.DELETE("/measurements/:id", h.deleteMeasurement)

	api.GET("/settings", h.getSettings)
	api.PATCH("/settings", h.patchSettings)
	api.GET("/goals", h.getGoals)
	api.PUT("/goals", h.putGoals)
	api.GET("/day-status/:date", h.getDayStatus)
	api.PUT("/day-status/:date", h.putDayStatus)

	api.POST("/workouts", h.startWorkout)
	api.GET("/workouts", h.getWorkouts)
	api.GET("/workouts/:id", h.getWorkoutDetail)
	api.PATCH("/workouts/:id", h.updateWorkout)
	api.DELETE("/workouts/:id", h.deleteWorkout)
	api.POST("/workouts/:id/exercises", h.addWorkoutExercise)
	api.POST("/exercises/:id/sets", h.addExerciseSet)
	api.DELETE("/sets/:id", h.deleteExerciseSet)
	api.GET("/exercise-history", h.getExerciseHistory)

	api.GET("/nutrition/daily", h.getDailySummary)
	api.GET("/nutrition/progress", h.getProgress)
	api.POST("/nutrition/items", h.createNutritionEntry)
	api.PUT("/nutrition/items/:id", h.updateNutritionEntry)
	api.DELETE("/nutrition/items/:id", h.deleteNutritionEntry)

	api.GET("/plan", h.getPlan)
	api.POST("/plan/preview", h.previewPlan)
}
