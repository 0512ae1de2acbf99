// CLI tool to create a profile row and print the user ID to send as the
// X-User-ID header. Prompts for the basics; everything can be changed later
// via PATCH /api/profile.
// Usage: go run ./cmd/create-profile (from the repo root)
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	conn, err := pgx.Connect(context.Background(), os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	reader := bufio.NewReader(os.Stdin)

	gender := prompt(reader, "Gender (male/female/other/unspecified)")
	if gender == "" {
		gender = "unspecified"
	}

	activity := prompt(reader, "Activity level (sedentary/light/moderate/very_active)")
	if activity == "" {
		activity = "sedentary"
	}

	heightCm := promptFloat(reader, "Height cm (blank to skip)")
	weightKg := promptFloat(reader, "Weight kg (blank to skip)")

	dob := prompt(reader, "Date of birth YYYY-MM-DD (blank to skip)")
	var dobArg *string
	if dob != "" {
		dobArg = &dob
	}

	userID := uuid.New().String()

	_, err = conn.Exec(context.Background(),
		`INSERT INTO profiles (user_id, gender, height_cm, weight_kg, date_of_birth, activity_level)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, gender, heightCm, weightKg, dobArg, activity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating profile: %v\n", err)
		os.Exit(1)
	}

	// Seed both settings rows so the planner never has to special-case a
	// missing row for a freshly created user.
	_, err = conn.Exec(context.Background(),
		`INSERT INTO user_calorie_settings (user_id, deficit_pct) VALUES ($1, NULL)`, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating calorie settings: %v\n", err)
		os.Exit(1)
	}

	_, err = conn.Exec(context.Background(),
		`INSERT INTO user_protein_settings (user_id) VALUES ($1)`, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating protein settings: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nProfile created successfully!\n")
	fmt.Printf("  User ID: %s\n", userID)
	fmt.Printf("  Send it as the X-User-ID header on every /api request.\n")
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label + ": ")
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptFloat returns nil on blank or unparseable input.
func promptFloat(reader *bufio.Reader, label string) *float64 {
	raw := prompt(reader, label)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ignoring %q: not a number\n", raw)
		return nil
	}
	return &v
}
