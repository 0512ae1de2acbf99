package main

import "testing"

/* ─── Goal-driven defaults ───────────────────────────────────────────── */

// TestDefaultGramsPerKg verifies the first-match goal ladder. Cutting with a
// known body fat of 20%: 2.3 × 0.8 = 1.84.
func TestDefaultGramsPerKg(t *testing.T) {
	cases := []struct {
		name  string
		goals goalSet
		bf    *float64
		want  float64
	}{
		{"cutting with bf", goalSet{"cutting"}, fp(20), 1.84},
		{"cutting without bf", goalSet{"cutting"}, nil, 2.0},
		{"cutting beats bulking", goalSet{"bulking", "cutting"}, nil, 2.0},
		{"recomp", goalSet{"recomp"}, nil, 2.0},
		{"bulking", goalSet{"bulking"}, nil, 1.8},
		{"no goals", goalSet{}, nil, 1.6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := defaultGramsPerKg(tc.goals, tc.bf)
			within(t, "g/kg", got, tc.want, 0.001)
		})
	}
}

// TestDefaultDeficitPctFromGoals verifies the starting deficit ladder,
// including the bulking surplus.
func TestDefaultDeficitPctFromGoals(t *testing.T) {
	cases := []struct {
		goals goalSet
		want  float64
	}{
		{goalSet{"cutting_fast"}, 25},
		{goalSet{"cutting"}, 20},
		{goalSet{"cutting_fast", "cutting"}, 25},
		{goalSet{"recomp"}, 10},
		{goalSet{"bulking"}, -10},
		{goalSet{}, 0},
	}
	for _, tc := range cases {
		if got := defaultDeficitPctFromGoals(tc.goals); got != tc.want {
			t.Errorf("%v: got %v, want %v", tc.goals, got, tc.want)
		}
	}
}

// TestRecommendedProteinBand verifies the coaching bands per goal.
func TestRecommendedProteinBand(t *testing.T) {
	band := recommendedProteinBand(goalSet{"cutting"})
	if band.MinGPerKg != 1.8 || band.MaxGPerKg != 2.3 {
		t.Errorf("cutting band = %v, want 1.8–2.3", band)
	}
	band = recommendedProteinBand(goalSet{})
	if band.MinGPerKg != 1.4 || band.MaxGPerKg != 2.0 || band.Label != "general" {
		t.Errorf("general band = %v, want 1.4–2.0 general", band)
	}
}

/* ─── Plan assembly ──────────────────────────────────────────────────── */

// TestPlanProteinTarget_CuttingOnLeanMass hand-checks the lean-mass path.
// 56kg lean mass, cutting at 20% body fat: 1.84 g/kg × 56 = 103.04g.
// Per-meal cues: 0.3×56 = 16.8g low, 0.4×56 = 22.4g high.
func TestPlanProteinTarget_CuttingOnLeanMass(t *testing.T) {
	plan := planProteinTarget(56, goalSet{"cutting"}, fp(20), nil)

	within(t, "g/kg", plan.GramsPerKg, 1.84, 0.001)
	within(t, "protein g", plan.ProteinG, 103.04, 0.01)
	within(t, "per-meal low", plan.PerMealLowG, 16.8, 0.01)
	within(t, "per-meal high", plan.PerMealHighG, 22.4, 0.01)
	if plan.FromOverride {
		t.Error("expected goal default, not override")
	}
}

// TestPlanProteinTarget_Override verifies a user-chosen g/kg wins over the
// goal default and is flagged as such.
func TestPlanProteinTarget_Override(t *testing.T) {
	plan := planProteinTarget(80, goalSet{"cutting"}, nil, fp(2.4))
	if !plan.FromOverride {
		t.Error("expected FromOverride")
	}
	within(t, "g/kg", plan.GramsPerKg, 2.4, 0.001)
	within(t, "protein g", plan.ProteinG, 192, 0.01)
}

/* ─── Coaching messages ──────────────────────────────────────────────── */

// TestProteinCoaching_Grading verifies the g/kg grading thresholds.
func TestProteinCoaching_Grading(t *testing.T) {
	cases := []struct {
		gpk  float64
		want riskLevel
	}{
		{0.9, riskCaution},
		{1.2, riskOK},
		{1.4, riskOK},
		{2.2, riskOK},
		{2.3, riskCaution},
		{2.5, riskDanger},
	}
	for _, tc := range cases {
		items := proteinCoaching(tc.gpk, goalSet{}, nil)
		if len(items) == 0 {
			t.Fatalf("gpk %v: expected at least the grading message", tc.gpk)
		}
		if items[0].Level != tc.want {
			t.Errorf("gpk %v: level %s, want %s", tc.gpk, items[0].Level, tc.want)
		}
	}
}

// TestProteinCoaching_GoalNoteAccumulates verifies the goal note is appended
// after the grading message, never replacing it.
func TestProteinCoaching_GoalNoteAccumulates(t *testing.T) {
	items := proteinCoaching(2.0, goalSet{"cutting"}, fp(20))
	if len(items) != 2 {
		t.Fatalf("expected grading + goal note, got %d: %v", len(items), items)
	}
	if !hasRisk(items, riskOK, "LBM-based") {
		t.Errorf("expected the cutting-with-bf note, got %v", items)
	}
}
