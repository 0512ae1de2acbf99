package main

import "testing"

/* ─── Category boundaries ────────────────────────────────────────────── */

// TestBMICategory verifies half-open interval boundaries: 18.5 and 25 belong
// to the band above, 30 to obese.
func TestBMICategory(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{16, "underweight"},
		{18.49, "underweight"},
		{18.5, "normal"},
		{24.99, "normal"},
		{25, "overweight"},
		{29.99, "overweight"},
		{30, "obese"},
		{40, "obese"},
	}
	for _, tc := range cases {
		if got := bmiCategory(tc.bmi); got != tc.want {
			t.Errorf("bmiCategory(%v) = %s, want %s", tc.bmi, got, tc.want)
		}
	}
}

/* ─── Analysis ───────────────────────────────────────────────────────── */

// TestAnalyzeBMI hand-checks the full analysis.
// 80kg, 180cm: BMI = 80/1.8² = 24.69 (normal).
// Target weight = 22.5 × 1.8² = 72.9; kg to goal = 7.1.
// Baseline 90kg: progress = (90−80)/(90−72.9) ≈ 58.48%.
func TestAnalyzeBMI(t *testing.T) {
	out := analyzeBMI(80, 180, fp(90))

	if out.BMI == nil || out.TargetWeightKg == nil || out.KgToGoal == nil || out.ProgressPct == nil {
		t.Fatalf("expected all fields set, got %+v", out)
	}
	within(t, "bmi", *out.BMI, 24.69, 0.01)
	if out.Category != "normal" {
		t.Errorf("category = %s, want normal", out.Category)
	}
	within(t, "target weight", *out.TargetWeightKg, 72.9, 0.01)
	within(t, "kg to goal", *out.KgToGoal, 7.1, 0.01)
	within(t, "progress", *out.ProgressPct, 58.48, 0.01)
}

// TestAnalyzeBMI_Degrades verifies missing height or weight yields nils
// instead of an error or a division by zero.
func TestAnalyzeBMI_Degrades(t *testing.T) {
	out := analyzeBMI(80, 0, nil)
	if out.BMI != nil || out.TargetWeightKg != nil {
		t.Errorf("expected nil analysis without height, got %+v", out)
	}

	out = analyzeBMI(0, 180, nil)
	if out.BMI != nil {
		t.Error("expected nil BMI without weight")
	}
	if out.TargetWeightKg == nil {
		t.Error("target weight only needs height, expected it set")
	}
}

// TestAnalyzeBMI_ProgressFromHeavierBaseline hand-checks the losing
// direction. 90kg at 170cm, baseline 100kg: target = 22.5 × 1.7² = 65.03,
// progress = (100−90)/(100−65.03) ≈ 28.6%.
func TestAnalyzeBMI_ProgressFromHeavierBaseline(t *testing.T) {
	out := analyzeBMI(90, 170, fp(100))
	if out.ProgressPct == nil {
		t.Fatal("expected progress to be set")
	}
	within(t, "progress", *out.ProgressPct, 28.6, 0.05)
}

/* ─── Progress toward target ─────────────────────────────────────────── */

// TestProgressTowardTarget verifies direction handling, clamping, and the
// baseline==target short-circuit.
func TestProgressTowardTarget(t *testing.T) {
	cases := []struct {
		name                      string
		baseline, current, target float64
		want                      float64
	}{
		{"halfway down", 90, 81.45, 72.9, 50},
		{"gaining toward target", 60, 66, 72, 50},
		{"overshoot clamps to 100", 90, 70, 72.9, 100},
		{"moved backwards clamps to 0", 90, 95, 72.9, 0},
		{"baseline equals target", 72.9, 72.9, 72.9, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			within(t, "progress", progressTowardTarget(tc.baseline, tc.current, tc.target), tc.want, 0.01)
		})
	}
}
