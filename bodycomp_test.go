package main

import (
	"math"
	"strings"
	"testing"
)

// fp and ip build pointer literals for optional test inputs.
func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

// within fails the test when got is not inside want±tol.
func within(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tolerance ±%v)", label, got, want, tol)
	}
}

/* ─── Manual body-fat priority ───────────────────────────────────────── */

// TestEstimateBodyComposition_ManualWins verifies a recorded body-fat value
// takes priority over tape estimation even when a full tape set is present.
// 70kg at 20% body fat: LBM = 70 × 0.8 = 56.
func TestEstimateBodyComposition_ManualWins(t *testing.T) {
	p := bodyProfile{WeightKg: 70, HeightCm: fp(180), Gender: "male", BodyFatPercent: fp(20)}
	m := &circumferences{NeckCm: fp(38), WaistCm: fp(90)}

	comp := estimateBodyComposition(p, m)
	if comp.Method != bfMethodManual {
		t.Fatalf("method = %s, want %s", comp.Method, bfMethodManual)
	}
	if comp.BodyFatPercent == nil || comp.LeanBodyMassKg == nil {
		t.Fatal("expected body fat and LBM to be set")
	}
	within(t, "body fat", *comp.BodyFatPercent, 20, 0.001)
	within(t, "LBM", *comp.LeanBodyMassKg, 56, 0.001)
}

/* ─── Navy estimate accuracy ─────────────────────────────────────────── */

// TestEstimateBodyFatNavy_Male checks the male formula against hand-computed
// values. 180cm height, 38cm neck, 90cm waist:
// heightIn≈70.87, waistIn−neckIn≈20.47 → bf ≈ 19.93.
func TestEstimateBodyFatNavy_Male(t *testing.T) {
	m := &circumferences{NeckCm: fp(38), WaistCm: fp(90)}
	bf, method, _ := estimateBodyFatNavy("male", fp(180), m)
	if method != bfMethodNavyMale {
		t.Fatalf("method = %s, want %s", method, bfMethodNavyMale)
	}
	within(t, "male navy bf", bf, 19.93, 0.05)
}

// TestEstimateBodyFatNavy_Female checks the female formula.
// 165cm height, 33cm neck, 75cm waist, 100cm hips → bf ≈ 29.74.
func TestEstimateBodyFatNavy_Female(t *testing.T) {
	m := &circumferences{NeckCm: fp(33), WaistCm: fp(75), HipsCm: fp(100)}
	bf, method, _ := estimateBodyFatNavy("female", fp(165), m)
	if method != bfMethodNavyFemale {
		t.Fatalf("method = %s, want %s", method, bfMethodNavyFemale)
	}
	within(t, "female navy bf", bf, 29.74, 0.05)
}

// TestEstimateBodyFatNavy_OtherGenderUsesMale verifies genders other than
// "female" (including empty) route to the male formula, which does not need
// hips.
func TestEstimateBodyFatNavy_OtherGenderUsesMale(t *testing.T) {
	m := &circumferences{NeckCm: fp(38), WaistCm: fp(90)}
	for _, gender := range []string{"other", "unspecified", ""} {
		_, method, _ := estimateBodyFatNavy(gender, fp(180), m)
		if method != bfMethodNavyMale {
			t.Errorf("gender %q: method = %s, want %s", gender, method, bfMethodNavyMale)
		}
	}
}

/* ─── Navy missing-field and geometry guards ─────────────────────────── */

// TestEstimateBodyFatNavy_MissingFields verifies missing inputs produce
// method none with the missing field names in the reason.
func TestEstimateBodyFatNavy_MissingFields(t *testing.T) {
	cases := []struct {
		name    string
		height  *float64
		m       *circumferences
		gender  string
		mention string
	}{
		{"no height", nil, &circumferences{NeckCm: fp(38), WaistCm: fp(90)}, "male", "height_cm"},
		{"no neck", fp(180), &circumferences{WaistCm: fp(90)}, "male", "neck_cm"},
		{"no waist", fp(180), &circumferences{NeckCm: fp(38)}, "male", "waist_cm"},
		{"no tape at all", fp(180), nil, "male", "neck_cm"},
		{"female without hips", fp(165), &circumferences{NeckCm: fp(33), WaistCm: fp(75)}, "female", "hips_cm"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, method, reason := estimateBodyFatNavy(tc.gender, tc.height, tc.m)
			if method != bfMethodNone {
				t.Fatalf("method = %s, want %s", method, bfMethodNone)
			}
			if !strings.Contains(reason, tc.mention) {
				t.Errorf("reason %q does not mention %s", reason, tc.mention)
			}
		})
	}
}

// TestEstimateBodyFatNavy_InvalidGeometry verifies a waist at or below the
// neck measurement cannot produce an estimate (log10 of ≤0 is undefined).
func TestEstimateBodyFatNavy_InvalidGeometry(t *testing.T) {
	m := &circumferences{NeckCm: fp(40), WaistCm: fp(40)}
	_, method, _ := estimateBodyFatNavy("male", fp(180), m)
	if method != bfMethodNone {
		t.Errorf("method = %s, want %s for waist == neck", method, bfMethodNone)
	}
}

// TestEstimateBodyFatNavy_ClampLow verifies implausibly lean tape values are
// clamped to the 2% lower bound rather than going negative.
func TestEstimateBodyFatNavy_ClampLow(t *testing.T) {
	m := &circumferences{NeckCm: fp(39.9), WaistCm: fp(40)}
	bf, method, _ := estimateBodyFatNavy("male", fp(200), m)
	if method != bfMethodNavyMale {
		t.Fatalf("method = %s, want %s", method, bfMethodNavyMale)
	}
	if bf != 2 {
		t.Errorf("bf = %v, want clamp at 2", bf)
	}
}

/* ─── Lean body mass ─────────────────────────────────────────────────── */

// TestLeanBodyMass_NonPositiveWeight verifies unusable weight yields nil
// instead of a nonsense LBM.
func TestLeanBodyMass_NonPositiveWeight(t *testing.T) {
	if leanBodyMass(0, 20) != nil {
		t.Error("expected nil LBM for zero weight")
	}
	if leanBodyMass(-5, 20) != nil {
		t.Error("expected nil LBM for negative weight")
	}
}
