package main

import (
	"math"
	"strings"
)

/* ─── Body composition estimation ────────────────────────────────────── */

// bodyFatMethod tags how a body-fat percentage was obtained.
type bodyFatMethod string

const (
	bfMethodManual     bodyFatMethod = "manual"
	bfMethodNavyMale   bodyFatMethod = "navy_male"
	bfMethodNavyFemale bodyFatMethod = "navy_female"
	bfMethodNone       bodyFatMethod = "none"
)

// bodyProfile is the snapshot of a user's body data that feeds every
// calculation. Built fresh per request from the latest known measurement;
// never mutated. Optional fields are pointers so missing data stays missing.
type bodyProfile struct {
	WeightKg       float64  `json:"weight_kg"`
	HeightCm       *float64 `json:"height_cm"`
	AgeYears       *int     `json:"age_years"`
	Gender         string   `json:"gender"` // male, female, other, unspecified
	BodyFatPercent *float64 `json:"body_fat_percent"`
}

// circumferences holds tape measurements used for Navy body-fat estimation
// when no direct body-fat value is recorded. WaistCm must already be the
// preferred waist value (see bodyMeasurement.preferredWaistCm).
type circumferences struct {
	NeckCm  *float64 `json:"neck_cm"`
	WaistCm *float64 `json:"waist_cm"`
	HipsCm  *float64 `json:"hips_cm"`
}

// bodyComposition is the result of estimateBodyComposition. BodyFatPercent
// and LeanBodyMassKg are nil when no estimate was possible; Explanation
// always says where the numbers came from (or why there are none).
type bodyComposition struct {
	BodyFatPercent *float64      `json:"body_fat_percent"`
	LeanBodyMassKg *float64      `json:"lean_body_mass_kg"`
	Method         bodyFatMethod `json:"method"`
	Explanation    string        `json:"explanation"`
}

// estimateBodyComposition derives body-fat percentage and lean body mass.
// A recorded body-fat value always wins over estimation. Otherwise the U.S.
// Navy circumference formula is attempted; if required fields are missing or
// the geometry is invalid (waist ≤ neck), the result carries method "none"
// and a human-readable reason. Never fails.
func estimateBodyComposition(p bodyProfile, m *circumferences) bodyComposition {
	if p.BodyFatPercent != nil {
		bf := *p.BodyFatPercent
		return bodyComposition{
			BodyFatPercent: &bf,
			LeanBodyMassKg: leanBodyMass(p.WeightKg, bf),
			Method:         bfMethodManual,
			Explanation:    "recorded body-fat percentage",
		}
	}

	bf, method, reason := estimateBodyFatNavy(p.Gender, p.HeightCm, m)
	if method == bfMethodNone {
		return bodyComposition{Method: bfMethodNone, Explanation: reason}
	}
	return bodyComposition{
		BodyFatPercent: &bf,
		LeanBodyMassKg: leanBodyMass(p.WeightKg, bf),
		Method:         method,
		Explanation:    reason,
	}
}

// estimateBodyFatNavy applies the U.S. Navy tape-measure formula. Inputs are
// centimeters; the formula works in inches. Genders other than "female" use
// the male variant (same convention as the BMR sex constant). Results are
// clamped to [2,50] for the male formula and [2,60] for the female one.
func estimateBodyFatNavy(gender string, heightCm *float64, m *circumferences) (float64, bodyFatMethod, string) {
	var missing []string
	if heightCm == nil || *heightCm <= 0 {
		missing = append(missing, "height_cm")
	}
	if m == nil || m.NeckCm == nil {
		missing = append(missing, "neck_cm")
	}
	if m == nil || m.WaistCm == nil {
		missing = append(missing, "waist_cm")
	}
	female := gender == "female"
	if female && (m == nil || m.HipsCm == nil) {
		missing = append(missing, "hips_cm")
	}
	if len(missing) > 0 {
		return 0, bfMethodNone, "missing fields for Navy estimate: " + strings.Join(missing, ", ")
	}

	heightIn := cmToIn(*heightCm)
	neckIn := cmToIn(*m.NeckCm)
	waistIn := cmToIn(*m.WaistCm)

	if female {
		hipsIn := cmToIn(*m.HipsCm)
		sum := waistIn + hipsIn - neckIn
		if sum <= 0 {
			return 0, bfMethodNone, "invalid geometry: waist + hips must exceed neck"
		}
		bf := 163.205*math.Log10(sum) - 97.684*math.Log10(heightIn) - 78.387
		bf = round2(math.Max(2, math.Min(60, bf)))
		return bf, bfMethodNavyFemale, "US Navy tape estimate (female formula)"
	}

	if waistIn <= neckIn {
		return 0, bfMethodNone, "invalid geometry: waist must exceed neck"
	}
	bf := 86.010*math.Log10(waistIn-neckIn) - 70.041*math.Log10(heightIn) + 36.76
	bf = round2(math.Max(2, math.Min(50, bf)))
	return bf, bfMethodNavyMale, "US Navy tape estimate (male formula)"
}

// leanBodyMass returns weight × (1 − bf/100), rounded, or nil when weight
// is unusable.
func leanBodyMass(weightKg, bfPercent float64) *float64 {
	if weightKg <= 0 {
		return nil
	}
	lbm := round2(weightKg * (1 - bfPercent/100))
	return &lbm
}
