package main

import (
	"fmt"
	"math"
)

/* ─── Calorie target planning ────────────────────────────────────────── */

// riskLevel grades a risk/coaching message.
type riskLevel string

const (
	riskOK      riskLevel = "ok"
	riskCaution riskLevel = "caution"
	riskDanger  riskLevel = "danger"
)

// riskMessage is one entry in an accumulating assessment list. Multiple
// rules can fire for the same plan; order follows rule evaluation order.
type riskMessage struct {
	Level   riskLevel `json:"level"`
	Message string    `json:"message"`
}

// calorieTarget is the result of planCalorieTarget.
type calorieTarget struct {
	TargetKcal   *float64      `json:"target_kcal"`
	DeltaKcal    *float64      `json:"delta_kcal"` // target − TDEE, signed
	HardFloor    float64       `json:"hard_floor_kcal"`
	FloorEngaged bool          `json:"floor_engaged"`
	Risks        []riskMessage `json:"risks"`
}

// sexCalorieFloor returns the absolute daily calorie floor per gender:
// 1200 female, 1500 male, 1400 otherwise.
func sexCalorieFloor(gender string) float64 {
	switch gender {
	case "female":
		return 1200
	case "male":
		return 1500
	default:
		return 1400
	}
}

// planCalorieTarget applies a deficit/surplus percentage (positive = deficit,
// range −15..30) to TDEE, clamps the result to a safety floor, and grades the
// choice. Total: missing TDEE degrades to a nil target plus a caution message
// rather than an error. The returned target is always ≥ the hard floor.
func planCalorieTarget(tdee, bmr *float64, pct float64, gender string) calorieTarget {
	floor := sexCalorieFloor(gender)
	if bmr != nil {
		floor = math.Max(floor, 0.8**bmr)
	}
	if tdee != nil {
		floor = math.Max(floor, 0.55**tdee)
	}
	// Round the floor once, up front, so a clamped target can never land a
	// fraction of a kcal below the floor it was clamped to.
	floor = round2(floor)

	out := calorieTarget{HardFloor: floor}
	if tdee == nil {
		out.Risks = appendMissingTDEERisk(out.Risks)
		return out
	}

	raw := round2(*tdee * (1 - pct/100))
	target := raw
	if raw < floor {
		target = floor
		out.FloorEngaged = true
	}
	delta := round2(target - *tdee)
	out.TargetKcal = &target
	out.DeltaKcal = &delta

	// Ordered, accumulating rule list; every applicable rule appends.
	if pct > 0 {
		kgPerWeek := round2(math.Max(0, *tdee-target) * 7 / 7700)
		level := riskDanger
		switch {
		case kgPerWeek <= 0.4:
			level = riskOK
		case kgPerWeek <= 0.7:
			level = riskCaution
		}
		out.Risks = append(out.Risks, riskMessage{level,
			fmt.Sprintf("estimated loss rate: ~%.2f kg/week", kgPerWeek)})
	} else if pct < 0 {
		level := riskCaution
		if math.Abs(pct) <= 10 {
			level = riskOK
		}
		out.Risks = append(out.Risks, riskMessage{level,
			"estimated gain rate stays lean if protein and training are adequate"})
	}

	if out.FloorEngaged {
		out.Risks = append(out.Risks, riskMessage{riskCaution,
			"safety floor engaged: target raised to avoid an unsafely low intake"})
	}

	if bmr != nil && target < *bmr {
		out.Risks = append(out.Risks, riskMessage{riskDanger,
			"target below BMR: risk of fatigue, performance loss, and metabolic slowdown"})
	}

	switch {
	case pct >= 25:
		out.Risks = append(out.Risks, riskMessage{riskDanger,
			"very aggressive deficit: can hurt training, hormones, and mood — prefer 15–20%"})
	case pct >= 20:
		out.Risks = append(out.Risks, riskMessage{riskCaution,
			"significant deficit: fine short-term — watch sleep, protein, and recovery"})
	case pct >= 10:
		out.Risks = append(out.Risks, riskMessage{riskOK,
			"moderate deficit: sustainable for a long cut or recomp"})
	}

	return out
}

// appendMissingTDEERisk is shared by the planner paths that run with an
// incomplete profile.
func appendMissingTDEERisk(risks []riskMessage) []riskMessage {
	return append(risks, riskMessage{riskCaution,
		"not enough data for an accurate TDEE — add weight, height, or age"})
}
