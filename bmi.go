package main

/* ─── BMI analysis ───────────────────────────────────────────────────── */

// targetBMI is the system-picked optimal BMI: the midpoint of the normal
// range, used to derive the target weight.
const targetBMI = 22.5

// bmiCategory buckets a BMI value. Half-open intervals: 18.5 and 25 belong
// to the band above, 30 to obese.
func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// bmiAnalysis is the result of analyzeBMI.
type bmiAnalysis struct {
	BMI            *float64 `json:"bmi"`
	Category       string   `json:"category,omitempty"`
	TargetBMI      float64  `json:"target_bmi"`
	TargetWeightKg *float64 `json:"target_weight_kg"`
	KgToGoal       *float64 `json:"kg_to_goal"` // positive = lose, negative = gain
	ProgressPct    *float64 `json:"progress_pct"`
}

// analyzeBMI computes BMI, its category, and the weight matching targetBMI.
// When a baseline (first recorded) weight is given it also reports progress
// from baseline toward the target weight. Degrades to nil fields when height
// or weight are unusable.
func analyzeBMI(weightKg, heightCm float64, baselineWeightKg *float64) bmiAnalysis {
	out := bmiAnalysis{TargetBMI: targetBMI}
	if heightCm <= 0 {
		return out
	}
	heightM := heightCm / 100

	targetWeight := round2(targetBMI * heightM * heightM)
	out.TargetWeightKg = &targetWeight

	if weightKg <= 0 {
		return out
	}
	bmi := round2(weightKg / (heightM * heightM))
	out.BMI = &bmi
	out.Category = bmiCategory(bmi)

	kgToGoal := round2(weightKg - targetWeight)
	out.KgToGoal = &kgToGoal

	if baselineWeightKg != nil && *baselineWeightKg > 0 {
		progress := round2(progressTowardTarget(*baselineWeightKg, weightKg, targetWeight))
		out.ProgressPct = &progress
	}
	return out
}

// progressTowardTarget measures how far the current weight has moved from the
// baseline toward the target, clamped to [0,100]. The equal-baseline case
// short-circuits to 100 before the general formula can divide by zero.
func progressTowardTarget(baseline, current, target float64) float64 {
	switch {
	case baseline > target:
		return clamp01((baseline-current)/(baseline-target)) * 100
	case baseline < target:
		return clamp01((current-baseline)/(target-baseline)) * 100
	default:
		return 100
	}
}
