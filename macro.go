package main

import "math"

/* ─── Macro allocation ───────────────────────────────────────────────── */

// Macro allocation policy: protein is sized first (it preserves muscle in
// either direction), fat second (physiological minimum), carbohydrate takes
// the remainder subject to an essential 130 g/day floor. When the carb floor
// is unaffordable, fat is reduced toward its own floor to free calories;
// protein is never rebalanced.

const (
	carbsFloorG        = 130.0 // conventional minimum for brain glucose needs
	fatFloorPerKg      = 0.6
	fatPerKgDeficit    = 0.9 // used when deficit pct ≥ 10
	fatPerKgDefault    = 1.1
	fatRestDayIncrease = 1.1 // rest day shifts split toward fat
)

// macroTargets is a calorie target split into gram targets. TotalKcal is the
// sum of the component kcal for display reconciliation; it may differ from
// the requested target when a floor forced a deviation.
type macroTargets struct {
	ProteinG    float64 `json:"protein_g"`
	ProteinKcal float64 `json:"protein_kcal"`
	FatG        float64 `json:"fat_g"`
	FatKcal     float64 `json:"fat_kcal"`
	CarbsG      float64 `json:"carbs_g"`
	CarbsKcal   float64 `json:"carbs_kcal"`
	TotalKcal   float64 `json:"total_kcal"`
}

// allocateMacros splits targetKcal into protein/fat/carb targets.
// The protein basis is lean body mass when body fat is known, else total
// weight; fat is always sized on total weight. gramsPerKg comes from the
// protein planner (goal default or user override).
func allocateMacros(targetKcal, weightKg float64, bodyFatPercent *float64, isRestDay bool, gramsPerKg, deficitSurplusPct float64) macroTargets {
	basisKg := weightKg
	if bodyFatPercent != nil {
		basisKg = weightKg * (1 - *bodyFatPercent/100)
	}

	proteinG := round2(basisKg * gramsPerKg)
	proteinKcal := proteinG * 4

	fatPerKg := fatPerKgDefault
	if deficitSurplusPct >= 10 {
		fatPerKg = fatPerKgDeficit
	}
	fatPerKg = math.Max(fatPerKg, fatFloorPerKg)
	if isRestDay {
		fatPerKg = round2(fatPerKg * fatRestDayIncrease)
	}
	fatG := round2(weightKg * fatPerKg)
	fatKcal := fatG * 9

	remainKcal := targetKcal - proteinKcal - fatKcal
	carbsG := round2(math.Max(carbsFloorG, remainKcal/4))

	// Carb floor unaffordable: trade fat down to its floor to free calories,
	// then recompute carbs from the new remainder. Protein stays untouched
	// even if both floors end up binding.
	if remainKcal < carbsFloorG*4 {
		fatFloorG := round2(weightKg * fatFloorPerKg)
		needKcal := carbsFloorG*4 - remainKcal
		canDropKcal := math.Max(0, (fatG-fatFloorG)*9)
		drop := math.Min(needKcal, canDropKcal)
		fatKcal = math.Max(fatKcal-drop, fatFloorG*9)
		fatG = round2(fatKcal / 9)
		remainKcal = targetKcal - proteinKcal - fatKcal
		carbsG = round2(math.Max(carbsFloorG, remainKcal/4))
	}
	carbsKcal := carbsG * 4

	return macroTargets{
		ProteinG:    proteinG,
		ProteinKcal: proteinKcal,
		FatG:        fatG,
		FatKcal:     fatKcal,
		CarbsG:      carbsG,
		CarbsKcal:   carbsKcal,
		TotalKcal:   round2(proteinKcal + fatKcal + carbsKcal),
	}
}
