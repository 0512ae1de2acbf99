package main

/* ─── Energy expenditure (BMR / TDEE) ────────────────────────────────── */

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels; also used
// for input validation in patchProfile.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"very_active": 1.725,
}

// restDayDiscounts maps activity levels to the relative multiplier reduction
// applied on rest days. Sedentary users have no training days to discount.
var restDayDiscounts = map[string]float64{
	"sedentary":   0,
	"light":       -0.05,
	"moderate":    -0.10,
	"very_active": -0.12,
}

// restDayMultiplierFloor is the lowest effective activity multiplier a rest
// day can produce.
const restDayMultiplierFloor = 1.1

// bmrMethod labels which BMR formula was applicable, for display.
type bmrMethod string

const (
	bmrMethodKatchMcArdle bmrMethod = "katch_mcardle"
	bmrMethodMifflin      bmrMethod = "mifflin_st_jeor"
	bmrMethodWeightOnly   bmrMethod = "weight_only"
	bmrMethodNone         bmrMethod = "none"
)

// computeBMR estimates resting energy expenditure in kcal/day. First
// applicable formula wins:
//  1. Katch–McArdle when lean body mass is known: 370 + 21.6×LBM.
//  2. Mifflin–St Jeor when height and age are known: 10×kg + 6.25×cm − 5×age
//     + s, with s = −161 for female, +5 otherwise.
//  3. Weight-only fallback: 22×kg female, 24×kg otherwise.
//
// Returns nil only when weight is missing or non-positive.
func computeBMR(p bodyProfile, leanBodyMassKg *float64) (*float64, bmrMethod) {
	if p.WeightKg <= 0 {
		return nil, bmrMethodNone
	}

	if leanBodyMassKg != nil {
		bmr := round2(370 + 21.6**leanBodyMassKg)
		return &bmr, bmrMethodKatchMcArdle
	}

	if p.HeightCm != nil && *p.HeightCm > 0 && p.AgeYears != nil {
		s := 5.0
		if p.Gender == "female" {
			s = -161
		}
		bmr := round2(10*p.WeightKg + 6.25**p.HeightCm - 5*float64(*p.AgeYears) + s)
		return &bmr, bmrMethodMifflin
	}

	k := 24.0
	if p.Gender == "female" {
		k = 22
	}
	bmr := round2(k * p.WeightKg)
	return &bmr, bmrMethodWeightOnly
}

// effectiveActivityMultiplier resolves the activity level (unknown or empty
// falls back to sedentary) and applies the rest-day discount, floored at
// restDayMultiplierFloor. The discounted multiplier is rounded because it is
// surfaced to the user as-is.
func effectiveActivityMultiplier(activityLevel string, isRestDay bool) (float64, string) {
	level := activityLevel
	if _, ok := activityMultipliers[level]; !ok {
		level = "sedentary"
	}
	base := activityMultipliers[level]
	if !isRestDay {
		return base, level
	}
	discounted := round2(base * (1 + restDayDiscounts[level]))
	if discounted < restDayMultiplierFloor {
		discounted = restDayMultiplierFloor
	}
	return discounted, level
}

// computeTDEE multiplies BMR by the effective activity multiplier. Nil in,
// nil out.
func computeTDEE(bmr *float64, activityLevel string, isRestDay bool) *float64 {
	if bmr == nil {
		return nil
	}
	mult, _ := effectiveActivityMultiplier(activityLevel, isRestDay)
	tdee := round2(*bmr * mult)
	return &tdee
}
