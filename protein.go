package main

/* ─── Protein target planning ────────────────────────────────────────── */

// goalSet is the user's goal tags (cutting, bulking, recomp, cutting_fast).
// Zero tags means general/maintenance defaults.
type goalSet []string

func (g goalSet) has(key string) bool {
	for _, k := range g {
		if k == key {
			return true
		}
	}
	return false
}

// proteinBand is the recommended g/kg coaching range for a goal.
type proteinBand struct {
	MinGPerKg float64 `json:"min_g_per_kg"`
	MaxGPerKg float64 `json:"max_g_per_kg"`
	Label     string  `json:"label"`
}

// proteinPlan is the result of planProteinTarget.
type proteinPlan struct {
	GramsPerKg    float64       `json:"grams_per_kg"`
	ProteinG      float64       `json:"protein_g"`
	BasisKg       float64       `json:"basis_kg"`
	Band          proteinBand   `json:"recommended_band"`
	Risks         []riskMessage `json:"risks"`
	PerMealLowG   float64       `json:"per_meal_low_g"`
	PerMealHighG  float64       `json:"per_meal_high_g"`
	FromOverride  bool          `json:"from_override"`
}

// defaultGramsPerKg picks the goal-driven protein coefficient. First matching
// rule wins: cutting (LBM-fraction based when body fat is known, else 2.0),
// recomp 2.0, bulking 1.8, general 1.6.
func defaultGramsPerKg(goals goalSet, bodyFatPercent *float64) float64 {
	if goals.has("cutting") {
		if bodyFatPercent != nil {
			frac := clamp01(1 - *bodyFatPercent/100)
			return round2(2.3 * frac)
		}
		return 2.0
	}
	if goals.has("recomp") {
		return 2.0
	}
	if goals.has("bulking") {
		return 1.8
	}
	return 1.6
}

// recommendedProteinBand returns the coaching display range for the goal.
func recommendedProteinBand(goals goalSet) proteinBand {
	switch {
	case goals.has("cutting"):
		return proteinBand{1.8, 2.3, "cutting"}
	case goals.has("recomp"):
		return proteinBand{1.8, 2.2, "recomp"}
	case goals.has("bulking"):
		return proteinBand{1.6, 2.2, "bulking"}
	default:
		return proteinBand{1.4, 2.0, "general"}
	}
}

// defaultDeficitPctFromGoals picks the starting deficit/surplus percentage
// when the user has not chosen one: cutting_fast 25, cutting 20, recomp 10,
// bulking −10 (surplus), else maintenance.
func defaultDeficitPctFromGoals(goals goalSet) float64 {
	switch {
	case goals.has("cutting_fast"):
		return 25
	case goals.has("cutting"):
		return 20
	case goals.has("recomp"):
		return 10
	case goals.has("bulking"):
		return -10
	default:
		return 0
	}
}

// proteinCoaching grades a g/kg choice and appends one goal-specific note.
// All applicable messages accumulate, same contract as the calorie risk list.
func proteinCoaching(gramsPerKg float64, goals goalSet, bodyFatPercent *float64) []riskMessage {
	var items []riskMessage

	switch {
	case gramsPerKg < 1.0:
		items = append(items, riskMessage{riskCaution,
			"low for lifters — risks muscle loss in a deficit"})
	case gramsPerKg < 1.4:
		items = append(items, riskMessage{riskOK,
			"reasonable for maintenance, though strength trainees usually take ≥1.6 g/kg"})
	case gramsPerKg <= 2.2:
		items = append(items, riskMessage{riskOK,
			"effective range for building or keeping muscle"})
	case gramsPerKg <= 2.4:
		items = append(items, riskMessage{riskCaution,
			"high — usually no added benefit; mind calories, fiber, and micros"})
	default:
		items = append(items, riskMessage{riskDanger,
			"very high — rarely needed; consider moving back toward 1.6–2.2 g/kg"})
	}

	switch {
	case goals.has("cutting"):
		if bodyFatPercent == nil {
			items = append(items, riskMessage{riskOK,
				"cutting without a body-fat value: 1.8–2.2 g/kg preserves muscle well"})
		} else {
			items = append(items, riskMessage{riskOK,
				"cutting with a body-fat value: an LBM-based target is the most precise"})
		}
	case goals.has("bulking"):
		items = append(items, riskMessage{riskOK,
			"bulking: ≥1.6 g/kg is usually enough — emphasize the surplus and training"})
	case goals.has("recomp"):
		items = append(items, riskMessage{riskOK,
			"recomp: 1.8–2.2 g/kg supports holding or building muscle in a small deficit"})
	}

	return items
}

// planProteinTarget computes the daily protein target from a body-mass basis
// (lean mass when body fat is known, else total weight). A user override of
// g/kg takes precedence over the goal default. Per-meal cues cover the
// 0.30–0.40 g/kg-per-meal spread band.
func planProteinTarget(basisKg float64, goals goalSet, bodyFatPercent *float64, overrideGramsPerKg *float64) proteinPlan {
	gpk := defaultGramsPerKg(goals, bodyFatPercent)
	fromOverride := false
	if overrideGramsPerKg != nil {
		gpk = *overrideGramsPerKg
		fromOverride = true
	}

	return proteinPlan{
		GramsPerKg:   gpk,
		ProteinG:     round2(basisKg * gpk),
		BasisKg:      round2(basisKg),
		Band:         recommendedProteinBand(goals),
		Risks:        proteinCoaching(gpk, goals, bodyFatPercent),
		PerMealLowG:  round2(0.3 * basisKg),
		PerMealHighG: round2(0.4 * basisKg),
		FromOverride: fromOverride,
	}
}
