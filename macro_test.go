package main

import "testing"

/* ─── Plain allocation ───────────────────────────────────────────────── */

// TestAllocateMacros_StandardDeficit hand-checks the protein-first split.
// 2207.2 kcal, 80kg, no body fat, 1.6 g/kg, 20% deficit, training day:
// protein 128g/512 kcal; fat at 0.9 g/kg = 72g/648 kcal;
// carbs take the remainder: (2207.2−512−648)/4 = 261.8g/1047.2 kcal.
func TestAllocateMacros_StandardDeficit(t *testing.T) {
	m := allocateMacros(2207.2, 80, nil, false, 1.6, 20)

	within(t, "protein g", m.ProteinG, 128, 0.01)
	within(t, "protein kcal", m.ProteinKcal, 512, 0.01)
	within(t, "fat g", m.FatG, 72, 0.01)
	within(t, "fat kcal", m.FatKcal, 648, 0.01)
	within(t, "carbs g", m.CarbsG, 261.8, 0.01)
	within(t, "carbs kcal", m.CarbsKcal, 1047.2, 0.01)
	within(t, "total", m.TotalKcal, 2207.2, 0.01)
}

// TestAllocateMacros_LeanMassBasis verifies protein is sized on lean mass
// when body fat is known while fat stays on total weight.
// 80kg at 25% body fat: basis 60kg × 2.0 = 120g protein; fat 1.1×80 = 88g.
func TestAllocateMacros_LeanMassBasis(t *testing.T) {
	m := allocateMacros(2500, 80, fp(25), false, 2.0, 0)
	within(t, "protein g", m.ProteinG, 120, 0.01)
	within(t, "fat g", m.FatG, 88, 0.01)
}

// TestAllocateMacros_RestDayFat verifies the rest-day shift toward fat:
// default 1.1 g/kg × 1.1 = 1.21 g/kg → 96.8g at 80kg.
func TestAllocateMacros_RestDayFat(t *testing.T) {
	m := allocateMacros(2500, 80, nil, true, 1.6, 0)
	within(t, "rest-day fat g", m.FatG, 96.8, 0.01)
}

/* ─── Floors and rebalance ───────────────────────────────────────────── */

// TestAllocateMacros_CarbFloorRebalance verifies the fat-down rebalance when
// the carb floor is unaffordable. 1500 kcal, 100kg, 2.2 g/kg, 25% deficit:
// protein 220g/880; fat starts at 0.9 g/kg = 90g/810, remainder −190 kcal.
// Fat drops to its 0.6 g/kg floor (60g/540), carbs land on the 130g floor.
// Protein is untouched; total overshoots to 1940 and that is accepted.
func TestAllocateMacros_CarbFloorRebalance(t *testing.T) {
	m := allocateMacros(1500, 100, nil, false, 2.2, 25)

	within(t, "protein g", m.ProteinG, 220, 0.01)
	within(t, "fat g", m.FatG, 60, 0.01)
	within(t, "fat kcal", m.FatKcal, 540, 0.01)
	within(t, "carbs g", m.CarbsG, 130, 0.01)
	within(t, "total", m.TotalKcal, 1940, 0.01)
}

// TestAllocateMacros_CarbFloorAlwaysHolds verifies carbs never drop below
// 130g even for a tiny target where every floor binds.
func TestAllocateMacros_CarbFloorAlwaysHolds(t *testing.T) {
	m := allocateMacros(1200, 90, nil, false, 2.4, 30)
	if m.CarbsG < carbsFloorG {
		t.Errorf("carbs %vg below the %vg floor", m.CarbsG, carbsFloorG)
	}
	fatFloorG := 90 * fatFloorPerKg
	if m.FatG < fatFloorG-0.01 {
		t.Errorf("fat %vg below the %vg floor", m.FatG, fatFloorG)
	}
}
