package main

import "math"

// round2 rounds to 2 decimal places. All calculator outputs go through this
// so stored and displayed values agree.
func round2(n float64) float64 {
	return math.Round(n*100) / 100
}

// clamp01 clamps x into [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// cmToIn converts centimeters to inches for the Navy tape-measure formulas.
func cmToIn(cm float64) float64 {
	return cm / 2.54
}
