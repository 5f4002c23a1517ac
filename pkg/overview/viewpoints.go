// pkg/overview/viewpoints.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package overview

import "github.com/ErToBar2/ORBIT-sub001/pkg/math"

// SpacingFormulaVersion identifies the viewpoint-spacing formula
// resolved for SPEC_FULL §4.5 Open Question (b).
const SpacingFormulaVersion = 1

// Spacing computes the viewpoint spacing s_v from a reference GSD and
// the forward/side overlap fractions: monotone decreasing in overlap,
// clamped to [spacingMin, spacingMax] (§4.5).
func Spacing(gsdReference, forwardOverlap, sideOverlap, spacingMin, spacingMax float64) float64 {
	overlap := math.Max(forwardOverlap, sideOverlap)
	overlap = math.Clamp(overlap, 0, 0.95)
	s := gsdReference / (1 - overlap)
	return math.Clamp(s, spacingMin, spacingMax)
}

// sampleLoop resamples a sequence of bandPoints at the given spacing,
// measured along the sequence's own 3-D polyline length, returning at
// least minCount viewpoints.
func sampleLoop(loop []bandPoint, spacing float64, minCount int) []bandPoint {
	if len(loop) == 0 {
		return nil
	}
	cum := make([]float64, len(loop))
	for i := 1; i < len(loop); i++ {
		cum[i] = cum[i-1] + math.Distance3(loop[i-1].pos, loop[i].pos)
	}
	total := cum[len(cum)-1]
	if total == 0 {
		return []bandPoint{loop[0]}
	}

	n := int(total/spacing) + 1
	if n < minCount {
		n = minCount
	}

	out := make([]bandPoint, n)
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(n)
		out[i] = interpolateAtArcLen(loop, cum, target)
	}
	return out
}

func interpolateAtArcLen(loop []bandPoint, cum []float64, target float64) bandPoint {
	lo, hi := 0, len(cum)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if cum[mid] <= target {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo >= len(loop)-1 {
		return loop[len(loop)-1]
	}
	segLen := cum[lo+1] - cum[lo]
	var t float64
	if segLen > 0 {
		t = (target - cum[lo]) / segLen
	}
	return bandPoint{
		pos:    math.Lerp3(t, loop[lo].pos, loop[lo+1].pos),
		arcLen: math.Lerp(t, loop[lo].arcLen, loop[lo+1].arcLen),
	}
}
