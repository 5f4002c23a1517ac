// pkg/overview/envelope.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package overview implements the photogrammetric overview flight
// planner (C5): envelope inflation, viewpoint sampling, tour ordering,
// and angle-threshold simplification.
package overview

import (
	"github.com/ErToBar2/ORBIT-sub001/pkg/bridgemodel"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

// Params bundles the overview.* Config fields (§6).
type Params struct {
	LateralStandoff  float64
	TopStandoff      float64
	ForwardOverlap   float64
	SideOverlap      float64
	AngleThresholdDeg float64 // 5..30, default 15
	TurnMode         string  // coordinated | stop_and_turn
}

func DefaultParams() Params {
	return Params{
		LateralStandoff:   5,
		TopStandoff:       3,
		ForwardOverlap:    0.7,
		SideOverlap:       0.6,
		AngleThresholdDeg: 15,
		TurnMode:          "coordinated",
	}
}

// bandPoint is one point of the envelope band together with its
// arc-length along the deck centerline.
type bandPoint struct {
	pos    math.Vec3
	arcLen float64
}

// crossSectionHalfWidth returns the maximum |across| extent of the
// cross-section, used as the deck's half-width before lateral
// inflation.
func crossSectionHalfWidth(cs bridgemodel.CrossSection2D) float64 {
	var maxAbs float64
	for _, p := range cs.Points {
		if a := math.Abs(p[0]); a > maxAbs {
			maxAbs = a
		}
	}
	return maxAbs
}

// BuildEnvelope inflates the deck's horizontal footprint by the
// configured lateral/top standoffs, producing two closed horizontal
// rings (left-then-right, stitched) — an upper ring above deck height
// and a lower ring below it — using a per-station lateral offset
// (Minkowski-sum-with-rotated-rectangle per §4.5) rather than a single
// global offset, so the band follows the trajectory's curvature.
func BuildEnvelope(deck bridgemodel.DeckSurface, cs bridgemodel.CrossSection2D, p Params) (upper, lower []bandPoint) {
	halfWidth := crossSectionHalfWidth(cs) + p.LateralStandoff
	topOfDeck := maxCrossSectionHeight(cs)

	n := len(deck.Stations)
	upperLeft := make([]bandPoint, n)
	upperRight := make([]bandPoint, n)
	lowerLeft := make([]bandPoint, n)
	lowerRight := make([]bandPoint, n)

	for i := 0; i < n; i++ {
		fr := deck.Frames[i]
		st := deck.Stations[i]
		s := deck.ArcLen[i]

		left := math.Add3(st, math.Scale3(fr.Normal, halfWidth))
		right := math.Add3(st, math.Scale3(fr.Normal, -halfWidth))

		up := math.Vec3{0, 0, topOfDeck + p.TopStandoff}
		down := math.Vec3{0, 0, -p.TopStandoff}

		upperLeft[i] = bandPoint{math.Add3(left, up), s}
		upperRight[i] = bandPoint{math.Add3(right, up), s}
		lowerLeft[i] = bandPoint{math.Add3(left, down), s}
		lowerRight[i] = bandPoint{math.Add3(right, down), s}
	}

	upper = stitch(upperLeft, upperRight)
	lower = stitch(lowerLeft, lowerRight)
	return
}

func maxCrossSectionHeight(cs bridgemodel.CrossSection2D) float64 {
	var maxU float64
	for _, p := range cs.Points {
		if p[1] > maxU {
			maxU = p[1]
		}
	}
	return maxU
}

// stitch concatenates the left ring forward and the right ring
// reversed into a single closed loop around the bridge's perimeter.
func stitch(left, right []bandPoint) []bandPoint {
	out := make([]bandPoint, 0, len(left)+len(right))
	out = append(out, left...)
	for i := len(right) - 1; i >= 0; i-- {
		out = append(out, right[i])
	}
	return out
}
