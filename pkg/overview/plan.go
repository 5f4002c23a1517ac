// pkg/overview/plan.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package overview

import (
	"github.com/ErToBar2/ORBIT-sub001/pkg/bridgemodel"
	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
)

// SpacingParams carries the gsd/spacing-clamp inputs the planner needs
// to resolve a concrete spacing from Params' overlap fractions.
type SpacingParams struct {
	GSDReference float64
	SpacingMin   float64
	SpacingMax   float64
}

func DefaultSpacingParams() SpacingParams {
	return SpacingParams{GSDReference: 2.0, SpacingMin: 1.0, SpacingMax: 20.0}
}

// Plan runs the full overview pipeline (§4.5) and returns a single
// Route with class=overview, deterministic given identical inputs.
func Plan(deck bridgemodel.DeckSurface, cs bridgemodel.CrossSection2D, numSpans int,
	p Params, sp SpacingParams, tp TourParams) *flightplan.Route {

	upper, lower := BuildEnvelope(deck, cs, p)

	spacing := Spacing(sp.GSDReference, p.ForwardOverlap, p.SideOverlap, sp.SpacingMin, sp.SpacingMax)
	minPerBand := 2 * numSpans
	if minPerBand < 2 {
		minPerBand = 2
	}
	upperSamples := sampleLoop(upper, spacing, minPerBand)
	lowerSamples := sampleLoop(lower, spacing, minPerBand)

	wps := BuildTour(upperSamples, lowerSamples, tp)
	wps = Simplify(wps, p.AngleThresholdDeg)

	turnMode := flightplan.TurnCoordinated
	if p.TurnMode == "stop_and_turn" {
		turnMode = flightplan.TurnStopAndTurn
	}
	for i := range wps {
		wps[i].TurnMode = turnMode
	}

	r := &flightplan.Route{ID: "overview", Class: flightplan.ClassOverview, SpanIndex: -1, Waypoints: wps}
	r.ComputeStats()
	return r
}
