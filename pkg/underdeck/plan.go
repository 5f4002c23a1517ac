// pkg/underdeck/plan.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package underdeck implements the per-span under-deck inspection
// planner (C6): transverse boustrophedon crossing sweeps and a single
// axial pass within each span's clearance envelope, with transitions
// between spans.
package underdeck

import (
	"fmt"

	"github.com/ErToBar2/ORBIT-sub001/pkg/bridgemodel"
	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

// Params bundles the underdeck.* Config fields (§6).
type Params struct {
	VerticalClearance   float64 // from deck underside
	HorizontalClearance float64 // from pillar faces
	SweepOverlap        float64 // fraction
	AxialSpacing        float64 // along-track spacing for the axial pass
	TransitionVertical  float64 // shared with overview transition.vertical_offset
}

func DefaultParams() Params {
	return Params{
		VerticalClearance:   2,
		HorizontalClearance: 1,
		SweepOverlap:        0.6,
		AxialSpacing:        3,
		TransitionVertical:  3,
	}
}

// spacingParams mirrors overview.SpacingParams so the contract in
// §4.5/§4.6 (same spacing formula) is shared without importing the
// overview package; neither planner package imports the other.
type spacingParams struct {
	gsdReference, spacingMin, spacingMax float64
}

func defaultSpacingParams() spacingParams {
	return spacingParams{gsdReference: 2.0, spacingMin: 1.0, spacingMax: 20.0}
}

func sweepSpacing(overlap float64, sp spacingParams) float64 {
	overlap = math.Clamp(overlap, 0, 0.95)
	s := sp.gsdReference / (1 - overlap)
	return math.Clamp(s, sp.spacingMin, sp.spacingMax)
}

// stationsInRange returns the deck ring indices whose arc-length falls
// within [s0, s1].
func stationsInRange(deck bridgemodel.DeckSurface, s0, s1 float64) []int {
	var idx []int
	for i, s := range deck.ArcLen {
		if s >= s0 && s <= s1 {
			idx = append(idx, i)
		}
	}
	return idx
}

func halfWidth(cs bridgemodel.CrossSection2D) float64 {
	var m float64
	for _, p := range cs.Points {
		if a := math.Abs(p[0]); a > m {
			m = a
		}
	}
	return m
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

func deckUnderside(deck bridgemodel.DeckSurface, stationIdx int, cs bridgemodel.CrossSection2D) float64 {
	var minU float64
	first := true
	for _, p := range cs.Points {
		if first || p[1] < minU {
			minU = p[1]
			first = false
		}
	}
	return deck.Stations[stationIdx][2] + minU
}

// PlanSpan builds the crossing and axial Routes for one span (§4.6).
// prisms is the full BridgeModel.PillarPrisms slice, consulted to tag
// waypoints directly above a pillar's footprint as over_pillar.
func PlanSpan(deck bridgemodel.DeckSurface, cs bridgemodel.CrossSection2D, span bridgemodel.Span,
	prisms []bridgemodel.PillarPrism, p Params) (crossing, axial *flightplan.Route) {
	idx := stationsInRange(deck, span.S0, span.S1)
	hw := halfWidth(cs) + p.HorizontalClearance

	spacing := sweepSpacing(p.SweepOverlap, defaultSpacingParams())
	sweepStations := subsampleByArcLen(deck, idx, spacing)

	crossingWps := make([]flightplan.Waypoint, 0, len(sweepStations)*2+2)
	crossingWps = append(crossingWps, entryWaypoint(deck, sweepStations, cs, p, true, span.PillarA, prisms))
	for i, si := range sweepStations {
		fr := deck.Frames[si]
		st := deck.Stations[si]
		z := deckUnderside(deck, si, cs) - p.VerticalClearance

		left := math.Add3(st, math.Scale3(fr.Normal, hw))
		right := math.Add3(st, math.Scale3(fr.Normal, -hw))
		left[2], right[2] = z, z

		a, b := left, right
		if i%2 == 1 {
			a, b = right, left
		}
		crossingWps = append(crossingWps,
			flightplan.Waypoint{Pos: a, Tag: flightplan.TagInspect},
			flightplan.Waypoint{Pos: b, Tag: flightplan.TagInspect},
		)
	}
	crossingWps = append(crossingWps, entryWaypoint(deck, sweepStations, cs, p, false, span.PillarB, prisms))
	markOverPillar(crossingWps, prisms)

	crossing = &flightplan.Route{
		ID: fmt.Sprintf("underdeck_span_%d_crossing", span.Index), Class: flightplan.ClassUnderdeckCrossing,
		SpanIndex: span.Index, Waypoints: crossingWps,
	}
	crossing.ComputeStats()

	axialStations := subsampleByArcLen(deck, idx, p.AxialSpacing)
	axialWps := make([]flightplan.Waypoint, 0, len(axialStations)+2)
	axialWps = append(axialWps, entryWaypoint(deck, axialStations, cs, p, true, span.PillarA, prisms))
	for _, si := range axialStations {
		st := deck.Stations[si]
		z := deckUnderside(deck, si, cs) - p.VerticalClearance
		axialWps = append(axialWps, flightplan.Waypoint{Pos: math.Vec3{st[0], st[1], z}, Tag: flightplan.TagInspect})
	}
	axialWps = append(axialWps, entryWaypoint(deck, axialStations, cs, p, false, span.PillarB, prisms))
	markOverPillar(axialWps, prisms)

	axial = &flightplan.Route{
		ID: fmt.Sprintf("axial_underdeck_span_%d", span.Index), Class: flightplan.ClassUnderdeckAxial,
		SpanIndex: span.Index, Waypoints: axialWps,
	}
	axial.ComputeStats()
	return
}

// subsampleByArcLen picks a subset of station indices from idx spaced
// at least `spacing` apart in arc-length.
func subsampleByArcLen(deck bridgemodel.DeckSurface, idx []int, spacing float64) []int {
	if len(idx) == 0 {
		return nil
	}
	out := []int{idx[0]}
	lastS := deck.ArcLen[idx[0]]
	for _, i := range idx[1:] {
		if deck.ArcLen[i]-lastS >= spacing {
			out = append(out, i)
			lastS = deck.ArcLen[i]
		}
	}
	if out[len(out)-1] != idx[len(idx)-1] {
		out = append(out, idx[len(idx)-1])
	}
	return out
}

// entryWaypoint builds the span's start or end transition waypoint:
// a point outside the prism boundaries, lifted above deck height by
// the configured transition offset (§4.6 point 4). At a pillar end it
// sits above the center of that pillar's footprint; at an abutment end
// it sits above the span's first or last station.
func entryWaypoint(deck bridgemodel.DeckSurface, stations []int, cs bridgemodel.CrossSection2D, p Params, start bool,
	pillar *int, prisms []bridgemodel.PillarPrism) flightplan.Waypoint {
	var si int
	if start {
		si = stations[0]
	} else {
		si = stations[len(stations)-1]
	}
	st := deck.Stations[si]
	topOfDeck := st[2] + maxCrossSectionHeight(cs)
	pos := math.Vec3{st[0], st[1], topOfDeck + p.TransitionVertical}
	if pillar != nil && *pillar < len(prisms) {
		c := math.Scale2(math.Add2(prisms[*pillar].Base[0], prisms[*pillar].Base[2]), 0.5)
		pos[0], pos[1] = c[0], c[1]
	}
	return flightplan.Waypoint{Pos: pos, Tag: flightplan.TagTransition}
}

// markOverPillar retags any waypoint whose xy falls within a pillar
// prism's base footprint as over_pillar, taking priority over whatever
// tag the waypoint already carried.
func markOverPillar(wps []flightplan.Waypoint, prisms []bridgemodel.PillarPrism) {
	for i := range wps {
		xy := wps[i].Pos.XY()
		for _, prism := range prisms {
			if math.PointInPolygon(xy, prism.Base[:]) {
				wps[i].Tag = flightplan.TagOverPillar
				break
			}
		}
	}
}
