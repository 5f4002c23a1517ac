// pkg/overview/tour.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package overview

import (
	"sort"

	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

// TransitionMode selects how the tour moves between the upper and
// lower band (§4.5, §6 transition.mode).
type TransitionMode string

const (
	TransitionVThenH  TransitionMode = "v_then_h"
	TransitionHThenV  TransitionMode = "h_then_v"
	TransitionDiagonal TransitionMode = "diagonal"
)

// TourParams bundles the transition.* Config fields consumed while
// stitching upper and lower bands into a single tour (§6).
type TourParams struct {
	Mode             TransitionMode
	VerticalOffset   float64
	HorizontalOffset float64
}

// orderByArcLength sorts viewpoints within a band by cumulative
// trajectory arc-length (§4.5 step 2), stable so that left/right pairs
// at the same station keep their perimeter-traversal relative order.
func orderByArcLength(pts []bandPoint) []bandPoint {
	out := append([]bandPoint{}, pts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].arcLen < out[j].arcLen })
	return out
}

// BuildTour assembles the overview Route: partitions upper/lower bands
// (already separate from BuildEnvelope), orders each by arc-length,
// concatenates upper forward + lower reverse, closes the tour, and
// inserts transition waypoints between the bands (§4.5 steps 1-4).
func BuildTour(upper, lower []bandPoint, tp TourParams) []flightplan.Waypoint {
	u := orderByArcLength(upper)
	l := orderByArcLength(lower)

	wps := make([]flightplan.Waypoint, 0, len(u)+len(l)+4)
	for _, p := range u {
		wps = append(wps, flightplan.Waypoint{Pos: p.pos, Tag: flightplan.TagInspect})
	}
	if len(u) > 0 && len(l) > 0 {
		wps = append(wps, transitionWaypoints(u[len(u)-1].pos, l[len(l)-1].pos, tp)...)
	}
	for i := len(l) - 1; i >= 0; i-- {
		wps = append(wps, flightplan.Waypoint{Pos: l[i].pos, Tag: flightplan.TagInspect})
	}
	if len(u) > 0 && len(l) > 0 {
		wps = append(wps, transitionWaypoints(l[0].pos, u[0].pos, tp)...)
	}
	// Close the tour: the final transition already returns to the
	// first upper viewpoint's vicinity; append the start point to
	// close the loop explicitly.
	if len(wps) > 0 {
		wps = append(wps, flightplan.Waypoint{Pos: wps[0].Pos, Tag: flightplan.TagInspect})
	}

	if len(wps) > 0 {
		wps[0].Tag = flightplan.TagTakeoff
		wps[len(wps)-1].Tag = flightplan.TagLanding
	}
	// The leg immediately after takeoff is a transit climb-out, not an
	// inspection pass: tag it cruise so the emitted sequence matches
	// [takeoff, cruise, (inspect|corner)*, landing].
	if len(wps) > 2 {
		wps[1].Tag = flightplan.TagCruise
	}
	return wps
}

// transitionWaypoints inserts the waypoints needed to move from a to b
// across bands, per the configured transition mode (§4.5 step 4).
func transitionWaypoints(a, b math.Vec3, tp TourParams) []flightplan.Waypoint {
	vOffset := math.Vec3{0, 0, tp.VerticalOffset}
	dir := math.Normalize3(math.Sub3(b, a))
	hOffset := math.Scale3(dir, tp.HorizontalOffset)

	var mid1, mid2 math.Vec3
	switch tp.Mode {
	case TransitionHThenV:
		mid1 = math.Add3(a, hOffset)
		mid2 = math.Add3(mid1, vOffset)
	case TransitionDiagonal:
		mid1 = math.Add3(a, math.Add3(hOffset, vOffset))
		mid2 = mid1
	default: // TransitionVThenH
		mid1 = math.Add3(a, vOffset)
		mid2 = math.Add3(mid1, hOffset)
	}
	return []flightplan.Waypoint{
		{Pos: mid1, Tag: flightplan.TagTransition},
		{Pos: mid2, Tag: flightplan.TagTransition},
	}
}
