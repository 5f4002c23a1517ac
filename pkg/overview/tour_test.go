// pkg/overview/tour_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package overview

import (
	"testing"

	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

func bandFixture() (upper, lower []bandPoint) {
	for i := 0; i < 4; i++ {
		s := float64(i) * 10
		upper = append(upper, bandPoint{pos: math.Vec3{s, 5, 13}, arcLen: s})
		lower = append(lower, bandPoint{pos: math.Vec3{s, -5, 7}, arcLen: s})
	}
	return upper, lower
}

// TestBuildTourTagSequence grounds the required overview output tag
// sequence: takeoff, cruise, then any mix of inspect/corner/transition,
// ending on landing.
func TestBuildTourTagSequence(t *testing.T) {
	upper, lower := bandFixture()
	tp := TourParams{Mode: TransitionVThenH, VerticalOffset: 3, HorizontalOffset: 2}
	wps := BuildTour(upper, lower, tp)

	if len(wps) < 3 {
		t.Fatalf("expected at least 3 waypoints, got %d", len(wps))
	}
	if wps[0].Tag != flightplan.TagTakeoff {
		t.Errorf("expected first waypoint tagged takeoff, got %v", wps[0].Tag)
	}
	if wps[1].Tag != flightplan.TagCruise {
		t.Errorf("expected second waypoint tagged cruise, got %v", wps[1].Tag)
	}
	if wps[len(wps)-1].Tag != flightplan.TagLanding {
		t.Errorf("expected last waypoint tagged landing, got %v", wps[len(wps)-1].Tag)
	}
	for i, wp := range wps[2 : len(wps)-1] {
		switch wp.Tag {
		case flightplan.TagInspect, flightplan.TagCorner, flightplan.TagTransition:
		default:
			t.Errorf("waypoint %d: unexpected tag %v between cruise and landing", i+2, wp.Tag)
		}
	}
}
