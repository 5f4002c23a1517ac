// pkg/overview/simplify_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package overview

import (
	"testing"

	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

func zigzagWaypoints() []flightplan.Waypoint {
	// A near-straight run with small wobbles, plus one sharp corner.
	pts := []math.Vec3{
		{0, 0, 10},
		{10, 0.2, 10},
		{20, -0.2, 10},
		{30, 0, 10},
		{40, 0, 10}, // sharp corner here
		{40, 40, 10},
		{40, 80, 10},
	}
	wps := make([]flightplan.Waypoint, len(pts))
	for i, p := range pts {
		wps[i] = flightplan.Waypoint{Pos: p}
	}
	return wps
}

func TestSimplifyIdempotent(t *testing.T) {
	wps := zigzagWaypoints()
	once := Simplify(wps, 15)
	twice := Simplify(once, 15)

	if len(once) != len(twice) {
		t.Fatalf("simplify is not idempotent: len(once)=%d len(twice)=%d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Pos != twice[i].Pos {
			t.Errorf("waypoint %d changed on second pass: %v -> %v", i, once[i].Pos, twice[i].Pos)
		}
	}
}

func TestSimplifyMonotoneInThreshold(t *testing.T) {
	wps := zigzagWaypoints()
	loose := Simplify(wps, 30)
	tight := Simplify(wps, 5)

	if len(tight) < len(loose) {
		t.Errorf("smaller angle threshold should keep at least as many waypoints: tight=%d loose=%d", len(tight), len(loose))
	}
}

func TestSimplifyPreservesEndpointsAndCorner(t *testing.T) {
	wps := zigzagWaypoints()
	out := Simplify(wps, 15)

	if out[0].Pos != wps[0].Pos {
		t.Errorf("first waypoint must be preserved")
	}
	if out[len(out)-1].Pos != wps[len(wps)-1].Pos {
		t.Errorf("last waypoint must be preserved")
	}
	found := false
	for _, w := range out {
		if w.Pos == wps[4].Pos {
			found = true
		}
	}
	if !found {
		t.Errorf("sharp corner waypoint must survive simplification")
	}
}
