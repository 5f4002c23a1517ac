// pkg/safety/safety_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package safety

import (
	"errors"
	"testing"

	"github.com/ErToBar2/ORBIT-sub001/pkg/errs"
	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

func straightRoute() *flightplan.Route {
	return &flightplan.Route{
		ID: "r1",
		Waypoints: []flightplan.Waypoint{
			{Pos: math.Vec3{0, 0, 20}},
			{Pos: math.Vec3{50, 0, 20}},
			{Pos: math.Vec3{100, 0, 20}},
		},
	}
}

func TestZoneZMinExceedsZMax(t *testing.T) {
	_, err := NewZone("z1", []math.Vec2{{0, 0}, {1, 0}, {1, 1}}, 10, 5, 0.2)
	if err == nil {
		t.Fatalf("expected InputInvalid for z_min > z_max")
	}
	if !errors.Is(err, errs.ErrInputInvalid) {
		t.Errorf("expected InputInvalid, got %v", err)
	}
}

func TestZoneTooFewVertices(t *testing.T) {
	_, err := NewZone("z1", []math.Vec2{{0, 0}, {1, 0}}, 0, 10, 0.2)
	if err == nil {
		t.Fatalf("expected InputInvalid for < 3 polygon vertices")
	}
}

func TestValidateEmptyZonesFindsNothing(t *testing.T) {
	r := straightRoute()
	report := Validate(r, nil)
	if report.HasFindings() {
		t.Errorf("expected no findings against an empty zone set")
	}
	if len(r.Waypoints) != 3 {
		t.Errorf("validator must not remove waypoints, got %d", len(r.Waypoints))
	}
}

// TestSafetyMonotonicity: enlarging a zone must not decrease the count
// of unsafe samples found for a fixed route (§8).
func TestSafetyMonotonicity(t *testing.T) {
	r := straightRoute()
	small, err := NewZone("z", []math.Vec2{{40, -5}, {60, -5}, {60, 5}, {40, 5}}, 0, 30, 0)
	if err != nil {
		t.Fatalf("NewZone: %v", err)
	}
	large, err := NewZone("z", []math.Vec2{{0, -5}, {100, -5}, {100, 5}, {0, 5}}, 0, 30, 0)
	if err != nil {
		t.Fatalf("NewZone: %v", err)
	}

	smallReport := Validate(r, []*Zone{small})
	largeReport := Validate(r, []*Zone{large})

	countOf := func(rep ValidationReport) int {
		n := 0
		for _, seg := range rep.UnsafeSegments {
			n += seg.Count
		}
		return n
	}
	if countOf(largeReport) < countOf(smallReport) {
		t.Errorf("enlarging the zone decreased unsafe sample count: %d -> %d", countOf(smallReport), countOf(largeReport))
	}
}

func TestResolveAbortReturnsSafetyUnresolved(t *testing.T) {
	r := straightRoute()
	z, err := NewZone("z", []math.Vec2{{40, -5}, {60, -5}, {60, 5}, {40, 5}}, 0, 30, 0)
	if err != nil {
		t.Fatalf("NewZone: %v", err)
	}
	report := Validate(r, []*Zone{z})
	if !report.HasFindings() {
		t.Fatalf("expected findings against the straight route")
	}

	_, err = Resolve(r, report, []*Zone{z}, Policy{Kind: PolicyAbort})
	if err == nil {
		t.Fatalf("expected SafetyUnresolved error on abort policy")
	}
	if !errors.Is(err, errs.ErrSafetyUnresolved) {
		t.Errorf("expected SafetyUnresolved, got %v", err)
	}
}

func TestResolveLiftToClearsFindings(t *testing.T) {
	r := straightRoute()
	z, err := NewZone("z", []math.Vec2{{40, -5}, {60, -5}, {60, 5}, {40, 5}}, 0, 30, 0)
	if err != nil {
		t.Fatalf("NewZone: %v", err)
	}
	report := Validate(r, []*Zone{z})
	resolved, err := Resolve(r, report, []*Zone{z}, Policy{Kind: PolicyLiftTo, LiftToZ: 35})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	rerun := Validate(resolved, []*Zone{z})
	if rerun.HasFindings() {
		t.Errorf("expected a clean re-validation after lift_to(35), got findings: %+v", rerun.UnsafeSegments)
	}
}
