// pkg/underdeck/plan_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package underdeck

import (
	"testing"

	"github.com/ErToBar2/ORBIT-sub001/pkg/bridgemodel"
	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

func twoSpanModel(t *testing.T) (bridgemodel.BridgeModel, bridgemodel.CrossSection2D) {
	t.Helper()
	traj := bridgemodel.Trajectory{Points: []math.Vec3{{0, 0, 10}, {50, 0, 10}, {100, 0, 10}}}
	cs := bridgemodel.CrossSection2D{Points: []math.Vec2{{-5, 0}, {5, 0}, {5, 2}, {-5, 2}}}
	pillars := []bridgemodel.PillarPair{{Left: math.Vec2{50, -5}, Right: math.Vec2{50, 5}}}
	abutments := []bridgemodel.Abutment{
		{Left: math.Vec2{0, -5}, Right: math.Vec2{0, 5}},
		{Left: math.Vec2{100, -5}, Right: math.Vec2{100, 5}},
	}
	model, err := bridgemodel.Assemble(traj, cs, pillars, abutments, nil, bridgemodel.DefaultParams())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(model.Spans) != 2 {
		t.Fatalf("expected exactly 2 spans for 1 pillar + 2 abutments, got %d", len(model.Spans))
	}
	return model, cs
}

// TestPlanSpanCountForTwoSpans grounds §8 seed test #4: a 2-span input
// must yield exactly 2 axial and 2 crossing routes (one pair per span).
func TestPlanSpanCountForTwoSpans(t *testing.T) {
	model, cs := twoSpanModel(t)
	p := DefaultParams()

	var axialRoutes, crossingRoutes []*flightplan.Route
	for _, span := range model.Spans {
		crossing, axial := PlanSpan(model.Deck, cs, span, model.PillarPrisms, p)
		crossingRoutes = append(crossingRoutes, crossing)
		axialRoutes = append(axialRoutes, axial)
	}

	if len(axialRoutes) != 2 {
		t.Errorf("expected 2 axial routes, got %d", len(axialRoutes))
	}
	if len(crossingRoutes) != 2 {
		t.Errorf("expected 2 crossing routes, got %d", len(crossingRoutes))
	}
	for i, r := range axialRoutes {
		if r.Class != flightplan.ClassUnderdeckAxial {
			t.Errorf("axial route %d has wrong class %v", i, r.Class)
		}
	}
	for i, r := range crossingRoutes {
		if r.Class != flightplan.ClassUnderdeckCrossing {
			t.Errorf("crossing route %d has wrong class %v", i, r.Class)
		}
	}
}

func TestMarkOverPillarTagsWaypointsAbovePrism(t *testing.T) {
	model, cs := twoSpanModel(t)
	if len(model.PillarPrisms) == 0 {
		t.Fatalf("expected at least one pillar prism")
	}
	p := DefaultParams()
	crossing, axial := PlanSpan(model.Deck, cs, model.Spans[0], model.PillarPrisms, p)

	foundOverPillar := false
	for _, wp := range append(append([]flightplan.Waypoint{}, crossing.Waypoints...), axial.Waypoints...) {
		if wp.Tag == flightplan.TagOverPillar {
			foundOverPillar = true
			break
		}
	}
	if !foundOverPillar {
		t.Errorf("expected at least one waypoint tagged over_pillar near the pillar at x=50")
	}
}
