// pkg/pipeline/pipeline_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pipeline

import (
	"context"
	"testing"

	"github.com/ErToBar2/ORBIT-sub001/pkg/bridgemodel"
	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/log"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
	"github.com/ErToBar2/ORBIT-sub001/pkg/safety"
)

func testLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(false, "info", t.TempDir())
}

// straightTwoRequest builds the §8 seed test #1 scenario: a straight
// 100m bridge with two pillar pairs.
func straightTwoRequest() CompileRequest {
	cfg := DefaultConfig()
	cfg.Safety.ResolvePolicy = safety.Policy{Kind: safety.PolicyAccept}
	return CompileRequest{
		CRSId: "custom", CRSOriginLat: 50.85, CRSOriginLon: 4.35,
		TrajectoryPoints: []math.Vec3{{0, 0, 10}, {50, 0, 10}, {100, 0, 10}},
		PillarPairs: []bridgemodel.PillarPair{
			{Left: math.Vec2{25, -5}, Right: math.Vec2{25, 5}},
			{Left: math.Vec2{75, -5}, Right: math.Vec2{75, 5}},
		},
		Abutments: []bridgemodel.Abutment{
			{Left: math.Vec2{0, -5}, Right: math.Vec2{0, 5}},
			{Left: math.Vec2{100, -5}, Right: math.Vec2{100, 5}},
		},
		CrossSection2D: bridgemodel.CrossSection2D{
			Points: []math.Vec2{{-5, 0}, {5, 0}, {5, 2}, {-5, 2}},
		},
		Config: cfg,
	}
}

func TestCompileProducesOverviewAndUnderdeckRoutes(t *testing.T) {
	resp, err := Compile(context.Background(), testLogger(t), straightTwoRequest(), NewCancelToken())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(resp.Routes) == 0 {
		t.Fatalf("expected at least one route")
	}

	var classes = map[flightplan.RouteClass]int{}
	for _, r := range resp.Routes {
		classes[r.Class]++
	}
	if classes[flightplan.ClassOverview] != 1 {
		t.Errorf("expected exactly 1 overview route, got %d", classes[flightplan.ClassOverview])
	}
	// Three spans (two pillars + two abutments) -> 3 crossing + 3 axial.
	if classes[flightplan.ClassUnderdeckCrossing] != 3 {
		t.Errorf("expected 3 underdeck_crossing routes, got %d", classes[flightplan.ClassUnderdeckCrossing])
	}
	if classes[flightplan.ClassUnderdeckAxial] != 3 {
		t.Errorf("expected 3 underdeck_axial routes, got %d", classes[flightplan.ClassUnderdeckAxial])
	}

	if resp.SnapshotHash == "" {
		t.Errorf("expected a non-empty snapshot hash")
	}
	if len(resp.Exported) != len(resp.Routes) {
		t.Errorf("expected every route to have an exported waypoint list, got %d exported vs %d routes",
			len(resp.Exported), len(resp.Routes))
	}
}

// TestCompileRouteOrdering grounds §5's ordering guarantee: overview
// sorts before underdeck_crossing, which sorts before underdeck_axial,
// and within a class routes are ordered by span index.
func TestCompileRouteOrdering(t *testing.T) {
	resp, err := Compile(context.Background(), testLogger(t), straightTwoRequest(), NewCancelToken())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for i := 1; i < len(resp.Routes); i++ {
		a, b := resp.Routes[i-1], resp.Routes[i]
		if a.Class > b.Class {
			t.Fatalf("route %d (class %v) sorts after route %d (class %v)", i-1, a.Class, i, b.Class)
		}
		if a.Class == b.Class && a.SpanIndex > b.SpanIndex {
			t.Errorf("within class %v, span index not ascending: %d then %d", a.Class, a.SpanIndex, b.SpanIndex)
		}
	}
}

// TestCompileDeterminism grounds §8 seed test #6: an identical
// CompileRequest run twice yields identical snapshot hashes and
// byte-identical route geometry.
func TestCompileDeterminism(t *testing.T) {
	req1 := straightTwoRequest()
	req2 := straightTwoRequest()

	resp1, err := Compile(context.Background(), testLogger(t), req1, NewCancelToken())
	if err != nil {
		t.Fatalf("Compile (run 1): %v", err)
	}
	resp2, err := Compile(context.Background(), testLogger(t), req2, NewCancelToken())
	if err != nil {
		t.Fatalf("Compile (run 2): %v", err)
	}

	if resp1.SnapshotHash != resp2.SnapshotHash {
		t.Fatalf("snapshot hash differs across identical runs: %s vs %s", resp1.SnapshotHash, resp2.SnapshotHash)
	}
	if len(resp1.Routes) != len(resp2.Routes) {
		t.Fatalf("route count differs across identical runs: %d vs %d", len(resp1.Routes), len(resp2.Routes))
	}
	for i := range resp1.Routes {
		r1, r2 := resp1.Routes[i], resp2.Routes[i]
		if r1.ID != r2.ID || len(r1.Waypoints) != len(r2.Waypoints) {
			t.Fatalf("route %d diverged: %q(%d wps) vs %q(%d wps)", i, r1.ID, len(r1.Waypoints), r2.ID, len(r2.Waypoints))
		}
		for j := range r1.Waypoints {
			if r1.Waypoints[j].Pos != r2.Waypoints[j].Pos {
				t.Errorf("route %d waypoint %d position diverged: %v vs %v", i, j, r1.Waypoints[j].Pos, r2.Waypoints[j].Pos)
			}
		}
	}
}

// TestCompileSafetyUnresolvedAbortsOnDefaultPolicy grounds §8 seed
// test #2: a safety zone intersecting the route under the default
// abort policy produces a SafetyUnresolved failure.
func TestCompileSafetyUnresolvedAbortsOnDefaultPolicy(t *testing.T) {
	req := straightTwoRequest()
	req.Config.Safety.ResolvePolicy = safety.Policy{Kind: safety.PolicyAbort}
	req.SafetyZones = []SafetyZoneInput{
		{
			ID:      "z1",
			Polygon: []math.Vec2{{40, -5}, {60, -5}, {60, 5}, {40, 5}},
			ZMin:    0, ZMax: 30,
		},
	}

	_, err := Compile(context.Background(), testLogger(t), req, NewCancelToken())
	if err == nil {
		t.Fatalf("expected a SafetyUnresolved failure with an intersecting zone under abort policy")
	}
}

// TestCompileSafetyLiftToResolves grounds §8 seed test #2's resolution
// path: lift_to(35) clears the findings without aborting.
func TestCompileSafetyLiftToResolves(t *testing.T) {
	req := straightTwoRequest()
	req.Config.Safety.ResolvePolicy = safety.Policy{Kind: safety.PolicyLiftTo, LiftToZ: 35}
	req.SafetyZones = []SafetyZoneInput{
		{
			ID:      "z1",
			Polygon: []math.Vec2{{40, -5}, {60, -5}, {60, 5}, {40, 5}},
			ZMin:    0, ZMax: 30,
		},
	}

	resp, err := Compile(context.Background(), testLogger(t), req, NewCancelToken())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	anyPreResolutionFinding := false
	for _, report := range resp.ValidationReport {
		if report.HasFindings() {
			anyPreResolutionFinding = true
			break
		}
	}
	if !anyPreResolutionFinding {
		t.Fatalf("expected at least one route's pre-resolution report to intersect the safety zone")
	}

	zone, err := safety.NewZone("z1", req.SafetyZones[0].Polygon, req.SafetyZones[0].ZMin, req.SafetyZones[0].ZMax, 0)
	if err != nil {
		t.Fatalf("NewZone: %v", err)
	}
	for _, r := range resp.Routes {
		if rerun := safety.Validate(r, []*safety.Zone{zone}); rerun.HasFindings() {
			t.Errorf("route %s still has findings after lift_to(35) resolution: %+v", r.ID, rerun.UnsafeSegments)
		}
	}
}

func TestCompileCancelledBeforeStart(t *testing.T) {
	cancel := NewCancelToken()
	cancel.Cancel()
	_, err := Compile(context.Background(), testLogger(t), straightTwoRequest(), cancel)
	if err == nil {
		t.Fatalf("expected a Cancelled error")
	}
}
