// pkg/bridgemodel/assemble_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bridgemodel

import (
	"errors"
	"testing"

	"github.com/ErToBar2/ORBIT-sub001/pkg/errs"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

func straightBridge() (Trajectory, CrossSection2D, []PillarPair, []Abutment) {
	traj := Trajectory{Points: []math.Vec3{{0, 0, 10}, {50, 0, 10}, {100, 0, 10}}}
	cs := CrossSection2D{Points: []math.Vec2{{-5, 0}, {5, 0}, {5, 2}, {-5, 2}}}
	pillars := []PillarPair{
		{Left: math.Vec2{25, -5}, Right: math.Vec2{25, 5}},
		{Left: math.Vec2{75, -5}, Right: math.Vec2{75, 5}},
	}
	abutments := []Abutment{
		{Left: math.Vec2{0, -5}, Right: math.Vec2{0, 5}},
		{Left: math.Vec2{100, -5}, Right: math.Vec2{100, 5}},
	}
	return traj, cs, pillars, abutments
}

func TestAssembleFaceCountInvariant(t *testing.T) {
	traj, cs, pillars, abutments := straightBridge()
	model, err := Assemble(traj, cs, pillars, abutments, nil, DefaultParams())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	nSamples := len(model.Deck.Rings)
	nCS := len(cs.Points)
	want := (nSamples - 1) * nCS
	if got := len(model.Deck.Faces); got != want {
		t.Errorf("face count = %d, want (samples-1)*cross_section_size = %d", got, want)
	}
	if len(model.Deck.Vertices) != nSamples*nCS {
		t.Errorf("vertex count = %d, want samples*cross_section_size = %d", len(model.Deck.Vertices), nSamples*nCS)
	}
}

func TestAssembleSpanPartitionCoversTrajectory(t *testing.T) {
	traj, cs, pillars, abutments := straightBridge()
	model, err := Assemble(traj, cs, pillars, abutments, nil, DefaultParams())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(model.Spans) == 0 {
		t.Fatalf("expected at least one span")
	}

	total := model.Deck.ArcLen[len(model.Deck.ArcLen)-1]
	if d := math.Abs(model.Spans[0].S0); d > 1e-6 {
		t.Errorf("first span should start at 0, got %v", model.Spans[0].S0)
	}
	if d := math.Abs(model.Spans[len(model.Spans)-1].S1 - total); d > 1e-6 {
		t.Errorf("last span should end at total arc length %v, got %v", total, model.Spans[len(model.Spans)-1].S1)
	}
	for i := 1; i < len(model.Spans); i++ {
		if d := math.Abs(model.Spans[i-1].S1 - model.Spans[i].S0); d > 1e-6 {
			t.Errorf("span %d/%d boundary mismatch: %v vs %v", i-1, i, model.Spans[i-1].S1, model.Spans[i].S0)
		}
	}
}

func TestAssembleDegenerateTrajectory(t *testing.T) {
	traj := Trajectory{Points: []math.Vec3{{5, 5, 5}, {5, 5, 5}}}
	cs := CrossSection2D{Points: []math.Vec2{{-5, 0}, {5, 0}, {5, 2}, {-5, 2}}}
	abutments := []Abutment{{Left: math.Vec2{0, -5}, Right: math.Vec2{0, 5}}}

	_, err := Assemble(traj, cs, nil, abutments, nil, DefaultParams())
	if err == nil {
		t.Fatalf("expected GeometryDegenerate error")
	}
	if !errors.Is(err, errs.ErrGeometryDegenerate) {
		t.Errorf("expected GeometryDegenerate, got %v", err)
	}
}

func TestAssembleCollinearCrossSection(t *testing.T) {
	traj := Trajectory{Points: []math.Vec3{{0, 0, 0}, {100, 0, 0}}}
	cs := CrossSection2D{Points: []math.Vec2{{-5, 0}, {0, 0}, {5, 0}}}
	abutments := []Abutment{{Left: math.Vec2{0, -5}, Right: math.Vec2{0, 5}}}

	_, err := Assemble(traj, cs, nil, abutments, nil, DefaultParams())
	if err == nil {
		t.Fatalf("expected GeometryDegenerate error for collinear cross-section")
	}
	if !errors.Is(err, errs.ErrGeometryDegenerate) {
		t.Errorf("expected GeometryDegenerate, got %v", err)
	}
}
