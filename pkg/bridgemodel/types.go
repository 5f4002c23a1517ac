// pkg/bridgemodel/types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package bridgemodel assembles the bridge's deck surface, pillar
// prisms, and span partition (C3) from a trajectory, a cross-section,
// and pillar/abutment inputs, extruding geometry with pkg/math (C2).
package bridgemodel

import "github.com/ErToBar2/ORBIT-sub001/pkg/math"

// Trajectory is an ordered sequence of points in local-metric
// coordinates, monotone in arc-length, with at least two points (§3).
type Trajectory struct {
	Points []math.Vec3
}

// CrossSection2D is a closed polygon in the (across, up) cross-section
// plane; must have at least 3 vertices (§3). Vertices are normalized to
// CCW winding on ingestion (SPEC_FULL §9, Open Question c).
type CrossSection2D struct {
	Points []math.Vec2
}

// PillarPair marks the left/right ground-plane base of a pillar.
type PillarPair struct {
	Left, Right math.Vec2
}

func (p PillarPair) Midpoint() math.Vec2 { return math.Mid2(p.Left, p.Right) }

// Abutment marks a span end; structurally identical to a PillarPair
// but never traversed under by the under-deck planner (§3).
type Abutment struct {
	Left, Right math.Vec2
}

func (a Abutment) Midpoint() math.Vec2 { return math.Mid2(a.Left, a.Right) }

// PillarHeightHint is an optional sparse ground-sample input
// (SPEC_FULL §3), supplementing the pillar-prism ground reference with
// a measured height when one is available near a pillar's midpoint.
type PillarHeightHint struct {
	Point  math.Vec2
	Height float64
}

// Ring is one cross-section-shaped slice of the deck surface, placed
// at a single trajectory sample.
type Ring struct {
	Vertices []math.Vec3
}

// Face is a quad connecting two consecutive rings along one
// cross-section edge, referencing vertex indices into DeckSurface.Vertices.
type Face [4]int

// DeckSurface is the triangulated (quad-faced) ribbon obtained by
// extruding the cross-section along the trajectory's moving frame.
type DeckSurface struct {
	Rings    []Ring
	Vertices []math.Vec3 // flattened, ring-major: Vertices[i*M+j]
	Faces    []Face
	Frames   []math.Frame
	Stations []math.Vec3 // centerline sample point per ring
	ArcLen   []float64   // cumulative arc-length per ring
}

// PillarPrism is the rectangular box between ground and deck above a
// pillar pair.
type PillarPrism struct {
	Base   [4]math.Vec2 // ground footprint, inflated by lateral offset w
	GroundZ float64
	DeckZ  float64 // z of the nearest deck vertex (clamped to >= GroundZ+5)
}

// Span is one ordered segment of the trajectory's arc-length between
// two consecutive pillar/abutment stations.
type Span struct {
	Index    int
	S0, S1   float64 // arc-length bounds
	PillarA  *int    // index into BridgeModel.PillarPrisms, nil for an abutment
	PillarB  *int
}

// BridgeModel is the derived aggregate built by Assemble.
type BridgeModel struct {
	Deck         DeckSurface
	PillarPrisms []PillarPrism
	Spans        []Span
}
