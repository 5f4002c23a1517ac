// pkg/pipeline/types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package pipeline implements the deterministic pipeline orchestrator
// (C8): it runs the CRS, geometry, bridge-model, planner, safety, and
// post-processing stages in a fixed order, fans overview and
// under-deck planning out as bounded-concurrency tasks within stage 5,
// and produces a CompileResponse carrying a stable snapshot hash
// (§4.8, §5).
package pipeline

import (
	"github.com/ErToBar2/ORBIT-sub001/pkg/bridgemodel"
	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
	"github.com/ErToBar2/ORBIT-sub001/pkg/safety"
	"github.com/ErToBar2/ORBIT-sub001/pkg/util"
)

// CompileRequest is the core input surface (§6).
type CompileRequest struct {
	CRSId             string
	CRSOriginLat      float64
	CRSOriginLon      float64
	TrajectoryPoints  []math.Vec3
	// TrajectoryHeights is optional; nil means "use trajectory z".
	// Accepts either a single height (flat deck profile, broadcast
	// across every trajectory point) or one height per point, since a
	// JSON inputs document commonly specifies only the former.
	TrajectoryHeights util.SingleOrArray[float64]
	PillarPairs       []bridgemodel.PillarPair
	Abutments         []bridgemodel.Abutment
	PillarHeightHints []bridgemodel.PillarHeightHint
	CrossSection2D    bridgemodel.CrossSection2D
	SafetyZones       []SafetyZoneInput
	Config            Config
}

// SafetyZoneInput is the wire-level form of a safety.Zone, validated
// and constructed during stage 6.
type SafetyZoneInput struct {
	ID       string
	Polygon  []math.Vec2
	ZMin     float64
	ZMax     float64
	Boundary float64
}

// Config enumerates every resolvable option of the pipeline (§6).
type Config struct {
	Overview   OverviewConfig
	Transition TransitionConfig
	Underdeck  UnderdeckConfig
	Safety     SafetyConfig
	Post       PostConfig
	Export     ExportConfig
	Assembly   bridgemodel.Params

	// MaxSpanWorkers bounds the concurrency of the under-deck per-span
	// task pool (§5 "at most P workers").
	MaxSpanWorkers int
}

type OverviewConfig struct {
	LateralStandoff  float64
	TopStandoff      float64
	ForwardOverlap   float64
	SideOverlap      float64
	AngleThresholdDeg float64
	TurnMode         string // "coordinated" | "stop_and_turn"
	GSDReference     float64
	SpacingMin       float64
	SpacingMax       float64
}

type TransitionConfig struct {
	Mode             string // "v_then_h" | "h_then_v" | "diagonal"
	VerticalOffset   float64
	HorizontalOffset float64
}

type UnderdeckConfig struct {
	VerticalClearance   float64
	HorizontalClearance float64
	SweepOverlap        float64
	AxialSpacing        float64
}

type SafetyConfig struct {
	BoundaryThreshold float64
	DefaultZMin       float64
	DefaultZMax       float64
	ResolvePolicy     safety.Policy
}

type PostConfig struct {
	MaxSegmentLength float64
	AltitudeFloor    float64
	CornerAngleDeg   float64
	CornerSpeed      float64
	FlightSpeedMap   map[flightplan.Tag]float64
}

type ExportConfig struct {
	HeightMode            flightplan.HeightMode
	GlobalSpeed           float64
	TakeoffSecurityHeight float64
}

// DefaultConfig returns the documented defaults from §6.
func DefaultConfig() Config {
	return Config{
		Overview: OverviewConfig{
			LateralStandoff: 5, TopStandoff: 3,
			ForwardOverlap: 0.7, SideOverlap: 0.6,
			AngleThresholdDeg: 15, TurnMode: "coordinated",
			GSDReference: 2.0, SpacingMin: 1.0, SpacingMax: 20.0,
		},
		Transition: TransitionConfig{Mode: "v_then_h", VerticalOffset: 3, HorizontalOffset: 2},
		Underdeck: UnderdeckConfig{
			VerticalClearance: 2, HorizontalClearance: 1,
			SweepOverlap: 0.6, AxialSpacing: 3,
		},
		Safety: SafetyConfig{
			BoundaryThreshold: 0.2, DefaultZMin: 0, DefaultZMax: 0,
			ResolvePolicy: safety.Policy{Kind: safety.PolicyAbort},
		},
		Post: PostConfig{
			AltitudeFloor: 2, CornerAngleDeg: 35, CornerSpeed: 1,
		},
		Export: ExportConfig{
			HeightMode: flightplan.HeightEllipsoid, GlobalSpeed: 5,
			TakeoffSecurityHeight: 30,
		},
		Assembly:       bridgemodel.DefaultParams(),
		MaxSpanWorkers: 4,
	}
}

// StageDiagnostic is the structured record every stage emits (§4.8).
type StageDiagnostic struct {
	Stage    string
	Ok       bool
	Message  string
	TimedOut bool
}

// CompileResponse is the core output surface (§6).
type CompileResponse struct {
	Routes          []*flightplan.Route
	Exported        map[string][]flightplan.ExportedWaypoint // route id -> WGS84 waypoints
	Diagnostics     []StageDiagnostic
	ValidationReport map[string]safety.ValidationReport // route id -> report
	ClampEvents     []flightplan.ClampEvent
	SnapshotHash    string
}

// CancelToken is consulted at stage boundaries and at the start of
// each span task (§5 Cancellation); cancellation between waypoint
// emissions is not permitted.
type CancelToken struct {
	c chan struct{}
}

func NewCancelToken() *CancelToken { return &CancelToken{c: make(chan struct{})} }

func (t *CancelToken) Cancel() {
	if t == nil {
		return
	}
	select {
	case <-t.c:
	default:
		close(t.c)
	}
}

func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	select {
	case <-t.c:
		return true
	default:
		return false
	}
}
