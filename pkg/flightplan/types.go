// pkg/flightplan/types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package flightplan defines the Waypoint/Route data model (§3) and
// implements the waypoint post-processing stage (C7): densification,
// altitude clamping, corner policy, speed assignment, and CRS export.
package flightplan

import "github.com/ErToBar2/ORBIT-sub001/pkg/math"

// Tag is a waypoint's role in its route (§3).
type Tag string

const (
	TagTakeoff    Tag = "takeoff"
	TagCruise     Tag = "cruise"
	TagInspect    Tag = "inspect"
	TagTransition Tag = "transition"
	TagCorner     Tag = "corner"
	TagOverPillar Tag = "over_pillar"
	TagLanding    Tag = "landing"
)

// TurnMode is the per-waypoint transition policy selected by
// Config.overview.turn_mode (§4.5/§6).
type TurnMode string

const (
	TurnCoordinated TurnMode = "coordinated_turn"
	TurnStopAndTurn TurnMode = "stop_and_turn"
)

// Waypoint is a single point in project-CRS coordinates, carried
// through the pipeline before the export transform converts it to
// WGS84 (§3).
type Waypoint struct {
	Pos      math.Vec3
	Tag      Tag
	Speed    float64
	TurnMode TurnMode
}

// RouteClass identifies the mission kind a Route belongs to (§3),
// ordered per §5's ordering guarantees (overview < underdeck_crossing
// < underdeck_axial).
type RouteClass int

const (
	ClassOverview RouteClass = iota
	ClassUnderdeckCrossing
	ClassUnderdeckAxial
)

func (c RouteClass) String() string {
	switch c {
	case ClassOverview:
		return "overview"
	case ClassUnderdeckCrossing:
		return "underdeck_crossing"
	case ClassUnderdeckAxial:
		return "underdeck_axial"
	default:
		return "unknown"
	}
}

// RouteStats summarizes a Route for diagnostics.
type RouteStats struct {
	Length     float64
	NumWaypoints int
}

// Route is an ordered sequence of Waypoints plus identifying metadata
// (§3).
type Route struct {
	ID         string
	Class      RouteClass
	SpanIndex  int // -1 for the overview route, which has no span
	Waypoints  []Waypoint
	Stats      RouteStats
}

func (r *Route) ComputeStats() {
	r.Stats.NumWaypoints = len(r.Waypoints)
	var length float64
	for i := 1; i < len(r.Waypoints); i++ {
		length += math.Distance3(r.Waypoints[i-1].Pos, r.Waypoints[i].Pos)
	}
	r.Stats.Length = length
}

// HeightMode selects how ExportSpec converts a waypoint's altitude
// (§3/§6).
type HeightMode string

const (
	HeightEllipsoid      HeightMode = "ellipsoid"
	HeightEGM96          HeightMode = "egm96"
	HeightRelativeToStart HeightMode = "relative_to_start"
)

// ExportSpec governs the project-CRS -> WGS84 export transform (§3).
type ExportSpec struct {
	HeightMode              HeightMode
	GlobalSpeed             float64
	MinAltitude             float64
	TurnPolicy              TurnMode
	TakeoffSecurityHeight   float64
	TakeoffWGS84Alt         float64 // altitude of the takeoff reference point, used by relative_to_start
}

// GeoidModel supplies the ellipsoid<->orthometric height offset used
// by HeightEGM96 (SPEC_FULL §4.7, Open Question a).
type GeoidModel interface {
	// Offset returns the orthometric-minus-ellipsoidal height offset
	// (in meters) to add to an ellipsoidal height to get an
	// orthometric one, at the given WGS84 location.
	Offset(lat, lon float64) float64
}

// ConstantGeoidModel is a GeoidModel returning a fixed offset
// regardless of location — the documented "+44.8 m" reference-locale
// constant, kept as the default for backward compatibility.
type ConstantGeoidModel float64

func (c ConstantGeoidModel) Offset(lat, lon float64) float64 { return float64(c) }

// DefaultGeoidModel is the reference-locale constant offset from the
// original implementation.
var DefaultGeoidModel GeoidModel = ConstantGeoidModel(44.8)
