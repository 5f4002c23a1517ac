// pkg/flightplan/postprocess.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flightplan

import (
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

// SpeedMap maps a Tag to a speed in meters/second (§4.7
// flight_speed_map). Lookups are by key; insertion order is not kept.
type SpeedMap struct {
	m map[Tag]float64
}

func NewSpeedMap() *SpeedMap { return &SpeedMap{m: make(map[Tag]float64)} }

func (s *SpeedMap) Set(t Tag, speed float64) { s.m[t] = speed }

// Speed returns the configured speed for t, or the cruise default
// (§4.7 "Missing tag -> cruise default").
func (s *SpeedMap) Speed(t Tag) float64 {
	if v, ok := s.m[t]; ok {
		return v
	}
	if v, ok := s.m[TagCruise]; ok {
		return v
	}
	return 5.0 // fallback if even cruise is unconfigured
}

// ClampEvent records a single altitude-floor lift (§4.7/§8).
type ClampEvent struct {
	RouteID    string
	WaypointIx int
	From, To   float64
}

// PostProcessParams bundles the Config fields C7 reads directly (§6).
type PostProcessParams struct {
	MaxSegmentLength float64 // post.max_segment_length
	AltitudeFloor    float64 // post.altitude_floor, default 2
	CornerAngleDeg   float64 // theta_corner
	CornerSpeed      float64 // default = min(cruise, 1 m/s)
	Speeds           *SpeedMap
}

// PostProcessReport accumulates diagnostics produced while
// post-processing a single Route (§4.7/§8).
type PostProcessReport struct {
	Clamps []ClampEvent
}

// PostProcess runs densification, altitude clamp, corner policy, and
// speed assignment on r in place, in that order, and returns a
// diagnostics report.
func PostProcess(r *Route, p PostProcessParams) PostProcessReport {
	r.Waypoints = densify(r.Waypoints, p.MaxSegmentLength)
	report := PostProcessReport{}
	clampAltitude(r, p.AltitudeFloor, &report)
	applyCornerPolicy(r, p.CornerAngleDeg, p.CornerSpeed)
	assignSpeeds(r, p.Speeds)
	r.ComputeStats()
	return report
}

// densify inserts intermediate waypoints wherever a segment exceeds
// maxLen, interpolating linearly in xyz (§4.7).
func densify(wps []Waypoint, maxLen float64) []Waypoint {
	if maxLen <= 0 || len(wps) < 2 {
		return wps
	}
	out := make([]Waypoint, 0, len(wps))
	for i := 0; i < len(wps)-1; i++ {
		a, b := wps[i], wps[i+1]
		out = append(out, a)
		d := math.Distance3(a.Pos, b.Pos)
		if d <= maxLen {
			continue
		}
		n := int(math.Abs(d)/maxLen) + 1
		for k := 1; k < n; k++ {
			t := float64(k) / float64(n)
			mid := a
			mid.Pos = math.Lerp3(t, a.Pos, b.Pos)
			mid.Tag = b.Tag
			out = append(out, mid)
		}
	}
	out = append(out, wps[len(wps)-1])
	return out
}

// clampAltitude lifts any waypoint below floor up to floor, recording
// each lift (§4.7/§8).
func clampAltitude(r *Route, floor float64, report *PostProcessReport) {
	for i := range r.Waypoints {
		if r.Waypoints[i].Pos[2] < floor {
			report.Clamps = append(report.Clamps, ClampEvent{
				RouteID: r.ID, WaypointIx: i, From: r.Waypoints[i].Pos[2], To: floor,
			})
			r.Waypoints[i].Pos[2] = floor
		}
	}
}

// applyCornerPolicy marks waypoints whose interior turn angle exceeds
// thresholdDeg as TagCorner with cornerSpeed (§4.7). Endpoints have no
// interior angle and are left untouched.
func applyCornerPolicy(r *Route, thresholdDeg, cornerSpeed float64) {
	wps := r.Waypoints
	if len(wps) < 3 {
		return
	}
	threshold := math.Radians(thresholdDeg)
	for i := 1; i < len(wps)-1; i++ {
		in := math.Sub2(wps[i].Pos.XY(), wps[i-1].Pos.XY())
		out := math.Sub2(wps[i+1].Pos.XY(), wps[i].Pos.XY())
		if math.Length2(in) == 0 || math.Length2(out) == 0 {
			continue
		}
		angle := math.AngleBetween2(in, out)
		if angle > threshold {
			wps[i].Tag = TagCorner
			wps[i].Speed = cornerSpeed
		}
	}
}

// assignSpeeds sets each waypoint's speed from the configured
// flight_speed_map, skipping waypoints the corner policy already
// overrode (§4.7).
func assignSpeeds(r *Route, speeds *SpeedMap) {
	for i := range r.Waypoints {
		if r.Waypoints[i].Tag == TagCorner {
			continue
		}
		r.Waypoints[i].Speed = speeds.Speed(r.Waypoints[i].Tag)
	}
}
