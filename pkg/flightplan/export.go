// pkg/flightplan/export.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package flightplan

import "github.com/ErToBar2/ORBIT-sub001/pkg/crs"

// ExportedWaypoint is a Waypoint after the CRS export transform:
// WGS84 lat/lon plus an altitude interpreted per ExportSpec.HeightMode
// (§6 Route.waypoints).
type ExportedWaypoint struct {
	Lat, Lon  float64
	AltOrRel  float64
	Speed     float64
	Tag       Tag
	TurnMode  TurnMode
}

// ExportRoute converts every waypoint of r from project CRS to WGS84
// and applies the configured height mode (§4.7 Export transform).
func ExportRoute(r *Route, projectCRS crs.ProjectCRS, spec ExportSpec, geoid GeoidModel) ([]ExportedWaypoint, error) {
	out := make([]ExportedWaypoint, len(r.Waypoints))
	for i, wp := range r.Waypoints {
		g, err := projectCRS.ToWGS84(crs.ProjectPoint{X: wp.Pos[0], Y: wp.Pos[1], Z: wp.Pos[2]})
		if err != nil {
			return nil, err
		}

		alt := g.Alt
		switch spec.HeightMode {
		case HeightEGM96:
			alt += geoid.Offset(g.Lat, g.Lon)
		case HeightRelativeToStart:
			alt = g.Alt - spec.TakeoffWGS84Alt
		case HeightEllipsoid:
			// alt already ellipsoidal.
		}

		tm := wp.TurnMode
		if tm == "" {
			tm = spec.TurnPolicy
		}

		out[i] = ExportedWaypoint{
			Lat: g.Lat, Lon: g.Lon, AltOrRel: alt,
			Speed: wp.Speed, Tag: wp.Tag, TurnMode: tm,
		}
	}
	return out, nil
}
