// pkg/overview/simplify.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package overview

import (
	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

// Simplify removes any intermediate waypoint whose turn angle at that
// point is below thresholdDeg, preserving the tour's endpoints and any
// TagTransition waypoint (§4.5 Simplification). It is idempotent: a
// second call on its own output is a no-op (§8).
func Simplify(wps []flightplan.Waypoint, thresholdDeg float64) []flightplan.Waypoint {
	if len(wps) < 3 {
		return wps
	}
	threshold := math.Radians(thresholdDeg)

	out := make([]flightplan.Waypoint, 0, len(wps))
	out = append(out, wps[0])
	for i := 1; i < len(wps)-1; i++ {
		if wps[i].Tag == flightplan.TagTransition {
			out = append(out, wps[i])
			continue
		}
		prev := out[len(out)-1]
		in := math.Sub2(wps[i].Pos.XY(), prev.Pos.XY())
		out2 := math.Sub2(wps[i+1].Pos.XY(), wps[i].Pos.XY())
		if math.Length2(in) == 0 || math.Length2(out2) == 0 {
			out = append(out, wps[i])
			continue
		}
		angle := math.AngleBetween2(in, out2)
		if angle >= threshold {
			out = append(out, wps[i])
		}
	}
	out = append(out, wps[len(wps)-1])
	return out
}
