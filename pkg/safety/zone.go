// pkg/safety/zone.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package safety implements the 3-D prismatic no-fly zone model (C4):
// per-zone [z_min, z_max], segment-vs-prism tests, and route
// validation with a resolve(policy) hook. The membership test mirrors
// mmp-vice's AirspaceVolume.Inside/Below floor-ceiling-plus-polygon
// idiom, generalized to a simple polygon rather than a fixed shape
// enum.
package safety

import (
	"github.com/ErToBar2/ORBIT-sub001/pkg/errs"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

// Zone is a 2-D polygon extruded into a vertical prism between ZMin
// and ZMax (§3). Polygon is stored as given: NewZone checks only the
// vertex count and the z order, and does not test or repair
// self-intersection. Boundary is the grazing threshold δ (§4.4) passed
// to NewZone; zero disables it.
type Zone struct {
	ID       string
	Polygon  []math.Vec2
	ZMin     float64
	ZMax     float64
	Boundary float64
}

// NewZone validates and constructs a Zone (§8 boundary behavior: z_min
// > z_max is InputInvalid).
func NewZone(id string, polygon []math.Vec2, zMin, zMax, boundary float64) (*Zone, error) {
	if len(polygon) < 3 {
		return nil, errs.New(errs.InputInvalid, "safety", id, "zone polygon must have at least 3 vertices")
	}
	if zMin > zMax {
		return nil, errs.New(errs.InputInvalid, "safety", id, "zone z_min must not exceed z_max")
	}
	return &Zone{ID: id, Polygon: polygon, ZMin: zMin, ZMax: zMax, Boundary: boundary}, nil
}

// Inside reports whether the 3-D point p lies inside the prism: its
// 2-D projection is inside the polygon (respecting the boundary
// grazing threshold) and z_min <= z <= z_max (§4.2/§4.4).
func (z *Zone) Inside(p math.Vec3) bool {
	if p[2] < z.ZMin || p[2] > z.ZMax {
		return false
	}
	xy := p.XY()
	if !math.PointInPolygon(xy, z.Polygon) {
		return false
	}
	if z.Boundary > 0 && z.minEdgeDistance(xy) <= z.Boundary {
		return false
	}
	return true
}

func (z *Zone) minEdgeDistance(p math.Vec2) float64 {
	best := -1.0
	n := len(z.Polygon)
	for i := 0; i < n; i++ {
		d := math.PointSegmentDistance(p, z.Polygon[i], z.Polygon[(i+1)%n])
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
