// pkg/crs/crs.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package crs implements the coordinate-reference-system kernel: WGS84,
// a project-specific planar CRS, and a local ENU tangent frame centered
// on a bridge, with the round-trip invariants the rest of the pipeline
// relies on.
package crs

import (
	gomath "math"

	"github.com/ErToBar2/ORBIT-sub001/pkg/errs"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

// EarthRadius is the WGS84 equatorial radius in meters used by the local
// tangent-plane approximation. Matches the spec's fixed constant.
const EarthRadius = 6378137.0

// WGS84Point is a geodetic coordinate: longitude and latitude in
// degrees, altitude in meters above the WGS84 ellipsoid.
type WGS84Point struct {
	Lon, Lat, Alt float64
}

// ProjectPoint is a point expressed in a ProjectCRS's planar
// coordinates, plus altitude (identical convention to WGS84Point.Alt).
type ProjectPoint struct {
	X, Y, Z float64
}

// ProjectCRS converts between WGS84 and a project-specific planar
// coordinate system. The only implementation in this module is a local
// oblique planar approximation (see NewPlanarCRS); it stands in for
// "EPSG integer or custom" (§3) since no PROJ/EPSG database binding is
// available offline.
type ProjectCRS interface {
	// Id reports the CRS identifier (an EPSG code as a string, or
	// "custom").
	Id() string
	ToWGS84(p ProjectPoint) (WGS84Point, error)
	FromWGS84(p WGS84Point) (ProjectPoint, error)
}

// PlanarCRS is a project CRS that maps WGS84 to a local planar
// approximation anchored at an origin, holding a fixed scale (meters
// per degree of longitude/latitude at the origin latitude). It is
// appropriate for project extents on the order of a few kilometers, as
// documented in §4.1 — it is not a substitute for a real projected CRS
// over larger extents.
type PlanarCRS struct {
	id         string
	originLat  float64
	originLon  float64
	metersPerDegLat float64
	metersPerDegLon float64
}

// NewPlanarCRS builds a PlanarCRS anchored at the given WGS84 origin.
// id is carried through only as metadata (e.g. an EPSG code string);
// it does not change the projection math.
func NewPlanarCRS(id string, originLat, originLon float64) *PlanarCRS {
	return &PlanarCRS{
		id:              id,
		originLat:       originLat,
		originLon:       originLon,
		metersPerDegLat: (Pi / 180) * EarthRadius,
		metersPerDegLon: (Pi / 180) * EarthRadius * gomath.Cos(Radians(originLat)),
	}
}

func (c *PlanarCRS) Id() string { return c.id }

func (c *PlanarCRS) ToWGS84(p ProjectPoint) (WGS84Point, error) {
	if !finite3(p.X, p.Y, p.Z) {
		return WGS84Point{}, errs.New(errs.CoordinateError, "crs", "", "non-finite project coordinate")
	}
	lat := c.originLat + p.Y/c.metersPerDegLat
	lon := c.originLon + p.X/c.metersPerDegLon
	return WGS84Point{Lon: lon, Lat: lat, Alt: p.Z}, nil
}

func (c *PlanarCRS) FromWGS84(p WGS84Point) (ProjectPoint, error) {
	if !finite3(p.Lon, p.Lat, p.Alt) {
		return ProjectPoint{}, errs.New(errs.CoordinateError, "crs", "", "non-finite WGS84 coordinate")
	}
	x := (p.Lon - c.originLon) * c.metersPerDegLon
	y := (p.Lat - c.originLat) * c.metersPerDegLat
	return ProjectPoint{X: x, Y: y, Z: p.Alt}, nil
}

// Pi and Radians (and Sqrt below) re-export pkg/math's definitions for
// use in this package.
const Pi = math.Pi

func Radians(d float64) float64 { return math.Radians(d) }

func finite3(a, b, c float64) bool {
	return !gomath.IsNaN(a) && !gomath.IsInf(a, 0) &&
		!gomath.IsNaN(b) && !gomath.IsInf(b, 0) &&
		!gomath.IsNaN(c) && !gomath.IsInf(c, 0)
}

// OutOfExtentGuard is the safety-guard distance (§4.1): a point
// deviating more than this from the local frame center is rejected
// with errs.CoordinateError.
const OutOfExtentGuard = 50_000.0 // meters

// LocalFrame is the ENU tangent-plane frame centered on the bridge
// (§3): x = R*(Δlon)*cos(center_lat), y = R*Δlat, z = altitude.
type LocalFrame struct {
	CenterLat, CenterLon float64
	cosLat               float64
}

// BuildLocalFrame constructs a LocalFrame centered at the given WGS84
// point, precomputing cos(center_lat) as the spec requires.
func BuildLocalFrame(centerLat, centerLon float64) LocalFrame {
	return LocalFrame{CenterLat: centerLat, CenterLon: centerLon, cosLat: gomath.Cos(Radians(centerLat))}
}

// ToLocal converts a WGS84 point to the local ENU frame.
func (f LocalFrame) ToLocal(p WGS84Point) (math.Vec3, error) {
	if !finite3(p.Lon, p.Lat, p.Alt) {
		return math.Vec3{}, errs.New(errs.CoordinateError, "crs", "", "non-finite WGS84 coordinate")
	}
	x := Radians(p.Lon-f.CenterLon) * EarthRadius * f.cosLat
	y := Radians(p.Lat-f.CenterLat) * EarthRadius
	if Sqrt(x*x+y*y) > OutOfExtentGuard {
		return math.Vec3{}, errs.New(errs.CoordinateError, "crs", "", "point deviates more than 50km from local frame center")
	}
	return math.Vec3{x, y, p.Alt}, nil
}

// FromLocal converts a point in the local ENU frame back to WGS84.
func (f LocalFrame) FromLocal(v math.Vec3) (WGS84Point, error) {
	if !finite3(v[0], v[1], v[2]) {
		return WGS84Point{}, errs.New(errs.CoordinateError, "crs", "", "non-finite local coordinate")
	}
	lat := f.CenterLat + math.Degrees(v[1]/EarthRadius)
	lon := f.CenterLon + math.Degrees(v[0]/(EarthRadius*f.cosLat))
	return WGS84Point{Lon: lon, Lat: lat, Alt: v[2]}, nil
}

func Sqrt(v float64) float64 { return math.Sqrt(v) }
