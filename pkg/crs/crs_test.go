// pkg/crs/crs_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package crs

import (
	"testing"
)

func TestPlanarCRSRoundTrip(t *testing.T) {
	c := NewPlanarCRS("custom", 50.85, 4.35)
	pts := []ProjectPoint{
		{X: 0, Y: 0, Z: 10},
		{X: 123.4, Y: -88.2, Z: 42.1},
		{X: -900, Y: 1500, Z: 0},
	}
	for _, p := range pts {
		g, err := c.ToWGS84(p)
		if err != nil {
			t.Fatalf("ToWGS84(%v): %v", p, err)
		}
		back, err := c.FromWGS84(g)
		if err != nil {
			t.Fatalf("FromWGS84(%v): %v", g, err)
		}
		dx, dy := back.X-p.X, back.Y-p.Y
		if d := (dx*dx + dy*dy); d > 1e-6 {
			t.Errorf("round trip planar error too large for %v: got %v (dx=%v dy=%v)", p, d, dx, dy)
		}
		if back.Z != p.Z {
			t.Errorf("round trip altitude changed: %v -> %v", p.Z, back.Z)
		}
	}
}

func TestLocalFrameRoundTripWithin5km(t *testing.T) {
	f := BuildLocalFrame(50.85, 4.35)
	wgs := WGS84Point{Lon: 4.37, Lat: 50.87, Alt: 30}

	local, err := f.ToLocal(wgs)
	if err != nil {
		t.Fatalf("ToLocal: %v", err)
	}
	back, err := f.FromLocal(local)
	if err != nil {
		t.Fatalf("FromLocal: %v", err)
	}
	dLon, dLat := back.Lon-wgs.Lon, back.Lat-wgs.Lat
	// 10cm in degrees is roughly 1e-6 deg at these latitudes.
	if dLon*dLon+dLat*dLat > 1e-12 {
		t.Errorf("round trip degraded beyond 10cm: dLon=%v dLat=%v", dLon, dLat)
	}
}

func TestLocalFrameOutOfExtentGuard(t *testing.T) {
	f := BuildLocalFrame(50.85, 4.35)
	_, err := f.ToLocal(WGS84Point{Lon: 10.0, Lat: 55.0, Alt: 0})
	if err == nil {
		t.Fatalf("expected CoordinateError for a point > 50km away")
	}
}
