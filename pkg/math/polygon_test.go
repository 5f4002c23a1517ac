// pkg/math/polygon_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "testing"

func TestPointInPolygonSquare(t *testing.T) {
	square := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	tests := []struct {
		p    Vec2
		want bool
	}{
		{Vec2{5, 5}, true},
		{Vec2{-1, 5}, false},
		{Vec2{15, 5}, false},
		{Vec2{5, -1}, false},
	}
	for _, tc := range tests {
		if got := PointInPolygon(tc.p, square); got != tc.want {
			t.Errorf("PointInPolygon(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestPolygonAreaSignConvention(t *testing.T) {
	ccw := []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	cw := []Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	if a := PolygonArea(ccw); a <= 0 {
		t.Errorf("expected positive area for CCW polygon, got %v", a)
	}
	if a := PolygonArea(cw); a >= 0 {
		t.Errorf("expected negative area for CW polygon, got %v", a)
	}
}

func TestPointSegmentDistance(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{10, 0}
	if d := PointSegmentDistance(Vec2{5, 3}, a, b); Abs(d-3) > 1e-9 {
		t.Errorf("expected distance 3, got %v", d)
	}
	if d := PointSegmentDistance(Vec2{-5, 0}, a, b); Abs(d-5) > 1e-9 {
		t.Errorf("expected distance 5 (clamped to endpoint), got %v", d)
	}
}
