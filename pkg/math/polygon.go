// pkg/math/polygon.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"sort"
)

// PointInPolygon checks whether the given point is inside the given
// polygon; it assumes that the last vertex does not repeat the first
// one, and so includes the edge from pts[len(pts)-1] to pts[0] in its
// test. Used for the planar footprint test of a safety zone ring.
func PointInPolygon(p Vec2, pts []Vec2) bool {
	inside := false
	for i := 0; i < len(pts); i++ {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		if (p0[1] <= p[1] && p[1] < p1[1]) || (p1[1] <= p[1] && p[1] < p0[1]) {
			x := p0[0] + (p[1]-p0[1])*(p1[0]-p0[0])/(p1[1]-p0[1])
			if x > p[0] {
				inside = !inside
			}
		}
	}
	return inside
}

// SignedPointLineDistance returns the signed distance from the point p
// to the infinite line defined by (p0, p1); points to the right of the
// line (looking from p0 toward p1) have positive distances.
func SignedPointLineDistance(p, p0, p1 Vec2) float64 {
	dx, dy := p1[0]-p0[0], p1[1]-p0[1]
	sq := dx*dx + dy*dy
	if sq == 0 {
		return gomath.Inf(1)
	}
	return (dx*(p0[1]-p[1]) - dy*(p0[0]-p[0])) / Sqrt(sq)
}

func PointLineDistance(p, p0, p1 Vec2) float64 {
	return Abs(SignedPointLineDistance(p, p0, p1))
}

// PointSegmentDistance returns the minimum distance between the point p
// and the line segment (v, w).
func PointSegmentDistance(p, v, w Vec2) float64 {
	l := Sub2(v, w)
	l2 := Dot2(l, l)
	if l2 == 0 {
		return Length2(Sub2(p, v))
	}
	t := Clamp(Dot2(Sub2(p, v), Sub2(w, v))/l2, 0, 1)
	proj := Add2(v, Scale2(Sub2(w, v), t))
	return Distance2(p, proj)
}

// LineLineIntersect returns the intersection point of the two infinite
// lines through (p1, p2) and (p3, p4), and a Boolean indicating whether
// a valid intersection was found (false for parallel or near-parallel
// lines).
func LineLineIntersect(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	d12 := Sub2(p1, p2)
	d34 := Sub2(p3, p4)
	denom := d12[0]*d34[1] - d12[1]*d34[0]
	if Abs(denom) < 1e-9 {
		return Vec2{}, false
	}
	numx := (p1[0]*p2[1]-p1[1]*p2[0])*(p3[0]-p4[0]) - (p1[0]-p2[0])*(p3[0]*p4[1]-p3[1]*p4[0])
	numy := (p1[0]*p2[1]-p1[1]*p2[0])*(p3[1]-p4[1]) - (p1[1]-p2[1])*(p3[0]*p4[1]-p3[1]*p4[0])
	return Vec2{numx / denom, numy / denom}, true
}

// SegmentSegmentIntersect returns the intersection point of the two
// line segments (p1, p2) and (p3, p4), and whether the intersection
// falls within both segments.
func SegmentSegmentIntersect(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	p, ok := LineLineIntersect(p1, p2, p3, p4)
	if !ok {
		return Vec2{}, false
	}
	b0 := Extent2DFromPoints([]Vec2{p1, p2})
	b1 := Extent2DFromPoints([]Vec2{p3, p4})
	return p, b0.Inside(p) && b1.Inside(p)
}

// ConvexHull computes the convex hull of the given points via the
// monotone chain algorithm.
// https://en.wikibooks.org/wiki/Algorithm_Implementation/Geometry/Convex_hull/Monotone_chain
func ConvexHull(points []Vec2) []Vec2 {
	n := len(points)
	if n <= 1 {
		return append([]Vec2{}, points...)
	}

	pts := append([]Vec2{}, points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] == pts[j][0] {
			return pts[i][1] < pts[j][1]
		}
		return pts[i][0] < pts[j][0]
	})

	cross := func(o, a, b Vec2) float64 { return Cross2(Sub2(a, o), Sub2(b, o)) }

	lower := make([]Vec2, 0, n)
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]Vec2, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// PolygonArea returns the signed area of a simple polygon via the
// shoelace formula; positive for counter-clockwise vertex order.
func PolygonArea(pts []Vec2) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return a / 2
}

// CirclePoints returns the vertices of a unit circle at the origin
// tessellated into nsegs segments.
func CirclePoints(nsegs int) []Vec2 {
	pts := make([]Vec2, nsegs)
	for d := 0; d < nsegs; d++ {
		angle := Radians(float64(d) / float64(nsegs) * 360)
		s, c := gomath.Sincos(angle)
		pts[d] = Vec2{s, c}
	}
	return pts
}
