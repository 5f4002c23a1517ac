// pkg/math/extent.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Extent2D represents a 2D axis-aligned bounding box with the two
// vertices at its opposite minimum and maximum corners.
type Extent2D struct {
	P0, P1 Vec2
}

// EmptyExtent2D returns an Extent2D representing an empty bounding box.
func EmptyExtent2D() Extent2D {
	return Extent2D{P0: Vec2{1e30, 1e30}, P1: Vec2{-1e30, -1e30}}
}

// Extent2DFromPoints returns an Extent2D that bounds all of the provided
// points.
func Extent2DFromPoints(pts []Vec2) Extent2D {
	e := EmptyExtent2D()
	for _, p := range pts {
		e = e.Union(p)
	}
	return e
}

func (e Extent2D) Width() float64  { return e.P1[0] - e.P0[0] }
func (e Extent2D) Height() float64 { return e.P1[1] - e.P0[1] }
func (e Extent2D) Center() Vec2    { return Vec2{(e.P0[0] + e.P1[0]) / 2, (e.P0[1] + e.P1[1]) / 2} }

// Expand expands the extent by the given distance in all directions,
// e.g. to inflate a bridge's planar footprint by a safety margin.
func (e Extent2D) Expand(d float64) Extent2D {
	return Extent2D{
		P0: Vec2{e.P0[0] - d, e.P0[1] - d},
		P1: Vec2{e.P1[0] + d, e.P1[1] + d},
	}
}

func (e Extent2D) Inside(p Vec2) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

func (e Extent2D) Union(p Vec2) Extent2D {
	e.P0[0] = Min(e.P0[0], p[0])
	e.P0[1] = Min(e.P0[1], p[1])
	e.P1[0] = Max(e.P1[0], p[0])
	e.P1[1] = Max(e.P1[1], p[1])
	return e
}

func (e Extent2D) UnionExtent(o Extent2D) Extent2D {
	return e.Union(o.P0).Union(o.P1)
}

// ClosestPointInBox returns the closest point to p that is inside the
// Extent2D (p itself, if it's already inside it).
func (e Extent2D) ClosestPointInBox(p Vec2) Vec2 {
	return Vec2{Clamp(p[0], e.P0[0], e.P1[0]), Clamp(p[1], e.P0[1], e.P1[1])}
}

// Extent1D represents a closed altitude band [Lo, Hi].
type Extent1D struct {
	Lo, Hi float64
}

func (e Extent1D) Inside(v float64) bool { return v >= e.Lo && v <= e.Hi }

func (e Extent1D) Expand(d float64) Extent1D { return Extent1D{e.Lo - d, e.Hi + d} }

func (e Extent1D) Overlaps(o Extent1D) bool { return e.Lo <= o.Hi && o.Lo <= e.Hi }
