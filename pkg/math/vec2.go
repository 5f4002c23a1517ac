// pkg/math/vec2.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

// Vec2 is a point or vector in an arbitrary 2D plane: a projected CRS
// plane, a local ENU tangent plane, or a cross-section's (across, up)
// frame, depending on context.
type Vec2 [2]float64

func Add2(a, b Vec2) Vec2   { return Vec2{a[0] + b[0], a[1] + b[1]} }
func Sub2(a, b Vec2) Vec2   { return Vec2{a[0] - b[0], a[1] - b[1]} }
func Scale2(a Vec2, s float64) Vec2 { return Vec2{a[0] * s, a[1] * s} }
func Mid2(a, b Vec2) Vec2   { return Scale2(Add2(a, b), 0.5) }
func Lerp2(t float64, a, b Vec2) Vec2 { return Vec2{Lerp(t, a[0], b[0]), Lerp(t, a[1], b[1])} }

func Dot2(a, b Vec2) float64 { return a[0]*b[0] + a[1]*b[1] }

func Length2(a Vec2) float64 { return Sqrt(Dot2(a, a)) }

func Distance2(a, b Vec2) float64 { return Length2(Sub2(a, b)) }

func Normalize2(a Vec2) Vec2 {
	l := Length2(a)
	if l == 0 {
		return Vec2{0, 0}
	}
	return Scale2(a, 1/l)
}

// Rotate2 rotates v counter-clockwise by the given angle in radians.
func Rotate2(v Vec2, angle float64) Vec2 {
	s, c := gomath.Sincos(angle)
	return Vec2{v[0]*c - v[1]*s, v[0]*s + v[1]*c}
}

// Perp2 returns the vector rotated 90 degrees counter-clockwise.
func Perp2(v Vec2) Vec2 { return Vec2{-v[1], v[0]} }

// Cross2 returns the z-component of the 3D cross product of the two
// vectors extended into the xy-plane; its sign gives the turn direction
// from a to b.
func Cross2(a, b Vec2) float64 { return a[0]*b[1] - a[1]*b[0] }

// AngleBetween2 returns the unsigned angle in radians between a and b.
func AngleBetween2(a, b Vec2) float64 {
	na, nb := Normalize2(a), Normalize2(b)
	d := Clamp(Dot2(na, nb), -1, 1)
	return gomath.Acos(d)
}
