// pkg/math/vec3.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Vec3 is a point or vector in the local ENU (east, north, up) tangent
// frame that trajectory sampling, frame propagation, and mesh generation
// operate in.
type Vec3 [3]float64

func Add3(a, b Vec3) Vec3           { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func Sub3(a, b Vec3) Vec3           { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func Scale3(a Vec3, s float64) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }
func Lerp3(t float64, a, b Vec3) Vec3 {
	return Vec3{Lerp(t, a[0], b[0]), Lerp(t, a[1], b[1]), Lerp(t, a[2], b[2])}
}

func Dot3(a, b Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func Cross3(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Length3(a Vec3) float64 { return Sqrt(Dot3(a, a)) }

func Distance3(a, b Vec3) float64 { return Length3(Sub3(a, b)) }

func Normalize3(a Vec3) Vec3 {
	l := Length3(a)
	if l == 0 {
		return Vec3{0, 0, 0}
	}
	return Scale3(a, 1/l)
}

func (v Vec3) XY() Vec2 { return Vec2{v[0], v[1]} }
