// Package math holds the small set of GLSL-flavoured scalar and vector helpers
// shared by the host-side transforms and the shader parity code.
package math

import (
	gomath "math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Number is any scalar Clamp accepts.
type Number interface {
	~int | ~int32 | ~float32 | ~float64
}

// Clamp limits v to [lo, hi].
func Clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampVec2 clamps each component of v to [lo, hi].
func ClampVec2(v mgl64.Vec2, lo, hi float64) mgl64.Vec2 {
	return mgl64.Vec2{Clamp(v[0], lo, hi), Clamp(v[1], lo, hi)}
}

// Mod is GLSL mod(): x - y*floor(x/y). Unlike math.Mod the result takes the
// sign of y, so positions fold into [0, y) for positive y.
func Mod(x, y float32) float32 {
	return x - y*math32.Floor(x/y)
}

// ModVec3 applies Mod componentwise.
func ModVec3(v mgl32.Vec3, y float32) mgl32.Vec3 {
	return mgl32.Vec3{Mod(v[0], y), Mod(v[1], y), Mod(v[2], y)}
}

// Wrap folds x into [0, y). Float rounding can make Mod return exactly y for
// tiny negative inputs; that case maps to 0.
func Wrap(x, y float32) float32 {
	r := Mod(x, y)
	if r >= y || r < 0 {
		return 0
	}
	return r
}

// WrapVec3 applies Wrap componentwise.
func WrapVec3(v mgl32.Vec3, y float32) mgl32.Vec3 {
	return mgl32.Vec3{Wrap(v[0], y), Wrap(v[1], y), Wrap(v[2], y)}
}

// AbsVec2 is GLSL abs() on a vec2.
func AbsVec2(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{math32.Abs(v[0]), math32.Abs(v[1])}
}

// MaxVec2 is GLSL max(vec2, float).
func MaxVec2(v mgl32.Vec2, s float32) mgl32.Vec2 {
	return mgl32.Vec2{math32.Max(v[0], s), math32.Max(v[1], s)}
}

// Rotation2D builds a counter-clockwise rotation matrix from an angle in radians.
// Callers always rebuild from an absolute angle rather than multiplying
// incremental rotations, so the matrix stays orthonormal.
func Rotation2D(angle float64) mgl64.Mat2 {
	return mgl64.Rotate2D(angle)
}

// NormalizeAngle maps a to (-π, π].
func NormalizeAngle(a float64) float64 {
	for a > gomath.Pi {
		a -= 2 * gomath.Pi
	}
	for a <= -gomath.Pi {
		a += 2 * gomath.Pi
	}
	return a
}

// Mat2To32 narrows a double precision matrix for upload as a uniform.
func Mat2To32(m mgl64.Mat2) mgl32.Mat2 {
	return mgl32.Mat2{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3])}
}
