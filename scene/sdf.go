package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	fmath "fractal-explorer/math"
)

// Menger Prison distance field constants. The fragment shader is generated
// from the same values.
const (
	BoxDimen      float32 = 20
	HitDist       float32 = 0.01
	MaxIterations         = 5

	halfBoxDimen = BoxDimen * 0.5
	crossScale   = 3
)

// MengerPrisonDistance is the signed distance from pos to the prison
// surface. Non-positive values are inside solid geometry.
func MengerPrisonDistance(pos mgl32.Vec3) float32 {
	half := mgl32.Vec3{halfBoxDimen, halfBoxDimen, halfBoxDimen}

	prisonRay := fmath.ModVec3(pos, BoxDimen*2).Sub(mgl32.Vec3{BoxDimen, BoxDimen, BoxDimen})
	dist := sdCross(prisonRay, half)
	if dist > HitDist {
		// the largest crosses bound everything finer
		return dist
	}

	scale := float32(1)
	for i := 0; i < MaxIterations; i++ {
		boxed := BoxDimen / scale
		shift := mgl32.Vec3{boxed * 0.5, boxed * 0.5, boxed * 0.5}
		ray := fmath.ModVec3(pos.Add(shift), boxed).Sub(shift).Mul(scale)
		crosses := sdCross(ray.Mul(crossScale), half)
		scale *= crossScale
		crosses /= scale
		dist = math32.Max(dist, -crosses)
	}
	return dist
}

// Collides reports whether pos is on or inside the prison.
func Collides(pos mgl32.Vec3) bool {
	return MengerPrisonDistance(pos) <= 0
}

func sdRect(pos, dimen mgl32.Vec2) float32 {
	toCorner := fmath.AbsVec2(pos).Sub(dimen)
	inside := math32.Min(math32.Max(toCorner.X(), toCorner.Y()), 0)
	return fmath.MaxVec2(toCorner, 0).Len() + inside
}

func sdCross(pos, dimen mgl32.Vec3) float32 {
	a := sdRect(pos.Vec2(), dimen.Vec2())
	b := sdRect(mgl32.Vec2{pos.X(), pos.Z()}, mgl32.Vec2{dimen.X(), dimen.Z()})
	c := sdRect(mgl32.Vec2{pos.Y(), pos.Z()}, mgl32.Vec2{dimen.Y(), dimen.Z()})
	return math32.Min(a, math32.Min(b, c))
}
