package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	fmath "fractal-explorer/math"
)

// View limits for the 2D explorer.
const (
	MinZoom  = 0.25
	MaxZoom  = 130000.0
	BaseZoom = MinZoom

	// MaxCenterOffset bounds each component of the centre offset.
	MaxCenterOffset = 2.0
)

// ViewTransform2D maps screen pixels onto the complex plane. The rotation
// matrix is always rebuilt from the stored angle so it never drifts away
// from a pure rotation.
type ViewTransform2D struct {
	zoom          float64
	centerOffset  mgl64.Vec2
	angle         float64
	rotation      mgl64.Mat2
	pixelsPerUnit float64
}

// NewViewTransform2D returns the initial, unrotated view.
func NewViewTransform2D() ViewTransform2D {
	return ViewTransform2D{
		zoom:     BaseZoom,
		rotation: mgl64.Ident2(),
	}
}

// View is an immutable copy of a ViewTransform2D taken for one frame.
type View struct {
	Zoom         float64
	CenterOffset mgl64.Vec2
	Angle        float64
	Rotation     mgl64.Mat2
}

// Snapshot copies the current view.
func (t *ViewTransform2D) Snapshot() View {
	return View{
		Zoom:         t.zoom,
		CenterOffset: t.centerOffset,
		Angle:        t.angle,
		Rotation:     t.rotation,
	}
}

// ScaleZoom multiplies the zoom by factor, clamped to [MinZoom, MaxZoom].
func (t *ViewTransform2D) ScaleZoom(factor float64) {
	t.zoom = fmath.Clamp(t.zoom*factor, MinZoom, MaxZoom)
}

// Pan moves the view by a screen space delta in pixels.
//
// Screen y grows downward, so dy is negated. The delta is subtracted from the
// centre offset since the offset locates the fractal, not the camera:
// dragging right moves the fractal right.
func (t *ViewTransform2D) Pan(dx, dy float64) {
	if t.pixelsPerUnit <= 0 {
		return
	}
	scale := t.zoom * t.pixelsPerUnit
	d := mgl64.Vec2{dx / scale, -dy / scale}
	d = t.rotation.Mul2x1(d)
	t.centerOffset = fmath.ClampVec2(t.centerOffset.Sub(d), -MaxCenterOffset, MaxCenterOffset)
}

// Rotate sets the absolute view rotation in radians.
func (t *ViewTransform2D) Rotate(angle float64) {
	t.angle = angle
	t.rotation = fmath.Rotation2D(angle)
}

// SetPixelsPerUnit sizes one complex plane unit to the surface's shorter side.
func (t *ViewTransform2D) SetPixelsPerUnit(width, height int) {
	t.pixelsPerUnit = float64(min(width, height))
}

// Zoom is the current magnification.
func (t *ViewTransform2D) Zoom() float64 { return t.zoom }

// CenterOffset is the view centre in complex plane units.
func (t *ViewTransform2D) CenterOffset() mgl64.Vec2 { return t.centerOffset }
