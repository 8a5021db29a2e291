package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	fmath "fractal-explorer/math"
)

// Camera motion through the repeating prison.
const (
	// ContainerDimen is the period of the prison; positions wrap into
	// [0, ContainerDimen) so they never grow without bound.
	ContainerDimen float32 = 40

	CameraSpeedNormal float32 = 0.5
	CameraSpeedFast   float32 = 1.5
)

// DefaultCameraForward is the view direction before any rotation.
var DefaultCameraForward = mgl32.Vec3{0, 0, 1}

// CameraState3D is the flying camera of the Menger Prison. Times are in
// deciseconds since the scene (re)started.
type CameraState3D struct {
	Position      mgl32.Vec3
	Forward       mgl32.Vec3
	ElapsedTime   float64
	LastFrameTime float64
}

// NewCameraState3D returns a camera at the origin facing DefaultCameraForward.
func NewCameraState3D() CameraState3D {
	return CameraState3D{Forward: DefaultCameraForward}
}

// Tick records the elapsed time for a new frame and returns the time since
// the previous one.
func (c *CameraState3D) Tick(elapsed float64) float64 {
	c.ElapsedTime = elapsed
	dt := elapsed - c.LastFrameTime
	c.LastFrameTime = elapsed
	return dt
}

// Orient points the camera along rotation applied to DefaultCameraForward.
func (c *CameraState3D) Orient(rotation mgl32.Mat3) {
	c.Forward = rotation.Mul3x1(DefaultCameraForward)
}

// Advance moves the camera forward and wraps the position into the container.
func (c *CameraState3D) Advance(dt float64, speed float32) {
	c.Position = c.Position.Add(c.Forward.Mul(speed * float32(dt)))
	c.Position = fmath.WrapVec3(c.Position, ContainerDimen)
}

// Reset returns the camera to the origin with the default heading and zero
// times.
func (c *CameraState3D) Reset() {
	*c = NewCameraState3D()
}
