// Package sensor supplies the camera orientation for the raymarched scene.
package sensor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Orientation is the display orientation a scene was started in.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation accepts "portrait" or "landscape".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	}
	return Portrait, fmt.Errorf("sensor: unknown orientation %q", s)
}

// RotationSource reports the device rotation relative to where it was when
// last initialized or reset.
type RotationSource interface {
	// Init starts delivering rotations.
	Init()
	// Reset makes the current physical orientation the new identity.
	Reset()
	// RotationMatrix returns the current rotation remapped for o.
	RotationMatrix(o Orientation) mgl32.Mat3
}

// landscapeRemap swaps the device x and y axes, matching a device turned a
// quarter turn counter-clockwise.
var landscapeRemap = mgl32.Rotate3DZ(-mgl32.DegToRad(90))

// Remap adjusts a portrait-frame rotation for o.
func Remap(m mgl32.Mat3, o Orientation) mgl32.Mat3 {
	if o == Landscape {
		return m.Mul3(landscapeRemap)
	}
	return m
}
