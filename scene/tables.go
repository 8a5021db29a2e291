package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	fmath "fractal-explorer/math"
	"fractal-explorer/renderer"
)

// ResolutionFactors are the offscreen render scales offered for the prison.
var ResolutionFactors = [...]float32{1.0 / 32, 1.0 / 16, 1.0 / 8, 1.0 / 4, 1.0 / 2, 1}

// DefaultResolutionIndex selects quarter resolution.
const DefaultResolutionIndex = 3

// ResolutionTable holds the offscreen size for each resolution factor.
type ResolutionTable [len(ResolutionFactors)]renderer.Size

// NewResolutionTable scales a surface by every factor. No entry is smaller
// than 1x1.
func NewResolutionTable(width, height int) ResolutionTable {
	var t ResolutionTable
	for i, f := range ResolutionFactors {
		t[i] = renderer.Size{
			Width:  max(1, int(float32(width)*f)),
			Height: max(1, int(float32(height)*f)),
		}
	}
	return t
}

// ClampResolutionIndex limits i to a valid ResolutionTable index.
func ClampResolutionIndex(i int) int {
	return fmath.Clamp(i, 0, len(ResolutionFactors)-1)
}

// AccentColor tints the Mandelbrot bands.
type AccentColor struct {
	Name string
	RGB  mgl32.Vec3
}

// AccentColors are the selectable tints.
var AccentColors = []AccentColor{
	{Name: "red", RGB: mgl32.Vec3{1, 0, 0}},
	{Name: "green", RGB: mgl32.Vec3{0, 1, 0}},
	{Name: "blue", RGB: mgl32.Vec3{0, 0, 1}},
}

const DefaultAccentColorIndex = 0

// ClampAccentColorIndex limits i to a valid AccentColors index.
func ClampAccentColorIndex(i int) int {
	return fmath.Clamp(i, 0, len(AccentColors)-1)
}
