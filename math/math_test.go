package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestClamp(t *testing.T) {
	if got := Clamp(5.0, 0, 2); got != 2 {
		t.Errorf("Clamp: expected 2, got %v", got)
	}
	if got := Clamp(-1, 0, 2); got != 0 {
		t.Errorf("Clamp: expected 0, got %v", got)
	}
	if got := Clamp(float32(1.5), 0, 2); got != 1.5 {
		t.Errorf("Clamp: expected 1.5, got %v", got)
	}
}

func TestModMatchesGLSL(t *testing.T) {
	tests := []struct {
		x, y, want float32
	}{
		{5, 40, 5},
		{45, 40, 5},
		{-5, 40, 35},
		{-45, 40, 35},
		{0, 40, 0},
	}
	for _, tt := range tests {
		got := Mod(tt.x, tt.y)
		if math.Abs(float64(got-tt.want)) > 1e-4 {
			t.Errorf("Mod(%v, %v): expected %v, got %v", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestWrapStaysInRange(t *testing.T) {
	for _, x := range []float32{-1e-9, -40, 40, 79.999, -0.0001, 1e6} {
		got := Wrap(x, 40)
		if got < 0 || got >= 40 {
			t.Errorf("Wrap(%v, 40): %v out of [0, 40)", x, got)
		}
	}
}

func TestRotation2DInverse(t *testing.T) {
	theta := 7.3
	r := Rotation2D(theta).Mul2(Rotation2D(-theta))
	id := mgl64.Ident2()
	for i := range r {
		if math.Abs(r[i]-id[i]) > 1e-12 {
			t.Fatalf("Rotation2D: expected identity, got %v", r)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
