package sensor

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var forward = mgl32.Vec3{0, 0, 1}

func near(a, b mgl32.Vec3) bool {
	for i := range a {
		if d := a[i] - b[i]; d > 1e-5 || d < -1e-5 {
			return false
		}
	}
	return true
}

func TestManualIgnoresTurnBeforeInit(t *testing.T) {
	m := NewManual()
	m.Turn(1, 1)
	if yaw, pitch := m.Angles(); yaw != 0 || pitch != 0 {
		t.Errorf("Angles: expected 0,0 before Init, got %v,%v", yaw, pitch)
	}
	if m.RotationMatrix(Portrait) != mgl32.Ident3() {
		t.Error("RotationMatrix: expected identity before Init")
	}
}

func TestManualYawTurnsForward(t *testing.T) {
	m := NewManual()
	m.Init()
	m.Turn(mgl32.DegToRad(90), 0)

	got := m.RotationMatrix(Portrait).Mul3x1(forward)
	want := mgl32.Vec3{1, 0, 0}
	if !near(got, want) {
		t.Errorf("forward after yaw: expected %v, got %v", want, got)
	}

	m.Reset()
	got = m.RotationMatrix(Portrait).Mul3x1(forward)
	if !near(got, forward) {
		t.Errorf("forward after Reset: expected %v, got %v", forward, got)
	}
}

func TestManualPitchClamped(t *testing.T) {
	m := NewManual()
	m.Init()
	m.Turn(0, 10)
	if _, pitch := m.Angles(); pitch != MaxPitch {
		t.Errorf("pitch: expected %v, got %v", MaxPitch, pitch)
	}
	m.Turn(0, -20)
	if _, pitch := m.Angles(); pitch != -MaxPitch {
		t.Errorf("pitch: expected %v, got %v", -MaxPitch, pitch)
	}
}

func TestLandscapeRemapKeepsForward(t *testing.T) {
	// a quarter turn about the viewing axis leaves the viewing axis alone
	got := Remap(mgl32.Ident3(), Landscape).Mul3x1(forward)
	if !near(got, forward) {
		t.Errorf("forward: expected %v, got %v", forward, got)
	}
	x := Remap(mgl32.Ident3(), Landscape).Mul3x1(mgl32.Vec3{1, 0, 0})
	if !near(x, mgl32.Vec3{0, -1, 0}) {
		t.Errorf("x axis: expected [0 -1 0], got %v", x)
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"portrait", Portrait, false},
		{"landscape", Landscape, false},
		{"upside-down", Portrait, true},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseOrientation(%q): expected %v (err %v), got %v (err %v)", tt.in, tt.want, tt.wantErr, got, err)
		}
	}
}

func TestManualConcurrentTurns(t *testing.T) {
	m := NewManual()
	m.Init()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Turn(0.001, 0)
				_ = m.RotationMatrix(Landscape)
			}
		}()
	}
	wg.Wait()
	if yaw, _ := m.Angles(); yaw < 0.79 || yaw > 0.81 {
		t.Errorf("yaw: expected about 0.8, got %v", yaw)
	}
}
