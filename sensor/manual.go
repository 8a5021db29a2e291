package sensor

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch keeps the manual camera short of looking straight up or down.
const MaxPitch = 1.5

// Manual is a RotationSource steered by keyboard or other explicit input.
// It is safe for concurrent use.
type Manual struct {
	mu         sync.Mutex
	running    bool
	yaw, pitch float32
}

// NewManual returns a stopped source facing straight ahead.
func NewManual() *Manual { return &Manual{} }

func (m *Manual) Init() {
	m.mu.Lock()
	m.running = true
	m.mu.Unlock()
}

func (m *Manual) Reset() {
	m.mu.Lock()
	m.yaw, m.pitch = 0, 0
	m.mu.Unlock()
}

// Turn adds yaw and pitch in radians. It has no effect before Init.
func (m *Manual) Turn(dyaw, dpitch float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.yaw += dyaw
	m.pitch = mgl32.Clamp(m.pitch+dpitch, -MaxPitch, MaxPitch)
}

// Angles returns the current yaw and pitch.
func (m *Manual) Angles() (yaw, pitch float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.yaw, m.pitch
}

func (m *Manual) RotationMatrix(o Orientation) mgl32.Mat3 {
	yaw, pitch := m.Angles()
	r := mgl32.Rotate3DY(yaw).Mul3(mgl32.Rotate3DX(pitch))
	return Remap(r, o)
}
