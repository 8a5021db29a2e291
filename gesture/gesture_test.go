package gesture

import (
	gomath "math"
	"testing"
	"time"

	"fractal-explorer/input"
)

type recorder struct {
	height  float64
	zooms   []float64
	pans    [][2]float64
	angles  []float64
	dirties int
}

func (r *recorder) ScaleZoom(f float64)    { r.zooms = append(r.zooms, f) }
func (r *recorder) Pan(dx, dy float64)     { r.pans = append(r.pans, [2]float64{dx, dy}) }
func (r *recorder) Rotate(a float64)       { r.angles = append(r.angles, a) }
func (r *recorder) MarkDirty()             { r.dirties++ }
func (r *recorder) SurfaceHeight() float64 { return r.height }

func ev(action input.Action, ms int, index int, pts ...input.Pointer) input.Event {
	return input.Event{Action: action, Pointers: pts, ActionIndex: index, Time: time.Duration(ms) * time.Millisecond}
}

func pt(id int, x, y float64) input.Pointer { return input.Pointer{ID: id, X: x, Y: y} }

func near(a, b float64) bool { return gomath.Abs(a-b) < 1e-9 }

func TestSingleDragPans(t *testing.T) {
	rec := &recorder{height: 1000}
	r := NewRouter(rec)

	r.OnTouchEvent(ev(input.ActionDown, 0, 0, pt(0, 100, 100)))
	r.OnTouchEvent(ev(input.ActionMove, 10, 0, pt(0, 110, 120)))
	r.OnTouchEvent(ev(input.ActionMove, 20, 0, pt(0, 105, 120)))
	r.OnTouchEvent(ev(input.ActionUp, 30, 0, pt(0, 105, 120)))

	want := [][2]float64{{10, 20}, {-5, 0}}
	if len(rec.pans) != len(want) {
		t.Fatalf("pans: expected %v, got %v", want, rec.pans)
	}
	for i := range want {
		if rec.pans[i] != want[i] {
			t.Errorf("pan %d: expected %v, got %v", i, want[i], rec.pans[i])
		}
	}
	if rec.dirties != 4 {
		t.Errorf("MarkDirty: expected 4 calls, got %d", rec.dirties)
	}
	if len(rec.zooms) != 0 {
		t.Errorf("zooms: expected none, got %v", rec.zooms)
	}
}

func TestPinchZoomsAboutFocus(t *testing.T) {
	rec := &recorder{height: 1000}
	r := NewRouter(rec)

	r.OnTouchEvent(ev(input.ActionDown, 0, 0, pt(0, 100, 100)))
	r.OnTouchEvent(ev(input.ActionPointerDown, 5, 1, pt(0, 100, 100), pt(1, 200, 100)))
	r.OnTouchEvent(ev(input.ActionMove, 10, 0, pt(0, 50, 100), pt(1, 250, 100)))

	if len(rec.zooms) != 1 || !near(rec.zooms[0], 2) {
		t.Fatalf("zooms: expected [2], got %v", rec.zooms)
	}
	if len(rec.pans) != 1 || rec.pans[0] != [2]float64{0, 0} {
		t.Errorf("pans: expected [[0 0]], got %v", rec.pans)
	}

	// moving both fingers together pans by the focus delta
	r.OnTouchEvent(ev(input.ActionMove, 20, 0, pt(0, 60, 130), pt(1, 260, 130)))
	last := rec.pans[len(rec.pans)-1]
	if !near(last[0], 10) || !near(last[1], 30) {
		t.Errorf("focus pan: expected [10 30], got %v", last)
	}
}

func TestPostPinchMoveIsFlushed(t *testing.T) {
	rec := &recorder{height: 1000}
	r := NewRouter(rec)

	r.OnTouchEvent(ev(input.ActionDown, 0, 0, pt(0, 100, 100)))
	r.OnTouchEvent(ev(input.ActionPointerDown, 5, 1, pt(0, 100, 100), pt(1, 300, 300)))
	r.OnTouchEvent(ev(input.ActionMove, 10, 0, pt(0, 90, 90), pt(1, 310, 310)))
	r.OnTouchEvent(ev(input.ActionPointerUp, 20, 0, pt(0, 90, 90), pt(1, 310, 310)))

	if !r.FlushPending() {
		t.Fatal("FlushPending: expected true after the pinch ended")
	}
	pans := len(rec.pans)

	// the remaining pointer now reports from a different place
	r.OnTouchEvent(ev(input.ActionMove, 30, 0, pt(1, 312, 311)))
	if len(rec.pans) != pans {
		t.Fatalf("first move after pinch: expected no pan, got %v", rec.pans[pans:])
	}
	if r.FlushPending() {
		t.Error("FlushPending: expected false after the discarded move")
	}

	r.OnTouchEvent(ev(input.ActionMove, 40, 0, pt(1, 322, 316)))
	if len(rec.pans) != pans+1 || rec.pans[pans] != [2]float64{10, 5} {
		t.Errorf("second move after pinch: expected pan [10 5], got %v", rec.pans[pans:])
	}
}

func TestPinchLiftedTogetherDoesNotEatNextDrag(t *testing.T) {
	rec := &recorder{height: 1000}
	r := NewRouter(rec)

	r.OnTouchEvent(ev(input.ActionDown, 0, 0, pt(0, 100, 100)))
	r.OnTouchEvent(ev(input.ActionPointerDown, 5, 1, pt(0, 100, 100), pt(1, 300, 300)))
	r.OnTouchEvent(ev(input.ActionMove, 10, 0, pt(0, 90, 90), pt(1, 310, 310)))
	r.OnTouchEvent(ev(input.ActionPointerUp, 20, 1, pt(0, 90, 90), pt(1, 310, 310)))
	r.OnTouchEvent(ev(input.ActionUp, 25, 0, pt(0, 90, 90)))
	if r.FlushPending() {
		t.Fatal("FlushPending: expected false once the sequence ended")
	}
	rotation := r.Rotation()
	pans := len(rec.pans)

	r.OnTouchEvent(ev(input.ActionDown, 1000, 0, pt(0, 500, 500)))
	r.OnTouchEvent(ev(input.ActionMove, 1010, 0, pt(0, 540, 500)))
	if len(rec.pans) != pans+1 || rec.pans[pans] != [2]float64{40, 0} {
		t.Errorf("first drag of new sequence: expected pan [40 0], got %v", rec.pans[pans:])
	}
	if r.Rotation() != rotation {
		t.Errorf("Rotation: expected %v to carry over, got %v", rotation, r.Rotation())
	}
}

func TestDoubleTapDragZooms(t *testing.T) {
	rec := &recorder{height: 1000}
	r := NewRouter(rec)

	r.OnTouchEvent(ev(input.ActionDown, 0, 0, pt(0, 500, 500)))
	r.OnTouchEvent(ev(input.ActionUp, 60, 0, pt(0, 500, 500)))
	r.OnTouchEvent(ev(input.ActionDown, 150, 0, pt(0, 505, 502)))
	if !r.DoubleTapInProgress() {
		t.Fatal("DoubleTapInProgress: expected true after the second down")
	}
	r.OnTouchEvent(ev(input.ActionMove, 170, 0, pt(0, 530, 602)))

	if len(rec.pans) != 0 {
		t.Errorf("pans: expected none during double tap drag, got %v", rec.pans)
	}
	if len(rec.zooms) != 1 || !near(rec.zooms[0], gomath.Pow(1.1, 4)) {
		t.Fatalf("zooms: expected [%v], got %v", gomath.Pow(1.1, 4), rec.zooms)
	}

	r.OnTouchEvent(ev(input.ActionMove, 190, 0, pt(0, 530, 502)))
	if !near(rec.zooms[1], gomath.Pow(0.9, 4)) {
		t.Errorf("drag up: expected %v, got %v", gomath.Pow(0.9, 4), rec.zooms[1])
	}

	r.OnTouchEvent(ev(input.ActionUp, 200, 0, pt(0, 530, 502)))
	if r.DoubleTapInProgress() {
		t.Error("DoubleTapInProgress: expected false after up")
	}
}

func TestLateSecondTapPans(t *testing.T) {
	rec := &recorder{height: 1000}
	r := NewRouter(rec)

	r.OnTouchEvent(ev(input.ActionDown, 0, 0, pt(0, 500, 500)))
	r.OnTouchEvent(ev(input.ActionUp, 50, 0, pt(0, 500, 500)))
	r.OnTouchEvent(ev(input.ActionDown, 50+400, 0, pt(0, 500, 500)))
	r.OnTouchEvent(ev(input.ActionMove, 470, 0, pt(0, 500, 600)))

	if r.DoubleTapInProgress() {
		t.Error("DoubleTapInProgress: expected false for a late second tap")
	}
	if len(rec.pans) != 1 || rec.pans[0] != [2]float64{0, 100} {
		t.Errorf("pans: expected [[0 100]], got %v", rec.pans)
	}
}

func TestTwistRotates(t *testing.T) {
	rec := &recorder{height: 1000}
	r := NewRouter(rec)

	r.OnTouchEvent(ev(input.ActionDown, 0, 0, pt(0, 0, 0)))
	r.OnTouchEvent(ev(input.ActionPointerDown, 5, 1, pt(0, 0, 0), pt(1, 100, 0)))
	r.OnTouchEvent(ev(input.ActionMove, 10, 0, pt(0, 0, 0), pt(1, 0, 100)))

	if len(rec.angles) != 1 || !near(rec.angles[0], gomath.Pi/2) {
		t.Fatalf("angles: expected [pi/2], got %v", rec.angles)
	}

	// a second gesture continues from the accumulated angle
	r.OnTouchEvent(ev(input.ActionPointerUp, 20, 1, pt(0, 0, 0), pt(1, 0, 100)))
	r.OnTouchEvent(ev(input.ActionUp, 30, 0, pt(0, 0, 0)))
	r.OnTouchEvent(ev(input.ActionDown, 1000, 0, pt(0, 0, 0)))
	r.OnTouchEvent(ev(input.ActionPointerDown, 1005, 1, pt(0, 0, 0), pt(1, 100, 0)))
	r.OnTouchEvent(ev(input.ActionMove, 1010, 0, pt(0, 0, 0), pt(1, 100, 100)))

	last := rec.angles[len(rec.angles)-1]
	if !near(last, 3*gomath.Pi/4) {
		t.Errorf("lifetime rotation: expected %v, got %v", 3*gomath.Pi/4, last)
	}
}

func TestRotateAcrossPi(t *testing.T) {
	var d RotateDetector
	a := 3.0
	b := -3.0
	p0 := pt(0, 0, 0)
	d.OnTouchEvent(ev(input.ActionDown, 0, 0, p0))
	d.OnTouchEvent(ev(input.ActionPointerDown, 0, 1, p0, pt(1, 100*gomath.Cos(a), 100*gomath.Sin(a))))
	if !d.OnTouchEvent(ev(input.ActionMove, 0, 0, p0, pt(1, 100*gomath.Cos(b), 100*gomath.Sin(b)))) {
		t.Fatal("expected a rotation update")
	}
	want := 2*gomath.Pi - 6
	if gomath.Abs(d.LifetimeRotation()-want) > 1e-9 {
		t.Errorf("LifetimeRotation: expected %v, got %v", want, d.LifetimeRotation())
	}
}

func TestScaleRebaselinesOnPointerChange(t *testing.T) {
	var d ScaleDetector
	d.OnTouchEvent(ev(input.ActionDown, 0, 0, pt(0, 0, 0)))
	if d.InProgress() {
		t.Fatal("InProgress: expected false with one pointer")
	}
	if got := d.OnTouchEvent(ev(input.ActionPointerDown, 0, 1, pt(0, 0, 0), pt(1, 100, 0))); got != ScaleBegin {
		t.Fatalf("second pointer: expected ScaleBegin, got %v", got)
	}
	d.OnTouchEvent(ev(input.ActionPointerDown, 0, 2, pt(0, 0, 0), pt(1, 100, 0), pt(2, 50, 300)))
	if got := d.OnTouchEvent(ev(input.ActionPointerUp, 0, 2, pt(0, 0, 0), pt(1, 100, 0), pt(2, 50, 300))); got != ScaleBegin {
		t.Fatalf("third pointer up: expected ScaleBegin, got %v", got)
	}
	if f := d.Focus(); f[0] != 50 || f[1] != 0 {
		t.Errorf("Focus: expected [50 0], got %v", f)
	}
	d.OnTouchEvent(ev(input.ActionMove, 0, 0, pt(0, 0, 0), pt(1, 100, 0)))
	if d.ScaleFactor() != 1 {
		t.Errorf("ScaleFactor: expected 1 for unchanged pointers, got %v", d.ScaleFactor())
	}
	if got := d.OnTouchEvent(ev(input.ActionPointerUp, 0, 0, pt(0, 0, 0), pt(1, 100, 0))); got != ScaleEnd {
		t.Errorf("pointer up to one: expected ScaleEnd, got %v", got)
	}
}

func TestTapExpire(t *testing.T) {
	var d TapDetector
	d.OnTouchEvent(ev(input.ActionDown, 0, 0, pt(0, 10, 10)))
	d.OnTouchEvent(ev(input.ActionUp, 50, 0, pt(0, 10, 10)))
	if got := d.Expire(200 * time.Millisecond); got != TapNone {
		t.Errorf("Expire inside window: expected TapNone, got %v", got)
	}
	if got := d.Expire(400 * time.Millisecond); got != TapSingleConfirmed {
		t.Errorf("Expire after window: expected TapSingleConfirmed, got %v", got)
	}
}

func TestDraggedTapIsNotDoubleTap(t *testing.T) {
	var d TapDetector
	d.OnTouchEvent(ev(input.ActionDown, 0, 0, pt(0, 10, 10)))
	d.OnTouchEvent(ev(input.ActionMove, 20, 0, pt(0, 80, 10)))
	d.OnTouchEvent(ev(input.ActionUp, 40, 0, pt(0, 80, 10)))
	if got := d.OnTouchEvent(ev(input.ActionDown, 100, 0, pt(0, 10, 10))); got != TapNone {
		t.Errorf("down after drag: expected TapNone, got %v", got)
	}
}
