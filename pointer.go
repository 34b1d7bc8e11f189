package sylva

import "math"

// PointerState is a snapshot of the pointer in the particle world frame:
// screen-centered, Y growing upward. Velocity is the raw delta of the last
// two input events — no smoothing happens here; the kinematic update's force
// relaxation is the only low-pass in the system.
type PointerState struct {
	X, Y         float64
	PrevX, PrevY float64
	VelX, VelY   float64
}

// Speed returns the magnitude of the pointer velocity.
func (p PointerState) Speed() float64 {
	return math.Hypot(p.VelX, p.VelY)
}

// Tracker maintains current and previous pointer screen coordinates and
// translates them into world coordinates for the kinematic update.
type Tracker struct {
	width, height float64
	curX, curY    float64
	prevX, prevY  float64
	moved         bool
}

// NewTracker creates a tracker for a viewport of the given pixel size.
func NewTracker(width, height int) *Tracker {
	return &Tracker{width: float64(width), height: float64(height)}
}

// Resize updates the viewport size used for the world translation.
func (t *Tracker) Resize(width, height int) {
	t.width = float64(width)
	t.height = float64(height)
}

// Move records a pointer input event at screen coordinates (mx, my).
// Velocity is derived from the previous event; the first event reports zero
// velocity rather than a jump from the origin.
func (t *Tracker) Move(mx, my float64) {
	if !t.moved {
		t.prevX, t.prevY = mx, my
		t.moved = true
	} else {
		t.prevX, t.prevY = t.curX, t.curY
	}
	t.curX, t.curY = mx, my
}

// State returns the pointer in world coordinates (screen-centered,
// Y-flipped). Before any Move event the pointer reads as stationary at a
// far-away position so it cannot influence particles.
func (t *Tracker) State() PointerState {
	if !t.moved {
		return PointerState{X: math.Inf(1), Y: math.Inf(1)}
	}
	wx := t.curX - t.width/2
	wy := t.height/2 - t.curY
	px := t.prevX - t.width/2
	py := t.height/2 - t.prevY
	return PointerState{
		X: wx, Y: wy,
		PrevX: px, PrevY: py,
		VelX: wx - px, VelY: wy - py,
	}
}
