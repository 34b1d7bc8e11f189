package sylva

import (
	"math"
	"math/rand/v2"
)

// motionMode selects the per-frame kinematic variant.
type motionMode uint8

const (
	// modeFlow: continuous upward flow plus velocity-directed slash wind.
	// Used by tree figures.
	modeFlow motionMode = iota
	// modeStill: no flow; symmetric float/sway with a radial push away from
	// the pointer. Used by logo figures.
	modeStill
)

// animate recomputes every displayed position from its baseline plus the
// float/sway, flow, and wind terms, rewriting the position buffer in place.
//
// elapsed is total animation time (drives the periodic terms), dt is the
// frame delta (drives flow advance and force relaxation). Before growth
// triggers, only sapling particles move; everything else holds its baseline,
// which the buffer already contains.
//
// Single writer: this runs on the game loop only, and the renderer reads the
// buffers strictly after the update completes.
func (c *Cloud) animate(elapsed, dt float64, ptr PointerState, mode motionMode) {
	cfg := &c.cfg

	// Exponential relaxation factor, precomputed once per frame.
	windDecay := math.Exp(-cfg.WindReturn * dt)

	speed := ptr.Speed()
	pushing := speed > cfg.MinPointerSpeed
	var velX, velY float64
	if pushing && speed > 0 {
		velX = ptr.VelX / speed
		velY = ptr.VelY / speed
	}

	saplingOnly := mode == modeFlow && c.state == GrowthSapling

	for i := range c.particles {
		p := &c.particles[i]
		if saplingOnly && !p.isSeedVisible {
			continue
		}

		// Upward flow: rise, wrap, redraw lateral drift. The drift scales
		// with the rise so a respawned particle starts back at its baseline.
		var flowX, flowY, flowZ float64
		if mode == modeFlow {
			p.flowOffset += cfg.FlowSpeed * dt
			if p.flowOffset >= cfg.FlowHeight {
				p.flowOffset = 0
				p.driftX = (rand.Float64() - 0.5) * 2 * cfg.FlowTurbulence
				p.driftZ = (rand.Float64() - 0.5) * 2 * cfg.FlowTurbulence
			}
			rise := p.flowOffset / cfg.FlowHeight
			flowX = p.driftX * rise
			flowY = p.flowOffset
			flowZ = p.driftZ * rise
		}

		// Slash wind: push particles near a fast-moving pointer, smoothed by
		// a single-pole low-pass; relax exponentially otherwise.
		dx := ptr.X - p.baseline.X
		dy := ptr.Y - p.baseline.Y
		dist := math.Hypot(dx, dy)
		if pushing && dist < cfg.SlashWidth {
			strength := cfg.SlashStrength * (1 - dist/cfg.SlashWidth)
			var tx, ty float64
			if mode == modeFlow {
				tx = velX * strength
				ty = velY * strength
			} else if dist > 1e-9 {
				// Radial push, straight away from the pointer.
				tx = -dx / dist * strength
				ty = -dy / dist * strength
			} else {
				angle := rand.Float64() * 2 * math.Pi
				tx = math.Cos(angle) * strength
				ty = math.Sin(angle) * strength
			}
			p.windOffsetX += (tx - p.windOffsetX) * cfg.SlashSmoothness
			p.windOffsetY += (ty - p.windOffsetY) * cfg.SlashSmoothness
		} else {
			p.windOffsetX *= windDecay
			p.windOffsetY *= windDecay
		}

		// Periodic float and sway.
		t := elapsed * p.speedMultiplier
		floatY := math.Sin(t+p.phaseY) * cfg.FloatAmplitude
		swayX := math.Cos(t*0.8+p.phaseX) * cfg.SwayAmplitude
		swayZ := math.Sin(t*0.6+p.phaseX) * cfg.SwayAmplitude * 0.5

		c.positions[i*3] = float32(p.baseline.X + swayX + flowX + p.windOffsetX)
		c.positions[i*3+1] = float32(p.baseline.Y + floatY + flowY + p.windOffsetY)
		c.positions[i*3+2] = float32(p.baseline.Z + swayZ + flowZ)
	}
	c.markDirty()
}
