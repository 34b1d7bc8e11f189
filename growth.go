package sylva

// GrowthState is the lifecycle of a cloud's reveal animation.
// Transitions run one way only: GrowthSapling → GrowthGrowing → GrowthGrown.
type GrowthState uint8

const (
	GrowthSapling GrowthState = iota // only the sapling subset is visible
	GrowthGrowing                    // reveal wave in progress
	GrowthGrown                      // terminal: everything visible
)

// growthFadeRange is the width of the opacity ramp in growth-order units.
// A particle fades from 0 to 1 while the wave sweeps this far past its order.
const growthFadeRange = 0.25

// Growth returns the cloud's current growth state.
func (c *Cloud) Growth() GrowthState {
	return c.state
}

// TriggerGrowth starts the reveal wave. Idempotent: calls after the first are
// no-ops, so repeated UI triggers cannot restart or duplicate the animation.
func (c *Cloud) TriggerGrowth() bool {
	if c.state != GrowthSapling {
		return false
	}
	c.state = GrowthGrowing
	c.growthStart = c.now()
	for i := range c.particles {
		c.particles[i].targetOpacity = 1
	}
	return true
}

// applyGrowth advances the reveal wave by wall-clock time since the trigger
// and rewrites the opacity buffer. Called once per frame; does nothing in the
// SAPLING and GROWN states (their opacities are already settled).
//
// The wave position runs from 0 to 1+growthFadeRange so that even the
// last-ordered particle completes its full fade within GrowthDuration. Since
// the wave only moves forward, every particle's opacity is non-decreasing
// for the whole GROWING phase.
func (c *Cloud) applyGrowth() {
	if c.state != GrowthGrowing {
		return
	}

	elapsed := c.now().Sub(c.growthStart).Seconds()
	progress := clamp01(elapsed / c.cfg.GrowthDuration)
	if progress >= 1 {
		for i := range c.particles {
			c.particles[i].currentOpacity = 1
			c.opacities[i] = 1
		}
		c.state = GrowthGrown
		c.markDirty()
		return
	}

	eased := float64(c.cfg.GrowthEase(float32(progress), 0, 1, 1))
	wave := eased * (1 + growthFadeRange)
	for i := range c.particles {
		p := &c.particles[i]
		if p.isSeedVisible {
			continue // sapling stays fully visible throughout
		}
		op := clamp01((wave - p.growthOrder) / growthFadeRange)
		p.currentOpacity = op
		c.opacities[i] = float32(op)
	}
	c.markDirty()
}

// forceGrown marks every particle visible and jumps straight to the terminal
// state. Used by figures that have no reveal phase (the logo variant).
func (c *Cloud) forceGrown() {
	c.state = GrowthGrown
	for i := range c.particles {
		c.particles[i].isSeedVisible = true
		c.particles[i].currentOpacity = 1
		c.particles[i].targetOpacity = 1
		c.opacities[i] = 1
	}
	c.markDirty()
}
