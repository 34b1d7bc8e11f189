package sylva

import (
	"math"
	"math/rand/v2"
	"time"
)

// particle holds per-particle state. Fixed shape, fully initialized at Cloud
// construction — the per-frame loop never branches on missing fields.
// baseline is write-once; every other mutable field has exactly one writer
// (the kinematic update or the growth machine, both on the game loop).
type particle struct {
	baseline Vec3

	// growthOrder ranks when this particle is revealed by the growth wave:
	// 0.6 × normalized height + 0.4 × normalized radial distance from the
	// central axis, in [0, 1].
	growthOrder float64

	// isSeedVisible marks membership in the sapling subset shown before
	// growth is triggered.
	isSeedVisible bool

	currentOpacity float64
	targetOpacity  float64

	// Fixed random animation parameters.
	phaseX, phaseY  float64
	speedMultiplier float64

	// Transient force response, relaxes toward zero.
	windOffsetX, windOffsetY float64

	// Transient upward-flow state, wraps at the flow height.
	flowOffset     float64
	driftX, driftZ float64
}

// Cloud is the particle store: an ordered set of particles with index-aligned
// flat buffers mirrored for the renderer. Buffers are built once at
// construction and mutated in place — never resized.
type Cloud struct {
	cfg       Config
	particles []particle
	positions []float32 // 3 × count, xyz
	opacities []float32 // count

	// Shape metrics in scaled world units, fixed at construction.
	minY, maxY float64
	centroidX  float64
	centroidZ  float64

	// Growth state. One page session: SAPLING → GROWING → GROWN, never back.
	state       GrowthState
	growthStart time.Time
	now         func() time.Time // injectable clock for tests

	dirty bool
}

// NewCloud builds a particle store from seeds. Per-particle animation
// parameters are randomized here and never change afterwards. Returns
// ErrEmptySample when seeds is empty — an empty cloud is not renderable.
func NewCloud(seeds []Vec3, cfg Config) (*Cloud, error) {
	if len(seeds) == 0 {
		return nil, ErrEmptySample
	}
	cfg.applyDefaults()

	c := &Cloud{
		cfg:       cfg,
		particles: make([]particle, len(seeds)),
		positions: make([]float32, len(seeds)*3),
		opacities: make([]float32, len(seeds)),
		state:     GrowthSapling,
		now:       time.Now,
	}

	// Shape metrics from the scaled seed set.
	c.minY = seeds[0].Y * cfg.Scale
	c.maxY = c.minY
	var sumX, sumZ float64
	for _, s := range seeds {
		y := s.Y * cfg.Scale
		if y < c.minY {
			c.minY = y
		}
		if y > c.maxY {
			c.maxY = y
		}
		sumX += s.X * cfg.Scale
		sumZ += s.Z * cfg.Scale
	}
	c.centroidX = sumX / float64(len(seeds))
	c.centroidZ = sumZ / float64(len(seeds))

	span := c.maxY - c.minY
	if span <= 0 {
		span = 1
	}
	var maxRadial float64
	for _, s := range seeds {
		r := math.Hypot(s.X*cfg.Scale-c.centroidX, s.Z*cfg.Scale-c.centroidZ)
		if r > maxRadial {
			maxRadial = r
		}
	}
	if maxRadial <= 0 {
		maxRadial = 1
	}

	for i, s := range seeds {
		p := &c.particles[i]
		p.baseline = Vec3{X: s.X * cfg.Scale, Y: s.Y * cfg.Scale, Z: s.Z * cfg.Scale}

		h := (p.baseline.Y - c.minY) / span
		radial := math.Hypot(p.baseline.X-c.centroidX, p.baseline.Z-c.centroidZ) / maxRadial
		p.growthOrder = 0.6*h + 0.4*radial

		// Sapling membership: a random fraction of the bottom band. Particles
		// near the band's top get a randomized upward extension proportional
		// to their closeness to it, tapering the sapling's tip.
		if h < cfg.SaplingHeight && rand.Float64() < cfg.SaplingRatio {
			p.isSeedVisible = true
			t := h / cfg.SaplingHeight
			p.baseline.Y += rand.Float64() * cfg.SaplingTaper * t
		}

		p.phaseX = rand.Float64() * 2 * math.Pi
		p.phaseY = rand.Float64() * 2 * math.Pi
		p.speedMultiplier = cfg.SpeedRange.Random()

		if p.isSeedVisible {
			p.currentOpacity = 1
			p.targetOpacity = 1
		}

		c.positions[i*3] = float32(p.baseline.X)
		c.positions[i*3+1] = float32(p.baseline.Y)
		c.positions[i*3+2] = float32(p.baseline.Z)
		c.opacities[i] = float32(p.currentOpacity)
	}
	c.dirty = true
	return c, nil
}

// Count returns the number of particles.
func (c *Cloud) Count() int {
	return len(c.particles)
}

// Buffers returns the flat position (stride 3) and opacity buffers. The
// slices alias the cloud's internal storage; they are mutated in place every
// frame and never reallocated.
func (c *Cloud) Buffers() (positions, opacities []float32) {
	return c.positions, c.opacities
}

// SaplingCount returns the number of particles in the pre-growth subset.
func (c *Cloud) SaplingCount() int {
	n := 0
	for i := range c.particles {
		if c.particles[i].isSeedVisible {
			n++
		}
	}
	return n
}

// markDirty flags the buffers as mutated since the last render submission.
func (c *Cloud) markDirty() {
	c.dirty = true
}

// consumeDirty reports whether the buffers changed since the last call and
// clears the flag.
func (c *Cloud) consumeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}
