package sylva

import (
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// Config controls sampling, structure extension, growth, and per-frame motion
// for a point-cloud figure. The zero value is usable: unset fields are
// back-filled with defaults at construction.
type Config struct {
	// Resolution is the square sampling canvas size in pixels.
	Resolution int
	// Stride is the pixel step between samples; 1 samples every pixel.
	Stride int
	// DepthRange is the extent of the random Z offset applied to each seed.
	DepthRange float64

	// Scale converts sampled pixel coordinates to world units.
	Scale float64
	// PointSize is the base quad size of a rendered point, in pixels.
	PointSize float64
	// PointColor is the tint applied to every point.
	PointColor Color
	// Blend is the compositing operation for point rendering.
	Blend BlendMode

	// FlowSpeed is the upward rise rate in world units per second.
	FlowSpeed float64
	// FlowHeight is the height at which the rising motion wraps back to zero.
	FlowHeight float64
	// FlowTurbulence is the maximum lateral drift redrawn on each wrap.
	FlowTurbulence float64

	// SlashWidth is the interaction radius around the pointer.
	SlashWidth float64
	// SlashStrength is the peak push displacement at zero distance.
	SlashStrength float64
	// SlashSmoothness is the single-pole blend factor toward the push target.
	SlashSmoothness float64
	// WindReturn is the exponential relaxation rate of the wind offset,
	// in 1/seconds.
	WindReturn float64
	// MinPointerSpeed is the pointer speed below which no push applies.
	MinPointerSpeed float64

	// FloatAmplitude is the vertical bob amplitude.
	FloatAmplitude float64
	// SwayAmplitude is the horizontal sway amplitude.
	SwayAmplitude float64
	// SpeedRange is the range of per-particle animation rate multipliers.
	SpeedRange Range

	// SaplingRatio is the fraction of low particles visible before growth.
	SaplingRatio float64
	// SaplingHeight is the height fraction of the shape forming the sapling band.
	SaplingHeight float64
	// SaplingTaper is the maximum upward baseline extension applied to sapling
	// particles near the top of the band, producing a tapered tip.
	SaplingTaper float64
	// GrowthDuration is the length of the reveal animation in seconds.
	GrowthDuration float64
	// GrowthEase shapes the reveal progress curve. Defaults to ease.Linear,
	// which preserves the plain bottom-to-top wave.
	GrowthEase ease.TweenFunc
}

// applyDefaults back-fills zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Resolution <= 0 {
		c.Resolution = 256
	}
	if c.Stride <= 0 {
		c.Stride = 2
	}
	if c.DepthRange <= 0 {
		c.DepthRange = 40
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.PointSize <= 0 {
		c.PointSize = 2.5
	}
	if c.PointColor == (Color{}) {
		c.PointColor = ColorWhite
	}
	if c.FlowSpeed <= 0 {
		c.FlowSpeed = 9
	}
	if c.FlowHeight <= 0 {
		c.FlowHeight = 18
	}
	if c.FlowTurbulence <= 0 {
		c.FlowTurbulence = 6
	}
	if c.SlashWidth <= 0 {
		c.SlashWidth = 90
	}
	if c.SlashStrength <= 0 {
		c.SlashStrength = 14
	}
	if c.SlashSmoothness <= 0 {
		c.SlashSmoothness = 0.18
	}
	if c.WindReturn <= 0 {
		c.WindReturn = 4
	}
	if c.MinPointerSpeed <= 0 {
		c.MinPointerSpeed = 2
	}
	if c.FloatAmplitude <= 0 {
		c.FloatAmplitude = 1.6
	}
	if c.SwayAmplitude <= 0 {
		c.SwayAmplitude = 2.4
	}
	if c.SpeedRange == (Range{}) {
		c.SpeedRange = Range{Min: 0.6, Max: 1.6}
	}
	if c.SaplingRatio <= 0 {
		c.SaplingRatio = 0.5
	}
	if c.SaplingHeight <= 0 {
		c.SaplingHeight = 0.45
	}
	if c.SaplingTaper <= 0 {
		c.SaplingTaper = 26
	}
	if c.GrowthDuration <= 0 {
		c.GrowthDuration = 6
	}
	if c.GrowthEase == nil {
		c.GrowthEase = ease.Linear
	}
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
