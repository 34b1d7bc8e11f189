package sylva

import (
	"math"
	"math/rand/v2"
	"sort"
)

// Root extension limits. All three act as loop-exit conditions on the
// worklist, so generation terminates with bounded memory no matter what the
// input looks like.
const (
	rootBaseBand     = 0.15 // bottom fraction of seeds forming the root base
	maxRootOrigins   = 50
	maxRootDepth     = 2
	minRootThickness = 0.2
	maxRootParticles = 100000
	rootBranchChance = 0.35
	rootChildThin    = 0.6 // child branch thickness multiplier
)

// Branch extension parameters.
const (
	branchBandMin        = 0.30 // height band of branch-tip candidates
	branchBandMax        = 0.80
	branchRimFraction    = 0.25 // outer fraction kept, ranked by radial distance
	branchNeighborRadius = 15.0
	branchSampleRate     = 0.20
	branchStepLength     = 1.5
)

// rootBranch is a pending walk on the root worklist.
type rootBranch struct {
	pos       Vec3
	dir       Vec3
	bias      Vec3 // persistent downward/outward pull, perturbed per child
	thickness float64
	steps     int
	depth     int
}

// ExtendRoots synthesizes a root mass below the silhouette: from the bottom
// band of seeds it walks thinning branches outward and downward, emitting a
// ring of particles around every step. Growth is iterative (explicit
// worklist) and triple-bounded: branch depth, minimum thickness, and a global
// particle cap.
//
// An empty or degenerate input yields zero extension particles, never an
// error — the sampled silhouette is still usable without roots.
func ExtendRoots(seeds []Vec3, cfg Config) (out []Vec3) {
	defer func() {
		if r := recover(); r != nil {
			debugf("root extension failed: %v", r)
			out = nil
		}
	}()
	if len(seeds) == 0 {
		debugf("root extension skipped: no seeds")
		return nil
	}
	cfg.applyDefaults()

	minY, maxY := boundsY(seeds)
	cut := minY + rootBaseBand*(maxY-minY)
	var base []Vec3
	for _, s := range seeds {
		if s.Y <= cut {
			base = append(base, s)
		}
	}
	if len(base) == 0 {
		return nil
	}

	// Horizontal centroid of the root base; outward bias points away from it.
	var cx, cz float64
	for _, s := range base {
		cx += s.X
		cz += s.Z
	}
	cx /= float64(len(base))
	cz /= float64(len(base))

	stack := make([]rootBranch, 0, maxRootOrigins)
	for _, i := range rand.Perm(len(base)) {
		if len(stack) >= maxRootOrigins {
			break
		}
		origin := base[i]
		outward, ok := vnorm(Vec3{X: origin.X - cx, Z: origin.Z - cz})
		if !ok {
			// Origin sits on the central axis; fall back to a random
			// horizontal unit direction instead of a degenerate zero vector.
			angle := rand.Float64() * 2 * math.Pi
			outward = Vec3{X: math.Cos(angle), Z: math.Sin(angle)}
		}
		bias := Vec3{X: outward.X * 0.5, Y: -0.8, Z: outward.Z * 0.5}
		dir, _ := vnorm(vadd(bias, randJitter(0.3)))
		stack = append(stack, rootBranch{
			pos:       origin,
			dir:       dir,
			bias:      bias,
			thickness: 2.5 + rand.Float64()*1.5,
			steps:     12 + rand.IntN(10),
			depth:     0,
		})
	}

	emitted := 0
	for len(stack) > 0 && emitted < maxRootParticles {
		br := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		pos := br.pos
		dir := br.dir
		for s := 0; s < br.steps && emitted < maxRootParticles; s++ {
			// Thickness decays linearly along the branch.
			th := br.thickness * (1 - float64(s)/float64(br.steps))
			if th < minRootThickness {
				break
			}

			step := 2.5 + rand.Float64()*1.5
			dir, _ = vnorm(vadd(vadd(dir, vscale(br.bias, 0.15)), randJitter(0.25)))
			pos = vadd(pos, vscale(dir, step))

			// Ring of particles around the step position, sized by thickness.
			ring := 1 + int(th*3)
			for k := 0; k < ring && emitted < maxRootParticles; k++ {
				angle := rand.Float64() * 2 * math.Pi
				radius := th * 1.2 * rand.Float64()
				out = append(out, Vec3{
					X: pos.X + math.Cos(angle)*radius,
					Y: pos.Y + (rand.Float64()-0.5)*radius,
					Z: pos.Z + math.Sin(angle)*radius,
				})
				emitted++
			}
		}

		// One branching decision per walk, only below the depth cap.
		if br.depth < maxRootDepth && rand.Float64() < rootBranchChance {
			children := 2 + rand.IntN(2)
			for c := 0; c < children; c++ {
				th := br.thickness * rootChildThin
				if th < minRootThickness {
					break
				}
				bias, _ := vnorm(vadd(br.bias, randJitter(0.4)))
				dir, _ := vnorm(vadd(dir, randJitter(0.6)))
				stack = append(stack, rootBranch{
					pos:       pos,
					dir:       dir,
					bias:      bias,
					thickness: th,
					steps:     br.steps * 2 / 3,
					depth:     br.depth + 1,
				})
			}
		}
	}
	return out
}

// ExtendBranches extends sparse, line-like branch tips from the outer rim of
// the silhouette's middle height band. Single forward walk per tip, no
// recursion; emission probability decays quadratically with progress so tips
// thin out instead of clumping.
//
// Like ExtendRoots, failure yields zero extension particles, never an error.
func ExtendBranches(seeds []Vec3, cfg Config) (out []Vec3) {
	defer func() {
		if r := recover(); r != nil {
			debugf("branch extension failed: %v", r)
			out = nil
		}
	}()
	if len(seeds) == 0 {
		debugf("branch extension skipped: no seeds")
		return nil
	}
	cfg.applyDefaults()

	minY, maxY := boundsY(seeds)
	span := maxY - minY
	if span <= 0 {
		return nil
	}

	var cx, cy float64
	for _, s := range seeds {
		cx += s.X
		cy += s.Y
	}
	cx /= float64(len(seeds))
	cy /= float64(len(seeds))

	// Candidates: middle height band, ranked by planar distance from the
	// centroid, outer rim kept.
	type ranked struct {
		seed Vec3
		dist float64
	}
	var band []ranked
	for _, s := range seeds {
		h := (s.Y - minY) / span
		if h < branchBandMin || h > branchBandMax {
			continue
		}
		band = append(band, ranked{s, math.Hypot(s.X-cx, s.Y-cy)})
	}
	if len(band) == 0 {
		return nil
	}
	sort.Slice(band, func(i, j int) bool { return band[i].dist > band[j].dist })
	rim := band[:1+int(float64(len(band))*branchRimFraction)]

	for _, cand := range rim {
		if rand.Float64() >= branchSampleRate {
			continue
		}

		// Local outward direction: average of (candidate - neighbor) over
		// nearby seeds. Candidates with no neighbors or a degenerate
		// direction are discarded.
		var dx, dy float64
		neighbors := 0
		for _, s := range seeds {
			if math.Hypot(cand.seed.X-s.X, cand.seed.Y-s.Y) > branchNeighborRadius {
				continue
			}
			dx += cand.seed.X - s.X
			dy += cand.seed.Y - s.Y
			neighbors++
		}
		if neighbors == 0 {
			continue
		}
		mag := math.Hypot(dx, dy)
		if mag < 1e-9 {
			continue
		}
		dir := Vec3{X: dx / mag, Y: dy / mag}

		length := 30 + rand.Float64()*30
		steps := int(length / branchStepLength)
		pos := cand.seed
		for s := 0; s < steps; s++ {
			progress := float64(s) / float64(steps)

			// Slight random outward kick plus a downward droop.
			dir, _ = vnorm(vadd(dir, Vec3{
				X: dir.X * rand.Float64() * 0.1,
				Y: -0.05,
			}))
			pos = vadd(pos, vscale(dir, branchStepLength))

			// Emission thins quadratically and the spread tightens toward
			// the tip, so the walk reads as a line, not a clump.
			if rand.Float64() >= (1-progress)*(1-progress) {
				continue
			}
			spread := (1 - progress) * 2
			out = append(out, vadd(pos, randJitter(spread)))
		}
	}
	return out
}

// boundsY returns the min and max Y over seeds. Caller guarantees non-empty.
func boundsY(seeds []Vec3) (minY, maxY float64) {
	minY, maxY = seeds[0].Y, seeds[0].Y
	for _, s := range seeds[1:] {
		if s.Y < minY {
			minY = s.Y
		}
		if s.Y > maxY {
			maxY = s.Y
		}
	}
	return minY, maxY
}

// vadd returns a + b.
func vadd(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// vscale returns v * s.
func vscale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// vnorm returns v normalized to unit length. The bool is false when v is too
// short to normalize, in which case the zero vector is returned.
func vnorm(v Vec3) (Vec3, bool) {
	mag := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if mag < 1e-9 {
		return Vec3{}, false
	}
	return Vec3{v.X / mag, v.Y / mag, v.Z / mag}, true
}

// randJitter returns a uniform random vector with each component in
// [-scale/2, scale/2].
func randJitter(scale float64) Vec3 {
	return Vec3{
		X: (rand.Float64() - 0.5) * scale,
		Y: (rand.Float64() - 0.5) * scale,
		Z: (rand.Float64() - 0.5) * scale,
	}
}
