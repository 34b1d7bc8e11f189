package sylva

import (
	"math/rand/v2"
	"testing"
)

// blobSeeds builds a roughly tree-shaped seed blob: a vertical trunk with a
// wider crown, centered on the origin.
func blobSeeds(n int) []Vec3 {
	seeds := make([]Vec3, 0, n)
	for i := 0; i < n; i++ {
		y := rand.Float64()*200 - 100
		spread := 10.0
		if y > 0 {
			spread = 50 // crown
		}
		seeds = append(seeds, Vec3{
			X: (rand.Float64() - 0.5) * 2 * spread,
			Y: y,
			Z: (rand.Float64() - 0.5) * 10,
		})
	}
	return seeds
}

func TestExtendRootsBounded(t *testing.T) {
	seeds := blobSeeds(3000)
	out := ExtendRoots(seeds, Config{})
	if len(out) > maxRootParticles {
		t.Fatalf("root extension emitted %d particles, cap is %d", len(out), maxRootParticles)
	}
	if len(out) == 0 {
		t.Error("expected some root particles from a dense blob")
	}
}

func TestExtendRootsEmptyInput(t *testing.T) {
	if out := ExtendRoots(nil, Config{}); out != nil {
		t.Errorf("ExtendRoots(nil) = %d particles, want none", len(out))
	}
}

func TestExtendRootsDegenerateInput(t *testing.T) {
	// All seeds on the central axis: the outward direction is undefined and
	// must fall back to a random horizontal unit, not a zero vector.
	seeds := make([]Vec3, 100)
	out := ExtendRoots(seeds, Config{})
	if len(out) == 0 {
		t.Fatal("expected root particles even from a degenerate point cluster")
	}
	moved := false
	for _, p := range out {
		if p.X != 0 || p.Z != 0 {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("all root particles stayed on the axis; outward fallback did not fire")
	}
}

func TestExtendRootsGrowDownward(t *testing.T) {
	seeds := blobSeeds(2000)
	out := ExtendRoots(seeds, Config{})
	if len(out) == 0 {
		t.Fatal("expected root particles")
	}

	var seedMean, rootMean float64
	for _, s := range seeds {
		seedMean += s.Y
	}
	seedMean /= float64(len(seeds))
	for _, p := range out {
		rootMean += p.Y
	}
	rootMean /= float64(len(out))

	if rootMean >= seedMean {
		t.Errorf("mean root Y = %v, not below mean seed Y = %v", rootMean, seedMean)
	}
}

func TestExtendBranchesEmptyInput(t *testing.T) {
	if out := ExtendBranches(nil, Config{}); out != nil {
		t.Errorf("ExtendBranches(nil) = %d particles, want none", len(out))
	}
}

func TestExtendBranchesFlatInput(t *testing.T) {
	// Zero vertical span: no height band exists, extension degrades to nothing.
	seeds := make([]Vec3, 50)
	for i := range seeds {
		seeds[i] = Vec3{X: float64(i), Y: 0}
	}
	if out := ExtendBranches(seeds, Config{}); len(out) != 0 {
		t.Errorf("flat input produced %d particles, want 0", len(out))
	}
}

func TestExtendBranchesBounded(t *testing.T) {
	seeds := blobSeeds(3000)
	out := ExtendBranches(seeds, Config{})

	// Worst case: every rim candidate is sampled and every step emits.
	// 25% rim of the band, 60-unit walks at 1.5-unit steps.
	limit := (len(seeds)/4 + 1) * 40
	if len(out) > limit {
		t.Fatalf("branch extension emitted %d particles, want <= %d", len(out), limit)
	}
}

func TestExtendBranchesSparse(t *testing.T) {
	// Quadratic emission decay means a walk emits well under one particle
	// per step on average.
	seeds := blobSeeds(5000)
	out := ExtendBranches(seeds, Config{})
	if len(out) == 0 {
		t.Skip("no branch walks sampled this run")
	}
	// A full 40-step walk with quadratic decay emits ~13 particles; allow a
	// generous margin over the candidate count.
	maxDense := (len(seeds) / 4) * 25
	if len(out) > maxDense {
		t.Errorf("branch extension emitted %d particles, expected sparse output (<= %d)", len(out), maxDense)
	}
}
