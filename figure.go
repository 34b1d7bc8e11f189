package sylva

import "image"

// Figure is an animated point-cloud instance. Implementations own a Cloud
// and advance it once per frame; the engine renders whichever figure the
// registry marks active, so the kinematic machinery is never duplicated per
// shape.
type Figure interface {
	// Update advances the animation by dt seconds given the current pointer.
	Update(dt float64, ptr PointerState)
	// Cloud returns the figure's particle store.
	Cloud() *Cloud
}

// FigureKind selects a figure construction pipeline.
type FigureKind uint8

const (
	// FigureTree: sampled silhouette plus procedural roots and branch tips,
	// sapling reveal, upward flow, velocity-directed slash wind.
	FigureTree FigureKind = iota
	// FigureLogo: sampled silhouette only, fully visible from the start,
	// symmetric float/sway with a radial pointer push.
	FigureLogo
)

// NewFigure builds a figure of the given kind from a decoded silhouette.
func NewFigure(kind FigureKind, img image.Image, cfg Config) (Figure, error) {
	if kind == FigureLogo {
		return NewLogoFigure(img, cfg)
	}
	return NewTreeFigure(img, cfg)
}

// TreeFigure is the flow variant: a silhouette thickened by procedural roots
// and branch tips, revealed bottom-to-top by the growth wave.
type TreeFigure struct {
	cloud   *Cloud
	elapsed float64
}

// NewTreeFigure samples img, runs both structure extension passes, and builds
// the particle store. Extension failures degrade to a bare silhouette;
// sampling failures (ErrEmptySample) abort construction.
func NewTreeFigure(img image.Image, cfg Config) (*TreeFigure, error) {
	cfg.applyDefaults()
	seeds, err := Sample(img, cfg)
	if err != nil {
		return nil, err
	}
	seeds = append(seeds, ExtendRoots(seeds, cfg)...)
	seeds = append(seeds, ExtendBranches(seeds, cfg)...)

	cloud, err := NewCloud(seeds, cfg)
	if err != nil {
		return nil, err
	}
	return &TreeFigure{cloud: cloud}, nil
}

// Update advances growth and kinematics by dt seconds.
func (f *TreeFigure) Update(dt float64, ptr PointerState) {
	f.elapsed += dt
	f.cloud.applyGrowth()
	f.cloud.animate(f.elapsed, dt, ptr, modeFlow)
}

// Cloud returns the figure's particle store.
func (f *TreeFigure) Cloud() *Cloud {
	return f.cloud
}

// TriggerGrowth starts the reveal wave. Idempotent; reports whether the call
// actually transitioned the state.
func (f *TreeFigure) TriggerGrowth() bool {
	return f.cloud.TriggerGrowth()
}

// LogoFigure is the still variant: no flow, no growth reveal, radial pointer
// push instead of a velocity-directed one.
type LogoFigure struct {
	cloud   *Cloud
	elapsed float64
}

// NewLogoFigure samples img and builds a fully visible particle store.
func NewLogoFigure(img image.Image, cfg Config) (*LogoFigure, error) {
	cfg.applyDefaults()
	seeds, err := Sample(img, cfg)
	if err != nil {
		return nil, err
	}
	cloud, err := NewCloud(seeds, cfg)
	if err != nil {
		return nil, err
	}
	cloud.forceGrown()
	return &LogoFigure{cloud: cloud}, nil
}

// Update advances kinematics by dt seconds.
func (f *LogoFigure) Update(dt float64, ptr PointerState) {
	f.elapsed += dt
	f.cloud.animate(f.elapsed, dt, ptr, modeStill)
}

// Cloud returns the figure's particle store.
func (f *LogoFigure) Cloud() *Cloud {
	return f.cloud
}

// Registry holds named figures and selects the active one. Switching to an
// unknown name is a logged no-op, so a bad UI binding can't take the scene
// down mid-session.
type Registry struct {
	figures map[string]Figure
	order   []string
	active  string
}

// NewRegistry creates an empty figure registry.
func NewRegistry() *Registry {
	return &Registry{figures: make(map[string]Figure)}
}

// Add registers a figure under name. The first figure added becomes active.
// Re-adding an existing name replaces the figure and keeps its position.
func (r *Registry) Add(name string, f Figure) {
	if _, ok := r.figures[name]; !ok {
		r.order = append(r.order, name)
	}
	r.figures[name] = f
	if r.active == "" {
		r.active = name
	}
}

// Switch makes the named figure active. Unknown names are ignored with a
// debug warning.
func (r *Registry) Switch(name string) {
	if _, ok := r.figures[name]; !ok {
		debugf("registry: unknown figure %q, keeping %q", name, r.active)
		return
	}
	r.active = name
}

// Next cycles to the figure after the active one, in insertion order.
func (r *Registry) Next() {
	if len(r.order) < 2 {
		return
	}
	for i, name := range r.order {
		if name == r.active {
			r.active = r.order[(i+1)%len(r.order)]
			return
		}
	}
}

// Active returns the active figure, or nil when the registry is empty.
func (r *Registry) Active() Figure {
	if r.active == "" {
		return nil
	}
	return r.figures[r.active]
}

// ActiveName returns the name of the active figure ("" when empty).
func (r *Registry) ActiveName() string {
	return r.active
}

// Names returns the registered figure names in insertion order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
