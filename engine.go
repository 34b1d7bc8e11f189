package sylva

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// introFadeSeconds is the duration of the whole-cloud fade-in played when
// the first figure becomes ready.
const introFadeSeconds = 1.2

// EngineEventType identifies a kind of engine lifecycle event.
type EngineEventType uint8

const (
	EventFigureReady    EngineEventType = iota // a figure finished building
	EventFigureFailed                          // an async load or build failed
	EventGrowthTriggered                       // the reveal wave started
	EventFigureSwitched                        // the active figure changed
)

// EngineEvent carries engine lifecycle data for an EventSink.
type EngineEvent struct {
	Type   EngineEventType
	Figure string
	Err    error // set for EventFigureFailed
}

// EventSink is the interface for optional event integration (see the ecs
// subpackage for a Donburi-backed implementation). When set on an Engine,
// lifecycle events are forwarded to it.
type EventSink interface {
	EmitEvent(event EngineEvent)
}

// loadResult carries one finished async decode back to the game loop.
type loadResult struct {
	name string
	kind FigureKind
	img  image.Image
	err  error
}

// Engine owns all animation state for a session: the figure registry, the
// pointer tracker, the renderer, and the clock. Everything is mutated on the
// game loop only; the single asynchronous boundary is image decoding, whose
// results are handed back over a channel and applied inside Update.
type Engine struct {
	// ClearColor fills the screen before points are drawn.
	ClearColor Color
	// ShowStats draws an FPS / particle-count overlay.
	ShowStats bool

	cfg      Config
	registry *Registry
	tracker  *Tracker
	renderer *PointRenderer
	sink     EventSink

	loads   chan loadResult
	pending int

	fade      *gween.Tween
	fadeAlpha float64

	prevCursorX, prevCursorY int
	disposed                 bool
}

// NewEngine creates an engine for a viewport of the given pixel size.
func NewEngine(cfg Config, width, height int) *Engine {
	cfg.applyDefaults()
	return &Engine{
		ClearColor:  Color{R: 0.03, G: 0.04, B: 0.06, A: 1},
		cfg:         cfg,
		registry:    NewRegistry(),
		tracker:     NewTracker(width, height),
		renderer:    NewPointRenderer(cfg, width, height),
		loads:       make(chan loadResult, 8),
		fadeAlpha:   1,
		prevCursorX: -1,
		prevCursorY: -1,
	}
}

// Registry returns the engine's figure registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Renderer returns the engine's point renderer, for tuning size/color/blend.
func (e *Engine) Renderer() *PointRenderer {
	return e.renderer
}

// SetEventSink attaches an event sink receiving lifecycle events.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

// AddFigure registers an already-built figure. The first figure to arrive
// starts the intro fade.
func (e *Engine) AddFigure(name string, f Figure) {
	first := len(e.registry.Names()) == 0
	e.registry.Add(name, f)
	if first {
		e.fadeAlpha = 0
		e.fade = gween.New(0, 1, introFadeSeconds, ease.OutQuad)
	}
	e.emit(EngineEvent{Type: EventFigureReady, Figure: name})
}

// LoadFigure decodes the silhouette at path on a background goroutine and
// builds the figure on the game loop once the decode resolves. A failed
// decode aborts that figure only; other figures and the frame loop are
// unaffected.
func (e *Engine) LoadFigure(name string, kind FigureKind, path string) {
	e.pending++
	go func() {
		img, err := LoadSilhouette(path)
		e.loads <- loadResult{name: name, kind: kind, img: img, err: err}
	}()
}

// Loading reports whether any async figure loads are still in flight.
func (e *Engine) Loading() bool {
	return e.pending > 0
}

// TriggerGrowth starts the active tree figure's reveal wave. Idempotent: a
// figure already growing or grown, or a figure with no growth phase, makes
// this a no-op and no event is emitted.
func (e *Engine) TriggerGrowth() {
	tf, ok := e.registry.Active().(*TreeFigure)
	if !ok {
		return
	}
	if tf.TriggerGrowth() {
		e.emit(EngineEvent{Type: EventGrowthTriggered, Figure: e.registry.ActiveName()})
	}
}

// SwitchFigure makes the named figure active.
func (e *Engine) SwitchFigure(name string) {
	prev := e.registry.ActiveName()
	e.registry.Switch(name)
	if e.registry.ActiveName() != prev {
		e.emit(EngineEvent{Type: EventFigureSwitched, Figure: name})
	}
}

// Dispose tears the engine down. Further Update calls are no-ops. In-flight
// decodes are not cancelled; their results drain into the buffered channel
// and are dropped.
func (e *Engine) Dispose() {
	e.disposed = true
}

// Update runs one frame of the engine: applies finished loads, polls input,
// and advances the active figure. Implements ebiten.Game.
//
// The growth clock is wall-time based (inside the cloud), but the periodic
// motion clock advances by the fixed tick so pausing the loop pauses the
// sway instead of jumping it.
func (e *Engine) Update() error {
	if e.disposed {
		return nil
	}
	dt := 1.0 / float64(ebiten.TPS())

	e.applyFinishedLoads()
	e.pollInput()

	if e.fade != nil {
		v, done := e.fade.Update(float32(dt))
		e.fadeAlpha = float64(v)
		if done {
			e.fade = nil
		}
	}

	active := e.registry.Active()
	if active == nil {
		return nil
	}

	var start time.Time
	if globalDebug {
		start = time.Now()
	}
	active.Update(dt, e.tracker.State())
	if globalDebug {
		debugLog(debugStats{
			updateTime:    time.Since(start),
			particleCount: active.Cloud().Count(),
			visibleCount:  e.renderer.QuadCount(),
		})
	}
	return nil
}

// applyFinishedLoads drains the load channel and builds figures on the game
// loop, preserving the single-writer model.
func (e *Engine) applyFinishedLoads() {
	for {
		select {
		case res := <-e.loads:
			e.pending--
			if res.err != nil {
				debugf("figure %q load failed: %v", res.name, res.err)
				e.emit(EngineEvent{Type: EventFigureFailed, Figure: res.name, Err: res.err})
				continue
			}
			f, err := NewFigure(res.kind, res.img, e.cfg)
			if err != nil {
				debugf("figure %q build failed: %v", res.name, err)
				e.emit(EngineEvent{Type: EventFigureFailed, Figure: res.name, Err: err})
				continue
			}
			e.AddFigure(res.name, f)
		default:
			return
		}
	}
}

// pollInput feeds cursor movement to the tracker and binds the discrete
// triggers: space or left click starts growth, tab cycles figures.
func (e *Engine) pollInput() {
	mx, my := ebiten.CursorPosition()
	if mx != e.prevCursorX || my != e.prevCursorY {
		e.tracker.Move(float64(mx), float64(my))
		e.prevCursorX, e.prevCursorY = mx, my
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.TriggerGrowth()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		prev := e.registry.ActiveName()
		e.registry.Next()
		if e.registry.ActiveName() != prev {
			e.emit(EngineEvent{Type: EventFigureSwitched, Figure: e.registry.ActiveName()})
		}
	}
}

// Draw renders the active figure. Implements ebiten.Game. The update has
// fully completed by the time ebiten invokes Draw, so the renderer always
// reads a consistent buffer.
func (e *Engine) Draw(screen *ebiten.Image) {
	screen.Fill(e.ClearColor.toRGBA())

	active := e.registry.Active()
	if active == nil {
		return
	}
	cloud := active.Cloud()

	var start time.Time
	if globalDebug {
		start = time.Now()
	}
	if cloud.consumeDirty() || e.fade != nil {
		positions, opacities := cloud.Buffers()
		e.renderer.Prepare(positions, opacities, e.fadeAlpha)
	}
	e.renderer.Flush(screen)
	if globalDebug {
		debugLog(debugStats{
			submitTime:    time.Since(start),
			particleCount: cloud.Count(),
			visibleCount:  e.renderer.QuadCount(),
		})
	}

	if e.ShowStats {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nparticles: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), cloud.Count()))
	}
}

// Layout implements ebiten.Game, resizing the world mapping with the window.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.tracker.Resize(outsideWidth, outsideHeight)
	e.renderer.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// FigureSpec names one figure for Run. Either Image (already decoded) or
// Path (decoded asynchronously at startup) must be set.
type FigureSpec struct {
	Name  string
	Kind  FigureKind
	Image image.Image
	Path  string
}

// RunConfig configures the Run convenience entry point.
type RunConfig struct {
	Title         string
	Width, Height int
	Config        Config
	Figures       []FigureSpec
	ShowStats     bool
	Debug         bool
}

// Run creates a window, builds the requested figures, and drives the game
// loop until the window closes. Figures with a Path load asynchronously and
// pop in when ready; figures with an Image are built before the loop starts
// and their build errors abort Run.
func Run(rc RunConfig) error {
	if rc.Width <= 0 {
		rc.Width = 800
	}
	if rc.Height <= 0 {
		rc.Height = 600
	}
	if rc.Title == "" {
		rc.Title = "sylva"
	}
	SetDebug(rc.Debug)

	e := NewEngine(rc.Config, rc.Width, rc.Height)
	e.ShowStats = rc.ShowStats
	for _, fs := range rc.Figures {
		if fs.Image != nil {
			f, err := NewFigure(fs.Kind, fs.Image, rc.Config)
			if err != nil {
				return fmt.Errorf("sylva: build figure %q: %w", fs.Name, err)
			}
			e.AddFigure(fs.Name, f)
		} else {
			e.LoadFigure(fs.Name, fs.Kind, fs.Path)
		}
	}

	ebiten.SetWindowSize(rc.Width, rc.Height)
	ebiten.SetWindowTitle(rc.Title)
	return ebiten.RunGame(e)
}

// emit forwards an event to the sink, if one is attached.
func (e *Engine) emit(ev EngineEvent) {
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}
