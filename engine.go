package pointermask

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"
)

// Engine is the per-frame pixel hit-testing engine. Construct one with
// NewEngine, register elements, feed it pointer samples, and call Update once
// per rendering frame from the host UI thread.
//
// All methods except loader completion delivery must be called from that
// single UI thread; no locking guards the registry.
type Engine struct {
	threshold   float64
	cullEnabled bool
	cullMargin  float64
	loader      Loader
	log         *slog.Logger

	registry map[Element]*entry
	snapshot []*entry // reused per-pass iteration buffer

	// Coalesced pointer sample: at most one hit-test pass per Update,
	// using the latest recorded position.
	sampleX, sampleY float64
	samplePending    bool

	// Loader completions, appended from loader goroutines and drained at
	// the start of Update on the UI thread.
	pendingMu sync.Mutex
	pending   []loadResult

	handlers handlerRegistry
}

type loadResult struct {
	el     Element
	source string
	img    image.Image
	err    error
}

// NewEngine creates an engine from cfg. Zero-value fields select defaults
// (see Config).
func NewEngine(cfg Config) *Engine {
	threshold := cfg.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	margin := cfg.CullMargin
	if margin == 0 {
		margin = defaultCullMargin
	} else if margin < 0 {
		margin = 0
	}
	loader := cfg.Loader
	if loader == nil {
		loader = fileHTTPLoader{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger()
	}
	return &Engine{
		threshold:   threshold,
		cullEnabled: !cfg.DisableCulling,
		cullMargin:  margin,
		loader:      loader,
		log:         logger,
		registry:    make(map[Element]*entry),
	}
}

// Update drains pending source-load completions, then runs at most one
// hit-test pass using the latest coalesced pointer sample. Call once per
// rendering frame.
func (e *Engine) Update() {
	e.drainLoads()
	if e.samplePending {
		e.samplePending = false
		e.hitTestPass(e.sampleX, e.sampleY)
	}
}

// Detach tears the engine down: every tracked element gets its original
// interactivity back and the registry is cleared entirely. The engine
// remains usable for new registrations.
func (e *Engine) Detach() {
	for _, ent := range e.registry {
		e.restoreInteractivity(ent)
	}
	clear(e.registry)
	e.samplePending = false
	e.pendingMu.Lock()
	e.pending = e.pending[:0]
	e.pendingMu.Unlock()
}

// --- Load completion plumbing ---

// enqueueLoad defers a loader completion to the UI thread. Safe to call from
// any goroutine.
func (e *Engine) enqueueLoad(el Element, source string, img image.Image, err error) {
	e.pendingMu.Lock()
	e.pending = append(e.pending, loadResult{el: el, source: source, img: img, err: err})
	e.pendingMu.Unlock()
}

func (e *Engine) drainLoads() {
	e.pendingMu.Lock()
	if len(e.pending) == 0 {
		e.pendingMu.Unlock()
		return
	}
	batch := append([]loadResult(nil), e.pending...)
	e.pending = e.pending[:0]
	e.pendingMu.Unlock()

	for _, r := range batch {
		ent, ok := e.registry[r.el]
		if !ok || ent.source != r.source {
			// Unregistered while loading, or the source changed underneath
			// the load. Stale completion, drop it.
			continue
		}
		if r.err != nil {
			// Fail-safe: an unloadable source must not keep blocking clicks.
			e.log.Warn("pointermask: source failed to load, unregistering",
				"source", r.source, "err", r.err)
			e.Unregister(r.el)
			continue
		}
		b := r.img.Bounds()
		if b.Dx() <= 0 || b.Dy() <= 0 {
			e.log.Warn("pointermask: source decoded to empty image, unregistering",
				"source", r.source)
			e.Unregister(r.el)
			continue
		}
		ent.src = r.img
		ent.natW, ent.natH = b.Dx(), b.Dy()
		ent.loaded = true
		ent.rasterize()
	}
}

// --- Hit-test pass ---

// hitTestPass evaluates every registered, visible, loaded entry against one
// pointer position. Iterates a stable snapshot so transition handlers may
// unregister elements mid-pass.
func (e *Engine) hitTestPass(x, y float64) {
	debug := e.log.Enabled(context.Background(), slog.LevelDebug)
	var start time.Time
	if debug {
		start = time.Now()
	}

	e.snapshot = e.snapshot[:0]
	for _, ent := range e.registry {
		e.snapshot = append(e.snapshot, ent)
	}

	tested, skipped := 0, 0
	for _, ent := range e.snapshot {
		if _, ok := e.registry[ent.el]; !ok {
			continue // removed by a handler earlier in this pass
		}
		if !ent.loaded || !ent.visible {
			skipped++
			continue
		}
		e.testEntry(ent, x, y)
		tested++
	}

	if debug {
		e.log.Debug("pointermask: hit pass",
			"x", x, "y", y, "tested", tested, "skipped", skipped,
			"took", time.Since(start))
	}
}

// testEntry runs the per-entry state machine:
//
//	Unset → Opaque ⇄ Transparent
//
// reset to Unset whenever the pointer exits box bounds. Any panic is
// isolated so one bad entry cannot stop the rest of the frame's pass.
func (e *Engine) testEntry(ent *entry, x, y float64) {
	defer func() {
		if r := recover(); r != nil {
			if !ent.panicLogged {
				e.log.Warn("pointermask: hit-test failure isolated",
					"source", ent.source, "err", fmt.Sprint(r))
				ent.panicLogged = true
			}
		}
	}()

	box := ent.el.Box()
	if box.Width <= 0 || box.Height <= 0 || !box.Contains(x, y) {
		e.restoreInteractivity(ent)
		if ent.lastOpaque == opaqueYes {
			e.dispatch(TransitionEvent{
				Type:      EventMaskLeave,
				Element:   ent.el,
				Alpha:     0,
				BufferX:   SentinelCoord,
				BufferY:   SentinelCoord,
				Threshold: ent.threshold,
			})
		}
		ent.lastOpaque = opaqueUnset
		return
	}

	// Box-relative coordinates; undo any active transform about the box
	// center before scaling into buffer space.
	bx, by := x-box.X, y-box.Y
	if decl := ent.el.TransformDecl(); decl != "" && decl != "none" {
		inv, ok := ent.cache.inverseFor(decl, box.Width, box.Height, normalizerFor(ent.el))
		if !ok {
			e.log.Debug("pointermask: unresolvable transform treated as identity",
				"transform", decl)
		}
		if !isIdentity(inv) {
			cx, cy := transformPoint(inv, bx-box.Width/2, by-box.Height/2)
			bx, by = cx+box.Width/2, cy+box.Height/2
		}
	}

	alpha, px, py, sampled := ent.sample(bx, by, box)
	if !sampled {
		alpha = fallbackAlpha(bx, by, box.Width, box.Height)
		px, py = int(bx), int(by)
		if !ent.failLogged {
			e.log.Debug("pointermask: pixel sampling unavailable, using geometric fallback",
				"source", ent.source)
			ent.failLogged = true
		}
	}

	state := opaqueNo
	if alpha > ent.threshold {
		state = opaqueYes
	}

	if state != ent.lastOpaque {
		typ := EventMaskLeave
		if state == opaqueYes {
			typ = EventMaskEnter
		}
		e.dispatch(TransitionEvent{
			Type:      typ,
			Element:   ent.el,
			Alpha:     alpha,
			BufferX:   px,
			BufferY:   py,
			Threshold: ent.threshold,
		})
		ent.lastOpaque = state
		if _, ok := e.registry[ent.el]; !ok {
			return // a handler unregistered the element mid-dispatch
		}
	}

	want := InteractivityNone
	if state == opaqueYes {
		want = InteractivityAuto
	}
	e.applyInteractivity(ent, want)
}

// sample reads the alpha at box-relative (bx, by), scaled into the entry's
// sampling space (precomputed mask or pixel buffer). ok is false when the
// coordinates fall outside that space or the buffer content is unreadable;
// the caller substitutes the geometric fallback.
func (ent *entry) sample(bx, by float64, box Rect) (alpha float64, px, py int, ok bool) {
	if ent.mask != nil {
		px = int(bx * float64(ent.mask.Width) / box.Width)
		py = int(by * float64(ent.mask.Height) / box.Height)
		if px < 0 || py < 0 || px >= ent.mask.Width || py >= ent.mask.Height {
			return 0, px, py, false
		}
		if ent.mask.Contains(px, py) {
			return 1, px, py, true
		}
		return 0, px, py, true
	}

	if ent.drawFailed || ent.buffer == nil {
		return 0, 0, 0, false
	}
	b := ent.buffer.Bounds()
	bw, bh := b.Dx(), b.Dy()
	px = int(bx * float64(bw) / box.Width)
	py = int(by * float64(bh) / box.Height)
	if px < 0 || py < 0 || px >= bw || py >= bh {
		return 0, px, py, false
	}
	i := ent.buffer.PixOffset(px, py)
	return float64(ent.buffer.Pix[i+3]) / 255, px, py, true
}

func normalizerFor(el Element) TransformNormalizer {
	n, _ := el.(TransformNormalizer)
	return n
}

// --- Interactivity writes ---

// applyInteractivity sets the element's interactivity, skipping the write if
// the engine already applied that mode (avoids redundant style churn).
func (e *Engine) applyInteractivity(ent *entry, v Interactivity) {
	if ent.forced && ent.applied == v {
		return
	}
	ent.el.SetInteractivity(v)
	ent.applied = v
	ent.forced = true
}

// restoreInteractivity puts the element's pre-registration mode back, if the
// engine currently overrides it.
func (e *Engine) restoreInteractivity(ent *entry) {
	if !ent.forced {
		return
	}
	ent.el.SetInteractivity(ent.original)
	ent.forced = false
}

// --- Lifecycle triggers ---

// ElementResized reacts to a box-size change: the sampling buffer is
// recreated at the new dimensions, redrawn from the retained decoded source,
// and the transform cache is invalidated. Hosts wire their resize observer
// to this.
func (e *Engine) ElementResized(el Element) {
	ent, ok := e.registry[el]
	if !ok {
		return
	}
	box := el.Box()
	ent.buffer = newBuffer(box.Width, box.Height)
	ent.cache.invalidate()
	ent.drawFailed = false
	if ent.loaded {
		ent.rasterize()
	}
}

// ElementStyleChanged reacts to a style/attribute mutation: the transform
// cache is dropped, size/position declarations are re-read, and a changed
// source identifier triggers a fresh load (the element is pass-through again
// until it settles). An element whose source disappeared is unregistered.
func (e *Engine) ElementStyleChanged(el Element) {
	ent, ok := e.registry[el]
	if !ok {
		return
	}
	ent.cache.invalidate()

	if ent.mask != nil {
		return // precomputed masks don't track style
	}

	style, hasSource := el.VisualSource()
	if !hasSource {
		e.log.Debug("pointermask: source removed, unregistering")
		e.Unregister(el)
		return
	}
	ent.sizeMode = style.Size
	ent.posMode = style.Position

	if style.URL != ent.source {
		ent.source = style.URL
		ent.loaded = false
		ent.src = nil
		ent.drawFailed = false
		ent.failLogged = false
		ent.lastOpaque = opaqueUnset
		e.applyInteractivity(ent, InteractivityNone)
		e.loader.Load(ent.source, func(img image.Image, err error) {
			e.enqueueLoad(el, style.URL, img, err)
		})
		return
	}
	if ent.loaded {
		ent.rasterize()
	}
}

// SetElementVisible flags an element as (in)visible for culling. Invisible
// elements are excluded from hit-testing and get their original
// interactivity back. Hosts wire their intersection observer to this.
func (e *Engine) SetElementVisible(el Element, visible bool) {
	ent, ok := e.registry[el]
	if !ok {
		return
	}
	e.setEntryVisible(ent, visible)
}

func (e *Engine) setEntryVisible(ent *entry, visible bool) {
	if ent.visible == visible {
		return
	}
	ent.visible = visible
	if !visible {
		e.restoreInteractivity(ent)
		ent.lastOpaque = opaqueUnset
	}
}

// CullToViewport updates every entry's visibility from its box's
// intersection with the viewport, expanded by the configured cull margin.
// No-op when culling is disabled.
func (e *Engine) CullToViewport(viewport Rect) {
	if !e.cullEnabled {
		return
	}
	vp := viewport.expand(e.cullMargin)
	for _, ent := range e.registry {
		e.setEntryVisible(ent, ent.el.Box().Intersects(vp))
	}
}

// --- Engine-level transition callbacks ---

type transitionHandler struct {
	id uint32
	fn func(TransitionEvent)
}

type handlerRegistry struct {
	enter  []transitionHandler
	leave  []transitionHandler
	nextID uint32
}

// CallbackHandle allows removing a registered engine-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventMaskEnter:
		h.reg.enter = removeTransitionHandler(h.reg.enter, h.id)
	case EventMaskLeave:
		h.reg.leave = removeTransitionHandler(h.reg.leave, h.id)
	}
}

func removeTransitionHandler(s []transitionHandler, id uint32) []transitionHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = transitionHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnEnter registers an engine-level callback fired for every enter
// transition, before the element's own dispatch.
func (e *Engine) OnEnter(fn func(TransitionEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.enter = append(e.handlers.enter, transitionHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventMaskEnter}
}

// OnLeave registers an engine-level callback fired for every leave
// transition, before the element's own dispatch.
func (e *Engine) OnLeave(fn func(TransitionEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.leave = append(e.handlers.leave, transitionHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventMaskLeave}
}

// dispatch fires engine-level handlers first, then the element's own
// transition dispatch.
func (e *Engine) dispatch(ev TransitionEvent) {
	handlers := e.handlers.enter
	if ev.Type == EventMaskLeave {
		handlers = e.handlers.leave
	}
	for _, h := range handlers {
		h.fn(ev)
	}
	ev.Element.DispatchTransition(ev)
}
