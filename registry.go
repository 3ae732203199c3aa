package pointermask

import "image"

// opaqueState is the tri-state last observed opacity classification.
// Unset after registration and whenever the pointer leaves element bounds.
type opaqueState uint8

const (
	opaqueUnset opaqueState = iota
	opaqueYes
	opaqueNo
)

// entry is the per-element registry state. Each entry exclusively owns its
// sampling buffer; nothing is shared across entries except the read-only
// decoded source cache.
type entry struct {
	el       Element
	source   string // resolved source identifier (change detection key)
	sizeMode string
	posMode  string

	buffer *image.RGBA // element-box-sized sampling surface
	src    image.Image // retained decoded source, for re-rasterize on resize
	natW   int
	natH   int

	threshold float64
	original  Interactivity // interactivity before registration
	applied   Interactivity // last mode written by the engine
	forced    bool          // engine currently overrides the element

	visible    bool
	loaded     bool
	lastOpaque opaqueState

	cache transformCache

	mask *MaskData // precomputed mask; replaces buffer sampling when set

	drawFailed  bool // buffer content unreadable; use geometric fallback
	failLogged  bool // sampling fallback logged once already
	panicLogged bool // hit-test panic logged once already
}

// RegisterOptions customizes one registration. The zero value inherits the
// engine defaults.
type RegisterOptions struct {
	// Threshold overrides the engine's default alpha threshold for this
	// element. Zero inherits the default; values are clamped to [0, 1].
	Threshold float64

	// Mask supplies a precomputed opacity mask. The element's source is
	// neither loaded nor rasterized; sampling tests the mask instead.
	Mask *MaskData
}

// clampThreshold clamps a threshold into [0, 1]. Invalid input is never
// rejected, only clamped.
func clampThreshold(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Register begins tracking an element. No-op if el is nil or already
// tracked. Registration requires a declared visual source (or a precomputed
// mask); without one it no-ops with a diagnostic. The element is forced
// pass-through until its source finishes loading, so a still-loading image
// never captures clicks it might not deserve.
func (e *Engine) Register(el Element, opts RegisterOptions) {
	if el == nil {
		return
	}
	if _, ok := e.registry[el]; ok {
		return
	}

	style, hasSource := el.VisualSource()
	if !hasSource && opts.Mask == nil {
		e.log.Warn("pointermask: element has no image or background source, not registering")
		return
	}

	threshold := e.threshold
	if opts.Threshold != 0 {
		threshold = clampThreshold(opts.Threshold)
	}

	ent := &entry{
		el:        el,
		source:    style.URL,
		sizeMode:  style.Size,
		posMode:   style.Position,
		threshold: threshold,
		original:  el.Interactivity(),
		visible:   true,
		mask:      opts.Mask,
	}
	box := el.Box()
	ent.buffer = newBuffer(box.Width, box.Height)
	e.registry[el] = ent

	// Pass-through until the source is known opaque somewhere.
	e.applyInteractivity(ent, InteractivityNone)

	if ent.mask != nil {
		ent.loaded = true
		return
	}

	if f := Classify(ent.source); !f.Known {
		e.log.Debug("pointermask: unrecognized source format", "source", ent.source)
	} else if f.Alpha == AlphaNone {
		e.log.Debug("pointermask: source format carries no alpha channel",
			"source", ent.source, "format", f.Extension)
	}

	source := ent.source
	e.loader.Load(source, func(img image.Image, err error) {
		e.enqueueLoad(el, source, img, err)
	})
}

// Unregister stops tracking an element, restoring the interactivity it had
// before registration. No-op if the element is not tracked. An in-flight
// source load is not canceled; its completion finds no entry and is dropped.
func (e *Engine) Unregister(el Element) {
	ent, ok := e.registry[el]
	if !ok {
		return
	}
	e.restoreInteractivity(ent)
	delete(e.registry, el)
}

// SetThreshold updates the engine's default alpha threshold and the
// threshold of every currently tracked element. The value is clamped
// to [0, 1].
func (e *Engine) SetThreshold(v float64) {
	v = clampThreshold(v)
	e.threshold = v
	for _, ent := range e.registry {
		ent.threshold = v
	}
}

// SetElementThreshold updates one tracked element's threshold, clamped to
// [0, 1]. No-op if the element is not tracked.
func (e *Engine) SetElementThreshold(el Element, v float64) {
	if ent, ok := e.registry[el]; ok {
		ent.threshold = clampThreshold(v)
	}
}

// Threshold returns the engine's current default alpha threshold.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Tracked reports whether el is currently registered.
func (e *Engine) Tracked(el Element) bool {
	_, ok := e.registry[el]
	return ok
}

// Len returns the number of tracked elements.
func (e *Engine) Len() int {
	return len(e.registry)
}
