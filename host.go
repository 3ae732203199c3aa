package pointermask

// SourceStyle describes an element's declared visual source as resolved by
// the host: the image (or background-image) URL plus the CSS-like size and
// position declarations that control how it is painted into the element box.
type SourceStyle struct {
	// URL is the resolved source identifier. Also the identity used to
	// detect source changes and to de-duplicate decode work across elements.
	URL string

	// Size is a background-size-like declaration: "cover", "contain",
	// "auto", a length/percentage pair ("50% auto", "120px 80px"), or ""
	// which means "auto".
	Size string

	// Position is a background-position-like declaration built from the
	// keywords left/right/top/bottom/center, percentages, and pixel lengths.
	// "" means "0% 0%".
	Position string
}

// Element is the capability interface the engine consumes for every tracked
// UI element. Any host UI binding implements it; the engine holds a
// non-owning reference and never outlives the host's element.
//
// Implementations must be comparable (typically a pointer type): the element
// value itself is the registry key and the dispatch target for transition
// events.
//
// All methods are called from the single UI thread driving Engine.Update.
type Element interface {
	// Box returns the element's current screen-space box
	// (getBoundingClientRect-equivalent).
	Box() Rect

	// VisualSource returns the element's declared visual source. ok is false
	// when the element has no image or background-image, in which case it
	// cannot be registered.
	VisualSource() (style SourceStyle, ok bool)

	// TransformDecl returns the element's current transform declaration,
	// or "" / "none" when no transform is active. matrix(...) and
	// matrix3d(...) forms are understood directly; for functional forms
	// (rotate, scale, ...) the element should additionally implement
	// TransformNormalizer.
	TransformDecl() string

	// Interactivity returns the element's current interactivity mode.
	// Captured at registration so it can be restored later.
	Interactivity() Interactivity

	// SetInteractivity switches the element between capturing pointer events
	// and letting them pass through. The engine skips redundant writes.
	SetInteractivity(Interactivity)

	// DispatchTransition delivers an enter/leave transition event to the
	// element. Handlers may call back into the engine (including Unregister).
	DispatchTransition(TransitionEvent)
}

// TransformNormalizer is an optional extension of Element for hosts that can
// normalize arbitrary transform declarations (functional forms such as
// "rotate(30deg) scale(2)") into a computed 2D affine matrix, the way a
// browser's computed style does. When an element does not implement it,
// unrecognized declarations resolve to the identity matrix.
type TransformNormalizer interface {
	// NormalizeTransform returns the 2D affine matrix [a, b, c, d, tx, ty]
	// equivalent to the declaration. ok is false when the declaration cannot
	// be normalized.
	NormalizeTransform(decl string) (m [6]float64, ok bool)
}
