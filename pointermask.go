package pointermask

import "log/slog"

// DefaultThreshold is the alpha threshold used when neither the engine
// configuration nor the registration options override it. Alpha values
// strictly greater than the threshold classify as opaque, so the default
// treats only fully opaque pixels (255) as interactive.
const DefaultThreshold = 0.999

// defaultCullMargin is the margin, in pixels, added around the viewport by
// CullToViewport when Config.CullMargin is zero.
const defaultCullMargin = 50.0

// Rect is an axis-aligned rectangle in screen coordinates. The coordinate
// system has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// expand returns r grown by margin on every side.
func (r Rect) expand(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Interactivity is an element's pointer-interactivity mode.
type Interactivity uint8

const (
	// InteractivityAuto means the element captures pointer events normally.
	InteractivityAuto Interactivity = iota
	// InteractivityNone means pointer events pass through the element to
	// whatever is stacked beneath it.
	InteractivityNone
)

// EventType identifies a kind of transition event.
type EventType uint8

const (
	// EventMaskEnter fires when the pixel under the pointer flips to opaque.
	EventMaskEnter EventType = iota
	// EventMaskLeave fires when the pixel under the pointer flips to
	// transparent, or when the pointer exits the element's bounds while the
	// last classification was opaque.
	EventMaskLeave
)

// SentinelCoord is the buffer coordinate carried by the leave event emitted
// when the pointer exits an element's bounds (no pixel was sampled).
const SentinelCoord = -1

// TransitionEvent is the payload dispatched to an element (and to engine-level
// callbacks) when its opacity classification under the pointer changes.
// Events are observational: they cannot be canceled and do not propagate.
type TransitionEvent struct {
	Type      EventType
	Element   Element
	Alpha     float64 // sampled alpha in [0, 1]; 0 on bounds-exit leave
	BufferX   int     // sampled buffer pixel, or SentinelCoord on bounds-exit
	BufferY   int
	Threshold float64 // threshold active for the element at dispatch time
}

// Config configures a new Engine. The zero value is usable: DefaultThreshold,
// culling enabled with the default margin, the built-in file/HTTP loader, and
// no log output.
type Config struct {
	// Threshold is the default alpha threshold for registered elements.
	// Values outside (0, 1] fall back to DefaultThreshold.
	Threshold float64

	// DisableCulling turns off visibility culling: CullToViewport becomes a
	// no-op and all entries stay eligible for hit-testing.
	DisableCulling bool

	// CullMargin is the margin in pixels added around the viewport passed to
	// CullToViewport. Zero selects the default (50); negative means none.
	CullMargin float64

	// Loader resolves visual-source identifiers to decoded images.
	// Nil selects the built-in loader (file paths and http(s) URLs).
	Loader Loader

	// Logger receives diagnostics. Nil disables logging entirely.
	Logger *slog.Logger
}
