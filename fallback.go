package pointermask

import "math"

// fallbackDiskRatio sizes the fully opaque disk of the geometric fallback:
// its diameter is 70% of the box's shorter side. The constant (and the
// linear falloff below) is a heuristic approximation, kept numerically
// stable for compatibility rather than derived from anything.
const fallbackDiskRatio = 0.35

// fallbackAlpha is the deterministic geometric approximation used when pixel
// sampling is unavailable (unreadable source, coordinates outside the
// buffer). The point (x, y) is box-relative. Inside the centered disk of
// radius fallbackDiskRatio·min(w, h) the alpha is 1; it falls off linearly
// to 0 at the box's corner distance.
func fallbackAlpha(x, y, w, h float64) float64 {
	cx, cy := w/2, h/2
	d := math.Hypot(x-cx, y-cy)

	r0 := fallbackDiskRatio * math.Min(w, h)
	rMax := math.Hypot(cx, cy)

	if d <= r0 {
		return 1
	}
	if d >= rMax || rMax <= r0 {
		return 0
	}
	return 1 - (d-r0)/(rMax-r0)
}
