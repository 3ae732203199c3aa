package pointermask

// PointerMoved records a pointer position in screen coordinates. Samples are
// coalesced: any number of calls between two Updates result in a single
// hit-test pass using the last position, so the engine is frame-rate-bound,
// not event-rate-bound. Superseded samples are simply never tested.
func (e *Engine) PointerMoved(x, y float64) {
	e.sampleX, e.sampleY = x, y
	e.samplePending = true
}

// PointerDown records a press position. Presses feed the same coalescer as
// moves: what matters for pass-through correctness is the classification at
// the frame's final pointer position, not the input kind.
func (e *Engine) PointerDown(x, y float64) {
	e.PointerMoved(x, y)
}
