// Package pointermask makes image-backed UI elements "alpha-mask aware":
// pointer interactions pass through their transparent pixels to whatever is
// stacked beneath them, while their visually opaque regions keep capturing
// input.
//
// The engine rasterizes each registered element's visual source into an
// off-screen sampling buffer sized to the element's box (honoring CSS-like
// size and position semantics), maps pointer coordinates through the box, any
// active 2D affine transform, and buffer space, samples the alpha channel at
// that point, and toggles the element's interactivity accordingly. Enter and
// leave transition events fire whenever the classification under the pointer
// flips.
//
// # Quick start
//
// Construct an [Engine], register elements, feed it pointer positions, and
// call [Engine.Update] once per rendering frame:
//
//	eng := pointermask.NewEngine(pointermask.Config{})
//	eng.Register(el, pointermask.RegisterOptions{})
//
//	// each frame:
//	eng.PointerMoved(x, y)
//	eng.Update()
//
// Pointer input is coalesced: any number of samples recorded within one frame
// result in a single hit-test pass using the latest sample. Elements are
// host-agnostic: any type implementing [Element] can be tracked. An
// Ebitengine binding is provided via [Engine.ReadEbitenPointer].
//
// # Transition events
//
// Elements receive [TransitionEvent] values through their DispatchTransition
// method when the pointer crosses between opaque and transparent regions.
// Engine-level callbacks can be attached with [Engine.OnEnter] and
// [Engine.OnLeave].
//
// # Precomputed masks
//
// For sources whose opaque region is known ahead of time, a run-length
// rectangle mask produced by the maskgen tool (cmd/maskgen) can be supplied
// via [RegisterOptions.Mask], skipping rasterization and sampling entirely.
package pointermask
