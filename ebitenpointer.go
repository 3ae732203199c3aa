package pointermask

import "github.com/hajimehoshi/ebiten/v2"

// touchBuf is reused across frames to avoid per-frame allocation.
// Package-level is fine: pointer reads happen on the single UI thread.
var touchBuf []ebiten.TouchID

// PrimaryPointerPosition returns the current primary pointer position in
// screen coordinates: the primary touch contact (lowest active touch ID)
// when any touches are active, otherwise the mouse cursor.
func PrimaryPointerPosition() (x, y float64) {
	touchBuf = ebiten.AppendTouchIDs(touchBuf[:0])
	if len(touchBuf) > 0 {
		primary := touchBuf[0]
		for _, id := range touchBuf[1:] {
			if id < primary {
				primary = id
			}
		}
		tx, ty := ebiten.TouchPosition(primary)
		return float64(tx), float64(ty)
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my)
}

// ReadEbitenPointer feeds the current primary pointer position into the
// coalescer. Call once per frame from your ebiten Update, before
// Engine.Update:
//
//	func (g *Game) Update() error {
//		g.eng.ReadEbitenPointer()
//		g.eng.Update()
//		return nil
//	}
func (e *Engine) ReadEbitenPointer() {
	x, y := PrimaryPointerPosition()
	e.PointerMoved(x, y)
}
