package pointermask

import (
	"image"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// newBuffer creates a sampling buffer for a box of the given size. Zero or
// negative dimensions shrink to a 1×1 no-op surface so the entry stays
// structurally valid while never sampling opaque.
func newBuffer(w, h float64) *image.RGBA {
	iw := int(math.Round(w))
	ih := int(math.Round(h))
	if iw < 1 {
		iw = 1
	}
	if ih < 1 {
		ih = 1
	}
	return image.NewRGBA(image.Rect(0, 0, iw, ih))
}

// resolveSize computes the destination width/height for painting a source of
// native size (natW, natH) into a container of size (boxW, boxH) under a
// background-size-like declaration.
//
// Recognized forms: "cover", "contain", "auto" (and "auto auto"), and one- or
// two-token length/percentage values where percentages resolve against the
// container axis and "auto" on one axis is derived from the other via the
// source aspect ratio. natW and natH must be positive.
func resolveSize(size string, boxW, boxH, natW, natH float64) (dw, dh float64) {
	switch s := strings.TrimSpace(size); s {
	case "", "auto", "auto auto":
		return natW, natH
	case "cover":
		scale := math.Max(boxW/natW, boxH/natH)
		return natW * scale, natH * scale
	case "contain":
		scale := math.Min(boxW/natW, boxH/natH)
		return natW * scale, natH * scale
	default:
		toks := strings.Fields(s)
		wTok := toks[0]
		hTok := "auto"
		if len(toks) > 1 {
			hTok = toks[1]
		}
		dw, wAuto := sizeAxis(wTok, boxW)
		dh, hAuto := sizeAxis(hTok, boxH)
		switch {
		case wAuto && hAuto:
			return natW, natH
		case wAuto:
			return dh * (natW / natH), dh
		case hAuto:
			return dw, dw * (natH / natW)
		}
		return dw, dh
	}
}

// sizeAxis resolves one size token against a container axis.
// Unparseable tokens behave as "auto".
func sizeAxis(tok string, container float64) (v float64, auto bool) {
	if tok == "auto" {
		return 0, true
	}
	if p, ok := strings.CutSuffix(tok, "%"); ok {
		pct, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, true
		}
		return container * pct / 100, false
	}
	px, err := strconv.ParseFloat(strings.TrimSuffix(tok, "px"), 64)
	if err != nil {
		return 0, true
	}
	return px, false
}

// resolvePosition computes the destination offset for an item of size
// (itemW, itemH) within a container of size (boxW, boxH) under a
// background-position-like declaration.
//
// Keywords: left/top → 0, right/bottom → container−item,
// center → (container−item)/2. Percentages p% → (container−item)·p/100.
// Lengths are literal pixels. A single token positions the first axis and
// centers the other. "" means "0% 0%".
func resolvePosition(pos string, boxW, boxH, itemW, itemH float64) (dx, dy float64) {
	toks := strings.Fields(strings.TrimSpace(pos))
	xTok, yTok := "0%", "0%"
	switch len(toks) {
	case 0:
	case 1:
		xTok, yTok = toks[0], "center"
	default:
		xTok, yTok = toks[0], toks[1]
	}
	// Keyword order is free in CSS: "top left" means the same as "left top".
	if xTok == "top" || xTok == "bottom" || yTok == "left" || yTok == "right" {
		xTok, yTok = yTok, xTok
	}
	return positionAxis(xTok, boxW, itemW), positionAxis(yTok, boxH, itemH)
}

// positionAxis resolves one position token along a single axis.
// Unparseable tokens behave as 0.
func positionAxis(tok string, container, item float64) float64 {
	switch tok {
	case "left", "top":
		return 0
	case "right", "bottom":
		return container - item
	case "center":
		return (container - item) / 2
	}
	if p, ok := strings.CutSuffix(tok, "%"); ok {
		pct, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		return (container - item) * pct / 100
	}
	px, err := strconv.ParseFloat(strings.TrimSuffix(tok, "px"), 64)
	if err != nil {
		return 0
	}
	return px
}

// rasterize redraws an entry's sampling buffer from its decoded source,
// honoring the entry's size and position declarations. The buffer must
// already be sized to the element's current box (newBuffer).
//
// Preconditions: the source is decoded with positive native dimensions and
// the buffer is larger than the 1×1 no-op surface; otherwise the buffer is
// left blank. A failing draw (a source whose pixels cannot be read) leaves
// the buffer in its last valid state and flags the entry so sampling falls
// back to the geometric approximation.
func (ent *entry) rasterize() {
	if ent.src == nil || ent.natW <= 0 || ent.natH <= 0 {
		return
	}
	b := ent.buffer.Bounds()
	bw, bh := float64(b.Dx()), float64(b.Dy())
	if bw <= 1 && bh <= 1 {
		return
	}

	dw, dh := resolveSize(ent.sizeMode, bw, bh, float64(ent.natW), float64(ent.natH))
	dx, dy := resolvePosition(ent.posMode, bw, bh, dw, dh)

	// Probe readability before clearing so an unreadable source leaves the
	// buffer in its last valid state instead of blank.
	if !sourceReadable(ent.src) {
		ent.drawFailed = true
		return
	}
	clear(ent.buffer.Pix)
	if !drawScaled(ent.buffer, ent.src, dx, dy, dw, dh) {
		ent.drawFailed = true
	}
}

// sourceReadable reports whether the source's pixels can be read at all.
// Hosts model tainted/unreadable surfaces as images whose At panics.
func sourceReadable(src image.Image) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	b := src.Bounds()
	_ = src.At(b.Min.X, b.Min.Y)
	return true
}

// drawScaled draws the entire source scaled into (dx, dy, dw, dh) of dst.
// The scaler clips against dst bounds, so overflow (cover) simply crops.
// Reports false when reading the source's pixels panics.
func drawScaled(dst *image.RGBA, src image.Image, dx, dy, dw, dh float64) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	dr := image.Rect(
		int(math.Round(dx)), int(math.Round(dy)),
		int(math.Round(dx+dw)), int(math.Round(dy+dh)),
	)
	if dr.Empty() {
		return true
	}
	draw.ApproxBiLinear.Scale(dst, dr, src, src.Bounds(), draw.Src, nil)
	return true
}
