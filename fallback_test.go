package pointermask

import (
	"math"
	"testing"
)

func TestFallbackAlphaCenterIsOpaque(t *testing.T) {
	if got := fallbackAlpha(50, 50, 100, 100); got != 1 {
		t.Errorf("center alpha = %v, want 1", got)
	}
	// Anywhere inside the disk of radius 0.35·min(w,h) is fully opaque.
	if got := fallbackAlpha(50+34.9, 50, 100, 100); got != 1 {
		t.Errorf("disk-edge alpha = %v, want 1", got)
	}
}

func TestFallbackAlphaCornersAreTransparent(t *testing.T) {
	for _, p := range [][2]float64{{0, 0}, {100, 0}, {0, 100}, {100, 100}} {
		if got := fallbackAlpha(p[0], p[1], 100, 100); got != 0 {
			t.Errorf("corner %v alpha = %v, want 0", p, got)
		}
	}
}

func TestFallbackAlphaLinearFalloff(t *testing.T) {
	// (50, 10) in a 100×100 box: distance 40 from center, disk radius 35,
	// corner distance 50√2.
	r0 := 35.0
	rMax := 50 * math.Sqrt2
	want := 1 - (40-r0)/(rMax-r0)

	assertNear(t, "falloff alpha", fallbackAlpha(50, 10, 100, 100), want)
}

func TestFallbackAlphaMonotonicAlongRay(t *testing.T) {
	prev := fallbackAlpha(50, 50, 100, 100)
	for x := 51.0; x <= 100; x++ {
		got := fallbackAlpha(x, 50, 100, 100)
		if got > prev {
			t.Fatalf("alpha rose from %v to %v at x=%v", prev, got, x)
		}
		prev = got
	}
}

func TestFallbackAlphaNonSquareBoxUsesShorterSide(t *testing.T) {
	// 200×50 box: disk radius 0.35·50 = 17.5, centered at (100, 25).
	if got := fallbackAlpha(100+17, 25, 200, 50); got != 1 {
		t.Errorf("inside-disk alpha = %v, want 1", got)
	}
	got := fallbackAlpha(100+18, 25, 200, 50)
	if got >= 1 || got <= 0 {
		t.Errorf("just-outside-disk alpha = %v, want in (0, 1)", got)
	}
}

func TestFallbackAlphaDeterministic(t *testing.T) {
	a := fallbackAlpha(37.5, 81.25, 123, 77)
	b := fallbackAlpha(37.5, 81.25, 123, 77)
	if a != b {
		t.Errorf("fallback not deterministic: %v vs %v", a, b)
	}
}
