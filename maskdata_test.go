package pointermask

import "testing"

func TestBuildMaskMergesVerticalRuns(t *testing.T) {
	// An 8×4 image with an opaque block at x∈[2,4], y∈[1,2]: identical runs
	// on consecutive rows collapse to one rectangle.
	img := alphaImage(8, 4, func(x, y int) uint8 {
		if x >= 2 && x <= 4 && y >= 1 && y <= 2 {
			return 0xff
		}
		return 0
	})

	m := BuildMask(img, 0.5)

	if len(m.Rects) != 1 {
		t.Fatalf("rects = %v, want a single merged rect", m.Rects)
	}
	want := MaskRect{X: 2, Y: 1, Width: 3, Height: 2}
	if m.Rects[0] != want {
		t.Errorf("rect = %+v, want %+v", m.Rects[0], want)
	}
}

func TestBuildMaskDoesNotMergeMismatchedRuns(t *testing.T) {
	// Row 0 run is wider than row 1's: they must stay separate rectangles.
	img := alphaImage(8, 2, func(x, y int) uint8 {
		switch y {
		case 0:
			if x >= 1 && x <= 5 {
				return 0xff
			}
		case 1:
			if x >= 1 && x <= 3 {
				return 0xff
			}
		}
		return 0
	})

	m := BuildMask(img, 0.5)

	if len(m.Rects) != 2 {
		t.Fatalf("rects = %v, want 2 unmerged rects", m.Rects)
	}
}

func TestBuildMaskThresholdIsStrict(t *testing.T) {
	// Alpha byte 128 is exactly the 128/255 threshold on the 16-bit scale;
	// strictly-greater means it is excluded while 129 is included.
	img := alphaImage(2, 1, func(x, y int) uint8 {
		if x == 0 {
			return 128
		}
		return 129
	})

	m := BuildMask(img, 128.0/255.0)

	if m.Contains(0, 0) {
		t.Error("pixel at exactly the threshold counted as opaque")
	}
	if !m.Contains(1, 0) {
		t.Error("pixel just above the threshold not counted as opaque")
	}
}

func TestMaskContainsBounds(t *testing.T) {
	m := &MaskData{Width: 10, Height: 10, Rects: []MaskRect{{X: 0, Y: 0, Width: 10, Height: 10}}}

	for _, p := range [][2]int{{-1, 5}, {5, -1}, {10, 5}, {5, 10}} {
		if m.Contains(p[0], p[1]) {
			t.Errorf("Contains%v = true outside the mask bounds", p)
		}
	}
	if !m.Contains(0, 0) || !m.Contains(9, 9) {
		t.Error("in-bounds opaque pixel reported transparent")
	}
}

func TestLoadMaskData(t *testing.T) {
	m, err := LoadMaskData([]byte(`{"width":4,"height":2,"threshold":0.5,"rects":[{"x":1,"y":0,"w":2,"h":2}]}`))
	if err != nil {
		t.Fatalf("LoadMaskData: %v", err)
	}
	if m.Width != 4 || m.Height != 2 || len(m.Rects) != 1 {
		t.Errorf("mask = %+v", m)
	}
	if !m.Contains(2, 1) || m.Contains(0, 0) {
		t.Error("loaded mask answers wrong")
	}
}

func TestLoadMaskDataRejectsBadInput(t *testing.T) {
	if _, err := LoadMaskData([]byte(`not json`)); err == nil {
		t.Error("malformed JSON accepted")
	}
	if _, err := LoadMaskData([]byte(`{"width":0,"height":10}`)); err == nil {
		t.Error("non-positive dimensions accepted")
	}
}

func TestRegisterWithMaskSkipsLoading(t *testing.T) {
	// A precomputed mask needs no visual source and no decode round-trip:
	// the element hit-tests on the very next frame.
	mask := &MaskData{
		Width: 100, Height: 100,
		Rects: []MaskRect{{X: 0, Y: 0, Width: 50, Height: 100}},
	}
	el := &fakeElement{box: Rect{0, 0, 100, 100}}
	loader := &syncLoader{}
	eng := NewEngine(Config{Loader: loader})

	eng.Register(el, RegisterOptions{Mask: mask})

	if loader.loads != 0 {
		t.Errorf("loader invoked %d times for a masked element, want 0", loader.loads)
	}

	frame(eng, 25, 50)
	if el.inter != InteractivityAuto {
		t.Errorf("interactivity = %v over masked-opaque pixel, want InteractivityAuto", el.inter)
	}
	frame(eng, 75, 50)
	if el.inter != InteractivityNone {
		t.Errorf("interactivity = %v over masked-transparent pixel, want InteractivityNone", el.inter)
	}
}

func TestMaskScalesToElementBox(t *testing.T) {
	// Mask is 10×10 with the left half opaque; the element box is 100×100,
	// so mask lookups scale down by 10.
	mask := &MaskData{
		Width: 10, Height: 10,
		Rects: []MaskRect{{X: 0, Y: 0, Width: 5, Height: 10}},
	}
	el := &fakeElement{box: Rect{0, 0, 100, 100}}
	eng := NewEngine(Config{Loader: &syncLoader{}})
	eng.Register(el, RegisterOptions{Mask: mask})

	frame(eng, 25, 50)
	if el.inter != InteractivityAuto {
		t.Errorf("interactivity = %v at scaled-opaque point, want InteractivityAuto", el.inter)
	}
	frame(eng, 75, 50)
	if el.inter != InteractivityNone {
		t.Errorf("interactivity = %v at scaled-transparent point, want InteractivityNone", el.inter)
	}
}
