package pointermask

import (
	"encoding/json"
	"fmt"
	"image"
)

// MaskRect is one run-length rectangle of an opaque region, in source pixel
// coordinates.
type MaskRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"w"`
	Height int `json:"h"`
}

// MaskData is a precomputed opacity mask: the set of rectangles covering
// every pixel whose (optionally blurred) alpha exceeded the build threshold.
// Produced by [BuildMask] or the maskgen tool, consumed via
// [RegisterOptions.Mask] in place of a sampling buffer.
type MaskData struct {
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Threshold float64    `json:"threshold"`
	Rects     []MaskRect `json:"rects"`
}

// LoadMaskData parses mask JSON as emitted by maskgen.
func LoadMaskData(jsonData []byte) (*MaskData, error) {
	var m MaskData
	if err := json.Unmarshal(jsonData, &m); err != nil {
		return nil, fmt.Errorf("pointermask: parse mask JSON: %w", err)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("pointermask: mask has non-positive dimensions %dx%d", m.Width, m.Height)
	}
	return &m, nil
}

// Contains reports whether the pixel (x, y) lies in an opaque rectangle.
func (m *MaskData) Contains(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	for _, r := range m.Rects {
		if y >= r.Y && y < r.Y+r.Height && x >= r.X && x < r.X+r.Width {
			return true
		}
	}
	return false
}

// BuildMask scans an image's alpha channel and emits run-length rectangles
// covering every pixel with alpha strictly greater than threshold (in [0,1]).
// Horizontal runs are built per row, then identical runs on consecutive rows
// are merged vertically.
func BuildMask(img image.Image, threshold float64) *MaskData {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := &MaskData{Width: w, Height: h, Threshold: clampThreshold(threshold)}

	// cutoff on the 16-bit alpha scale returned by Color.RGBA.
	cutoff := uint32(m.Threshold * 0xffff)

	// open maps a run's start X to its rect index, for vertical merging
	// against the previous row.
	var prev, cur map[int]int
	for y := 0; y < h; y++ {
		cur = nil
		runStart := -1
		for x := 0; x <= w; x++ {
			opaque := false
			if x < w {
				_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				opaque = a > cutoff
			}
			switch {
			case opaque && runStart < 0:
				runStart = x
			case !opaque && runStart >= 0:
				width := x - runStart
				if cur == nil {
					cur = make(map[int]int)
				}
				if i, ok := prev[runStart]; ok &&
					m.Rects[i].Width == width &&
					m.Rects[i].Y+m.Rects[i].Height == y {
					m.Rects[i].Height++
					cur[runStart] = i
				} else {
					m.Rects = append(m.Rects, MaskRect{X: runStart, Y: y, Width: width, Height: 1})
					cur[runStart] = len(m.Rects) - 1
				}
				runStart = -1
			}
		}
		prev = cur
	}
	return m
}
