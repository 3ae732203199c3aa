package pointermask

import (
	"strconv"
	"strings"
)

// identityMatrix is the identity affine matrix.
var identityMatrix = [6]float64{1, 0, 0, 1, 0, 0}

// Affine matrices use the layout [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |

// invertAffine computes the inverse of a 2D affine matrix.
// A near-singular matrix (|det| < 1e-10) inverts to the identity matrix
// rather than a numerically unstable inverse.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-10 && det < 1e-10 {
		return identityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// isIdentity reports whether m is exactly the identity matrix.
func isIdentity(m [6]float64) bool {
	return m == identityMatrix
}

// ParseTransform resolves a transform declaration into a 2D affine matrix.
//
// "" and "none" are the identity fast-path. "matrix(a,b,c,d,e,f)" parses
// directly. "matrix3d(...)" is down-projected by keeping only the
// 2D-contributing terms (m11, m12, m21, m22, m41, m42), an approximation
// with known accuracy gaps for scenes that genuinely use the third axis.
// Any other form is handed to the normalizer (the host's computed-matrix
// equivalent); without one, ok is false and the identity is returned.
func ParseTransform(decl string, n TransformNormalizer) (m [6]float64, ok bool) {
	decl = strings.TrimSpace(decl)
	if decl == "" || decl == "none" {
		return identityMatrix, true
	}

	switch {
	case strings.HasPrefix(decl, "matrix3d(") && strings.HasSuffix(decl, ")"):
		vals, err := parseFloatList(decl[len("matrix3d(") : len(decl)-1])
		if err != nil || len(vals) != 16 {
			return identityMatrix, false
		}
		return [6]float64{vals[0], vals[1], vals[4], vals[5], vals[12], vals[13]}, true

	case strings.HasPrefix(decl, "matrix(") && strings.HasSuffix(decl, ")"):
		vals, err := parseFloatList(decl[len("matrix(") : len(decl)-1])
		if err != nil || len(vals) != 6 {
			return identityMatrix, false
		}
		return [6]float64{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]}, true
	}

	if n != nil {
		if m, ok := n.NormalizeTransform(decl); ok {
			return m, true
		}
	}
	return identityMatrix, false
}

// parseFloatList parses a comma- or whitespace-separated list of floats.
func parseFloatList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// transformCache memoizes one inverted transform per entry, keyed by the
// declaration string and the element's box size. A changed transform
// attribute or box size misses the cache and recomputes.
type transformCache struct {
	decl  string
	w, h  float64
	inv   [6]float64
	valid bool
}

// inverseFor returns the cached inverse matrix for decl at the given box
// size, computing and caching it on miss.
func (c *transformCache) inverseFor(decl string, w, h float64, n TransformNormalizer) ([6]float64, bool) {
	if c.valid && c.decl == decl && c.w == w && c.h == h {
		return c.inv, true
	}
	m, ok := ParseTransform(decl, n)
	c.decl, c.w, c.h = decl, w, h
	c.inv = invertAffine(m)
	c.valid = true
	return c.inv, ok
}

// invalidate clears the cache. Called on transform or box-size change.
func (c *transformCache) invalidate() {
	c.valid = false
}
