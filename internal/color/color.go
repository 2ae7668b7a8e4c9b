package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// OKLCH is a color in the OKLCH space. L is lightness [0, 1], C is chroma
// (>= 0, commonly <= 0.4) and H is the hue angle in degrees [0, 360).
// A is only meaningful when HasAlpha is set.
type OKLCH struct {
	L, C, H  float64
	A        float64
	HasAlpha bool
}

// Neutral is the documented fallback for unparseable color text.
var Neutral = OKLCH{L: 0.5, C: 0, H: 0}

// ParseError reports color text that is not in the canonical oklch() form.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid oklch color %q: expected oklch(L C H) or oklch(L C H / A)", e.Input)
}

const number = `[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`

var oklchPattern = regexp.MustCompile(`(?i)^\s*oklch\(\s*(` + number + `)(%?)\s+(` + number + `)\s+(` + number + `)(deg)?\s*(?:/\s*(` + number + `)(%?)\s*)?\)\s*$`)

// Parse parses canonical color text like "oklch(0.7 0.2 300)" or
// "oklch(0.7 0.2 300 / 0.5)". Lightness and alpha may be percentages and the
// hue may carry a "deg" suffix. Out-of-range values are accepted as-is apart
// from the hue, which is normalized into [0, 360); EnsureInGamut repairs the rest.
func Parse(s string) (OKLCH, error) {
	m := oklchPattern.FindStringSubmatch(s)
	if m == nil {
		return OKLCH{}, &ParseError{Input: s}
	}

	l, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return OKLCH{}, &ParseError{Input: s}
	}
	if m[2] == "%" {
		l /= 100
	}
	c, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return OKLCH{}, &ParseError{Input: s}
	}
	h, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return OKLCH{}, &ParseError{Input: s}
	}

	out := OKLCH{L: l, C: c, H: normalizeHue(h)}
	if m[6] != "" {
		a, err := strconv.ParseFloat(m[6], 64)
		if err != nil {
			return OKLCH{}, &ParseError{Input: s}
		}
		if m[7] == "%" {
			a /= 100
		}
		out.A = a
		out.HasAlpha = true
	}
	return out, nil
}

// ParseOr parses s and returns fallback when s is not valid color text.
func ParseOr(s string, fallback OKLCH) OKLCH {
	c, err := Parse(s)
	if err != nil {
		return fallback
	}
	return c
}

// MustParse is like Parse but panics on invalid input. Intended for
// package-level constants.
func MustParse(s string) OKLCH {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsOKLCH reports whether s is valid canonical color text.
func IsOKLCH(s string) bool {
	return oklchPattern.MatchString(s)
}

// Format returns the canonical text form of c.
func Format(c OKLCH) string {
	return c.String()
}

// String returns the canonical text form, e.g. "oklch(0.7 0.2 300)".
func (c OKLCH) String() string {
	var b strings.Builder
	b.WriteString("oklch(")
	b.WriteString(formatNumber(c.L, 4))
	b.WriteByte(' ')
	b.WriteString(formatNumber(c.C, 4))
	b.WriteByte(' ')
	b.WriteString(formatNumber(canonicalHue(c.H), 2))
	if c.HasAlpha {
		b.WriteString(" / ")
		b.WriteString(formatNumber(c.A, 3))
	}
	b.WriteByte(')')
	return b.String()
}

// Alpha returns the opacity of c, 1 when no alpha was given.
func (c OKLCH) Alpha() float64 {
	if !c.HasAlpha {
		return 1
	}
	return c.A
}

func formatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// canonicalHue normalizes h and wraps values that round up to 360 at two
// decimals, so the printed hue stays in [0, 360).
func canonicalHue(h float64) float64 {
	h = normalizeHue(h)
	if math.Round(h*100)/100 >= 360 {
		return 0
	}
	return h
}

// normalizeHue maps any angle into [0, 360).
func normalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}
	return h
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
