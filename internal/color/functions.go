package color

import "math"

// Transform is a unary color transform.
type Transform func(OKLCH) OKLCH

// MaxChroma bounds chroma before the sRGB gamut search.
const MaxChroma = 0.4

// ContrastThreshold is the lightness above which ContrastingColor picks a
// dark foreground.
const ContrastThreshold = 0.6

var (
	// NearBlack is the foreground used on light backgrounds.
	NearBlack = OKLCH{L: 0.145, C: 0, H: 0}
	// NearWhite is the foreground used on dark backgrounds.
	NearWhite = OKLCH{L: 0.985, C: 0, H: 0}
)

// AdjustLightness shifts lightness by delta, clamped to [0, 1].
// Chroma and hue are unchanged, so no gamut pass is applied.
func AdjustLightness(c OKLCH, delta float64) OKLCH {
	c.L = clamp(c.L+delta, 0, 1)
	return c
}

// AdjustChroma shifts chroma by delta; chroma never goes below zero.
func AdjustChroma(c OKLCH, delta float64) OKLCH {
	c.C = math.Max(0, c.C+delta)
	return c
}

// RotateHue rotates the hue by degrees, wrapping into [0, 360).
func RotateHue(c OKLCH, degrees float64) OKLCH {
	c.H = normalizeHue(c.H + degrees)
	return c
}

// InvertForDarkMode mirrors lightness (L' = 1 - L). This is an approximation
// used only when no explicit dark value is supplied.
func InvertForDarkMode(c OKLCH) OKLCH {
	c.L = clamp(1-c.L, 0, 1)
	return c
}

// ContrastingColor returns a near-black color for light backgrounds and a
// near-white color otherwise.
func ContrastingColor(background OKLCH) OKLCH {
	if background.L > ContrastThreshold {
		return NearBlack
	}
	return NearWhite
}

// EnsureInGamut clamps lightness and alpha, normalizes the hue and lowers
// chroma until the color converts to sRGB without clipping. Hue is preserved.
func EnsureInGamut(c OKLCH) OKLCH {
	c.L = clamp(c.L, 0, 1)
	c.H = normalizeHue(c.H)
	c.C = clamp(c.C, 0, MaxChroma)
	if c.HasAlpha {
		c.A = clamp(c.A, 0, 1)
	}
	if c.InGamut() {
		return c
	}

	lo, hi := 0.0, c.C
	for range 32 {
		mid := (lo + hi) / 2
		probe := c
		probe.C = mid
		if probe.InGamut() {
			lo = mid
		} else {
			hi = mid
		}
	}
	c.C = lo
	return c
}

// Compose chains transforms left to right.
func Compose(fns ...Transform) Transform {
	return func(c OKLCH) OKLCH {
		for _, fn := range fns {
			c = fn(c)
		}
		return c
	}
}

// Transformer lifts a color transform to operate on canonical color text.
func Transformer(fn Transform) func(string) (string, error) {
	return func(s string) (string, error) {
		c, err := Parse(s)
		if err != nil {
			return "", err
		}
		return fn(c).String(), nil
	}
}

// MustTransformer is Transformer with parse failures replaced by Neutral.
func MustTransformer(fn Transform) func(string) string {
	return func(s string) string {
		return fn(ParseOr(s, Neutral)).String()
	}
}

// Lighten returns a Transform that raises lightness by delta.
func Lighten(delta float64) Transform {
	return func(c OKLCH) OKLCH { return AdjustLightness(c, delta) }
}

// Darken returns a Transform that lowers lightness by delta.
func Darken(delta float64) Transform {
	return func(c OKLCH) OKLCH { return AdjustLightness(c, -delta) }
}

// Saturate returns a Transform that adds chroma and gamut-clamps the result.
func Saturate(delta float64) Transform {
	return func(c OKLCH) OKLCH { return EnsureInGamut(AdjustChroma(c, delta)) }
}

// Rotate returns a Transform that rotates the hue.
func Rotate(degrees float64) Transform {
	return func(c OKLCH) OKLCH { return RotateHue(c, degrees) }
}
