package color

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// gamutEpsilon absorbs floating point noise at the sRGB cube boundary,
// e.g. oklch(1 0 0) converting to 1.0000000002.
const gamutEpsilon = 1e-6

// RGB converts c to unclamped sRGB components. Values outside [0, 1]
// mean the color is not displayable in sRGB.
func (c OKLCH) RGB() (r, g, b float64) {
	col := colorful.OkLch(c.L, c.C, c.H)
	return col.R, col.G, col.B
}

// InGamut reports whether c converts to sRGB without clipping.
func (c OKLCH) InGamut() bool {
	r, g, b := c.RGB()
	return inUnit(r) && inUnit(g) && inUnit(b)
}

// Hex returns the sRGB hex form of c ("#rrggbb"), clipping out-of-gamut
// channels.
func (c OKLCH) Hex() string {
	return colorful.OkLch(c.L, c.C, c.H).Clamped().Hex()
}

// FromHex converts an sRGB hex string ("#rrggbb" or "#rgb") to OKLCH.
func FromHex(s string) (OKLCH, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return OKLCH{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	l, ch, h := col.OkLch()
	return fromLch(l, ch, h), nil
}

// FromRGB converts sRGB components in [0, 1] to OKLCH.
func FromRGB(r, g, b float64) OKLCH {
	l, ch, h := colorful.Color{R: r, G: g, B: b}.OkLch()
	return fromLch(l, ch, h)
}

// achromatic is the chroma below which a converted color is treated as gray.
// The hue of such a color is conversion noise, so it is zeroed.
const achromatic = 5e-5

func fromLch(l, ch, h float64) OKLCH {
	if ch < achromatic {
		return OKLCH{L: l}
	}
	return OKLCH{L: l, C: ch, H: normalizeHue(h)}
}

func inUnit(v float64) bool {
	return v >= -gamutEpsilon && v <= 1+gamutEpsilon
}
