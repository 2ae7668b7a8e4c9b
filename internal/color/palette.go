package color

// PaletteSteps lists the scale steps of a generated palette, lightest first.
var PaletteSteps = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}

// Palette maps a scale step ("50".."950") to canonical color text.
type Palette map[string]string

// paletteRamp holds the target lightness and the chroma factor per step.
// Lightness strictly decreases along the ramp.
var paletteRamp = [...]struct {
	lightness float64
	chroma    float64
}{
	{0.971, 0.25},
	{0.936, 0.40},
	{0.885, 0.60},
	{0.808, 0.80},
	{0.704, 0.95},
	{0.637, 1.00},
	{0.577, 1.00},
	{0.505, 0.90},
	{0.444, 0.80},
	{0.396, 0.70},
	{0.258, 0.60},
}

// GeneratePalette builds an eleven step lightness ramp from the hue and
// chroma of base. Every step is gamut-clamped; clamping never touches
// lightness inside [0, 1], so the ramp stays strictly monotonic.
func GeneratePalette(base string) (Palette, error) {
	c, err := Parse(base)
	if err != nil {
		return nil, err
	}
	return GeneratePaletteFrom(c), nil
}

// GeneratePaletteFrom is GeneratePalette for an already parsed color.
func GeneratePaletteFrom(base OKLCH) Palette {
	p := make(Palette, len(PaletteSteps))
	for i, step := range PaletteSteps {
		ramp := paletteRamp[i]
		shade := EnsureInGamut(OKLCH{
			L: ramp.lightness,
			C: base.C * ramp.chroma,
			H: base.H,
		})
		p[step] = shade.String()
	}
	return p
}
