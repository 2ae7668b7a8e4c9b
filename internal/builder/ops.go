package builder

import (
	"maps"

	"github.com/jsvensson/themekit/internal/color"
	"github.com/jsvensson/themekit/internal/theme"
)

// ringDelta is the lightness shift from border to ring: darker in light
// mode, lighter in dark mode.
const ringDelta = 0.1

// chartHueStep is the hue rotation between generated chart colors.
const chartHueStep = 72.0

// WithPrimaryColor sets primary and primary-foreground.
func WithPrimaryColor(light string, dark ...string) Op {
	return colorGroup("primary", "primary-foreground", light, dark)
}

// WithSecondaryColor sets secondary and secondary-foreground.
func WithSecondaryColor(light string, dark ...string) Op {
	return colorGroup("secondary", "secondary-foreground", light, dark)
}

// WithAccentColor sets accent and accent-foreground.
func WithAccentColor(light string, dark ...string) Op {
	return colorGroup("accent", "accent-foreground", light, dark)
}

// WithMutedColor sets muted and muted-foreground.
func WithMutedColor(light string, dark ...string) Op {
	return colorGroup("muted", "muted-foreground", light, dark)
}

// WithBackgroundColors sets background and foreground.
func WithBackgroundColors(light string, dark ...string) Op {
	return colorGroup("background", "foreground", light, dark)
}

// WithCardColors sets card and card-foreground.
func WithCardColors(light string, dark ...string) Op {
	return colorGroup("card", "card-foreground", light, dark)
}

// WithDestructiveColor sets destructive and destructive-foreground.
func WithDestructiveColor(light string, dark ...string) Op {
	return colorGroup("destructive", "destructive-foreground", light, dark)
}

// WithPopoverColors sets popover and popover-foreground.
func WithPopoverColors(light string, dark ...string) Op {
	return colorGroup("popover", "popover-foreground", light, dark)
}

// WithPopoverFromCard makes popover mirror the card tokens in both modes.
func WithPopoverFromCard() Op {
	return func(s State) State {
		s = s.Clone()
		for _, m := range theme.Modes {
			mirrorCard(s, m)
		}
		return s
	}
}

// WithBorderColors sets border, input and ring. Input equals border; ring is
// border darkened in light mode and lightened in dark mode.
func WithBorderColors(light string, dark ...string) Op {
	return func(s State) State {
		s = s.Clone()
		s.Light["border"] = light
		s.Light["input"] = light
		s.Light["ring"] = shiftLightness(light, -ringDelta)

		d := darkVariant(light, dark)
		s.Dark["border"] = d
		s.Dark["input"] = d
		s.Dark["ring"] = shiftLightness(d, ringDelta)
		return s
	}
}

// WithChartColors sets chart-1 through chart-5. When fewer than five colors
// are given, the remaining slots rotate the hue of the last given color in
// 72 degree steps. Dark mode reuses the light series unless dark is given.
func WithChartColors(light []string, dark []string) Op {
	return func(s State) State {
		if len(light) == 0 {
			return s
		}
		s = s.Clone()
		lightSeries := chartSeries(light)
		darkSeries := lightSeries
		if len(dark) > 0 {
			darkSeries = chartSeries(dark)
		}
		for i, token := range theme.ChartTokens {
			s.Light[token] = lightSeries[i]
			s.Dark[token] = darkSeries[i]
		}
		return s
	}
}

// WithComponentOverrides merges per-component overrides into the state.
// Existing components are kept; for a component present in overrides, its
// keys are merged into the existing keys with the new values winning.
func WithComponentOverrides(overrides map[string]map[string]string) Op {
	return func(s State) State {
		s = s.Clone()
		for name, keys := range overrides {
			existing, ok := s.Components[name]
			if !ok {
				existing = make(map[string]string, len(keys))
				s.Components[name] = existing
			}
			maps.Copy(existing, keys)
		}
		return s
	}
}

// WithTokens writes token values verbatim, without any derivation. It is the
// way to set enhanced tokens such as icon-primary or border-subtle.
func WithTokens(light, dark map[string]string) Op {
	return func(s State) State {
		s = s.Clone()
		maps.Copy(s.Light, light)
		maps.Copy(s.Dark, dark)
		return s
	}
}

// colorGroup implements the shared policy for single-color groups: the light
// value is stored verbatim with a contrasting foreground; the dark value is
// the explicit one when given, else the inverted light value.
func colorGroup(token, fgToken, light string, dark []string) Op {
	return func(s State) State {
		s = s.Clone()
		s.Light[token] = light
		s.Light[fgToken] = foregroundFor(light)

		d := darkVariant(light, dark)
		s.Dark[token] = d
		s.Dark[fgToken] = foregroundFor(d)
		return s
	}
}

func darkVariant(light string, dark []string) string {
	if len(dark) > 0 && dark[0] != "" {
		return dark[0]
	}
	c, err := color.Parse(light)
	if err != nil {
		log.Debugf("cannot derive dark value from %q, using %s", light, FallbackDark)
		return FallbackDark
	}
	return color.EnsureInGamut(color.InvertForDarkMode(c)).String()
}

func foregroundFor(background string) string {
	return color.ContrastingColor(color.ParseOr(background, color.Neutral)).String()
}

func shiftLightness(v string, delta float64) string {
	c, err := color.Parse(v)
	if err != nil {
		return v
	}
	return color.AdjustLightness(c, delta).String()
}

func chartSeries(colors []string) []string {
	series := make([]string, len(theme.ChartTokens))
	n := copy(series, colors)
	if n == len(series) {
		return series
	}
	last := colors[n-1]
	base, err := color.Parse(last)
	for i := n; i < len(series); i++ {
		if err != nil {
			series[i] = last
			continue
		}
		series[i] = color.RotateHue(base, chartHueStep*float64(i-n+1)).String()
	}
	return series
}

func mirrorCard(s State, m theme.Mode) {
	tokens := s.Tokens(m)
	tokens["popover"] = s.lookup(m, "card")
	tokens["popover-foreground"] = s.lookup(m, "card-foreground")
}
