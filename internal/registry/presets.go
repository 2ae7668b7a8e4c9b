package registry

import (
	"github.com/jsvensson/themekit/internal/builder"
	"github.com/jsvensson/themekit/internal/theme"
)

// DefaultTheme is the preset used when no theme is selected.
const DefaultTheme = "neutral"

type preset struct {
	name       string
	primary    [2]string
	accent     string
	background [2]string
	charts     bool
}

var presets = []preset{
	{name: "neutral"},
	{
		name:       "zinc",
		primary:    [2]string{"oklch(0.21 0.006 285.885)", "oklch(0.92 0.004 286.32)"},
		background: [2]string{"oklch(1 0 0)", "oklch(0.141 0.005 285.823)"},
	},
	{
		name:       "slate",
		primary:    [2]string{"oklch(0.208 0.042 265.755)", "oklch(0.929 0.013 255.508)"},
		background: [2]string{"oklch(1 0 0)", "oklch(0.129 0.042 264.695)"},
	},
	{
		name:       "stone",
		primary:    [2]string{"oklch(0.216 0.006 56.043)", "oklch(0.923 0.003 48.717)"},
		background: [2]string{"oklch(1 0 0)", "oklch(0.147 0.004 49.25)"},
	},
	{
		name:    "rose",
		primary: [2]string{"oklch(0.645 0.246 16.439)", "oklch(0.645 0.246 16.439)"},
		accent:  "oklch(0.969 0.015 12.422)",
		charts:  true,
	},
	{
		name:    "orange",
		primary: [2]string{"oklch(0.705 0.213 47.604)", "oklch(0.646 0.222 41.116)"},
		accent:  "oklch(0.98 0.016 73.684)",
		charts:  true,
	},
	{
		name:    "green",
		primary: [2]string{"oklch(0.723 0.219 149.579)", "oklch(0.696 0.17 162.48)"},
		accent:  "oklch(0.982 0.018 155.826)",
		charts:  true,
	},
	{
		name:    "blue",
		primary: [2]string{"oklch(0.623 0.214 259.815)", "oklch(0.546 0.245 262.881)"},
		accent:  "oklch(0.97 0.014 254.604)",
		charts:  true,
	},
	{
		name:    "violet",
		primary: [2]string{"oklch(0.606 0.25 292.717)", "oklch(0.541 0.281 293.009)"},
		accent:  "oklch(0.969 0.016 293.756)",
		charts:  true,
	},
	{
		name:    "yellow",
		primary: [2]string{"oklch(0.795 0.184 86.047)", "oklch(0.795 0.184 86.047)"},
		accent:  "oklch(0.987 0.026 102.212)",
		charts:  true,
	},
}

// Presets builds the built-in themes in registration order. Each preset
// starts from the neutral defaults, so every preset is complete.
func Presets() []*theme.Config {
	out := make([]*theme.Config, 0, len(presets))
	for _, p := range presets {
		out = append(out, p.build())
	}
	return out
}

// PresetNames returns the names of the built-in themes.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.name
	}
	return names
}

func (p preset) build() *theme.Config {
	t := builder.New(p.name).
		WithTokens(builder.Defaults(theme.Light), builder.Defaults(theme.Dark))

	if p.background[0] != "" {
		t.WithBackgroundColors(p.background[0], p.background[1]).
			WithCardColors(p.background[0], p.background[1]).
			WithPopoverFromCard()
	}
	if p.primary[0] != "" {
		t.WithPrimaryColor(p.primary[0], p.primary[1])
	}
	if p.accent != "" {
		t.WithAccentColor(p.accent)
	}
	if p.charts {
		t.WithChartColors([]string{p.primary[0]}, []string{p.primary[1]})
	}
	return t.WithSidebarColors(builder.SidebarBackground).Build()
}
