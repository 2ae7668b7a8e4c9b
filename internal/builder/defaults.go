package builder

import (
	"maps"

	"github.com/jsvensson/themekit/internal/theme"
)

// FallbackDark is used as the dark value of a color group whose light value
// cannot be parsed.
const FallbackDark = "oklch(0.205 0 0)"

var defaultLight = map[string]string{
	"background":                 "oklch(1 0 0)",
	"foreground":                 "oklch(0.145 0 0)",
	"card":                       "oklch(1 0 0)",
	"card-foreground":            "oklch(0.145 0 0)",
	"popover":                    "oklch(1 0 0)",
	"popover-foreground":         "oklch(0.145 0 0)",
	"primary":                    "oklch(0.205 0 0)",
	"primary-foreground":         "oklch(0.985 0 0)",
	"secondary":                  "oklch(0.97 0 0)",
	"secondary-foreground":       "oklch(0.205 0 0)",
	"muted":                      "oklch(0.97 0 0)",
	"muted-foreground":           "oklch(0.556 0 0)",
	"accent":                     "oklch(0.97 0 0)",
	"accent-foreground":          "oklch(0.205 0 0)",
	"destructive":                "oklch(0.577 0.245 27.325)",
	"destructive-foreground":     "oklch(0.985 0 0)",
	"border":                     "oklch(0.922 0 0)",
	"input":                      "oklch(0.922 0 0)",
	"ring":                       "oklch(0.708 0 0)",
	"chart-1":                    "oklch(0.646 0.222 41.116)",
	"chart-2":                    "oklch(0.6 0.118 184.704)",
	"chart-3":                    "oklch(0.398 0.07 227.392)",
	"chart-4":                    "oklch(0.828 0.189 84.429)",
	"chart-5":                    "oklch(0.769 0.188 70.08)",
	"sidebar":                    "oklch(0.985 0 0)",
	"sidebar-foreground":         "oklch(0.145 0 0)",
	"sidebar-primary":            "oklch(0.205 0 0)",
	"sidebar-primary-foreground": "oklch(0.985 0 0)",
	"sidebar-accent":             "oklch(0.97 0 0)",
	"sidebar-accent-foreground":  "oklch(0.205 0 0)",
	"sidebar-border":             "oklch(0.922 0 0)",
	"sidebar-ring":               "oklch(0.708 0 0)",
}

var defaultDark = map[string]string{
	"background":                 "oklch(0.145 0 0)",
	"foreground":                 "oklch(0.985 0 0)",
	"card":                       "oklch(0.205 0 0)",
	"card-foreground":            "oklch(0.985 0 0)",
	"popover":                    "oklch(0.205 0 0)",
	"popover-foreground":         "oklch(0.985 0 0)",
	"primary":                    "oklch(0.922 0 0)",
	"primary-foreground":         "oklch(0.205 0 0)",
	"secondary":                  "oklch(0.269 0 0)",
	"secondary-foreground":       "oklch(0.985 0 0)",
	"muted":                      "oklch(0.269 0 0)",
	"muted-foreground":           "oklch(0.708 0 0)",
	"accent":                     "oklch(0.269 0 0)",
	"accent-foreground":          "oklch(0.985 0 0)",
	"destructive":                "oklch(0.704 0.191 22.216)",
	"destructive-foreground":     "oklch(0.985 0 0)",
	"border":                     "oklch(0.275 0 0)",
	"input":                      "oklch(0.325 0 0)",
	"ring":                       "oklch(0.556 0 0)",
	"chart-1":                    "oklch(0.488 0.243 264.376)",
	"chart-2":                    "oklch(0.696 0.17 162.48)",
	"chart-3":                    "oklch(0.769 0.188 70.08)",
	"chart-4":                    "oklch(0.627 0.265 303.9)",
	"chart-5":                    "oklch(0.645 0.246 16.439)",
	"sidebar":                    "oklch(0.205 0 0)",
	"sidebar-foreground":         "oklch(0.985 0 0)",
	"sidebar-primary":            "oklch(0.488 0.243 264.376)",
	"sidebar-primary-foreground": "oklch(0.985 0 0)",
	"sidebar-accent":             "oklch(0.269 0 0)",
	"sidebar-accent-foreground":  "oklch(0.985 0 0)",
	"sidebar-border":             "oklch(0.275 0 0)",
	"sidebar-ring":               "oklch(0.556 0 0)",
}

// Defaults returns the neutral default value of every required token for a
// mode. The returned map is a copy.
func Defaults(m theme.Mode) map[string]string {
	if m == theme.Dark {
		return maps.Clone(defaultDark)
	}
	return maps.Clone(defaultLight)
}

// DefaultValue returns the neutral default for one token, or "" for tokens
// outside the required vocabulary.
func DefaultValue(m theme.Mode, token string) string {
	if m == theme.Dark {
		return defaultDark[token]
	}
	return defaultLight[token]
}
