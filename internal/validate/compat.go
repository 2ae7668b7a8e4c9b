package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jsvensson/themekit/internal/color"
	"github.com/jsvensson/themekit/internal/theme"
)

// Compat is the outcome of Compatibility.
type Compat struct {
	Compatible bool
	Issues     []string
}

var (
	kebabCase    = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
	hexColor     = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	colorFunc    = regexp.MustCompile(`(?i)^(rgba?|hsla?|hwb|lab|lch|oklab|color|color-mix)\(.+\)$`)
	varReference = regexp.MustCompile(`^var\(\s*--[a-zA-Z0-9_-]+\s*(,.*)?\)$`)
)

var colorKeywords = map[string]bool{
	"transparent":  true,
	"currentcolor": true,
	"inherit":      true,
	"black":        true,
	"white":        true,
}

// Compatibility checks a theme against the token naming contract consumed by
// the component layer. On top of the presence check done by Theme it reports
// token and override keys that are not kebab-case, foreground tokens without
// their base token, tokens defined in only one mode and values that are not
// recognizable CSS colors.
func Compatibility(cfg *theme.Config) Compat {
	var issues []string
	for _, m := range theme.Modes {
		for _, token := range Missing(cfg, m) {
			issues = append(issues, fmt.Sprintf("missing required %s token %q", m, token))
		}
	}

	for _, m := range theme.Modes {
		tokens := cfg.Tokens(m)
		other := cfg.Tokens(otherMode(m))
		for _, name := range tokens.Names() {
			if !kebabCase.MatchString(name) {
				issues = append(issues, fmt.Sprintf("%s token %q is not kebab-case", m, name))
			}
			if base, ok := strings.CutSuffix(name, "-foreground"); ok && base != "" && !tokens.Has(base) && !isStandaloneForeground(name) {
				issues = append(issues, fmt.Sprintf("%s token %q has no matching %q token", m, name, base))
			}
			if !other.Has(name) {
				issues = append(issues, fmt.Sprintf("token %q is defined in %s mode but not in %s mode", name, m, otherMode(m)))
			}
			if v := tokens.Value(name); !IsCSSColor(v) {
				issues = append(issues, fmt.Sprintf("%s token %q has unrecognized color value %q", m, name, v))
			}
		}
	}

	comps := cfg.Components()
	for _, comp := range comps.Names() {
		if !kebabCase.MatchString(comp) {
			issues = append(issues, fmt.Sprintf("component %q is not kebab-case", comp))
		}
		keys, _ := comps.Component(comp)
		for _, key := range keys.Names() {
			if !kebabCase.MatchString(key) {
				issues = append(issues, fmt.Sprintf("component %q override %q is not kebab-case", comp, key))
			}
		}
	}

	return Compat{Compatible: len(issues) == 0, Issues: issues}
}

// IsCSSColor reports whether v looks like a CSS color value.
func IsCSSColor(v string) bool {
	v = strings.TrimSpace(v)
	switch {
	case color.IsOKLCH(v):
		return true
	case hexColor.MatchString(v), colorFunc.MatchString(v), varReference.MatchString(v):
		return true
	}
	return colorKeywords[strings.ToLower(v)]
}

// isStandaloneForeground covers the enhanced text levels, which have no
// base token.
func isStandaloneForeground(name string) bool {
	switch name {
	case "tertiary-foreground", "quaternary-foreground":
		return true
	}
	return false
}

func otherMode(m theme.Mode) theme.Mode {
	if m == theme.Dark {
		return theme.Light
	}
	return theme.Dark
}
