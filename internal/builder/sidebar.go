package builder

import (
	"maps"

	"github.com/jsvensson/themekit/internal/theme"
)

// SidebarBasis selects where the sidebar surface colors come from.
type SidebarBasis int

const (
	// SidebarBackground copies background and foreground.
	SidebarBackground SidebarBasis = iota
	// SidebarCard copies card and card-foreground.
	SidebarCard
	// SidebarCustom uses the SidebarColors passed to WithSidebarColors.
	SidebarCustom
)

// ParseSidebarBasis converts "background", "card" or "custom" to a basis.
func ParseSidebarBasis(s string) (SidebarBasis, bool) {
	switch s {
	case "background":
		return SidebarBackground, true
	case "card":
		return SidebarCard, true
	case "custom":
		return SidebarCustom, true
	}
	return SidebarBackground, false
}

// SidebarColors are explicit sidebar surface colors. Empty fields are
// derived: foregrounds contrast with their background and the dark
// background inverts the light one.
type SidebarColors struct {
	Background     string
	Foreground     string
	DarkBackground string
	DarkForeground string
}

// sidebarCopies maps sidebar tokens to the token they are copied from.
var sidebarCopies = [][2]string{
	{"sidebar-primary", "primary"},
	{"sidebar-primary-foreground", "primary-foreground"},
	{"sidebar-accent", "accent"},
	{"sidebar-accent-foreground", "accent-foreground"},
	{"sidebar-border", "border"},
	{"sidebar-ring", "ring"},
}

// WithSidebarColors fills the sidebar namespace. The surface comes from the
// chosen basis; primary, accent, border and ring are copied from whatever the
// state holds at this point, or the neutral defaults when they are unset, so
// this op belongs after the groups it copies.
func WithSidebarColors(basis SidebarBasis, custom ...SidebarColors) Op {
	return func(s State) State {
		s = s.Clone()
		var colors *SidebarColors
		if len(custom) > 0 {
			colors = &custom[0]
		}
		for _, m := range theme.Modes {
			maps.Copy(s.Tokens(m), sidebarTokens(s, m, basis, colors))
		}
		return s
	}
}

// sidebarTokens computes the whole sidebar namespace of one mode.
func sidebarTokens(s State, m theme.Mode, basis SidebarBasis, custom *SidebarColors) map[string]string {
	tokens := make(map[string]string, len(theme.SidebarTokens))

	if basis == SidebarCustom && (custom == nil || custom.Background == "") {
		log.Debug("custom sidebar basis without a background color, using background")
		basis = SidebarBackground
	}

	switch basis {
	case SidebarCard:
		tokens["sidebar"] = s.lookup(m, "card")
		tokens["sidebar-foreground"] = s.lookup(m, "card-foreground")
	case SidebarCustom:
		bg, fg := custom.Background, custom.Foreground
		if m == theme.Dark {
			bg = custom.DarkBackground
			if bg == "" {
				bg = darkVariant(custom.Background, nil)
			}
			fg = custom.DarkForeground
		}
		if fg == "" {
			fg = foregroundFor(bg)
		}
		tokens["sidebar"] = bg
		tokens["sidebar-foreground"] = fg
	default:
		tokens["sidebar"] = s.lookup(m, "background")
		tokens["sidebar-foreground"] = s.lookup(m, "foreground")
	}

	for _, pair := range sidebarCopies {
		tokens[pair[0]] = s.lookup(m, pair[1])
	}
	return tokens
}
