package theme

import "strings"

// BaseTokens are the core semantic tokens every theme mode must define.
var BaseTokens = []string{
	"background", "foreground",
	"card", "card-foreground",
	"popover", "popover-foreground",
	"primary", "primary-foreground",
	"secondary", "secondary-foreground",
	"muted", "muted-foreground",
	"accent", "accent-foreground",
	"destructive", "destructive-foreground",
	"border", "input", "ring",
}

// ChartTokens are the five chart series colors.
var ChartTokens = []string{"chart-1", "chart-2", "chart-3", "chart-4", "chart-5"}

// SidebarTokens are the sidebar namespace tokens.
var SidebarTokens = []string{
	"sidebar", "sidebar-foreground",
	"sidebar-primary", "sidebar-primary-foreground",
	"sidebar-accent", "sidebar-accent-foreground",
	"sidebar-border", "sidebar-ring",
}

// RequiredTokens is the full required vocabulary, in canonical order.
var RequiredTokens = concat(BaseTokens, ChartTokens, SidebarTokens)

// EnhancedTokens are well-known optional tokens. The enhanced set is open:
// any token with one of EnhancedPrefixes is also treated as enhanced.
var EnhancedTokens = []string{
	"icon-primary", "icon-secondary", "icon-muted", "icon-accent", "icon-destructive",
	"border-strong", "border-subtle", "border-ghost",
	"tertiary-foreground", "quaternary-foreground",
}

// EnhancedPrefixes mark component-specific optional tokens.
var EnhancedPrefixes = []string{"icon-", "text-", "border-"}

var (
	requiredIndex = indexOf(RequiredTokens)
	enhancedIndex = indexOf(EnhancedTokens)
)

// IsRequired reports whether name is part of the required vocabulary.
func IsRequired(name string) bool {
	_, ok := requiredIndex[name]
	return ok
}

// IsEnhanced reports whether name is an optional enhanced token.
func IsEnhanced(name string) bool {
	if _, ok := enhancedIndex[name]; ok {
		return true
	}
	if IsRequired(name) {
		return false
	}
	for _, prefix := range EnhancedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// canonicalLess orders required tokens by vocabulary position and puts every
// other token after them in lexical order.
func canonicalLess(a, b string) bool {
	ia, aok := requiredIndex[a]
	ib, bok := requiredIndex[b]
	switch {
	case aok && bok:
		return ia < ib
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

func indexOf(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
