package css

import (
	"strings"

	"github.com/jsvensson/themekit/internal/theme"
)

// VarPrefix marks a token as a CSS custom property.
const VarPrefix = "--"

const (
	// LightSelector scopes the light tokens.
	LightSelector = ":root"
	// DarkSelector scopes the dark tokens.
	DarkSelector = ".dark"
)

// VarName returns the custom property name of a token.
func VarName(token string) string {
	return VarPrefix + token
}

// ToCSS renders a theme as two rule blocks: the light tokens under :root and
// the dark tokens under .dark, one "--<token>: <value>;" line per token. A nil
// theme renders both blocks empty.
func ToCSS(cfg *theme.Config) string {
	var b strings.Builder
	b.WriteString(Block(LightSelector, cfg.Light()))
	b.WriteByte('\n')
	b.WriteString(Block(DarkSelector, cfg.Dark()))
	return b.String()
}

// Block renders one rule block with a declaration per token.
func Block(selector string, tokens theme.TokenSet) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, name := range tokens.Names() {
		b.WriteString("  ")
		b.WriteString(VarName(name))
		b.WriteString(": ")
		b.WriteString(tokens.Value(name))
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}
