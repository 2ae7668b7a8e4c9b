package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsvensson/themekit/internal/color"
	"github.com/jsvensson/themekit/internal/theme"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	nameStyle  = lipgloss.NewStyle().Width(28)
	valueStyle = lipgloss.NewStyle().Faint(true)
)

// parseColor accepts oklch() text or a hex color.
func parseColor(s string) (color.OKLCH, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return color.FromHex(s)
	}
	return color.Parse(s)
}

// swatch renders a block filled with value, or blank padding when value is
// not a color.
func swatch(value string) string {
	c, err := parseColor(value)
	if err != nil {
		return "    "
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render("    ")
}

func swatchLine(name, value string) string {
	return swatch(value) + " " + nameStyle.Render(name) + valueStyle.Render(value)
}

// renderTokens lists the tokens of one mode, then the component overrides.
func renderTokens(cfg *theme.Config, m theme.Mode) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", cfg.Name(), m)))
	b.WriteString("\n")

	tokens := cfg.Tokens(m)
	for _, name := range tokens.Names() {
		b.WriteString(swatchLine(name, tokens.Value(name)))
		b.WriteString("\n")
	}

	comps := cfg.Components()
	for _, comp := range comps.Names() {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("component " + comp))
		b.WriteString("\n")
		overrides, _ := comps.Component(comp)
		for _, key := range overrides.Names() {
			b.WriteString(swatchLine(key, overrides.Value(key)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderPalette lists the steps of a generated palette, lightest first.
func renderPalette(p color.Palette) string {
	var b strings.Builder
	for _, step := range color.PaletteSteps {
		value, ok := p[step]
		if !ok {
			continue
		}
		b.WriteString(swatchLine(step, value))
		b.WriteString("\n")
	}
	return b.String()
}
