package parser

import (
	"github.com/jsvensson/themekit/internal/builder"
	"github.com/jsvensson/themekit/internal/theme"
)

var groupOps = map[string]func(light string, dark ...string) builder.Op{
	"background":  builder.WithBackgroundColors,
	"card":        builder.WithCardColors,
	"popover":     builder.WithPopoverColors,
	"primary":     builder.WithPrimaryColor,
	"secondary":   builder.WithSecondaryColor,
	"accent":      builder.WithAccentColor,
	"muted":       builder.WithMutedColor,
	"destructive": builder.WithDestructiveColor,
	"border":      builder.WithBorderColors,
}

// Ops translates the file into builder ops: color groups in GroupKeys order,
// then popover mirroring, charts, the sidebar, explicit tokens and component
// overrides. Explicit tokens come late so they win over derived values.
func (f *File) Ops() []builder.Op {
	var ops []builder.Op
	for _, key := range GroupKeys {
		light, ok := f.Light.Groups[key]
		if !ok {
			continue
		}
		var dark []string
		if d, ok := f.Dark.Groups[key]; ok {
			dark = append(dark, d)
		}
		ops = append(ops, groupOps[key](light, dark...))
	}
	if f.PopoverFromCard {
		ops = append(ops, builder.WithPopoverFromCard())
	}
	if len(f.Light.Chart) > 0 {
		ops = append(ops, builder.WithChartColors(f.Light.Chart, f.Dark.Chart))
	}

	switch {
	case f.Sidebar != nil:
		ops = append(ops, builder.WithSidebarColors(builder.SidebarCustom, *f.Sidebar))
	case f.SidebarBasis != nil:
		ops = append(ops, builder.WithSidebarColors(*f.SidebarBasis))
	}

	if len(f.TokensLight) > 0 || len(f.TokensDark) > 0 {
		ops = append(ops, builder.WithTokens(f.TokensLight, f.TokensDark))
	}
	if len(f.Components) > 0 {
		ops = append(ops, builder.WithComponentOverrides(f.Components))
	}
	return ops
}

// Build runs the file's ops on top of base, or on an empty theme when base is
// nil, and returns the auto-completed result named after the file.
func (f *File) Build(base *theme.Config) *theme.Config {
	t := builder.New(f.Name())
	if base != nil {
		t = builder.From(base.WithName(f.Name()))
	}
	return t.Apply(f.Ops()...).Build()
}
