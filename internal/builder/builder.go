package builder

import (
	"github.com/jsvensson/themekit/internal/theme"
)

// Theme is a fluent wrapper around the pure ops. It holds the only mutable
// state in the package: each method replaces the wrapped State with the result
// of one op and returns the wrapper.
//
//	cfg := builder.New("ocean").
//		WithPrimaryColor("oklch(0.55 0.15 230)").
//		WithBorderColors("oklch(0.9 0.01 230)").
//		Build()
type Theme struct {
	state State
}

// New starts a theme with the given name.
func New(name string) *Theme {
	return &Theme{state: NewState(name)}
}

// From starts a theme from an existing one.
func From(cfg *theme.Config) *Theme {
	return &Theme{state: FromConfig(cfg)}
}

// Apply runs ops against the wrapped state.
func (t *Theme) Apply(ops ...Op) *Theme {
	t.state = Pipe(t.state, ops...)
	return t
}

// State returns a copy of the in-flight state.
func (t *Theme) State() State {
	return t.state.Clone()
}

// Build auto-completes the state and freezes it into a theme. The wrapper can
// keep being used afterwards; later calls do not affect built themes.
func (t *Theme) Build() *theme.Config {
	return AutoComplete(t.state).Config()
}

func (t *Theme) WithPrimaryColor(light string, dark ...string) *Theme {
	return t.Apply(WithPrimaryColor(light, dark...))
}

func (t *Theme) WithSecondaryColor(light string, dark ...string) *Theme {
	return t.Apply(WithSecondaryColor(light, dark...))
}

func (t *Theme) WithAccentColor(light string, dark ...string) *Theme {
	return t.Apply(WithAccentColor(light, dark...))
}

func (t *Theme) WithMutedColor(light string, dark ...string) *Theme {
	return t.Apply(WithMutedColor(light, dark...))
}

func (t *Theme) WithBackgroundColors(light string, dark ...string) *Theme {
	return t.Apply(WithBackgroundColors(light, dark...))
}

func (t *Theme) WithCardColors(light string, dark ...string) *Theme {
	return t.Apply(WithCardColors(light, dark...))
}

func (t *Theme) WithDestructiveColor(light string, dark ...string) *Theme {
	return t.Apply(WithDestructiveColor(light, dark...))
}

func (t *Theme) WithPopoverColors(light string, dark ...string) *Theme {
	return t.Apply(WithPopoverColors(light, dark...))
}

func (t *Theme) WithPopoverFromCard() *Theme {
	return t.Apply(WithPopoverFromCard())
}

func (t *Theme) WithBorderColors(light string, dark ...string) *Theme {
	return t.Apply(WithBorderColors(light, dark...))
}

func (t *Theme) WithChartColors(light []string, dark []string) *Theme {
	return t.Apply(WithChartColors(light, dark))
}

func (t *Theme) WithSidebarColors(basis SidebarBasis, custom ...SidebarColors) *Theme {
	return t.Apply(WithSidebarColors(basis, custom...))
}

func (t *Theme) WithComponentOverrides(overrides map[string]map[string]string) *Theme {
	return t.Apply(WithComponentOverrides(overrides))
}

func (t *Theme) WithTokens(light, dark map[string]string) *Theme {
	return t.Apply(WithTokens(light, dark))
}
