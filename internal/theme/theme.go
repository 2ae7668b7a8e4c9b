package theme

import (
	"fmt"
	"maps"
	"slices"
)

// Mode selects the light or dark half of a theme.
type Mode int

const (
	Light Mode = iota
	Dark
)

// Modes lists both modes in canonical order.
var Modes = []Mode{Light, Dark}

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// ParseMode converts "light" or "dark" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("unknown mode %q (valid: light, dark)", s)
}

// TokenSet is a read-only view of token name -> color text.
// The zero value is an empty set.
type TokenSet struct {
	tokens map[string]string
}

// NewTokenSet copies m into a new TokenSet.
func NewTokenSet(m map[string]string) TokenSet {
	return TokenSet{tokens: maps.Clone(m)}
}

// Get returns the value of a token.
func (s TokenSet) Get(name string) (string, bool) {
	v, ok := s.tokens[name]
	return v, ok
}

// Value returns the value of a token, or "" when it is not set.
func (s TokenSet) Value(name string) string {
	return s.tokens[name]
}

// Has reports whether a token is set.
func (s TokenSet) Has(name string) bool {
	_, ok := s.tokens[name]
	return ok
}

// Len returns the number of tokens in the set.
func (s TokenSet) Len() int {
	return len(s.tokens)
}

// Names returns the token names: required tokens in vocabulary order,
// followed by any other tokens sorted by name.
func (s TokenSet) Names() []string {
	names := slices.Collect(maps.Keys(s.tokens))
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case canonicalLess(a, b):
			return -1
		default:
			return 1
		}
	})
	return names
}

// Map returns a mutable copy of the set.
func (s TokenSet) Map() map[string]string {
	if s.tokens == nil {
		return make(map[string]string)
	}
	return maps.Clone(s.tokens)
}

// ComponentOverrides is a read-only view of component name -> override key ->
// color text. The key set is open; override keys are not validated against the
// token vocabulary.
type ComponentOverrides struct {
	components map[string]TokenSet
}

// NewComponentOverrides deep-copies m.
func NewComponentOverrides(m map[string]map[string]string) ComponentOverrides {
	if len(m) == 0 {
		return ComponentOverrides{}
	}
	components := make(map[string]TokenSet, len(m))
	for name, keys := range m {
		components[name] = NewTokenSet(keys)
	}
	return ComponentOverrides{components: components}
}

// Component returns the overrides for one component.
func (o ComponentOverrides) Component(name string) (TokenSet, bool) {
	s, ok := o.components[name]
	return s, ok
}

// Len returns the number of components with overrides.
func (o ComponentOverrides) Len() int {
	return len(o.components)
}

// Names returns the component names in sorted order.
func (o ComponentOverrides) Names() []string {
	return slices.Sorted(maps.Keys(o.components))
}

// Map returns a deep, mutable copy of the overrides.
func (o ComponentOverrides) Map() map[string]map[string]string {
	out := make(map[string]map[string]string, len(o.components))
	for name, set := range o.components {
		out[name] = set.Map()
	}
	return out
}

// Config is a built theme: a name plus light and dark token sets and optional
// component overrides. A Config cannot be modified after construction, so a
// *Config can be shared freely. The accessors treat a nil *Config as an
// unnamed theme with no tokens.
type Config struct {
	name       string
	light      TokenSet
	dark       TokenSet
	components ComponentOverrides
}

// New builds a Config, copying every map it is given.
func New(name string, light, dark map[string]string, components map[string]map[string]string) *Config {
	return &Config{
		name:       name,
		light:      NewTokenSet(light),
		dark:       NewTokenSet(dark),
		components: NewComponentOverrides(components),
	}
}

// Name returns the theme name.
func (c *Config) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Light returns the light-mode tokens.
func (c *Config) Light() TokenSet { return c.Tokens(Light) }

// Dark returns the dark-mode tokens.
func (c *Config) Dark() TokenSet { return c.Tokens(Dark) }

// Components returns the component overrides.
func (c *Config) Components() ComponentOverrides {
	if c == nil {
		return ComponentOverrides{}
	}
	return c.components
}

// Tokens returns the token set for the given mode.
func (c *Config) Tokens(m Mode) TokenSet {
	switch {
	case c == nil:
		return TokenSet{}
	case m == Dark:
		return c.dark
	}
	return c.light
}

// WithName returns a copy of c under a different name. The token sets are
// shared since they are immutable.
func (c *Config) WithName(name string) *Config {
	if c == nil {
		return &Config{name: name}
	}
	out := *c
	out.name = name
	return &out
}
