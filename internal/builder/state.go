package builder

import (
	"maps"

	"github.com/jsvensson/themekit/internal/theme"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("themekit.builder")

// State is an in-flight, possibly incomplete theme. Ops never modify the
// State they receive; they return a modified copy.
type State struct {
	Name       string
	Light      map[string]string
	Dark       map[string]string
	Components map[string]map[string]string
}

// Op is a single state transition.
type Op func(State) State

// NewState returns an empty State for the named theme.
func NewState(name string) State {
	return State{
		Name:       name,
		Light:      make(map[string]string),
		Dark:       make(map[string]string),
		Components: make(map[string]map[string]string),
	}
}

// FromConfig seeds a State with the tokens of an existing theme.
func FromConfig(cfg *theme.Config) State {
	return State{
		Name:       cfg.Name(),
		Light:      cfg.Light().Map(),
		Dark:       cfg.Dark().Map(),
		Components: cfg.Components().Map(),
	}
}

// Clone returns a deep copy of s. Nil maps in s become empty maps.
func (s State) Clone() State {
	out := State{
		Name:       s.Name,
		Light:      make(map[string]string, len(s.Light)),
		Dark:       make(map[string]string, len(s.Dark)),
		Components: make(map[string]map[string]string, len(s.Components)),
	}
	maps.Copy(out.Light, s.Light)
	maps.Copy(out.Dark, s.Dark)
	for name, keys := range s.Components {
		out.Components[name] = maps.Clone(keys)
	}
	return out
}

// Tokens returns the token map for a mode. The map belongs to s.
func (s State) Tokens(m theme.Mode) map[string]string {
	if m == theme.Dark {
		return s.Dark
	}
	return s.Light
}

// Config freezes s into an immutable theme.
func (s State) Config() *theme.Config {
	return theme.New(s.Name, s.Light, s.Dark, s.Components)
}

// lookup returns the state's value for a token, falling back to the neutral
// default when the token has not been set yet.
func (s State) lookup(m theme.Mode, token string) string {
	if v, ok := s.Tokens(m)[token]; ok {
		return v
	}
	return DefaultValue(m, token)
}

// Compose chains ops left to right.
func Compose(ops ...Op) Op {
	return func(s State) State {
		for _, op := range ops {
			s = op(s)
		}
		return s
	}
}

// Pipe runs s through ops in order.
func Pipe(s State, ops ...Op) State {
	return Compose(ops...)(s)
}

// AutoComplete derives the tokens a theme can infer from what is already set:
// card from background, popover from card and the sidebar namespace from the
// background. Tokens that are already set are left alone, including single
// sidebar tokens, which makes AutoComplete idempotent.
func AutoComplete(s State) State {
	s = s.Clone()
	for _, m := range theme.Modes {
		tokens := s.Tokens(m)
		if _, ok := tokens["card"]; !ok {
			tokens["card"] = s.lookup(m, "background")
		}
		if _, ok := tokens["card-foreground"]; !ok {
			tokens["card-foreground"] = s.lookup(m, "foreground")
		}
		if _, ok := tokens["popover"]; !ok {
			mirrorCard(s, m)
		}
		if _, ok := tokens["sidebar"]; !ok {
			for name, value := range sidebarTokens(s, m, SidebarBackground, nil) {
				if _, set := tokens[name]; !set {
					tokens[name] = value
				}
			}
		}
	}
	return s
}
