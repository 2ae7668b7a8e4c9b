package registry

import (
	"strings"
	"sync"

	"github.com/jsvensson/themekit/internal/css"
	"github.com/jsvensson/themekit/internal/theme"
)

// Property is one custom property write.
type Property struct {
	Name  string
	Value string
}

// Surface is the presentation target themes are applied to.
type Surface interface {
	SetProperty(name, value string)
}

// BatchSurface is a Surface that can apply several writes at once. Apply
// prefers it so that observers never see a half-applied theme.
type BatchSurface interface {
	Surface
	SetProperties(props []Property)
}

// Apply writes every token of the given mode of theme name onto s as a
// custom property. An unknown name is reported and nothing is written.
func (m *Map) Apply(s Surface, name string, mode theme.Mode) {
	cfg, ok := m.Get(name)
	if !ok {
		m.reporter()(`Theme "` + name + `" is not registered`)
		return
	}

	props := Properties(cfg.Tokens(mode))
	if bs, ok := s.(BatchSurface); ok {
		bs.SetProperties(props)
		return
	}
	for _, p := range props {
		s.SetProperty(p.Name, p.Value)
	}
}

// Properties converts tokens to custom property writes in vocabulary order.
func Properties(tokens theme.TokenSet) []Property {
	names := tokens.Names()
	props := make([]Property, 0, len(names))
	for _, name := range names {
		props = append(props, Property{Name: css.VarName(name), Value: tokens.Value(name)})
	}
	return props
}

// StyleRoot is an in-memory BatchSurface, standing in for a document's root
// style. Batches are applied under one lock.
type StyleRoot struct {
	mu    sync.RWMutex
	props map[string]string
	order []string
}

// NewStyleRoot returns an empty StyleRoot.
func NewStyleRoot() *StyleRoot {
	return &StyleRoot{props: map[string]string{}}
}

func (r *StyleRoot) SetProperty(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(name, value)
}

func (r *StyleRoot) SetProperties(props []Property) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range props {
		r.set(p.Name, p.Value)
	}
}

func (r *StyleRoot) set(name, value string) {
	if _, ok := r.props[name]; !ok {
		r.order = append(r.order, name)
	}
	r.props[name] = value
}

// Property returns the current value of a custom property.
func (r *StyleRoot) Property(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.props[name]
	return v, ok
}

// Len returns the number of properties set.
func (r *StyleRoot) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.props)
}

// CSS renders the properties as a :root rule in first-write order.
func (r *StyleRoot) CSS() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var b strings.Builder
	b.WriteString(css.LightSelector + " {\n")
	for _, name := range r.order {
		b.WriteString("  " + name + ": " + r.props[name] + ";\n")
	}
	b.WriteString("}\n")
	return b.String()
}
