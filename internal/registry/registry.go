package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/jsvensson/themekit/internal/theme"
	"github.com/jsvensson/themekit/internal/validate"
)

var log = commonlog.GetLogger("themekit.registry")

// ErrInvalidTheme matches every *InvalidThemeError.
var ErrInvalidTheme = errors.New("invalid theme configuration")

// InvalidThemeError is returned by Add when a theme fails validation.
type InvalidThemeError struct {
	Name   string
	Errors []string
}

func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme configuration %q: %s", e.Name, strings.Join(e.Errors, "; "))
}

// Is reports whether target is ErrInvalidTheme.
func (e *InvalidThemeError) Is(target error) bool {
	return target == ErrInvalidTheme
}

// Reporter receives diagnostics that must not interrupt the caller.
type Reporter func(msg string)

func logReporter(msg string) {
	log.Error(msg)
}

// reporter falls back to the log for maps not built by New or Empty.
func (m *Map) reporter() Reporter {
	if m == nil || m.report == nil {
		return logReporter
	}
	return m.report
}

// Option configures a Map.
type Option func(*Map)

// WithReporter routes diagnostics to r instead of the log.
func WithReporter(r Reporter) Option {
	return func(m *Map) {
		if r != nil {
			m.report = r
		}
	}
}

// Map is a persistent mapping from theme name to theme. Add returns a new
// Map and leaves the receiver untouched; derived maps share the stored
// *theme.Config values, so lookups through either return the same pointer.
// A Map is safe for concurrent reads. A nil or zero Map reads as empty and
// reports to the log.
type Map struct {
	themes map[string]*theme.Config
	order  []string
	report Reporter
}

// New returns a Map seeded with the built-in presets.
func New(opts ...Option) *Map {
	m := Empty(opts...)
	for _, cfg := range Presets() {
		m.themes[cfg.Name()] = cfg
		m.order = append(m.order, cfg.Name())
	}
	return m
}

// Empty returns a Map with no themes.
func Empty(opts ...Option) *Map {
	m := &Map{
		themes: map[string]*theme.Config{},
		report: logReporter,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add validates cfg and returns a new Map with name bound to it. Replacing
// an existing name keeps its position in Names. On failure the error is an
// *InvalidThemeError and no Map is returned.
func (m *Map) Add(name string, cfg *theme.Config) (*Map, error) {
	if cfg == nil {
		return nil, &InvalidThemeError{Name: name, Errors: []string{"theme is nil"}}
	}
	if res := validate.Theme(cfg); !res.IsValid {
		return nil, &InvalidThemeError{Name: name, Errors: res.Errors}
	}

	next := &Map{themes: map[string]*theme.Config{}, report: logReporter}
	if m != nil {
		next.themes = maps.Clone(m.themes)
		next.order = slices.Clone(m.order)
		next.report = m.reporter()
	}
	if next.themes == nil {
		next.themes = map[string]*theme.Config{}
	}
	if _, exists := next.themes[name]; !exists {
		next.order = append(next.order, name)
	}
	next.themes[name] = cfg
	log.Debugf("registered theme %q", name)
	return next, nil
}

// Get looks up a theme by name.
func (m *Map) Get(name string) (*theme.Config, bool) {
	if m == nil {
		return nil, false
	}
	cfg, ok := m.themes[name]
	return cfg, ok
}

// Names returns the registered names in insertion order.
func (m *Map) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.order)
}

// Len returns the number of registered themes.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.themes)
}
