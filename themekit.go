// Package themekit loads design-system themes from definition files, YAML
// documents and stylesheets.
package themekit

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/jsvensson/themekit/internal/css"
	"github.com/jsvensson/themekit/internal/parser"
	"github.com/jsvensson/themekit/internal/registry"
	"github.com/jsvensson/themekit/internal/theme"
)

var log = commonlog.GetLogger("themekit")

type loadOptions struct {
	themes *registry.Map
}

// Option configures Load and LoadDir.
type Option func(*loadOptions)

// WithThemes sets the registry that meta.extends is resolved against and
// that LoadDir adds to. The built-in presets are used by default.
func WithThemes(themes *registry.Map) Option {
	return func(o *loadOptions) {
		if themes != nil {
			o.themes = themes
		}
	}
}

func newOptions(opts []Option) loadOptions {
	o := loadOptions{themes: registry.New()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// IsThemeFile reports whether Load understands the file at path.
func IsThemeFile(path string) bool {
	if strings.HasSuffix(path, parser.Extension) {
		return true
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml", ".css":
		return true
	}
	return false
}

// Load reads one theme. The format follows the file name: *.theme.hcl
// definition files, *.yaml or *.yml documents and *.css stylesheets.
func Load(path string, opts ...Option) (*theme.Config, error) {
	o := newOptions(opts)

	if strings.HasSuffix(path, parser.Extension) {
		f, err := parser.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading theme: %w", err)
		}
		return build(f, func(name string) (*theme.Config, error) {
			if cfg, ok := o.themes.Get(name); ok {
				return cfg, nil
			}
			return nil, fmt.Errorf("%s: meta.extends: unknown theme %q", path, name)
		})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		cfg, err := theme.FromYAML(data)
		if err != nil {
			return nil, fmt.Errorf("loading theme %s: %w", path, err)
		}
		return cfg, nil
	case ".css":
		name := strings.TrimSuffix(filepath.Base(path), ".css")
		cfg, err := css.Parse(string(data), css.WithName(name))
		if err != nil {
			return nil, fmt.Errorf("loading theme %s: %w", path, err)
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("loading theme %s: unsupported file type", path)
	}
}

func build(f *parser.File, resolve func(string) (*theme.Config, error)) (*theme.Config, error) {
	if f.Meta.Extends == "" {
		return f.Build(nil), nil
	}
	base, err := resolve(f.Meta.Extends)
	if err != nil {
		return nil, err
	}
	return f.Build(base), nil
}

// LoadDir loads every theme file in dir, in file name order, and returns the
// registry with all of them added. Definition files may extend each other
// regardless of order; extension cycles are an error. Every theme must pass
// validation to be added.
func LoadDir(dir string, opts ...Option) (*registry.Map, error) {
	o := newOptions(opts)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading theme directory: %w", err)
	}

	themes := o.themes
	defs := map[string]*parser.File{}
	var defOrder []string

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() || !IsThemeFile(path) {
			continue
		}
		if strings.HasSuffix(path, parser.Extension) {
			f, err := parser.ParseFile(path)
			if err != nil {
				return nil, err
			}
			if prev, ok := defs[f.Name()]; ok {
				return nil, fmt.Errorf("theme %q defined by both %s and %s", f.Name(), prev.Filename, path)
			}
			defs[f.Name()] = f
			defOrder = append(defOrder, f.Name())
			continue
		}

		cfg, err := Load(path)
		if err != nil {
			return nil, err
		}
		if themes, err = themes.Add(cfg.Name(), cfg); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		log.Debugf("loaded theme %q from %s", cfg.Name(), path)
	}

	var resolving []string
	var resolve func(name string) (*theme.Config, error)
	resolve = func(name string) (*theme.Config, error) {
		f, local := defs[name]
		if !local {
			if cfg, ok := themes.Get(name); ok {
				return cfg, nil
			}
			return nil, fmt.Errorf("meta.extends: unknown theme %q", name)
		}
		if slices.Contains(resolving, name) {
			// A file may extend the registered theme it replaces.
			if resolving[len(resolving)-1] == name {
				if cfg, ok := themes.Get(name); ok {
					return cfg, nil
				}
			}
			return nil, fmt.Errorf("meta.extends: cycle %s -> %s", strings.Join(resolving, " -> "), name)
		}

		resolving = append(resolving, name)
		cfg, err := build(f, resolve)
		resolving = resolving[:len(resolving)-1]
		if err != nil {
			return nil, err
		}

		if themes, err = themes.Add(name, cfg); err != nil {
			return nil, fmt.Errorf("loading %s: %w", f.Filename, err)
		}
		delete(defs, name)
		log.Debugf("loaded theme %q from %s", name, f.Filename)
		return cfg, nil
	}

	for _, name := range defOrder {
		if _, pending := defs[name]; !pending {
			continue
		}
		if _, err := resolve(name); err != nil {
			return nil, err
		}
	}

	return themes, nil
}
