package engine

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/jsvensson/themekit/internal/color"
	"github.com/jsvensson/themekit/internal/css"
	"github.com/jsvensson/themekit/internal/theme"
)

// Engine loads and executes Go templates against a theme.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given theme and writes one output file per template.
func (e *Engine) Run(cfg *theme.Config) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(cfg)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	if len(e.Apps) == 0 {
		return true
	}
	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Name       string
	Tokens     []string // light token names in vocabulary order
	Light      map[string]string
	Dark       map[string]string
	Components map[string]map[string]string
	FuncMap    template.FuncMap
}

// resolvePath resolves "light.<token>", "dark.<token>" or
// "component.<name>.<key>" to a value.
func resolvePath(path string, data templateData) (string, error) {
	block, rest, ok := strings.Cut(path, ".")
	if !ok || rest == "" {
		return "", fmt.Errorf("invalid path %q: must be block.name format", path)
	}

	switch block {
	case "light":
		return lookup(data.Light, rest, path)
	case "dark":
		return lookup(data.Dark, rest, path)
	case "component":
		name, key, ok := strings.Cut(rest, ".")
		if !ok {
			return "", fmt.Errorf("component paths must be component.name.key: %s", path)
		}
		overrides, found := data.Components[name]
		if !found {
			return "", fmt.Errorf("component not found: %s", name)
		}
		return lookup(overrides, key, path)
	default:
		return "", fmt.Errorf("unknown block %q (valid: light, dark, component)", block)
	}
}

func lookup(m map[string]string, key, path string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("token not found: %s", path)
	}
	return v, nil
}

// resolveColor accepts a path understood by resolvePath or a literal color
// in oklch or hex form.
func resolveColor(v string, data templateData) (color.OKLCH, error) {
	if block, _, ok := strings.Cut(v, "."); ok && (block == "light" || block == "dark" || block == "component") {
		resolved, err := resolvePath(v, data)
		if err != nil {
			return color.OKLCH{}, err
		}
		v = resolved
	}
	if strings.HasPrefix(v, "#") {
		return color.FromHex(v)
	}
	return color.Parse(v)
}

func buildTemplateData(cfg *theme.Config) templateData {
	data := templateData{
		Name:       cfg.Name(),
		Tokens:     cfg.Light().Names(),
		Light:      cfg.Light().Map(),
		Dark:       cfg.Dark().Map(),
		Components: cfg.Components().Map(),
	}
	data.FuncMap = template.FuncMap{
		"token": func(name string) (string, error) {
			return lookup(data.Light, name, "light."+name)
		},
		"dark": func(name string) (string, error) {
			return lookup(data.Dark, name, "dark."+name)
		},
		"component": func(name, key string) (string, error) {
			return resolvePath("component."+name+"."+key, data)
		},
		"var": css.VarName,
		"css": func() string {
			return css.ToCSS(cfg)
		},
		"hex": func(v string) (string, error) {
			c, err := resolveColor(v, data)
			if err != nil {
				return "", err
			}
			return c.Hex(), nil
		},
		"hexBare": func(v string) (string, error) {
			c, err := resolveColor(v, data)
			if err != nil {
				return "", err
			}
			return strings.TrimPrefix(c.Hex(), "#"), nil
		},
		"rgb": func(v string) (string, error) {
			c, err := resolveColor(v, data)
			if err != nil {
				return "", err
			}
			r, g, b := c.RGB()
			return fmt.Sprintf("rgb(%d, %d, %d)", channel(r), channel(g), channel(b)), nil
		},
		"oklch": func(v string) (string, error) {
			c, err := resolveColor(v, data)
			if err != nil {
				return "", err
			}
			return c.String(), nil
		},
	}
	return data
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
