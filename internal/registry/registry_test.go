package registry

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/jsvensson/themekit/internal/builder"
	"github.com/jsvensson/themekit/internal/theme"
	"github.com/jsvensson/themekit/internal/validate"
)

func complete(name string) *theme.Config {
	return theme.New(name, builder.Defaults(theme.Light), builder.Defaults(theme.Dark), nil)
}

func TestNew_Presets(t *testing.T) {
	m := New()
	if m.Len() < 8 {
		t.Fatalf("Len() = %d, want at least 8 presets", m.Len())
	}
	if !slices.Equal(m.Names(), PresetNames()) {
		t.Errorf("Names() = %v, want %v", m.Names(), PresetNames())
	}
	if _, ok := m.Get(DefaultTheme); !ok {
		t.Errorf("default theme %q missing", DefaultTheme)
	}

	for _, name := range m.Names() {
		cfg, _ := m.Get(name)
		if res := validate.Theme(cfg); !res.IsValid {
			t.Errorf("preset %q invalid: %v", name, res.Errors)
		}
		if cfg.Name() != name {
			t.Errorf("preset %q has name %q", name, cfg.Name())
		}
	}
}

func TestAdd_Immutable(t *testing.T) {
	r := New()
	before := r.Len()
	names := r.Names()

	r2, err := r.Add("ocean", complete("ocean"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if r.Len() != before {
		t.Errorf("original Len() = %d, want %d", r.Len(), before)
	}
	if _, ok := r.Get("ocean"); ok {
		t.Error("original registry sees added theme")
	}
	if !slices.Equal(r.Names(), names) {
		t.Errorf("original Names() changed to %v", r.Names())
	}
	if r2.Len() != before+1 {
		t.Errorf("derived Len() = %d, want %d", r2.Len(), before+1)
	}
	if got := r2.Names()[r2.Len()-1]; got != "ocean" {
		t.Errorf("last name = %q, want ocean", got)
	}
}

func TestAdd_Replace(t *testing.T) {
	r := New()
	replacement := complete("neutral-2")

	r2, err := r.Add(DefaultTheme, replacement)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if r2.Len() != r.Len() {
		t.Errorf("Len() = %d after replace, want %d", r2.Len(), r.Len())
	}
	if !slices.Equal(r2.Names(), r.Names()) {
		t.Errorf("replace reordered names: %v", r2.Names())
	}
	if got, _ := r2.Get(DefaultTheme); got != replacement {
		t.Error("replacement not stored")
	}
	if got, _ := r.Get(DefaultTheme); got == replacement {
		t.Error("original registry sees replacement")
	}
}

func TestAdd_Invalid(t *testing.T) {
	r := Empty()
	light := builder.Defaults(theme.Light)
	delete(light, "background")
	bad := theme.New("bad", light, builder.Defaults(theme.Dark), nil)

	r2, err := r.Add("bad", bad)
	if r2 != nil {
		t.Error("Add returned a registry on failure")
	}
	if !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("err = %v, want ErrInvalidTheme", err)
	}
	var ite *InvalidThemeError
	if !errors.As(err, &ite) {
		t.Fatalf("err is %T, want *InvalidThemeError", err)
	}
	if !slices.Contains(ite.Errors, "Missing light theme property: background") {
		t.Errorf("Errors = %v", ite.Errors)
	}
	if r.Len() != 0 {
		t.Errorf("failed Add changed Len() to %d", r.Len())
	}

	if _, err := r.Add("nil", nil); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("Add(nil) err = %v", err)
	}
}

func TestReferenceStability(t *testing.T) {
	r := New()
	r2, err := r.Add("ocean", complete("ocean"))
	if err != nil {
		t.Fatal(err)
	}
	r3, err := r2.Add("forest", complete("forest"))
	if err != nil {
		t.Fatal(err)
	}

	a, _ := r.Get("blue")
	b, _ := r3.Get("blue")
	if a != b {
		t.Error("lookups across derived registries returned different pointers")
	}
	c, _ := r2.Get("ocean")
	d, _ := r3.Get("ocean")
	if c != d {
		t.Error("ocean pointer differs between r2 and r3")
	}
}

func TestGet_Missing(t *testing.T) {
	if cfg, ok := New().Get("nope"); ok || cfg != nil {
		t.Errorf("Get(nope) = %v, %v", cfg, ok)
	}
}

// recordingSurface counts individual writes.
type recordingSurface struct {
	writes []Property
}

func (s *recordingSurface) SetProperty(name, value string) {
	s.writes = append(s.writes, Property{name, value})
}

type batchSurface struct {
	recordingSurface
	batches int
}

func (s *batchSurface) SetProperties(props []Property) {
	s.batches++
	s.writes = append(s.writes, props...)
}

func TestApply_Missing(t *testing.T) {
	var msgs []string
	r := New(WithReporter(func(msg string) { msgs = append(msgs, msg) }))
	s := &recordingSurface{}

	r.Apply(s, "nope", theme.Light)

	if len(msgs) != 1 || msgs[0] != `Theme "nope" is not registered` {
		t.Errorf("reported %q", msgs)
	}
	if len(s.writes) != 0 {
		t.Errorf("surface received %d writes", len(s.writes))
	}
}

func TestZeroMap(t *testing.T) {
	var zero Map
	s := &recordingSurface{}
	zero.Apply(s, "blue", theme.Light)
	if len(s.writes) != 0 {
		t.Errorf("zero map wrote %d properties", len(s.writes))
	}

	var nilMap *Map
	if _, ok := nilMap.Get("blue"); ok {
		t.Error("nil map found a theme")
	}
	nilMap.Apply(s, "blue", theme.Dark)
	if nilMap.Len() != 0 || len(nilMap.Names()) != 0 {
		t.Errorf("nil map: Len = %d, Names = %q", nilMap.Len(), nilMap.Names())
	}

	cfg, _ := New().Get(DefaultTheme)
	next, err := zero.Add("mine", cfg)
	if err != nil {
		t.Fatalf("Add on zero map: %v", err)
	}
	next.Apply(s, "mine", theme.Light)
	if len(s.writes) != cfg.Light().Len() {
		t.Errorf("writes = %d, want %d", len(s.writes), cfg.Light().Len())
	}
}

func TestApply_OneWritePerToken(t *testing.T) {
	r := New()
	cfg, _ := r.Get("blue")

	for _, mode := range theme.Modes {
		s := &recordingSurface{}
		r.Apply(s, "blue", mode)

		tokens := cfg.Tokens(mode)
		if len(s.writes) != tokens.Len() {
			t.Fatalf("%s: %d writes, want %d", mode, len(s.writes), tokens.Len())
		}
		for _, w := range s.writes {
			name, ok := strings.CutPrefix(w.Name, "--")
			if !ok {
				t.Errorf("property %q lacks -- prefix", w.Name)
			}
			if tokens.Value(name) != w.Value {
				t.Errorf("%s = %q, want %q", w.Name, w.Value, tokens.Value(name))
			}
		}
	}
}

func TestApply_Batched(t *testing.T) {
	r := New()
	s := &batchSurface{}
	r.Apply(s, DefaultTheme, theme.Dark)

	if s.batches != 1 {
		t.Errorf("batches = %d, want 1", s.batches)
	}
	if len(s.writes) != len(theme.RequiredTokens) {
		t.Errorf("writes = %d, want %d", len(s.writes), len(theme.RequiredTokens))
	}
}

func TestStyleRoot(t *testing.T) {
	r := New()
	root := NewStyleRoot()
	r.Apply(root, DefaultTheme, theme.Light)

	if root.Len() != len(theme.RequiredTokens) {
		t.Errorf("Len() = %d", root.Len())
	}
	if v, ok := root.Property("--background"); !ok || v != "oklch(1 0 0)" {
		t.Errorf("--background = %q, %v", v, ok)
	}

	r.Apply(root, DefaultTheme, theme.Dark)
	if v, _ := root.Property("--background"); v != "oklch(0.145 0 0)" {
		t.Errorf("--background after dark = %q", v)
	}
	if root.Len() != len(theme.RequiredTokens) {
		t.Errorf("switching modes added properties: %d", root.Len())
	}

	out := root.CSS()
	if !strings.HasPrefix(out, ":root {\n  --background: oklch(0.145 0 0);\n") {
		t.Errorf("unexpected CSS:\n%s", out)
	}
}

func TestStyleRoot_ConcurrentApply(t *testing.T) {
	r := New()
	root := NewStyleRoot()

	var wg sync.WaitGroup
	for _, name := range r.Names() {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			r.Apply(root, name, theme.Light)
		}(name)
	}
	wg.Wait()

	if root.Len() != len(theme.RequiredTokens) {
		t.Errorf("Len() = %d, want %d", root.Len(), len(theme.RequiredTokens))
	}
}
