package validate

import (
	"slices"
	"strings"
	"testing"

	"github.com/jsvensson/themekit/internal/builder"
	"github.com/jsvensson/themekit/internal/theme"
)

func completeTheme(name string) *theme.Config {
	return theme.New(name, builder.Defaults(theme.Light), builder.Defaults(theme.Dark), nil)
}

func withoutToken(cfg *theme.Config, m theme.Mode, token string) *theme.Config {
	light, dark := cfg.Light().Map(), cfg.Dark().Map()
	if m == theme.Dark {
		delete(dark, token)
	} else {
		delete(light, token)
	}
	return theme.New(cfg.Name(), light, dark, cfg.Components().Map())
}

func TestTheme_Complete(t *testing.T) {
	res := Theme(completeTheme("ok"))
	if !res.IsValid || len(res.Errors) != 0 {
		t.Errorf("complete theme invalid: %v", res.Errors)
	}
}

func TestTheme_MissingBackground(t *testing.T) {
	res := Theme(withoutToken(completeTheme("t"), theme.Light, "background"))
	if res.IsValid {
		t.Fatal("expected invalid theme")
	}
	want := "Missing light theme property: background"
	if !slices.Contains(res.Errors, want) {
		t.Errorf("errors %v do not contain %q", res.Errors, want)
	}
	if len(res.Errors) != 1 {
		t.Errorf("len(errors) = %d, want 1", len(res.Errors))
	}
}

func TestTheme_EmptyReportsBothModes(t *testing.T) {
	res := Theme(theme.New("empty", nil, nil, nil))
	if got, want := len(res.Errors), 2*len(theme.RequiredTokens); got != want {
		t.Fatalf("len(errors) = %d, want %d", got, want)
	}
	if res.Errors[0] != "Missing light theme property: background" {
		t.Errorf("first error = %q", res.Errors[0])
	}
	if last := res.Errors[len(res.Errors)-1]; last != "Missing dark theme property: sidebar-ring" {
		t.Errorf("last error = %q", last)
	}
}

func TestTheme_Nil(t *testing.T) {
	res := Theme(nil)
	if res.IsValid {
		t.Fatal("nil theme reported valid")
	}
	if got, want := len(res.Errors), 2*len(theme.RequiredTokens); got != want {
		t.Errorf("len(errors) = %d, want %d", got, want)
	}
	if got := Missing(nil, theme.Dark); len(got) != len(theme.RequiredTokens) {
		t.Errorf("Missing(nil) = %d tokens, want %d", len(got), len(theme.RequiredTokens))
	}
}

func TestTheme_IgnoresComponentOverrides(t *testing.T) {
	cfg := theme.New("t", builder.Defaults(theme.Light), builder.Defaults(theme.Dark),
		map[string]map[string]string{"Weird Component": {"Not Kebab": "nope"}})
	if res := Theme(cfg); !res.IsValid {
		t.Errorf("component overrides should not affect validation: %v", res.Errors)
	}
}

func TestAutoFix(t *testing.T) {
	tests := []struct {
		name string
		cfg  *theme.Config
	}{
		{"nil", nil},
		{"empty", theme.New("empty", nil, nil, nil)},
		{"partial", builder.New("partial").WithPrimaryColor("oklch(0.6 0.2 250)").Build()},
		{"bad values", theme.New("bad", map[string]string{"primary": "not-a-color"}, nil, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixed := AutoFix(tt.cfg)
			if res := Theme(fixed); !res.IsValid {
				t.Errorf("AutoFix result invalid: %v", res.Errors)
			}
		})
	}
}

func TestAutoFix_PreservesExisting(t *testing.T) {
	cfg := builder.New("keep").
		WithPrimaryColor("oklch(0.6 0.2 250)").
		WithBackgroundColors("oklch(0.99 0.01 250)").
		WithComponentOverrides(map[string]map[string]string{"button": {"hover": "oklch(0.5 0.2 250)"}}).
		Build()

	fixed := AutoFix(cfg)
	if got := fixed.Light().Value("primary"); got != "oklch(0.6 0.2 250)" {
		t.Errorf("primary = %q, want preserved", got)
	}
	// Card derives from background before defaults apply.
	if got := fixed.Light().Value("card"); got != "oklch(0.99 0.01 250)" {
		t.Errorf("card = %q, want background", got)
	}
	if got := fixed.Light().Value("secondary"); got != builder.DefaultValue(theme.Light, "secondary") {
		t.Errorf("secondary = %q, want default", got)
	}
	if fixed.Components().Len() != 1 {
		t.Error("component overrides dropped")
	}
	if fixed.Name() != "keep" {
		t.Errorf("name = %q", fixed.Name())
	}
}

func TestCompatibility_Complete(t *testing.T) {
	res := Compatibility(completeTheme("ok"))
	if !res.Compatible {
		t.Errorf("expected compatible, issues: %v", res.Issues)
	}
}

func TestCompatibility_Issues(t *testing.T) {
	light := builder.Defaults(theme.Light)
	dark := builder.Defaults(theme.Dark)
	light["Brand_Color"] = "oklch(0.5 0.1 10)"
	dark["Brand_Color"] = "oklch(0.5 0.1 10)"
	light["banner-foreground"] = "oklch(0.1 0 0)"
	dark["banner-foreground"] = "oklch(0.1 0 0)"
	light["icon-primary"] = "oklch(0.5 0.1 10)"
	light["primary"] = "bogus"
	delete(dark, "ring")

	cfg := theme.New("t", light, dark, map[string]map[string]string{"button": {"hoverBg": "#fff"}})
	res := Compatibility(cfg)
	if res.Compatible {
		t.Fatal("expected incompatible")
	}

	wantFragments := []string{
		`missing required dark token "ring"`,
		`light token "Brand_Color" is not kebab-case`,
		`light token "banner-foreground" has no matching "banner" token`,
		`token "icon-primary" is defined in light mode but not in dark mode`,
		`light token "primary" has unrecognized color value "bogus"`,
		`component "button" override "hoverBg" is not kebab-case`,
	}
	joined := strings.Join(res.Issues, "\n")
	for _, frag := range wantFragments {
		if !strings.Contains(joined, frag) {
			t.Errorf("issues missing %q\nissues:\n%s", frag, joined)
		}
	}
}

func TestIsCSSColor(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"oklch(0.5 0.1 10)", true},
		{"#fff", true},
		{"#aabbccdd", true},
		{"rgb(1 2 3)", true},
		{"hsl(210 40% 98%)", true},
		{"var(--primary)", true},
		{"transparent", true},
		{"#ggg", false},
		{"blue-ish", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCSSColor(tt.value); got != tt.want {
			t.Errorf("IsCSSColor(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
