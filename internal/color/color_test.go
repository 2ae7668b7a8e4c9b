package color

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// hueDistance is the angle between two hues, so 359.999 and 0 are close.
func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 360-d)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OKLCH
		wantErr bool
	}{
		{"canonical", "oklch(0.7 0.2 300)", OKLCH{L: 0.7, C: 0.2, H: 300}, false},
		{"with alpha", "oklch(0.7 0.2 300 / 0.5)", OKLCH{L: 0.7, C: 0.2, H: 300, A: 0.5, HasAlpha: true}, false},
		{"percent lightness", "oklch(70% 0.2 300)", OKLCH{L: 0.7, C: 0.2, H: 300}, false},
		{"percent alpha", "oklch(0.7 0.2 300 / 50%)", OKLCH{L: 0.7, C: 0.2, H: 300, A: 0.5, HasAlpha: true}, false},
		{"deg suffix", "oklch(0.7 0.2 120deg)", OKLCH{L: 0.7, C: 0.2, H: 120}, false},
		{"uppercase and spacing", "  OKLCH( 0.5   0   0 ) ", OKLCH{L: 0.5}, false},
		{"hue wraps", "oklch(0.5 0.1 400)", OKLCH{L: 0.5, C: 0.1, H: 40}, false},
		{"negative hue", "oklch(0.5 0.1 -30)", OKLCH{L: 0.5, C: 0.1, H: 330}, false},
		{"out of range kept", "oklch(1.2 0.6 10)", OKLCH{L: 1.2, C: 0.6, H: 10}, false},
		{"leading dot", "oklch(.5 .1 10)", OKLCH{L: 0.5, C: 0.1, H: 10}, false},
		{"hex", "#ff0000", OKLCH{}, true},
		{"missing hue", "oklch(0.5 0.1)", OKLCH{}, true},
		{"commas", "oklch(0.5, 0.1, 10)", OKLCH{}, true},
		{"empty", "", OKLCH{}, true},
		{"trailing junk", "oklch(0.5 0.1 10) x", OKLCH{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("Parse(%q) error type = %T, want *ParseError", tt.input, err)
				}
				return
			}
			if !approx(got.L, tt.want.L, 1e-9) || !approx(got.C, tt.want.C, 1e-9) ||
				!approx(got.H, tt.want.H, 1e-9) || !approx(got.A, tt.want.A, 1e-9) ||
				got.HasAlpha != tt.want.HasAlpha {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		color OKLCH
		want  string
	}{
		{OKLCH{L: 0.7, C: 0.2, H: 300}, "oklch(0.7 0.2 300)"},
		{OKLCH{L: 1, C: 0, H: 0}, "oklch(1 0 0)"},
		{OKLCH{L: 0.123456, C: 0.0456789, H: 12.3456}, "oklch(0.1235 0.0457 12.35)"},
		{OKLCH{L: 0.5, C: 0.1, H: 20, A: 0.25, HasAlpha: true}, "oklch(0.5 0.1 20 / 0.25)"},
		{OKLCH{L: -0.00001, C: 0, H: 0}, "oklch(0 0 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Format(tt.color); got != tt.want {
				t.Errorf("Format(%+v) = %q, want %q", tt.color, got, tt.want)
			}
		})
	}
}

func TestParseFormatRoundtrip(t *testing.T) {
	inputs := []string{
		"oklch(0.7 0.2 300)",
		"oklch(0.985 0 0)",
		"oklch(0.577 0.245 27.325)",
		"oklch(0.205 0.0123 264.1 / 0.8)",
		"oklch(55% 0.1 90deg)",
		"oklch(0.123456 0.00001 359.999)",
		"oklch(0.5 0.1 359.994)",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", in, err)
			}
			second, err := Parse(Format(first))
			if err != nil {
				t.Fatalf("reparse of %q error: %v", Format(first), err)
			}
			if !approx(first.L, second.L, 1e-4) || !approx(first.C, second.C, 1e-4) ||
				!approx(hueDistance(first.H, second.H), 0, 1e-2) || first.HasAlpha != second.HasAlpha ||
				!approx(first.A, second.A, 1e-3) {
				t.Errorf("roundtrip %q: %+v != %+v", in, first, second)
			}
		})
	}
}

func TestFormat_HueWrapsBelow360(t *testing.T) {
	tests := []struct {
		in   OKLCH
		want string
	}{
		{OKLCH{L: 0.123456, C: 0.00001, H: 359.999}, "oklch(0.1235 0 0)"},
		{OKLCH{L: 0.5, C: 0.1, H: 359.994}, "oklch(0.5 0.1 359.99)"},
		{RotateHue(OKLCH{L: 0.5, C: 0.1, H: 0}, -0.001), "oklch(0.5 0.1 0)"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseOr(t *testing.T) {
	if got := ParseOr("not a color", Neutral); got != Neutral {
		t.Errorf("ParseOr(invalid) = %+v, want Neutral", got)
	}
	want := OKLCH{L: 0.3, C: 0.1, H: 10}
	if got := ParseOr("oklch(0.3 0.1 10)", Neutral); got != want {
		t.Errorf("ParseOr(valid) = %+v, want %+v", got, want)
	}
}

func TestGeneratePalette_Monotonic(t *testing.T) {
	bases := []string{
		"oklch(0.7 0.2 300)",
		"oklch(0.5 0 0)",
		"oklch(0.9 0.37 145)",
		"oklch(0.1 0.05 20)",
	}

	for _, base := range bases {
		t.Run(base, func(t *testing.T) {
			p, err := GeneratePalette(base)
			if err != nil {
				t.Fatalf("GeneratePalette(%q) error: %v", base, err)
			}
			if len(p) != len(PaletteSteps) {
				t.Fatalf("len(palette) = %d, want %d", len(p), len(PaletteSteps))
			}
			prev := math.Inf(1)
			for _, step := range PaletteSteps {
				c, err := Parse(p[step])
				if err != nil {
					t.Fatalf("step %s: %v", step, err)
				}
				if c.L >= prev {
					t.Errorf("step %s lightness %f not below previous %f", step, c.L, prev)
				}
				prev = c.L
			}
		})
	}
}

func TestGeneratePalette_KeepsHue(t *testing.T) {
	p, err := GeneratePalette("oklch(0.6 0.15 250)")
	if err != nil {
		t.Fatal(err)
	}
	c, _ := Parse(p["500"])
	if !approx(c.H, 250, 0.01) {
		t.Errorf("500 hue = %f, want 250", c.H)
	}
}

func TestGeneratePalette_InvalidBase(t *testing.T) {
	if _, err := GeneratePalette("#123456"); err == nil {
		t.Fatal("expected error for non-oklch base")
	}
}
