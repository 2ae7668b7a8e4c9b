package format

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basic formatting",
			input:    `meta{name="Ocean"}`,
			expected: `meta { name = "Ocean" }`,
		},
		{
			name: "already formatted stays same",
			input: `meta {
  name = "Ocean"
}
`,
			expected: `meta {
  name = "Ocean"
}
`,
		},
		{
			name:     "extra whitespace normalized",
			input:    `meta   {   name   =   "Ocean"   }`,
			expected: `meta { name = "Ocean" }`,
		},
		{
			name:     "empty content",
			input:    "",
			expected: "",
		},
		{
			name:     "multiple blank lines collapsed to one",
			input:    "meta { name = \"Ocean\" }\n\n\n\npalette { brand = \"#0066cc\" }",
			expected: "meta { name = \"Ocean\" }\n\npalette { brand = \"#0066cc\" }",
		},
		{
			name:     "single blank line preserved",
			input:    "meta { name = \"Ocean\" }\n\npalette { brand = \"#0066cc\" }",
			expected: "meta { name = \"Ocean\" }\n\npalette { brand = \"#0066cc\" }",
		},
		{
			name:     "blank lines inside braces removed",
			input:    "palette {\n\n  brand = \"#0066cc\"\n\n}",
			expected: "palette {\n  brand = \"#0066cc\"\n}",
		},
		{
			name:     "nested palette group blank lines removed",
			input:    "palette {\n\n  gray {\n\n    light = \"#eeeeee\"\n\n  }\n\n}",
			expected: "palette {\n  gray {\n    light = \"#eeeeee\"\n  }\n}",
		},
		{
			name: "colors block reordered",
			input: `colors {
  chart = [palette.brand]
  primary = palette.brand
  background = palette.paper
}
`,
			expected: `colors {
  background = palette.paper
  primary    = palette.brand
  chart      = [palette.brand]
}
`,
		},
		{
			name: "dark block reordered",
			input: `dark {
  border = "oklch(0.3 0 0)"
  primary = "oklch(0.8 0.1 230)"
}
`,
			expected: `dark {
  primary = "oklch(0.8 0.1 230)"
  border  = "oklch(0.3 0 0)"
}
`,
		},
		{
			name: "comments travel with their attribute",
			input: `colors {
  primary = palette.brand
  # base surface
  background = palette.paper
}
`,
			expected: `colors {
  # base surface
  background = palette.paper
  primary    = palette.brand
}
`,
		},
		{
			name: "palette and tokens keep source order",
			input: `palette {
  zeta  = "#000000"
  alpha = "#ffffff"
}

tokens {
  light {
    ring       = "oklch(0.7 0 0)"
    background = "oklch(1 0 0)"
  }
}
`,
			expected: `palette {
  zeta  = "#000000"
  alpha = "#ffffff"
}

tokens {
  light {
    ring       = "oklch(0.7 0 0)"
    background = "oklch(1 0 0)"
  }
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Format(tt.input)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			result = strings.TrimSuffix(result, "\n")
			expected := strings.TrimSuffix(tt.expected, "\n")

			if result != expected {
				t.Errorf("Format() = %q, want %q", result, expected)
			}
		})
	}
}

func TestFormatInvalidHCL(t *testing.T) {
	input := `colors { primary = "oklch(0.5 0.1 10)"`
	if _, err := Format(input); err != nil {
		t.Errorf("Format() on incomplete HCL should not error, got: %v", err)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ocean.theme.hcl")
	if err := os.WriteFile(path, []byte(`meta{name="Ocean"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	changed, err := File(path, true)
	if err != nil {
		t.Fatalf("File(check) error: %v", err)
	}
	if !changed {
		t.Error("check mode should report unformatted file")
	}
	data, _ := os.ReadFile(path)
	if string(data) != `meta{name="Ocean"}` {
		t.Error("check mode wrote the file")
	}

	changed, err = File(path, false)
	if err != nil || !changed {
		t.Fatalf("File(write) = %v, %v", changed, err)
	}
	changed, err = File(path, false)
	if err != nil || changed {
		t.Errorf("second File(write) = %v, %v, want unchanged", changed, err)
	}
}

func TestFile_Missing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "nope.theme.hcl"), true); err == nil {
		t.Error("expected error for missing file")
	}
}
