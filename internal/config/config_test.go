package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func isolated(t *testing.T, extra ...Option) []Option {
	t.Helper()
	dir := t.TempDir()
	return append([]Option{
		WithWorkingDir(dir),
		WithUserConfig(filepath.Join(dir, "user.yaml")),
		WithProjectConfig(filepath.Join(dir, "project.yaml")),
	}, extra...)
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load(isolated(t)...)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := &Settings{
		Theme:     "neutral",
		Mode:      DefaultMode,
		CSS:       CSSSettings{Output: StdoutPath},
	}
	if diff := cmp.Diff(want, s, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, filepath.Join(dir, "user", "config.yaml"), `
theme: rose
mode: dark
theme-dirs:
  - ~/themes
css:
  output: user.css
`)
	project := writeFile(t, filepath.Join(dir, "project", projectConfigName), `
theme: ocean
`)
	t.Setenv("THEMEKIT_CSS_OUTPUT", "env.css")

	s, err := Load(
		WithWorkingDir(dir),
		WithUserConfig(user),
		WithProjectConfig(project),
		WithOverrides(map[string]any{KeyMode: "light"}),
	)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := &Settings{
		Theme:     "ocean",
		Mode:      "light",
		ThemeDirs: []string{"~/themes"},
		CSS:       CSSSettings{Output: "env.css"},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvThemeDirs(t *testing.T) {
	t.Setenv("THEMEKIT_THEME_DIRS", "a,b")

	s, err := Load(isolated(t)...)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, s.ThemeDirs); diff != "" {
		t.Errorf("theme dirs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDiscoversProjectConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, projectConfigName), "theme: slate\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	s, err := Load(WithWorkingDir(nested), WithUserConfig(filepath.Join(root, "none.yaml")))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Theme != "slate" {
		t.Errorf("Theme = %q, want slate", s.Theme)
	}
}

func TestLoadEmptyConfigFile(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, filepath.Join(dir, "config.yaml"), "\n\n")

	s, err := Load(WithWorkingDir(dir), WithUserConfig(user), WithProjectConfig(filepath.Join(dir, "missing.yaml")))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Theme != "neutral" {
		t.Errorf("Theme = %q, want neutral", s.Theme)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		opts    func(t *testing.T) []Option
		wantErr string
	}{
		{
			name: "invalid mode",
			opts: func(t *testing.T) []Option {
				return isolated(t, WithOverrides(map[string]any{KeyMode: "sepia"}))
			},
			wantErr: `mode must be one of [light dark], got "sepia"`,
		},
		{
			name: "empty theme",
			opts: func(t *testing.T) []Option {
				return isolated(t, WithOverrides(map[string]any{KeyTheme: ""}))
			},
			wantErr: "theme failed validation for tag 'required'",
		},
		{
			name: "empty theme dir",
			opts: func(t *testing.T) []Option {
				return isolated(t, WithOverrides(map[string]any{KeyThemeDirs: []string{"themes", ""}}))
			},
			wantErr: "theme-dirs[1] failed validation",
		},
		{
			name: "empty css output",
			opts: func(t *testing.T) []Option {
				return isolated(t, WithOverrides(map[string]any{KeyCSSOutput: ""}))
			},
			wantErr: "css.output failed validation",
		},
		{
			name: "malformed yaml",
			opts: func(t *testing.T) []Option {
				dir := t.TempDir()
				bad := writeFile(t, filepath.Join(dir, "bad.yaml"), "theme: [unclosed\n")
				return []Option{WithWorkingDir(dir), WithUserConfig(bad), WithProjectConfig(filepath.Join(dir, "none.yaml"))}
			},
			wantErr: "load user config",
		},
		{
			name: "config path is a directory",
			opts: func(t *testing.T) []Option {
				dir := t.TempDir()
				return []Option{WithWorkingDir(dir), WithUserConfig(filepath.Join(dir, "none.yaml")), WithProjectConfig(dir)}
			},
			wantErr: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.opts(t)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err, tt.wantErr)
			}
		})
	}
}
