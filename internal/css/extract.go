package css

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsvensson/themekit/internal/theme"
)

// DefaultName names extracted themes unless WithName overrides it.
const DefaultName = "imported"

// DefaultRequiredTokens must all appear in the light scope for a stylesheet
// to count as a theme.
var DefaultRequiredTokens = []string{"background", "foreground", "primary"}

// ErrNotATheme is returned by Parse when the stylesheet lacks the tokens
// required to form a theme.
var ErrNotATheme = errors.New("stylesheet does not define a theme")

type extractConfig struct {
	name         string
	required     []string
	darkRequired bool
}

// ExtractOption configures Extract and Parse.
type ExtractOption func(*extractConfig)

// WithName sets the name of the extracted theme.
func WithName(name string) ExtractOption {
	return func(c *extractConfig) { c.name = name }
}

// WithRequiredTokens replaces DefaultRequiredTokens.
func WithRequiredTokens(tokens ...string) ExtractOption {
	return func(c *extractConfig) { c.required = tokens }
}

// WithDarkRequired makes the required tokens mandatory in the dark scope too.
func WithDarkRequired() ExtractOption {
	return func(c *extractConfig) { c.darkRequired = true }
}

// Extract pulls a theme out of stylesheet text. It returns nil when the text
// cannot be tokenized or does not define the required tokens.
func Extract(text string, opts ...ExtractOption) *theme.Config {
	cfg, err := Parse(text, opts...)
	if err != nil {
		log.Debugf("extract: %s", err)
		return nil
	}
	return cfg
}

// Parse is Extract with the reason for a failed extraction.
//
// Custom properties declared under :root, html, :host, .light or
// [data-theme=light] become light tokens; those under .dark, :root.dark,
// html.dark or [data-theme=dark] become dark tokens. Light selectors nested in
// @media (prefers-color-scheme: dark) count as dark. Other at-rules such as
// @layer are descended into. Later declarations win.
func Parse(text string, opts ...ExtractOption) (*theme.Config, error) {
	c := extractConfig{name: DefaultName, required: DefaultRequiredTokens}
	for _, opt := range opts {
		opt(&c)
	}

	root, err := parseStylesheet(text)
	if err != nil {
		return nil, fmt.Errorf("tokenizing stylesheet: %w", err)
	}

	light := map[string]string{}
	dark := map[string]string{}
	collect(root, false, light, dark)

	if missing := missingTokens(light, c.required); len(missing) > 0 {
		return nil, fmt.Errorf("%w: light scope missing %s", ErrNotATheme, strings.Join(missing, ", "))
	}
	if c.darkRequired {
		if missing := missingTokens(dark, c.required); len(missing) > 0 {
			return nil, fmt.Errorf("%w: dark scope missing %s", ErrNotATheme, strings.Join(missing, ", "))
		}
	}

	return theme.New(c.name, light, dark, nil), nil
}

type scope int

const (
	scopeNone scope = iota
	scopeLight
	scopeDark
)

var lightSelectors = map[string]bool{
	":root":              true,
	"html":               true,
	":host":              true,
	".light":             true,
	":root.light":        true,
	"[data-theme=light]": true,
}

var darkSelectors = map[string]bool{
	".dark":                  true,
	":root.dark":             true,
	"html.dark":              true,
	".dark:root":             true,
	":host(.dark)":           true,
	"[data-theme=dark]":      true,
	":root[data-theme=dark]": true,
	"html[data-theme=dark]":  true,
}

func collect(r *rule, darkMedia bool, light, dark map[string]string) {
	for _, child := range r.rules {
		if strings.HasPrefix(child.prelude, "@") {
			collect(child, darkMedia || isDarkMedia(child.prelude), light, dark)
			continue
		}

		var target map[string]string
		switch classify(child.prelude) {
		case scopeLight:
			target = light
			if darkMedia {
				target = dark
			}
		case scopeDark:
			target = dark
		default:
			continue
		}

		for _, d := range child.decls {
			name, ok := strings.CutPrefix(d.property, VarPrefix)
			if !ok || name == "" || d.value == "" {
				continue
			}
			target[name] = d.value
		}
	}
}

func isDarkMedia(prelude string) bool {
	if !strings.HasPrefix(strings.ToLower(prelude), "@media") {
		return false
	}
	compact := strings.ToLower(strings.Join(strings.Fields(prelude), ""))
	return strings.Contains(compact, "prefers-color-scheme:dark")
}

var selectorCleaner = strings.NewReplacer(`"`, "", `'`, "", " ", "")

// classify maps a selector list to a scope. Dark wins when a list mixes both.
func classify(prelude string) scope {
	s := scopeNone
	for _, sel := range strings.Split(prelude, ",") {
		sel = selectorCleaner.Replace(strings.ToLower(strings.TrimSpace(sel)))
		switch {
		case darkSelectors[sel]:
			return scopeDark
		case lightSelectors[sel]:
			s = scopeLight
		}
	}
	return s
}

func missingTokens(tokens map[string]string, required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := tokens[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
