package validate

import (
	"fmt"

	"github.com/jsvensson/themekit/internal/builder"
	"github.com/jsvensson/themekit/internal/theme"
)

// Result is the outcome of Theme.
type Result struct {
	IsValid bool
	Errors  []string
}

// Theme checks that both modes define every required token. It never fails;
// each missing token yields "Missing <mode> theme property: <token>", light
// mode first, tokens in vocabulary order. Component overrides are not checked.
// A nil theme has no tokens and fails every check.
func Theme(cfg *theme.Config) Result {
	var errs []string
	for _, m := range theme.Modes {
		tokens := cfg.Tokens(m)
		for _, token := range theme.RequiredTokens {
			if !tokens.Has(token) {
				errs = append(errs, fmt.Sprintf("Missing %s theme property: %s", m, token))
			}
		}
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// Missing returns the required tokens a mode does not define.
func Missing(cfg *theme.Config, m theme.Mode) []string {
	var missing []string
	tokens := cfg.Tokens(m)
	for _, token := range theme.RequiredTokens {
		if !tokens.Has(token) {
			missing = append(missing, token)
		}
	}
	return missing
}

// AutoFix repairs a theme: it applies the builder's auto-completion rules and
// then fills every required token that is still missing with the neutral
// default. The result always passes Theme. Tokens already present are kept
// as-is, even when their values are not valid colors.
func AutoFix(cfg *theme.Config) *theme.Config {
	if cfg == nil {
		cfg = theme.New("", nil, nil, nil)
	}
	s := builder.AutoComplete(builder.FromConfig(cfg))
	for _, m := range theme.Modes {
		tokens := s.Tokens(m)
		for _, token := range theme.RequiredTokens {
			if _, ok := tokens[token]; !ok {
				tokens[token] = builder.DefaultValue(m, token)
			}
		}
	}
	return s.Config()
}
