package lsp

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themekit/internal/color"
	"github.com/jsvensson/themekit/internal/parser"
	"github.com/jsvensson/themekit/internal/registry"
	"github.com/jsvensson/themekit/internal/theme"
	"github.com/jsvensson/themekit/internal/validate"
)

const diagSource = "themekit"

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

// AnalysisResult holds all information produced by analyzing a theme file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	File        *parser.File
	Symbols     map[string]protocol.Range // "palette.brand", "palette.gray.light", "scale.brand" -> definition range
	Colors      []ColorLocation
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.OKLCH
	IsRef bool // true if the value references palette or scale
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(pos.Line-1, 0)),
		Character: uint32(max(pos.Column-1, 0)),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze decodes a theme file from memory and produces diagnostics, a symbol
// table and color locations. Decoding errors are all reported; the theme is
// only built, and checked for missing tokens, when decoding succeeded.
// themes resolves meta.extends and may be nil.
func Analyze(filename, content string, themes *registry.Map) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}

	f, diags := parser.ParseBytes([]byte(content), filename)
	result.File = f
	for _, d := range diags {
		result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
	}
	for name, rng := range f.Symbols {
		result.Symbols[name] = hclRangeToLSP(rng)
	}
	for _, ref := range f.Refs {
		result.Colors = append(result.Colors, ColorLocation{
			Range: hclRangeToLSP(ref.Range),
			Color: ref.Color,
			IsRef: ref.IsRef,
		})
	}
	if diags.HasErrors() {
		return result
	}

	fileStart := hcl.Range{
		Filename: filename,
		Start:    hcl.Pos{Line: 1, Column: 1, Byte: 0},
		End:      hcl.Pos{Line: 1, Column: 1, Byte: 0},
	}

	var base *theme.Config
	if ext := f.Meta.Extends; ext != "" {
		cfg, ok := lookupTheme(themes, ext)
		if !ok {
			result.addError(fileStart, fmt.Sprintf("meta.extends: unknown theme %q", ext))
			return result
		}
		base = cfg
	}

	cfg := f.Build(base)
	for _, m := range theme.Modes {
		if missing := validate.Missing(cfg, m); len(missing) > 0 {
			result.addWarning(fileStart, fmt.Sprintf("%s mode missing tokens: %s", m, strings.Join(missing, ", ")))
		}
	}

	return result
}

func lookupTheme(themes *registry.Map, name string) (*theme.Config, bool) {
	if themes == nil {
		return nil, false
	}
	return themes.Get(name)
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}
