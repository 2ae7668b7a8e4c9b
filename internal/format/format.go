package format

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/jsvensson/themekit/internal/parser"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)

// colorOrder is the canonical attribute order of colors and dark blocks.
var colorOrder = append(slices.Clone(parser.GroupKeys), "chart", "sidebar")

// Format returns theme file source in canonical style: hclwrite layout, at
// most one blank line in a row, none just inside braces, and the attributes
// of colors and dark blocks in canonical order. Comments above an attribute
// move with it.
//
// Source that does not parse is still laid out, but not reordered, so the
// formatter can run while a file is being edited.
func Format(content string) (string, error) {
	src := []byte(content)
	if f, diags := hclwrite.ParseConfig(src, "", hcl.InitialPos); !diags.HasErrors() {
		for _, block := range f.Body().Blocks() {
			switch block.Type() {
			case "colors", "dark":
				reorder(block.Body(), colorOrder)
			}
		}
		src = f.Bytes()
	}

	formatted := hclwrite.Format(src)
	collapsed := multipleBlankLines.ReplaceAllString(string(formatted), "\n\n")
	collapsed = blankLineAfterOpenBrace.ReplaceAllString(collapsed, "{\n")
	collapsed = blankLineBeforeCloseBrace.ReplaceAllString(collapsed, "\n${1}")
	return collapsed, nil
}

// reorder rewrites a block body with known attributes first, in order, and
// unknown ones after them in source order. Bodies holding nested blocks are
// left alone.
func reorder(body *hclwrite.Body, order []string) {
	if len(body.Blocks()) > 0 {
		return
	}
	attrs := body.Attributes()
	if len(attrs) < 2 {
		return
	}

	var sorted, rest []string
	for _, name := range order {
		if _, ok := attrs[name]; ok {
			sorted = append(sorted, name)
		}
	}
	for _, name := range sourceOrder(body) {
		if !slices.Contains(order, name) {
			rest = append(rest, name)
		}
	}
	if len(sorted)+len(rest) != len(attrs) {
		return
	}

	var tokens []hclwrite.Tokens
	for _, name := range append(sorted, rest...) {
		tokens = append(tokens, attrs[name].BuildTokens(nil))
	}
	body.Clear()
	body.AppendNewline()
	for _, t := range tokens {
		body.AppendUnstructuredTokens(t)
	}
}

// sourceOrder lists attribute names in the order they appear, taking the
// first identifier of each line.
func sourceOrder(body *hclwrite.Body) []string {
	attrs := body.Attributes()
	var names []string
	lineStart := true
	for _, tok := range body.BuildTokens(nil) {
		if lineStart && tok.Type == hclsyntax.TokenIdent {
			name := string(tok.Bytes)
			if _, ok := attrs[name]; ok && !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
		lineStart = tok.Type == hclsyntax.TokenNewline || tok.Type == hclsyntax.TokenComment
	}
	return names
}

// File formats a theme file in place and reports whether it changed. With
// check set the file is left untouched.
func File(path string, check bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	formatted, err := Format(string(data))
	if err != nil {
		return false, fmt.Errorf("formatting %s: %w", path, err)
	}
	if bytes.Equal(data, []byte(formatted)) {
		return false, nil
	}
	if !check {
		if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
			return true, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return true, nil
}
