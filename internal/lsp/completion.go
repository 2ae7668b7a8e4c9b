package lsp

import (
	"slices"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themekit/internal/parser"
	"github.com/jsvensson/themekit/internal/theme"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot      blockContext = iota
	contextMeta                   // inside meta {}
	contextPalette                // inside palette {}
	contextScale                  // inside scale "name" {}
	contextColors                 // inside colors {} or dark {}
	contextSidebar                // inside sidebar {}
	contextTokens                 // inside tokens {} (top level)
	contextTokenSet               // inside tokens { light {} } or tokens { dark {} }
	contextComponent              // inside component "name" {}
)

// topLevelBlocks are the valid top-level block names.
var topLevelBlocks = []string{"meta", "palette", "scale", "colors", "dark", "sidebar", "tokens", "component"}

// labeledBlocks take a name label.
var labeledBlocks = map[string]bool{"scale": true, "component": true}

var metaAttributes = []string{"name", "author", "description", "extends"}

var sidebarAttributes = []string{"background", "foreground", "dark_background", "dark_foreground"}

// colorsAttributes are the keys of colors and dark blocks.
var colorsAttributes = append(slices.Clone(parser.GroupKeys), "chart", "sidebar")

// functionSignatures documents the color functions available in expressions.
var functionSignatures = []struct {
	name, detail, snippet string
}{
	{"lighten", "lighten(color, amount)", "lighten(${1:color}, ${2:0.1})"},
	{"darken", "darken(color, amount)", "darken(${1:color}, ${2:0.1})"},
	{"saturate", "saturate(color, amount)", "saturate(${1:color}, ${2:0.05})"},
	{"desaturate", "desaturate(color, amount)", "desaturate(${1:color}, ${2:0.05})"},
	{"rotate_hue", "rotate_hue(color, degrees)", "rotate_hue(${1:color}, ${2:30})"},
	{"alpha", "alpha(color, opacity)", "alpha(${1:color}, ${2:0.5})"},
	{"invert", "invert(color)", "invert(${1:color})"},
	{"contrast", "contrast(background)", "contrast(${1:color})"},
	{"gamut", "gamut(color)", "gamut(${1:color})"},
	{"hex", "hex(color)", "hex(${1:color})"},
}

// complete produces completion items given an analysis result, document content,
// and cursor position. This is the core logic, decoupled from the LSP protocol
// handler for testability. themes are offered as values of meta.extends.
func complete(result *AnalysisResult, content string, pos protocol.Position, themes []string) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	if items := tryReferenceCompletion(result, textBeforeCursor); items != nil {
		return items
	}

	ctx := determineBlockContext(lines, int(pos.Line))

	if isValuePosition(textBeforeCursor) {
		if ctx == contextMeta && attributeName(textBeforeCursor) == "extends" {
			return themeCompletions(themes)
		}
		return valueCompletions()
	}

	switch ctx {
	case contextRoot:
		return topLevelCompletions()
	case contextMeta:
		return attributeCompletions(lines, int(pos.Line), metaAttributes, protocol.CompletionItemKindProperty)
	case contextColors:
		return attributeCompletions(lines, int(pos.Line), colorsAttributes, protocol.CompletionItemKindProperty)
	case contextSidebar:
		return attributeCompletions(lines, int(pos.Line), sidebarAttributes, protocol.CompletionItemKindProperty)
	case contextScale:
		return attributeCompletions(lines, int(pos.Line), []string{"base"}, protocol.CompletionItemKindProperty)
	case contextTokens:
		return tokenSetCompletions()
	case contextTokenSet, contextComponent:
		return attributeCompletions(lines, int(pos.Line), theme.RequiredTokens, protocol.CompletionItemKindConstant)
	}

	return nil
}

// tryReferenceCompletion completes "palette." paths and "scale." names at the
// end of textBeforeCursor.
func tryReferenceCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if result == nil || result.File == nil {
		return nil
	}

	pIdx := strings.LastIndex(textBeforeCursor, "palette.")
	sIdx := strings.LastIndex(textBeforeCursor, "scale.")
	switch {
	case pIdx == -1 && sIdx == -1:
		return nil
	case sIdx > pIdx:
		rest := textBeforeCursor[sIdx+len("scale."):]
		if strings.ContainsAny(rest, ".[ ") {
			return nil
		}
		return scaleCompletions(result.File)
	}

	// Walk the palette tree based on the path segments.
	// - "palette."              -> children of root (segments = nil)
	// - "palette.gray."         -> children of "gray"
	// - "palette.gr"            -> children of root (client filters partial match)
	// - "palette.gray.li"       -> children of "gray" (client filters "li")
	pathStr := textBeforeCursor[pIdx+len("palette."):]
	var segments []string
	if before, ok := strings.CutSuffix(pathStr, "."); ok {
		segments = strings.Split(before, ".")
	} else if strings.Contains(pathStr, ".") {
		parts := strings.Split(pathStr, ".")
		segments = parts[:len(parts)-1]
	}

	return paletteChildren(result.File.Palette, strings.Join(segments, "."))
}

// paletteChildren lists the direct children of a dotted palette path.
// Leaves show their value, groups are offered as modules.
func paletteChildren(palette map[string]string, prefix string) []protocol.CompletionItem {
	if prefix != "" {
		prefix += "."
	}

	groups := make(map[string]bool)
	leaves := make(map[string]string)
	for path, value := range palette {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok {
			continue
		}
		if name, _, nested := strings.Cut(rest, "."); nested {
			groups[name] = true
		} else {
			leaves[rest] = value
		}
	}
	if len(groups) == 0 && len(leaves) == 0 {
		return nil
	}

	var items []protocol.CompletionItem
	for name, value := range leaves {
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   completionKindPtr(protocol.CompletionItemKindColor),
			Detail: strPtr(value),
		})
	}
	for name := range groups {
		if _, ok := leaves[name]; ok {
			continue
		}
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   completionKindPtr(protocol.CompletionItemKindModule),
			Detail: strPtr("color group"),
		})
	}
	slices.SortFunc(items, func(a, b protocol.CompletionItem) int { return strings.Compare(a.Label, b.Label) })
	return items
}

func scaleCompletions(f *parser.File) []protocol.CompletionItem {
	var names []string
	for name := range f.Scales {
		names = append(names, name)
	}
	slices.Sort(names)

	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		detail := "scale"
		if base, ok := f.Scales[name]["500"]; ok {
			detail = base
		}
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   completionKindPtr(protocol.CompletionItemKindModule),
			Detail: strPtr(detail),
		})
	}
	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// attributeName returns the attribute name left of the last "=".
func attributeName(textBeforeCursor string) string {
	name, _, _ := strings.Cut(textBeforeCursor, "=")
	return strings.TrimSpace(name)
}

// valueCompletions returns completion items for a value position, including
// function snippets and reference triggers.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	items := make([]protocol.CompletionItem, 0, len(functionSignatures)+2)
	for _, fn := range functionSignatures {
		items = append(items, protocol.CompletionItem{
			Label:            fn.name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(fn.detail),
			InsertText:       strPtr(fn.snippet),
			InsertTextFormat: &snippetFormat,
		})
	}
	items = append(items,
		protocol.CompletionItem{
			Label:      "palette",
			Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
			Detail:     strPtr("palette reference"),
			InsertText: strPtr("palette."),
		},
		protocol.CompletionItem{
			Label:      "scale",
			Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
			Detail:     strPtr("scale reference"),
			InsertText: strPtr("scale."),
		},
	)
	return items
}

func themeCompletions(themes []string) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(themes))
	for _, name := range themes {
		items = append(items, protocol.CompletionItem{
			Label:      name,
			Kind:       completionKindPtr(protocol.CompletionItemKindValue),
			Detail:     strPtr("registered theme"),
			InsertText: strPtr(`"` + name + `"`),
		})
	}
	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine && i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// Process opening braces: the block name is the first word on the line
		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				for range opens {
					stack = append(stack, parts[0])
				}
			}
		}

		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	switch {
	case stack[0] == "palette":
		return contextPalette
	case stack[0] == "tokens" && len(stack) == 2:
		return contextTokenSet
	case len(stack) > 1:
		return contextRoot
	}

	switch stack[0] {
	case "meta":
		return contextMeta
	case "palette":
		return contextPalette
	case "scale":
		return contextScale
	case "colors", "dark":
		return contextColors
	case "sidebar":
		return contextSidebar
	case "tokens":
		return contextTokens
	case "component":
		return contextComponent
	default:
		return contextRoot
	}
}

// attributeCompletions offers names that are not yet defined in the block
// surrounding the cursor.
func attributeCompletions(lines []string, cursorLine int, names []string, kind protocol.CompletionItemKind) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)

	var items []protocol.CompletionItem
	for _, name := range names {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  completionKindPtr(kind),
			})
		}
	}

	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to its closing brace) and returns attribute names already
// defined (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		closes := strings.Count(line, "}")
		opens := strings.Count(line, "{")
		if i == cursorLine {
			closes = 0
		}
		depth += closes - opens
		if depth < 0 {
			startLine = i
			break
		}
	}

	depth = 0
	for i := startLine + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if depth == 0 && i != cursorLine {
			if eqIdx := strings.Index(line, "="); eqIdx > 0 {
				name := strings.TrimSpace(line[:eqIdx])
				if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
					defined[name] = true
				}
			}
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			break
		}
	}

	return defined
}

// tokenSetCompletions returns the light and dark sub-blocks of tokens {}.
func tokenSetCompletions() []protocol.CompletionItem {
	return blockSnippets([]string{"light", "dark"})
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	return blockSnippets(topLevelBlocks)
}

func blockSnippets(names []string) []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var items []protocol.CompletionItem
	for _, name := range names {
		snippet := name + " {\n  $0\n}"
		if labeledBlocks[name] {
			snippet = name + ` "${1:name}" {` + "\n  $0\n}"
		}
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}
	if hasErrors(result) {
		// The line being typed usually does not parse yet; analyze the rest
		// of the document so references can still be completed.
		result = s.analyze(uri, blankLine(content, int(params.Position.Line)))
	}

	var themes []string
	if s.themes != nil {
		themes = s.themes.Names()
	}
	return complete(result, content, params.Position, themes), nil
}

func hasErrors(result *AnalysisResult) bool {
	for _, d := range result.Diagnostics {
		if d.Severity != nil && *d.Severity == DiagError {
			return true
		}
	}
	return false
}

// blankLine returns content with the given line emptied.
func blankLine(content string, line int) string {
	lines := splitLines(content)
	if line < len(lines) {
		lines[line] = ""
	}
	return strings.Join(lines, "\n")
}
