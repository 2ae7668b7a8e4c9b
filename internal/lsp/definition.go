package lsp

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

// BlockTypes are the namespaces that expressions in a theme file can
// reference.
var BlockTypes = map[string]struct{}{
	"palette": {},
	"scale":   {},
}

// refTarget is the palette or scale reference under the cursor.
type refTarget struct {
	// Symbol is the definition the cursor points at: the traversal cut after
	// the segment under the cursor ("palette.gray" on gray in
	// palette.gray.light). Scale indexes point at the scale.
	Symbol string
	// Path is the whole traversal, e.g. palette.gray.light or scale.brand["100"].
	Path string
	// Step is the indexed scale step, if any.
	Step  string
	Range hcl.Range
}

// refAt finds the palette or scale traversal at pos in the document. The
// document is parsed on its own so that references in expressions that failed
// to evaluate still resolve.
func refAt(content string, pos protocol.Position) (refTarget, bool) {
	offset, ok := offsetAt(content, pos)
	if !ok {
		return refTarget{}, false
	}
	file, _ := hclsyntax.ParseConfig([]byte(content), "", hcl.Pos{Line: 1, Column: 1})
	if file == nil {
		return refTarget{}, false
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return refTarget{}, false
	}

	var found *hclsyntax.ScopeTraversalExpr
	hclsyntax.VisitAll(body, func(n hclsyntax.Node) hcl.Diagnostics {
		if expr, ok := n.(*hclsyntax.ScopeTraversalExpr); ok && expr.SrcRange.ContainsOffset(offset) {
			found = expr
		}
		return nil
	})
	if found == nil {
		return refTarget{}, false
	}
	return targetOf(found.Traversal, offset)
}

func targetOf(trav hcl.Traversal, offset int) (refTarget, bool) {
	if len(trav) == 0 {
		return refTarget{}, false
	}
	root, ok := trav[0].(hcl.TraverseRoot)
	if !ok {
		return refTarget{}, false
	}
	if _, ok := BlockTypes[root.Name]; !ok {
		return refTarget{}, false
	}

	t := refTarget{Range: trav.SourceRange()}
	var path strings.Builder
	path.WriteString(root.Name)
	if root.SrcRange.ContainsOffset(offset) {
		t.Symbol = root.Name
	}
	for _, seg := range trav[1:] {
		switch seg := seg.(type) {
		case hcl.TraverseAttr:
			path.WriteString("." + seg.Name)
			if seg.SrcRange.ContainsOffset(offset) {
				t.Symbol = path.String()
			}
		case hcl.TraverseIndex:
			if t.Step == "" {
				t.Step = indexKey(seg.Key)
			}
			if seg.SrcRange.ContainsOffset(offset) {
				t.Symbol = path.String()
			}
			path.WriteString(`["` + indexKey(seg.Key) + `"]`)
		}
	}
	t.Path = path.String()
	return t, t.Symbol != ""
}

func indexKey(v cty.Value) string {
	if !v.IsKnown() || v.IsNull() {
		return ""
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Number:
		return v.AsBigFloat().Text('f', -1)
	}
	return ""
}

// definition returns the location of the palette entry or scale referenced
// at the cursor, or nil when the cursor is not on a known reference.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}
	ref, ok := refAt(content, pos)
	if !ok {
		return nil
	}
	rng, ok := result.Symbols[ref.Symbol]
	if !ok {
		return nil
	}
	return &protocol.Location{URI: protocol.DocumentUri(uri), Range: rng}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	content, ok := s.docs.Get(uri)
	if result == nil || !ok {
		return nil, nil
	}
	return definition(result, content, uri, params.Position), nil
}
