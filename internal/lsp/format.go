package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themekit/internal/format"
)

// formatDocument returns the edits that bring content into canonical style.
// It works on partial HCL, so it can run while the user is still typing.
// No edits are returned when the content is already formatted.
func formatDocument(content string) ([]protocol.TextEdit, error) {
	formatted, err := format.Format(content)
	if err != nil {
		return nil, err
	}
	if formatted == content {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{
		Range:   fullRange(content),
		NewText: formatted,
	}}, nil
}

// fullRange spans the whole document.
func fullRange(content string) protocol.Range {
	lines := splitLines(content)
	last := lines[len(lines)-1]
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End: protocol.Position{
			Line:      uint32(len(lines) - 1),
			Character: uint32(len(strings.TrimSuffix(last, "\r"))),
		},
	}
}

// textDocumentFormatting handles textDocument/formatting requests.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return formatDocument(content)
}
