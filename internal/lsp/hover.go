package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themekit/internal/color"
)

// before reports whether a sorts before b in document order.
func before(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

// posInRange reports whether pos lies in the half-open range r.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	return !before(pos, r.Start) && before(pos, r.End)
}

// offsetAt converts pos to a byte offset in content. The character is clamped
// to the end of its line; ok is false when the line does not exist.
func offsetAt(content string, pos protocol.Position) (int, bool) {
	off := 0
	for range pos.Line {
		i := strings.IndexByte(content[off:], '\n')
		if i < 0 {
			return len(content), false
		}
		off += i + 1
	}
	lineLen := strings.IndexByte(content[off:], '\n')
	if lineLen < 0 {
		lineLen = len(content) - off
	}
	return off + min(int(pos.Character), lineLen), true
}

// extractText returns the source text covered by r.
func extractText(content string, r protocol.Range) string {
	start, ok := offsetAt(content, r.Start)
	if !ok {
		return ""
	}
	end, _ := offsetAt(content, r.End)
	if end < start {
		return ""
	}
	return content[start:end]
}

// hover describes the color value at the cursor. References are headed by
// their source text. When the cursor sits on a palette entry or scale step
// inside the expression, that entry and its own value are listed too.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}
	i := colorAt(result.Colors, pos)
	if i < 0 {
		return nil
	}
	cl := result.Colors[i]

	var sections []string
	if cl.IsRef {
		sections = append(sections, "**"+extractText(content, cl.Range)+"**")
	}
	sections = append(sections, describeColor(cl.Color))
	if ref, ok := refAt(content, pos); ok {
		if line := resolvedLine(result, ref); line != "" {
			sections = append(sections, line)
		}
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: strings.Join(sections, "\n\n"),
		},
		Range: &result.Colors[i].Range,
	}
}

func colorAt(colors []ColorLocation, pos protocol.Position) int {
	for i, cl := range colors {
		if posInRange(pos, cl.Range) {
			return i
		}
	}
	return -1
}

func describeColor(c color.OKLCH) string {
	s := fmt.Sprintf("`%s` · `%s`", c, c.Hex())
	if !c.InGamut() {
		s += " (clipped to sRGB)"
	}
	return s
}

// resolvedLine names the palette entry or scale step a reference reads, with
// its value when the file defines it.
func resolvedLine(result *AnalysisResult, ref refTarget) string {
	f := result.File
	if f == nil {
		return ""
	}
	if name, ok := strings.CutPrefix(ref.Path, "scale."); ok && ref.Step != "" {
		name, _, _ = strings.Cut(name, "[")
		line := fmt.Sprintf("step `%s` of `scale.%s`", ref.Step, name)
		if v, ok := f.Scales[name][ref.Step]; ok {
			line += " = `" + v + "`"
		}
		return line
	}
	if path, ok := strings.CutPrefix(ref.Path, "palette."); ok {
		if v, ok := f.Palette[path]; ok {
			return "`" + ref.Path + "` = `" + v + "`"
		}
	}
	return ""
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	content, ok := s.docs.Get(uri)
	if result == nil || !ok {
		return nil, nil
	}
	return hover(result, content, params.Position), nil
}
