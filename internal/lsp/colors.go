package lsp

import (
	"math"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themekit/internal/color"
)

// colorToLSP converts an OKLCH color to a protocol.Color, clipping channels
// that fall outside sRGB.
func colorToLSP(c color.OKLCH) protocol.Color {
	r, g, b := c.RGB()
	return protocol.Color{
		Red:   float32(unit(r)),
		Green: float32(unit(g)),
		Blue:  float32(unit(b)),
		Alpha: float32(c.Alpha()),
	}
}

// colorFromLSP converts a protocol.Color to OKLCH. Opaque colors carry no
// alpha component.
func colorFromLSP(c protocol.Color) color.OKLCH {
	out := color.FromRGB(float64(c.Red), float64(c.Green), float64(c.Blue))
	if c.Alpha < 1 {
		out.A = math.Round(float64(c.Alpha)*1000) / 1000
		out.HasAlpha = true
	}
	return out
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation produces presentations for a picked color. Only quoted
// literals are rewritten: the oklch form first, then hex. References and
// function calls are never replaced by literal values.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	if !strings.HasPrefix(text, `"`) {
		return []protocol.ColorPresentation{}
	}

	picked := colorFromLSP(params.Color)
	labels := []string{picked.String()}
	if !picked.HasAlpha {
		labels = append(labels, picked.Hex())
	}

	presentations := make([]protocol.ColorPresentation, 0, len(labels))
	for _, label := range labels {
		presentations = append(presentations, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: `"` + label + `"`,
			},
		})
	}
	return presentations
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
