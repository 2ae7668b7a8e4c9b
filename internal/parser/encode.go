package parser

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/jsvensson/themekit/internal/theme"
)

// Encode renders a theme as a definition file made of a meta block, a tokens
// block holding every token verbatim and one component block per override
// group. Decoding the output and building it yields the same tokens.
func Encode(cfg *theme.Config, meta Meta) []byte {
	if meta.Name == "" {
		meta.Name = cfg.Name()
	}

	f := hclwrite.NewEmptyFile()
	root := f.Body()

	mb := root.AppendNewBlock("meta", nil).Body()
	mb.SetAttributeValue("name", cty.StringVal(meta.Name))
	if meta.Author != "" {
		mb.SetAttributeValue("author", cty.StringVal(meta.Author))
	}
	if meta.Description != "" {
		mb.SetAttributeValue("description", cty.StringVal(meta.Description))
	}
	if meta.Extends != "" {
		mb.SetAttributeValue("extends", cty.StringVal(meta.Extends))
	}

	root.AppendNewline()
	tb := root.AppendNewBlock("tokens", nil).Body()
	writeTokens(tb.AppendNewBlock("light", nil).Body(), cfg.Light())
	tb.AppendNewline()
	writeTokens(tb.AppendNewBlock("dark", nil).Body(), cfg.Dark())

	comps := cfg.Components()
	for _, name := range comps.Names() {
		root.AppendNewline()
		overrides, _ := comps.Component(name)
		writeTokens(root.AppendNewBlock("component", []string{name}).Body(), overrides)
	}

	return hclwrite.Format(f.Bytes())
}

func writeTokens(body *hclwrite.Body, tokens theme.TokenSet) {
	for _, name := range tokens.Names() {
		body.SetAttributeValue(name, cty.StringVal(tokens.Value(name)))
	}
}
