package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tliron/commonlog"

	"github.com/jsvensson/themekit/internal/builder"
	"github.com/jsvensson/themekit/internal/color"
)

var log = commonlog.GetLogger("themekit.parser")

// Extension is the file suffix of theme definition files.
const Extension = ".theme.hcl"

// Meta holds theme metadata.
type Meta struct {
	Name        string `hcl:"name,optional"`
	Author      string `hcl:"author,optional"`
	Description string `hcl:"description,optional"`
	Extends     string `hcl:"extends,optional"`
}

// Colors holds the color groups of a colors or dark block.
type Colors struct {
	Groups map[string]string
	Chart  []string
}

// ColorRef is a color value found at a source position.
type ColorRef struct {
	Range hcl.Range
	Color color.OKLCH
	IsRef bool // the expression references palette or scale
}

// File is a decoded theme definition file. A File returned together with
// error diagnostics holds whatever could be decoded.
type File struct {
	Filename string
	Meta     Meta

	// Palette maps dotted palette paths ("brand", "gray.light") to canonical
	// oklch text.
	Palette map[string]string
	Scales  map[string]color.Palette

	Light Colors
	Dark  Colors

	PopoverFromCard bool
	SidebarBasis    *builder.SidebarBasis
	Sidebar         *builder.SidebarColors

	TokensLight map[string]string
	TokensDark  map[string]string
	Components  map[string]map[string]string

	// Symbols maps "palette.<path>" and "scale.<name>" to definition ranges.
	Symbols map[string]hcl.Range
	Refs    []ColorRef
}

// Name is the meta name, or the file name without its extension.
func (f *File) Name() string {
	if f.Meta.Name != "" {
		return f.Meta.Name
	}
	base := filepath.Base(f.Filename)
	base = strings.TrimSuffix(base, Extension)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type bodyBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type labeledBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

type tokensBlock struct {
	Light *bodyBlock `hcl:"light,block"`
	Dark  *bodyBlock `hcl:"dark,block"`
}

// rawFile is the structural first pass. Attribute values inside the blocks
// are left unevaluated until the palette is known.
type rawFile struct {
	Meta       *Meta          `hcl:"meta,block"`
	Palette    *bodyBlock     `hcl:"palette,block"`
	Scales     []labeledBlock `hcl:"scale,block"`
	Colors     *bodyBlock     `hcl:"colors,block"`
	Dark       *bodyBlock     `hcl:"dark,block"`
	Sidebar    *bodyBlock     `hcl:"sidebar,block"`
	Tokens     *tokensBlock   `hcl:"tokens,block"`
	Components []labeledBlock `hcl:"component,block"`
}

// ParseFile reads and decodes a theme definition file.
func ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	f, diags := ParseBytes(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", path, diags.Error())
	}
	for _, d := range diags {
		log.Warningf("%s", d.Error())
	}
	return f, nil
}

// ParseBytes decodes theme definition source. It collects every diagnostic
// instead of stopping at the first, and always returns a File.
func ParseBytes(src []byte, filename string) (*File, hcl.Diagnostics) {
	f := &File{
		Filename:    filename,
		Palette:     map[string]string{},
		Scales:      map[string]color.Palette{},
		Light:       Colors{Groups: map[string]string{}},
		Dark:        Colors{Groups: map[string]string{}},
		TokensLight: map[string]string{},
		TokensDark:  map[string]string{},
		Components:  map[string]map[string]string{},
		Symbols:     map[string]hcl.Range{},
	}

	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return f, diags
	}

	var raw rawFile
	if d := gohcl.DecodeBody(file.Body, nil, &raw); d.HasErrors() {
		return f, append(diags, d...)
	}
	if raw.Meta != nil {
		f.Meta = *raw.Meta
	}

	l := &loader{file: f, diags: diags}
	if raw.Palette != nil {
		if body, ok := raw.Palette.Body.(*hclsyntax.Body); ok {
			l.decodePalette(body, "")
		}
	}
	for _, sb := range raw.Scales {
		l.decodeScale(sb)
	}
	if raw.Colors != nil {
		l.decodeColors(raw.Colors.Body, &f.Light, true)
	}
	if raw.Dark != nil {
		l.decodeColors(raw.Dark.Body, &f.Dark, false)
		l.checkDarkHasLight(raw.Dark.Body)
	}
	if raw.Sidebar != nil {
		l.decodeSidebar(raw.Sidebar.Body)
	}
	if raw.Tokens != nil {
		if raw.Tokens.Light != nil {
			l.decodeStrings(raw.Tokens.Light.Body, f.TokensLight, "tokens.light")
		}
		if raw.Tokens.Dark != nil {
			l.decodeStrings(raw.Tokens.Dark.Body, f.TokensDark, "tokens.dark")
		}
	}
	for _, cb := range raw.Components {
		overrides, ok := f.Components[cb.Name]
		if !ok {
			overrides = map[string]string{}
			f.Components[cb.Name] = overrides
		}
		l.decodeStrings(cb.Body, overrides, "component."+cb.Name)
	}

	return f, l.diags
}
