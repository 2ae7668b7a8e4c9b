package parser

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/jsvensson/themekit/internal/builder"
	"github.com/jsvensson/themekit/internal/color"
)

// GroupKeys are the color groups of the colors and dark blocks, in the order
// their ops are applied.
var GroupKeys = []string{
	"background", "card", "popover",
	"primary", "secondary", "accent", "muted", "destructive",
	"border",
}

// loader carries the evaluation state of one ParseBytes call.
type loader struct {
	file  *File
	diags hcl.Diagnostics
	ctx   *hcl.EvalContext
}

// context returns the evaluation context for the palette and scales decoded
// so far. It is rebuilt lazily after each palette insertion so palette
// entries can reference the ones above them.
func (l *loader) context() *hcl.EvalContext {
	if l.ctx == nil {
		l.ctx = EvalContext(l.file.Palette, l.file.Scales)
	}
	return l.ctx
}

// EvalContext exposes palette entries as palette.<path>, scales as
// scale.<name>["<step>"] and the color functions.
func EvalContext(palette map[string]string, scales map[string]color.Palette) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": paletteValue(palette),
			"scale":   scaleValue(scales),
		},
		Functions: Functions(),
	}
}

func paletteValue(entries map[string]string) cty.Value {
	tree := map[string]any{}
	for path, v := range entries {
		node := tree
		parts := strings.Split(path, ".")
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = v
	}
	return treeValue(tree)
}

func treeValue(tree map[string]any) cty.Value {
	if len(tree) == 0 {
		return cty.EmptyObjectVal
	}
	vals := make(map[string]cty.Value, len(tree))
	for k, v := range tree {
		switch v := v.(type) {
		case string:
			vals[k] = cty.StringVal(v)
		case map[string]any:
			vals[k] = treeValue(v)
		}
	}
	return cty.ObjectVal(vals)
}

func scaleValue(scales map[string]color.Palette) cty.Value {
	if len(scales) == 0 {
		return cty.EmptyObjectVal
	}
	vals := make(map[string]cty.Value, len(scales))
	for name, p := range scales {
		steps := make(map[string]cty.Value, len(p))
		for step, v := range p {
			steps[step] = cty.StringVal(v)
		}
		vals[name] = cty.ObjectVal(steps)
	}
	return cty.ObjectVal(vals)
}

// parseColor accepts canonical oklch text or a #rrggbb hex color.
func parseColor(s string) (color.OKLCH, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return color.FromHex(s)
	}
	return color.Parse(s)
}

func (l *loader) errorf(rng hcl.Range, summary, format string, args ...any) {
	l.diags = append(l.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  rng.Ptr(),
	})
}

func (l *loader) warnf(rng hcl.Range, summary, format string, args ...any) {
	l.diags = append(l.diags, &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  rng.Ptr(),
	})
}

// claim registers a symbol, reporting a duplicate definition.
func (l *loader) claim(symbol string, rng hcl.Range) bool {
	if prev, ok := l.file.Symbols[symbol]; ok {
		l.errorf(rng, "Duplicate definition", "%s is already defined at %s", symbol, prev)
		return false
	}
	l.file.Symbols[symbol] = rng
	return true
}

func (l *loader) addRef(expr hcl.Expression, c color.OKLCH) {
	l.file.Refs = append(l.file.Refs, ColorRef{
		Range: expr.Range(),
		Color: c,
		IsRef: len(expr.Variables()) > 0,
	})
}

type paletteItem struct {
	pos   hcl.Pos
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

func sourceOrder(body *hclsyntax.Body) []paletteItem {
	items := make([]paletteItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, a := range body.Attributes {
		items = append(items, paletteItem{pos: a.SrcRange.Start, attr: a})
	}
	for _, b := range body.Blocks {
		items = append(items, paletteItem{pos: b.TypeRange.Start, block: b})
	}
	slices.SortFunc(items, func(a, b paletteItem) int { return cmp.Compare(a.pos.Byte, b.pos.Byte) })
	return items
}

// decodePalette evaluates palette entries in source order. Nested blocks
// group entries under a dotted path.
func (l *loader) decodePalette(body *hclsyntax.Body, prefix string) {
	for _, item := range sourceOrder(body) {
		if b := item.block; b != nil {
			path := join(prefix, b.Type)
			if len(b.Labels) > 0 {
				l.errorf(b.LabelRanges[0], "Unexpected label", "palette group %q does not take labels", path)
				continue
			}
			if l.claim("palette."+path, b.TypeRange) {
				l.decodePalette(b.Body, path)
			}
			continue
		}

		a := item.attr
		path := join(prefix, a.Name)
		if !l.claim("palette."+path, a.NameRange) {
			continue
		}
		s, ok := l.evalString(a.Expr)
		if !ok {
			continue
		}
		c, err := parseColor(s)
		if err != nil {
			l.errorf(a.Expr.Range(), "Invalid palette color", "palette.%s: %s", path, err)
			continue
		}
		l.file.Palette[path] = c.String()
		l.ctx = nil
		l.addRef(a.Expr, c)
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func (l *loader) decodeScale(sb labeledBlock) {
	attrs := l.attributes(sb.Body)
	for name, a := range attrs {
		if name != "base" {
			l.errorf(a.NameRange, "Unsupported argument", "scale blocks only take base")
		}
	}
	base, ok := attrs["base"]
	if !ok {
		l.errorf(sb.Body.MissingItemRange(), "Missing base", "scale %q needs a base color", sb.Name)
		return
	}
	if !l.claim("scale."+sb.Name, base.Range) {
		return
	}
	s, ok := l.evalString(base.Expr)
	if !ok {
		return
	}
	c, err := parseColor(s)
	if err != nil {
		l.errorf(base.Expr.Range(), "Invalid scale base", "scale %q: %s", sb.Name, err)
		return
	}
	l.addRef(base.Expr, c)
	l.file.Scales[sb.Name] = color.GeneratePaletteFrom(c)
	l.ctx = nil
}

func (l *loader) decodeColors(body hcl.Body, dest *Colors, light bool) {
	for _, a := range sortedAttrs(l.attributes(body)) {
		switch {
		case a.Name == "chart":
			dest.Chart = l.colorList(a.Expr)
		case a.Name == "sidebar" && light:
			s, ok := l.evalString(a.Expr)
			if !ok {
				continue
			}
			basis, valid := builder.ParseSidebarBasis(s)
			if !valid {
				l.errorf(a.Expr.Range(), "Invalid sidebar basis", "sidebar must be \"background\", \"card\" or \"custom\", got %q", s)
				continue
			}
			l.file.SidebarBasis = &basis
		case slices.Contains(GroupKeys, a.Name):
			s, ok := l.evalString(a.Expr)
			if !ok {
				continue
			}
			if a.Name == "popover" && s == "card" {
				if light {
					l.file.PopoverFromCard = true
				} else {
					l.errorf(a.Expr.Range(), "Invalid popover", `popover = "card" belongs in the colors block`)
				}
				continue
			}
			dest.Groups[a.Name] = l.normalizeColor(s, a.Expr)
		default:
			l.errorf(a.NameRange, "Unsupported argument", "%q is not a color group; expected one of %s or chart",
				a.Name, strings.Join(GroupKeys, ", "))
		}
	}
}

// checkDarkHasLight reports dark values whose group has no light value; the
// builder derives dark from light, not the other way round.
func (l *loader) checkDarkHasLight(body hcl.Body) {
	attrs, _ := body.JustAttributes()
	for _, a := range sortedAttrs(attrs) {
		if a.Name == "chart" {
			if len(l.file.Dark.Chart) > 0 && len(l.file.Light.Chart) == 0 {
				l.errorf(a.NameRange, "Dark value without light value", "dark.chart needs colors.chart")
			}
			continue
		}
		if _, ok := l.file.Dark.Groups[a.Name]; !ok {
			continue
		}
		if _, ok := l.file.Light.Groups[a.Name]; !ok {
			l.errorf(a.NameRange, "Dark value without light value", "dark.%s needs colors.%s", a.Name, a.Name)
		}
	}
}

func (l *loader) decodeSidebar(body hcl.Body) {
	sc := &builder.SidebarColors{}
	fields := map[string]*string{
		"background":      &sc.Background,
		"foreground":      &sc.Foreground,
		"dark_background": &sc.DarkBackground,
		"dark_foreground": &sc.DarkForeground,
	}
	for _, a := range sortedAttrs(l.attributes(body)) {
		field, ok := fields[a.Name]
		if !ok {
			l.errorf(a.NameRange, "Unsupported argument", "sidebar takes background, foreground, dark_background and dark_foreground")
			continue
		}
		if s, ok := l.evalString(a.Expr); ok {
			*field = l.normalizeColor(s, a.Expr)
		}
	}
	l.file.Sidebar = sc
}

// decodeStrings evaluates a block of free-form string attributes. Values are
// kept verbatim; the ones that parse as colors are recorded as refs.
func (l *loader) decodeStrings(body hcl.Body, dest map[string]string, scope string) {
	for _, a := range sortedAttrs(l.attributes(body)) {
		s, ok := l.evalString(a.Expr)
		if !ok {
			continue
		}
		if _, dup := dest[a.Name]; dup {
			l.errorf(a.NameRange, "Duplicate definition", "%s.%s is already defined", scope, a.Name)
			continue
		}
		if c, err := parseColor(s); err == nil {
			l.addRef(a.Expr, c)
		}
		dest[a.Name] = s
	}
}

// normalizeColor converts parseable colors to canonical oklch text. Other
// values are kept with a warning, since nothing can be derived from them.
func (l *loader) normalizeColor(s string, expr hcl.Expression) string {
	c, err := parseColor(s)
	if err != nil {
		l.warnf(expr.Range(), "Unrecognized color", "%q is not an oklch or hex color; derived values fall back to defaults", s)
		return s
	}
	l.addRef(expr, c)
	return c.String()
}

func (l *loader) colorList(expr hcl.Expression) []string {
	val, d := expr.Value(l.context())
	l.diags = append(l.diags, d...)
	if d.HasErrors() || !val.IsWhollyKnown() {
		return nil
	}
	ty := val.Type()
	if val.IsNull() || !(ty.IsListType() || ty.IsTupleType()) {
		l.errorf(expr.Range(), "Incorrect value type", "chart must be a list of colors")
		return nil
	}
	var out []string
	for _, v := range val.AsValueSlice() {
		s, err := convert.Convert(v, cty.String)
		if err != nil || s.IsNull() {
			l.errorf(expr.Range(), "Incorrect value type", "chart entries must be strings")
			return nil
		}
		c, perr := parseColor(s.AsString())
		if perr != nil {
			l.warnf(expr.Range(), "Unrecognized color", "chart entry %q is not an oklch or hex color", s.AsString())
			out = append(out, s.AsString())
			continue
		}
		out = append(out, c.String())
	}
	return out
}

func (l *loader) evalString(expr hcl.Expression) (string, bool) {
	val, d := expr.Value(l.context())
	l.diags = append(l.diags, d...)
	if d.HasErrors() || !val.IsKnown() {
		return "", false
	}
	if val.IsNull() {
		l.errorf(expr.Range(), "Missing value", "value must not be null")
		return "", false
	}
	s, err := convert.Convert(val, cty.String)
	if err != nil {
		l.errorf(expr.Range(), "Incorrect value type", "a string is required: %s", err)
		return "", false
	}
	return s.AsString(), true
}

func (l *loader) attributes(body hcl.Body) hcl.Attributes {
	attrs, d := body.JustAttributes()
	l.diags = append(l.diags, d...)
	return attrs
}

func sortedAttrs(attrs hcl.Attributes) []*hcl.Attribute {
	out := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *hcl.Attribute) int { return cmp.Compare(a.Range.Start.Byte, b.Range.Start.Byte) })
	return out
}
