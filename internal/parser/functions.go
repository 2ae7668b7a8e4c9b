package parser

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/jsvensson/themekit/internal/color"
)

// Functions returns the color functions available in theme files. Every
// function accepts oklch text or a hex color and returns canonical oklch
// text, except hex which returns #rrggbb.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"lighten":    amountFunc("Raises lightness by amount (0-1)", "amount", color.Lighten),
		"darken":     amountFunc("Lowers lightness by amount (0-1)", "amount", color.Darken),
		"saturate":   amountFunc("Raises chroma by amount, clamped to the sRGB gamut", "amount", color.Saturate),
		"desaturate": amountFunc("Lowers chroma by amount", "amount", desaturate),
		"rotate_hue": amountFunc("Rotates the hue by degrees", "degrees", color.Rotate),
		"alpha":      amountFunc("Sets the alpha channel (0-1)", "alpha", withAlpha),
		"invert":     unaryFunc("Inverts lightness for dark mode", color.InvertForDarkMode),
		"contrast":   unaryFunc("Returns a near-black or near-white color readable on the argument", color.ContrastingColor),
		"gamut":      unaryFunc("Reduces chroma until the color fits the sRGB gamut", color.EnsureInGamut),
		"hex":        hexFunc(),
	}
}

func desaturate(amount float64) color.Transform {
	return func(c color.OKLCH) color.OKLCH { return color.AdjustChroma(c, -amount) }
}

func withAlpha(a float64) color.Transform {
	return func(c color.OKLCH) color.OKLCH {
		c.A = a
		c.HasAlpha = true
		return color.EnsureInGamut(c)
	}
}

var colorParam = function.Parameter{Name: "color", Type: cty.String}

func amountFunc(desc, param string, transform func(float64) color.Transform) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params: []function.Parameter{
			colorParam,
			{Name: param, Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := parseColor(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			amount, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(transform(amount)(c).String()), nil
		},
	})
}

func unaryFunc(desc string, transform color.Transform) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params:      []function.Parameter{colorParam},
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := parseColor(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			return cty.StringVal(transform(c).String()), nil
		},
	})
}

func hexFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Converts a color to #rrggbb, clamping to the sRGB gamut",
		Params:      []function.Parameter{colorParam},
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := parseColor(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			return cty.StringVal(c.Hex()), nil
		},
	})
}
