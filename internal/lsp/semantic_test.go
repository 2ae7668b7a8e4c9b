package lsp

import (
	"reflect"
	"testing"
)

func TestEncodeTokens_Empty(t *testing.T) {
	result := encodeTokens([]SemanticToken{})
	expected := []uint32{}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens([]) = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_SingleToken(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 2, StartChar: 5, Length: 7, Type: 0, Modifiers: 0},
	}
	result := encodeTokens(tokens)
	expected := []uint32{2, 5, 7, 0, 0}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_MultipleTokensSameLine(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 0, StartChar: 0, Length: 7, Type: 0, Modifiers: 0}, // "palette"
		{Line: 0, StartChar: 8, Length: 4, Type: 1, Modifiers: 1}, // "base"
	}
	result := encodeTokens(tokens)
	// Second token: deltaLine=0, deltaStart=8-0=8
	expected := []uint32{0, 0, 7, 0, 0, 0, 8, 4, 1, 1}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_MultipleTokensDifferentLines(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 0, StartChar: 0, Length: 7, Type: 0, Modifiers: 0}, // line 0
		{Line: 2, StartChar: 2, Length: 4, Type: 1, Modifiers: 0}, // line 2
	}
	result := encodeTokens(tokens)
	// Second token: deltaLine=2-0=2, deltaStart=2 (new line, not relative)
	expected := []uint32{0, 0, 7, 0, 0, 2, 2, 4, 1, 0}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_SortsTokens(t *testing.T) {
	// Tokens in wrong order
	tokens := []SemanticToken{
		{Line: 1, StartChar: 0, Length: 4, Type: 1, Modifiers: 0},
		{Line: 0, StartChar: 0, Length: 7, Type: 0, Modifiers: 0},
	}
	result := encodeTokens(tokens)
	// Should be sorted: line 0 first, then line 1
	expected := []uint32{0, 0, 7, 0, 0, 1, 0, 4, 1, 0}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestSemanticTokensFull_Empty(t *testing.T) {
	content := ``
	result := semanticTokensFull(content)
	if len(result) != 0 {
		t.Errorf("semanticTokensFull(\"\") = %v, want empty", result)
	}
}

// decodeTokens reverses encodeTokens so tests can look for single tokens.
func decodeTokens(data []uint32) []SemanticToken {
	var tokens []SemanticToken
	var line, char uint32
	for i := 0; i+4 < len(data); i += 5 {
		if data[i] > 0 {
			line += data[i]
			char = data[i+1]
		} else {
			char += data[i+1]
		}
		tokens = append(tokens, SemanticToken{Line: line, StartChar: char, Length: data[i+2], Type: data[i+3], Modifiers: data[i+4]})
	}
	return tokens
}

func hasToken(tokens []SemanticToken, line, char uint32, typ string) bool {
	for _, tok := range tokens {
		if tok.Line == line && tok.StartChar == char && tok.Type == tokenTypeIndices[typ] {
			return true
		}
	}
	return false
}

func TestSemanticTokensFull_SimplePalette(t *testing.T) {
	content := `palette {
  brand = "#0066cc"
}`
	result := semanticTokensFull(content)

	// palette (keyword), brand (property), "#0066cc" (string)
	if len(result) != 15 {
		t.Errorf("semanticTokensFull() returned %d integers, want 15", len(result))
	}
}

func TestSemanticTokensFull_PlainStringsSkipped(t *testing.T) {
	content := `meta {
  name = "Ocean"
}`
	result := semanticTokensFull(content)

	// meta (keyword), name (property)
	if len(result) != 10 {
		t.Errorf("semanticTokensFull() returned %d integers, want 10", len(result))
	}
}

func TestSemanticTokensFull_WithPaletteReference(t *testing.T) {
	content := `palette {
  brand = "#0066cc"
}
colors {
  primary = palette.brand
}`
	tokens := decodeTokens(semanticTokensFull(content))

	// palette, brand, literal, colors, primary, palette (namespace), brand
	if len(tokens) != 7 {
		t.Fatalf("got %d tokens, want 7", len(tokens))
	}
	if !hasToken(tokens, 4, 12, "namespace") {
		t.Error("palette namespace not tokenized")
	}
	if !hasToken(tokens, 4, 20, "property") {
		t.Error("reference segment not tokenized")
	}
}

func TestSemanticTokensFull_WithFunction(t *testing.T) {
	content := `dark {
  primary = lighten(palette.brand, 0.2)
}`
	tokens := decodeTokens(semanticTokensFull(content))

	// dark, primary, lighten, palette, brand, 0.2
	if len(tokens) != 6 {
		t.Fatalf("got %d tokens, want 6", len(tokens))
	}
	if !hasToken(tokens, 1, 12, "function") {
		t.Error("function name not tokenized")
	}
	if !hasToken(tokens, 1, 35, "number") {
		t.Error("number argument not tokenized")
	}
}

func TestSemanticTokensFull_Labels(t *testing.T) {
	content := `scale "brand" {
  base = "oklch(0.55 0.15 240)"
}
component "button" {
  hover-bg = "#191724"
}`
	tokens := decodeTokens(semanticTokensFull(content))

	if !hasToken(tokens, 0, 6, "variable") {
		t.Error("scale label not tokenized")
	}
	if !hasToken(tokens, 3, 10, "variable") {
		t.Error("component label not tokenized")
	}
	if !hasToken(tokens, 1, 9, "string") {
		t.Error("oklch literal not tokenized")
	}
}

func TestSemanticTokensFull_Chart(t *testing.T) {
	content := `colors {
  chart = [palette.a, palette.b]
}`
	tokens := decodeTokens(semanticTokensFull(content))

	if !hasToken(tokens, 1, 11, "namespace") || !hasToken(tokens, 1, 22, "namespace") {
		t.Error("tuple elements not tokenized")
	}
}

func TestSemanticTokensFull_ParseError(t *testing.T) {
	content := `palette {`
	result := semanticTokensFull(content)
	if len(result) != 0 {
		t.Errorf("semanticTokensFull(parse error) = %v, want empty", result)
	}
}

func TestSemanticTokensFull_CompleteTheme(t *testing.T) {
	result := semanticTokensFull(oceanTheme)

	if len(result) == 0 {
		t.Fatal("semanticTokensFull() returned empty for valid theme")
	}
	if len(result)%5 != 0 {
		t.Errorf("semantic tokens data length %d is not a multiple of 5", len(result))
	}

	// Every block keyword and attribute name at the very least.
	if len(result) < 5*25 {
		t.Errorf("semanticTokensFull() returned %d integers, expected at least %d", len(result), 5*25)
	}
}
