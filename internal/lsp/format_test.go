package lsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestFormatDocument(t *testing.T) {
	content := "meta{name=\"Ocean\"}\npalette {\n\n  brand = \"#0066cc\"\n}"

	edits, err := formatDocument(content)
	if err != nil {
		t.Fatalf("formatDocument() error = %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(edits))
	}

	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 4, Character: 1},
	}
	if diff := cmp.Diff(want, edits[0].Range); diff != "" {
		t.Errorf("range mismatch (-want +got):\n%s", diff)
	}
	if edits[0].NewText != "meta { name = \"Ocean\" }\npalette {\n  brand = \"#0066cc\"\n}" {
		t.Errorf("NewText = %q", edits[0].NewText)
	}
}

func TestFormatDocument_AlreadyFormatted(t *testing.T) {
	content := "meta {\n  name = \"Ocean\"\n}\n"

	edits, err := formatDocument(content)
	if err != nil {
		t.Fatalf("formatDocument() error = %v", err)
	}
	if edits == nil || len(edits) != 0 {
		t.Errorf("formatDocument() = %v, want empty non-nil slice", edits)
	}
}

func TestFormatDocument_Incomplete(t *testing.T) {
	if _, err := formatDocument(`colors { primary = "oklch(0.5 0.1 10)"`); err != nil {
		t.Errorf("formatDocument() on incomplete HCL should not error, got: %v", err)
	}
}

func TestFullRange(t *testing.T) {
	tests := []struct {
		content string
		want    protocol.Position
	}{
		{"", protocol.Position{Line: 0, Character: 0}},
		{"abc", protocol.Position{Line: 0, Character: 3}},
		{"abc\n", protocol.Position{Line: 1, Character: 0}},
		{"a\r\nbc\r", protocol.Position{Line: 1, Character: 2}},
	}
	for _, tt := range tests {
		if got := fullRange(tt.content).End; got != tt.want {
			t.Errorf("fullRange(%q).End = %v, want %v", tt.content, got, tt.want)
		}
	}
}
