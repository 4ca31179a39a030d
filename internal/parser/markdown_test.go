package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/riskhtml/internal/document"
	"github.com/google/go-cmp/cmp"
)

func TestMarkdownParser_PipeTables(t *testing.T) {
	input := `# Register

| Risk X<br>Risk X is a thing |
| --- |
| Key Risk Indicators |

Intro to the next table.

| Risk Y<br/>Risk Y is other | |
| --- | --- |
| Controls | Control A<br>Control **B** |
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "register.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &document.Document{Tables: []document.Table{
		{Rows: []document.Row{
			document.NewRow(document.NewCell("Risk X", "Risk X is a thing")),
			document.NewRow(document.NewCell("Key Risk Indicators")),
		}},
		{Rows: []document.Row{
			document.NewRow(document.NewCell("Risk Y", "Risk Y is other"), document.NewCell("")),
			document.NewRow(document.NewCell("Controls"), document.NewCell("Control A", "Control B")),
		}},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownParser_NoTables(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("Just some plain text.\n\nAnother paragraph."), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Tables) != 0 {
		t.Errorf("expected 0 tables, got %d", len(doc.Tables))
	}
}

func TestIsBreakTag(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"<br>", true},
		{"<BR/>", true},
		{"<br />", true},
		{"<b>", false},
		{"</br>", false},
	}
	for _, tt := range tests {
		if got := isBreakTag(tt.tag); got != tt.want {
			t.Errorf("isBreakTag(%q): expected %v, got %v", tt.tag, tt.want, got)
		}
	}
}
