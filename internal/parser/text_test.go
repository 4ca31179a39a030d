package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/riskhtml/internal/document"
	"github.com/google/go-cmp/cmp"
)

func TestTextParser_TablesSeparatedByBlankLines(t *testing.T) {
	input := "Risk X\\nRisk X is a thing\nControls\tControl A\\nControl B\n\nRisk Y\\nRisk Y is other\n"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "register.tsv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &document.Document{Tables: []document.Table{
		{Rows: []document.Row{
			document.NewRow(document.NewCell("Risk X", "Risk X is a thing")),
			document.NewRow(document.NewCell("Controls"), document.NewCell("Control A", "Control B")),
		}},
		{Rows: []document.Row{
			document.NewRow(document.NewCell("Risk Y", "Risk Y is other")),
		}},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Tables) != 0 {
		t.Errorf("expected 0 tables for empty input, got %d", len(doc.Tables))
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Multiple consecutive blank lines should not produce empty tables.
	input := "A\tB\n\n\n   \nC\tD"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(doc.Tables))
	}
	if doc.Tables[1].Rows[0].CellCount() != 2 {
		t.Errorf("expected 2 cells, got %d", doc.Tables[1].Rows[0].CellCount())
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{"doc.json", "*parser.JSONParser", false},
		{"doc.TSV", "*parser.TextParser", false},
		{"doc.csv", "*parser.CSVParser", false},
		{"doc.markdown", "*parser.MarkdownParser", false},
		{"doc.htm", "*parser.HTMLParser", false},
		{"doc.pdf", "*parser.PDFParser", false},
		{"doc.docx", "*parser.DOCXParser", false},
		{"doc.xlsx", "", true},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, Options{})
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("%s: expected ErrUnsupportedFormat, got %v", tt.filename, err)
			}
			if IsSupportedExtension(tt.filename) {
				t.Errorf("%s: expected unsupported", tt.filename)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.filename, err)
		}
		if got := fmt.Sprintf("%T", p); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
		if !IsSupportedExtension(tt.filename) {
			t.Errorf("%s: expected supported", tt.filename)
		}
	}
}
