package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/riskhtml/internal/document"
	"github.com/google/go-cmp/cmp"
)

func TestHTMLParser_Tables(t *testing.T) {
	input := `<html><body>
<h1>Register</h1>
<table>
  <tr><td>Risk X<br>Risk X is a thing</td></tr>
  <tr><th>Controls</th><td><p>Control A</p><p>Control   B</p></td></tr>
  <tr><td></td><td>x</td></tr>
</table>
<table><tbody><tr><td>Risk Y<br/>Risk Y is other</td></tr></tbody></table>
</body></html>`
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "register.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &document.Document{Tables: []document.Table{
		{Rows: []document.Row{
			document.NewRow(document.NewCell("Risk X", "Risk X is a thing")),
			document.NewRow(document.NewCell("Controls"), document.NewCell("Control A", "Control B")),
			document.NewRow(document.NewCell(""), document.NewCell("x")),
		}},
		{Rows: []document.Row{
			document.NewRow(document.NewCell("Risk Y", "Risk Y is other")),
		}},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLParser_NestedTableIsSeparate(t *testing.T) {
	input := `<table><tr><td>outer<table><tr><td>inner</td></tr></table></td></tr></table>`
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "nested.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(doc.Tables))
	}
	if got, _ := doc.Tables[0].Rows[0].Content(0); got != "outer" {
		t.Errorf("expected outer cell %q, got %q", "outer", got)
	}
	if len(doc.Tables[0].Rows) != 1 {
		t.Errorf("expected outer table to keep 1 row, got %d", len(doc.Tables[0].Rows))
	}
	if got, _ := doc.Tables[1].Rows[0].Content(0); got != "inner" {
		t.Errorf("expected inner cell %q, got %q", "inner", got)
	}
}

func TestHTMLParser_NoTables(t *testing.T) {
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader("<p>nothing here</p>"), "plain.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Tables) != 0 {
		t.Errorf("expected 0 tables, got %d", len(doc.Tables))
	}
}
