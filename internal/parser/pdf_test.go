package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/riskhtml/internal/document"
	"github.com/dgallion1/riskhtml/internal/register"
	"github.com/google/go-cmp/cmp"
	pdflib "github.com/ledongthuc/pdf"
)

func glyphs(x float64, s string) []pdflib.Text {
	var out []pdflib.Text
	for _, r := range s {
		out = append(out, pdflib.Text{X: x, W: 5, FontSize: 10, S: string(r)})
		x += 5
	}
	return out
}

func TestGroupCells_SplitsOnWideGaps(t *testing.T) {
	var texts []pdflib.Text
	texts = append(texts, glyphs(100, "Desc")...)
	texts = append(texts, glyphs(10, "Type")...)
	texts = append(texts, glyphs(35, "A")...) // 5pt gap after "Type": same cell, new word

	got := groupCells(texts, 12)
	want := []document.Cell{document.NewCell("Type A"), document.NewCell("Desc")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupCells_Empty(t *testing.T) {
	if got := groupCells(nil, 12); len(got) != 0 {
		t.Errorf("expected no cells, got %v", got)
	}
}

func TestLayoutRows(t *testing.T) {
	text := "  Controls      Control A   \n\n\fSub Risk Type  Level 2  Description\n"
	got := layoutRows(text)
	want := []document.Row{
		document.NewRow(document.NewCell("Controls"), document.NewCell("Control A")),
		document.NewRow(document.NewCell("Sub Risk Type"), document.NewCell("Level 2"), document.NewCell("Description")),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeTitleRow(t *testing.T) {
	rows := layoutRows("Operational Risk\nOperational Risk is the risk of loss\nControls      Control A\n")
	got := mergeTitleRow(rows)
	want := []document.Row{
		document.NewRow(document.NewCell("Operational Risk", "Operational Risk is the risk of loss")),
		document.NewRow(document.NewCell("Controls"), document.NewCell("Control A")),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}

	out, err := register.Render(&document.Document{Tables: []document.Table{{Rows: got}}})
	if err != nil {
		t.Fatalf("render merged rows: %v", err)
	}
	if !strings.Contains(out, "<li>Controls<br/>Control A<br/></li>") {
		t.Errorf("expected key phrase item, got %s", out)
	}
}

func TestMergeTitleRow_JoinsDescriptionCells(t *testing.T) {
	rows := layoutRows("Credit Risk\nCredit Risk is default   by counterparties\n")
	got := mergeTitleRow(rows)
	want := []document.Row{
		document.NewRow(document.NewCell("Credit Risk", "Credit Risk is default by counterparties")),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeTitleRow_LeavesOtherShapes(t *testing.T) {
	tests := []struct {
		name string
		rows []document.Row
	}{
		{"single row", []document.Row{document.NewRow(document.NewCell("Only"))}},
		{"two line title", []document.Row{
			document.NewRow(document.NewCell("Risk X", "Risk X is a thing")),
			document.NewRow(document.NewCell("Controls"), document.NewCell("A")),
		}},
		{"wide first row", []document.Row{
			document.NewRow(document.NewCell("Controls"), document.NewCell("A")),
			document.NewRow(document.NewCell("Risk Appetite"), document.NewCell("Low")),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.rows, mergeTitleRow(tt.rows)); diff != "" {
				t.Errorf("rows changed (-want +got):\n%s", diff)
			}
		})
	}
}
