package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/riskhtml/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXParser reads the top-level tables of a .docx file. Each paragraph in
// a table cell is one line.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	d, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := &document.Document{}
	for _, item := range d.Document.Body.Items {
		tbl, ok := item.(*docx.Table)
		if !ok {
			continue
		}
		doc.Tables = append(doc.Tables, docxTable(tbl))
	}
	return doc, nil
}

func docxTable(tbl *docx.Table) document.Table {
	var t document.Table
	for _, tr := range tbl.TableRows {
		var row document.Row
		for _, tc := range tr.TableCells {
			row.Cells = append(row.Cells, docxCell(tc))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func docxCell(tc *docx.WTableCell) document.Cell {
	lines := make([]string, 0, len(tc.Paragraphs))
	for _, para := range tc.Paragraphs {
		lines = append(lines, docxParagraphText(para))
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return document.NewCell(lines...)
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
