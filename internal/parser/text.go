package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/riskhtml/internal/document"
)

// TextParser handles tab-separated text. Each line is a row, tabs separate
// cells, a literal "\n" inside a cell separates lines, and blank lines
// separate tables.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &document.Document{}
	var current document.Table

	flush := func() {
		if len(current.Rows) > 0 {
			doc.Tables = append(doc.Tables, current)
		}
		current = document.Table{}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		var row document.Row
		for _, field := range strings.Split(line, "\t") {
			row.Cells = append(row.Cells, document.NewCell(strings.Split(field, `\n`)...))
		}
		current.Rows = append(current.Rows, row)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
