package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/riskhtml/internal/document"
)

// CSVParser handles CSV files. The file is one table: each record is a row,
// each field a cell, and newlines inside quoted fields separate lines.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &document.Document{}
	if len(records) == 0 {
		return doc, nil
	}

	var table document.Table
	for _, record := range records {
		var row document.Row
		for _, field := range record {
			row.Cells = append(row.Cells, splitLines(field))
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Tables = append(doc.Tables, table)
	return doc, nil
}
