package document

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCell = errors.New("missing cell")
	ErrMissingLine = errors.New("missing line")
)

// Document is an extracted layout: an ordered list of tables.
type Document struct {
	Tables []Table `json:"tables"`
}

// Table is one risk type hierarchy. Row 0 holds the title and description.
type Table struct {
	Rows []Row `json:"rows"`
}

// Row is an ordered list of cells.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Cell is an ordered list of text lines.
type Cell struct {
	Lines []Line `json:"lines"`
}

// Line is a single line of text.
type Line struct {
	Text string `json:"text"`
}

// NewCell builds a cell with one line per string.
func NewCell(lines ...string) Cell {
	c := Cell{Lines: make([]Line, 0, len(lines))}
	for _, l := range lines {
		c.Lines = append(c.Lines, Line{Text: l})
	}
	return c
}

// NewRow builds a row from cells.
func NewRow(cells ...Cell) Row {
	return Row{Cells: cells}
}

// CellCount returns the number of cells in the row.
func (r Row) CellCount() int {
	return len(r.Cells)
}

// Cell returns the cell at index i. Negative indexes count from the end,
// so Cell(-1) is the last cell.
func (r Row) Cell(i int) (Cell, error) {
	idx := i
	if idx < 0 {
		idx = len(r.Cells) + i
	}
	if idx < 0 || idx >= len(r.Cells) {
		return Cell{}, fmt.Errorf("cell %d of %d: %w", i, len(r.Cells), ErrMissingCell)
	}
	return r.Cells[idx], nil
}

// Content returns the text of the first line of cell i.
func (r Row) Content(i int) (string, error) {
	c, err := r.Cell(i)
	if err != nil {
		return "", err
	}
	return c.Content()
}

// Line returns line i of the cell.
func (c Cell) Line(i int) (Line, error) {
	if i < 0 || i >= len(c.Lines) {
		return Line{}, fmt.Errorf("line %d of %d: %w", i, len(c.Lines), ErrMissingLine)
	}
	return c.Lines[i], nil
}

// Content is the text of the cell's first line.
func (c Cell) Content() (string, error) {
	l, err := c.Line(0)
	if err != nil {
		return "", err
	}
	return l.Text, nil
}

// Texts returns the raw text of every line.
func (c Cell) Texts() []string {
	out := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		out[i] = l.Text
	}
	return out
}

// Summary describes the shape of a document without its text.
type Summary struct {
	Tables []TableSummary `json:"tables"`
}

// TableSummary describes one table.
type TableSummary struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Rows     int    `json:"rows"`
	MaxCells int    `json:"max_cells"`
	MinCells int    `json:"min_cells"`
}

// Stats summarises the document. Title is the first line of the first cell
// of row 0, or empty when the table has none.
func (d *Document) Stats() Summary {
	s := Summary{Tables: make([]TableSummary, 0, len(d.Tables))}
	for i, t := range d.Tables {
		ts := TableSummary{Index: i, Rows: len(t.Rows)}
		for j, r := range t.Rows {
			n := r.CellCount()
			if j == 0 || n > ts.MaxCells {
				ts.MaxCells = n
			}
			if j == 0 || n < ts.MinCells {
				ts.MinCells = n
			}
		}
		if len(t.Rows) > 0 {
			ts.Title, _ = t.Rows[0].Content(0)
		}
		s.Tables = append(s.Tables, ts)
	}
	return s
}
