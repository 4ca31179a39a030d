package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/riskhtml/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

const defaultColumnGap = 12.0

// PDFParser reconstructs a single table from the text rows of a PDF. Runs of
// text separated by more than ColumnGap points become separate cells. When
// the Go reader fails it can fall back to pdftotext -layout, splitting
// columns on runs of two or more spaces.
type PDFParser struct {
	FallbackPdftotext bool
	ColumnGap         float64
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// ledongthuc/pdf and pdftotext both want a file on disk.
	tmp, err := os.CreateTemp("", "riskhtml-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	gap := p.ColumnGap
	if gap <= 0 {
		gap = defaultColumnGap
	}

	rows, err := extractPDFRows(tmpPath, gap)
	if err != nil && p.FallbackPdftotext {
		rows, err = extractPdftotextRows(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf rows: %w", err)
	}

	rows = mergeTitleRow(rows)

	doc := &document.Document{}
	if len(rows) > 0 {
		doc.Tables = append(doc.Tables, document.Table{Rows: rows})
	}
	return doc, nil
}

func extractPDFRows(path string, gap float64) ([]document.Row, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []document.Row
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageRows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		for _, pr := range pageRows {
			cells := groupCells(pr.Content, gap)
			if len(cells) > 0 {
				rows = append(rows, document.Row{Cells: cells})
			}
		}
	}
	return rows, nil
}

// groupCells splits one row of positioned text into cells at horizontal gaps
// wider than gap.
func groupCells(texts []pdflib.Text, gap float64) []document.Cell {
	sorted := make([]pdflib.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var cells []document.Cell
	var current strings.Builder
	end := 0.0

	flush := func() {
		if t := strings.Join(strings.Fields(current.String()), " "); t != "" {
			cells = append(cells, document.NewCell(t))
		}
		current.Reset()
	}

	for i, t := range sorted {
		if i > 0 && t.X-end > gap {
			flush()
		} else if i > 0 && t.X-end > t.FontSize*0.25 {
			current.WriteByte(' ')
		}
		current.WriteString(t.S)
		if e := t.X + t.W; e > end || i == 0 {
			end = e
		}
	}
	flush()
	return cells
}

// mergeTitleRow folds the first two text rows into the two-line title cell a
// register table starts with. PDF rows carry one line per cell, so the title
// and its description arrive as separate rows. Rows already holding a
// multi-line title cell are left alone.
func mergeTitleRow(rows []document.Row) []document.Row {
	if len(rows) < 2 || len(rows[0].Cells) != 1 || len(rows[0].Cells[0].Lines) != 1 {
		return rows
	}
	var desc []string
	for _, c := range rows[1].Cells {
		desc = append(desc, c.Texts()...)
	}
	lines := append(rows[0].Cells[0].Texts(), strings.Join(desc, " "))

	merged := make([]document.Row, 0, len(rows)-1)
	merged = append(merged, document.NewRow(document.NewCell(lines...)))
	return append(merged, rows[2:]...)
}

var layoutColumnSep = regexp.MustCompile(`\s{2,}`)

func extractPdftotextRows(path string) ([]document.Row, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return layoutRows(string(out)), nil
}

// layoutRows turns pdftotext -layout output into rows. Blank lines and page
// breaks are skipped.
func layoutRows(text string) []document.Row {
	var rows []document.Row
	for _, line := range strings.Split(strings.ReplaceAll(text, "\f", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row document.Row
		for _, field := range layoutColumnSep.Split(line, -1) {
			row.Cells = append(row.Cells, document.NewCell(field))
		}
		rows = append(rows, row)
	}
	return rows
}
