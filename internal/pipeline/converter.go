package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dgallion1/riskhtml/internal/document"
	"github.com/dgallion1/riskhtml/internal/parser"
	"github.com/dgallion1/riskhtml/internal/register"
)

// Converter decodes input files and renders them to register markup.
// It is safe for concurrent use.
type Converter struct {
	opts        parser.Options
	parallelism int
	stats       *ConversionStats
}

// NewConverter returns a converter. stats may be nil.
func NewConverter(opts parser.Options, parallelism int, stats *ConversionStats) *Converter {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &Converter{opts: opts, parallelism: parallelism, stats: stats}
}

// Parse decodes r with the parser registered for filename's extension.
func (c *Converter) Parse(r io.Reader, filename string) (*document.Document, error) {
	p, err := parser.ForFile(filename, c.opts)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(r, filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return doc, nil
}

// Render converts doc and records the outcome in the converter's stats.
func (c *Converter) Render(ctx context.Context, doc *document.Document) (string, time.Duration, error) {
	start := time.Now()
	out, err := register.RenderParallel(ctx, doc, c.parallelism)
	took := time.Since(start)
	if c.stats != nil {
		if err != nil {
			c.stats.RecordFailure()
		} else {
			c.stats.Record(took.Milliseconds())
		}
	}
	return out, took, err
}

// RowCount returns the total number of rows across all tables.
func RowCount(doc *document.Document) int {
	n := 0
	for _, t := range doc.Tables {
		n += len(t.Rows)
	}
	return n
}
