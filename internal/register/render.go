package register

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgallion1/riskhtml/internal/document"
	"golang.org/x/sync/errgroup"
)

const (
	prologue = `<html><head></head><style>OL { counter-reset: item } LI { display: block } ` +
		`LI:before { content: counters(item, ".") " "; counter-increment: item }</style><body>`
	epilogue   = "</body></html>"
	tableClose = "</ol></ol></p>"
)

// Step classifies and renders one row, returning its markup and the state for
// the next row.
func Step(row document.Row, index int, st State) (string, State, error) {
	c, st, err := Classify(row, index, st)
	if err != nil {
		return "", st, err
	}
	return renderRow(row, c, st)
}

// RenderTable renders one table as an ordered list whose numbering restarts
// at index. Every tier opened by its rows is closed before the list ends.
func RenderTable(index int, t document.Table) (string, error) {
	if len(t.Rows) == 0 {
		return "", &ConvertError{Table: index, Row: -1, Err: ErrEmptyTable}
	}

	frags := make([]string, 0, len(t.Rows)+3)
	frags = append(frags, fmt.Sprintf(`<p><ol style="counter-reset: item %d">`, index))

	var st State
	for i, row := range t.Rows {
		frag, next, err := Step(row, i, st)
		if err != nil {
			return "", &ConvertError{Table: index, Row: i, Err: err}
		}
		frags = append(frags, frag)
		st = next
	}

	closing, _ := st.CloseAll()
	frags = append(frags, closing, tableClose)
	return strings.Join(frags, ""), nil
}

// Render converts the whole document. Any failing table fails the
// conversion; no partial markup is returned.
func Render(doc *document.Document) (string, error) {
	frags := make([]string, 0, len(doc.Tables)+2)
	frags = append(frags, prologue)
	for i, t := range doc.Tables {
		out, err := RenderTable(i, t)
		if err != nil {
			return "", err
		}
		frags = append(frags, out)
	}
	frags = append(frags, epilogue)
	return strings.Join(frags, ""), nil
}

// RenderParallel renders up to limit tables at once. The output and the
// reported error (the lowest failing table) match Render.
func RenderParallel(ctx context.Context, doc *document.Document, limit int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if limit <= 1 || len(doc.Tables) < 2 {
		return Render(doc)
	}

	outs := make([]string, len(doc.Tables))
	errs := make([]error, len(doc.Tables))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, t := range doc.Tables {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outs[i], errs[i] = RenderTable(i, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	for _, err := range errs {
		if err != nil {
			return "", err
		}
	}

	var sb strings.Builder
	sb.WriteString(prologue)
	for _, out := range outs {
		sb.WriteString(out)
	}
	sb.WriteString(epilogue)
	return sb.String(), nil
}
