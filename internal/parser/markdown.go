package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/riskhtml/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser reads GFM pipe tables using goldmark. The header row is
// row 0; a <br> inside a cell starts a new line.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(src))

	doc := &document.Document{}
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		tbl, ok := n.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		var t document.Table
		for c := tbl.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.(type) {
			case *east.TableHeader, *east.TableRow:
				t.Rows = append(t.Rows, markdownRow(c, src))
			}
		}
		doc.Tables = append(doc.Tables, t)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func markdownRow(n ast.Node, src []byte) document.Row {
	var row document.Row
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*east.TableCell); ok {
			row.Cells = append(row.Cells, markdownCell(c, src))
		}
	}
	return row
}

func markdownCell(n ast.Node, src []byte) document.Cell {
	var lines []string
	var current bytes.Buffer

	breakLine := func() {
		lines = append(lines, strings.TrimSpace(current.String()))
		current.Reset()
	}

	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Text:
				current.Write(node.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					current.WriteByte(' ')
				}
			case *ast.RawHTML:
				if isBreakTag(rawHTML(node, src)) {
					breakLine()
				}
			default:
				walk(c)
			}
		}
	}
	walk(n)
	breakLine()

	return document.NewCell(lines...)
}

func rawHTML(n *ast.RawHTML, src []byte) string {
	var buf bytes.Buffer
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

func isBreakTag(tag string) bool {
	tag = strings.ToLower(strings.ReplaceAll(tag, " ", ""))
	return tag == "<br>" || tag == "<br/>"
}
