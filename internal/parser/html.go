package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/riskhtml/internal/document"
	"golang.org/x/net/html"
)

// HTMLParser reads every <table> in an HTML file. Rows of a nested table
// belong to that table, not to the one containing it.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &document.Document{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			doc.Tables = append(doc.Tables, htmlTable(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return doc, nil
}

func htmlTable(table *html.Node) document.Table {
	var t document.Table
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "table":
				// Collected separately by the document walk.
			case "tr":
				t.Rows = append(t.Rows, htmlRow(c))
			default:
				walk(c)
			}
		}
	}
	walk(table)
	return t
}

func htmlRow(tr *html.Node) document.Row {
	var row document.Row
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row.Cells = append(row.Cells, htmlCell(c))
		}
	}
	return row
}

// htmlCell splits cell content into lines at <br> and block elements.
func htmlCell(td *html.Node) document.Cell {
	var lines []string
	var current strings.Builder

	breakLine := func() {
		if t := strings.Join(strings.Fields(current.String()), " "); t != "" {
			lines = append(lines, t)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			current.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "br":
				breakLine()
				return
			case "script", "style", "table":
				return
			case "p", "div", "li":
				breakLine()
				defer breakLine()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := td.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	breakLine()

	if len(lines) == 0 {
		lines = []string{""}
	}
	return document.NewCell(lines...)
}
