package register

import (
	"strings"

	"github.com/dgallion1/riskhtml/internal/document"
	"golang.org/x/net/html"
)

const lineBreak = "<br/>"

// Escape makes text safe to embed in markup.
func Escape(text string) string {
	return html.EscapeString(text)
}

// JoinLines escapes every line of the cell and terminates each with a line
// break.
func JoinLines(c document.Cell) string {
	var sb strings.Builder
	for _, l := range c.Lines {
		sb.WriteString(Escape(l.Text))
		sb.WriteString(lineBreak)
	}
	return sb.String()
}
