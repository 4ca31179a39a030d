package register

import (
	"fmt"
	"strings"

	"github.com/dgallion1/riskhtml/internal/document"
)

const (
	tokenSubRiskType1 = "|subRiskType1|"
	tokenSubRiskType2 = "|subRiskType2|"
	tokenDescription  = "|description|"
	tokenRelation     = "|relation|"

	detailItems = "<li>Description<br/>" + tokenDescription + "</li>" +
		"<li>Relation to other risks / activities<br/>" + tokenRelation + "</li>"

	// Opens the sub risk type tier and leaves it open.
	nestedSectionTemplate = "<li>" + tokenSubRiskType1 + "<ol>" +
		"<li>" + tokenSubRiskType2 + "<ol>" + detailItems + "</ol></li>"

	nestedItemTemplate = "<li>" + tokenSubRiskType2 + "<ol>" + detailItems + "</ol></li>"

	singleItemTemplate = "<li>" + tokenSubRiskType1 + "<ol>" + detailItems + "</ol></li>"

	subHeadingMarkup = "<li>Sub Risk Types<ol>"

	// Sub risk type headings this wide switch detail rows to the two level
	// templates. Other widths, including no heading yet, use one level.
	nestedWidth = 4
)

// renderRow produces the markup for a classified row.
func renderRow(row document.Row, c Classification, st State) (string, State, error) {
	switch c.Kind {
	case TitleRow:
		return renderTitle(row, st)
	case KeyPhraseRow:
		return renderKeyPhrase(row, c, st)
	case SubHeadingRow:
		st.SubHeadingWidth = row.CellCount()
		return subHeadingMarkup, st.Open(), nil
	case DetailRow:
		return renderDetail(row, c, st)
	}
	return "", st, fmt.Errorf("unknown row kind %d", c.Kind)
}

func renderTitle(row document.Row, st State) (string, State, error) {
	cell, err := row.Cell(0)
	if err != nil {
		return "", st, err
	}
	if len(cell.Lines) < 2 {
		return "", st, fmt.Errorf("%d lines: %w", len(cell.Lines), ErrMalformedTitleRow)
	}
	title := cell.Lines[0].Text
	description := strings.TrimPrefix(cell.Lines[1].Text, title+" is ")

	t := Escape(title)
	return "<li>" + t + "</li>" + t + " is " + Escape(description) + "<ol>", st, nil
}

// renderKeyPhrase flushes every open tier, then renders the phrase with its
// body. The body is the second cell unless the row is wider than two cells
// and its last cell is not blank.
func renderKeyPhrase(row document.Row, c Classification, st State) (string, State, error) {
	flush, st := st.CloseAll()

	body, err := row.Cell(1)
	if err != nil {
		return "", st, err
	}
	if row.CellCount() > 2 {
		last, err := row.Cell(-1)
		if err != nil {
			return "", st, err
		}
		lastContent, err := last.Content()
		if err != nil {
			return "", st, err
		}
		if strings.TrimSpace(lastContent) != "" {
			body = last
		}
	}

	return flush + "<li>" + Escape(c.Heading) + lineBreak + JoinLines(body) + "</li>", st, nil
}

func renderDetail(row document.Row, c Classification, st State) (string, State, error) {
	subRiskType2, err := row.Content(1)
	if err != nil {
		return "", st, err
	}
	description, err := row.Cell(-2)
	if err != nil {
		return "", st, err
	}
	relation, err := row.Cell(-1)
	if err != nil {
		return "", st, err
	}

	var template string
	switch {
	case st.SubHeadingWidth == nestedWidth && c.NewSection:
		template = nestedSectionTemplate
		// Two open tiers means the previous section is still open.
		if st.OpenTiers == 2 {
			var closing string
			closing, st = st.CloseOne()
			template = closing + template
		}
		st = st.Open()
	case st.SubHeadingWidth == nestedWidth:
		template = nestedItemTemplate
	default:
		template = singleItemTemplate
	}

	r := strings.NewReplacer(
		tokenSubRiskType1, Escape(c.Heading),
		tokenSubRiskType2, Escape(subRiskType2),
		tokenDescription, JoinLines(description),
		tokenRelation, JoinLines(relation),
	)
	return r.Replace(template), st, nil
}
