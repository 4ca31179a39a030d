package register

import (
	"strings"

	"github.com/dgallion1/riskhtml/internal/document"
)

// RowKind is the rendering rule a row falls under.
type RowKind int

const (
	TitleRow RowKind = iota
	KeyPhraseRow
	SubHeadingRow
	DetailRow
)

func (k RowKind) String() string {
	switch k {
	case TitleRow:
		return "title"
	case KeyPhraseRow:
		return "key_phrase"
	case SubHeadingRow:
		return "sub_heading"
	case DetailRow:
		return "detail"
	}
	return "unknown"
}

// keyPhrases are matched against the trimmed, lower-cased first cell.
var keyPhrases = map[string]bool{
	"risk appetite":       true,
	"key risk indicators": true,
	"controls":            true,
}

const subHeadingPrefix = "Sub Risk Type"

// Classification is the outcome of classifying one row.
type Classification struct {
	Kind RowKind
	// Heading is the first cell's content. Empty for title rows.
	Heading string
	// NewSection is set on detail rows that start a new sub risk type.
	NewSection bool
}

// Classify decides how the row at index is rendered. A detail row that starts
// a new section moves LastHeading in the returned state, so each row must be
// classified exactly once and in order.
func Classify(row document.Row, index int, st State) (Classification, State, error) {
	if index == 0 {
		return Classification{Kind: TitleRow}, st, nil
	}

	content, err := row.Content(0)
	if err != nil {
		return Classification{}, st, err
	}

	switch {
	case keyPhrases[strings.ToLower(strings.TrimSpace(content))]:
		return Classification{Kind: KeyPhraseRow, Heading: content}, st, nil
	case strings.HasPrefix(content, subHeadingPrefix):
		return Classification{Kind: SubHeadingRow, Heading: content}, st, nil
	}

	c := Classification{Kind: DetailRow, Heading: content}
	if strings.TrimSpace(content) != "" && content != st.LastHeading {
		c.NewSection = true
		st.LastHeading = content
	}
	return c, st, nil
}
