package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/riskhtml/internal/document"
)

// JSONParser decodes the layout JSON produced by form recognition:
// {"tables":[{"rows":[{"cells":[{"lines":[{"text":"..."}]}]}]}]}.
type JSONParser struct{}

func (p *JSONParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	var doc document.Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if doc.Tables == nil {
		return nil, fmt.Errorf("decode json: missing tables")
	}
	return &doc, nil
}
