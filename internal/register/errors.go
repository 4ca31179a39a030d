package register

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTable        = errors.New("table has no rows")
	ErrMalformedTitleRow = errors.New("title row needs a title line and a description line")
)

// ConvertError reports where a conversion failed. Row is -1 when the failure
// concerns the table as a whole.
type ConvertError struct {
	Table int
	Row   int
	Err   error
}

func (e *ConvertError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("table %d: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("table %d row %d: %v", e.Table, e.Row, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}
