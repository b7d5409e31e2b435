package annots

import (
	"errors"
	"fmt"
)

// ErrNotFound marks an input path that does not resolve to a file. It is
// fatal for the requested operation.
var ErrNotFound = errors.New("pdf file not found")

// MalformedRecordError marks a single annotation whose mandatory metadata
// could not be read. The record is skipped; the run continues.
type MalformedRecordError struct {
	Page  int
	Index int
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed annotation %d on page %d: %v", e.Index, e.Page, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
