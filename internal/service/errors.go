package service

import (
	"errors"
	"fmt"
)

var (
	ErrReceiptNotFound    = errors.New("receipt not found")
	ErrInvalidReceiptID   = errors.New("invalid receipt id")
	ErrReceiptAnnulled    = errors.New("annulled receipts cannot be edited")
	ErrAlreadyAnnulled    = errors.New("receipt is already annulled")
	ErrNotAnnulled        = errors.New("receipt is not annulled")
	ErrInvalidStatus      = errors.New("invalid receipt status")
	ErrDuplicateReference = errors.New("transfer reference already registered")
	ErrInvalidCriteria    = errors.New("invalid filter")
	ErrInvalidInput       = errors.New("invalid receipt data")
)

// ImportErrorKind classifies why an upload was rejected.
type ImportErrorKind string

const (
	ImportInvalidFile          ImportErrorKind = "INVALID_FILE"
	ImportMissingSheet         ImportErrorKind = "MISSING_SHEET"
	ImportColumnCountMismatch  ImportErrorKind = "COLUMN_COUNT_MISMATCH"
	ImportMissingRequiredField ImportErrorKind = "MISSING_REQUIRED_FIELD"
	ImportInvalidDate          ImportErrorKind = "INVALID_DATE"
	ImportConflict             ImportErrorKind = "CONFLICT"
	ImportUnknown              ImportErrorKind = "UNKNOWN"
)

// ImportError rejects a whole upload. Row is the spreadsheet row, or 0 when the
// failure is not tied to one row.
type ImportError struct {
	Kind  ImportErrorKind
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ImportError) Error() string {
	switch e.Kind {
	case ImportInvalidFile:
		return fmt.Sprintf("the upload is not a valid xlsx workbook: %v", e.Err)
	case ImportMissingSheet:
		return fmt.Sprintf("sheet %q not found in workbook", e.Value)
	case ImportColumnCountMismatch:
		return fmt.Sprintf("template mismatch: %v", e.Err)
	case ImportMissingRequiredField:
		return fmt.Sprintf("row %d: required field %q is empty", e.Row, e.Field)
	case ImportInvalidDate:
		return fmt.Sprintf("row %d: invalid date %q in %q", e.Row, e.Value, e.Field)
	case ImportConflict:
		if e.Row > 0 {
			return fmt.Sprintf("row %d: %s %q is already registered", e.Row, e.Field, e.Value)
		}
		return fmt.Sprintf("the batch conflicts with existing receipts: %v", e.Err)
	}
	if e.Row > 0 {
		return fmt.Sprintf("row %d: unexpected error: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("import failed: %v", e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
