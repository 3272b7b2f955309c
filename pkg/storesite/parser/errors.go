package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates the input is not a readable xlsx container.
// Every *FormatError matches it under errors.Is.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrMissingPart indicates a required part is absent from the container.
var ErrMissingPart = errors.New("missing part")

// ErrNoHeader indicates the worksheet has no non-empty row to use as headers.
var ErrNoHeader = errors.New("no header row found")

// ErrMissingColumn indicates a required or configured column is not in the header row.
var ErrMissingColumn = errors.New("missing column")

// ErrUnknownField indicates a column mapping names a field that does not exist.
var ErrUnknownField = errors.New("unknown field")

// Field-level problems. These are recovered and reported as *FieldError.
var (
	ErrInvalidNumber = errors.New("invalid number")
	ErrOutOfRange    = errors.New("value out of range")
	ErrInvalidURL    = errors.New("not an http(s) URL")
	ErrEmptyValue    = errors.New("empty value")
)

// FormatError reports a container that cannot be decoded.
type FormatError struct {
	Path string // input file, when known
	Part string // zip part being read, when known
	Err  error
}

func (e *FormatError) Error() string {
	switch {
	case e.Path != "" && e.Part != "":
		return fmt.Sprintf("format error in %s (%s): %v", e.Path, e.Part, e.Err)
	case e.Path != "":
		return fmt.Sprintf("format error in %s: %v", e.Path, e.Err)
	case e.Part != "":
		return fmt.Sprintf("format error in part %s: %v", e.Part, e.Err)
	}
	return fmt.Sprintf("format error: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidFormat as a match for any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func formatErr(part string, err error) *FormatError {
	return &FormatError{Part: part, Err: err}
}

// SchemaError reports a worksheet whose header row is missing or unusable.
type SchemaError struct {
	Path   string
	Sheet  string
	Row    int    // header row, 0 when no header was found
	Column string // offending field or header, when known
	Err    error
}

func (e *SchemaError) Error() string {
	loc := fmt.Sprintf("sheet %q", e.Sheet)
	if e.Path != "" {
		loc = e.Path + " " + loc
	}
	if e.Row > 0 {
		loc += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Column != "" {
		return fmt.Sprintf("schema error in %s: %v: %s", loc, e.Err, e.Column)
	}
	return fmt.Sprintf("schema error in %s: %v", loc, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// FieldError reports a cell that could not be coerced and was replaced by a default.
type FieldError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v (value %q)", e.Row, e.Column, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a new FieldError.
func NewFieldError(row int, column, value string, err error) *FieldError {
	return &FieldError{
		Row:    row,
		Column: column,
		Value:  value,
		Err:    err,
	}
}
