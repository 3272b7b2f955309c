package storesite

import (
	"errors"

	"github.com/ukaji3/storesite-go/pkg/storesite/output"
	"github.com/ukaji3/storesite-go/pkg/storesite/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrNoInput indicates that Options.InputPath is empty.
var ErrNoInput = errors.New("no input workbook specified")

// ErrNoOutput indicates that Options.OutputDir is empty.
var ErrNoOutput = errors.New("no output directory specified")

// Errors reported by the ingestor.
var (
	ErrInvalidFormat = parser.ErrInvalidFormat
	ErrMissingPart   = parser.ErrMissingPart
	ErrNoHeader      = parser.ErrNoHeader
	ErrMissingColumn = parser.ErrMissingColumn
	ErrUnknownField  = parser.ErrUnknownField
	ErrInvalidNumber = parser.ErrInvalidNumber
)

type (
	// FormatError reports an input that is not a readable workbook.
	FormatError = parser.FormatError
	// SchemaError reports a worksheet without a usable header row.
	SchemaError = parser.SchemaError
	// FieldError reports a cell replaced by a default. It is never fatal.
	FieldError = parser.FieldError
	// IOError reports a failure to write the output directory.
	IOError = output.IOError
)
